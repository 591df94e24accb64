package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/agencyflow/internal/domain"
)

// ServiceRepo stores the catalog under agency_services
type ServiceRepo struct {
	docs document[domain.ServiceDefinition]
}

// NewServiceRepo creates a new ServiceRepo seeded with the default catalog
func NewServiceRepo(records RecordRepository) *ServiceRepo {
	return &ServiceRepo{docs: document[domain.ServiceDefinition]{
		records: records,
		key:     KeyServices,
		seed:    domain.DefaultServices,
	}}
}

func (r *ServiceRepo) Create(ctx context.Context, service *domain.ServiceDefinition) error {
	if err := service.Validate(); err != nil {
		return fmt.Errorf("invalid service: %w", err)
	}
	if service.ID == "" {
		service.ID = domain.NewID()
	}

	err := r.docs.mutate(ctx, func(items []domain.ServiceDefinition) ([]domain.ServiceDefinition, error) {
		return append(items, *service), nil
	})
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *ServiceRepo) GetByID(ctx context.Context, id string) (*domain.ServiceDefinition, error) {
	items, err := r.docs.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("service %s: %w", id, ErrNotFound)
}

// GetByName matches the catalog name exactly, then ignoring case
func (r *ServiceRepo) GetByName(ctx context.Context, name string) (*domain.ServiceDefinition, error) {
	items, err := r.docs.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	for i := range items {
		if items[i].Name == name {
			return &items[i], nil
		}
	}
	for i := range items {
		if strings.EqualFold(items[i].Name, strings.TrimSpace(name)) {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("service %q: %w", name, ErrNotFound)
}

func (r *ServiceRepo) List(ctx context.Context) ([]*domain.ServiceDefinition, error) {
	items, err := r.docs.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	services := make([]*domain.ServiceDefinition, len(items))
	for i := range items {
		services[i] = &items[i]
	}
	return services, nil
}

// Update replaces the catalog entry. Clients keep the names they already hold.
func (r *ServiceRepo) Update(ctx context.Context, service *domain.ServiceDefinition) error {
	if err := service.Validate(); err != nil {
		return fmt.Errorf("invalid service: %w", err)
	}

	err := r.docs.mutate(ctx, func(items []domain.ServiceDefinition) ([]domain.ServiceDefinition, error) {
		for i := range items {
			if items[i].ID == service.ID {
				items[i] = *service
				return items, nil
			}
		}
		return nil, fmt.Errorf("service %s: %w", service.ID, ErrNotFound)
	})
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}
	return nil
}

func (r *ServiceRepo) Delete(ctx context.Context, id string) error {
	err := r.docs.mutate(ctx, func(items []domain.ServiceDefinition) ([]domain.ServiceDefinition, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("service %s: %w", id, ErrNotFound)
	})
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}
