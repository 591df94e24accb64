package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/andy/agencyflow/internal/domain"
	"github.com/andy/agencyflow/internal/repository"
)

var ErrServiceNotFound = errors.New("service not found")

// CatalogService manages the service catalog. Clients reference services
// by name, so renaming or deleting an entry leaves existing clients as they are.
type CatalogService interface {
	List(ctx context.Context) ([]*domain.ServiceDefinition, error)

	// Resolve finds a catalog entry by id, then by name
	Resolve(ctx context.Context, ref string) (*domain.ServiceDefinition, error)

	Create(ctx context.Context, service *domain.ServiceDefinition) error
	Update(ctx context.Context, service *domain.ServiceDefinition) error
	Delete(ctx context.Context, ref string) error
}

type catalogService struct {
	serviceRepo repository.ServiceRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(serviceRepo repository.ServiceRepository) CatalogService {
	return &catalogService{serviceRepo: serviceRepo}
}

func (s *catalogService) List(ctx context.Context) ([]*domain.ServiceDefinition, error) {
	return s.serviceRepo.List(ctx)
}

func (s *catalogService) Resolve(ctx context.Context, ref string) (*domain.ServiceDefinition, error) {
	ref = strings.TrimSpace(ref)

	def, err := s.serviceRepo.GetByID(ctx, ref)
	if err == nil {
		return def, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	def, err = s.serviceRepo.GetByName(ctx, ref)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, ref)
		}
		return nil, err
	}
	return def, nil
}

func (s *catalogService) Create(ctx context.Context, service *domain.ServiceDefinition) error {
	return s.serviceRepo.Create(ctx, service)
}

func (s *catalogService) Update(ctx context.Context, service *domain.ServiceDefinition) error {
	if err := s.serviceRepo.Update(ctx, service); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrServiceNotFound, service.ID)
		}
		return err
	}
	return nil
}

func (s *catalogService) Delete(ctx context.Context, ref string) error {
	def, err := s.Resolve(ctx, ref)
	if err != nil {
		return err
	}
	return s.serviceRepo.Delete(ctx, def.ID)
}
