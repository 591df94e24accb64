package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/agencyflow/internal/domain"
)

// ClientRepo stores clients as one JSON array under agency_clients
type ClientRepo struct {
	docs document[domain.Client]
}

// NewClientRepo creates a new ClientRepo
func NewClientRepo(records RecordRepository) *ClientRepo {
	return &ClientRepo{docs: document[domain.Client]{
		records: records,
		key:     KeyClients,
		seed: func() []domain.Client {
			return []domain.Client{domain.SampleClient()}
		},
		fix: func(c *domain.Client) {
			if c.Services == nil {
				c.Services = []string{}
			}
			if c.Payments == nil {
				c.Payments = []domain.Payment{}
			}
			if c.Status == "" {
				c.Status = domain.ClientStatusActive
			}
		},
	}}
}

// Create appends a new client
func (r *ClientRepo) Create(ctx context.Context, client *domain.Client) error {
	if err := client.Validate(); err != nil {
		return fmt.Errorf("invalid client: %w", err)
	}
	if client.ID == "" {
		client.ID = domain.NewID()
	}

	err := r.docs.mutate(ctx, func(items []domain.Client) ([]domain.Client, error) {
		for _, c := range items {
			if c.ID == client.ID {
				return nil, fmt.Errorf("client %s already exists", client.ID)
			}
		}
		return append(items, *client), nil
	})
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// GetByID retrieves a client by ID
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	items, err := r.docs.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("client %s: %w", id, ErrNotFound)
}

// GetByBusinessName retrieves a client by business name, ignoring case
func (r *ClientRepo) GetByBusinessName(ctx context.Context, name string) (*domain.Client, error) {
	items, err := r.docs.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	for i := range items {
		if strings.EqualFold(items[i].BusinessName, strings.TrimSpace(name)) {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("client %q: %w", name, ErrNotFound)
}

// List returns clients in insertion order
func (r *ClientRepo) List(ctx context.Context) ([]*domain.Client, error) {
	items, err := r.docs.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	clients := make([]*domain.Client, len(items))
	for i := range items {
		clients[i] = &items[i]
	}
	return clients, nil
}

// Update replaces the stored client with the same ID
func (r *ClientRepo) Update(ctx context.Context, client *domain.Client) error {
	if err := client.Validate(); err != nil {
		return fmt.Errorf("invalid client: %w", err)
	}

	err := r.docs.mutate(ctx, func(items []domain.Client) ([]domain.Client, error) {
		for i := range items {
			if items[i].ID == client.ID {
				items[i] = *client
				return items, nil
			}
		}
		return nil, fmt.Errorf("client %s: %w", client.ID, ErrNotFound)
	})
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	return nil
}

// Delete removes a client and its payments
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	err := r.docs.mutate(ctx, func(items []domain.Client) ([]domain.Client, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("client %s: %w", id, ErrNotFound)
	})
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}
