package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/andy/agencyflow/internal/domain"
	"github.com/andy/agencyflow/internal/repository"
)

var ErrClientNotFound = errors.New("client not found")

// ClientService manages clients, their payments and pricing
type ClientService interface {
	// List returns every client in insertion order
	List(ctx context.Context) ([]*domain.Client, error)

	// Search filters by business or contact name and optionally to clients with dues
	Search(ctx context.Context, query string, dueOnly bool) ([]*domain.Client, error)

	// Resolve finds a client by id, then by business name
	Resolve(ctx context.Context, ref string) (*domain.Client, error)

	Create(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, ref string) error

	// RecordPayment appends a payment stamped with at
	RecordPayment(ctx context.Context, ref string, amount float64, note string, at time.Time) (*domain.Client, error)

	// StandardPrice sums the catalog price of the named services
	StandardPrice(ctx context.Context, services []string) (float64, error)
}

type clientService struct {
	clientRepo  repository.ClientRepository
	serviceRepo repository.ServiceRepository
	log         zerolog.Logger
}

// NewClientService creates a new client service
func NewClientService(
	clientRepo repository.ClientRepository,
	serviceRepo repository.ServiceRepository,
	log zerolog.Logger,
) ClientService {
	return &clientService{
		clientRepo:  clientRepo,
		serviceRepo: serviceRepo,
		log:         log,
	}
}

func (s *clientService) List(ctx context.Context) ([]*domain.Client, error) {
	return s.clientRepo.List(ctx)
}

func (s *clientService) Search(ctx context.Context, query string, dueOnly bool) ([]*domain.Client, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterClients(clients, query, dueOnly), nil
}

func (s *clientService) Resolve(ctx context.Context, ref string) (*domain.Client, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrClientNotFound
	}

	return resolveClient(ctx, s.clientRepo, ref)
}

func (s *clientService) Create(ctx context.Context, client *domain.Client) error {
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return err
	}
	s.log.Info().Str("client_id", client.ID).Str("business", client.BusinessName).Msg("client created")
	return nil
}

func (s *clientService) Update(ctx context.Context, client *domain.Client) error {
	if err := s.clientRepo.Update(ctx, client); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrClientNotFound, client.ID)
		}
		return err
	}
	return nil
}

func (s *clientService) Delete(ctx context.Context, ref string) error {
	client, err := s.Resolve(ctx, ref)
	if err != nil {
		return err
	}
	if err := s.clientRepo.Delete(ctx, client.ID); err != nil {
		return err
	}
	s.log.Info().Str("client_id", client.ID).Msg("client deleted")
	return nil
}

func (s *clientService) RecordPayment(ctx context.Context, ref string, amount float64, note string, at time.Time) (*domain.Client, error) {
	client, err := s.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	payment, err := client.AddPayment(amount, note, at)
	if err != nil {
		return nil, err
	}
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	s.log.Info().
		Str("client_id", client.ID).
		Float64("amount", payment.Amount).
		Float64("due", client.Due()).
		Msg("payment recorded")
	return client, nil
}

func (s *clientService) StandardPrice(ctx context.Context, services []string) (float64, error) {
	catalog, err := s.serviceRepo.List(ctx)
	if err != nil {
		return 0, err
	}
	return StandardPrice(services, catalog), nil
}

// FilterClients keeps clients whose business or contact name contains query,
// ignoring case. dueOnly drops clients with nothing outstanding.
func FilterClients(clients []*domain.Client, query string, dueOnly bool) []*domain.Client {
	q := strings.ToLower(strings.TrimSpace(query))

	filtered := make([]*domain.Client, 0, len(clients))
	for _, c := range clients {
		if q != "" &&
			!strings.Contains(strings.ToLower(c.BusinessName), q) &&
			!strings.Contains(strings.ToLower(c.Name), q) {
			continue
		}
		if dueOnly && c.Due() <= 0 {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}

// StandardPrice is the sum of catalog prices for the named services.
// Names missing from the catalog count as zero.
func StandardPrice(services []string, catalog []*domain.ServiceDefinition) float64 {
	prices := make(map[string]float64, len(catalog))
	for _, def := range catalog {
		if _, seen := prices[def.Name]; !seen {
			prices[def.Name] = def.Price
		}
	}

	var total float64
	for _, name := range services {
		total += prices[name]
	}
	return total
}
