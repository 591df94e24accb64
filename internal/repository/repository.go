package repository

import (
	"context"
	"errors"

	"github.com/andy/agencyflow/internal/domain"
)

// Record keys. Each holds one JSON document replaced whole on every write.
const (
	KeyClients    = "agency_clients"
	KeyServices   = "agency_services"
	KeyExpenses   = "agency_expenses"
	KeyProfile    = "agency_profile"
	KeyInvoiceSeq = "agency_invoice_seq"
)

// RecordKeys lists every key in backup order
var RecordKeys = []string{KeyClients, KeyServices, KeyExpenses, KeyProfile, KeyInvoiceSeq}

// ErrNotFound is returned when a record id or name does not exist
var ErrNotFound = errors.New("not found")

// RecordRepository is the string-keyed document store every collection lives in
type RecordRepository interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Put(ctx context.Context, key, value string) error
	// Update reads, transforms and writes key atomically
	Update(ctx context.Context, key string, fn func(current string, found bool) (string, error)) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// ClientRepository manages client persistence
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	GetByBusinessName(ctx context.Context, name string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id string) error
}

// ServiceRepository manages the service catalog
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.ServiceDefinition) error
	GetByID(ctx context.Context, id string) (*domain.ServiceDefinition, error)
	GetByName(ctx context.Context, name string) (*domain.ServiceDefinition, error)
	List(ctx context.Context) ([]*domain.ServiceDefinition, error)
	Update(ctx context.Context, service *domain.ServiceDefinition) error
	Delete(ctx context.Context, id string) error
}

// ExpenseRepository manages expense persistence
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	List(ctx context.Context) ([]*domain.Expense, error)
	Delete(ctx context.Context, id string) error
}

// AgencyRepository manages the agency profile (singleton)
type AgencyRepository interface {
	Get(ctx context.Context) (*domain.AgencyProfile, error) // Returns defaults when never saved
	Save(ctx context.Context, profile *domain.AgencyProfile) error
}

// SequenceRepository owns the invoice number counter
type SequenceRepository interface {
	Current(ctx context.Context) (int, error)
	Next(ctx context.Context) (int, error)
}

// InvoiceRepository keeps printed invoices
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.IssuedInvoice) error
	GetByNumber(ctx context.Context, number string) (*domain.IssuedInvoice, error)
	List(ctx context.Context, clientID *string) ([]*domain.IssuedInvoice, error)
	DeleteAll(ctx context.Context) error
}
