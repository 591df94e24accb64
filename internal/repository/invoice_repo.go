package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/andy/agencyflow/internal/db"
	"github.com/andy/agencyflow/internal/domain"
)

// InvoiceRepo is a SQLite implementation of InvoiceRepository
type InvoiceRepo struct {
	db *db.DB
}

// NewInvoiceRepo creates a new InvoiceRepo
func NewInvoiceRepo(database *db.DB) *InvoiceRepo {
	return &InvoiceRepo{db: database}
}

const issuedInvoiceColumns = `
	id, invoice_number, client_id, business_name, template, invoice_date,
	total, paid, due, html, file_path, created_at
`

// Create records a printed invoice
func (r *InvoiceRepo) Create(ctx context.Context, invoice *domain.IssuedInvoice) error {
	if err := invoice.Validate(); err != nil {
		return fmt.Errorf("invalid invoice: %w", err)
	}
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO issued_invoices (
			invoice_number, client_id, business_name, template, invoice_date,
			total, paid, due, html, file_path, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var filePath interface{}
	if invoice.FilePath != "" {
		filePath = invoice.FilePath
	}

	result, err := r.db.ExecContext(ctx, query,
		invoice.InvoiceNumber,
		invoice.ClientID,
		invoice.BusinessName,
		invoice.Template,
		invoice.InvoiceDate,
		invoice.Total,
		invoice.Paid,
		invoice.Due,
		invoice.HTML,
		filePath,
		invoice.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get invoice ID: %w", err)
	}

	invoice.ID = id
	return nil
}

// GetByNumber returns the latest print of an invoice number
func (r *InvoiceRepo) GetByNumber(ctx context.Context, number string) (*domain.IssuedInvoice, error) {
	query := `SELECT` + issuedInvoiceColumns + `
		FROM issued_invoices
		WHERE invoice_number = ?
		ORDER BY id DESC
		LIMIT 1
	`

	invoice, err := scanIssuedInvoice(r.db.QueryRowContext(ctx, query, number))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("invoice %s: %w", number, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return invoice, nil
}

// List returns printed invoices, newest first, optionally for one client
func (r *InvoiceRepo) List(ctx context.Context, clientID *string) ([]*domain.IssuedInvoice, error) {
	query := `SELECT` + issuedInvoiceColumns + `
		FROM issued_invoices
		WHERE 1=1
	`
	args := make([]interface{}, 0)

	if clientID != nil {
		query += " AND client_id = ?"
		args = append(args, *clientID)
	}

	query += " ORDER BY id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]*domain.IssuedInvoice, 0)
	for rows.Next() {
		invoice, err := scanIssuedInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	return invoices, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIssuedInvoice(row rowScanner) (*domain.IssuedInvoice, error) {
	invoice := &domain.IssuedInvoice{}
	var filePath sql.NullString
	var createdAt string

	err := row.Scan(
		&invoice.ID,
		&invoice.InvoiceNumber,
		&invoice.ClientID,
		&invoice.BusinessName,
		&invoice.Template,
		&invoice.InvoiceDate,
		&invoice.Total,
		&invoice.Paid,
		&invoice.Due,
		&invoice.HTML,
		&filePath,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	invoice.FilePath = filePath.String
	if invoice.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return invoice, nil
}

// DeleteAll clears the issued invoice log
func (r *InvoiceRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM issued_invoices"); err != nil {
		return fmt.Errorf("failed to clear invoices: %w", err)
	}
	return nil
}
