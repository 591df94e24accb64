package domain

import (
	"errors"
	"time"
)

// IssuedInvoice is a printed invoice kept for listing, sharing and preview
type IssuedInvoice struct {
	ID            int64
	InvoiceNumber string
	ClientID      string
	BusinessName  string
	Template      string
	InvoiceDate   string
	Total         float64
	Paid          float64
	Due           float64
	HTML          string
	FilePath      string
	CreatedAt     time.Time
}

// Validate returns an error if the invoice is invalid
func (i *IssuedInvoice) Validate() error {
	if i.InvoiceNumber == "" {
		return errors.New("invoice number is required")
	}
	if i.ClientID == "" {
		return errors.New("client ID is required")
	}
	if i.HTML == "" {
		return errors.New("printed document is required")
	}
	return nil
}
