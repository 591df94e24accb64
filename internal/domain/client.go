package domain

import (
	"fmt"
	"strings"
	"time"
)

type ClientStatus string

const (
	ClientStatusLead    ClientStatus = "LEAD"
	ClientStatusActive  ClientStatus = "ACTIVE"
	ClientStatusPaused  ClientStatus = "PAUSED"
	ClientStatusStopped ClientStatus = "STOPPED"
	ClientStatusClosed  ClientStatus = "CLOSED"
)

// ClientStatuses lists every status in display order
var ClientStatuses = []ClientStatus{
	ClientStatusActive,
	ClientStatusLead,
	ClientStatusPaused,
	ClientStatusStopped,
	ClientStatusClosed,
}

// ParseClientStatus accepts any letter case
func ParseClientStatus(s string) (ClientStatus, error) {
	status := ClientStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range ClientStatuses {
		if status == known {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown client status %q", s)
}

type Payment struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Date   Date    `json:"date"`
	Note   string  `json:"note,omitempty"`
}

// Client is a customer of the agency. Services hold catalog names, not ids.
type Client struct {
	ID           string       `json:"id"`
	Name         string       `json:"name" validate:"required"`
	BusinessName string       `json:"businessName" validate:"required"`
	Phone        string       `json:"phone"`
	Email        string       `json:"email" validate:"omitempty,email"`
	Address      string       `json:"address,omitempty"`
	GSTIN        string       `json:"gstIn,omitempty"`
	Services     []string     `json:"services"`
	DealAmount   float64      `json:"dealAmount" validate:"gte=0"`
	StartDate    Date         `json:"startDate"`
	EndDate      *Date        `json:"endDate,omitempty"`
	Payments     []Payment    `json:"payments"`
	Status       ClientStatus `json:"status" validate:"client_status"`
	Notes        string       `json:"notes,omitempty"`
}

// NewClient creates an active client starting today
func NewClient(name, businessName string, dealAmount float64) *Client {
	return &Client{
		ID:           NewID(),
		Name:         strings.TrimSpace(name),
		BusinessName: strings.TrimSpace(businessName),
		Services:     []string{},
		DealAmount:   dealAmount,
		StartDate:    Today(),
		Payments:     []Payment{},
		Status:       ClientStatusActive,
	}
}

// Validate returns an error if the client is invalid
func (c *Client) Validate() error {
	if err := validateStruct("client", c); err != nil {
		return err
	}
	if c.StartDate.IsZero() {
		return fmt.Errorf("client startDate is required")
	}
	if c.EndDate != nil && !c.EndDate.IsZero() && c.EndDate.Before(c.StartDate.Time) {
		return fmt.Errorf("client endDate must be after startDate")
	}
	return nil
}

// Paid sums every recorded payment
func (c *Client) Paid() float64 {
	var total float64
	for _, p := range c.Payments {
		total += p.Amount
	}
	return total
}

// Due is the deal amount minus payments. Negative means overpaid.
func (c *Client) Due() float64 {
	return c.DealAmount - c.Paid()
}

// Progress is the paid fraction of the deal, 0 for a zero deal
func (c *Client) Progress() float64 {
	if c.DealAmount <= 0 {
		return 0
	}
	return c.Paid() / c.DealAmount
}

// IsActive reports whether the client is billed monthly
func (c *Client) IsActive() bool {
	return c.Status == ClientStatusActive
}

// AddPayment appends a payment stamped with at
func (c *Client) AddPayment(amount float64, note string, at time.Time) (Payment, error) {
	if amount <= 0 {
		return Payment{}, fmt.Errorf("payment amount must be greater than zero")
	}
	p := Payment{
		ID:     NewID(),
		Amount: amount,
		Date:   NewDate(at),
		Note:   strings.TrimSpace(note),
	}
	c.Payments = append(c.Payments, p)
	return p, nil
}

// ServicesLabel joins the service names for tables and exports
func (c *Client) ServicesLabel() string {
	return strings.Join(c.Services, ", ")
}

// SampleClient is the record seeded on a fresh installation
func SampleClient() Client {
	return Client{
		ID:           "1",
		Name:         "Rahul Sharma",
		BusinessName: "Sharma Electronics",
		Phone:        "9876543210",
		Email:        "rahul@example.com",
		Address:      "MG Road, Bangalore",
		GSTIN:        "29AAAAA0000A1Z5",
		Services:     []string{"Meta Ads (FB/Insta)", "SEO Standard"},
		DealAmount:   50000,
		StartDate:    MustParseDate("2023-10-01"),
		Payments: []Payment{
			{ID: "p1", Amount: 20000, Date: MustParseDate("2023-10-02")},
		},
		Status: ClientStatusActive,
	}
}
