// Package invoice builds and renders invoices for a client.
package invoice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/andy/agencyflow/internal/domain"
	"github.com/andy/agencyflow/internal/money"
)

var (
	ErrLastItem         = errors.New("an invoice needs at least one item")
	ErrItemIndex        = errors.New("no such invoice item")
	ErrUnknownItemField = errors.New("unknown item field")
	ErrUnknownTaxField  = errors.New("unknown tax field")
	ErrUnknownTemplate  = errors.New("unknown invoice template")
	ErrInvalidNumber    = errors.New("invoice number must be set and cannot contain path separators")
)

// DefaultHSN is the SAC code for advertising services
const DefaultHSN = "998361"

// GSTRate is the combined GST percentage included in every amount
const GSTRate = 18

// lineTaxRate is the CGST or SGST share applied to a single line
const lineTaxRate = 0.09

// DateLayout renders invoice dates like "16 Oct 2026"
const DateLayout = "2 Jan 2006"

type Item struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Rate        float64 `json:"rate"`
	Quantity    float64 `json:"quantity"`
	HSN         string  `json:"hsn"`
}

// Amount is rate times quantity
func (i Item) Amount() float64 {
	return i.Rate * i.Quantity
}

// Totals is the GST breakdown of a session. Amounts are tax inclusive.
type Totals struct {
	Total   float64
	Taxable float64
	GST     float64
	CGST    float64
	SGST    float64
	Paid    float64
	Due     float64
}

// Session is one invoice being edited. Nothing in it is persisted until the
// invoice is printed.
type Session struct {
	Number         string
	Date           string
	Items          []Item
	Template       Template
	Tax            TaxFields
	CustomTemplate string
	Client         domain.Client
	Agency         domain.AgencyProfile
}

// NewSession starts an invoice for client numbered with seq
func NewSession(client *domain.Client, agency *domain.AgencyProfile, seq int, now time.Time) *Session {
	s := &Session{
		Number:         FormatNumber(now.Year(), client.BusinessName, seq),
		Date:           now.Format(DateLayout),
		Items:          seedItems(client),
		Template:       TemplateModern,
		Tax:            DefaultTaxFields(),
		CustomTemplate: agency.CustomInvoiceTemplate,
		Client:         *client,
		Agency:         *agency,
	}
	if strings.TrimSpace(s.CustomTemplate) == "" {
		s.CustomTemplate = DefaultCustomTemplate
	}
	s.Tax.applyClient(client.BusinessName, client.Address, client.GSTIN)
	return s
}

// seedItems splits the deal evenly across the client's services
func seedItems(client *domain.Client) []Item {
	if len(client.Services) == 0 {
		return []Item{{
			ID:          "0",
			Description: "Professional Services",
			Rate:        client.DealAmount,
			Quantity:    1,
			HSN:         DefaultHSN,
		}}
	}

	rate := round2(client.DealAmount / float64(len(client.Services)))
	items := make([]Item, len(client.Services))
	for i, name := range client.Services {
		items[i] = Item{
			ID:          strconv.Itoa(i),
			Description: name,
			Rate:        rate,
			Quantity:    1,
			HSN:         DefaultHSN,
		}
	}
	return items
}

// AddItem appends a blank line and returns it
func (s *Session) AddItem() Item {
	item := Item{
		ID:          domain.NewID(),
		Description: "New Service Item",
		Rate:        0,
		Quantity:    1,
		HSN:         DefaultHSN,
	}
	s.Items = append(s.Items, item)
	return item
}

// RemoveItem deletes the item at index unless it is the last one
func (s *Session) RemoveItem(index int) error {
	if index < 0 || index >= len(s.Items) {
		return fmt.Errorf("%w: %d", ErrItemIndex, index)
	}
	if len(s.Items) <= 1 {
		return ErrLastItem
	}
	s.Items = append(s.Items[:index], s.Items[index+1:]...)
	return nil
}

// SetItemField edits description, hsn, rate or quantity of one item.
// Rate and quantity input that is not a number becomes 0.
func (s *Session) SetItemField(index int, field, value string) error {
	if index < 0 || index >= len(s.Items) {
		return fmt.Errorf("%w: %d", ErrItemIndex, index)
	}
	item := &s.Items[index]
	switch strings.ToLower(field) {
	case "description":
		item.Description = value
	case "hsn":
		item.HSN = value
	case "rate":
		item.Rate = money.Parse(value)
	case "quantity", "qty":
		item.Quantity = money.Parse(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownItemField, field)
	}
	return nil
}

// SetNumber replaces the generated number. The number names the saved file.
func (s *Session) SetNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" || strings.ContainsAny(number, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidNumber, number)
	}
	s.Number = number
	return nil
}

// SetDate sets the printed date. YYYY-MM-DD is shown as "2 Jan 2006",
// anything else is kept as typed.
func (s *Session) SetDate(value string) {
	value = strings.TrimSpace(value)
	if d, err := time.Parse(domain.DateLayout, value); err == nil {
		value = d.Format(DateLayout)
	}
	s.Date = value
}

// SetTemplate switches the layout
func (s *Session) SetTemplate(name string) error {
	t, err := ParseTemplate(name)
	if err != nil {
		return err
	}
	s.Template = t
	return nil
}

// Totals computes the GST split of the current items
func (s *Session) Totals() Totals {
	var total float64
	for _, item := range s.Items {
		total += item.Amount()
	}
	taxable := total / (1 + GSTRate/100.0)
	gst := total - taxable
	paid := s.Client.Paid()

	return Totals{
		Total:   total,
		Taxable: taxable,
		GST:     gst,
		CGST:    gst / 2,
		SGST:    gst / 2,
		Paid:    paid,
		Due:     total - paid,
	}
}
