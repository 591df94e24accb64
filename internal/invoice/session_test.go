package invoice

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/andy/agencyflow/internal/domain"
)

var testNow = time.Date(2026, time.October, 16, 11, 30, 0, 0, time.Local)

func sampleSession(t *testing.T) *Session {
	t.Helper()
	client := domain.SampleClient()
	agency := domain.DefaultAgencyProfile()
	return NewSession(&client, &agency, 1001, testNow)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestNewSession_SeedsFromClient(t *testing.T) {
	s := sampleSession(t)

	if s.Number != "INV-2026-SHAR-1001" {
		t.Errorf("expected number INV-2026-SHAR-1001, got %s", s.Number)
	}
	if s.Date != "16 Oct 2026" {
		t.Errorf("expected date 16 Oct 2026, got %s", s.Date)
	}
	if s.Template != TemplateModern {
		t.Errorf("expected MODERN template, got %s", s.Template)
	}
	if s.CustomTemplate != DefaultCustomTemplate {
		t.Error("expected the built-in custom template")
	}
	if len(s.Items) != 2 {
		t.Fatalf("expected one item per service, got %d", len(s.Items))
	}
	for _, item := range s.Items {
		if item.Rate != 25000 || item.Quantity != 1 || item.HSN != DefaultHSN {
			t.Errorf("unexpected seeded item %+v", item)
		}
	}
	if s.Items[0].Description != "Meta Ads (FB/Insta)" {
		t.Errorf("expected first item to be the first service, got %q", s.Items[0].Description)
	}
}

func TestNewSession_SplitsDealEvenly(t *testing.T) {
	client := domain.NewClient("Asha", "Asha Bakes", 10000)
	client.Services = []string{"SEO Standard", "Google Ads", "Social Media Mgmt"}
	agency := domain.DefaultAgencyProfile()

	s := NewSession(client, &agency, 1002, testNow)
	for _, item := range s.Items {
		if item.Rate != 3333.33 {
			t.Errorf("expected rate rounded to 3333.33, got %v", item.Rate)
		}
	}
}

func TestNewSession_ProfessionalServicesFallback(t *testing.T) {
	client := domain.NewClient("Asha", "Asha Bakes", 12000)
	agency := domain.DefaultAgencyProfile()
	agency.CustomInvoiceTemplate = "<p>{{client_name}}</p>"

	s := NewSession(client, &agency, 1003, testNow)
	if len(s.Items) != 1 {
		t.Fatalf("expected a single item, got %d", len(s.Items))
	}
	if s.Items[0].Description != "Professional Services" || s.Items[0].Rate != 12000 {
		t.Errorf("unexpected fallback item %+v", s.Items[0])
	}
	if s.CustomTemplate != "<p>{{client_name}}</p>" {
		t.Errorf("expected the agency template, got %q", s.CustomTemplate)
	}
}

func TestSession_Totals(t *testing.T) {
	s := sampleSession(t)
	totals := s.Totals()

	if totals.Total != 50000 {
		t.Errorf("expected total 50000, got %v", totals.Total)
	}
	if !almostEqual(totals.Taxable+totals.GST, totals.Total) {
		t.Errorf("taxable %v + gst %v != total %v", totals.Taxable, totals.GST, totals.Total)
	}
	if !almostEqual(totals.Taxable, 50000/1.18) {
		t.Errorf("expected taxable %v, got %v", 50000/1.18, totals.Taxable)
	}
	if totals.CGST != totals.SGST || !almostEqual(totals.CGST, totals.GST/2) {
		t.Errorf("expected equal CGST and SGST halves, got %v and %v", totals.CGST, totals.SGST)
	}
	if totals.Paid != 20000 || totals.Due != 30000 {
		t.Errorf("expected paid 20000 due 30000, got %v and %v", totals.Paid, totals.Due)
	}
}

func TestSession_TotalFollowsItems(t *testing.T) {
	s := sampleSession(t)
	s.AddItem()
	if err := s.SetItemField(2, "rate", "1500"); err != nil {
		t.Fatalf("SetItemField failed: %v", err)
	}
	if err := s.SetItemField(2, "quantity", "3"); err != nil {
		t.Fatalf("SetItemField failed: %v", err)
	}

	var want float64
	for _, item := range s.Items {
		want += item.Rate * item.Quantity
	}
	if got := s.Totals().Total; got != want || got != 54500 {
		t.Errorf("expected total %v, got %v", want, got)
	}
}

func TestSession_ItemEditing(t *testing.T) {
	s := sampleSession(t)

	added := s.AddItem()
	if added.Description != "New Service Item" || added.Rate != 0 || added.Quantity != 1 || added.HSN != DefaultHSN {
		t.Errorf("unexpected new item %+v", added)
	}

	if err := s.SetItemField(0, "rate", "not a number"); err != nil {
		t.Fatalf("SetItemField failed: %v", err)
	}
	if s.Items[0].Rate != 0 {
		t.Errorf("expected junk rate to become 0, got %v", s.Items[0].Rate)
	}
	if err := s.SetItemField(0, "colour", "red"); !errors.Is(err, ErrUnknownItemField) {
		t.Errorf("expected ErrUnknownItemField, got %v", err)
	}
	if err := s.SetItemField(9, "hsn", "1"); !errors.Is(err, ErrItemIndex) {
		t.Errorf("expected ErrItemIndex, got %v", err)
	}

	for len(s.Items) > 1 {
		if err := s.RemoveItem(0); err != nil {
			t.Fatalf("RemoveItem failed: %v", err)
		}
	}
	if err := s.RemoveItem(0); !errors.Is(err, ErrLastItem) {
		t.Errorf("expected ErrLastItem, got %v", err)
	}
	if len(s.Items) != 1 {
		t.Errorf("expected the last item to stay, got %d items", len(s.Items))
	}
}

func TestSession_TaxFields(t *testing.T) {
	s := sampleSession(t)

	if s.Tax.BuyerName != "Sharma Electronics" || s.Tax.ConsigneeName != "Sharma Electronics" {
		t.Errorf("expected buyer and consignee from client, got %q and %q", s.Tax.BuyerName, s.Tax.ConsigneeName)
	}
	if s.Tax.BuyerState != "Maharashtra" || s.Tax.BuyerCode != "29" {
		t.Errorf("expected state derived from GSTIN, got %q %q", s.Tax.BuyerState, s.Tax.BuyerCode)
	}
	if s.Tax.ModeOfPayment != "Immediate" || s.Tax.AgencyStateCode != "29" {
		t.Errorf("expected default tax fields, got %+v", s.Tax)
	}

	if err := s.Tax.Set("destination", "Pune"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if s.Tax.Destination != "Pune" {
		t.Errorf("expected destination Pune, got %q", s.Tax.Destination)
	}
	if err := s.Tax.Set("nope", "x"); !errors.Is(err, ErrUnknownTaxField) {
		t.Errorf("expected ErrUnknownTaxField, got %v", err)
	}

	client := domain.NewClient("Asha", "Asha Bakes", 100)
	agency := domain.DefaultAgencyProfile()
	plain := NewSession(client, &agency, 1, testNow)
	if plain.Tax.BuyerState != "" || plain.Tax.BuyerCode != "" {
		t.Errorf("expected no state without GSTIN, got %q %q", plain.Tax.BuyerState, plain.Tax.BuyerCode)
	}
}

func TestSetTemplate(t *testing.T) {
	s := sampleSession(t)
	if err := s.SetTemplate("tax"); err != nil {
		t.Fatalf("SetTemplate failed: %v", err)
	}
	if s.Template != TemplateTax {
		t.Errorf("expected TAX, got %s", s.Template)
	}
	if err := s.SetTemplate("fancy"); !errors.Is(err, ErrUnknownTemplate) {
		t.Errorf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestSession_HeaderEditing(t *testing.T) {
	s := sampleSession(t)

	if err := s.SetNumber("  INV-2026-SHAR-1001-R1 "); err != nil {
		t.Fatalf("SetNumber failed: %v", err)
	}
	if s.Number != "INV-2026-SHAR-1001-R1" {
		t.Errorf("expected trimmed number, got %q", s.Number)
	}
	for _, bad := range []string{"", "   ", "INV/1", `INV\1`} {
		if err := s.SetNumber(bad); !errors.Is(err, ErrInvalidNumber) {
			t.Errorf("SetNumber(%q): expected ErrInvalidNumber, got %v", bad, err)
		}
	}
	if s.Number != "INV-2026-SHAR-1001-R1" {
		t.Errorf("expected a rejected number to leave the session alone, got %q", s.Number)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"2026-10-20", "20 Oct 2026"},
		{"16 Oct 2026 (Revised)", "16 Oct 2026 (Revised)"},
		{" Diwali 2026 ", "Diwali 2026"},
	}
	for _, tt := range tests {
		s.SetDate(tt.in)
		if s.Date != tt.want {
			t.Errorf("SetDate(%q) = %q, want %q", tt.in, s.Date, tt.want)
		}
	}
}

func TestTaxFields_Get(t *testing.T) {
	s := sampleSession(t)
	for _, key := range TaxFieldKeys() {
		if _, ok := s.Tax.Get(key); !ok {
			t.Errorf("expected key %q to be readable", key)
		}
	}

	if err := s.Tax.Set("referenceNo", "PO-77"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, _ := s.Tax.Get("referenceNo"); v != "PO-77" {
		t.Errorf("expected PO-77, got %q", v)
	}
	if _, ok := s.Tax.Get("nope"); ok {
		t.Error("expected unknown key to be reported")
	}
}

func TestRender_UsesEditedHeader(t *testing.T) {
	s := sampleSession(t)
	s.Template = TemplateTax
	if err := s.SetNumber("AF-0099"); err != nil {
		t.Fatalf("SetNumber failed: %v", err)
	}
	s.SetDate("16 Oct 2026 (Revised)")
	if err := s.Tax.Set("destination", "Pune Warehouse"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	out, err := PrintDocument(s)
	if err != nil {
		t.Fatalf("PrintDocument failed: %v", err)
	}
	for _, want := range []string{"AF-0099", "16 Oct 2026 (Revised)", "Pune Warehouse"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in printed invoice", want)
		}
	}
}
