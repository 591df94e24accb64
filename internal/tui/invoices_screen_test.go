package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andy/agencyflow/internal/domain"
	"github.com/andy/agencyflow/internal/invoice"
)

func editorModel(t *testing.T, tmpl invoice.Template) *InvoicesModel {
	t.Helper()
	client := domain.SampleClient()
	agency := domain.DefaultAgencyProfile()
	s := invoice.NewSession(&client, &agency, 1001, time.Date(2026, time.October, 16, 0, 0, 0, 0, time.Local))
	s.Template = tmpl
	return &InvoicesModel{mode: invoiceViewEditor, session: s}
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func setHeader(t *testing.T, m *InvoicesModel, k, value string) {
	t.Helper()
	for i, hk := range m.headerKeys {
		if hk == k {
			m.headerFields[i].SetValue(value)
			return
		}
	}
	t.Fatalf("header field %q not offered", k)
}

func TestInvoiceHeaderForm_TaxLayout(t *testing.T) {
	m := editorModel(t, invoice.TemplateTax)

	m.Update(keyPress("h"))
	if m.mode != invoiceViewEditHeader {
		t.Fatalf("expected header form, got mode %d", m.mode)
	}
	if want := 2 + len(invoice.TaxFieldKeys()); len(m.headerFields) != want {
		t.Fatalf("expected %d header fields, got %d", want, len(m.headerFields))
	}
	if m.headerFields[0].Value() != m.session.Number {
		t.Errorf("expected the form to start from the session number, got %q", m.headerFields[0].Value())
	}

	setHeader(t, m, "number", "AF-0099")
	setHeader(t, m, "date", "16 Oct 2026 (Revised)")
	setHeader(t, m, "destination", "Pune")
	setHeader(t, m, "modeOfPayment", "NEFT")

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.mode != invoiceViewEditor {
		t.Fatalf("expected to return to the editor, got mode %d (err %v)", m.mode, m.err)
	}
	if m.session.Number != "AF-0099" || m.session.Date != "16 Oct 2026 (Revised)" {
		t.Errorf("unexpected header %q %q", m.session.Number, m.session.Date)
	}
	if m.session.Tax.Destination != "Pune" || m.session.Tax.ModeOfPayment != "NEFT" {
		t.Errorf("unexpected tax fields %+v", m.session.Tax)
	}
}

func TestInvoiceHeaderForm_OtherLayouts(t *testing.T) {
	m := editorModel(t, invoice.TemplateModern)
	m.Update(keyPress("h"))

	if len(m.headerKeys) != 2 {
		t.Errorf("expected only number and date, got %v", m.headerKeys)
	}
}

func TestInvoiceHeaderForm_RejectsBadNumber(t *testing.T) {
	m := editorModel(t, invoice.TemplateTax)
	number, date := m.session.Number, m.session.Date

	m.Update(keyPress("h"))
	setHeader(t, m, "number", "INV/1")
	setHeader(t, m, "date", "tomorrow")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	if m.mode != invoiceViewEditHeader {
		t.Errorf("expected to stay on the form, got mode %d", m.mode)
	}
	if !errors.Is(m.err, invoice.ErrInvalidNumber) {
		t.Errorf("expected ErrInvalidNumber, got %v", m.err)
	}
	if m.session.Number != number || m.session.Date != date {
		t.Errorf("expected the session unchanged, got %q %q", m.session.Number, m.session.Date)
	}
}

func TestHeaderLabel(t *testing.T) {
	tests := map[string]string{
		"number":          "Invoice No.",
		"buyersOrderNo":   "Buyers Order No",
		"consigneeGST":    "Consignee GST",
		"agencyStateCode": "Agency State Code",
	}
	for in, want := range tests {
		if got := headerLabel(in); got != want {
			t.Errorf("headerLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
