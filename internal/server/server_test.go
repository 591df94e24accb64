package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andy/agencyflow/internal/domain"
	"github.com/andy/agencyflow/internal/logger"
	"github.com/andy/agencyflow/internal/service"
)

type mockInvoices struct {
	issued []*domain.IssuedInvoice
	err    error
}

func (m *mockInvoices) GetIssued(ctx context.Context, number string) (*domain.IssuedInvoice, error) {
	for _, inv := range m.issued {
		if inv.InvoiceNumber == number {
			return inv, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", service.ErrInvoiceNotFound, number)
}

func (m *mockInvoices) ListIssued(ctx context.Context, clientID *string) ([]*domain.IssuedInvoice, error) {
	return m.issued, m.err
}

func newTestServer() *Server {
	return New(&mockInvoices{issued: []*domain.IssuedInvoice{{
		InvoiceNumber: "INV-2026-SHAR-1001",
		ClientID:      "1",
		BusinessName:  "Sharma Electronics",
		Template:      "MODERN",
		InvoiceDate:   "16 Oct 2026",
		Total:         55000,
		Paid:          20000,
		Due:           35000,
		HTML:          "<html><body>printed invoice</body></html>",
	}}}, logger.Nop())
}

func get(t *testing.T, s *Server, path string) (int, string) {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest("GET", path, nil), -1)
	if err != nil {
		t.Fatalf("request %s failed: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestIndexListsInvoices(t *testing.T) {
	status, body := get(t, newTestServer(), "/")
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(body, `href="/invoices/INV-2026-SHAR-1001"`) {
		t.Errorf("expected invoice link in index, got %s", body)
	}
	if !strings.Contains(body, "₹55,000") {
		t.Errorf("expected formatted total in index, got %s", body)
	}
}

func TestIndexEscapesClientNames(t *testing.T) {
	s := New(&mockInvoices{issued: []*domain.IssuedInvoice{{
		InvoiceNumber: "INV-2026-RDLA-1002",
		BusinessName:  "R&D <Labs>",
		Total:         1000,
	}}}, logger.Nop())

	resp, err := s.App().Test(httptest.NewRequest("GET", "/", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected an HTML response, got %q", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "R&amp;D &lt;Labs&gt;") {
		t.Errorf("expected escaped business name, got %s", body)
	}
}

func TestIndexEmpty(t *testing.T) {
	s := New(&mockInvoices{}, logger.Nop())
	status, body := get(t, s, "/")
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(body, "No invoices have been printed yet.") {
		t.Errorf("expected empty message, got %s", body)
	}
}

func TestInvoicePage(t *testing.T) {
	status, body := get(t, newTestServer(), "/invoices/INV-2026-SHAR-1001")
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}
	if body != "<html><body>printed invoice</body></html>" {
		t.Errorf("expected stored document, got %s", body)
	}
}

func TestInvoicePageNotFound(t *testing.T) {
	status, _ := get(t, newTestServer(), "/invoices/INV-2026-XXXX-9999")
	if status != 404 {
		t.Errorf("expected 404, got %d", status)
	}
}

func TestListJSON(t *testing.T) {
	status, body := get(t, newTestServer(), "/api/invoices")
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}

	var out []map[string]any
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 invoice, got %d", len(out))
	}
	if out[0]["invoiceNumber"] != "INV-2026-SHAR-1001" || out[0]["due"] != float64(35000) {
		t.Errorf("unexpected invoice %v", out[0])
	}
	if _, ok := out[0]["html"]; ok {
		t.Error("expected list to omit the document body")
	}
}

func TestListJSONError(t *testing.T) {
	s := New(&mockInvoices{err: fmt.Errorf("database locked")}, logger.Nop())
	status, _ := get(t, s, "/api/invoices")
	if status != 500 {
		t.Errorf("expected 500, got %d", status)
	}
}
