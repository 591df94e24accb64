package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/andy/agencyflow/internal/assistant"
	"github.com/andy/agencyflow/internal/domain"
	"github.com/andy/agencyflow/internal/invoice"
	"github.com/andy/agencyflow/internal/logger"
	"github.com/andy/agencyflow/internal/repository"
)

// mock implementations
type mockRecords struct {
	mu     sync.Mutex
	values map[string]string
}

func newMockRecords() *mockRecords {
	return &mockRecords{values: make(map[string]string)}
}

func (m *mockRecords) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockRecords) Put(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *mockRecords) Update(ctx context.Context, key string, fn func(string, bool) (string, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, found := m.values[key]
	next, err := fn(current, found)
	if err != nil {
		return err
	}
	m.values[key] = next
	return nil
}

func (m *mockRecords) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *mockRecords) Keys(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

type mockInvoiceRepo struct {
	invoices []*domain.IssuedInvoice
}

func (m *mockInvoiceRepo) Create(ctx context.Context, inv *domain.IssuedInvoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}
	inv.ID = int64(len(m.invoices) + 1)
	m.invoices = append(m.invoices, inv)
	return nil
}

func (m *mockInvoiceRepo) GetByNumber(ctx context.Context, number string) (*domain.IssuedInvoice, error) {
	for i := len(m.invoices) - 1; i >= 0; i-- {
		if m.invoices[i].InvoiceNumber == number {
			return m.invoices[i], nil
		}
	}
	return nil, fmt.Errorf("invoice %s: %w", number, repository.ErrNotFound)
}

func (m *mockInvoiceRepo) List(ctx context.Context, clientID *string) ([]*domain.IssuedInvoice, error) {
	var out []*domain.IssuedInvoice
	for i := len(m.invoices) - 1; i >= 0; i-- {
		if clientID == nil || m.invoices[i].ClientID == *clientID {
			out = append(out, m.invoices[i])
		}
	}
	return out, nil
}

func (m *mockInvoiceRepo) DeleteAll(ctx context.Context) error {
	m.invoices = nil
	return nil
}

type mockDrafter struct {
	kind assistant.MessageKind
	due  float64
}

func (m *mockDrafter) DraftMessage(ctx context.Context, client *domain.Client, kind assistant.MessageKind, due float64) string {
	m.kind = kind
	m.due = due
	return "Dear " + client.Name + ", please find the invoice attached."
}

// fixture wires the record-backed repositories over an in-memory store
type fixture struct {
	records  *mockRecords
	clients  *repository.ClientRepo
	services *repository.ServiceRepo
	expenses *repository.ExpenseRepo
	agency   *repository.AgencyRepo
	sequence *repository.SequenceRepo
	invoices *mockInvoiceRepo
}

func newFixture() *fixture {
	records := newMockRecords()
	return &fixture{
		records:  records,
		clients:  repository.NewClientRepo(records),
		services: repository.NewServiceRepo(records),
		expenses: repository.NewExpenseRepo(records),
		agency:   repository.NewAgencyRepo(records),
		sequence: repository.NewSequenceRepo(records),
		invoices: &mockInvoiceRepo{},
	}
}

func (f *fixture) invoiceService(dir string, drafter Drafter) InvoiceService {
	return NewInvoiceService(f.clients, f.agency, f.sequence, f.invoices, drafter,
		InvoiceOptions{OutputDir: dir}, logger.Nop())
}

var testNow = time.Date(2026, time.October, 16, 10, 0, 0, 0, time.Local)

func TestStartSession_NumbersIncrease(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := f.invoiceService(t.TempDir(), &mockDrafter{})

	first, err := svc.StartSession(ctx, "Sharma Electronics", testNow)
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	second, err := svc.StartSession(ctx, "1", testNow)
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	if first.Number != "INV-2026-SHAR-1001" {
		t.Errorf("expected INV-2026-SHAR-1001, got %s", first.Number)
	}
	if second.Number != "INV-2026-SHAR-1002" {
		t.Errorf("expected INV-2026-SHAR-1002, got %s", second.Number)
	}
	if first.Template != invoice.TemplateModern {
		t.Errorf("expected MODERN by default, got %s", first.Template)
	}
	if len(first.Items) != 2 || first.Items[0].Rate != 25000 {
		t.Errorf("expected two items of 25000, got %+v", first.Items)
	}
}

func TestStartSession_DefaultTemplate(t *testing.T) {
	f := newFixture()
	svc := NewInvoiceService(f.clients, f.agency, f.sequence, f.invoices, &mockDrafter{},
		InvoiceOptions{DefaultTemplate: invoice.TemplateTax}, logger.Nop())

	s, err := svc.StartSession(context.Background(), "1", testNow)
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if s.Template != invoice.TemplateTax {
		t.Errorf("expected TAX, got %s", s.Template)
	}
}

func TestStartSession_UnknownClient(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := f.invoiceService(t.TempDir(), &mockDrafter{})

	_, err := svc.StartSession(ctx, "Nobody Ltd", testNow)
	if !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}

	seq, err := f.sequence.Current(ctx)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if seq != repository.SequenceSeed {
		t.Errorf("expected the counter untouched at %d, got %d", repository.SequenceSeed, seq)
	}
}

func TestPrint_WritesFileAndRecordsInvoice(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := f.invoiceService(t.TempDir(), &mockDrafter{})

	s, err := svc.StartSession(ctx, "1", testNow)
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if err := s.SetItemField(0, "rate", "30000"); err != nil {
		t.Fatalf("SetItemField failed: %v", err)
	}

	issued, err := svc.Print(ctx, s)
	if err != nil {
		t.Fatalf("Print failed: %v", err)
	}

	if issued.Total != 55000 || issued.Paid != 20000 || issued.Due != 35000 {
		t.Errorf("unexpected totals %v/%v/%v", issued.Total, issued.Paid, issued.Due)
	}
	if issued.Template != "MODERN" || issued.ClientID != "1" {
		t.Errorf("unexpected issued invoice %+v", issued)
	}
	if !strings.HasPrefix(issued.HTML, "<!DOCTYPE html>") {
		t.Error("expected a standalone document")
	}

	data, err := os.ReadFile(issued.FilePath)
	if err != nil {
		t.Fatalf("expected the printed file: %v", err)
	}
	if string(data) != issued.HTML {
		t.Error("file content differs from the recorded document")
	}

	listed, err := svc.ListIssued(ctx, nil)
	if err != nil {
		t.Fatalf("ListIssued failed: %v", err)
	}
	if len(listed) != 1 || listed[0].InvoiceNumber != s.Number {
		t.Errorf("expected the printed invoice listed, got %+v", listed)
	}
}

func TestShareLinks(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	drafter := &mockDrafter{}
	svc := f.invoiceService("", drafter)

	s, err := svc.StartSession(ctx, "1", testNow)
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if _, err := svc.Print(ctx, s); err != nil {
		t.Fatalf("Print failed: %v", err)
	}

	wa, err := svc.WhatsAppLink(ctx, s.Number)
	if err != nil {
		t.Fatalf("WhatsAppLink failed: %v", err)
	}
	if !strings.HasPrefix(wa, "https://wa.me/9876543210?text=") {
		t.Errorf("unexpected link %s", wa)
	}
	u, err := url.Parse(wa)
	if err != nil {
		t.Fatalf("invalid link: %v", err)
	}
	text := u.Query().Get("text")
	for _, want := range []string{
		"Hello Rahul Sharma,",
		"Here is your invoice " + s.Number + " from Your Digital Agency Name.",
		"Total Amount: ₹50,000",
		"Paid: ₹20,000",
		"Due Amount: ₹30,000",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected message to contain %q, got %q", want, text)
		}
	}

	mail, err := svc.EmailLink(ctx, s.Number)
	if err != nil {
		t.Fatalf("EmailLink failed: %v", err)
	}
	if !strings.HasPrefix(mail, "mailto:rahul@example.com?subject=Invoice%20"+s.Number) {
		t.Errorf("unexpected mail link %s", mail)
	}
	if drafter.kind != assistant.InvoiceEmail || drafter.due != 30000 {
		t.Errorf("expected an invoice email draft for 30000, got %s/%v", drafter.kind, drafter.due)
	}
}

func TestShareLinks_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := f.invoiceService("", &mockDrafter{})

	if _, err := svc.WhatsAppLink(ctx, "INV-2026-NONE-1"); !errors.Is(err, ErrInvoiceNotFound) {
		t.Errorf("expected ErrInvoiceNotFound, got %v", err)
	}

	client := domain.NewClient("Asha", "Quiet Co", 1000)
	if err := f.clients.Create(ctx, client); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	s, err := svc.StartSession(ctx, client.ID, testNow)
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if _, err := svc.Print(ctx, s); err != nil {
		t.Fatalf("Print failed: %v", err)
	}

	if _, err := svc.WhatsAppLink(ctx, s.Number); !errors.Is(err, ErrNoContact) {
		t.Errorf("expected ErrNoContact without a phone, got %v", err)
	}
	if _, err := svc.EmailLink(ctx, s.Number); !errors.Is(err, ErrNoContact) {
		t.Errorf("expected ErrNoContact without an email, got %v", err)
	}
}
