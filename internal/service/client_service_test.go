package service

import (
	"context"
	"errors"
	"testing"

	"github.com/andy/agencyflow/internal/domain"
	"github.com/andy/agencyflow/internal/logger"
)

func clientWith(name, business string, deal, paid float64) *domain.Client {
	c := domain.NewClient(name, business, deal)
	if paid > 0 {
		c.Payments = append(c.Payments, domain.Payment{ID: "p", Amount: paid, Date: domain.Today()})
	}
	return c
}

func TestFilterClients(t *testing.T) {
	clients := []*domain.Client{
		clientWith("Rahul Sharma", "Sharma Electronics", 50000, 20000),
		clientWith("Priya Nair", "Nair Bakes", 10000, 10000),
		clientWith("Arjun Mehta", "Mehta Motors", 30000, 0),
	}

	tests := []struct {
		name    string
		query   string
		dueOnly bool
		want    []string
	}{
		{"all", "", false, []string{"Sharma Electronics", "Nair Bakes", "Mehta Motors"}},
		{"business name ignores case", "NAIR", false, []string{"Nair Bakes"}},
		{"contact name", "arjun", false, []string{"Mehta Motors"}},
		{"due only", "", true, []string{"Sharma Electronics", "Mehta Motors"}},
		{"query and due", "a", true, []string{"Sharma Electronics", "Mehta Motors"}},
		{"no match", "zzz", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterClients(clients, tt.query, tt.dueOnly)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d clients, got %d", len(tt.want), len(got))
			}
			for i, c := range got {
				if c.BusinessName != tt.want[i] {
					t.Errorf("position %d: expected %s, got %s", i, tt.want[i], c.BusinessName)
				}
			}
		})
	}
}

func TestStandardPrice(t *testing.T) {
	catalog := make([]*domain.ServiceDefinition, 0)
	for _, def := range domain.DefaultServices() {
		def := def
		catalog = append(catalog, &def)
	}

	got := StandardPrice([]string{"Meta Ads (FB/Insta)", "SEO Standard", "Carrier Pigeons"}, catalog)
	if got != 45000 {
		t.Errorf("expected 45000, got %v", got)
	}
	if StandardPrice(nil, catalog) != 0 {
		t.Error("expected 0 for no services")
	}
}

func TestClientService_ResolveAndPay(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewClientService(f.clients, f.services, logger.Nop())

	byName, err := svc.Resolve(ctx, "sharma electronics")
	if err != nil {
		t.Fatalf("Resolve by name failed: %v", err)
	}
	if byName.ID != "1" {
		t.Errorf("expected the sample client, got %s", byName.ID)
	}

	if _, err := svc.Resolve(ctx, "missing"); !errors.Is(err, ErrClientNotFound) {
		t.Errorf("expected ErrClientNotFound, got %v", err)
	}

	updated, err := svc.RecordPayment(ctx, "1", 5000, "october", testNow)
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if updated.Paid() != 25000 || updated.Due() != 25000 {
		t.Errorf("expected paid 25000 and due 25000, got %v/%v", updated.Paid(), updated.Due())
	}

	stored, err := f.clients.GetByID(ctx, "1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(stored.Payments) != 2 || !stored.Payments[1].Date.Equal(testNow) {
		t.Errorf("expected the payment stored with its time, got %+v", stored.Payments)
	}

	if _, err := svc.RecordPayment(ctx, "1", 0, "", testNow); err == nil {
		t.Error("expected a zero payment to be rejected")
	}
}

func TestClientService_CreateSearchDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewClientService(f.clients, f.services, logger.Nop())

	price, err := svc.StandardPrice(ctx, []string{"Google Ads", "Social Media Mgmt"})
	if err != nil {
		t.Fatalf("StandardPrice failed: %v", err)
	}
	c := domain.NewClient("Priya Nair", "Nair Bakes", price)
	c.Services = []string{"Google Ads", "Social Media Mgmt"}
	if err := svc.Create(ctx, c); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if c.DealAmount != 45000 {
		t.Errorf("expected standard price 45000, got %v", c.DealAmount)
	}

	found, err := svc.Search(ctx, "bakes", true)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(found) != 1 || found[0].ID != c.ID {
		t.Errorf("expected Nair Bakes, got %+v", found)
	}

	if err := svc.Delete(ctx, "Nair Bakes"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected only the sample client left, got %d", len(all))
	}

	c.ID = "nope"
	if err := svc.Update(ctx, c); !errors.Is(err, ErrClientNotFound) {
		t.Errorf("expected ErrClientNotFound on update, got %v", err)
	}
}

func TestCatalogService(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewCatalogService(f.services)

	def, err := svc.Resolve(ctx, "google ads")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if def.Price != 30000 {
		t.Errorf("expected 30000, got %v", def.Price)
	}

	def.Price = 32000
	if err := svc.Update(ctx, def); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := svc.Delete(ctx, "5"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 4 || list[1].Price != 32000 {
		t.Errorf("unexpected catalog %+v", list)
	}

	if _, err := svc.Resolve(ctx, "Billboards"); !errors.Is(err, ErrServiceNotFound) {
		t.Errorf("expected ErrServiceNotFound, got %v", err)
	}
}

func TestExpenseService(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewExpenseService(f.expenses)

	rent := domain.NewExpense("October rent", 30000, "Office Rent")
	figma := domain.NewExpense("Figma", 1500, "Software Subscriptions")
	for _, e := range []*domain.Expense{rent, figma} {
		if err := svc.Add(ctx, e); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	all, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 || all[0].ID != figma.ID {
		t.Errorf("expected newest first, got %+v", all)
	}

	software, err := svc.List(ctx, "Software Subscriptions")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(software) != 1 || software[0].Title != "Figma" {
		t.Errorf("expected only Figma, got %+v", software)
	}

	if err := svc.Delete(ctx, "missing"); !errors.Is(err, ErrExpenseNotFound) {
		t.Errorf("expected ErrExpenseNotFound, got %v", err)
	}
}
