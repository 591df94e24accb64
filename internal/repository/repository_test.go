package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/andy/agencyflow/internal/domain"
)

// memoryRecords is an in-memory RecordRepository for tests
type memoryRecords struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryRecords() *memoryRecords {
	return &memoryRecords{values: make(map[string]string)}
}

func (m *memoryRecords) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryRecords) Put(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memoryRecords) Update(ctx context.Context, key string, fn func(string, bool) (string, error)) error {
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

func (m *memoryRecords) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memoryRecords) Keys(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func TestClientRepo_SeedsSampleClientUntilWritten(t *testing.T) {
	ctx := context.Background()
	repo := NewClientRepo(newMemoryRecords())

	clients, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(clients) != 1 || clients[0].BusinessName != "Sharma Electronics" {
		t.Fatalf("expected the sample client, got %+v", clients)
	}
	if clients[0].Paid() != 20000 {
		t.Errorf("expected sample payments of 20000, got %v", clients[0].Paid())
	}
}

func TestClientRepo_CreateUpdateDelete(t *testing.T) {
	ctx := context.Background()
	records := newMemoryRecords()
	records.values[KeyClients] = "[]"
	repo := NewClientRepo(records)

	client := domain.NewClient("Asha", "Asha Bakes", 12000)
	if err := repo.Create(ctx, client); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	client.DealAmount = 15000
	if err := repo.Update(ctx, client); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := repo.GetByBusinessName(ctx, "asha bakes")
	if err != nil {
		t.Fatalf("GetByBusinessName failed: %v", err)
	}
	if got.DealAmount != 15000 {
		t.Errorf("expected updated deal 15000, got %v", got.DealAmount)
	}

	if err := repo.Delete(ctx, client.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, client.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestClientRepo_RejectsNegativeDeal(t *testing.T) {
	repo := NewClientRepo(newMemoryRecords())
	client := domain.NewClient("Asha", "Asha Bakes", -1)
	if err := repo.Create(context.Background(), client); err == nil {
		t.Fatal("expected validation error for negative deal amount")
	}
}

func TestClientRepo_ToleratesMissingFields(t *testing.T) {
	records := newMemoryRecords()
	records.values[KeyClients] = `[{"id":"9","name":"N","businessName":"B","dealAmount":100,"startDate":"2024-01-05"}]`
	repo := NewClientRepo(records)

	c, err := repo.GetByID(context.Background(), "9")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if c.Payments == nil || c.Services == nil {
		t.Error("expected empty payments and services, got nil")
	}
	if c.Status != domain.ClientStatusActive {
		t.Errorf("expected ACTIVE default status, got %s", c.Status)
	}
	if c.Due() != 100 {
		t.Errorf("expected due 100, got %v", c.Due())
	}
}

func TestSequenceRepo_StartsAtSeedAndIncrements(t *testing.T) {
	ctx := context.Background()
	repo := NewSequenceRepo(newMemoryRecords())

	current, err := repo.Current(ctx)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if current != SequenceSeed {
		t.Fatalf("expected seed %d, got %d", SequenceSeed, current)
	}

	prev := current
	for i := 0; i < 5; i++ {
		next, err := repo.Next(ctx)
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if next <= prev {
			t.Fatalf("sequence not increasing: %d after %d", next, prev)
		}
		prev = next
	}
	if prev != SequenceSeed+5 {
		t.Errorf("expected %d, got %d", SequenceSeed+5, prev)
	}
}

func TestSequenceRepo_ReadsBrowserValue(t *testing.T) {
	records := newMemoryRecords()
	records.values[KeyInvoiceSeq] = "1042"
	repo := NewSequenceRepo(records)

	next, err := repo.Next(context.Background())
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if next != 1043 {
		t.Errorf("expected 1043, got %d", next)
	}
	if records.values[KeyInvoiceSeq] != "1043" {
		t.Errorf("expected persisted 1043, got %q", records.values[KeyInvoiceSeq])
	}
}

func TestAgencyRepo_DefaultsAndSave(t *testing.T) {
	ctx := context.Background()
	repo := NewAgencyRepo(newMemoryRecords())

	profile, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if profile.Name != "Your Digital Agency Name" {
		t.Errorf("expected default profile, got %q", profile.Name)
	}

	profile.Name = "Pixel Works"
	profile.CustomInvoiceTemplate = "<h1>{{agency_name}}</h1>"
	if err := repo.Save(ctx, profile); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	saved, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if saved.Name != "Pixel Works" || saved.CustomInvoiceTemplate == "" {
		t.Errorf("profile not persisted: %+v", saved)
	}
}

func TestExpenseRepo_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewExpenseRepo(newMemoryRecords())

	first := domain.NewExpense("Rent", 10000, "Office Rent")
	second := domain.NewExpense("Figma", 5000, "Software Subscriptions")
	for _, e := range []*domain.Expense{first, second} {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID {
		t.Errorf("expected newest expense first, got %+v", list)
	}

	bad := domain.NewExpense("Lunch", 300, "Snacks")
	if err := repo.Create(ctx, bad); err == nil {
		t.Error("expected unknown category to be rejected")
	}
}
