package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/andy/agencyflow/internal/domain"
	"github.com/andy/agencyflow/internal/logger"
	"github.com/andy/agencyflow/internal/repository"
)

func TestBackup_ExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newFixture()

	rent := domain.NewExpense("Rent", 10000, "Office Rent")
	if err := src.expenses.Create(ctx, rent); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	c := domain.NewClient("Priya Nair", "Nair Bakes", 12000)
	if err := src.clients.Create(ctx, c); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := src.sequence.Next(ctx); err != nil {
		t.Fatalf("Next failed: %v", err)
	}

	var buf bytes.Buffer
	if err := NewBackupService(src.records, src.invoices, logger.Nop()).Export(ctx, &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"agency_invoice_seq": 1001`) {
		t.Errorf("expected the counter as a number, got %s", buf.String())
	}

	dst := newFixture()
	keys, err := NewBackupService(dst.records, dst.invoices, logger.Nop()).Import(ctx, &buf)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(keys) != 3 {
		t.Errorf("expected clients, expenses and counter restored, got %v", keys)
	}

	clients, err := dst.clients.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(clients) != 2 || clients[1].BusinessName != "Nair Bakes" {
		t.Errorf("unexpected clients %+v", clients)
	}
	seq, err := dst.sequence.Next(ctx)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if seq != 1002 {
		t.Errorf("expected numbering to continue at 1002, got %d", seq)
	}
}

func TestBackup_ImportsBrowserStorage(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewBackupService(f.records, f.invoices, logger.Nop())

	doc := `{
		"agency_expenses": "[{\"id\":\"9\",\"title\":\"Canva\",\"amount\":499,\"category\":\"Software Subscriptions\",\"date\":\"2026-10-01\"}]",
		"agency_invoice_seq": "1042",
		"theme": "dark"
	}`
	keys, err := svc.Import(ctx, strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("expected two known keys, got %v", keys)
	}

	expenses, err := f.expenses.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(expenses) != 1 || expenses[0].Amount != 499 {
		t.Errorf("unexpected expenses %+v", expenses)
	}
	if seq, _ := f.sequence.Current(ctx); seq != 1042 {
		t.Errorf("expected counter 1042, got %d", seq)
	}
}

func TestBackup_ImportRejectsBadRecords(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewBackupService(f.records, f.invoices, logger.Nop())

	doc := `{"agency_expenses": [], "agency_clients": [{"id": "1", "startDate": "yesterday"}]}`
	if _, err := svc.Import(ctx, strings.NewReader(doc)); err == nil {
		t.Fatal("expected an invalid client date to be rejected")
	}
	if _, found, _ := f.records.Get(ctx, repository.KeyExpenses); found {
		t.Error("expected nothing written when any record is invalid")
	}

	if _, err := svc.Import(ctx, strings.NewReader(`{"theme": "dark"}`)); !errors.Is(err, ErrEmptyBackup) {
		t.Errorf("expected ErrEmptyBackup, got %v", err)
	}
	if _, err := svc.Import(ctx, strings.NewReader(`{"agency_invoice_seq": "abc"}`)); err == nil {
		t.Error("expected a non-numeric counter to be rejected")
	}
}

func TestBackup_Reset(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewBackupService(f.records, f.invoices, logger.Nop())

	if err := f.records.Put(ctx, repository.KeyClients, "[]"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, err := f.sequence.Next(ctx); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	f.invoices.invoices = append(f.invoices.invoices, &domain.IssuedInvoice{InvoiceNumber: "INV-1"})

	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	keys, _ := f.records.Keys(ctx)
	if len(keys) != 0 {
		t.Errorf("expected no records, got %v", keys)
	}
	if len(f.invoices.invoices) != 0 {
		t.Error("expected the invoice log cleared")
	}

	clients, _ := f.clients.List(ctx)
	if len(clients) != 1 || clients[0].ID != "1" {
		t.Error("expected the sample client back after a reset")
	}
}
