package repository

import (
	"context"
	"fmt"

	"github.com/andy/agencyflow/internal/domain"
)

// ExpenseRepo stores expenses under agency_expenses, newest first
type ExpenseRepo struct {
	docs document[domain.Expense]
}

// NewExpenseRepo creates a new ExpenseRepo
func NewExpenseRepo(records RecordRepository) *ExpenseRepo {
	return &ExpenseRepo{docs: document[domain.Expense]{
		records: records,
		key:     KeyExpenses,
	}}
}

// Create prepends the expense so listings show the latest first
func (r *ExpenseRepo) Create(ctx context.Context, expense *domain.Expense) error {
	if err := expense.Validate(); err != nil {
		return fmt.Errorf("invalid expense: %w", err)
	}
	if expense.ID == "" {
		expense.ID = domain.NewID()
	}

	err := r.docs.mutate(ctx, func(items []domain.Expense) ([]domain.Expense, error) {
		return append([]domain.Expense{*expense}, items...), nil
	})
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	items, err := r.docs.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("expense %s: %w", id, ErrNotFound)
}

func (r *ExpenseRepo) List(ctx context.Context) ([]*domain.Expense, error) {
	items, err := r.docs.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	expenses := make([]*domain.Expense, len(items))
	for i := range items {
		expenses[i] = &items[i]
	}
	return expenses, nil
}

func (r *ExpenseRepo) Delete(ctx context.Context, id string) error {
	err := r.docs.mutate(ctx, func(items []domain.Expense) ([]domain.Expense, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("expense %s: %w", id, ErrNotFound)
	})
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}
