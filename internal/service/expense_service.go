package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/andy/agencyflow/internal/domain"
	"github.com/andy/agencyflow/internal/repository"
)

var ErrExpenseNotFound = errors.New("expense not found")

// ExpenseService records agency expenses
type ExpenseService interface {
	// List returns expenses newest first, limited to category when it is set
	List(ctx context.Context, category string) ([]*domain.Expense, error)
	Add(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, id string) error
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo}
}

func (s *expenseService) List(ctx context.Context, category string) ([]*domain.Expense, error) {
	expenses, err := s.expenseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return expenses, nil
	}

	filtered := make([]*domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Category == category {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

func (s *expenseService) Add(ctx context.Context, expense *domain.Expense) error {
	return s.expenseRepo.Create(ctx, expense)
}

func (s *expenseService) Delete(ctx context.Context, id string) error {
	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrExpenseNotFound, id)
		}
		return err
	}
	return nil
}
