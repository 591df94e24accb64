package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/andy/agencyflow/internal/domain"
	"github.com/andy/agencyflow/internal/export"
	"github.com/andy/agencyflow/internal/finance"
	"github.com/andy/agencyflow/internal/repository"
)

// Dashboard is everything the overview screen shows
type Dashboard struct {
	Summary  finance.Summary
	Trend    []finance.TrendPoint
	Clients  []finance.ClientBar
	Expenses []finance.CategoryTotal
}

// ReportFormat selects the file written by SaveReport
type ReportFormat string

const (
	FormatCSV  ReportFormat = "csv"
	FormatXLSX ReportFormat = "xlsx"
)

// ReportService provides aggregations and report exports
type ReportService interface {
	// Dashboard computes the summary, trend and breakdowns in one pass over the data
	Dashboard(ctx context.Context, now time.Time) (*Dashboard, error)
	Summary(ctx context.Context) (finance.Summary, error)
	ExpenseStats(ctx context.Context, now time.Time) (finance.ExpenseStats, error)

	// RevenueReport lists payments received in period
	RevenueReport(ctx context.Context, period export.Period, now time.Time) (*export.Report, error)
	ExpenseReport(ctx context.Context, now time.Time) (*export.Report, error)

	// SaveReport writes report into the export directory and returns the path
	SaveReport(report *export.Report, format ReportFormat) (string, error)
}

type reportService struct {
	clientRepo  repository.ClientRepository
	expenseRepo repository.ExpenseRepository
	outputDir   string
	log         zerolog.Logger
}

// NewReportService creates a new report service
func NewReportService(
	clientRepo repository.ClientRepository,
	expenseRepo repository.ExpenseRepository,
	outputDir string,
	log zerolog.Logger,
) ReportService {
	return &reportService{
		clientRepo:  clientRepo,
		expenseRepo: expenseRepo,
		outputDir:   outputDir,
		log:         log,
	}
}

func (s *reportService) load(ctx context.Context) ([]*domain.Client, []*domain.Expense, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := s.expenseRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return clients, expenses, nil
}

func (s *reportService) Dashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	clients, expenses, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Summary:  finance.Summarize(clients, expenses),
		Trend:    finance.Trend(clients, expenses, now),
		Clients:  finance.ClientChart(clients),
		Expenses: finance.ByCategory(expenses),
	}, nil
}

func (s *reportService) Summary(ctx context.Context) (finance.Summary, error) {
	clients, expenses, err := s.load(ctx)
	if err != nil {
		return finance.Summary{}, err
	}
	return finance.Summarize(clients, expenses), nil
}

func (s *reportService) ExpenseStats(ctx context.Context, now time.Time) (finance.ExpenseStats, error) {
	expenses, err := s.expenseRepo.List(ctx)
	if err != nil {
		return finance.ExpenseStats{}, err
	}
	return finance.Expenses(expenses, now), nil
}

func (s *reportService) RevenueReport(ctx context.Context, period export.Period, now time.Time) (*export.Report, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return export.Revenue(clients, period, now)
}

func (s *reportService) ExpenseReport(ctx context.Context, now time.Time) (*export.Report, error) {
	expenses, err := s.expenseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return export.Expenses(expenses, now)
}

func (s *reportService) SaveReport(report *export.Report, format ReportFormat) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	path := filepath.Join(s.outputDir, report.FileName(string(format)))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}

	switch format {
	case FormatXLSX:
		err = report.WriteXLSX(f)
	default:
		err = report.WriteCSV(f)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	s.log.Info().Str("path", path).Int("rows", len(report.Rows)).Msg("report exported")
	return path, nil
}
