package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/andy/agencyflow/internal/domain"
)

var now = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.Local)

func paidClient() *domain.Client {
	c := domain.NewClient("Rahul Sharma", "Sharma Electronics", 50000)
	c.Services = []string{"Meta Ads (FB/Insta)", "SEO Standard"}
	c.Payments = []domain.Payment{
		{ID: "1", Amount: 20000, Date: domain.NewDate(time.Date(2026, time.October, 12, 9, 0, 0, 0, time.Local))},
		{ID: "2", Amount: 5000, Date: domain.NewDate(time.Date(2026, time.September, 20, 9, 0, 0, 0, time.Local))},
		{ID: "3", Amount: 7000, Date: domain.NewDate(time.Date(2025, time.March, 2, 9, 0, 0, 0, time.Local))},
		{ID: "4", Amount: 900, Date: domain.NewDate(time.Date(2026, time.October, 20, 9, 0, 0, 0, time.Local))}, // future
	}
	return c
}

func TestRevenue_Windows(t *testing.T) {
	tests := []struct {
		period Period
		rows   int
		file   string
	}{
		{PeriodWeek, 1, "revenue_report_weekly_2026-10-16.csv"},
		{PeriodMonth, 2, "revenue_report_monthly_2026-10-16.csv"},
		{PeriodYear, 2, "revenue_report_yearly_2026-10-16.csv"},
		{PeriodAll, 3, "revenue_report_all_time_2026-10-16.csv"},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			r, err := Revenue([]*domain.Client{paidClient()}, tt.period, now)
			if err != nil {
				t.Fatalf("Revenue failed: %v", err)
			}
			if len(r.Rows) != tt.rows {
				t.Errorf("expected %d rows, got %d", tt.rows, len(r.Rows))
			}
			if got := r.FileName("csv"); got != tt.file {
				t.Errorf("expected file %s, got %s", tt.file, got)
			}
		})
	}
}

func TestRevenue_Empty(t *testing.T) {
	c := domain.NewClient("A", "A Co", 100)
	if _, err := Revenue([]*domain.Client{c}, PeriodWeek, now); !errors.Is(err, ErrNoRevenueData) {
		t.Errorf("expected ErrNoRevenueData, got %v", err)
	}
}

func TestRevenue_CSV(t *testing.T) {
	r, err := Revenue([]*domain.Client{paidClient()}, PeriodWeek, now)
	if err != nil {
		t.Fatalf("Revenue failed: %v", err)
	}

	var buf bytes.Buffer
	if err := r.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	want := "Date,Business Name,Client Name,Services,Amount (INR)\n" +
		`12/10/2026,Sharma Electronics,Rahul Sharma,"Meta Ads (FB/Insta), SEO Standard",20000` + "\n"
	if buf.String() != want {
		t.Errorf("unexpected CSV:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestExpenses_CSV(t *testing.T) {
	if _, err := Expenses(nil, now); !errors.Is(err, ErrNoExpenses) {
		t.Errorf("expected ErrNoExpenses, got %v", err)
	}

	e := domain.NewExpense("Figma, yearly", 5000.5, "Software Subscriptions")
	e.Date = domain.MustParseDate("2026-10-02")
	e.Notes = "team plan"

	r, err := Expenses([]*domain.Expense{e}, now)
	if err != nil {
		t.Fatalf("Expenses failed: %v", err)
	}
	if r.FileName("csv") != "expenses_report_2026-10-16.csv" {
		t.Errorf("unexpected file name %s", r.FileName("csv"))
	}

	var buf bytes.Buffer
	if err := r.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", buf.String())
	}
	if lines[1] != `2026-10-02,"Figma, yearly",Software Subscriptions,5000.5,team plan` {
		t.Errorf("unexpected row %q", lines[1])
	}
}

func TestWriteXLSX(t *testing.T) {
	r, err := Revenue([]*domain.Client{paidClient()}, PeriodAll, now)
	if err != nil {
		t.Fatalf("Revenue failed: %v", err)
	}

	var buf bytes.Buffer
	if err := r.WriteXLSX(&buf); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	if name := f.GetSheetName(0); name != "Revenue" {
		t.Errorf("expected sheet Revenue, got %q", name)
	}
	header, err := f.GetCellValue("Revenue", "B1")
	if err != nil || header != "Business Name" {
		t.Errorf("expected header Business Name, got %q (%v)", header, err)
	}
	amount, err := f.GetCellValue("Revenue", "E2")
	if err != nil || amount != "20000" {
		t.Errorf("expected first amount 20000, got %q (%v)", amount, err)
	}
	rows, err := f.GetRows("Revenue")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 4 {
		t.Errorf("expected header and 3 rows, got %d", len(rows))
	}
}

func TestParsePeriod(t *testing.T) {
	if p, err := ParsePeriod("month"); err != nil || p != PeriodMonth {
		t.Errorf("ParsePeriod(month) = %q, %v", p, err)
	}
	if _, err := ParsePeriod("decade"); err == nil {
		t.Error("expected an error for an unknown period")
	}
}
