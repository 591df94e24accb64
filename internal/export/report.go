// Package export writes revenue and expense reports as CSV or XLSX.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/andy/agencyflow/internal/domain"
)

var (
	ErrNoRevenueData = errors.New("no revenue data found for the selected period")
	ErrNoExpenses    = errors.New("no expenses to export")
)

// RowDateLayout is the day/month/year form used in report rows
const RowDateLayout = "2/1/2006"

type Period string

const (
	PeriodWeek  Period = "WEEK"
	PeriodMonth Period = "MONTH"
	PeriodYear  Period = "YEAR"
	PeriodAll   Period = "ALL"
)

// Periods lists the revenue report windows
var Periods = []Period{PeriodWeek, PeriodMonth, PeriodYear, PeriodAll}

// ParsePeriod accepts week, month, year or all in any case
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Periods {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown period %q: use week, month, year or all", s)
}

// Start is the beginning of the window ending at now
func (p Period) Start(now time.Time) time.Time {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodMonth:
		return now.AddDate(0, -1, 0)
	case PeriodYear:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Unix(0, 0)
	}
}

func (p Period) fileTag() string {
	switch p {
	case PeriodWeek:
		return "weekly"
	case PeriodMonth:
		return "monthly"
	case PeriodYear:
		return "yearly"
	default:
		return "all_time"
	}
}

// Report is a header and rows ready to be written in either format
type Report struct {
	Sheet   string
	Base    string // file name without extension
	Header  []string
	Rows    [][]any
	Created time.Time
}

// FileName returns the download name with ext, e.g. "csv"
func (r *Report) FileName(ext string) string {
	return r.Base + "." + ext
}

// Revenue lists every payment received within period, in client order
func Revenue(clients []*domain.Client, period Period, now time.Time) (*Report, error) {
	start := period.Start(now)

	r := &Report{
		Sheet:   "Revenue",
		Base:    fmt.Sprintf("revenue_report_%s_%s", period.fileTag(), now.Format(domain.DateLayout)),
		Header:  []string{"Date", "Business Name", "Client Name", "Services", "Amount (INR)"},
		Created: now,
	}
	for _, c := range clients {
		for _, p := range c.Payments {
			if p.Date.Before(start) || p.Date.After(now) {
				continue
			}
			r.Rows = append(r.Rows, []any{
				p.Date.In(now.Location()).Format(RowDateLayout),
				c.BusinessName,
				c.Name,
				c.ServicesLabel(),
				decimal.NewFromFloat(p.Amount),
			})
		}
	}

	if len(r.Rows) == 0 {
		return nil, ErrNoRevenueData
	}
	return r, nil
}

// Expenses lists every expense as stored
func Expenses(expenses []*domain.Expense, now time.Time) (*Report, error) {
	if len(expenses) == 0 {
		return nil, ErrNoExpenses
	}

	r := &Report{
		Sheet:   "Expenses",
		Base:    fmt.Sprintf("expenses_report_%s", now.Format(domain.DateLayout)),
		Header:  []string{"Date", "Title", "Category", "Amount", "Notes"},
		Created: now,
	}
	for _, e := range expenses {
		r.Rows = append(r.Rows, []any{
			e.Date.String(),
			e.Title,
			e.Category,
			decimal.NewFromFloat(e.Amount),
			e.Notes,
		})
	}
	return r, nil
}

// WriteCSV writes the header and rows as comma separated values
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(r.Header))
	for _, row := range r.Rows {
		for i, v := range row {
			record[i] = fmt.Sprint(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a single-sheet workbook with a bold header row
func (r *Report) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), r.Sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6FA"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, title := range r.Header {
		if err := f.SetCellValue(r.Sheet, cell(col, 1), title); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	if err := f.SetRowStyle(r.Sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range r.Rows {
		for col, v := range row {
			if d, ok := v.(decimal.Decimal); ok {
				v = d.InexactFloat64()
			}
			if err := f.SetCellValue(r.Sheet, cell(col, i+2), v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	last, _ := excelize.ColumnNumberToName(len(r.Header))
	if err := f.SetColWidth(r.Sheet, "A", last, 22); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}
