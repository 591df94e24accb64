// Package finance rolls clients and expenses up into dashboard figures.
package finance

import (
	"time"

	"github.com/andy/agencyflow/internal/domain"
)

// Summary is the headline figures of the dashboard
type Summary struct {
	TotalRevenue   float64 // sum of deal amounts
	TotalCollected float64
	TotalExpenses  float64
	NetProfit      float64 // collected minus expenses
	TotalDue       float64
	ActiveClients  int
}

// Summarize computes the headline figures
func Summarize(clients []*domain.Client, expenses []*domain.Expense) Summary {
	var s Summary
	for _, c := range clients {
		s.TotalRevenue += c.DealAmount
		s.TotalCollected += c.Paid()
		if c.IsActive() {
			s.ActiveClients++
		}
	}
	for _, e := range expenses {
		s.TotalExpenses += e.Amount
	}
	s.NetProfit = s.TotalCollected - s.TotalExpenses
	s.TotalDue = s.TotalRevenue - s.TotalCollected
	return s
}

// TrendMonths is the number of calendar months in the trend, current included
const TrendMonths = 6

// MonthLabel keys a month in the trend, e.g. "Oct 26"
const MonthLabel = "Jan 06"

type TrendPoint struct {
	Label    string
	Revenue  float64 // payments received
	Expenses float64
	Profit   float64
}

// Trend buckets payments and expenses into the last six calendar months.
// Anything dated outside those months is ignored.
func Trend(clients []*domain.Client, expenses []*domain.Expense, now time.Time) []TrendPoint {
	points := make([]TrendPoint, TrendMonths)
	index := make(map[string]int, TrendMonths)
	for i := 0; i < TrendMonths; i++ {
		month := time.Date(now.Year(), now.Month()-time.Month(TrendMonths-1-i), 1, 0, 0, 0, 0, now.Location())
		label := month.Format(MonthLabel)
		points[i].Label = label
		index[label] = i
	}

	for _, c := range clients {
		for _, p := range c.Payments {
			if i, ok := index[monthKey(p.Date, now)]; ok {
				points[i].Revenue += p.Amount
			}
		}
	}
	for _, e := range expenses {
		if i, ok := index[monthKey(e.Date, now)]; ok {
			points[i].Expenses += e.Amount
		}
	}

	for i := range points {
		points[i].Profit = points[i].Revenue - points[i].Expenses
	}
	return points
}

func monthKey(d domain.Date, now time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.In(now.Location()).Format(MonthLabel)
}

type CategoryTotal struct {
	Category string
	Total    float64
}

// ByCategory sums expenses per category in catalog order, leaving out empty
// categories. Categories outside the catalog follow in first-seen order.
func ByCategory(expenses []*domain.Expense) []CategoryTotal {
	sums := make(map[string]float64)
	var extra []string
	for _, e := range expenses {
		if _, seen := sums[e.Category]; !seen && !domain.IsExpenseCategory(e.Category) {
			extra = append(extra, e.Category)
		}
		sums[e.Category] += e.Amount
	}

	var totals []CategoryTotal
	for _, cat := range append(append([]string{}, domain.ExpenseCategories...), extra...) {
		if sums[cat] > 0 {
			totals = append(totals, CategoryTotal{Category: cat, Total: sums[cat]})
		}
	}
	return totals
}

// ClientChartLimit is the number of clients drawn in the paid/due chart
const ClientChartLimit = 10

const chartNameLength = 15

type ClientBar struct {
	Name     string // truncated for the chart axis
	FullName string
	Paid     float64
	Due      float64
}

// ClientChart returns paid and due bars for the first ten clients
func ClientChart(clients []*domain.Client) []ClientBar {
	n := len(clients)
	if n > ClientChartLimit {
		n = ClientChartLimit
	}

	bars := make([]ClientBar, n)
	for i, c := range clients[:n] {
		bars[i] = ClientBar{
			Name:     truncate(c.BusinessName, chartNameLength),
			FullName: c.BusinessName,
			Paid:     c.Paid(),
			Due:      c.Due(),
		}
	}
	return bars
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

// ExpenseStats are the totals on the expenses screen
type ExpenseStats struct {
	Total     float64
	ThisMonth float64
	Count     int
}

// Expenses totals all expenses and those dated in the month of now
func Expenses(expenses []*domain.Expense, now time.Time) ExpenseStats {
	stats := ExpenseStats{Count: len(expenses)}
	for _, e := range expenses {
		stats.Total += e.Amount
		d := e.Date.In(now.Location())
		if d.Year() == now.Year() && d.Month() == now.Month() {
			stats.ThisMonth += e.Amount
		}
	}
	return stats
}
