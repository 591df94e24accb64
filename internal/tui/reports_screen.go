package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andy/agencyflow/internal/app"
	"github.com/andy/agencyflow/internal/export"
	"github.com/andy/agencyflow/internal/service"
)

type reportTab int

const (
	reportTabTrend reportTab = iota
	reportTabCategories
	reportTabClients
	reportTabCount
)

func (t reportTab) String() string {
	switch t {
	case reportTabTrend:
		return "Revenue vs Expenses"
	case reportTabCategories:
		return "Expenses by Category"
	default:
		return "Client Payments"
	}
}

// ReportsModel shows the charts and writes report exports
type ReportsModel struct {
	app       *app.App
	tab       reportTab
	dashboard *service.Dashboard
	xlsx      bool

	loading   bool
	err       error
	statusMsg string
}

type reportsDataMsg struct {
	dashboard *service.Dashboard
	err       error
}

type reportSavedMsg struct {
	path string
	rows int
	info string // shown instead of a path when there was nothing to export
	err  error
}

// NewReportsModel creates a new reports screen model
func NewReportsModel(a *app.App) tea.Model {
	return &ReportsModel{
		app:     a,
		loading: true,
	}
}

func (m *ReportsModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *ReportsModel) loadData() tea.Cmd {
	return func() tea.Msg {
		d, err := m.app.ReportService.Dashboard(context.Background(), time.Now())
		return reportsDataMsg{dashboard: d, err: err}
	}
}

func (m *ReportsModel) format() service.ReportFormat {
	if m.xlsx {
		return service.FormatXLSX
	}
	return service.FormatCSV
}

func (m *ReportsModel) exportRevenue(period export.Period) tea.Cmd {
	format := m.format()
	return func() tea.Msg {
		report, err := m.app.ReportService.RevenueReport(context.Background(), period, time.Now())
		if errors.Is(err, export.ErrNoRevenueData) {
			return reportSavedMsg{info: "No revenue data found for the selected period."}
		}
		if err != nil {
			return reportSavedMsg{err: err}
		}
		return m.save(report, format)
	}
}

func (m *ReportsModel) exportExpenses() tea.Cmd {
	format := m.format()
	return func() tea.Msg {
		report, err := m.app.ReportService.ExpenseReport(context.Background(), time.Now())
		if errors.Is(err, export.ErrNoExpenses) {
			return reportSavedMsg{info: "No expenses to export."}
		}
		if err != nil {
			return reportSavedMsg{err: err}
		}
		return m.save(report, format)
	}
}

func (m *ReportsModel) save(report *export.Report, format service.ReportFormat) reportSavedMsg {
	path, err := m.app.ReportService.SaveReport(report, format)
	if err != nil {
		return reportSavedMsg{err: err}
	}
	return reportSavedMsg{path: path, rows: len(report.Rows)}
}

func (m *ReportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadData()

	case reportsDataMsg:
		m.loading = false
		m.err = msg.err
		m.dashboard = msg.dashboard
		return m, nil

	case reportSavedMsg:
		m.err = msg.err
		switch {
		case msg.err != nil:
			m.statusMsg = ""
		case msg.info != "":
			m.statusMsg = msg.info
		default:
			m.statusMsg = fmt.Sprintf("Saved %d rows to %s", msg.rows, msg.path)
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Right), msg.String() == "tab":
			m.tab = (m.tab + 1) % reportTabCount
		case key.Matches(msg, DefaultKeyMap.Left), msg.String() == "shift+tab":
			m.tab = (m.tab - 1 + reportTabCount) % reportTabCount
		case msg.String() == "t":
			m.xlsx = !m.xlsx
		case msg.String() == "1":
			return m, m.exportRevenue(export.PeriodWeek)
		case msg.String() == "2":
			return m, m.exportRevenue(export.PeriodMonth)
		case msg.String() == "3":
			return m, m.exportRevenue(export.PeriodYear)
		case msg.String() == "4":
			return m, m.exportRevenue(export.PeriodAll)
		case msg.String() == "5":
			return m, m.exportExpenses()
		}
	}

	return m, nil
}

func (m *ReportsModel) View() string {
	if m.loading {
		return "Loading reports..."
	}
	if m.err != nil && m.dashboard == nil {
		return errTextStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	var tabs string
	for t := reportTab(0); t < reportTabCount; t++ {
		label := " " + t.String() + " "
		if t == m.tab {
			tabs += selectedStyle.Render(label) + " "
		} else {
			tabs += subtitleStyle.Render(label) + " "
		}
	}
	s := tabs + "\n\n"

	switch m.tab {
	case reportTabTrend:
		s += m.viewTrend()
	case reportTabCategories:
		s += m.viewCategories()
	case reportTabClients:
		s += m.viewClients()
	}

	format := "CSV"
	if m.xlsx {
		format = "Excel"
	}
	s += "\n" + titleStyle.Render("  Export") + subtitleStyle.Render(fmt.Sprintf("  (%s)", format)) + "\n"
	s += "  1: revenue last 7 days  2: last month  3: last year  4: all time  5: all expenses\n"

	if m.statusMsg != "" {
		s += "\n" + statusStyle.Render("  "+m.statusMsg) + "\n"
	}
	if m.err != nil {
		s += "\n" + errTextStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	}

	s += "\n" + helpStyle.Render("  ←/→: switch chart  t: toggle CSV/Excel  1-5: export")
	return s
}

func (m *ReportsModel) viewTrend() string {
	var max float64
	for _, p := range m.dashboard.Trend {
		if p.Revenue > max {
			max = p.Revenue
		}
		if p.Expenses > max {
			max = p.Expenses
		}
	}

	var s string
	for _, p := range m.dashboard.Trend {
		s += fmt.Sprintf("  %-7s in  %s %s\n", p.Label, paidStyle.Render(padRight(bar(p.Revenue, max, 30), 30)), formatMoney(p.Revenue))
		s += fmt.Sprintf("  %-7s out %s %s\n", "", dueStyle.Render(padRight(bar(p.Expenses, max, 30), 30)), formatMoney(p.Expenses))
		s += subtitleStyle.Render(fmt.Sprintf("  %-7s profit %s", "", formatMoney(p.Profit))) + "\n"
	}
	return s
}

func (m *ReportsModel) viewCategories() string {
	if len(m.dashboard.Expenses) == 0 {
		return subtitleStyle.Render("  No expenses logged yet") + "\n"
	}

	var total float64
	var max float64
	for _, c := range m.dashboard.Expenses {
		total += c.Total
		if c.Total > max {
			max = c.Total
		}
	}

	var s string
	for _, c := range m.dashboard.Expenses {
		share := 0.0
		if total > 0 {
			share = c.Total / total
		}
		s += fmt.Sprintf("  %s %s %s %s\n",
			padRight(c.Category, 28),
			valueStyle.Render(padRight(bar(c.Total, max, 24), 24)),
			padLeft(formatMoney(c.Total), 12),
			subtitleStyle.Render(percent(share)),
		)
	}
	return s
}

func (m *ReportsModel) viewClients() string {
	if len(m.dashboard.Clients) == 0 {
		return subtitleStyle.Render("  No clients yet") + "\n"
	}

	var max float64
	for _, b := range m.dashboard.Clients {
		if v := b.Paid + b.Due; v > max {
			max = v
		}
	}

	var s string
	for _, b := range m.dashboard.Clients {
		s += fmt.Sprintf("  %s %s%s  paid %s  due %s\n",
			padRight(b.Name, 18),
			paidStyle.Render(bar(b.Paid, max, 30)),
			dueStyle.Render(bar(b.Due, max, 30)),
			formatMoney(b.Paid),
			formatMoney(b.Due),
		)
	}
	return s
}
