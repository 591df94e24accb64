package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/agencyflow/internal/app"
	"github.com/andy/agencyflow/internal/billing"
	"github.com/andy/agencyflow/internal/service"
)

// DashboardModel represents the dashboard home screen
type DashboardModel struct {
	app *app.App

	// Data
	dashboard *service.Dashboard
	renewals  []billing.Renewal

	loading bool
	err     error
}

type dashboardDataMsg struct {
	dashboard *service.Dashboard
	renewals  []billing.Renewal
	err       error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(a *app.App) tea.Model {
	return &DashboardModel{
		app:     a,
		loading: true,
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *DashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		now := time.Now()

		d, err := m.app.ReportService.Dashboard(ctx, now)
		if err != nil {
			return dashboardDataMsg{err: fmt.Errorf("dashboard: %w", err)}
		}

		renewals, err := m.app.ReminderService.Upcoming(ctx, now)
		if err != nil {
			return dashboardDataMsg{err: fmt.Errorf("renewals: %w", err)}
		}

		return dashboardDataMsg{dashboard: d, renewals: renewals}
	}
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.dashboard = msg.dashboard
		m.renewals = msg.renewals
		return m, nil

	case RefreshDataMsg:
		m.loading = true
		return m, m.loadData()
	}

	return m, nil
}

func (m *DashboardModel) View() string {
	if m.loading {
		return "Loading dashboard..."
	}

	if m.err != nil {
		return errTextStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	s := m.dashboard.Summary

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Revenue", formatMoney(s.TotalRevenue), valueStyle),
		card("Collected", formatMoney(s.TotalCollected), paidStyle),
		card("Outstanding", formatMoney(s.TotalDue), dueStyle),
		card("Expenses", formatMoney(s.TotalExpenses), dueStyle),
		card("Net Profit", formatMoney(s.NetProfit), profitStyle(s.NetProfit)),
		card("Active Clients", fmt.Sprintf("%d", s.ActiveClients), valueStyle),
	)

	out := cards + "\n\n"
	out += m.renderRenewals() + "\n"
	out += m.renderTrend()
	return out
}

func card(label, value string, style lipgloss.Style) string {
	return boxStyle.Render(subtitleStyle.Render(label) + "\n" + style.Bold(true).Render(value))
}

func profitStyle(v float64) lipgloss.Style {
	if v < 0 {
		return dueStyle
	}
	return paidStyle
}

func (m *DashboardModel) renderRenewals() string {
	s := titleStyle.Render("  Upcoming Renewals") + "\n"
	if len(m.renewals) == 0 {
		return s + subtitleStyle.Render("  No renewals in the next week") + "\n"
	}

	for _, r := range m.renewals {
		s += fmt.Sprintf("  %s %s  %s  %s\n",
			padRight(truncateStr(r.Client.BusinessName, 26), 26),
			r.Next.Format("02 Jan"),
			padLeft(formatMoney(r.Client.DealAmount), 12),
			badgeStyle.Render(r.Label()),
		)
	}
	return s
}

func (m *DashboardModel) renderTrend() string {
	s := titleStyle.Render("  Last 6 Months") + "\n"

	var max float64
	for _, p := range m.dashboard.Trend {
		if p.Revenue > max {
			max = p.Revenue
		}
		if p.Expenses > max {
			max = p.Expenses
		}
	}

	for _, p := range m.dashboard.Trend {
		s += fmt.Sprintf("  %-7s %s %s\n",
			p.Label,
			paidStyle.Render(padRight(bar(p.Revenue, max, 24), 24)),
			subtitleStyle.Render(fmt.Sprintf("in %s  out %s  profit %s",
				formatMoney(p.Revenue), formatMoney(p.Expenses), formatMoney(p.Profit))),
		)
	}
	return s
}
