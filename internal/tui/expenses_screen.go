package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/agencyflow/internal/app"
	"github.com/andy/agencyflow/internal/domain"
	"github.com/andy/agencyflow/internal/finance"
	"github.com/andy/agencyflow/internal/money"
)

type expenseMode int

const (
	expenseModeList expenseMode = iota
	expenseModeForm
	expenseModeConfirmDelete
)

const (
	expenseFieldTitle = iota
	expenseFieldAmount
	expenseFieldCategory
	expenseFieldDate
	expenseFieldNotes
	expenseFieldCount
)

var expenseFieldLabels = []string{"Title:", "Amount (₹):", "Category (prefix ok):", "Date (YYYY-MM-DD):", "Notes:"}

// ExpensesModel lists expenses newest first with a category filter
type ExpensesModel struct {
	app      *app.App
	expenses []*domain.Expense
	stats    finance.ExpenseStats
	cursor   int
	category int // index into domain.ExpenseCategories, -1 for all
	loading  bool
	err      error
	status   string

	mode       expenseMode
	fields     []textinput.Model
	fieldFocus int
}

type expensesDataMsg struct {
	expenses []*domain.Expense
	stats    finance.ExpenseStats
	err      error
}

type expenseSavedMsg struct {
	expense *domain.Expense
	err     error
}

type expenseDeletedMsg struct {
	title string
	err   error
}

// NewExpensesModel creates the expenses screen
func NewExpensesModel(a *app.App) tea.Model {
	return &ExpensesModel{
		app:      a,
		category: -1,
		loading:  true,
	}
}

// IsCapturingInput returns true when the form or a prompt is active
func (m *ExpensesModel) IsCapturingInput() bool {
	return m.mode != expenseModeList
}

func (m *ExpensesModel) Init() tea.Cmd {
	return m.loadExpenses()
}

func (m *ExpensesModel) categoryFilter() string {
	if m.category < 0 {
		return ""
	}
	return domain.ExpenseCategories[m.category]
}

func (m *ExpensesModel) loadExpenses() tea.Cmd {
	category := m.categoryFilter()
	return func() tea.Msg {
		ctx := context.Background()
		expenses, err := m.app.ExpenseService.List(ctx, category)
		if err != nil {
			return expensesDataMsg{err: err}
		}
		stats, err := m.app.ReportService.ExpenseStats(ctx, time.Now())
		return expensesDataMsg{expenses: expenses, stats: stats, err: err}
	}
}

func (m *ExpensesModel) initForm() {
	m.fields = make([]textinput.Model, expenseFieldCount)
	m.fields[expenseFieldTitle] = newField("Figma subscription", 100, 40)
	m.fields[expenseFieldAmount] = newField("5000", 15, 15)
	m.fields[expenseFieldCategory] = newField("Miscellaneous", 40, 30)
	m.fields[expenseFieldDate] = newField(domain.Today().Format(domain.DateLayout), 10, 12)
	m.fields[expenseFieldNotes] = newField("Optional notes", 200, 50)

	if m.category >= 0 {
		m.fields[expenseFieldCategory].SetValue(domain.ExpenseCategories[m.category])
	}

	m.fieldFocus = expenseFieldTitle
	m.fields[expenseFieldTitle].Focus()
}

func (m *ExpensesModel) saveExpense() tea.Cmd {
	values := make([]string, expenseFieldCount)
	for i := range m.fields {
		values[i] = strings.TrimSpace(m.fields[i].Value())
	}

	return func() tea.Msg {
		category := "Miscellaneous"
		if values[expenseFieldCategory] != "" {
			c, ok := domain.MatchExpenseCategory(values[expenseFieldCategory])
			if !ok {
				return expenseSavedMsg{err: fmt.Errorf("unknown or ambiguous category %q", values[expenseFieldCategory])}
			}
			category = c
		}

		expense := domain.NewExpense(values[expenseFieldTitle], money.Parse(values[expenseFieldAmount]), category)
		expense.Notes = values[expenseFieldNotes]
		if values[expenseFieldDate] != "" {
			d, err := domain.ParseDate(values[expenseFieldDate])
			if err != nil {
				return expenseSavedMsg{err: err}
			}
			expense.Date = d
		}

		if err := m.app.ExpenseService.Add(context.Background(), expense); err != nil {
			return expenseSavedMsg{err: err}
		}
		return expenseSavedMsg{expense: expense}
	}
}

func (m *ExpensesModel) deleteExpense(e *domain.Expense) tea.Cmd {
	id, title := e.ID, e.Title
	return func() tea.Msg {
		return expenseDeletedMsg{title: title, err: m.app.ExpenseService.Delete(context.Background(), id)}
	}
}

func (m *ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case expenseModeForm:
		return m.updateForm(msg)
	case expenseModeConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadExpenses()

	case expensesDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.expenses = msg.expenses
			m.stats = msg.stats
			if m.cursor >= len(m.expenses) {
				m.cursor = max(0, len(m.expenses)-1)
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		m.status = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.expenses)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			m.mode = expenseModeForm
			m.initForm()
			return m, m.fields[m.fieldFocus].Focus()
		case key.Matches(msg, DefaultKeyMap.Delete):
			if len(m.expenses) > 0 {
				m.mode = expenseModeConfirmDelete
			}
		case msg.String() == "f":
			// Cycle through categories, then back to all
			m.category++
			if m.category >= len(domain.ExpenseCategories) {
				m.category = -1
			}
			m.cursor = 0
			m.loading = true
			return m, m.loadExpenses()
		}
	}

	return m, nil
}

func (m *ExpensesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case expenseSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = expenseModeList
		m.status = fmt.Sprintf("Logged %s: %s", msg.expense.Title, formatMoney(msg.expense.Amount))
		m.loading = true
		return m, m.loadExpenses()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = expenseModeList
			m.err = nil
			return m, nil
		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % expenseFieldCount
			return m, m.fields[m.fieldFocus].Focus()
		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + expenseFieldCount) % expenseFieldCount
			return m, m.fields[m.fieldFocus].Focus()
		case "enter":
			if m.fieldFocus == expenseFieldCount-1 {
				return m, m.saveExpense()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()
		case "ctrl+s":
			return m, m.saveExpense()
		}
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *ExpensesModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case expenseDeletedMsg:
		m.mode = expenseModeList
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = fmt.Sprintf("Deleted: %s", msg.title)
		m.loading = true
		return m, m.loadExpenses()
	case tea.KeyMsg:
		if (msg.String() == "y" || msg.String() == "Y") && m.cursor < len(m.expenses) {
			return m, m.deleteExpense(m.expenses[m.cursor])
		}
		m.mode = expenseModeList
	}
	return m, nil
}

func (m *ExpensesModel) View() string {
	if m.mode == expenseModeForm {
		return m.viewForm()
	}
	return m.viewList()
}

func (m *ExpensesModel) viewForm() string {
	s := titleStyle.Render("New Expense") + "\n\n"

	for i, label := range expenseFieldLabels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	s += subtitleStyle.Render("  Categories: "+strings.Join(domain.ExpenseCategories, ", ")) + "\n\n"

	if m.err != nil {
		s += errTextStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")
	return s
}

func (m *ExpensesModel) viewList() string {
	if m.loading {
		return "Loading expenses..."
	}

	header := "Expenses"
	if c := m.categoryFilter(); c != "" {
		header += subtitleStyle.Render("  " + c)
	}
	s := titleStyle.Render(header) + "\n\n"

	s += fmt.Sprintf("  Total: %s   This month: %s   Entries: %d\n\n",
		dueStyle.Render(formatMoney(m.stats.Total)),
		dueStyle.Render(formatMoney(m.stats.ThisMonth)),
		m.stats.Count,
	)

	if m.mode == expenseModeConfirmDelete && m.cursor < len(m.expenses) {
		s += badgeStyle.Render(fmt.Sprintf("  Delete %s? (y/n)", m.expenses[m.cursor].Title)) + "\n\n"
	}
	if m.status != "" {
		s += statusStyle.Render("  "+m.status) + "\n\n"
	}
	if m.err != nil {
		s += errTextStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	if len(m.expenses) == 0 {
		s += subtitleStyle.Render("  No expenses found. Press 'n' to log one.") + "\n"
	} else {
		for i, e := range m.expenses {
			line := fmt.Sprintf("%s  %s  %s  %s",
				e.Date.Format("02 Jan 2006"),
				padRight(truncateStr(e.Title, 28), 28),
				padRight(truncateStr(e.Category, 26), 26),
				padLeft(formatMoney(e.Amount), 12),
			)
			if i == m.cursor {
				s += selectedStyle.Render("> "+line) + "\n"
			} else {
				s += "  " + line + "\n"
			}
		}
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new  d: delete  f: filter by category")
	return s
}
