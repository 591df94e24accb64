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
	"github.com/andy/agencyflow/internal/money"
)

// clientMode represents the current screen mode
type clientMode int

const (
	clientModeList clientMode = iota
	clientModeNew
	clientModeEdit
	clientModeSearch
	clientModePay
	clientModeConfirmDelete
)

// form field indices
const (
	fieldName = iota
	fieldBusiness
	fieldPhone
	fieldEmail
	fieldAddress
	fieldGST
	fieldServices
	fieldDeal
	fieldStart
	fieldStatus
	fieldNotes
	fieldCount
)

var clientFieldLabels = []string{
	"Contact Name:", "Business Name:", "Phone:", "Email:", "Address:", "GSTIN:",
	"Services (comma separated, blank deal = standard pricing):", "Deal Amount (₹):",
	"Start Date (YYYY-MM-DD):", "Status:", "Notes:",
}

// ClientsModel displays a navigable list of clients with create/edit forms
type ClientsModel struct {
	app       *app.App
	clients   []*domain.Client
	cursor    int
	query     string
	dueOnly   bool
	loading   bool
	err       error
	statusMsg string

	// Form state
	mode          clientMode
	fields        []textinput.Model
	fieldFocus    int
	editingID     string // empty for new client
	autoNewClient bool   // open new client form after data loads

	search textinput.Model
	amount textinput.Model
}

type clientsDataMsg struct {
	clients []*domain.Client
	err     error
}

type clientSavedMsg struct {
	name string
	err  error
}

type clientPaidMsg struct {
	client *domain.Client
	amount float64
	err    error
}

type clientDeletedMsg struct {
	name string
	err  error
}

// NewClientsModel creates a new clients screen model
func NewClientsModel(a *app.App) tea.Model {
	search := textinput.New()
	search.Placeholder = "business or contact name"
	search.CharLimit = 60
	search.Width = 40

	amount := textinput.New()
	amount.Placeholder = "25000"
	amount.CharLimit = 15
	amount.Width = 15

	return &ClientsModel{
		app:     a,
		loading: true,
		search:  search,
		amount:  amount,
	}
}

// IsCapturingInput returns true when a form or prompt is active
func (m *ClientsModel) IsCapturingInput() bool {
	return m.mode != clientModeList
}

func (m *ClientsModel) Init() tea.Cmd {
	return m.loadClients()
}

func (m *ClientsModel) loadClients() tea.Cmd {
	query, dueOnly := m.query, m.dueOnly
	return func() tea.Msg {
		clients, err := m.app.ClientService.Search(context.Background(), query, dueOnly)
		return clientsDataMsg{clients: clients, err: err}
	}
}

func (m *ClientsModel) selected() *domain.Client {
	if m.cursor < 0 || m.cursor >= len(m.clients) {
		return nil
	}
	return m.clients[m.cursor]
}

func newField(placeholder string, limit, width int) textinput.Model {
	f := textinput.New()
	f.Placeholder = placeholder
	f.CharLimit = limit
	f.Width = width
	return f
}

func (m *ClientsModel) initForm(editing *domain.Client) {
	m.fields = make([]textinput.Model, fieldCount)
	m.fields[fieldName] = newField("Rahul Sharma", 100, 40)
	m.fields[fieldBusiness] = newField("Sharma Electronics", 100, 40)
	m.fields[fieldPhone] = newField("9876543210", 20, 20)
	m.fields[fieldEmail] = newField("client@example.com", 100, 40)
	m.fields[fieldAddress] = newField("MG Road, Bangalore", 200, 50)
	m.fields[fieldGST] = newField("29AAAAA0000A1Z5", 15, 20)
	m.fields[fieldServices] = newField("Meta Ads (FB/Insta), SEO Standard", 300, 60)
	m.fields[fieldDeal] = newField("50000", 15, 15)
	m.fields[fieldStart] = newField(domain.Today().Format(domain.DateLayout), 10, 12)
	m.fields[fieldStatus] = newField("ACTIVE", 10, 12)
	m.fields[fieldNotes] = newField("Optional notes", 200, 50)

	if editing != nil {
		m.fields[fieldName].SetValue(editing.Name)
		m.fields[fieldBusiness].SetValue(editing.BusinessName)
		m.fields[fieldPhone].SetValue(editing.Phone)
		m.fields[fieldEmail].SetValue(editing.Email)
		m.fields[fieldAddress].SetValue(editing.Address)
		m.fields[fieldGST].SetValue(editing.GSTIN)
		m.fields[fieldServices].SetValue(editing.ServicesLabel())
		m.fields[fieldDeal].SetValue(money.FormatPlain(editing.DealAmount))
		m.fields[fieldStart].SetValue(editing.StartDate.Format(domain.DateLayout))
		m.fields[fieldStatus].SetValue(string(editing.Status))
		m.fields[fieldNotes].SetValue(editing.Notes)
		m.editingID = editing.ID
	} else {
		m.fields[fieldStatus].SetValue(string(domain.ClientStatusActive))
		m.editingID = ""
	}

	m.fieldFocus = fieldName
	m.fields[fieldName].Focus()
}

func splitServices(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (m *ClientsModel) saveClient() tea.Cmd {
	values := make([]string, fieldCount)
	for i := range m.fields {
		values[i] = strings.TrimSpace(m.fields[i].Value())
	}
	editingID := m.editingID

	return func() tea.Msg {
		ctx := context.Background()

		if values[fieldName] == "" || values[fieldBusiness] == "" {
			return clientSavedMsg{err: fmt.Errorf("contact and business name are required")}
		}

		var client *domain.Client
		if editingID != "" {
			existing, err := m.app.ClientService.Resolve(ctx, editingID)
			if err != nil {
				return clientSavedMsg{err: err}
			}
			client = existing
			client.Name = values[fieldName]
			client.BusinessName = values[fieldBusiness]
		} else {
			client = domain.NewClient(values[fieldName], values[fieldBusiness], 0)
		}

		client.Phone = values[fieldPhone]
		client.Email = values[fieldEmail]
		client.Address = values[fieldAddress]
		client.GSTIN = strings.ToUpper(values[fieldGST])
		client.Services = splitServices(values[fieldServices])
		client.Notes = values[fieldNotes]

		status, err := domain.ParseClientStatus(values[fieldStatus])
		if err != nil {
			return clientSavedMsg{err: err}
		}
		client.Status = status

		if values[fieldStart] != "" {
			start, err := domain.ParseDate(values[fieldStart])
			if err != nil {
				return clientSavedMsg{err: err}
			}
			client.StartDate = start
		}

		if values[fieldDeal] == "" {
			price, err := m.app.ClientService.StandardPrice(ctx, client.Services)
			if err != nil {
				return clientSavedMsg{err: err}
			}
			client.DealAmount = price
		} else {
			client.DealAmount = money.Parse(values[fieldDeal])
		}

		if editingID != "" {
			err = m.app.ClientService.Update(ctx, client)
		} else {
			err = m.app.ClientService.Create(ctx, client)
		}
		if err != nil {
			return clientSavedMsg{err: err}
		}
		return clientSavedMsg{name: client.BusinessName}
	}
}

func (m *ClientsModel) recordPayment(client *domain.Client, input string) tea.Cmd {
	id := client.ID
	return func() tea.Msg {
		amount := money.Parse(input)
		updated, err := m.app.ClientService.RecordPayment(context.Background(), id, amount, "", time.Now())
		return clientPaidMsg{client: updated, amount: amount, err: err}
	}
}

func (m *ClientsModel) deleteClient(client *domain.Client) tea.Cmd {
	id, name := client.ID, client.BusinessName
	return func() tea.Msg {
		return clientDeletedMsg{name: name, err: m.app.ClientService.Delete(context.Background(), id)}
	}
}

func (m *ClientsModel) openNewForm() tea.Cmd {
	m.mode = clientModeNew
	m.err = nil
	m.initForm(nil)
	return m.fields[fieldName].Focus()
}

func (m *ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle OpenNewClientFormMsg at the top so it works regardless of mode
	if _, ok := msg.(OpenNewClientFormMsg); ok {
		if m.loading {
			// Data hasn't loaded yet; set flag to auto-open form when it does
			m.autoNewClient = true
			return m, nil
		}
		return m, m.openNewForm()
	}

	switch m.mode {
	case clientModeNew, clientModeEdit:
		return m.updateForm(msg)
	case clientModeSearch:
		return m.updateSearch(msg)
	case clientModePay:
		return m.updatePay(msg)
	case clientModeConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadClients()

	case clientsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.clients = msg.clients
			if m.cursor >= len(m.clients) {
				m.cursor = max(0, len(m.clients)-1)
			}
		}
		// Auto-open new client form on first run
		if m.autoNewClient {
			m.autoNewClient = false
			return m, m.openNewForm()
		}
		return m, nil

	case clientPaidMsg, clientDeletedMsg:
		return m.handleResult(msg)

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		m.statusMsg = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.clients)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			return m, m.openNewForm()
		case key.Matches(msg, DefaultKeyMap.Select):
			// Enter key opens edit form for selected client
			if client := m.selected(); client != nil {
				m.mode = clientModeEdit
				m.initForm(client)
				return m, m.fields[fieldName].Focus()
			}
		case msg.String() == "/":
			m.mode = clientModeSearch
			m.search.SetValue(m.query)
			return m, m.search.Focus()
		case msg.String() == "f":
			m.dueOnly = !m.dueOnly
			m.cursor = 0
			m.loading = true
			return m, m.loadClients()
		case msg.String() == "p":
			if m.selected() != nil {
				m.mode = clientModePay
				m.amount.SetValue("")
				return m, m.amount.Focus()
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if m.selected() != nil {
				m.mode = clientModeConfirmDelete
			}
		case msg.String() == "v":
			if client := m.selected(); client != nil {
				id := client.ID
				return m, func() tea.Msg { return StartInvoiceMsg{ClientID: id} }
			}
		}
	}

	return m, nil
}

func (m *ClientsModel) handleResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.mode = clientModeList
	switch msg := msg.(type) {
	case clientPaidMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Payment of %s recorded for %s", formatMoney(msg.amount), msg.client.BusinessName)
	case clientDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Deleted: %s", msg.name)
	}
	m.loading = true
	return m, m.loadClients()
}

func (m *ClientsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = clientModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		m.loading = true
		return m, m.loadClients()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			// Cancel form
			m.mode = clientModeList
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % fieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + fieldCount) % fieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == fieldCount-1 {
				return m, m.saveClient()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveClient()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *ClientsModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.mode = clientModeList
			m.search.Blur()
			return m, nil
		case "enter":
			m.mode = clientModeList
			m.search.Blur()
			m.query = strings.TrimSpace(m.search.Value())
			m.cursor = 0
			m.loading = true
			return m, m.loadClients()
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *ClientsModel) updatePay(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientPaidMsg:
		return m.handleResult(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = clientModeList
			m.amount.Blur()
			return m, nil
		case "enter":
			if client := m.selected(); client != nil {
				return m, m.recordPayment(client, m.amount.Value())
			}
		}
	}

	var cmd tea.Cmd
	m.amount, cmd = m.amount.Update(msg)
	return m, cmd
}

func (m *ClientsModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientDeletedMsg:
		return m.handleResult(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "y", "Y":
			if client := m.selected(); client != nil {
				return m, m.deleteClient(client)
			}
			m.mode = clientModeList
		default:
			m.mode = clientModeList
		}
	}
	return m, nil
}

func (m *ClientsModel) View() string {
	if m.mode == clientModeNew || m.mode == clientModeEdit {
		return m.viewForm()
	}
	return m.viewList()
}

func (m *ClientsModel) viewForm() string {
	var s string

	if m.mode == clientModeNew {
		if len(m.clients) == 0 && m.query == "" && !m.dueOnly {
			s += titleStyle.Render("Welcome to AgencyFlow!") + "\n"
			s += subtitleStyle.Render("  Let's add your first client to get started.") + "\n\n"
		} else {
			s += titleStyle.Render("New Client") + "\n\n"
		}
	} else {
		s += titleStyle.Render("Edit Client") + "\n\n"
	}

	for i, label := range clientFieldLabels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s %s\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}
	s += "\n"

	if m.err != nil {
		s += errTextStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}

func (m *ClientsModel) viewList() string {
	if m.loading {
		return "Loading clients..."
	}

	var s string

	header := "Clients"
	if m.query != "" {
		header += subtitleStyle.Render(fmt.Sprintf("  matching %q", m.query))
	}
	if m.dueOnly {
		header += subtitleStyle.Render("  (due only)")
	}
	s += titleStyle.Render(header) + "\n\n"

	switch m.mode {
	case clientModeSearch:
		s += "  Search: " + m.search.View() + "\n\n"
	case clientModePay:
		if c := m.selected(); c != nil {
			s += fmt.Sprintf("  Payment from %s (due %s): %s\n\n", c.BusinessName, formatMoney(c.Due()), m.amount.View())
		}
	case clientModeConfirmDelete:
		if c := m.selected(); c != nil {
			s += badgeStyle.Render(fmt.Sprintf("  Delete %s and all its payments? (y/n)", c.BusinessName)) + "\n\n"
		}
	}

	if m.statusMsg != "" {
		s += statusStyle.Render("  "+m.statusMsg) + "\n\n"
	}
	if m.err != nil {
		s += errTextStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	if len(m.clients) == 0 {
		s += subtitleStyle.Render("  No clients found. Press 'n' to add one.") + "\n"
		return s
	}

	for i, client := range m.clients {
		s += m.renderClient(i, client) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new  enter: edit  p: record payment  v: invoice  d: delete  /: search  f: due only")

	return s
}

func (m *ClientsModel) renderClient(index int, client *domain.Client) string {
	selected := index == m.cursor

	indicator := "  "
	if selected {
		indicator = "> "
	}

	line1 := fmt.Sprintf("%s%s  %s", indicator, client.BusinessName, subtitleStyle.Render(fmt.Sprintf("(%s, %s)", client.Name, client.Status)))

	due := client.Due()
	dueText := dueStyle.Render("Due " + formatMoney(due))
	if due <= 0 {
		dueText = paidStyle.Render("Paid in full")
	}
	line2 := fmt.Sprintf("    Deal %s  |  Paid %s (%s)  |  %s",
		formatMoney(client.DealAmount),
		paidStyle.Render(formatMoney(client.Paid())),
		percent(client.Progress()),
		dueText,
	)

	var line3 string
	if len(client.Services) > 0 {
		line3 = subtitleStyle.Render("    " + truncateStr(client.ServicesLabel(), 70))
	}

	nameStyle := lipgloss.NewStyle()
	if client.Status != domain.ClientStatusActive {
		nameStyle = nameStyle.Foreground(mutedColor)
	}
	if selected {
		nameStyle = nameStyle.Bold(true).Foreground(primaryColor)
	}

	result := nameStyle.Render(line1) + "\n" + line2
	if line3 != "" {
		result += "\n" + line3
	}
	return result
}
