package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/agencyflow/internal/app"
	"github.com/andy/agencyflow/internal/domain"
	"github.com/andy/agencyflow/internal/invoice"
)

type invoiceViewMode int

const (
	invoiceViewList       invoiceViewMode = iota
	invoiceViewPickClient                 // Step 1: pick client
	invoiceViewEditor                     // Step 2: edit items and layout
	invoiceViewEditItem                   // Editing one line item
	invoiceViewEditHeader                 // Editing number, date and TAX layout fields
)

// headerWindow is how many header fields are shown at once
const headerWindow = 8

const (
	itemFieldDescription = iota
	itemFieldHSN
	itemFieldRate
	itemFieldQuantity
	itemFieldCount
)

var itemFieldNames = []string{"description", "hsn", "rate", "quantity"}
var itemFieldLabels = []string{"Description:", "HSN/SAC:", "Rate (₹):", "Quantity:"}

// InvoicesModel lists issued invoices and edits new ones
type InvoicesModel struct {
	app       *app.App
	mode      invoiceViewMode
	invoices  []*domain.IssuedInvoice
	cursor    int
	loading   bool
	err       error
	statusMsg string

	// Invoice editor state
	clients      []*domain.Client
	clientCursor int
	session      *invoice.Session
	itemCursor   int
	itemFields   []textinput.Model
	itemFocus    int
	headerKeys   []string
	headerFields []textinput.Model
	headerFocus  int
}

type invoicesDataMsg struct {
	invoices []*domain.IssuedInvoice
	err      error
}

type invoiceClientsMsg struct {
	clients []*domain.Client
	err     error
}

type invoiceSessionMsg struct {
	session *invoice.Session
	err     error
}

type invoicePrintedMsg struct {
	issued *domain.IssuedInvoice
	err    error
}

type invoiceLinkMsg struct {
	label string
	link  string
	err   error
}

// NewInvoicesModel creates the invoices screen
func NewInvoicesModel(a *app.App) tea.Model {
	return &InvoicesModel{
		app:     a,
		loading: true,
	}
}

// IsCapturingInput returns true outside the list so single-key actions reach the editor
func (m *InvoicesModel) IsCapturingInput() bool {
	return m.mode != invoiceViewList
}

func (m *InvoicesModel) Init() tea.Cmd {
	return m.loadInvoices()
}

func (m *InvoicesModel) loadInvoices() tea.Cmd {
	return func() tea.Msg {
		invoices, err := m.app.InvoiceService.ListIssued(context.Background(), nil)
		return invoicesDataMsg{invoices: invoices, err: err}
	}
}

func (m *InvoicesModel) loadClients() tea.Cmd {
	return func() tea.Msg {
		clients, err := m.app.ClientService.List(context.Background())
		return invoiceClientsMsg{clients: clients, err: err}
	}
}

func (m *InvoicesModel) startSession(clientID string) tea.Cmd {
	return func() tea.Msg {
		session, err := m.app.InvoiceService.StartSession(context.Background(), clientID, time.Now())
		return invoiceSessionMsg{session: session, err: err}
	}
}

func (m *InvoicesModel) printSession() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		issued, err := m.app.InvoiceService.Print(context.Background(), session)
		return invoicePrintedMsg{issued: issued, err: err}
	}
}

func (m *InvoicesModel) shareLink(number string, email bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if email {
			link, err := m.app.InvoiceService.EmailLink(ctx, number)
			return invoiceLinkMsg{label: "Email", link: link, err: err}
		}
		link, err := m.app.InvoiceService.WhatsAppLink(ctx, number)
		return invoiceLinkMsg{label: "WhatsApp", link: link, err: err}
	}
}

func (m *InvoicesModel) initItemForm() {
	item := m.session.Items[m.itemCursor]
	m.itemFields = make([]textinput.Model, itemFieldCount)
	m.itemFields[itemFieldDescription] = newField("Service description", 200, 50)
	m.itemFields[itemFieldHSN] = newField(invoice.DefaultHSN, 10, 10)
	m.itemFields[itemFieldRate] = newField("25000", 15, 15)
	m.itemFields[itemFieldQuantity] = newField("1", 8, 8)

	m.itemFields[itemFieldDescription].SetValue(item.Description)
	m.itemFields[itemFieldHSN].SetValue(item.HSN)
	m.itemFields[itemFieldRate].SetValue(strconv.FormatFloat(item.Rate, 'f', -1, 64))
	m.itemFields[itemFieldQuantity].SetValue(strconv.FormatFloat(item.Quantity, 'f', -1, 64))

	m.itemFocus = itemFieldDescription
	m.itemFields[itemFieldDescription].Focus()
}

func (m *InvoicesModel) applyItemForm() error {
	for i, field := range itemFieldNames {
		if err := m.session.SetItemField(m.itemCursor, field, m.itemFields[i].Value()); err != nil {
			return err
		}
	}
	return nil
}

// initHeaderForm offers the number and date, plus the compliance boxes
// when the TAX layout is selected
func (m *InvoicesModel) initHeaderForm() {
	m.headerKeys = []string{"number", "date"}
	if m.session.Template == invoice.TemplateTax {
		m.headerKeys = append(m.headerKeys, invoice.TaxFieldKeys()...)
	}

	m.headerFields = make([]textinput.Model, len(m.headerKeys))
	for i, k := range m.headerKeys {
		var value string
		switch k {
		case "number":
			m.headerFields[i] = newField("INV-2026-SHAR-1001", 40, 30)
			value = m.session.Number
		case "date":
			m.headerFields[i] = newField("16 Oct 2026", 60, 30)
			value = m.session.Date
		default:
			m.headerFields[i] = newField("", 200, 50)
			value, _ = m.session.Tax.Get(k)
		}
		m.headerFields[i].SetValue(value)
	}

	m.headerFocus = 0
	m.headerFields[0].Focus()
}

// applyHeaderForm leaves the session untouched when the number is rejected
func (m *InvoicesModel) applyHeaderForm() error {
	for i, k := range m.headerKeys {
		if k == "number" {
			if err := m.session.SetNumber(m.headerFields[i].Value()); err != nil {
				return err
			}
		}
	}
	for i, k := range m.headerKeys {
		switch k {
		case "number":
		case "date":
			m.session.SetDate(m.headerFields[i].Value())
		default:
			if err := m.session.Tax.Set(k, m.headerFields[i].Value()); err != nil {
				return err
			}
		}
	}
	return nil
}

// headerLabel turns "buyersOrderNo" into "Buyers Order No"
func headerLabel(k string) string {
	switch k {
	case "number":
		return "Invoice No."
	case "date":
		return "Date"
	}
	var b strings.Builder
	for i, r := range k {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) && !unicode.IsUpper(rune(k[i-1])) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (m *InvoicesModel) nextTemplate() {
	for i, t := range invoice.Templates {
		if t == m.session.Template {
			m.session.Template = invoice.Templates[(i+1)%len(invoice.Templates)]
			return
		}
	}
	m.session.Template = invoice.TemplateModern
}

func (m *InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		if m.mode == invoiceViewList {
			m.loading = true
			return m, m.loadInvoices()
		}
		return m, nil

	case StartInvoiceMsg:
		m.err = nil
		m.statusMsg = ""
		return m, m.startSession(msg.ClientID)

	case invoicesDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.invoices = msg.invoices
			if m.cursor >= len(m.invoices) {
				m.cursor = max(0, len(m.invoices)-1)
			}
		}
		return m, nil

	case invoiceClientsMsg:
		m.err = msg.err
		m.clients = msg.clients
		if m.clients == nil {
			m.clients = []*domain.Client{}
		}
		m.clientCursor = 0
		return m, nil

	case invoiceSessionMsg:
		if msg.err != nil {
			m.err = msg.err
			m.mode = invoiceViewList
			return m, nil
		}
		m.session = msg.session
		m.itemCursor = 0
		m.mode = invoiceViewEditor
		return m, nil

	case invoicePrintedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.session = nil
		m.mode = invoiceViewList
		m.statusMsg = fmt.Sprintf("Issued %s", msg.issued.InvoiceNumber)
		if msg.issued.FilePath != "" {
			m.statusMsg += " -> " + msg.issued.FilePath
		}
		m.loading = true
		return m, m.loadInvoices()

	case invoiceLinkMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("%s: %s", msg.label, msg.link)
		return m, nil

	case tea.KeyMsg:
		m.err = nil
		switch m.mode {
		case invoiceViewList:
			return m.updateList(msg)
		case invoiceViewPickClient:
			return m.updatePickClient(msg)
		case invoiceViewEditor:
			return m.updateEditor(msg)
		case invoiceViewEditItem:
			return m.updateEditItem(msg)
		case invoiceViewEditHeader:
			return m.updateEditHeader(msg)
		}
	}

	switch m.mode {
	case invoiceViewEditItem:
		var cmd tea.Cmd
		m.itemFields[m.itemFocus], cmd = m.itemFields[m.itemFocus].Update(msg)
		return m, cmd
	case invoiceViewEditHeader:
		var cmd tea.Cmd
		m.headerFields[m.headerFocus], cmd = m.headerFields[m.headerFocus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *InvoicesModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	m.statusMsg = ""

	switch {
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.cursor < len(m.invoices)-1 {
			m.cursor++
		}
	case key.Matches(msg, DefaultKeyMap.New):
		m.mode = invoiceViewPickClient
		m.clients = nil
		return m, m.loadClients()
	case msg.String() == "w", msg.String() == "m":
		if m.cursor < len(m.invoices) {
			return m, m.shareLink(m.invoices[m.cursor].InvoiceNumber, msg.String() == "m")
		}
	}
	return m, nil
}

func (m *InvoicesModel) updatePickClient(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc":
		m.mode = invoiceViewList
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.clientCursor > 0 {
			m.clientCursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.clientCursor < len(m.clients)-1 {
			m.clientCursor++
		}
	case key.Matches(msg, DefaultKeyMap.Select):
		if m.clientCursor < len(m.clients) {
			return m, m.startSession(m.clients[m.clientCursor].ID)
		}
	}
	return m, nil
}

func (m *InvoicesModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc":
		// The number stays used, matching a discarded paper invoice
		m.session = nil
		m.mode = invoiceViewList
		m.statusMsg = "Invoice discarded"
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.itemCursor > 0 {
			m.itemCursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.itemCursor < len(m.session.Items)-1 {
			m.itemCursor++
		}
	case msg.String() == "+":
		m.session.AddItem()
		m.itemCursor = len(m.session.Items) - 1
	case msg.String() == "-":
		if err := m.session.RemoveItem(m.itemCursor); err != nil {
			m.err = err
		} else if m.itemCursor >= len(m.session.Items) {
			m.itemCursor = len(m.session.Items) - 1
		}
	case msg.String() == "t":
		m.nextTemplate()
	case msg.String() == "h":
		m.mode = invoiceViewEditHeader
		m.initHeaderForm()
		return m, m.headerFields[m.headerFocus].Focus()
	case key.Matches(msg, DefaultKeyMap.Select):
		m.mode = invoiceViewEditItem
		m.initItemForm()
		return m, m.itemFields[m.itemFocus].Focus()
	case msg.String() == "p":
		return m, m.printSession()
	}
	return m, nil
}

func (m *InvoicesModel) updateEditItem(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = invoiceViewEditor
		return m, nil
	case "tab", "down":
		m.itemFields[m.itemFocus].Blur()
		m.itemFocus = (m.itemFocus + 1) % itemFieldCount
		return m, m.itemFields[m.itemFocus].Focus()
	case "shift+tab", "up":
		m.itemFields[m.itemFocus].Blur()
		m.itemFocus = (m.itemFocus - 1 + itemFieldCount) % itemFieldCount
		return m, m.itemFields[m.itemFocus].Focus()
	case "enter", "ctrl+s":
		if msg.String() == "enter" && m.itemFocus < itemFieldCount-1 {
			m.itemFields[m.itemFocus].Blur()
			m.itemFocus++
			return m, m.itemFields[m.itemFocus].Focus()
		}
		if err := m.applyItemForm(); err != nil {
			m.err = err
			return m, nil
		}
		m.mode = invoiceViewEditor
		return m, nil
	}

	var cmd tea.Cmd
	m.itemFields[m.itemFocus], cmd = m.itemFields[m.itemFocus].Update(msg)
	return m, cmd
}

func (m *InvoicesModel) updateEditHeader(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.headerFields)
	switch msg.String() {
	case "esc":
		m.mode = invoiceViewEditor
		return m, nil
	case "tab", "down":
		m.headerFields[m.headerFocus].Blur()
		m.headerFocus = (m.headerFocus + 1) % n
		return m, m.headerFields[m.headerFocus].Focus()
	case "shift+tab", "up":
		m.headerFields[m.headerFocus].Blur()
		m.headerFocus = (m.headerFocus - 1 + n) % n
		return m, m.headerFields[m.headerFocus].Focus()
	case "enter", "ctrl+s":
		if msg.String() == "enter" && m.headerFocus < n-1 {
			m.headerFields[m.headerFocus].Blur()
			m.headerFocus++
			return m, m.headerFields[m.headerFocus].Focus()
		}
		if err := m.applyHeaderForm(); err != nil {
			m.err = err
			return m, nil
		}
		m.mode = invoiceViewEditor
		return m, nil
	}

	var cmd tea.Cmd
	m.headerFields[m.headerFocus], cmd = m.headerFields[m.headerFocus].Update(msg)
	return m, cmd
}

func (m *InvoicesModel) View() string {
	var s string
	switch m.mode {
	case invoiceViewPickClient:
		s = m.viewPickClient()
	case invoiceViewEditor:
		s = m.viewEditor()
	case invoiceViewEditItem:
		s = m.viewEditItem()
	case invoiceViewEditHeader:
		s = m.viewEditHeader()
	default:
		s = m.viewList()
	}
	if m.err != nil {
		s += "\n" + errTextStyle.Render(fmt.Sprintf("  Error: %v", m.err))
	}
	return s
}

func (m *InvoicesModel) viewList() string {
	if m.loading {
		return "Loading invoices..."
	}

	s := titleStyle.Render("Issued Invoices") + "\n\n"
	if m.statusMsg != "" {
		s += statusStyle.Render("  "+m.statusMsg) + "\n\n"
	}

	if len(m.invoices) == 0 {
		s += subtitleStyle.Render("  No invoices yet. Press 'n' to create one.") + "\n"
		return s
	}

	for i, inv := range m.invoices {
		line := fmt.Sprintf("%s  %s  %s  %s  %s  due %s",
			padRight(inv.InvoiceNumber, 22),
			padRight(truncateStr(inv.BusinessName, 24), 24),
			padRight(inv.Template, 8),
			padRight(inv.InvoiceDate, 12),
			padLeft(formatMoney(inv.Total), 12),
			formatMoney(inv.Due),
		)
		if i == m.cursor {
			s += selectedStyle.Render("> "+line) + "\n"
		} else {
			s += "  " + line + "\n"
		}
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new invoice  w: WhatsApp link  m: email link")
	return s
}

func (m *InvoicesModel) viewPickClient() string {
	s := titleStyle.Render("New Invoice: choose a client") + "\n\n"
	if m.clients == nil {
		return s + "  Loading clients..."
	}
	if len(m.clients) == 0 {
		return s + subtitleStyle.Render("  No clients yet. Add one on the clients screen first.") + "\n"
	}

	for i, c := range m.clients {
		indicator := "  "
		style := lipgloss.NewStyle()
		if i == m.clientCursor {
			indicator = "> "
			style = style.Bold(true).Foreground(primaryColor)
		}
		s += style.Render(fmt.Sprintf("%s%s  %s", indicator, padRight(c.BusinessName, 28), subtitleStyle.Render(c.ServicesLabel()))) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  enter: start invoice  esc: cancel")
	return s
}

func (m *InvoicesModel) viewEditor() string {
	sess := m.session
	s := titleStyle.Render(fmt.Sprintf("Invoice %s", sess.Number)) + "\n"
	s += subtitleStyle.Render(fmt.Sprintf("  %s  |  %s  |  layout %s", sess.Client.BusinessName, sess.Date, sess.Template)) + "\n\n"

	s += subtitleStyle.Render(fmt.Sprintf("  %-3s %s %-8s %12s %6s %12s", "#", padRight("Description", 36), "HSN", "Rate", "Qty", "Amount")) + "\n"
	for i, item := range sess.Items {
		line := fmt.Sprintf("%-3d %s %-8s %s %6s %s",
			i+1,
			padRight(truncateStr(item.Description, 36), 36),
			item.HSN,
			padLeft(formatMoney(item.Rate), 12),
			strconv.FormatFloat(item.Quantity, 'f', -1, 64),
			padLeft(formatMoney(item.Amount()), 12),
		)
		if i == m.itemCursor {
			s += selectedStyle.Render("> "+line) + "\n"
		} else {
			s += "  " + line + "\n"
		}
	}

	t := sess.Totals()
	s += "\n"
	s += fmt.Sprintf("  Taxable %s   CGST %s   SGST %s\n", formatMoney(t.Taxable), formatMoney(t.CGST), formatMoney(t.SGST))
	s += fmt.Sprintf("  Total %s   Paid %s   Balance %s\n",
		valueStyle.Bold(true).Render(formatMoney(t.Total)),
		paidStyle.Render(formatMoney(t.Paid)),
		dueStyle.Render(formatMoney(t.Due)),
	)
	s += subtitleStyle.Render("  "+invoice.AmountInWords(t.Total)) + "\n"

	s += "\n" + helpStyle.Render("  j/k: item  enter: edit item  +: add item  -: remove item  h: header  t: layout  p: print  esc: discard")
	return s
}

func (m *InvoicesModel) viewEditItem() string {
	s := titleStyle.Render(fmt.Sprintf("Edit Item %d", m.itemCursor+1)) + "\n\n"
	for i, label := range itemFieldLabels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.itemFocus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.itemFields[i].View())
	}
	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: apply  enter: next/apply  esc: cancel")
	return strings.TrimRight(s, "\n")
}

func (m *InvoicesModel) viewEditHeader() string {
	s := titleStyle.Render("Edit Invoice Header") + "\n"
	if m.session.Template != invoice.TemplateTax {
		s += subtitleStyle.Render("  Switch to the TAX layout to fill in its compliance fields") + "\n"
	}
	s += "\n"

	start := 0
	if m.headerFocus >= headerWindow {
		start = m.headerFocus - headerWindow + 1
	}
	end := min(start+headerWindow, len(m.headerFields))

	for i := start; i < end; i++ {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.headerFocus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n", indicator, labelStyle.Render(headerLabel(m.headerKeys[i])+":"), m.headerFields[i].View())
	}
	if len(m.headerFields) > headerWindow {
		s += subtitleStyle.Render(fmt.Sprintf("  field %d of %d", m.headerFocus+1, len(m.headerFields))) + "\n"
	}

	s += "\n" + helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: apply  enter: next/apply  esc: cancel")
	return s
}
