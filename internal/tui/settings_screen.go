package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/agencyflow/internal/app"
	"github.com/andy/agencyflow/internal/domain"
	"github.com/andy/agencyflow/internal/invoice"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
)

// settings form field indices
const (
	settingsFieldName = iota
	settingsFieldAddress
	settingsFieldPhone
	settingsFieldEmail
	settingsFieldGSTIN
	settingsFieldWebsite
	settingsFieldOutputDir
	settingsFieldTemplate
	settingsFieldCount
)

var settingsLabels = []string{
	"Agency Name:", "Address:", "Phone:", "Email:", "GSTIN:", "Website:",
	"Invoice Directory:", "Default Layout:",
}

type settingsLoadedMsg struct {
	profile *domain.AgencyProfile
	err     error
}

type settingsSavedMsg struct {
	profile *domain.AgencyProfile
	err     error
}

// SettingsModel edits the agency profile and the invoice output settings
type SettingsModel struct {
	app        *app.App
	mode       settingsMode
	profile    *domain.AgencyProfile
	fields     []textinput.Model
	fieldFocus int
	err        error
	statusMsg  string
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{
		app:  a,
		mode: settingsModeView,
	}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit
}

func (m *SettingsModel) Init() tea.Cmd {
	return m.loadProfile()
}

func (m *SettingsModel) loadProfile() tea.Cmd {
	return func() tea.Msg {
		p, err := m.app.AgencyService.Get(context.Background())
		return settingsLoadedMsg{profile: p, err: err}
	}
}

func (m *SettingsModel) initForm() {
	m.fields = make([]textinput.Model, settingsFieldCount)
	m.fields[settingsFieldName] = newField("Your Agency", 100, 40)
	m.fields[settingsFieldAddress] = newField("Street, City", 200, 60)
	m.fields[settingsFieldPhone] = newField("+91 98765 43210", 20, 20)
	m.fields[settingsFieldEmail] = newField("billing@youragency.com", 100, 40)
	m.fields[settingsFieldGSTIN] = newField("29ABCDE1234F1Z5", 15, 20)
	m.fields[settingsFieldWebsite] = newField("youragency.com", 100, 40)
	m.fields[settingsFieldOutputDir] = newField("/path/to/invoices", 256, 60)
	m.fields[settingsFieldTemplate] = newField("MODERN", 10, 12)

	if p := m.profile; p != nil {
		m.fields[settingsFieldName].SetValue(p.Name)
		m.fields[settingsFieldAddress].SetValue(p.Address)
		m.fields[settingsFieldPhone].SetValue(p.Phone)
		m.fields[settingsFieldEmail].SetValue(p.Email)
		m.fields[settingsFieldGSTIN].SetValue(p.GSTIN)
		m.fields[settingsFieldWebsite].SetValue(p.Website)
	}
	m.fields[settingsFieldOutputDir].SetValue(m.app.Config.Invoice.OutputDir)
	m.fields[settingsFieldTemplate].SetValue(m.app.Config.Invoice.DefaultTemplate)

	m.fieldFocus = settingsFieldName
	m.fields[settingsFieldName].Focus()
}

func (m *SettingsModel) saveSettings() tea.Cmd {
	value := func(i int) string { return strings.TrimSpace(m.fields[i].Value()) }

	profile := domain.AgencyProfile{}
	if m.profile != nil {
		profile = *m.profile
	}
	profile.Name = value(settingsFieldName)
	profile.Address = value(settingsFieldAddress)
	profile.Phone = value(settingsFieldPhone)
	profile.Email = value(settingsFieldEmail)
	profile.GSTIN = value(settingsFieldGSTIN)
	profile.Website = value(settingsFieldWebsite)
	outputDir := value(settingsFieldOutputDir)
	tmplName := value(settingsFieldTemplate)

	return func() tea.Msg {
		if outputDir == "" {
			return settingsSavedMsg{err: fmt.Errorf("invoice directory is required")}
		}
		tmpl, err := invoice.ParseTemplate(tmplName)
		if err != nil {
			return settingsSavedMsg{err: err}
		}
		if err := profile.Validate(); err != nil {
			return settingsSavedMsg{err: err}
		}

		if err := m.app.AgencyService.Save(context.Background(), &profile); err != nil {
			return settingsSavedMsg{err: fmt.Errorf("failed to save agency profile: %w", err)}
		}

		m.app.Config.Invoice.OutputDir = outputDir
		m.app.Config.Invoice.DefaultTemplate = string(tmpl)
		if err := m.app.SaveConfig(); err != nil {
			return settingsSavedMsg{err: fmt.Errorf("failed to save config: %w", err)}
		}

		return settingsSavedMsg{profile: &profile}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		m.err = msg.err
		m.profile = msg.profile
		return m, nil
	case RefreshDataMsg:
		if m.mode == settingsModeView {
			return m, m.loadProfile()
		}
	}

	if m.mode == settingsModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil
		switch {
		case msg.String() == "enter":
			m.mode = settingsModeEdit
			m.statusMsg = ""
			m.initForm()
			return m, m.fields[m.fieldFocus].Focus()
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.profile = msg.profile
		m.mode = settingsModeView
		m.err = nil
		m.statusMsg = "Settings saved"
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = settingsModeView
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + settingsFieldCount) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == settingsFieldCount-1 {
				return m, m.saveSettings()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveSettings()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.mode == settingsModeEdit {
		return m.viewForm()
	}
	return m.viewSettings()
}

func (m *SettingsModel) viewSettings() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}
	if m.err != nil {
		s += errTextStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	labelStyle := lipgloss.NewStyle().Bold(true).Width(22)
	row := func(label, value string) string {
		if value == "" {
			value = subtitleStyle.Render("-")
		} else {
			value = valueStyle.Render(value)
		}
		return fmt.Sprintf("  %s %s\n", labelStyle.Render(label), value)
	}

	s += subtitleStyle.Render("  Agency Profile") + "\n\n"
	if p := m.profile; p != nil {
		s += row("Name:", p.Name)
		s += row("Address:", p.Address)
		s += row("Phone:", p.Phone)
		s += row("Email:", p.Email)
		s += row("GSTIN:", p.GSTIN)
		s += row("Website:", p.Website)
		logo := ""
		if p.LogoURL != "" {
			logo = "set"
		}
		s += row("Logo:", logo)
	} else {
		s += subtitleStyle.Render("  Loading...") + "\n"
	}

	cfg := m.app.Config.Invoice
	s += "\n" + subtitleStyle.Render("  Invoice Settings") + "\n\n"
	s += row("Output Directory:", cfg.OutputDir)
	s += row("Default Layout:", cfg.DefaultTemplate)

	s += "\n" + helpStyle.Render("  enter: edit settings  (logo and custom layout: agencyflow agency)")

	return s
}

func (m *SettingsModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Settings") + "\n\n"

	for i, label := range settingsLabels {
		indicator := "  "
		if i == m.fieldFocus {
			indicator = "> "
		}
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.err != nil {
		s += errTextStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}
