package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andy/agencyflow/internal/app"
)

// how many exchanges stay on screen
const assistantHistory = 6

type chatTurn struct {
	question string
	answer   string
}

type assistantReplyMsg struct {
	question string
	answer   string
	err      error
}

// AssistantModel is a question and answer chat over the agency's records
type AssistantModel struct {
	app      *app.App
	input    textinput.Model
	history  []chatTurn
	typing   bool
	thinking bool
	err      error
}

// NewAssistantModel creates a new assistant screen
func NewAssistantModel(a *app.App) tea.Model {
	in := newField("How much is still due this month?", 500, 70)
	in.Prompt = "> "
	return &AssistantModel{
		app:   a,
		input: in,
	}
}

// IsCapturingInput returns true while a question is being typed
func (m *AssistantModel) IsCapturingInput() bool {
	return m.typing
}

func (m *AssistantModel) Init() tea.Cmd {
	return nil
}

func (m *AssistantModel) ask(question string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		clients, err := m.app.ClientService.List(ctx)
		if err != nil {
			return assistantReplyMsg{question: question, err: fmt.Errorf("failed to load clients: %w", err)}
		}
		expenses, err := m.app.ExpenseService.List(ctx, "")
		if err != nil {
			return assistantReplyMsg{question: question, err: fmt.Errorf("failed to load expenses: %w", err)}
		}
		return assistantReplyMsg{
			question: question,
			answer:   m.app.Assistant.Ask(ctx, question, clients, expenses),
		}
	}
}

func (m *AssistantModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case assistantReplyMsg:
		m.thinking = false
		m.err = msg.err
		if msg.err == nil {
			m.history = append(m.history, chatTurn{question: msg.question, answer: msg.answer})
			if len(m.history) > assistantHistory {
				m.history = m.history[len(m.history)-assistantHistory:]
			}
		}
		return m, nil

	case tea.KeyMsg:
		if !m.typing {
			switch msg.String() {
			case "enter", "/":
				m.typing = true
				m.err = nil
				return m, m.input.Focus()
			}
			return m, nil
		}

		switch msg.String() {
		case "esc":
			m.typing = false
			m.input.Blur()
			return m, nil
		case "enter":
			question := strings.TrimSpace(m.input.Value())
			if question == "" || m.thinking {
				return m, nil
			}
			m.input.SetValue("")
			m.thinking = true
			return m, m.ask(question)
		}
	}

	if m.typing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *AssistantModel) View() string {
	s := titleStyle.Render("Assistant") + "\n"
	s += subtitleStyle.Render("  Ask about revenue, dues, clients or spending") + "\n\n"

	if len(m.history) == 0 && !m.thinking {
		s += subtitleStyle.Render("  No questions yet") + "\n\n"
	}
	for _, turn := range m.history {
		s += valueStyle.Render("  You: ") + turn.question + "\n"
		for _, line := range strings.Split(turn.answer, "\n") {
			s += "  " + line + "\n"
		}
		s += "\n"
	}
	if m.thinking {
		s += subtitleStyle.Render("  Thinking...") + "\n\n"
	}
	if m.err != nil {
		s += errTextStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	if m.typing {
		s += "  " + m.input.View() + "\n\n"
		s += helpStyle.Render("  enter: ask  esc: stop typing")
	} else {
		s += helpStyle.Render("  enter: type a question")
	}
	return s
}
