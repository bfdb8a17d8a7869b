// Package tui renders a conversation in the terminal and drives it through
// a chat.Session.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"portfolio-chat-backend/internal/chat"
	"portfolio-chat-backend/internal/types"
)

const assistantName = "Yavuz's AI"

// Suggestions are cycled into the input with Tab.
var Suggestions = []string{
	"What can you help me with?",
	"Tell me about your capabilities",
	"Hello! 👋",
	"What can you do?",
	"Tell me a joke",
	"Help me code",
}

// settledMsg arrives once the session has recorded a reply or a failure.
type settledMsg struct{}

// Model is the Bubble Tea model for the chat window.
type Model struct {
	session    *chat.Session
	input      textinput.Model
	spinner    spinner.Model
	styles     styles
	width      int
	suggestion int
}

func New(session *chat.Session) Model {
	ti := textinput.New()
	ti.Placeholder = "Message " + assistantName + "..."
	ti.Prompt = "> "
	ti.CharLimit = 2000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(cyan)

	return Model{
		session:    session,
		input:      ti,
		spinner:    sp,
		styles:     defaultStyles(),
		suggestion: -1,
	}
}

// State exposes the current conversation state.
func (m Model) State() chat.State { return m.session.State() }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if w := msg.Width - 8; w > 10 {
			m.input.Width = w
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyTab:
			return m.nextSuggestion(), nil
		}
		// input is disabled while a request is in flight
		if m.State().Sending {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.session.SetInput(m.input.Value())
		return m, cmd

	case settledMsg:
		return m, nil

	case spinner.TickMsg:
		if !m.State().Sending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) submit() (Model, tea.Cmd) {
	history, ok := m.session.Begin()
	if !ok {
		return m, nil
	}
	m.input.SetValue("")
	m.suggestion = -1
	return m, tea.Batch(m.spinner.Tick, deliver(m.session, history))
}

func (m Model) nextSuggestion() Model {
	if m.State().Sending {
		return m
	}
	m.suggestion = (m.suggestion + 1) % len(Suggestions)
	text := Suggestions[m.suggestion]
	m.input.SetValue(text)
	m.input.CursorEnd()
	m.session.SetInput(text)
	return m
}

// deliver performs the relay call off the update loop. There is no
// cancellation: the UI just waits for the session to settle.
func deliver(session *chat.Session, history []types.Message) tea.Cmd {
	return func() tea.Msg {
		session.Deliver(context.Background(), history)
		return settledMsg{}
	}
}

func (m Model) View() string {
	st := m.State()
	var b strings.Builder

	b.WriteString(m.styles.title.Render("🤖 "+assistantName) + "  " +
		m.styles.subtitle.Render("Intelligent Assistant") + "  " +
		m.styles.status.Render("● Online"))
	b.WriteString("\n\n")

	if len(st.Messages) == 0 {
		b.WriteString(m.welcomeView())
		b.WriteString("\n\n")
	}

	if st.Err != "" {
		b.WriteString(m.styles.errBanner.Render("⚠️ Error: " + st.Err))
		b.WriteString("\n\n")
	}

	for _, msg := range st.Messages {
		b.WriteString(m.messageView(msg))
		b.WriteString("\n\n")
	}

	if st.Sending {
		b.WriteString(m.spinner.View() + " " + m.styles.thinking.Render("Thinking..."))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.input.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.styles.help.Render("enter send • tab suggestion • esc quit"))
	return b.String()
}

func (m Model) welcomeView() string {
	lines := []string{
		m.styles.title.Render("✨ Welcome to " + assistantName),
		m.styles.subtitle.Render("Your intelligent partner for creativity and conversation"),
		"",
	}
	for _, s := range Suggestions[:2] {
		lines = append(lines, "  • "+s)
	}
	return m.styles.welcome.Render(strings.Join(lines, "\n"))
}

func (m Model) messageView(msg types.Message) string {
	bubbleWidth := 0
	if m.width > 0 {
		bubbleWidth = m.width * 85 / 100
	}
	if msg.Role == types.RoleUser {
		st := m.styles.user
		if bubbleWidth > 0 {
			st = st.MaxWidth(bubbleWidth)
		}
		line := m.styles.speaker.Render("You") + "\n" + st.Render(msg.Content)
		if m.width > 0 {
			return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, line)
		}
		return line
	}
	st := m.styles.assistant
	if bubbleWidth > 0 {
		st = st.Width(bubbleWidth)
	}
	return m.styles.speaker.Render(assistantName) + "\n" + st.Render(msg.Content)
}
