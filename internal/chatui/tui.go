package chatui

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

const emptyHint = "👋 Start chatting with ReUpyog AI\nAsk about refurbished electronics, buy-back options, and eco-friendly tips!"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("28")).
			Padding(0, 1)
	userLabelStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("34"))
	assistantLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("35"))
	hintStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	typingStyle         = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
)

// relayDoneMsg carries the result of one relay call back into Update.
type relayDoneMsg struct {
	reply string
	err   error
}

// Model is the Bubble Tea model for the terminal chat.
type Model struct {
	ctx      context.Context
	session  *Session
	input    textinput.Model
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

// NewModel creates a terminal chat model over session.
func NewModel(ctx context.Context, session *Session) Model {
	input := textinput.New()
	input.Placeholder = "Ask ReUpyog AI about refurbished electronics..."
	input.Prompt = "› "
	input.Focus()

	return Model{
		ctx:      ctx,
		session:  session,
		input:    input,
		viewport: viewport.New(),
	}
}

// NewProgram creates a full-screen program for session.
func NewProgram(ctx context.Context, session *Session, opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	return tea.NewProgram(NewModel(ctx, session), opts...)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		m.refresh()
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			history, ok := m.session.Begin(m.input.Value())
			if !ok {
				return m, nil
			}
			m.input.Reset()
			m.refresh()
			return m, m.send(history)
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case relayDoneMsg:
		m.session.Finish(msg.reply, msg.err)
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send runs the relay call off the update loop.
func (m Model) send(history []Message) tea.Cmd {
	relay := m.session.relay
	ctx := m.ctx
	return func() tea.Msg {
		reply, err := relay.Send(ctx, history)
		return relayDoneMsg{reply: reply, err: err}
	}
}

// View implements tea.Model.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("ReUpyog AI ✨ Your AI guide for refurbished electronics ♻️"))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.session.Typing() {
		b.WriteString(typingStyle.Render("ReUpyog AI is typing..."))
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}

// resize lays out the viewport between the header and the input line.
func (m *Model) resize() {
	const chrome = 4 // header, typing line, input line, spacing
	m.viewport.SetWidth(m.width)
	m.viewport.SetHeight(max(m.height-chrome, 1))
	m.input.SetWidth(max(m.width-4, 10))
}

// refresh re-renders the conversation into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(renderConversation(m.session.Messages(), m.width))
	m.viewport.GotoBottom()
}

func renderConversation(messages []Message, width int) string {
	if len(messages) == 0 {
		return hintStyle.Render(emptyHint)
	}

	body := lipgloss.NewStyle().PaddingLeft(2)
	if width > 4 {
		body = body.Width(width - 2)
	}

	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		if msg.Role == RoleUser {
			b.WriteString(userLabelStyle.Render("You"))
		} else {
			b.WriteString(assistantLabelStyle.Render("ReUpyog AI"))
		}
		b.WriteString("\n")
		b.WriteString(body.Render(msg.Content))
		b.WriteString("\n")
	}
	return b.String()
}
