package tui

import (
	"strings"
	"time"

	"github.com/Bumblebig/UniSupport/logic"
	"github.com/Bumblebig/UniSupport/models"
	"github.com/Bumblebig/UniSupport/pkg"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type mode int

const (
	modeLogin mode = iota
	modeSignup
	modeChat
)

// SessionClosedMsg is sent into the program when the session guard
// observes a sign-out; the view falls back to the login form.
type SessionClosedMsg struct{}

type authResultMsg struct {
	result *pkg.AuthResult
	err    error
}

type historyMsg struct {
	messages []models.Message
	err      error
}

type quickActionsMsg struct {
	list *pkg.QuickActionList
	err  error
}

type chatResultMsg struct {
	result *pkg.ExchangeResult
	err    error
}

type Model struct {
	api *pkg.APIClient

	mode   mode
	width  int
	height int
	errMsg string

	// login / signup form
	nameInput textinput.Model
	mailInput textinput.Model
	passInput textinput.Model
	focus     int

	// chat view
	userName    string
	messages    []models.Message
	chatInput   textinput.Model
	loading     bool
	showSidebar bool
	categories  []models.Category
	actions     []models.QuickAction
	categoryIdx int
	quitting    bool
}

func NewModel(api *pkg.APIClient) Model {
	ni := textinput.New()
	ni.Placeholder = "name"
	ni.CharLimit = 100

	mi := textinput.New()
	mi.Placeholder = "mail"
	mi.CharLimit = 255
	mi.Focus()

	pi := textinput.New()
	pi.Placeholder = "password"
	pi.CharLimit = 100
	pi.EchoMode = textinput.EchoPassword

	ci := textinput.New()
	ci.Placeholder = "Describe your issue..."
	ci.CharLimit = 1000

	return Model{
		api:         api,
		mode:        modeLogin,
		nameInput:   ni,
		mailInput:   mi,
		passInput:   pi,
		chatInput:   ci,
		showSidebar: true,
		width:       100,
		height:      30,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SessionClosedMsg:
		m.mode = modeLogin
		m.messages = nil
		m.userName = ""
		m.loading = false
		m.errMsg = "Session ended. Please log in again."
		m.mailInput.Focus()
		m.focus = 0
		return m, nil

	case authResultMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.mode = modeChat
		m.errMsg = ""
		m.userName = msg.result.User.Name
		m.chatInput.Focus()
		return m, tea.Batch(m.loadHistory(), m.loadQuickActions())

	case historyMsg:
		// Silent degradation: a failed load leaves the welcome panel up.
		if msg.err == nil {
			m.messages = msg.messages
		}
		return m, nil

	case quickActionsMsg:
		if msg.err == nil {
			m.categories = msg.list.Categories
			m.actions = msg.list.Actions
		}
		return m, nil

	case chatResultMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.messages = append(m.messages, msg.result.Reply)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeLogin, modeSignup:
			return m.updateAuth(msg)
		case modeChat:
			return m.updateChat(msg)
		}
	}

	return m, nil
}

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "ctrl+s":
		if m.mode == modeLogin {
			m.mode = modeSignup
			m.focus = 0
			m.nameInput.Focus()
			m.mailInput.Blur()
			m.passInput.Blur()
		} else {
			m.mode = modeLogin
			m.focus = 0
			m.mailInput.Focus()
			m.nameInput.Blur()
			m.passInput.Blur()
		}
		m.errMsg = ""
		return m, nil

	case "tab", "shift+tab", "down", "up":
		fields := m.authFields()
		if msg.String() == "shift+tab" || msg.String() == "up" {
			m.focus = (m.focus + len(fields) - 1) % len(fields)
		} else {
			m.focus = (m.focus + 1) % len(fields)
		}
		for i, f := range fields {
			if i == m.focus {
				f.Focus()
			} else {
				f.Blur()
			}
		}
		return m, nil

	case "enter":
		mail := strings.TrimSpace(m.mailInput.Value())
		pass := m.passInput.Value()
		if m.mode == modeSignup {
			name := strings.TrimSpace(m.nameInput.Value())
			return m, m.signup(name, mail, pass)
		}
		return m, m.login(mail, pass)
	}

	var cmd tea.Cmd
	fields := m.authFields()
	*fields[m.focus], cmd = fields[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) authFields() []*textinput.Model {
	if m.mode == modeSignup {
		return []*textinput.Model{&m.nameInput, &m.mailInput, &m.passInput}
	}
	return []*textinput.Model{&m.mailInput, &m.passInput}
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "ctrl+l":
		return m, m.logout()

	case "ctrl+b":
		m.showSidebar = !m.showSidebar
		return m, nil

	case "tab":
		if len(m.categories) > 0 {
			m.categoryIdx = (m.categoryIdx + 1) % len(m.categories)
		}
		return m, nil

	case "enter":
		// The input affordance is disabled while an exchange is in
		// flight; empty input is silently ignored.
		if m.loading {
			return m, nil
		}
		text := strings.TrimSpace(m.chatInput.Value())
		if text == "" {
			return m, nil
		}

		// Optimistic echo of the user turn before the network call.
		m.messages = append(m.messages, models.Message{
			Role:      models.RoleUser,
			Content:   text,
			Timestamp: time.Now(),
		})
		m.chatInput.SetValue("")
		m.loading = true
		m.errMsg = ""
		return m, m.sendMessage(text)
	}

	if m.loading {
		return m, nil
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m Model) login(mail, password string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.api.Login(mail, password)
		return authResultMsg{result: result, err: err}
	}
}

func (m Model) signup(name, mail, password string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.api.Signup(name, mail, password)
		return authResultMsg{result: result, err: err}
	}
}

func (m Model) logout() tea.Cmd {
	return func() tea.Msg {
		if err := m.api.Logout(); err != nil {
			return SessionClosedMsg{}
		}
		return SessionClosedMsg{}
	}
}

func (m Model) loadHistory() tea.Cmd {
	return func() tea.Msg {
		messages, err := m.api.Messages()
		return historyMsg{messages: messages, err: err}
	}
}

func (m Model) loadQuickActions() tea.Cmd {
	return func() tea.Msg {
		list, err := m.api.QuickActions(logic.CategoryAll)
		return quickActionsMsg{list: list, err: err}
	}
}

func (m Model) sendMessage(text string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.api.Chat(text)
		return chatResultMsg{result: result, err: err}
	}
}
