package tui

import (
	"fmt"
	"strings"

	"github.com/Bumblebig/UniSupport/logic"
	"github.com/Bumblebig/UniSupport/models"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modeLogin, modeSignup:
		return m.viewAuth()
	default:
		return m.viewChat()
	}
}

func (m Model) viewAuth() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("UniSupport"))
	b.WriteString("\n\n")

	if m.mode == modeSignup {
		b.WriteString("Create an account\n\n")
		b.WriteString(m.nameInput.View() + "\n")
	} else {
		b.WriteString("Sign in to continue\n\n")
	}
	b.WriteString(m.mailInput.View() + "\n")
	b.WriteString(m.passInput.View() + "\n\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg) + "\n\n")
	}

	switchHint := "ctrl+s sign up"
	if m.mode == modeSignup {
		switchHint = "ctrl+s sign in"
	}
	b.WriteString(helpStyle.Render("enter submit • tab next field • " + switchHint + " • esc quit"))

	return b.String()
}

func (m Model) viewChat() string {
	header := headerStyle.Width(m.width).Render("UniSupport — student IT help, by students")

	var sidebar string
	if m.showSidebar {
		sidebar = m.viewSidebar()
	}

	body := m.viewTranscript()
	if len(m.messages) == 0 {
		body = m.viewWelcome()
	}

	main := body
	if sidebar != "" {
		main = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, body)
	}

	input := m.chatInput.View()
	if m.loading {
		input = dimStyle.Render("Assistant is typing...")
	}

	status := "ctrl+b sidebar • tab category • ctrl+l logout • ctrl+c quit"
	if m.userName != "" {
		status = m.userName + " • " + status
	}
	if m.errMsg != "" {
		status = m.errMsg
	}

	return strings.Join([]string{
		header,
		main,
		input,
		statusBarStyle.Width(m.width).Render(status),
	}, "\n")
}

func (m Model) viewSidebar() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Topics") + "\n")

	for i, cat := range m.categories {
		if i == m.categoryIdx {
			b.WriteString(selectedCategoryStyle.Render(cat.Name) + "\n")
		} else {
			b.WriteString(categoryStyle.Render(cat.Name) + "\n")
		}
	}

	return lipgloss.NewStyle().Width(24).Render(b.String())
}

func (m Model) viewWelcome() string {
	var b strings.Builder
	b.WriteString("Hi! I help with portal, registration, fees and\n")
	b.WriteString("technical issues. Try one of these:\n\n")

	for _, qa := range m.filteredActions() {
		b.WriteString("• " + qa.Text + "\n")
	}

	return welcomeStyle.Render(b.String())
}

func (m Model) filteredActions() []models.QuickAction {
	category := logic.CategoryAll
	if len(m.categories) > 0 {
		category = m.categories[m.categoryIdx].ID
	}
	if category == logic.CategoryAll {
		return m.actions
	}

	var out []models.QuickAction
	for _, qa := range m.actions {
		if qa.Category == category {
			out = append(out, qa)
		}
	}
	return out
}

func (m Model) viewTranscript() string {
	var lines []string
	for _, msg := range m.messages {
		tag := userBubbleStyle.Render(" You ")
		if msg.Role == models.RoleAssistant {
			tag = botBubbleStyle.Render(" AI ")
		}
		stamp := timestampStyle.Render(msg.Timestamp.Local().Format("15:04"))
		lines = append(lines, fmt.Sprintf("%s %s %s", tag, stamp, msg.Content))
	}

	// Scroll-to-latest: keep the tail of the transcript visible.
	visible := m.height - 4
	if visible < 1 {
		visible = 1
	}
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}

	return strings.Join(lines, "\n")
}
