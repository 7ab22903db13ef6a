package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxUsernameLen = 32

// updateUsernameEntry handles username entry screen
func (m Model) updateUsernameEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyEnter:
		// blank is fine: the server hands out a generated name
		m = m.withConnection(strings.TrimSpace(m.usernameInput))
		return m, m.connectCmds()

	case tea.KeyBackspace:
		if r := []rune(m.usernameInput); len(r) > 0 {
			m.usernameInput = string(r[:len(r)-1])
		}

	case tea.KeySpace:
		m.usernameInput = appendLimited(m.usernameInput, " ", maxUsernameLen)

	case tea.KeyRunes:
		m.usernameInput = appendLimited(m.usernameInput, string(msg.Runes), maxUsernameLen)
	}

	return m, nil
}

func appendLimited(s, add string, limit int) string {
	r := append([]rune(s), []rune(add)...)
	if len(r) > limit {
		r = r[:limit]
	}
	return string(r)
}

// viewUsernameEntry renders the username entry screen
func (m Model) viewUsernameEntry() string {
	title := titleStyle.Render("CHAT")
	subtitle := subtitleStyle.Render(m.cfg.ServerURL)

	promptText := lipgloss.NewStyle().
		Foreground(clientColor).
		Margin(2, 0, 0, 0).
		Render("Pick a name:")

	inputText := m.usernameInput
	if len(inputText) == 0 {
		inputText = mutedStyle.Render("leave blank for a random one")
	} else {
		inputText = highlightStyle.Render(inputText) + cursorStyle.Render("▊")
	}
	inputField := nameInputStyle.Render(inputText)

	mainContent := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		subtitle,
		promptText,
		inputField,
	)

	instructions := instructionStyle.Render(
		"Press " + highlightStyle.Render("ENTER") + " to connect  •  " +
			mutedStyle.Render("ESC to quit"))

	centeredMain := lipgloss.Place(m.width, m.height-5, lipgloss.Center, lipgloss.Center, mainContent)
	bottomInstructions := lipgloss.Place(m.width, 3, lipgloss.Center, lipgloss.Bottom, instructions)

	return centeredMain + "\n" + bottomInstructions
}
