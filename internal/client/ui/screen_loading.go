package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// updateLoading handles loading screen updates
func (m Model) updateLoading(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		m.Disconnect()
		return m, tea.Quit
	}
	return m, nil
}

// viewLoading renders the loading/connection screen
func (m Model) viewLoading() string {
	title := titleStyle.Render("CHAT")
	subtitle := subtitleStyle.Render("Connecting to the server...")

	dots := strings.Repeat(".", m.loadingDots)
	spinner := spinnerStyle.Render(string([]rune("◐◓◑◒")[m.loadingDots%4]))

	loadingText := lipgloss.NewStyle().
		Foreground(mutedColor).
		Render("Establishing connection" + dots)

	status := spinner + " " + loadingText

	var errorMsg string
	if m.err != nil {
		status = ""
		errorMsg = errorStyle.Render("✗ Connection failed: "+m.err.Error()) +
			"\n" + mutedStyle.Render("Press ESC to quit")
	}

	mainContent := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		subtitle,
		"",
		status,
		errorMsg,
	)

	target := m.cfg.ServerURL
	if m.connMgr != nil {
		target = m.connMgr.ServerURL()
	}
	instructions := instructionStyle.Render(
		mutedStyle.Render("Connecting to ") + highlightStyle.Render(target) + "  •  " +
			mutedStyle.Render("ESC to quit"))

	centeredMain := lipgloss.Place(m.width, m.height-5, lipgloss.Center, lipgloss.Center, mainContent)
	bottomInstructions := lipgloss.Place(m.width, 3, lipgloss.Center, lipgloss.Bottom, instructions)

	return centeredMain + "\n" + bottomInstructions
}
