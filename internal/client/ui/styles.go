package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - the web page's light theme, with lighter variants for dark terminals
var (
	primaryColor = lipgloss.AdaptiveColor{Light: "#444444", Dark: "#E0E0E0"} // heading
	systemColor  = lipgloss.AdaptiveColor{Light: "#777777", Dark: "#9E9E9E"} // system lines
	userColor    = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F5F3ED"} // user lines
	clientColor  = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#7EBB81"} // roster names
	rosterTint   = lipgloss.AdaptiveColor{Light: "#E8F5E9", Dark: "#A8C9A4"} // roster panel border
	chatTint     = lipgloss.AdaptiveColor{Light: "#FCE4EC", Dark: "#E8A0B8"} // chat panel border
	borderColor  = lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#6B6B6B"} // idle input
	focusColor   = lipgloss.Color("#66AFE9")                                 // focused input
	buttonColor  = lipgloss.Color("#4CAF50")                                 // send button
	mutedColor   = lipgloss.AdaptiveColor{Light: "#777777", Dark: "#B8A890"}
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(0, 2).
			Align(lipgloss.Center)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(systemColor).
			Italic(true).
			Align(lipgloss.Center)

	rosterBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(rosterTint).
			Padding(0, 1)

	chatBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(chatTint).
			Padding(0, 1)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(focusColor).
			Padding(0, 1)

	nameInputStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(borderColor).
			Padding(0, 1).
			Width(30)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(buttonColor).
			Bold(true).
			Padding(0, 2)

	// .message.system
	systemMessageStyle = lipgloss.NewStyle().
				Foreground(systemColor).
				Italic(true)

	// .message.user
	userMessageStyle = lipgloss.NewStyle().
				Foreground(userColor)

	// .client
	clientStyle = lipgloss.NewStyle().
			Foreground(clientColor).
			Bold(true)

	highlightStyle = lipgloss.NewStyle().
			Foreground(clientColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	instructionStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true).
				Margin(1, 0)

	cursorStyle = lipgloss.NewStyle().
			Foreground(focusColor).
			Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(buttonColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E07B7B")).
			Bold(true)
)
