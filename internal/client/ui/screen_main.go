package ui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/termchat/internal/client/chat"
)

// fixed heights of everything around the chat panel
const (
	headerHeight      = 1
	rosterTitleHeight = 1
	inputRowHeight    = 3
	statusBarHeight  = 1
	panelBorderWidth = 2
	panelPadding     = 2
)

// updateChat handles the chat screen
func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.Disconnect()
		return m, tea.Quit

	case tea.KeyEnter:
		remaining, err := chat.Submit(m.chatInput, m.sender)
		if err != nil {
			// not retried; the text is gone like on a closed socket
			m.log.Warn("message dropped", "error", err)
		}
		m.chatInput = remaining
		return m, nil

	case tea.KeyBackspace:
		if r := []rune(m.chatInput); len(r) > 0 {
			m.chatInput = string(r[:len(r)-1])
		}
		return m, nil

	case tea.KeySpace:
		m.chatInput += " "
		return m, nil

	case tea.KeyRunes:
		m.chatInput += string(msg.Runes)
		return m, nil

	case tea.KeyPgUp:
		m.scrollOffset = clampOffset(m.scrollOffset+m.chatHeight(), len(m.chatRows()), m.chatHeight())
		return m, nil

	case tea.KeyPgDown:
		m.scrollOffset = clampOffset(m.scrollOffset-m.chatHeight(), len(m.chatRows()), m.chatHeight())
		return m, nil

	case tea.KeyEnd:
		m.scrollOffset = 0
		return m, nil

	case tea.KeyUp:
		m.rosterOffset = clampOffset(m.rosterOffset-1, len(m.view.Roster()), m.rosterHeight())
		return m, nil

	case tea.KeyDown:
		m.rosterOffset = clampOffset(m.rosterOffset+1, len(m.view.Roster()), m.rosterHeight())
		return m, nil
	}

	return m, nil
}

// panelWidth is the text width inside a bordered, padded panel
func (m Model) panelWidth() int {
	return max(m.width-panelBorderWidth-panelPadding, 1)
}

// rosterHeight is the number of name rows in the roster panel: the whole roster,
// up to a third of the screen. Longer rosters scroll with the arrow keys.
func (m Model) rosterHeight() int {
	return min(max(len(m.view.Roster()), 1), max(m.height/3, 1))
}

func (m Model) rosterOverflows() bool {
	return len(m.view.Roster()) > m.rosterHeight()
}

// chatHeight is the number of message rows the chat panel shows
func (m Model) chatHeight() int {
	rosterBox := rosterTitleHeight + m.rosterHeight() + panelBorderWidth
	used := headerHeight + rosterBox + inputRowHeight + statusBarHeight + panelBorderWidth
	return max(m.height-used, 1)
}

func (m Model) chatRows() []string {
	return chatRows(m.view.Entries(), m.panelWidth())
}

// viewChat renders roster, chat log, input and status bar top to bottom
func (m Model) viewChat() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderRosterPanel(),
		m.renderChatPanel(),
		m.renderInputRow(),
		m.renderStatusBar(),
	)
}

func (m Model) renderHeader() string {
	name := m.cfg.Username
	if name == "" {
		name = "guest"
	}
	return lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Render(titleStyle.Render("CHAT") + mutedStyle.Render("as "+chat.Printable(name)))
}

// renderRosterPanel shows whoever the latest roster lists, scrolled to rosterOffset
func (m Model) renderRosterPanel() string {
	roster := m.view.Roster()
	height := m.rosterHeight()
	rows := rosterWindow(rosterRows(roster), height, m.rosterOffset)

	title := highlightStyle.Render("Online (" + strconv.Itoa(len(roster)) + ")")
	if m.rosterOverflows() {
		first := clampOffset(m.rosterOffset, len(roster), height) + 1
		title += mutedStyle.Render("  " + strconv.Itoa(first) + "-" + strconv.Itoa(first+len(rows)-1) + " ↑↓")
	}

	return rosterBoxStyle.
		Width(m.width - panelBorderWidth).
		Height(rosterTitleHeight + height).
		Render(title + "\n" + strings.Join(rows, "\n"))
}

// renderChatPanel shows the bottom of the log unless the user paged up
func (m Model) renderChatPanel() string {
	height := m.chatHeight()
	rows := visibleRows(m.chatRows(), height, m.scrollOffset)

	content := strings.Join(rows, "\n")
	if len(rows) == 0 {
		content = mutedStyle.Render("No messages yet.")
	}

	return chatBoxStyle.
		Width(m.width - panelBorderWidth).
		Height(height).
		Render(content)
}

// renderInputRow is the message field with the send button next to it
func (m Model) renderInputRow() string {
	button := buttonStyle.Render("Send")
	buttonWidth := lipgloss.Width(button)

	inputText := chat.Printable(m.chatInput) + cursorStyle.Render("▏")
	if m.chatInput == "" {
		inputText = cursorStyle.Render("▏") + mutedStyle.Render("Type a message...")
	}

	field := inputBoxStyle.
		Width(max(m.width-buttonWidth-panelBorderWidth-1, 1)).
		Render(inputText)

	button = lipgloss.NewStyle().
		Height(lipgloss.Height(field)).
		AlignVertical(lipgloss.Center).
		Render(button)

	return lipgloss.JoinHorizontal(lipgloss.Center, field, " ", button)
}

// renderStatusBar renders the bottom status bar
func (m Model) renderStatusBar() string {
	controls := "ENTER: Send  •  PGUP/PGDN: Scroll  •  ESC: Quit"
	if m.rosterOverflows() {
		controls = "↑/↓: Roster  •  " + controls
	}
	if m.scrollOffset > 0 {
		controls = "END: Back to latest  •  " + controls
	}
	return lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Render(mutedStyle.Render(controls))
}
