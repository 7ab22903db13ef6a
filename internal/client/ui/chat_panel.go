package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/yourusername/termchat/internal/client/chat"
)

// messageStyle picks the presentation for a category; behavior is the same for both
func messageStyle(c chat.Category) lipgloss.Style {
	if c == chat.CategorySystem {
		return systemMessageStyle
	}
	return userMessageStyle
}

// chatRows renders every entry as terminal rows, wrapped at width
func chatRows(entries []chat.Entry, width int) []string {
	if width < 1 {
		width = 1
	}
	return lo.FlatMap(entries, func(e chat.Entry, _ int) []string {
		rendered := messageStyle(e.Category).Width(width).Render(chat.Printable(e.Line()))
		return strings.Split(rendered, "\n")
	})
}

// clampOffset keeps a scroll offset inside [0, rows-height]
func clampOffset(offset, rows, height int) int {
	return lo.Clamp(offset, 0, max(rows-height, 0))
}

// visibleRows returns the height rows that end offset rows above the bottom
func visibleRows(rows []string, height, offset int) []string {
	if height < 1 {
		return nil
	}
	offset = clampOffset(offset, len(rows), height)
	end := len(rows) - offset
	start := max(end-height, 0)
	return rows[start:end]
}

// rosterRows renders every name in order, one per row
func rosterRows(roster []string) []string {
	if len(roster) == 0 {
		return []string{mutedStyle.Render("nobody online")}
	}
	return lo.Map(roster, func(name string, _ int) string {
		return clientStyle.Render(chat.Printable(name))
	})
}

// rosterWindow returns the height rows that start offset rows from the top
func rosterWindow(rows []string, height, offset int) []string {
	if height < 1 {
		return nil
	}
	offset = clampOffset(offset, len(rows), height)
	return rows[offset:min(offset+height, len(rows))]
}
