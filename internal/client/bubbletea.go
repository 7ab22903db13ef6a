package client

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/termchat/internal/client/ui"
	"github.com/yourusername/termchat/internal/config"
)

// RunTUI runs the Bubble Tea interface until the user quits
func RunTUI(cfg config.Config, log *slog.Logger) error {
	p := tea.NewProgram(ui.NewModel(cfg, log), tea.WithAltScreen())
	final, err := p.Run()

	// quitting from any screen closes the socket; this covers a killed program too
	if m, ok := final.(ui.Model); ok {
		m.Disconnect()
	}
	return err
}
