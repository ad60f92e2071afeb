package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RefreshMsg is sent periodically so the screen redraws without input
type RefreshMsg time.Time

// refreshCmd returns a command that sends a RefreshMsg after interval
func refreshCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return RefreshMsg(t)
	})
}
