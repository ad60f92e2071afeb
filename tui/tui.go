package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"subnet-calc/models"
)

// Run starts the calculator in the alternate screen and blocks until the
// user quits. bubbletea restores the terminal on every exit path, including
// errors and recovered panics, before Run returns.
func Run(cfg models.Config, log zerolog.Logger) error {
	_, err := run(NewModel(cfg, log), tea.WithAltScreen())
	return err
}

func run(m Model, opts ...tea.ProgramOption) (Model, error) {
	m.log.Info().Dur("refresh", m.refreshInterval).Msg("starting subnet calculator")

	p := tea.NewProgram(m, opts...)

	finalModel, err := p.Run()
	if err != nil {
		m.log.Error().Err(err).Msg("TUI terminated abnormally")
		return m, fmt.Errorf("error running TUI: %w", err)
	}

	final, ok := finalModel.(Model)
	if !ok {
		return m, fmt.Errorf("unexpected final model %T", finalModel)
	}

	event := final.log.Info()
	if final.result != nil {
		event = event.
			Stringer("network", final.result.Network).
			Uint64("host_count", final.result.HostCount)
	}
	event.Msg("subnet calculator exited")

	return final, nil
}
