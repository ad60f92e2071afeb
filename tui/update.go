package tui

import (
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"subnet-calc/subnet"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tea.KeyMsg:
		return m.handleKeyMessage(msg)
	case RefreshMsg:
		if m.quitting {
			return m, nil
		}
		return m, refreshCmd(m.refreshInterval)
	}

	return m, nil
}

// handleWindowSize handles window resize events
func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width - 4
	return m, nil
}

// handleKeyMessage splits a burst of typed runes into single keystrokes so
// that each one goes through the same priority rules. Pasted text is kept
// whole.
func (m Model) handleKeyMessage(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Pasted text is typed as-is, so q, i and s inside it are not shortcuts.
	if msg.Type != tea.KeyRunes || msg.Paste || len(msg.Runes) < 2 {
		return m.handleKey(msg)
	}

	for _, r := range msg.Runes {
		m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		if m.quitting {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.log.Info().Msg("quit requested")
		return m, tea.Quit
	case key.Matches(msg, m.keys.EditIP):
		m.setMode(ModeEditingIP)
	case key.Matches(msg, m.keys.EditSubnet):
		m.setMode(ModeEditingSubnet)
	case key.Matches(msg, m.keys.Calculate):
		_ = m.Recalculate()
		m.setMode(ModeIdle)
	case key.Matches(msg, m.keys.Delete):
		m.deleteLast()
	default:
		if text, ok := printableText(msg); ok {
			m.appendText(text)
		}
	}

	return m, nil
}

// Recalculate derives a new result from the current buffers. On failure the
// previous result is kept and the error is stored for display.
func (m *Model) Recalculate() error {
	res, err := subnet.Calculate(m.ipText, m.subnetText)
	if err != nil {
		m.calcErr = err
		m.log.Warn().Err(err).Msg("calculation rejected")
		return err
	}

	m.result = &res
	m.calcErr = nil
	m.log.Debug().
		Str("ip", m.ipText).
		Str("mask", m.subnetText).
		Stringer("network", res.Network).
		Stringer("broadcast", res.Broadcast).
		Uint64("subnet_count", res.SubnetCount).
		Uint64("host_count", res.HostCount).
		Msg("subnet calculated")
	return nil
}

func (m *Model) setMode(mode InputMode) {
	if m.mode != mode {
		m.log.Debug().Stringer("from", m.mode).Stringer("to", mode).Msg("input mode changed")
	}
	m.mode = mode
}

// activeBuffer returns the buffer selected by the current mode, or nil when idle.
func (m *Model) activeBuffer() *string {
	switch m.mode {
	case ModeEditingIP:
		return &m.ipText
	case ModeEditingSubnet:
		return &m.subnetText
	case ModeIdle:
		return nil
	}
	return nil
}

func (m *Model) appendText(text string) {
	if buf := m.activeBuffer(); buf != nil {
		*buf += text
	}
}

func (m *Model) deleteLast() {
	buf := m.activeBuffer()
	if buf == nil || len(*buf) == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(*buf)
	*buf = (*buf)[:len(*buf)-size]
}

// printableText returns the text a key press would type, if any.
func printableText(msg tea.KeyMsg) (string, bool) {
	if msg.Alt {
		return "", false
	}

	switch msg.Type {
	case tea.KeySpace:
		return " ", true
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return "", false
		}
		for _, r := range msg.Runes {
			if !unicode.IsPrint(r) {
				return "", false
			}
		}
		return string(msg.Runes), true
	}

	return "", false
}
