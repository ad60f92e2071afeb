package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subnet-calc/models"
	"subnet-calc/subnet"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func newTestModel() Model {
	return NewModel(models.DefaultConfig, zerolog.Nop())
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// press sends each key in turn. Multi-character strings arrive as one
// burst of runes, the way a fast typist's input is delivered.
func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m, _ = update(m, keyMsg(k))
	}
	return m
}

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestInitialState(t *testing.T) {
	m := newTestModel()

	assert.Equal(t, ModeIdle, m.mode)
	assert.Empty(t, m.ipText)
	assert.Empty(t, m.subnetText)
	assert.Nil(t, m.result)
	assert.NotNil(t, m.Init())

	view := m.View()
	assert.Contains(t, view, "Press 'i' to Input IP, 's' for Subnet")
	assert.Contains(t, view, "Subnet Calculation")
	assert.Contains(t, view, "Network Address: 0.0.0.0")
	assert.Contains(t, view, "Broadcast Address: 0.0.0.0")
	assert.Contains(t, view, "Subnet Count: 0")
	assert.Contains(t, view, "Host Count: 0")
}

func TestCalculateScenario(t *testing.T) {
	m := press(newTestModel(), "i", "192.168.1.10", "s", "255.255.255.0")
	assert.Equal(t, ModeEditingSubnet, m.mode)
	assert.Contains(t, m.View(), "Enter Subnet Mask:")

	m = press(m, "enter")

	assert.Equal(t, ModeIdle, m.mode)
	require.NotNil(t, m.result)
	assert.Equal(t, "192.168.1.0", m.result.Network.String())
	assert.Equal(t, "192.168.1.255", m.result.Broadcast.String())
	assert.Equal(t, uint64(256), m.result.SubnetCount)
	assert.Equal(t, uint64(254), m.result.HostCount)
	assert.NoError(t, m.calcErr)

	view := m.View()
	assert.Contains(t, view, "IP: 192.168.1.10")
	assert.Contains(t, view, "Subnet: 255.255.255.0")
	assert.Contains(t, view, "Network Address: 192.168.1.0")
	assert.Contains(t, view, "Broadcast Address: 192.168.1.255")
	assert.Contains(t, view, "Subnet Count: 256")
	assert.Contains(t, view, "Host Count: 254")
	assert.Contains(t, view, "192.168.1.0/24")
	assert.Contains(t, view, "192.168.1.1 - 192.168.1.254")
}

func TestMalformedInputKeepsNoResult(t *testing.T) {
	m := press(newTestModel(), "i", "192.168.1", "s", "255.255.255.0", "enter")

	assert.Equal(t, ModeIdle, m.mode)
	assert.Nil(t, m.result)

	var pe *subnet.ParseError
	require.True(t, errors.As(m.calcErr, &pe))
	assert.Equal(t, "IP", pe.Field)

	view := m.View()
	assert.Contains(t, view, "Network Address: 0.0.0.0")
	assert.Contains(t, view, "⚠ invalid IP")
}

func TestMalformedInputKeepsPreviousResult(t *testing.T) {
	m := press(newTestModel(), "i", "10.0.0.5", "s", "255.0.0.0", "enter")
	require.NotNil(t, m.result)
	before := *m.result

	m = press(m, "i", "backspace", "backspace", "enter")
	assert.Equal(t, "10.0.0", m.ipText)
	assert.Error(t, m.calcErr)
	require.NotNil(t, m.result)
	assert.Equal(t, before, *m.result)

	m = press(m, "i", ".7", "enter")
	assert.NoError(t, m.calcErr)
	assert.NotContains(t, m.View(), "⚠")
}

func TestEnterIsIdempotent(t *testing.T) {
	m := press(newTestModel(), "i", "172.16.5.4", "s", "255.255.240.0", "enter")
	require.NotNil(t, m.result)
	first := *m.result

	m = press(m, "enter")
	require.NotNil(t, m.result)
	assert.Equal(t, first, *m.result)
}

func TestModeSwitchKeepsText(t *testing.T) {
	m := press(newTestModel(), "i", "1.2", "s", "255", "i")

	assert.Equal(t, ModeEditingIP, m.mode)
	assert.Equal(t, "1.2", m.ipText)
	assert.Equal(t, "255", m.subnetText)
	assert.Contains(t, m.View(), "Enter IP Address:")
}

func TestIdleIgnoresTyping(t *testing.T) {
	m := press(newTestModel(), "1", "space", "backspace")
	assert.Empty(t, m.ipText)
	assert.Empty(t, m.subnetText)

	m = press(m, "i", "1.2.3.4", "enter", "9", "backspace")
	assert.Equal(t, "1.2.3.4", m.ipText)
}

func TestBackspace(t *testing.T) {
	m := press(newTestModel(), "s", "backspace")
	assert.Empty(t, m.subnetText)

	m = press(m, "255.é", "backspace", "backspace")
	assert.Equal(t, "255", m.subnetText)
	assert.Empty(t, m.ipText)
}

func TestSpaceIsTyped(t *testing.T) {
	m := press(newTestModel(), "i", "1", "space", "2")
	assert.Equal(t, "1 2", m.ipText)
}

func TestPasteIsAppendedWhole(t *testing.T) {
	m := press(newTestModel(), "s")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("255.255.0.0"), Paste: true})
	assert.Equal(t, "255.255.0.0", m.subnetText)
}

func TestPasteDoesNotTriggerKeys(t *testing.T) {
	m := press(newTestModel(), "i")
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("10.0.0.1 qis"), Paste: true})

	assert.False(t, isQuit(t, cmd))
	assert.False(t, m.quitting)
	assert.Equal(t, ModeEditingIP, m.mode)
	assert.Equal(t, "10.0.0.1 qis", m.ipText)
	assert.Empty(t, m.subnetText)
}

func TestAltKeysAreIgnored(t *testing.T) {
	m := press(newTestModel(), "i")
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true})
	assert.Nil(t, cmd)
	assert.Empty(t, m.ipText)
}

func TestQuit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		m := press(newTestModel(), "i")
		m, cmd := update(m, keyMsg(k))
		assert.True(t, isQuit(t, cmd), k)
		assert.True(t, m.quitting)
		assert.Empty(t, m.View())
	}
}

func TestQuitInsideBurst(t *testing.T) {
	m := press(newTestModel(), "i")
	m, cmd := update(m, keyMsg("1q2"))

	assert.True(t, isQuit(t, cmd))
	assert.Equal(t, "1", m.ipText)
}

func TestRefreshReschedules(t *testing.T) {
	m := newTestModel()

	_, cmd := update(m, RefreshMsg(time.Now()))
	assert.NotNil(t, cmd)

	m.quitting = true
	_, cmd = update(m, RefreshMsg(time.Now()))
	assert.Nil(t, cmd)
}

func TestRefreshIntervalFromConfig(t *testing.T) {
	m := NewModel(models.Config{RefreshInterval: 250 * time.Millisecond}, zerolog.Nop())
	assert.Equal(t, 250*time.Millisecond, m.refreshInterval)

	m = NewModel(models.Config{}, zerolog.Nop())
	assert.Equal(t, models.DefaultConfig.RefreshInterval, m.refreshInterval)
}

func TestWindowResize(t *testing.T) {
	m, _ := update(newTestModel(), tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Equal(t, 100, m.width)
	assert.Equal(t, 40, m.height)
	assert.Equal(t, 40, lipgloss.Height(m.View()))
}

func TestLongBufferStaysInsideTerminal(t *testing.T) {
	m, _ := update(newTestModel(), tea.WindowSizeMsg{Width: 60, Height: 24})
	m = press(m, "i", strings.Repeat("1", 200))

	view := m.View()
	assert.Equal(t, 24, lipgloss.Height(view))
	assert.Equal(t, 60, lipgloss.Width(view))
	assert.Contains(t, view, "Enter IP Address:")
	assert.Contains(t, view, "…"+strings.Repeat("1", 50)+cursor)
	assert.Len(t, m.ipText, 200)
}

func TestLongErrorStaysInsideTerminal(t *testing.T) {
	m, _ := update(newTestModel(), tea.WindowSizeMsg{Width: 40, Height: 24})
	m = press(m, "i", strings.Repeat("9", 120), "enter")
	require.Error(t, m.calcErr)

	view := m.View()
	assert.Equal(t, 24, lipgloss.Height(view))
	assert.Equal(t, 40, lipgloss.Width(view))
	assert.Contains(t, view, "Press 'i' to Input IP")
}

func TestShortTerminalKeepsTitle(t *testing.T) {
	for h := 1; h <= 16; h++ {
		m, _ := update(newTestModel(), tea.WindowSizeMsg{Width: 60, Height: h})

		view := m.View()
		assert.Equal(t, h, lipgloss.Height(view), "height %d", h)
		assert.LessOrEqual(t, lipgloss.Width(view), 60, "height %d", h)
		assert.Contains(t, view, "Press 'i' to Input IP, 's' for Subnet", "height %d", h)
	}
}

func TestNarrowTerminal(t *testing.T) {
	m, _ := update(newTestModel(), tea.WindowSizeMsg{Width: 30, Height: 24})
	m = press(m, "i", "192.168.100.200", "s", "255.255.255.0", "enter")

	view := m.View()
	assert.Equal(t, 30, lipgloss.Width(view))
	assert.Equal(t, 24, lipgloss.Height(view))
	assert.Contains(t, view, "Press 'i'")
}

func TestPanelHeights(t *testing.T) {
	for _, tc := range []struct {
		height                 int
		input, result, details int
	}{
		{40, 12, 12, 16},
		{24, 7, 7, 10},
		{14, 5, 9, 0},
		{10, 5, 5, 0},
		{4, 4, 0, 0},
	} {
		input, result, details := panelHeights(tc.height)
		assert.Equal(t, tc.input, input, "height %d", tc.height)
		assert.Equal(t, tc.result, result, "height %d", tc.height)
		assert.Equal(t, tc.details, details, "height %d", tc.height)
	}
}

func TestSlash31AndNonContiguous(t *testing.T) {
	m := press(newTestModel(), "i", "10.0.0.1", "s", "255.255.255.254", "enter")
	require.NotNil(t, m.result)
	assert.Equal(t, uint64(0), m.result.HostCount)
	assert.Contains(t, m.View(), "Usable Range: none")

	m = press(m, "s", "backspace", "backspace", "backspace", "0", "enter")
	require.NotNil(t, m.result)
	assert.Equal(t, "255.255.255.0", m.subnetText)

	m = press(newTestModel(), "i", "10.1.2.3", "s", "255.0.255.0", "enter")
	require.NotNil(t, m.result)
	assert.Contains(t, m.View(), "Mask is not contiguous")
}

func TestRunHeadless(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	in := strings.NewReader("i192.168.1.10\rs255.255.255.0\rq")
	var out bytes.Buffer

	final, err := run(newTestModel(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(&out),
		tea.WithoutSignalHandler(),
	)
	require.NoError(t, err)

	assert.True(t, final.quitting)
	require.NotNil(t, final.result)
	assert.Equal(t, "192.168.1.0", final.result.Network.String())
	assert.Equal(t, uint64(254), final.result.HostCount)
}
