package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"subnet-calc/models"
	"subnet-calc/subnet"
)

// InputMode selects which buffer receives typed characters
type InputMode int

const (
	ModeIdle InputMode = iota
	ModeEditingIP
	ModeEditingSubnet
)

func (im InputMode) String() string {
	switch im {
	case ModeEditingIP:
		return "editing-ip"
	case ModeEditingSubnet:
		return "editing-subnet"
	case ModeIdle:
		return "idle"
	}
	return "unknown"
}

// Model represents the main TUI model
type Model struct {
	width  int
	height int

	// Input buffers, append/pop only
	ipText     string
	subnetText string
	mode       InputMode

	// Last successful calculation; nil until the first one
	result *subnet.Result

	// Reason the last Enter was rejected
	calcErr error

	refreshInterval time.Duration
	quitting        bool

	// UI components
	keys      keyMap
	help      help.Model
	prefixBar progress.Model

	log zerolog.Logger
}

// NewModel creates a new TUI model
func NewModel(cfg models.Config, log zerolog.Logger) Model {
	interval := cfg.RefreshInterval
	if interval <= 0 {
		interval = models.DefaultConfig.RefreshInterval
	}

	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(prefixBarWidth),
		progress.WithoutPercentage(),
	)

	return Model{
		mode:            ModeIdle,
		refreshInterval: interval,
		keys:            newKeyMap(),
		help:            help.New(),
		prefixBar:       bar,
		log:             log,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return refreshCmd(m.refreshInterval)
}
