package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"subnet-calc/logger"
	"subnet-calc/models"
	"subnet-calc/tui"
)

var version = "dev" // overridden at build time via -ldflags

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := models.DefaultConfig

	rootCmd := &cobra.Command{
		Use:   "subnet-calc",
		Short: "Interactive IPv4 subnet calculator",
		Long: `Type an IPv4 address and subnet mask to see the network address, broadcast
address, subnet count and usable host count.

Keys: i edit IP, s edit subnet mask, Enter calculate, Backspace delete, q quit.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculator(cfg)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this file (disabled when empty)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.DurationVar(&cfg.RefreshInterval, "refresh", cfg.RefreshInterval, "Screen refresh interval")

	return rootCmd
}

// runCalculator wires logging and runs the TUI. The terminal belongs to the
// TUI, so logs only go to a file.
func runCalculator(cfg models.Config) (err error) {
	log := logger.Nop()
	if cfg.LoggingEnabled() {
		fileLog, closeLog, openErr := logger.OpenFile(cfg.LogFile, cfg.LogLevel)
		if openErr != nil {
			return fmt.Errorf("failed to open log file: %w", openErr)
		}
		defer func() { err = closeLogFile(err, closeLog) }()
		log = fileLog
	}

	if err := tui.Run(cfg, log.Logger); err != nil {
		log.Error().Err(err).Msg("calculator failed")
		return err
	}
	return nil
}

// closeLogFile runs closeFn and reports its failure unless err is already set.
func closeLogFile(err error, closeFn func() error) error {
	if cerr := closeFn(); cerr != nil && err == nil {
		return fmt.Errorf("failed to close log file: %w", cerr)
	}
	return err
}
