// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/biosynth/internal/logging"
	"github.com/pdiddy/biosynth/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal UI",
	Long: `Tui opens the full-screen interface: enter a hypothesis, watch the
analysis progress, read the report, and export it with "p". Logs go to the
configured log file because the terminal belongs to the UI.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments %q; use \"biosynth analyze <hypothesis>\" to run a single analysis", args)
	}
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log, true)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	analyzer, err := newAnalyzer(ctx, cfg.AI, logger)
	if err != nil {
		return err
	}

	model := tui.New(ctx, tui.Config{
		Analyzer:       analyzer,
		StatusInterval: cfg.UI.StatusInterval,
		ExportDir:      cfg.UI.ExportDir,
		ExportFormat:   cfg.UI.ExportFormat,
		Logger:         logger,
	})

	logger.Info("starting terminal UI", zap.String("version", version), zap.String("model", cfg.AI.Model))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}
