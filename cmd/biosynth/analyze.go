// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/biosynth/internal/app"
	"github.com/pdiddy/biosynth/internal/logging"
	"github.com/pdiddy/biosynth/internal/render"
	"github.com/pdiddy/biosynth/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <hypothesis>",
	Short: "Run one analysis and print the report",
	Long: `Analyze sends the hypothesis to the model with Google Search grounding,
validates the structured report it returns, and prints it as Markdown
(default), YAML, or JSON. Rotating status messages go to stderr while the
analysis runs; press Ctrl+C to cancel.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("format", "f", "", "output format: markdown, yaml, or json (default from ui.export_format)")
	analyzeCmd.Flags().StringP("output", "o", "", "write the report to this file instead of stdout")
	analyzeCmd.Flags().BoolP("quiet", "q", false, "suppress status messages")

	rootCmd.AddCommand(analyzeCmd)
}

// outputFormat returns the --format flag when set, otherwise fallback.
func outputFormat(cmd *cobra.Command, fallback types.ExportFormat) (types.ExportFormat, error) {
	format := fallback
	if f, _ := cmd.Flags().GetString("format"); strings.TrimSpace(f) != "" {
		format = parseFormat(f)
	}
	if err := validateFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd, cfg.UI.ExportFormat)
	if err != nil {
		return err
	}
	hypothesis, err := types.NormalizeHypothesis(strings.Join(args, " "))
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	analyzer, err := newAnalyzer(ctx, cfg.AI, logger)
	if err != nil {
		return err
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	snap, err := runSession(ctx, analyzer, hypothesis, cfg.UI, quiet, cmd.ErrOrStderr(), logger)
	if err != nil {
		return err
	}

	switch snap.State {
	case app.Result:
	case app.Error:
		return errors.New(snap.Err)
	default:
		return errors.New("analysis cancelled")
	}

	data, err := render.Encode(format, snap.Hypothesis, snap.Report)
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Report written to", out)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// runSession drives one analysis through a Session, printing status
// messages to status until it resolves. Cancelling ctx cancels the analysis.
func runSession(ctx context.Context, analyzer app.Analyzer, hypothesis string, ui types.UIConfig, quiet bool, status io.Writer, logger *zap.Logger) (app.Snapshot, error) {
	session := app.NewSession(analyzer, logger)
	defer session.Close()

	if err := session.Submit(ctx, hypothesis); err != nil {
		return app.Snapshot{}, err
	}

	tickCtx, stopTicker := context.WithCancel(ctx)
	tickerDone := make(chan struct{})
	go func() {
		defer close(tickerDone)
		if quiet {
			return
		}
		app.NewTicker(ui.StatusInterval).Run(tickCtx, func(msg string) {
			fmt.Fprintln(status, msg)
		})
	}()

	snap, err := session.Wait(ctx)
	stopTicker()
	<-tickerDone

	if err == nil && snap.State != app.Result {
		// An interrupt can surface as a failed analysis before Wait sees it.
		err = ctx.Err()
	}
	if err != nil {
		_ = session.Cancel()
		return session.Snapshot(), fmt.Errorf("analysis cancelled: %w", err)
	}
	return snap, nil
}
