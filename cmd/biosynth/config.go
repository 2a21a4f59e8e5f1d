// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/biosynth/internal/analyze"
	"github.com/pdiddy/biosynth/internal/httputil"
	"github.com/pdiddy/biosynth/internal/logging"
	"github.com/pdiddy/biosynth/internal/secrets"
	"github.com/pdiddy/biosynth/pkg/types"
)

// Config keys. Nested keys map to BIOSYNTH_<SECTION>_<NAME> in the
// environment.
const (
	keyAPIKey         = "api_key"
	keyModel          = "model"
	keyGrounding      = "grounding"
	keyTimeout        = "timeout"
	keyMinInterval    = "min_interval"
	keyBaseURL        = "base_url"
	keyStatusInterval = "ui.status_interval"
	keyExportDir      = "ui.export_dir"
	keyExportFormat   = "ui.export_format"
	keyLogLevel       = "log.level"
	keyLogFile        = "log.file"
	keyLogDevelopment = "log.development"
)

func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag.Name, err))
	}
}

func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault(keyModel, d.AI.Model)
	v.SetDefault(keyGrounding, d.AI.Grounding)
	v.SetDefault(keyTimeout, d.AI.Timeout)
	v.SetDefault(keyMinInterval, d.AI.MinInterval)
	v.SetDefault(keyStatusInterval, d.UI.StatusInterval)
	v.SetDefault(keyExportDir, d.UI.ExportDir)
	v.SetDefault(keyExportFormat, string(d.UI.ExportFormat))
	v.SetDefault(keyLogLevel, d.Log.Level)
	v.SetDefault(keyLogFile, d.Log.File)
	v.SetDefault(keyLogDevelopment, d.Log.Development)
}

// loadConfig reads the configuration from v. The API key is taken as
// configured; resolveAPIKey fills it from the environment and key files.
func loadConfig(v *viper.Viper) (types.Config, error) {
	cfg := types.Config{
		AI: types.AIConfig{
			Model:       strings.TrimSpace(v.GetString(keyModel)),
			APIKey:      strings.TrimSpace(v.GetString(keyAPIKey)),
			BaseURL:     strings.TrimSpace(v.GetString(keyBaseURL)),
			Grounding:   v.GetBool(keyGrounding),
			Timeout:     v.GetDuration(keyTimeout),
			MinInterval: v.GetDuration(keyMinInterval),
		},
		UI: types.UIConfig{
			StatusInterval: v.GetDuration(keyStatusInterval),
			ExportDir:      v.GetString(keyExportDir),
			ExportFormat:   parseFormat(v.GetString(keyExportFormat)),
		},
		Log: types.LogConfig{
			Level:       v.GetString(keyLogLevel),
			File:        v.GetString(keyLogFile),
			Development: v.GetBool(keyLogDevelopment),
		},
	}

	if cfg.AI.Timeout < 0 {
		return cfg, fmt.Errorf("%s must not be negative", keyTimeout)
	}
	if cfg.AI.MinInterval < 0 {
		return cfg, fmt.Errorf("%s must not be negative", keyMinInterval)
	}
	if err := validateFormat(cfg.UI.ExportFormat); err != nil {
		return cfg, fmt.Errorf("%s: %w", keyExportFormat, err)
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// parseFormat normalizes a user-supplied format name.
func parseFormat(s string) types.ExportFormat {
	return types.ExportFormat(strings.ToLower(strings.TrimSpace(s)))
}

func validateFormat(f types.ExportFormat) error {
	switch f {
	case types.ExportMarkdown, types.ExportYAML, types.ExportJSON:
		return nil
	default:
		return fmt.Errorf("unknown format %q: want markdown, yaml, or json", f)
	}
}

// commandConfig loads the configuration and applies flags that have no
// config key.
func commandConfig(cmd *cobra.Command) (types.Config, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return cfg, err
	}
	if off, _ := cmd.Flags().GetBool("no-grounding"); off {
		cfg.AI.Grounding = false
	}
	return cfg, nil
}

// newAnalyzer resolves the credential and builds the Gemini-backed
// analyzer.
func newAnalyzer(ctx context.Context, cfg types.AIConfig, logger *zap.Logger) (*analyze.Analyzer, error) {
	key, source, err := secrets.Resolver{Logger: logger}.APIKey(cfg.APIKey)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, fmt.Errorf("%w: set --api-key, GEMINI_API_KEY, or .secrets/%s", analyze.ErrMissingAPIKey, secrets.GeminiKeyFile)
	}
	logger.Debug("credential resolved", zap.String("source", source))
	cfg.APIKey = key

	provider, err := analyze.NewGeminiProvider(ctx, cfg, httputil.NewClient(logger))
	if err != nil {
		return nil, err
	}
	return analyze.New(provider, cfg, logger), nil
}
