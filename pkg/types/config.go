// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Defaults applied by DefaultConfig and by components given zero values.
const (
	DefaultModel          = "gemini-3-pro-preview"
	DefaultTimeout        = 3 * time.Minute
	DefaultMinInterval    = 2 * time.Second
	DefaultStatusInterval = 4 * time.Second
	DefaultExportDir      = "reports"
	DefaultLogFile        = "biosynth.log"
)

// AIConfig holds settings for the analysis provider call.
type AIConfig struct {
	// Model is the provider model identifier (e.g. "gemini-3-pro-preview").
	Model string `json:"model" yaml:"model"`

	// APIKey is the provider credential. It is resolved once at startup and
	// passed explicitly to the provider constructor.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the provider endpoint. Empty uses the SDK default.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Grounding enables web-search grounding on the provider.
	Grounding bool `json:"grounding" yaml:"grounding"`

	// Timeout bounds a single analysis call (default 3m).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MinInterval is the minimum spacing between outbound provider calls
	// (default 2s). Zero disables pacing.
	MinInterval time.Duration `json:"min_interval" yaml:"min_interval"`
}

// ExportFormat selects the file format written by the export action.
type ExportFormat string

const (
	ExportMarkdown ExportFormat = "markdown"
	ExportYAML     ExportFormat = "yaml"
	ExportJSON     ExportFormat = "json"
)

// Extension returns the file extension for the format, without the dot.
func (f ExportFormat) Extension() string {
	switch f {
	case ExportYAML:
		return "yaml"
	case ExportJSON:
		return "json"
	default:
		return "md"
	}
}

// UIConfig holds settings for the interactive surface.
type UIConfig struct {
	// StatusInterval is how often the loading status message rotates (default 4s).
	StatusInterval time.Duration `json:"status_interval" yaml:"status_interval"`

	// ExportDir is where exported reports are written (default "reports").
	ExportDir string `json:"export_dir" yaml:"export_dir"`

	// ExportFormat is markdown, yaml, or json.
	ExportFormat ExportFormat `json:"export_format" yaml:"export_format"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// File is the log destination used when the terminal is owned by the UI
	// (default "biosynth.log"). Command-line runs log to stderr.
	File string `json:"file" yaml:"file"`

	// Development switches to the human-readable console encoder.
	Development bool `json:"development" yaml:"development"`
}

// Config groups all runtime configuration.
type Config struct {
	AI  AIConfig  `json:"ai" yaml:"ai"`
	UI  UIConfig  `json:"ui" yaml:"ui"`
	Log LogConfig `json:"log" yaml:"log"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		AI: AIConfig{
			Model:       DefaultModel,
			Grounding:   true,
			Timeout:     DefaultTimeout,
			MinInterval: DefaultMinInterval,
		},
		UI: UIConfig{
			StatusInterval: DefaultStatusInterval,
			ExportDir:      DefaultExportDir,
			ExportFormat:   ExportMarkdown,
		},
		Log: LogConfig{
			Level: "info",
			File:  DefaultLogFile,
		},
	}
}
