// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/biosynth/pkg/types"
)

// maxSlugLen bounds the hypothesis-derived part of an export file name.
const maxSlugLen = 48

// maxExportSuffix bounds the numbered names tried when an export file
// already exists.
const maxExportSuffix = 100

// YAML encodes the report with snake_case keys.
func YAML(r *types.ResearchReport) ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	return data, nil
}

// JSON encodes the report with the provider's camelCase keys, indented.
func JSON(r *types.ResearchReport) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Encode renders the report in format. Markdown output carries the
// hypothesis heading; YAML and JSON carry the report alone.
func Encode(format types.ExportFormat, hypothesis string, r *types.ResearchReport) ([]byte, error) {
	switch format {
	case types.ExportMarkdown, "":
		return []byte(Markdown(hypothesis, r)), nil
	case types.ExportYAML:
		return YAML(r)
	case types.ExportJSON:
		return JSON(r)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// ExportPath returns <dir>/<slug>-<timestamp>.<ext> for a report on
// hypothesis written at now.
func ExportPath(dir string, format types.ExportFormat, hypothesis string, now time.Time) string {
	name := fmt.Sprintf("%s-%s.%s", Slug(hypothesis), now.Format("20060102-150405"), format.Extension())
	return filepath.Join(dir, name)
}

// WriteExport writes the report to a new file under dir and returns its
// path. dir is created if needed. An existing file is never overwritten: a
// second export in the same second gets a -2, -3, ... suffix.
func WriteExport(dir string, format types.ExportFormat, hypothesis string, r *types.ResearchReport, now time.Time) (string, error) {
	if r == nil {
		return "", fmt.Errorf("no report to export")
	}
	data, err := Encode(format, hypothesis, r)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	first := ExportPath(dir, format, hypothesis, now)
	ext := filepath.Ext(first)
	base := strings.TrimSuffix(first, ext)
	for n := 1; n <= maxExportSuffix; n++ {
		path := first
		if n > 1 {
			path = fmt.Sprintf("%s-%d%s", base, n, ext)
		}
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating export: %w", err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", fmt.Errorf("writing export: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("writing export: %w", err)
		}
		return path, nil
	}
	return "", fmt.Errorf("creating export: %s and %d numbered variants already exist", first, maxExportSuffix-1)
}

// Slug reduces a hypothesis to lowercase letters, digits, and single
// hyphens. An input with nothing usable yields "report".
func Slug(hypothesis string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(hypothesis) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			if b.Len() >= maxSlugLen {
				break
			}
			continue
		}
		pendingDash = true
	}
	if b.Len() == 0 {
		return "report"
	}
	return b.String()
}
