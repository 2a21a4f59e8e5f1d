// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHypothesis(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "trims surrounding whitespace", in: "  TGF-beta in metastasis \n", want: "TGF-beta in metastasis"},
		{name: "keeps inner spacing", in: "a  b", want: "a  b"},
		{name: "empty", in: "", wantErr: true},
		{name: "whitespace only", in: " \t\n ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeHypothesis(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEmptyHypothesis)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDatasetSourceValid(t *testing.T) {
	for _, s := range DatasetSources {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, DatasetSource("ArrayExpress").Valid())
	assert.False(t, DatasetSource("geo").Valid())
	assert.False(t, DatasetSource("").Valid())
}

func TestExportFormatExtension(t *testing.T) {
	assert.Equal(t, "md", ExportMarkdown.Extension())
	assert.Equal(t, "yaml", ExportYAML.Extension())
	assert.Equal(t, "json", ExportJSON.Extension())
	assert.Equal(t, "md", ExportFormat("").Extension())
}

func TestPaperJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(Paper{Title: "x", ConsensusStatements: ConsensusStatements{Agree: "a"}})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{
		"title", "authors", "citations", "pubDate", "journal", "link",
		"agreementPercentage", "disagreementPercentage", "keyFinding", "consensusStatements",
	} {
		assert.Contains(t, raw, key)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultModel, cfg.AI.Model)
	assert.True(t, cfg.AI.Grounding)
	assert.Equal(t, DefaultTimeout, cfg.AI.Timeout)
	assert.Equal(t, DefaultStatusInterval, cfg.UI.StatusInterval)
	assert.Equal(t, ExportMarkdown, cfg.UI.ExportFormat)
	assert.Empty(t, cfg.AI.APIKey)
}
