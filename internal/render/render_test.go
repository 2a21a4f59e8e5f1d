// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/biosynth/internal/fixture"
	"github.com/pdiddy/biosynth/pkg/types"
)

func TestConsensusSplit(t *testing.T) {
	tests := []struct {
		name            string
		agree, disagree float64
		wantMixed       float64
	}{
		{name: "remainder is mixed", agree: 70, disagree: 10, wantMixed: 20},
		{name: "full split", agree: 60, disagree: 40, wantMixed: 0},
		{name: "overflow clamps to zero", agree: 80, disagree: 30, wantMixed: 0},
		{name: "nothing reported", wantMixed: 100},
		{name: "fractional", agree: 33.5, disagree: 16.25, wantMixed: 50.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ConsensusSplit(types.Paper{AgreementPercentage: tt.agree, DisagreementPercentage: tt.disagree})
			assert.Equal(t, tt.agree, s.Agree)
			assert.Equal(t, tt.disagree, s.Disagree)
			assert.InDelta(t, tt.wantMixed, s.Mixed, 1e-9)
		})
	}
}

func TestMarkdownLayout(t *testing.T) {
	md := Markdown(fixture.Hypothesis, fixture.Report())

	assert.True(t, strings.HasPrefix(md, "# "+fixture.Hypothesis+"\n"), "heading is the hypothesis")
	for _, want := range []string{
		"## Executive Summary",
		"- TGF-beta is a central driver of EMT in lung adenocarcinoma.",
		"## Literature Dive",
		"### Paper Rank #1 · High Influence",
		"### Paper Rank #3 · High Influence",
		"### Paper Rank #10\n",
		"- Citations: 14,210",
		"**Scientific Consensus:** 70% agree, 10% disagree, 20% mixed",
		"- Mixed (20%): Context dependence on stage remains unresolved.",
		"> **Key Finding:** Finding 1:",
		"## Data Repositories",
		"**CellxGene • GSE200000**",
		"- Organism: Homo sapiens",
		"- Keywords: TGF-beta, lung cancer, metastasis +1 more",
	} {
		assert.Contains(t, md, want)
	}
	assert.NotContains(t, md, "### Paper Rank #4 · High Influence")
}

func TestMarkdownArrivalOrder(t *testing.T) {
	r := fixture.Report()
	md := Markdown("h", r)

	last := -1
	for _, p := range r.TopPapers {
		idx := strings.Index(md, "**"+p.Title+"**")
		require.GreaterOrEqual(t, idx, 0, p.Title)
		assert.Greater(t, idx, last, "papers appear in arrival order")
		last = idx
	}
	last = -1
	for _, d := range r.RelevantDatasets {
		idx := strings.Index(md, "### "+d.Title)
		require.GreaterOrEqual(t, idx, 0, d.Title)
		assert.Greater(t, idx, last, "datasets appear in arrival order")
		last = idx
	}
}

func TestMarkdownMultilineHypothesis(t *testing.T) {
	md := Markdown("line one\nline two", nil)
	assert.True(t, strings.HasPrefix(md, "# line one line two\n"))
	assert.NotContains(t, md, "## Executive Summary")
}

func TestKeywordSummary(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{}, ""},
		{[]string{"a"}, "a"},
		{[]string{"a", "b", "c"}, "a, b, c"},
		{[]string{"a", "b", "c", "d", "e"}, "a, b, c +2 more"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KeywordSummary(tt.in))
	}
}

func TestYAMLUsesSnakeCase(t *testing.T) {
	data, err := YAML(fixture.Report())
	require.NoError(t, err)

	assert.Contains(t, string(data), "executive_summary:")
	assert.Contains(t, string(data), "agreement_percentage:")

	var back types.ResearchReport
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, fixture.Report(), &back)
}

func TestJSONUsesWireNames(t *testing.T) {
	data, err := JSON(fixture.Report())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "executiveSummary")
	assert.Contains(t, raw, "topPapers")
	assert.Contains(t, raw, "relevantDatasets")
}

func TestEncodeUnknownFormat(t *testing.T) {
	_, err := Encode("pdf", "h", fixture.Report())
	assert.ErrorContains(t, err, `unknown export format "pdf"`)
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{fixture.Hypothesis, "tgf-beta-signaling-in-lung-cancer-metastasis"},
		{"  Does KRAS(G12C) drive EMT?  ", "does-kras-g12c-drive-emt"},
		{"?!", "report"},
		{"Ünïcode only ß", "n-code-only"},
		{strings.Repeat("a", 80), strings.Repeat("a", maxSlugLen)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.in), tt.in)
	}
}

func TestWriteExport(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	tests := []struct {
		format types.ExportFormat
		ext    string
		marker string
	}{
		{types.ExportMarkdown, "md", "# " + fixture.Hypothesis},
		{types.ExportYAML, "yaml", "top_papers:"},
		{types.ExportJSON, "json", `"topPapers"`},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "reports")
			path, err := WriteExport(dir, tt.format, fixture.Hypothesis, fixture.Report(), now)
			require.NoError(t, err)

			assert.Equal(t, filepath.Join(dir, "tgf-beta-signaling-in-lung-cancer-metastasis-20260304-050607."+tt.ext), path)
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.marker)
		})
	}
}

func TestWriteExportSameSecond(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	dir := t.TempDir()

	var paths []string
	for i := 0; i < 3; i++ {
		path, err := WriteExport(dir, types.ExportJSON, fixture.Hypothesis, fixture.Report(), now)
		require.NoError(t, err)
		paths = append(paths, path)
	}

	base := filepath.Join(dir, "tgf-beta-signaling-in-lung-cancer-metastasis-20260304-050607")
	assert.Equal(t, []string{base + ".json", base + "-2.json", base + "-3.json"}, paths)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "no export overwrites another")
}

func TestWriteExportNilReport(t *testing.T) {
	_, err := WriteExport(t.TempDir(), types.ExportMarkdown, "h", nil, time.Now())
	assert.Error(t, err)
}

func TestTerminal(t *testing.T) {
	out, err := Terminal("", 80)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = Terminal(Markdown(fixture.Hypothesis, fixture.Report()), 0)
	require.NoError(t, err)
	plain := ansi.Strip(out)
	assert.Contains(t, plain, "Executive Summary")
	assert.Contains(t, plain, "14,210")
}
