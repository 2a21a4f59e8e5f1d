// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns a ResearchReport into Markdown for reading, YAML or
// JSON for export, and styled text for the terminal. Papers and datasets are
// rendered in the order they arrived; nothing here re-sorts.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/pdiddy/biosynth/pkg/types"
)

// highInfluenceRanks is how many leading papers carry the High Influence badge.
const highInfluenceRanks = 3

// keywordPreview is how many dataset keywords are listed before "+N more".
const keywordPreview = 3

// Split is a paper's consensus breakdown in percent.
type Split struct {
	Agree    float64
	Disagree float64
	Mixed    float64
}

// ConsensusSplit returns the agree, disagree, and derived mixed shares for
// p. Mixed is whatever agree and disagree leave of 100, never negative.
func ConsensusSplit(p types.Paper) Split {
	return Split{
		Agree:    p.AgreementPercentage,
		Disagree: p.DisagreementPercentage,
		Mixed:    max(0, 100-(p.AgreementPercentage+p.DisagreementPercentage)),
	}
}

// Markdown renders the report under a heading that is the hypothesis as
// submitted.
func Markdown(hypothesis string, r *types.ResearchReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", headingText(hypothesis))
	b.WriteString("_Synthesis report generated from PubMed literature and multi-omics databases._\n\n")
	if r == nil {
		return b.String()
	}

	b.WriteString("## Executive Summary\n\n")
	for _, point := range r.ExecutiveSummary {
		fmt.Fprintf(&b, "- %s\n", point)
	}
	b.WriteString("\n")

	b.WriteString("## Literature Dive\n\n")
	fmt.Fprintf(&b, "Top %d influential papers, sampled from %s+ publications and ranked by citations.\n\n",
		len(r.TopPapers), humanize.Comma(1000))
	for i, p := range r.TopPapers {
		writePaper(&b, i+1, p)
	}

	b.WriteString("## Data Repositories\n\n")
	b.WriteString("Relevant multi-omic datasets, most recent first.\n\n")
	for _, d := range r.RelevantDatasets {
		writeDataset(&b, d)
	}

	return b.String()
}

func writePaper(b *strings.Builder, rank int, p types.Paper) {
	fmt.Fprintf(b, "### Paper Rank #%d", rank)
	if rank <= highInfluenceRanks {
		b.WriteString(" · High Influence")
	}
	b.WriteString("\n\n")

	fmt.Fprintf(b, "**%s**\n\n", p.Title)
	fmt.Fprintf(b, "- Authors: %s\n", p.Authors)
	fmt.Fprintf(b, "- Journal: %s\n", p.Journal)
	fmt.Fprintf(b, "- Published: %s\n", p.PubDate)
	fmt.Fprintf(b, "- Citations: %s\n", humanize.Comma(int64(p.Citations)))
	fmt.Fprintf(b, "- Source: %s\n\n", p.Link)

	fmt.Fprintf(b, "> **Key Finding:** %s\n\n", p.KeyFinding)

	s := ConsensusSplit(p)
	fmt.Fprintf(b, "**Scientific Consensus:** %s%% agree, %s%% disagree, %s%% mixed\n\n",
		percent(s.Agree), percent(s.Disagree), percent(s.Mixed))
	fmt.Fprintf(b, "- Agree (%s%%): %s\n", percent(s.Agree), p.ConsensusStatements.Agree)
	fmt.Fprintf(b, "- Disagree (%s%%): %s\n", percent(s.Disagree), p.ConsensusStatements.Disagree)
	fmt.Fprintf(b, "- Mixed (%s%%): %s\n\n", percent(s.Mixed), p.ConsensusStatements.Mixed)
}

func writeDataset(b *strings.Builder, d types.Dataset) {
	fmt.Fprintf(b, "### %s\n\n", d.Title)
	fmt.Fprintf(b, "**%s • %s**\n\n", d.Source, d.ID)
	if d.Description != "" {
		fmt.Fprintf(b, "%s\n\n", d.Description)
	}
	fmt.Fprintf(b, "- Organism: %s\n", d.Organism)
	fmt.Fprintf(b, "- Published: %s\n", d.PubDate)
	if kw := KeywordSummary(d.Keywords); kw != "" {
		fmt.Fprintf(b, "- Keywords: %s\n", kw)
	}
	fmt.Fprintf(b, "- Link: %s\n\n", d.Link)
}

// KeywordSummary lists the first three keywords and counts the rest.
func KeywordSummary(keywords []string) string {
	if len(keywords) <= keywordPreview {
		return strings.Join(keywords, ", ")
	}
	return fmt.Sprintf("%s +%d more",
		strings.Join(keywords[:keywordPreview], ", "), len(keywords)-keywordPreview)
}

// headingText keeps a multi-line hypothesis on the heading line.
func headingText(hypothesis string) string {
	return strings.Join(strings.Split(strings.TrimSpace(hypothesis), "\n"), " ")
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
