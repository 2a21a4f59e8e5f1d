// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/biosynth/pkg/types"
)

// DatePrecision is the finest unit a publication date was given in.
type DatePrecision int

const (
	PrecisionYear DatePrecision = iota
	PrecisionMonth
	PrecisionDay
)

// PubDate is a parsed publication date and the precision it was written with.
type PubDate struct {
	Time      time.Time
	Precision DatePrecision
}

// truncate drops everything finer than p.
func (d PubDate) truncate(p DatePrecision) time.Time {
	t := d.Time
	switch p {
	case PrecisionYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	case PrecisionMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

// After reports whether d is more recent than other when both are compared
// at the coarser of their two precisions. "2024-06-15" is not after "2024".
func (d PubDate) After(other PubDate) bool {
	p := min(d.Precision, other.Precision)
	return d.truncate(p).After(other.truncate(p))
}

// pubDateLayouts are the publication date formats accepted when checking
// dataset ordering. The provider is asked for YYYY-MM-DD but is not bound by it.
var pubDateLayouts = []struct {
	layout    string
	precision DatePrecision
}{
	{"2006-01-02", PrecisionDay},
	{time.RFC3339, PrecisionDay},
	{"2006/01/02", PrecisionDay},
	{"2006-01", PrecisionMonth},
	{"January 2, 2006", PrecisionDay},
	{"Jan 2, 2006", PrecisionDay},
	{"2 January 2006", PrecisionDay},
	{"2 Jan 2006", PrecisionDay},
	{"January 2006", PrecisionMonth},
	{"Jan 2006", PrecisionMonth},
	{"2006", PrecisionYear},
}

// ParsePubDate parses a provider-formatted publication date. Dates with
// month or year precision resolve to the first day of the period and carry
// that precision.
func ParsePubDate(s string) (PubDate, error) {
	s = strings.TrimSpace(s)
	for _, l := range pubDateLayouts {
		if t, err := time.Parse(l.layout, s); err == nil {
			return PubDate{Time: t, Precision: l.precision}, nil
		}
	}
	return PubDate{}, fmt.Errorf("unrecognized date %q", s)
}

// Validate checks a parsed report against the report contract and returns a
// *ValidationError listing every violation, or nil.
//
// Papers must be strictly descending by citations: equal neighbours are a
// violation. Datasets must be non-increasing by publication date: equal
// neighbours are accepted. Nothing is re-sorted.
func Validate(r *types.ResearchReport) error {
	if r == nil {
		return &ValidationError{Problems: []string{"report is empty"}}
	}

	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	// Executive summary.
	switch {
	case r.ExecutiveSummary == nil:
		add("executiveSummary: missing")
	case len(r.ExecutiveSummary) < types.MinSummaryPoints || len(r.ExecutiveSummary) > types.MaxSummaryPoints:
		add("executiveSummary: %d points, want %d-%d",
			len(r.ExecutiveSummary), types.MinSummaryPoints, types.MaxSummaryPoints)
	}
	for i, point := range r.ExecutiveSummary {
		if strings.TrimSpace(point) == "" {
			add("executiveSummary[%d]: empty", i)
		}
	}

	// Papers.
	if r.TopPapers == nil {
		add("topPapers: missing")
	} else if len(r.TopPapers) != types.PaperCount {
		add("topPapers: %d papers, want %d", len(r.TopPapers), types.PaperCount)
	}
	for i, p := range r.TopPapers {
		prefix := fmt.Sprintf("topPapers[%d]", i)
		requireText(add, prefix, map[string]string{
			"title":                        p.Title,
			"authors":                      p.Authors,
			"pubDate":                      p.PubDate,
			"journal":                      p.Journal,
			"link":                         p.Link,
			"keyFinding":                   p.KeyFinding,
			"consensusStatements.agree":    p.ConsensusStatements.Agree,
			"consensusStatements.disagree": p.ConsensusStatements.Disagree,
			"consensusStatements.mixed":    p.ConsensusStatements.Mixed,
		})
		if p.Citations < 0 {
			add("%s.citations: %d is negative", prefix, p.Citations)
		}
		if !inPercentRange(p.AgreementPercentage) {
			add("%s.agreementPercentage: %g outside 0-100", prefix, p.AgreementPercentage)
		}
		if !inPercentRange(p.DisagreementPercentage) {
			add("%s.disagreementPercentage: %g outside 0-100", prefix, p.DisagreementPercentage)
		}
		if sum := p.AgreementPercentage + p.DisagreementPercentage; sum > 100 {
			add("%s: agreement + disagreement = %g exceeds 100", prefix, sum)
		}
		if i > 0 && p.Citations >= r.TopPapers[i-1].Citations {
			add("%s.citations: %d does not fall below previous %d (papers must be strictly descending by citations)",
				prefix, p.Citations, r.TopPapers[i-1].Citations)
		}
	}

	// Datasets.
	if r.RelevantDatasets == nil {
		add("relevantDatasets: missing")
	} else if len(r.RelevantDatasets) != types.DatasetCount {
		add("relevantDatasets: %d datasets, want %d", len(r.RelevantDatasets), types.DatasetCount)
	}
	var prev PubDate
	prevOK := false
	for i, d := range r.RelevantDatasets {
		prefix := fmt.Sprintf("relevantDatasets[%d]", i)
		requireText(add, prefix, map[string]string{
			"id":          d.ID,
			"title":       d.Title,
			"link":        d.Link,
			"description": d.Description,
			"organism":    d.Organism,
		})
		if !d.Source.Valid() {
			add("%s.source: %q is not one of GEO, SRA, CellxGene", prefix, d.Source)
		}
		if d.Keywords == nil {
			add("%s.keywords: missing", prefix)
		}

		if strings.TrimSpace(d.PubDate) == "" {
			add("%s.pubDate: empty", prefix)
			prevOK = false
			continue
		}
		date, err := ParsePubDate(d.PubDate)
		if err != nil {
			add("%s.pubDate: %v", prefix, err)
			prevOK = false
			continue
		}
		if prevOK && date.After(prev) {
			add("%s.pubDate: %s is more recent than the previous dataset (datasets must be most recent first)",
				prefix, d.PubDate)
		}
		prev, prevOK = date, true
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// requireText reports every blank value in fields, in a stable order.
func requireText(add func(string, ...any), prefix string, fields map[string]string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.TrimSpace(fields[k]) == "" {
			add("%s.%s: empty", prefix, k)
		}
	}
}

func inPercentRange(v float64) bool {
	return v >= 0 && v <= 100
}
