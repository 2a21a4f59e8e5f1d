// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures for biosynth: the research
// report returned by the analysis provider and the runtime configuration.
//
// JSON field names are the wire contract with the provider's response schema
// and must not change independently of internal/analyze/schema.go.
package types

// Report shape constants. The provider is instructed to honor them and
// internal/analyze validates every response against them.
const (
	PaperCount       = 10
	DatasetCount     = 5
	MinSummaryPoints = 4
	MaxSummaryPoints = 6
)

// DatasetSource identifies the repository a dataset was found in.
type DatasetSource string

const (
	SourceGEO       DatasetSource = "GEO"
	SourceSRA       DatasetSource = "SRA"
	SourceCellxGene DatasetSource = "CellxGene"
)

// DatasetSources lists the accepted DatasetSource values in display order.
var DatasetSources = []DatasetSource{SourceGEO, SourceSRA, SourceCellxGene}

// Valid reports whether s is one of the accepted sources.
func (s DatasetSource) Valid() bool {
	for _, v := range DatasetSources {
		if s == v {
			return true
		}
	}
	return false
}

// ResearchReport is the root output of one analysis.
type ResearchReport struct {
	// ExecutiveSummary holds 4-6 bullet points in display order.
	ExecutiveSummary []string `json:"executiveSummary" yaml:"executive_summary"`

	// TopPapers holds exactly PaperCount papers, strictly descending by citations.
	TopPapers []Paper `json:"topPapers" yaml:"top_papers"`

	// RelevantDatasets holds exactly DatasetCount datasets, most recent first.
	RelevantDatasets []Dataset `json:"relevantDatasets" yaml:"relevant_datasets"`
}

// Paper is one ranked publication with its consensus breakdown.
type Paper struct {
	Title string `json:"title" yaml:"title"`

	// Authors is an abbreviated author string (e.g. "Massagué J, et al.").
	Authors string `json:"authors" yaml:"authors"`

	Citations int `json:"citations" yaml:"citations"`

	// PubDate is provider-formatted; no particular layout is guaranteed.
	PubDate string `json:"pubDate" yaml:"pub_date"`

	Journal string `json:"journal" yaml:"journal"`
	Link    string `json:"link" yaml:"link"`

	// AgreementPercentage and DisagreementPercentage are each in [0, 100].
	// Their sum may be below 100; the remainder is the mixed share.
	AgreementPercentage    float64 `json:"agreementPercentage" yaml:"agreement_percentage"`
	DisagreementPercentage float64 `json:"disagreementPercentage" yaml:"disagreement_percentage"`

	KeyFinding          string              `json:"keyFinding" yaml:"key_finding"`
	ConsensusStatements ConsensusStatements `json:"consensusStatements" yaml:"consensus_statements"`
}

// ConsensusStatements are the narrative snippets behind each consensus share.
type ConsensusStatements struct {
	Agree    string `json:"agree" yaml:"agree"`
	Disagree string `json:"disagree" yaml:"disagree"`
	Mixed    string `json:"mixed" yaml:"mixed"`
}

// Dataset is one public dataset relevant to the hypothesis.
type Dataset struct {
	ID          string        `json:"id" yaml:"id"`
	Title       string        `json:"title" yaml:"title"`
	Source      DatasetSource `json:"source" yaml:"source"`
	Keywords    []string      `json:"keywords" yaml:"keywords"`
	Link        string        `json:"link" yaml:"link"`
	Description string        `json:"description" yaml:"description"`
	Organism    string        `json:"organism" yaml:"organism"`
	PubDate     string        `json:"pubDate" yaml:"pub_date"`
}
