// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"google.golang.org/genai"

	"github.com/pdiddy/biosynth/pkg/types"
)

// ReportSchema returns the response schema declared to the provider. Every
// field is required and none is nullable. Field names match the json tags in
// pkg/types/report.go.
//
// The provider treats the schema as guidance for the model. Counts are
// declared with minItems/maxItems but orderings can only be requested in the
// prompt, so Validate re-checks everything on receipt.
func ReportSchema() *genai.Schema {
	paperFields := []string{
		"title", "authors", "citations", "pubDate", "journal", "link",
		"agreementPercentage", "disagreementPercentage", "keyFinding", "consensusStatements",
	}
	datasetFields := []string{
		"id", "title", "source", "pubDate", "keywords", "link", "description", "organism",
	}

	sources := make([]string, len(types.DatasetSources))
	for i, s := range types.DatasetSources {
		sources[i] = string(s)
	}

	consensus := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"agree":    str("What exactly the agreeing literature corroborates."),
			"disagree": str("What exactly is refuted or contradicted."),
			"mixed":    str("Why the finding is still debated or inconclusive."),
		},
		Required:         []string{"agree", "disagree", "mixed"},
		PropertyOrdering: []string{"agree", "disagree", "mixed"},
	}

	paper := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":                  str(""),
			"authors":                str("Abbreviated author list."),
			"citations":              &genai.Schema{Type: genai.TypeInteger, Minimum: ptr(0.0)},
			"pubDate":                str(""),
			"journal":                str(""),
			"link":                   str("Direct URL to the paper."),
			"agreementPercentage":    percent(),
			"disagreementPercentage": percent(),
			"keyFinding":             str(""),
			"consensusStatements":    consensus,
		},
		Required:         paperFields,
		PropertyOrdering: paperFields,
	}

	dataset := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":          str("Accession identifier."),
			"title":       str(""),
			"source":      &genai.Schema{Type: genai.TypeString, Enum: sources},
			"pubDate":     str("Publication date, YYYY-MM-DD."),
			"keywords":    &genai.Schema{Type: genai.TypeArray, Items: str("")},
			"link":        str(""),
			"description": str(""),
			"organism":    str(""),
		},
		Required:         datasetFields,
		PropertyOrdering: datasetFields,
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"executiveSummary": {
				Type:        genai.TypeArray,
				Items:       str(""),
				Description: "Bullet points synthesizing the research landscape.",
				MinItems:    ptr(int64(types.MinSummaryPoints)),
				MaxItems:    ptr(int64(types.MaxSummaryPoints)),
			},
			"topPapers": {
				Type:        genai.TypeArray,
				Items:       paper,
				Description: "Most influential papers, citations descending.",
				MinItems:    ptr(int64(types.PaperCount)),
				MaxItems:    ptr(int64(types.PaperCount)),
			},
			"relevantDatasets": {
				Type:        genai.TypeArray,
				Items:       dataset,
				Description: "Relevant datasets, most recent first.",
				MinItems:    ptr(int64(types.DatasetCount)),
				MaxItems:    ptr(int64(types.DatasetCount)),
			},
		},
		Required:         []string{"executiveSummary", "topPapers", "relevantDatasets"},
		PropertyOrdering: []string{"executiveSummary", "topPapers", "relevantDatasets"},
	}
}

func str(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

func percent() *genai.Schema {
	return &genai.Schema{Type: genai.TypeNumber, Minimum: ptr(0.0), Maximum: ptr(100.0)}
}

func ptr[T any](v T) *T { return &v }
