// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fixture provides a well-formed sample report for tests across
// packages.
package fixture

import (
	"encoding/json"
	"fmt"

	"github.com/pdiddy/biosynth/pkg/types"
)

// Hypothesis is the hypothesis the sample report answers.
const Hypothesis = "TGF-beta signaling in lung cancer metastasis"

// Report returns a fresh report that passes validation: 5 summary points,
// 10 papers strictly descending by citations, 5 datasets most recent first.
func Report() *types.ResearchReport {
	citations := []int{14210, 9875, 7302, 5120, 4388, 3017, 2450, 1999, 1204, 860}
	journals := []string{"Cell", "Nature", "Cancer Cell", "Science", "Nat Rev Cancer",
		"Cancer Res", "Oncogene", "J Clin Invest", "Nat Cell Biol", "Mol Cancer"}

	papers := make([]types.Paper, len(citations))
	for i, c := range citations {
		papers[i] = types.Paper{
			Title:                  fmt.Sprintf("TGF-beta drives metastatic step %d in lung adenocarcinoma", i+1),
			Authors:                fmt.Sprintf("Author%c X, et al.", 'A'+i),
			Citations:              c,
			PubDate:                fmt.Sprintf("%d-0%d-15", 2019-i, 1+i%9),
			Journal:                journals[i],
			Link:                   fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%d/", 30000000+i),
			AgreementPercentage:    float64(70 - i*3),
			DisagreementPercentage: float64(10 + i),
			KeyFinding:             fmt.Sprintf("Finding %d: TGF-beta induces EMT in tumour cells.", i+1),
			ConsensusStatements: types.ConsensusStatements{
				Agree:    "EMT induction by TGF-beta is reproduced across cell lines.",
				Disagree: "Some in vivo models show tumour-suppressive effects.",
				Mixed:    "Context dependence on stage remains unresolved.",
			},
		}
	}

	dates := []string{"2024-03-01", "2023-05-01", "2023-05-01", "2021-11-20", "2019-02-07"}
	sources := []types.DatasetSource{types.SourceCellxGene, types.SourceGEO, types.SourceSRA, types.SourceGEO, types.SourceSRA}
	datasets := make([]types.Dataset, len(dates))
	for i, d := range dates {
		datasets[i] = types.Dataset{
			ID:          fmt.Sprintf("GSE%d", 200000-i*1000),
			Title:       fmt.Sprintf("Single-cell atlas of lung metastasis %d", i+1),
			Source:      sources[i],
			Keywords:    []string{"TGF-beta", "lung cancer", "metastasis", "EMT"}[:1+i%4],
			Link:        fmt.Sprintf("https://www.ncbi.nlm.nih.gov/geo/query/acc.cgi?acc=GSE%d", 200000-i*1000),
			Description: "Expression profiles of primary and metastatic lung tumours.",
			Organism:    "Homo sapiens",
			PubDate:     d,
		}
	}

	return &types.ResearchReport{
		ExecutiveSummary: []string{
			"TGF-beta is a central driver of EMT in lung adenocarcinoma.",
			"Consensus favours a pro-metastatic role in late-stage disease.",
			"Early-stage tumour suppression remains debated.",
			"Public single-cell datasets cover primary and metastatic sites.",
			"SMAD4 status modulates the response to TGF-beta inhibition.",
		},
		TopPapers:        papers,
		RelevantDatasets: datasets,
	}
}

// ReportJSON returns Report encoded the way the provider returns it.
func ReportJSON() string {
	data, err := json.Marshal(Report())
	if err != nil {
		panic(err)
	}
	return string(data)
}
