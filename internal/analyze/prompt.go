// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pdiddy/biosynth/pkg/types"
)

// analysisPromptTmpl is the instruction sent to the provider for one
// hypothesis. Ordering and count requirements are repeated here because the
// response schema cannot express them; Validate enforces them on receipt.
var analysisPromptTmpl = template.Must(template.New("analysis").Parse(`Carry out a research analysis of the following hypothesis or question: "{{.Hypothesis}}".

Complete these tasks:

1. Literature survey: simulate a scan of the roughly 1000 most relevant papers on the hypothesis from PubMed, Nature, Science, and Cell.

2. Ranking: select the {{.PaperCount}} most influential papers from that corpus.
   IMPORTANT: order the list by citation count, highest first. No two papers may share the same position, so every citation count must be strictly lower than the one before it.

3. For each of the {{.PaperCount}} papers give:
   - title, abbreviated authors (e.g. "Smith J, et al."), citation count as a whole number, publication date, and journal
   - a direct link (URL) to the paper
   - a one-sentence key finding
   - consensus analysis: the percentage of papers in the surveyed corpus that agree with the key finding and the percentage that disagree; each between 0 and 100 and together at most 100 (the remainder is read as mixed or inconclusive)
   - three consensus statements:
     * agree: one line on what exactly the agreeing literature corroborates
     * disagree: one line on what exactly is refuted or contradicted
     * mixed: one line on why the question is still debated or inconclusive

4. Dataset discovery in {{.Sources}}:
   - derive targeted search keywords from the hypothesis
   - identify the {{.DatasetCount}} most relevant datasets
   IMPORTANT: order the datasets by publication date, most recent first. Every dataset must have a publication date in YYYY-MM-DD form.
   - for each dataset give: title, source database (exactly one of {{.Sources}}), accession ID, publication date, keywords, link, a short description, and organism

5. Executive summary: {{.MinSummary}} to {{.MaxSummary}} short, high-impact bullet points covering the core findings, the consensus trend, and what data is available.

Keep every figure (citation counts, agreement percentages, publication dates) realistic and grounded in the published literature. Respond only with the JSON object described by the response schema.
`))

type promptData struct {
	Hypothesis   string
	PaperCount   int
	DatasetCount int
	MinSummary   int
	MaxSummary   int
	Sources      string
}

// RenderPrompt executes the analysis prompt template for a hypothesis. The
// hypothesis is embedded verbatim.
func RenderPrompt(hypothesis string) (string, error) {
	sources := make([]string, len(types.DatasetSources))
	for i, src := range types.DatasetSources {
		sources[i] = string(src)
	}
	data := promptData{
		Hypothesis:   hypothesis,
		PaperCount:   types.PaperCount,
		DatasetCount: types.DatasetCount,
		MinSummary:   types.MinSummaryPoints,
		MaxSummary:   types.MaxSummaryPoints,
		Sources:      strings.Join(sources, ", "),
	}
	var buf bytes.Buffer
	if err := analysisPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
