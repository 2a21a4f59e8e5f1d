// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/biosynth/internal/fixture"
	"github.com/pdiddy/biosynth/pkg/types"
)

// --- fake provider ---

type fakeProvider struct {
	resp  Response
	err   error
	block bool // wait for ctx to end before returning
	calls int
	last  Request
}

func (f *fakeProvider) Generate(ctx context.Context, req Request) (Response, error) {
	f.calls++
	f.last = req
	if f.block {
		<-ctx.Done()
		return Response{}, ctx.Err()
	}
	return f.resp, f.err
}

func testConfig() types.AIConfig {
	return types.AIConfig{Model: "test-model", Grounding: true, Timeout: time.Second}
}

func TestAnalyzeSuccess(t *testing.T) {
	fp := &fakeProvider{resp: Response{
		Text:    fixture.ReportJSON(),
		Sources: []Source{{Title: "PubMed", URI: "https://pubmed.ncbi.nlm.nih.gov/"}},
		Queries: []string{"TGF-beta lung metastasis"},
	}}
	a := New(fp, testConfig(), nil)

	got, err := a.Analyze(context.Background(), "  "+fixture.Hypothesis+"  ")
	require.NoError(t, err)

	if diff := cmp.Diff(fixture.Report(), got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 1, fp.calls)
	assert.Equal(t, "test-model", fp.last.Model)
	assert.True(t, fp.last.Grounding)
	assert.NotNil(t, fp.last.Schema)
	assert.Contains(t, fp.last.Prompt, `"`+fixture.Hypothesis+`"`, "hypothesis should be trimmed and embedded verbatim")
}

func TestAnalyzeRoundTripPreservesFields(t *testing.T) {
	fp := &fakeProvider{resp: Response{Text: fixture.ReportJSON()}}
	got, err := New(fp, testConfig(), nil).Analyze(context.Background(), fixture.Hypothesis)
	require.NoError(t, err)

	want := fixture.Report()
	first := got.TopPapers[0]
	assert.Equal(t, want.TopPapers[0].Title, first.Title)
	assert.Equal(t, 14210, first.Citations)
	assert.Equal(t, 70.0, first.AgreementPercentage)
	assert.Equal(t, want.TopPapers[0].ConsensusStatements, first.ConsensusStatements)
	assert.Equal(t, types.SourceCellxGene, got.RelevantDatasets[0].Source)
	assert.Equal(t, want.RelevantDatasets[3].Keywords, got.RelevantDatasets[3].Keywords)
}

func TestAnalyzeEmptyHypothesis(t *testing.T) {
	fp := &fakeProvider{}
	_, err := New(fp, testConfig(), nil).Analyze(context.Background(), " \t ")
	assert.ErrorIs(t, err, types.ErrEmptyHypothesis)
	assert.Zero(t, fp.calls, "provider must not be called for blank input")
}

func TestAnalyzeProviderErrors(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
		wantOp   string
		wantIs   error
		wantMsg  string
	}{
		{
			name:     "call fails",
			provider: &fakeProvider{err: errors.New("503 service unavailable")},
			wantOp:   OpGenerate,
			wantMsg:  "503 service unavailable",
		},
		{
			name:     "empty text",
			provider: &fakeProvider{resp: Response{Text: ""}},
			wantOp:   OpRead,
			wantIs:   ErrEmptyResponse,
			wantMsg:  "empty response",
		},
		{
			name:     "whitespace text",
			provider: &fakeProvider{resp: Response{Text: "  \n "}},
			wantOp:   OpRead,
			wantIs:   ErrEmptyResponse,
		},
		{
			name:     "not json",
			provider: &fakeProvider{resp: Response{Text: "{not json"}},
			wantOp:   OpParse,
			wantIs:   ErrMalformedResponse,
			wantMsg:  "malformed response",
		},
		{
			name:     "json array instead of object",
			provider: &fakeProvider{resp: Response{Text: "[1, 2, 3]"}},
			wantOp:   OpParse,
			wantIs:   ErrMalformedResponse,
		},
		{
			name:     "wrong field type",
			provider: &fakeProvider{resp: Response{Text: `{"executiveSummary": "one string"}`}},
			wantOp:   OpParse,
			wantIs:   ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.provider, testConfig(), nil).Analyze(context.Background(), fixture.Hypothesis)
			require.Error(t, err)

			var perr *ProviderError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.wantOp, perr.Op)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
			assert.Equal(t, 1, tt.provider.calls, "no retries")
		})
	}
}

func TestAnalyzeCodeFencedPayload(t *testing.T) {
	fp := &fakeProvider{resp: Response{Text: "```json\n" + fixture.ReportJSON() + "\n```"}}
	got, err := New(fp, testConfig(), nil).Analyze(context.Background(), fixture.Hypothesis)
	require.NoError(t, err)
	assert.Len(t, got.TopPapers, types.PaperCount)
}

func TestAnalyzeValidationError(t *testing.T) {
	r := fixture.Report()
	r.TopPapers[1].Citations = r.TopPapers[0].Citations
	fp := &fakeProvider{resp: Response{Text: mustJSON(t, r)}}

	_, err := New(fp, testConfig(), nil).Analyze(context.Background(), fixture.Hypothesis)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Problems, 1)
	assert.Contains(t, verr.Problems[0], "strictly descending")

	var perr *ProviderError
	assert.False(t, errors.As(err, &perr), "validation failures are not provider errors")
}

func TestAnalyzeTimeout(t *testing.T) {
	fp := &fakeProvider{block: true}
	cfg := testConfig()
	cfg.Timeout = 20 * time.Millisecond

	start := time.Now()
	_, err := New(fp, cfg, nil).Analyze(context.Background(), fixture.Hypothesis)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "no response within 20ms")
}

func TestAnalyzeCallerCancel(t *testing.T) {
	fp := &fakeProvider{block: true}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(fp, testConfig(), nil).Analyze(ctx, fixture.Hypothesis)
	assert.ErrorIs(t, err, context.Canceled)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, OpGenerate, perr.Op)
}

func TestAnalyzePacingCancelled(t *testing.T) {
	fp := &fakeProvider{resp: Response{Text: fixture.ReportJSON()}}
	cfg := testConfig()
	cfg.MinInterval = time.Minute
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(fp, cfg, nil).Analyze(ctx, fixture.Hypothesis)
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, OpPace, perr.Op)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, fp.calls, "provider is not called when pacing is aborted")
}

func TestAnalyzeDefaults(t *testing.T) {
	fp := &fakeProvider{resp: Response{Text: fixture.ReportJSON()}}
	a := New(fp, types.AIConfig{}, nil)
	assert.Equal(t, types.DefaultTimeout, a.timeout)
	assert.Nil(t, a.limiter)

	_, err := a.Analyze(context.Background(), fixture.Hypothesis)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultModel, fp.last.Model)
	assert.False(t, fp.last.Grounding)
}

func TestAnalyzePacing(t *testing.T) {
	fp := &fakeProvider{resp: Response{Text: fixture.ReportJSON()}}
	cfg := testConfig()
	cfg.MinInterval = 60 * time.Millisecond
	a := New(fp, cfg, nil)

	start := time.Now()
	_, err := a.Analyze(context.Background(), fixture.Hypothesis)
	require.NoError(t, err)
	_, err = a.Analyze(context.Background(), fixture.Hypothesis)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond, "second call should wait for the pacing interval")
	assert.Equal(t, 2, fp.calls)
}

func TestProviderErrorMessage(t *testing.T) {
	err := &ProviderError{Op: OpRead, Err: ErrEmptyResponse}
	assert.Equal(t, "analysis provider: empty response", err.Error())
}

func TestValidationErrorMessage(t *testing.T) {
	one := &ValidationError{Problems: []string{"a"}}
	assert.Equal(t, "invalid report (1 problem): a", one.Error())

	two := &ValidationError{Problems: []string{"a", "b"}}
	assert.True(t, strings.HasPrefix(two.Error(), "invalid report (2 problems): a; b"))
}
