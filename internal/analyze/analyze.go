// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze builds the analysis request for a hypothesis, sends it to
// the generative-AI provider, and turns the provider's JSON payload into a
// validated ResearchReport.
//
// The provider is an opaque collaborator behind the Provider interface. The
// report it returns is treated as authoritative for content (citations,
// links, percentages are not fact-checked) but not for shape: every response
// is validated before it reaches the caller.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/pdiddy/biosynth/pkg/types"
)

// Provider abstracts the generative-AI service so tests can supply a fake.
// Implementations perform exactly one outbound exchange per call.
type Provider interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// Request is one structured generation request.
type Request struct {
	Model     string
	Prompt    string
	Schema    *genai.Schema
	Grounding bool
}

// Response is the provider's answer. Text is the raw JSON payload and may be
// empty. Sources and Queries describe web grounding, when the provider used it.
type Response struct {
	Text    string
	Sources []Source
	Queries []string
}

// Source is a web page the provider consulted while grounding its answer.
type Source struct {
	Title string
	URI   string
}

// Analyzer runs analyses against a Provider.
type Analyzer struct {
	provider Provider
	model    string
	ground   bool
	timeout  time.Duration
	limiter  *rate.Limiter
	logger   *zap.Logger
}

// New returns an Analyzer. A zero Model or Timeout falls back to the
// package defaults; a zero MinInterval disables outbound pacing. A nil
// logger discards log output.
func New(provider Provider, cfg types.AIConfig, logger *zap.Logger) *Analyzer {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = types.DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = types.DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &Analyzer{
		provider: provider,
		model:    model,
		ground:   cfg.Grounding,
		timeout:  timeout,
		logger:   logger.Named("analyze"),
	}
	if cfg.MinInterval > 0 {
		a.limiter = rate.NewLimiter(rate.Every(cfg.MinInterval), 1)
	}
	return a
}

// Analyze produces a validated report for one hypothesis.
//
// It returns types.ErrEmptyHypothesis for blank input without contacting the
// provider, a *ProviderError when the call fails, times out, returns no text,
// or returns text that is not JSON, and a *ValidationError when the parsed
// report breaks the report contract. There are no retries.
func (a *Analyzer) Analyze(ctx context.Context, hypothesis string) (*types.ResearchReport, error) {
	h, err := types.NormalizeHypothesis(hypothesis)
	if err != nil {
		return nil, err
	}

	prompt, err := RenderPrompt(h)
	if err != nil {
		return nil, fmt.Errorf("rendering prompt: %w", err)
	}

	log := a.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("model", a.model),
		zap.Int("hypothesis_len", len(h)),
	)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			log.Warn("pacing wait aborted", zap.Error(err))
			return nil, &ProviderError{Op: OpPace, Err: a.describeCallError(ctx, err)}
		}
	}

	log.Info("analysis started", zap.Bool("grounding", a.ground))
	start := time.Now()

	resp, err := a.provider.Generate(ctx, Request{
		Model:     a.model,
		Prompt:    prompt,
		Schema:    ReportSchema(),
		Grounding: a.ground,
	})
	elapsed := time.Since(start)
	if err != nil {
		log.Warn("provider call failed", zap.Duration("elapsed", elapsed), zap.Error(err))
		return nil, &ProviderError{Op: OpGenerate, Err: a.describeCallError(ctx, err)}
	}

	if len(resp.Sources) > 0 || len(resp.Queries) > 0 {
		uris := make([]string, len(resp.Sources))
		for i, s := range resp.Sources {
			uris[i] = s.URI
		}
		log.Debug("grounding metadata", zap.Strings("sources", uris), zap.Strings("queries", resp.Queries))
	}

	if strings.TrimSpace(resp.Text) == "" {
		log.Warn("provider returned no text", zap.Duration("elapsed", elapsed))
		return nil, &ProviderError{Op: OpRead, Err: ErrEmptyResponse}
	}

	report, err := parseReport(resp.Text)
	if err != nil {
		log.Warn("provider returned unparseable text", zap.Int("response_len", len(resp.Text)), zap.Error(err))
		return nil, &ProviderError{Op: OpParse, Err: err}
	}

	if err := Validate(report); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			log.Warn("report failed validation", zap.Strings("problems", verr.Problems))
		}
		return nil, err
	}

	log.Info("analysis completed",
		zap.Duration("elapsed", elapsed),
		zap.Int("sources", len(resp.Sources)),
		zap.Int("papers", len(report.TopPapers)),
		zap.Int("datasets", len(report.RelevantDatasets)),
	)
	return report, nil
}

// describeCallError replaces an opaque deadline error with one that names
// the configured timeout.
func (a *Analyzer) describeCallError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("no response within %v: %w", a.timeout, context.DeadlineExceeded)
	}
	return err
}
