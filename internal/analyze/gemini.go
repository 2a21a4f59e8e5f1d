// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/pdiddy/biosynth/pkg/types"
)

// jsonMIMEType asks the provider for a bare JSON payload.
const jsonMIMEType = "application/json"

// GeminiProvider calls the Gemini API through the genai SDK.
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider creates a provider using the credential and endpoint in
// cfg. The credential is taken from cfg only; the process environment is not
// consulted. httpClient may be nil to use the SDK default.
func NewGeminiProvider(ctx context.Context, cfg types.AIConfig, httpClient *http.Client) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

// Generate sends one generateContent request constrained to the JSON schema
// in req, with Google Search grounding when requested.
func (g *GeminiProvider) Generate(ctx context.Context, req Request) (Response, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: jsonMIMEType,
		ResponseSchema:   req.Schema,
	}
	if req.Grounding {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	resp, err := g.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), config)
	if err != nil {
		return Response{}, fmt.Errorf("calling Gemini API: %w", err)
	}
	if resp == nil {
		return Response{}, nil
	}

	out := Response{Text: resp.Text()}
	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		gm := resp.Candidates[0].GroundingMetadata
		out.Queries = gm.WebSearchQueries
		for _, chunk := range gm.GroundingChunks {
			if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			out.Sources = append(out.Sources, Source{Title: chunk.Web.Title, URI: chunk.Web.URI})
		}
	}
	return out, nil
}
