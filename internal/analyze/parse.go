// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/biosynth/pkg/types"
)

// parseReport decodes the provider's text payload into a ResearchReport.
// A surrounding Markdown code fence is tolerated. The result is not
// validated; see Validate.
func parseReport(text string) (*types.ResearchReport, error) {
	body := stripCodeFence(strings.TrimSpace(text))
	if body == "" {
		return nil, ErrEmptyResponse
	}

	var report types.ResearchReport
	if err := json.Unmarshal([]byte(body), &report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &report, nil
}

// stripCodeFence removes a leading ``` or ```json line and a trailing ```
// line. Text without a fence is returned unchanged.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	nl := strings.IndexByte(s, '\n')
	if nl < 0 {
		return s
	}
	inner := s[nl+1:]
	inner = strings.TrimSpace(inner)
	inner = strings.TrimSuffix(inner, "```")
	return strings.TrimSpace(inner)
}
