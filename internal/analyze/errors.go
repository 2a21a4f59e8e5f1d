// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyResponse means the provider answered without any text payload.
	ErrEmptyResponse = errors.New("empty response")

	// ErrMalformedResponse means the payload was not parseable JSON of the
	// report shape.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrMissingAPIKey means no provider credential was configured.
	ErrMissingAPIKey = errors.New("provider API key is not configured")
)

// Provider exchange stages named by ProviderError.Op.
const (
	OpPace     = "pace"
	OpGenerate = "generate"
	OpRead     = "read"
	OpParse    = "parse"
)

// ProviderError reports a failed exchange with the analysis provider: the
// call itself failed or timed out, returned no text, or returned text that
// does not parse. Op names the stage that failed. The message shown to the
// user leaves it out.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return "analysis provider: " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ValidationError reports a parsed report that violates the report contract:
// missing fields, wrong counts, out-of-range numbers, unknown dataset sources,
// or broken ordering. Problems lists every violation found.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	n := len(e.Problems)
	noun := "problems"
	if n == 1 {
		noun = "problem"
	}
	return fmt.Sprintf("invalid report (%d %s): %s", n, noun, strings.Join(e.Problems, "; "))
}
