// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"strings"
)

// ErrEmptyHypothesis is the input error for a blank or whitespace-only
// hypothesis. The UI prevents it; the state machine and analyzer still
// reject it.
var ErrEmptyHypothesis = errors.New("hypothesis is empty")

// NormalizeHypothesis trims surrounding whitespace and returns
// ErrEmptyHypothesis when nothing remains.
func NormalizeHypothesis(s string) (string, error) {
	h := strings.TrimSpace(s)
	if h == "" {
		return "", ErrEmptyHypothesis
	}
	return h, nil
}
