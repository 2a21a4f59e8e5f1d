// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package app holds the report lifecycle: the state machine that tracks one
// analysis at a time, the Session that drives it asynchronously, and the
// cosmetic status ticker shown while an analysis runs.
package app

import (
	"errors"

	"github.com/pdiddy/biosynth/pkg/types"
)

// State is the phase of the report lifecycle. There is no terminal state.
type State int

const (
	Idle State = iota
	Searching
	Result
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Searching:
		return "searching"
	case Result:
		return "result"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// FallbackErrorMessage is shown when a failure carries no message of its own.
const FallbackErrorMessage = "An unexpected error occurred during analysis."

var (
	// ErrBusy is returned when a submission arrives while an analysis is in
	// flight.
	ErrBusy = errors.New("an analysis is already in progress")

	// ErrInvalidTransition is returned for a trigger the current state does
	// not accept.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrClosed is returned by a Session after Close.
	ErrClosed = errors.New("session closed")
)

// Ticket identifies one submission. Outcomes carrying an older ticket are
// discarded.
type Ticket uint64

// Snapshot is a point-in-time copy of the machine. Report is shared with the
// machine and must be treated as read-only.
type Snapshot struct {
	State      State
	Ticket     Ticket
	Hypothesis string
	Report     *types.ResearchReport
	Err        string
}
