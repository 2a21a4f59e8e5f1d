// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package app

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pdiddy/biosynth/pkg/types"
)

// Machine is the report state machine. At most one analysis is in flight;
// the Searching guard is what enforces it. Safe for concurrent use.
type Machine struct {
	mu         sync.Mutex
	state      State
	ticket     Ticket
	hypothesis string
	report     *types.ResearchReport
	errMsg     string
}

// NewMachine returns a machine in Idle.
func NewMachine() *Machine {
	return &Machine{state: Idle}
}

// Submit moves Idle to Searching for a trimmed, non-empty hypothesis and
// issues the ticket the outcome must present. Any previous report or error
// is cleared.
func (m *Machine) Submit(hypothesis string) (Ticket, error) {
	h, err := types.NormalizeHypothesis(hypothesis)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case Idle:
	case Searching:
		return 0, ErrBusy
	default:
		return 0, fmt.Errorf("%w: submit from %s", ErrInvalidTransition, m.state)
	}

	m.ticket++
	m.state = Searching
	m.hypothesis = h
	m.report = nil
	m.errMsg = ""
	return m.ticket, nil
}

// Complete stores the report for ticket and moves to Result. It reports
// false when the ticket is stale or no analysis is running. A nil report is
// recorded as a failure.
func (m *Machine) Complete(t Ticket, report *types.ResearchReport) bool {
	if report == nil {
		return m.Fail(t, nil)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.currentLocked(t) {
		return false
	}
	m.state = Result
	m.report = report
	return true
}

// Fail records err for ticket and moves to Error. It reports false when the
// ticket is stale or no analysis is running.
func (m *Machine) Fail(t Ticket, err error) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.currentLocked(t) {
		return false
	}
	m.state = Error
	m.errMsg = FallbackErrorMessage
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		m.errMsg = err.Error()
	}
	return true
}

// Cancel abandons the running analysis and returns to Idle. Its outcome,
// when it arrives, is ignored.
func (m *Machine) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Searching {
		return fmt.Errorf("%w: cancel from %s", ErrInvalidTransition, m.state)
	}
	m.ticket++
	m.clearLocked()
	return nil
}

// Reset returns to Idle from Result or Error, clearing the report and error.
// It is a no-op in Idle.
func (m *Machine) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Searching {
		return fmt.Errorf("%w: reset while searching", ErrBusy)
	}
	m.clearLocked()
	return nil
}

// Home is the header shortcut. It behaves like Reset.
func (m *Machine) Home() error {
	return m.Reset()
}

// Snapshot returns the current state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		State:      m.state,
		Ticket:     m.ticket,
		Hypothesis: m.hypothesis,
		Report:     m.report,
		Err:        m.errMsg,
	}
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) currentLocked(t Ticket) bool {
	return m.state == Searching && t == m.ticket
}

func (m *Machine) clearLocked() {
	m.state = Idle
	m.hypothesis = ""
	m.report = nil
	m.errMsg = ""
}
