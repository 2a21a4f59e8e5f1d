// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/biosynth/pkg/types"
)

// Analyzer produces a report for a hypothesis. *analyze.Analyzer satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, hypothesis string) (*types.ResearchReport, error)
}

// updateBuffer bounds the snapshots queued for a slow observer.
const updateBuffer = 16

// Session runs analyses for a Machine in the background. Each Submit starts
// one goroutine; Cancel and Close stop it through its context.
type Session struct {
	machine  *Machine
	analyzer Analyzer
	logger   *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	changed chan struct{}
	updates chan Snapshot
	closed  bool
	wg      sync.WaitGroup
}

// NewSession creates a session in Idle. logger may be nil.
func NewSession(analyzer Analyzer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		machine:  NewMachine(),
		analyzer: analyzer,
		logger:   logger.Named("session"),
		changed:  make(chan struct{}),
		updates:  make(chan Snapshot, updateBuffer),
	}
}

// Submit moves to Searching and starts the analysis. It returns without
// waiting for the outcome; use Wait or Updates to observe it. Cancelling ctx
// cancels the analysis.
func (s *Session) Submit(ctx context.Context, hypothesis string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	ticket, err := s.machine.Submit(hypothesis)
	if err != nil {
		return err
	}
	snap := s.machine.Snapshot()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	go s.run(runCtx, cancel, ticket, snap.Hypothesis)

	s.logger.Debug("analysis submitted", zap.Uint64("ticket", uint64(ticket)))
	s.publishLocked(snap)
	return nil
}

func (s *Session) run(ctx context.Context, cancel context.CancelFunc, ticket Ticket, hypothesis string) {
	defer s.wg.Done()
	defer cancel()

	start := time.Now()
	report, err := s.analyzer.Analyze(ctx, hypothesis)

	s.mu.Lock()
	defer s.mu.Unlock()

	var applied bool
	if err != nil {
		applied = s.machine.Fail(ticket, err)
	} else {
		applied = s.machine.Complete(ticket, report)
	}
	if !applied {
		s.logger.Debug("discarding stale outcome", zap.Uint64("ticket", uint64(ticket)))
		return
	}
	s.cancel = nil

	snap := s.machine.Snapshot()
	s.logger.Info("analysis finished",
		zap.Uint64("ticket", uint64(ticket)),
		zap.Stringer("state", snap.State),
		zap.Duration("elapsed", time.Since(start)),
	)
	s.publishLocked(snap)
}

// Cancel stops the running analysis and returns to Idle.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if err := s.machine.Cancel(); err != nil {
		return err
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.logger.Info("analysis cancelled")
	s.publishLocked(s.machine.Snapshot())
	return nil
}

// Reset clears a finished report or error.
func (s *Session) Reset() error {
	return s.transition(s.machine.Reset)
}

// Home clears a finished report or error from the header shortcut.
func (s *Session) Home() error {
	return s.transition(s.machine.Home)
}

func (s *Session) transition(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if err := fn(); err != nil {
		return err
	}
	s.publishLocked(s.machine.Snapshot())
	return nil
}

// Snapshot returns the current machine state.
func (s *Session) Snapshot() Snapshot {
	return s.machine.Snapshot()
}

// Updates delivers a snapshot after every transition. Snapshots are dropped
// when the observer falls more than a few transitions behind. The channel is
// closed by Close.
func (s *Session) Updates() <-chan Snapshot {
	return s.updates
}

// Wait blocks until the machine is not Searching and returns that state.
func (s *Session) Wait(ctx context.Context) (Snapshot, error) {
	for {
		s.mu.Lock()
		snap := s.machine.Snapshot()
		changed := s.changed
		s.mu.Unlock()

		if snap.State != Searching {
			return snap, nil
		}
		select {
		case <-changed:
		case <-ctx.Done():
			return snap, ctx.Err()
		}
	}
}

// Close cancels any running analysis, waits for its goroutine to exit, and
// closes the Updates channel. Further calls return ErrClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if err := s.machine.Cancel(); err != nil && !errors.Is(err, ErrInvalidTransition) {
		s.mu.Unlock()
		return err
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.closed = true
	close(s.changed)
	s.mu.Unlock()

	s.wg.Wait()
	close(s.updates)
	return nil
}

func (s *Session) publishLocked(snap Snapshot) {
	if s.closed {
		return
	}
	close(s.changed)
	s.changed = make(chan struct{})

	select {
	case s.updates <- snap:
	default:
		s.logger.Warn("observer is behind, dropping update", zap.Stringer("state", snap.State))
	}
}
