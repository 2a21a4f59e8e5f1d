// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package app

import (
	"context"
	"time"

	"github.com/pdiddy/biosynth/pkg/types"
)

// StatusMessages are shown in order while an analysis runs. They are
// cosmetic and say nothing about actual progress.
var StatusMessages = []string{
	"Initializing research agents...",
	"Crawling PubMed for relevant literature...",
	"Filtering top 1000 publications...",
	"Calculating citation influence indices...",
	"Analyzing consensus patterns across studies...",
	"Querying GEO, SRA, and CellxGene databases...",
	"Synthesizing findings into executive report...",
}

// StatusCycle walks a list of status messages, wrapping at the end. The zero
// value cycles StatusMessages. Not safe for concurrent use.
type StatusCycle struct {
	Messages []string
	index    int
}

func (c *StatusCycle) messages() []string {
	if len(c.Messages) == 0 {
		return StatusMessages
	}
	return c.Messages
}

// Current returns the message at the cursor.
func (c *StatusCycle) Current() string {
	msgs := c.messages()
	return msgs[c.index%len(msgs)]
}

// Advance moves the cursor one step and returns the new message.
func (c *StatusCycle) Advance() string {
	c.index = (c.index + 1) % len(c.messages())
	return c.Current()
}

// Reset moves the cursor back to the first message.
func (c *StatusCycle) Reset() {
	c.index = 0
}

// Ticker emits rotating status messages on a fixed interval.
type Ticker struct {
	Interval time.Duration
	Messages []string
}

// NewTicker returns a ticker over StatusMessages. A non-positive interval
// selects the default.
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = types.DefaultStatusInterval
	}
	return &Ticker{Interval: interval}
}

// Run calls emit with the first message at once and with the next message on
// every tick, until ctx is done. emit is called from Run's goroutine.
func (t *Ticker) Run(ctx context.Context, emit func(string)) {
	interval := t.Interval
	if interval <= 0 {
		interval = types.DefaultStatusInterval
	}
	cycle := &StatusCycle{Messages: t.Messages}

	if ctx.Err() != nil {
		return
	}
	emit(cycle.Current())

	tk := time.NewTicker(interval)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			emit(cycle.Advance())
		}
	}
}
