// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui is the interactive terminal front end. It drives an
// app.Machine directly: the analysis runs as a tea.Cmd and its outcome comes
// back as a message carrying the submission ticket, so outcomes for
// cancelled submissions are dropped by the machine.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/pdiddy/biosynth/internal/app"
	"github.com/pdiddy/biosynth/internal/render"
	"github.com/pdiddy/biosynth/pkg/types"
)

const (
	inputPlaceholder = "Enter a research hypothesis (e.g., TGF-beta signaling in lung cancer metastasis)..."
	inputCharLimit   = 500

	// chromeHeight is the rows taken by the header and footer in the
	// result view.
	chromeHeight = 5
)

// Config wires runtime options into the TUI.
type Config struct {
	Analyzer       app.Analyzer
	StatusInterval time.Duration
	ExportDir      string
	ExportFormat   types.ExportFormat
	Logger         *zap.Logger

	// Now stamps export file names. Defaults to time.Now.
	Now func() time.Time
}

type analysisDoneMsg struct {
	ticket app.Ticket
	report *types.ResearchReport
	err    error
}

type statusTickMsg struct {
	seq int
}

type exportDoneMsg struct {
	path string
	err  error
}

// Model is the bubbletea model.
type Model struct {
	cfg     Config
	ctx     context.Context
	machine *app.Machine
	logger  *zap.Logger

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	status   app.StatusCycle

	tickSeq int
	cancel  context.CancelFunc
	notice  string
	width   int
	height  int
}

// New returns a model in Idle. Analyses run under ctx.
func New(ctx context.Context, cfg Config) *Model {
	if cfg.StatusInterval <= 0 {
		cfg.StatusInterval = types.DefaultStatusInterval
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = types.DefaultExportDir
	}
	if cfg.ExportFormat == "" {
		cfg.ExportFormat = types.ExportMarkdown
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	input := textinput.New()
	input.Placeholder = inputPlaceholder
	input.CharLimit = inputCharLimit
	input.Width = 72
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = statusStyle

	return &Model{
		cfg:      cfg,
		ctx:      ctx,
		machine:  app.NewMachine(),
		logger:   logger.Named("tui"),
		input:    input,
		spinner:  spin,
		viewport: viewport.New(80, 20),
	}
}

// Snapshot exposes the machine state.
func (m *Model) Snapshot() app.Snapshot {
	return m.machine.Snapshot()
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = min(72, max(20, msg.Width-12))
		m.viewport.Width = msg.Width
		m.viewport.Height = max(3, msg.Height-chromeHeight)
		if m.machine.State() == app.Result {
			m.renderReport()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.stopAnalysis()
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case analysisDoneMsg:
		return m, m.handleOutcome(msg)

	case statusTickMsg:
		if msg.seq != m.tickSeq || m.machine.State() != app.Searching {
			return m, nil
		}
		m.status.Advance()
		return m, m.statusTick()

	case spinner.TickMsg:
		if m.machine.State() != app.Searching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case exportDoneMsg:
		if msg.err != nil {
			m.logger.Warn("export failed", zap.Error(msg.err))
			m.notice = "Export failed: " + msg.err.Error()
		} else {
			m.logger.Info("report exported", zap.String("path", msg.path))
			m.notice = "Saved " + msg.path
		}
		return m, nil
	}

	if m.machine.State() == app.Idle {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.machine.State() {
	case app.Idle:
		switch key.Type {
		case tea.KeyEnter:
			return m, m.submit()
		case tea.KeyCtrlH:
			// Home is already here. The input would treat ctrl+h as backspace.
			m.reset(m.machine.Home)
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(key)
		return m, cmd

	case app.Searching:
		if key.Type == tea.KeyEsc {
			m.cancelAnalysis()
		}
		return m, nil

	case app.Result:
		switch key.String() {
		case "r":
			m.reset(m.machine.Reset)
			return m, nil
		case "ctrl+h":
			m.reset(m.machine.Home)
			return m, nil
		case "p":
			return m, m.exportCmd()
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(key)
		return m, cmd

	case app.Error:
		switch key.String() {
		case "r", "enter":
			m.reset(m.machine.Reset)
		case "ctrl+h":
			m.reset(m.machine.Home)
		}
		return m, nil
	}
	return m, nil
}

// submit starts an analysis when the input holds a hypothesis. Blank input
// leaves the model unchanged.
func (m *Model) submit() tea.Cmd {
	ticket, err := m.machine.Submit(m.input.Value())
	if err != nil {
		return nil
	}
	hypothesis := m.machine.Snapshot().Hypothesis

	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.notice = ""
	m.tickSeq++
	m.status.Reset()
	m.input.Blur()
	m.logger.Info("analysis submitted", zap.Uint64("ticket", uint64(ticket)))

	return tea.Batch(
		m.analyzeCmd(ctx, ticket, hypothesis),
		m.spinner.Tick,
		m.statusTick(),
	)
}

func (m *Model) analyzeCmd(ctx context.Context, ticket app.Ticket, hypothesis string) tea.Cmd {
	analyzer := m.cfg.Analyzer
	return func() tea.Msg {
		report, err := analyzer.Analyze(ctx, hypothesis)
		return analysisDoneMsg{ticket: ticket, report: report, err: err}
	}
}

func (m *Model) statusTick() tea.Cmd {
	seq := m.tickSeq
	return tea.Tick(m.cfg.StatusInterval, func(time.Time) tea.Msg {
		return statusTickMsg{seq: seq}
	})
}

func (m *Model) handleOutcome(msg analysisDoneMsg) tea.Cmd {
	var applied bool
	if msg.err != nil {
		applied = m.machine.Fail(msg.ticket, msg.err)
	} else {
		applied = m.machine.Complete(msg.ticket, msg.report)
	}
	if !applied {
		m.logger.Debug("discarding stale outcome", zap.Uint64("ticket", uint64(msg.ticket)))
		return nil
	}
	m.stopAnalysis()

	if m.machine.State() == app.Result {
		m.renderReport()
	} else {
		m.logger.Warn("analysis failed", zap.String("error", m.machine.Snapshot().Err))
	}
	return nil
}

func (m *Model) cancelAnalysis() {
	if err := m.machine.Cancel(); err != nil {
		return
	}
	m.stopAnalysis()
	m.input.Focus()
	m.logger.Info("analysis cancelled")
}

func (m *Model) reset(transition func() error) {
	if err := transition(); err != nil {
		return
	}
	m.notice = ""
	m.viewport.SetContent("")
	m.input.Focus()
}

// stopAnalysis releases the in-flight context and invalidates pending
// status ticks.
func (m *Model) stopAnalysis() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.tickSeq++
}

func (m *Model) renderReport() {
	snap := m.machine.Snapshot()
	md := render.Markdown(snap.Hypothesis, snap.Report)
	out, err := render.Terminal(md, m.viewport.Width)
	if err != nil {
		m.logger.Warn("terminal rendering failed, showing markdown", zap.Error(err))
		out = md
	}
	m.viewport.SetContent(out)
	m.viewport.GotoTop()
}

func (m *Model) exportCmd() tea.Cmd {
	snap := m.machine.Snapshot()
	cfg := m.cfg
	return func() tea.Msg {
		path, err := render.WriteExport(cfg.ExportDir, cfg.ExportFormat, snap.Hypothesis, snap.Report, cfg.Now())
		return exportDoneMsg{path: path, err: err}
	}
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(header())
	b.WriteString("\n\n")

	snap := m.machine.Snapshot()
	switch snap.State {
	case app.Idle:
		b.WriteString(m.idleView())
	case app.Searching:
		b.WriteString(m.searchingView(snap))
	case app.Result:
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		if m.notice != "" {
			b.WriteString(noticeStyle.Render(m.notice))
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("↑/↓ scroll • p export • r new analysis • ctrl+h home • ctrl+c quit"))
	case app.Error:
		b.WriteString(errorView(snap.Err))
	}
	b.WriteString("\n")
	return b.String()
}

func header() string {
	return brandStyle.Render("BioSynthesize") + " " + brandAccentStyle.Render("AI")
}

func (m *Model) idleView() string {
	var b strings.Builder
	b.WriteString(taglineStyle.Render("Validate your research hypotheses in seconds."))
	b.WriteString("\n")
	b.WriteString(blurbStyle.Render("Agents survey PubMed, GEO, SRA, and CellxGene for a literature meta-analysis and relevant datasets."))
	b.WriteString("\n\n")
	b.WriteString(inputBoxStyle.Render(m.input.View()))
	b.WriteString("\n")

	if strings.TrimSpace(m.input.Value()) == "" {
		b.WriteString(buttonDisabledStyle.Render("Analyze"))
	} else {
		b.WriteString(buttonStyle.Render("Analyze"))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter analyze • ctrl+c quit"))
	return b.String()
}

func (m *Model) searchingView(snap app.Snapshot) string {
	var b strings.Builder
	b.WriteString(hypothesisStyle.Render(snap.Hypothesis))
	b.WriteString("\n\n")
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(statusStyle.Render(m.status.Current()))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("esc cancel • ctrl+c quit"))
	return b.String()
}

func errorView(msg string) string {
	body := errorTitleStyle.Render("Research Interrupted") + "\n\n" + msg
	return errorBoxStyle.Render(body) + "\n\n" +
		helpStyle.Render("enter/r try another hypothesis • ctrl+h home • ctrl+c quit")
}
