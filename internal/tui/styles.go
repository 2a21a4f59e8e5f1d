// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent     = lipgloss.Color("#2563EB")
	accentSoft = lipgloss.Color("#818CF8")
	muted      = lipgloss.Color("#64748B")
	danger     = lipgloss.Color("#EF4444")
	success    = lipgloss.Color("#10B981")
)

var (
	brandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0F172A")).
			Background(accent).
			Padding(0, 1)

	brandAccentStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accent)

	taglineStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentSoft)

	blurbStyle = lipgloss.NewStyle().
			Foreground(muted)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(accent).
			Padding(0, 2)

	buttonDisabledStyle = lipgloss.NewStyle().
				Foreground(muted).
				Background(lipgloss.Color("#1E293B")).
				Padding(0, 2)

	statusStyle = lipgloss.NewStyle().
			Foreground(accentSoft).
			Bold(true)

	hypothesisStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(muted)

	errorTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(danger)

	errorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(danger).
			Padding(1, 2)

	noticeStyle = lipgloss.NewStyle().
			Foreground(success)

	helpStyle = lipgloss.NewStyle().
			Foreground(muted)
)
