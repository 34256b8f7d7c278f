// Package theme holds the colours and styles of the terminal UI.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/praxis/internal/questions"
	"github.com/abhisek/praxis/internal/scoring"
)

// Palette. Score and priority colours run from rose (worst) through
// orange and amber to teal and green (best).
var (
	Primary   = lipgloss.Color("#0EA5E9")
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#22C55E")
	Warning   = lipgloss.Color("#F97316")
	Error     = lipgloss.Color("#F43F5E")

	Text    = lipgloss.Color("#F8FAFC")
	TextDim = lipgloss.Color("#94A3B8")
	BgCard  = lipgloss.Color("#1E293B")
	Border  = lipgloss.Color("#334155")
)

func fg(c color.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	Title    = fg(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle = fg(TextDim).Align(lipgloss.Center)
	Heading  = fg(Secondary).Bold(true)
	Body     = fg(Text)
	Hint     = fg(TextDim).Italic(true)

	// Selected marks the row under the cursor; Answered a question with a response.
	Selected  = fg(Primary).Bold(true)
	Answered  = fg(Success)
	ErrorText = fg(Error).Bold(true)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

var bucketColors = map[scoring.Bucket]color.Color{
	scoring.BucketCritical:    Error,
	scoring.BucketDeveloping:  Warning,
	scoring.BucketEstablished: Secondary,
	scoring.BucketLeading:     Success,
}

// BucketColor returns the colour of a score bucket, dim for unknown buckets.
func BucketColor(b scoring.Bucket) color.Color {
	if c, ok := bucketColors[b]; ok {
		return c
	}
	return TextDim
}

var priorityColors = map[questions.Priority]color.Color{
	questions.PriorityCritical: Error,
	questions.PriorityHigh:     Warning,
	questions.PriorityMedium:   Accent,
}

// PriorityColor returns the colour of a finding priority; low is dim.
func PriorityColor(p questions.Priority) color.Color {
	if c, ok := priorityColors[p]; ok {
		return c
	}
	return TextDim
}
