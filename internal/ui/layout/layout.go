// Package layout renders the frame around every screen: header, content
// area and key-hint footer.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/praxis/internal/ui/theme"
)

// The assessment forms need room for a question, its options and help text.
const (
	minCols = 80
	minRows = 24

	// Column never grows wider than this so question text stays readable.
	maxColumn = 76
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal cannot fit a full screen.
func IsTooSmall(width, height int) bool {
	return width < minCols || height < minRows
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	body := fmt.Sprintf("Praxis needs a %dx%d terminal.\n\nThis one is %dx%d.\nResize to continue.",
		minCols, minRows, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(body))
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader draws the product name, the screen title centred, and status
// (usually the catalog version) on the right.
func RenderHeader(title, status string, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" Praxis")
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	tail := lipgloss.NewStyle().Foreground(theme.TextDim).Render(status + " ")

	inner := max(width-4, 0)
	third := inner / 3
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(third).Render(brand),
		lipgloss.NewStyle().Width(inner-2*third).Align(lipgloss.Center).Render(mid),
		lipgloss.NewStyle().Width(third).Align(lipgloss.Right).Render(tail),
	)
	return bar(width).Render(row)
}

// RenderFooter lists the key hints of the active screen.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(" ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString("  ·  ")
		}
		b.WriteString(key.Render(h.Key))
		b.WriteString(" ")
		b.WriteString(desc.Render(h.Description))
	}
	return bar(width).Render(b.String())
}

// RenderFrame stacks header, content and footer, giving content whatever
// height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rest).MaxHeight(rest).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// Section renders a heading over a divider, both as wide as the content column.
func Section(title string, width int) string {
	rule := strings.Repeat("─", max(min(width-4, maxColumn-4), 0))
	return theme.Heading.Render(title) + "\n" + lipgloss.NewStyle().Foreground(theme.Border).Render(rule)
}

// Column centres a left-aligned block no wider than maxColumn.
func Column(content string, width int) string {
	block := lipgloss.NewStyle().Width(min(width-4, maxColumn)).Render(content)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

// Scroll returns the height lines of content starting at offset, with offset
// clamped so the last page stays full. The clamped offset is returned.
func Scroll(content string, offset, height int) (string, int) {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if height <= 0 || len(lines) <= height {
		return strings.Join(lines, "\n"), 0
	}
	offset = min(max(offset, 0), len(lines)-height)
	return strings.Join(lines[offset:offset+height], "\n"), offset
}
