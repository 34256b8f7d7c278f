// Package legal holds the privacy, terms and disclaimer pages shown by the
// API and the terminal UI.
package legal

import (
	"embed"
	"strings"
)

//go:embed pages/*.md
var pages embed.FS

// Pages lists the page names in display order.
var Pages = []string{"privacy", "terms", "disclaimer"}

// Page returns the markdown of the named page.
func Page(name string) ([]byte, bool) {
	if strings.ContainsAny(name, `/\.`) {
		return nil, false
	}
	b, err := pages.ReadFile("pages/" + name + ".md")
	if err != nil {
		return nil, false
	}
	return b, true
}

// Title returns the first heading of a page, or the name when it has none.
func Title(name string) string {
	b, ok := Page(name)
	if !ok {
		return name
	}
	first, _, _ := strings.Cut(string(b), "\n")
	if t, ok := strings.CutPrefix(first, "# "); ok {
		return t
	}
	return name
}
