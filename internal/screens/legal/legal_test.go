package legal

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	pages "github.com/abhisek/praxis/internal/legal"
	"github.com/abhisek/praxis/internal/router"
)

func TestLegalScreen_OpensPage(t *testing.T) {
	s := New()
	if got := len(s.menu.Items); got != len(pages.Pages) {
		t.Fatalf("menu has %d items, want %d", got, len(pages.Pages))
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should open a page")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	page, ok := push.Screen.(*PageScreen)
	if !ok {
		t.Fatalf("pushed %T, want *PageScreen", push.Screen)
	}
	if page.name != pages.Pages[0] {
		t.Errorf("opened %q, want %q", page.name, pages.Pages[0])
	}
	if page.Title() != pages.Title(pages.Pages[0]) {
		t.Errorf("title = %q", page.Title())
	}
}

func TestPageScreen_Scroll(t *testing.T) {
	p := NewPage("terms")
	top := p.View(80, 5)
	if !strings.Contains(top, "Terms of use") {
		t.Errorf("first page should show the title, got:\n%s", top)
	}

	p.Update(tea.KeyPressMsg{Code: tea.KeyPgDown})
	if p.View(80, 5) == top {
		t.Error("page down should scroll")
	}

	for range 50 {
		p.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	}
	p.View(80, 5)
	if p.offset != 0 {
		t.Errorf("offset = %d, want 0 after scrolling to the top", p.offset)
	}
}

func TestNewPage_Unknown(t *testing.T) {
	p := NewPage("../secrets")
	if !strings.Contains(p.View(80, 10), "Page not found") {
		t.Error("unknown page should say so")
	}
}
