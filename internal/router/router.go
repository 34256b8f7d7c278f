// Package router keeps the stack of screens the terminal UI navigates.
// Screens never hold a reference to the router; they return one of the
// navigation messages below as a command and the app forwards it here.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/praxis/internal/screen"
)

// PushScreenMsg opens Screen above the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the current screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the current screen, e.g. profile form to assessment.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// PopToRootMsg returns to home after an assessment is saved.
type PopToRootMsg struct{}

// Router is a stack of screens; the root is never removed.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push opens s and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen unless it is the root.
func (r *Router) Pop() tea.Cmd {
	return r.truncateTo(len(r.stack) - 1)
}

// PopToRoot closes everything above the root.
func (r *Router) PopToRoot() tea.Cmd {
	return r.truncateTo(1)
}

// Replace swaps the top screen for s and runs its Init.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// truncateTo shrinks the stack to depth n (at least 1). The uncovered
// screen is refreshed when it implements screen.Refresher.
func (r *Router) truncateTo(n int) tea.Cmd {
	if n < 1 || n >= len(r.stack) {
		return nil
	}
	clear(r.stack[n:])
	r.stack = r.stack[:n]
	if rf, ok := r.Active().(screen.Refresher); ok {
		return rf.Refresh()
	}
	return nil
}

// Active returns the top screen.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages; anything else goes to the top screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopToRootMsg:
		return r.PopToRoot()
	default:
		top := len(r.stack) - 1
		next, cmd := r.stack[top].Update(msg)
		r.stack[top] = next
		return cmd
	}
}

// View renders the top screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
