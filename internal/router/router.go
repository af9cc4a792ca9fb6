package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbit/internal/quiz"
	"github.com/abhisek/quizbit/internal/screen"
)

// Factory builds a fresh screen for a view.
type Factory func() screen.Screen

// Router shows one screen per quiz view. The active screen is rebuilt
// whenever the view it was built for stops being current.
type Router struct {
	factories map[quiz.View]Factory
	view      quiz.View
	active    screen.Screen
}

// New creates a Router with no active screen. Call Sync to activate one.
func New(factories map[quiz.View]Factory) *Router {
	return &Router{factories: factories}
}

// Sync makes the screen for v active, building it and running its Init if
// v differs from the current view. Views without a factory are ignored.
func (r *Router) Sync(v quiz.View) tea.Cmd {
	if r.active != nil && v == r.view {
		return nil
	}
	f, ok := r.factories[v]
	if !ok {
		return nil
	}
	r.view = v
	r.active = f()
	return r.active.Init()
}

// Active returns the active screen, or nil before the first Sync.
func (r *Router) Active() screen.Screen {
	return r.active
}

// Current returns the view of the active screen.
func (r *Router) Current() quiz.View {
	return r.view
}

// Update forwards a message to the active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if r.active == nil {
		return nil
	}
	updated, cmd := r.active.Update(msg)
	r.active = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	if r.active == nil {
		return ""
	}
	return r.active.View(width, height)
}
