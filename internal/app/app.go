package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbit/internal/quiz"
	"github.com/abhisek/quizbit/internal/report"
	"github.com/abhisek/quizbit/internal/router"
	"github.com/abhisek/quizbit/internal/screen"
	"github.com/abhisek/quizbit/internal/screens/loading"
	"github.com/abhisek/quizbit/internal/screens/question"
	"github.com/abhisek/quizbit/internal/screens/results"
	"github.com/abhisek/quizbit/internal/screens/review"
	"github.com/abhisek/quizbit/internal/screens/topic"
	"github.com/abhisek/quizbit/internal/ui/layout"
)

// Options holds the dependencies of the TUI.
type Options struct {
	Controller *quiz.Controller
	Topics     []string
	ReportDir  string
	Renderer   report.Renderer
	Logger     *log.Logger

	// InitialTopic skips topic selection when set.
	InitialTopic string
}

// AppModel is the root Bubble Tea model. The active screen always matches
// the controller's current view.
type AppModel struct {
	ctrl         *quiz.Controller
	router       *router.Router
	deps         screen.Deps
	initialTopic string
	width        int
	height       int
}

// newAppModel creates the root model with one screen factory per view.
func newAppModel(ctx context.Context, opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	deps := screen.Deps{
		Ctx:        ctx,
		Controller: opts.Controller,
		Topics:     opts.Topics,
		ReportDir:  opts.ReportDir,
		Renderer:   opts.Renderer,
		Logger:     logger,
	}

	factories := map[quiz.View]router.Factory{
		quiz.ViewTopic:   func() screen.Screen { return topic.New(deps) },
		quiz.ViewLoading: func() screen.Screen { return loading.New(deps) },
		quiz.ViewQuiz:    func() screen.Screen { return question.New(deps) },
		quiz.ViewResults: func() screen.Screen { return results.New(deps) },
		quiz.ViewReview:  func() screen.Screen { return review.New(deps) },
	}

	return AppModel{
		ctrl:         opts.Controller,
		router:       router.New(factories),
		deps:         deps,
		initialTopic: opts.InitialTopic,
	}
}

func (m AppModel) Init() tea.Cmd {
	var start tea.Cmd
	if m.initialTopic != "" {
		fetch, err := m.ctrl.BeginTopic(m.deps.Ctx, m.initialTopic)
		if err != nil {
			m.deps.Logger.Printf("app: start topic %q: %v", m.initialTopic, err)
		} else {
			start = screen.Run(fetch)
		}
	}
	return tea.Batch(m.router.Sync(m.ctrl.State().View), start)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.ctrl.Reset()
			return m, tea.Quit
		}

	case screen.StateChangedMsg:
		if msg.Err != nil && !errors.Is(msg.Err, quiz.ErrStale) {
			m.deps.Logger.Printf("app: background work failed: %v", msg.Err)
		}
	}

	cmd := m.router.Update(msg)
	return m, tea.Batch(cmd, m.router.Sync(m.ctrl.State().View))
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	st := m.ctrl.State()
	title := ""
	var hints []layout.KeyHint
	if active := m.router.Active(); active != nil {
		title = active.Title()
		if p, ok := active.(screen.KeyHintProvider); ok {
			hints = p.KeyHints()
		}
	}
	if hints == nil {
		hints = []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}

	header := layout.RenderHeader(title, headerStatus(st), m.width)
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// headerStatus summarises progress for the header's right side.
func headerStatus(st quiz.State) string {
	switch st.View {
	case quiz.ViewQuiz, quiz.ViewReview:
		return fmt.Sprintf("Q %d/%d", st.CurrentIndex+1, st.Total())
	case quiz.ViewResults:
		return fmt.Sprintf("Score %d/%d", st.Score, st.Total())
	default:
		return ""
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	if opts.Controller == nil {
		return fmt.Errorf("app: controller is required")
	}
	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
