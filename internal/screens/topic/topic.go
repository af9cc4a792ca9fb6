// Package topic is the topic selection screen.
package topic

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbit/internal/quiz"
	"github.com/abhisek/quizbit/internal/screen"
	"github.com/abhisek/quizbit/internal/ui/components"
	"github.com/abhisek/quizbit/internal/ui/layout"
	"github.com/abhisek/quizbit/internal/ui/theme"
)

const maxTopicLen = 80

// Screen lists featured topics and accepts a custom one.
type Screen struct {
	deps   screen.Deps
	menu   components.Menu
	input  components.TextInput
	typing bool
	errMsg string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the topic screen.
func New(deps screen.Deps) *Screen {
	s := &Screen{
		deps:  deps,
		input: components.NewTextInput("e.g. Ancient Rome", maxTopicLen),
	}

	items := make([]components.MenuItem, 0, len(deps.Topics)+2)
	for _, t := range deps.Topics {
		items = append(items, components.MenuItem{Label: t, Action: func() tea.Cmd {
			return s.choose(t)
		}})
	}
	items = append(items,
		components.MenuItem{Label: "Custom topic...", Action: func() tea.Cmd {
			s.typing = true
			s.input.Reset()
			return s.input.Init()
		}},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	s.menu = components.NewMenu(items)
	return s
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Choose a Topic"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.typing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.typing {
		if kmsg, ok := msg.(tea.KeyMsg); ok {
			switch kmsg.String() {
			case "esc":
				s.typing = false
				return s, nil
			case "enter":
				topic := s.input.Value()
				if topic == "" {
					return s, nil
				}
				return s, s.choose(topic)
			}
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// choose starts loading questions for topic. The view switches to loading
// right away and the fetch runs in the returned command.
func (s *Screen) choose(topic string) tea.Cmd {
	fetch, err := s.deps.Controller.BeginTopic(s.deps.Ctx, topic)
	if err != nil {
		if errors.Is(err, quiz.ErrFetchInFlight) {
			return nil
		}
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""
	return screen.Run(fetch)
}

func (s *Screen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	var b strings.Builder
	b.WriteString(components.Heading("AI-POWERED KNOWLEDGE QUIZ", cw))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).Render("Select a topic to begin"))
	b.WriteString("\n\n")

	if s.typing {
		b.WriteString(theme.Body.Render("Type any topic:"))
		b.WriteString("\n\n")
		b.WriteString(s.input.View())
		b.WriteString("\n")
	} else {
		b.WriteString(s.menu.View())
	}

	errMsg := s.errMsg
	if errMsg == "" {
		errMsg = s.deps.Controller.State().Error
	}
	if errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(errMsg))
	}

	return layout.Center(components.Card(b.String(), cw), width)
}
