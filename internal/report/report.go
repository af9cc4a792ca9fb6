// Package report renders a finished quiz as a printable document.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/abhisek/quizbit/internal/quiz"
)

// DefaultPerPage is how many question cards fit on one page.
const DefaultPerPage = 3

const dateLayout = "January 2, 2006"

var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// Report is everything a rendered document shows.
type Report struct {
	Topic     string
	Score     int
	Total     int
	Date      time.Time
	Questions []quiz.Question
	Answers   quiz.Answers
}

// FromState builds a Report from a finished quiz.
func FromState(s quiz.State, date time.Time) Report {
	c := s.Clone()
	return Report{
		Topic:     c.Topic,
		Score:     c.Score,
		Total:     c.Total(),
		Date:      date,
		Questions: c.Questions,
		Answers:   c.Answers,
	}
}

// Renderer writes a Report in one document format.
type Renderer interface {
	Render(w io.Writer, r Report) error

	// Extension is the file extension without the dot.
	Extension() string
}

// ForFormat returns the renderer for a format name: "md", "markdown",
// "html" or "pdf".
func ForFormat(name string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "md", "markdown":
		return &MarkdownRenderer{}, nil
	case "html", "htm":
		return &HTMLRenderer{}, nil
	case "pdf":
		return &PDFRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", name)
	}
}

var unsafeRun = regexp.MustCompile(`[^a-z0-9]+`)

// FileName returns quiz-report-<topic>.<ext> with the topic reduced to
// lowercase letters, digits and dashes.
func FileName(topic, ext string) string {
	safe := strings.Trim(unsafeRun.ReplaceAllString(strings.ToLower(topic), "-"), "-")
	if safe == "" {
		safe = "quiz"
	}
	return fmt.Sprintf("quiz-report-%s.%s", safe, strings.TrimPrefix(ext, "."))
}

// Export renders r into dir and returns the written path.
func Export(dir string, r Report, renderer Renderer) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, FileName(r.Topic, renderer.Extension()))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	if err := renderer.Render(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("render report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// Template data.

type option struct {
	Label      string
	Text       string
	IsCorrect  bool
	IsSelected bool
}

type card struct {
	Number      int
	Question    string
	Options     []option
	Answer      string
	Answered    bool
	AnsweredOK  bool
	Correct     string
	Explanation string
}

type page struct {
	Number int
	Total  int
	Last   bool
	Cards  []card
}

type document struct {
	Topic   string
	Score   int
	Total   int
	Percent int
	Date    string
	Pages   []page
}

func buildDocument(r Report, perPage int) document {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	cards := make([]card, len(r.Questions))
	for i, q := range r.Questions {
		answer, answered := r.Answers[q.ID]
		c := card{
			Number:      i + 1,
			Question:    q.Question,
			Answer:      answer,
			Answered:    answered,
			AnsweredOK:  answered && q.IsCorrect(answer),
			Correct:     q.CorrectAnswer,
			Explanation: q.Description,
		}
		for j, o := range q.Options {
			label := fmt.Sprint(j + 1)
			if j < len(optionLabels) {
				label = optionLabels[j]
			}
			c.Options = append(c.Options, option{
				Label:      label,
				Text:       o,
				IsCorrect:  o == q.CorrectAnswer,
				IsSelected: answered && o == answer,
			})
		}
		cards[i] = c
	}

	n := max(1, int(math.Ceil(float64(len(cards))/float64(perPage))))
	pages := make([]page, n)
	for p := range pages {
		start := p * perPage
		end := min(start+perPage, len(cards))
		pages[p] = page{Number: p + 1, Total: n, Last: p == n-1}
		if start < len(cards) {
			pages[p].Cards = cards[start:end]
		}
	}

	var pct int
	if r.Total > 0 {
		pct = int(math.Round(float64(r.Score) * 100 / float64(r.Total)))
	}

	return document{
		Topic:   r.Topic,
		Score:   r.Score,
		Total:   r.Total,
		Percent: pct,
		Date:    r.Date.Format(dateLayout),
		Pages:   pages,
	}
}
