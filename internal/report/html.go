package report

import (
	"html/template"
	"io"
)

// HTMLRenderer writes a self-contained printable HTML page. Each report
// page ends with a print page break.
type HTMLRenderer struct {
	// PerPage is the number of cards per page. Zero means DefaultPerPage.
	PerPage int
}

var htmlTmpl = template.Must(template.New("report.html").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Quiz Report: {{.Topic}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; color: #1f2937; margin: 2rem; }
h1 { margin-bottom: 0.25rem; }
.meta { color: #4b5563; margin-bottom: 1.5rem; }
.page { page-break-after: always; break-after: page; }
.page.last { page-break-after: auto; break-after: auto; }
.card { border: 1px solid #d1d5db; border-radius: 8px; padding: 1rem; margin-bottom: 1rem; }
.card h2 { font-size: 1.05rem; margin: 0 0 0.75rem; }
.option { padding: 0.3rem 0.5rem; border-radius: 4px; margin: 0.2rem 0; }
.option.correct { background: #dcfce7; color: #166534; }
.option.wrong { background: #fee2e2; color: #991b1b; }
.answer { margin-top: 0.6rem; }
.explanation { margin-top: 0.4rem; color: #374151; font-style: italic; }
footer { color: #6b7280; font-size: 0.8rem; display: flex; justify-content: space-between; border-top: 1px solid #e5e7eb; padding-top: 0.5rem; }
</style>
</head>
<body>
<header>
<h1>Quiz Report</h1>
<div class="meta">
<div>Topic: <strong>{{.Topic}}</strong></div>
<div>Score: <strong>{{.Score}} / {{.Total}}</strong> ({{.Percent}}%)</div>
<div>Date: {{.Date}}</div>
</div>
</header>
{{range .Pages}}<section class="page{{if .Last}} last{{end}}">
{{range .Cards}}<div class="card">
<h2>{{.Number}}. {{.Question}}</h2>
{{range .Options}}<div class="option{{if .IsCorrect}} correct{{else if .IsSelected}} wrong{{end}}">{{.Label}}. {{.Text}}</div>
{{end}}<div class="answer">Your Answer: {{if .Answered}}<strong>{{.Answer}}</strong>{{else}}<em>Not Answered</em>{{end}}</div>
<div class="answer">Correct Answer: <strong>{{.Correct}}</strong></div>
{{if .Explanation}}<div class="explanation">Explanation: {{.Explanation}}</div>
{{end}}</div>
{{end}}<footer><span>Generated by quizbit</span><span>Page {{.Number}} / {{.Total}}</span></footer>
</section>
{{end}}</body>
</html>
`))

func (h *HTMLRenderer) Extension() string { return "html" }

func (h *HTMLRenderer) Render(w io.Writer, r Report) error {
	return htmlTmpl.Execute(w, buildDocument(r, h.PerPage))
}
