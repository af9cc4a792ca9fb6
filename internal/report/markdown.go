package report

import (
	"io"
	"text/template"
)

// MarkdownRenderer writes a plain Markdown report.
type MarkdownRenderer struct {
	// PerPage is the number of cards per page. Zero means DefaultPerPage.
	PerPage int
}

var markdownTmpl = template.Must(template.New("report.md").Parse(`# Quiz Report

**Topic:** {{.Topic}}  
**Score:** {{.Score}} / {{.Total}} ({{.Percent}}%)  
**Date:** {{.Date}}
{{range .Pages}}{{range .Cards}}
## {{.Number}}. {{.Question}}

{{range .Options}}- {{.Label}}. {{.Text}}{{if .IsCorrect}} (correct){{end}}{{if and .IsSelected (not .IsCorrect)}} (your answer){{end}}
{{end}}
{{if .Answered}}**Your Answer:** {{.Answer}}{{if .AnsweredOK}} (correct){{else}} (incorrect){{end}}{{else}}**Your Answer:** Not Answered{{end}}  
**Correct Answer:** {{.Correct}}
{{- if .Explanation}}  
**Explanation:** {{.Explanation}}{{end}}
{{end}}
---

*Generated by quizbit  Page {{.Number}} / {{.Total}}*
{{end}}`))

func (m *MarkdownRenderer) Extension() string { return "md" }

func (m *MarkdownRenderer) Render(w io.Writer, r Report) error {
	return markdownTmpl.Execute(w, buildDocument(r, m.PerPage))
}
