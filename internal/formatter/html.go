package formatter

import (
	"fmt"
	"html/template"
	"io"
)

type HTMLFormatter struct{}

func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{}
}

type templateRow struct {
	Panel    int
	Machine  string
	Presses  int
	Solvable bool
}

type templateReport struct {
	Mode  string
	Total int
	Rows  []templateRow
}

func newTemplateReports(doc *Document) []templateReport {
	reports := make([]templateReport, 0, len(doc.Reports))
	for _, report := range doc.Reports {
		tr := templateReport{
			Mode:  report.Mode.String(),
			Total: report.Total,
			Rows:  make([]templateRow, 0, len(report.Results)),
		}
		for _, res := range report.Results {
			row := templateRow{Panel: res.Index + 1, Presses: res.Presses, Solvable: res.Solvable}
			if res.Index < len(doc.Panels) {
				row.Machine = doc.Panels[res.Index].String()
			}
			tr.Rows = append(tr.Rows, row)
		}
		reports = append(reports, tr)
	}
	return reports
}

func (f *HTMLFormatter) Format(writer io.Writer, doc *Document) error {
	const tmpl = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Panels{{if .Source}} - {{.Source}}{{end}}</title>
</head>
<body>
{{- range .Reports}}
<h2>{{.Mode}}: {{.Total}}</h2>
<table>
<tr><th>Panel</th><th>Machine</th><th>Presses</th></tr>
{{- range .Rows}}
<tr><td>{{.Panel}}</td><td><code>{{.Machine}}</code></td><td>{{if .Solvable}}{{.Presses}}{{else}}unsolvable{{end}}</td></tr>
{{- end}}
</table>
{{- end}}
</body>
</html>
`

	templateData := struct {
		Source  string
		Reports []templateReport
	}{
		Source:  doc.Source,
		Reports: newTemplateReports(doc),
	}

	t, err := template.New("html").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse HTML template: %w", err)
	}

	return t.Execute(writer, templateData)
}
