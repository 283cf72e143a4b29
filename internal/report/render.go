package report

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/Tiliavir/hubstaff-activity-report/internal/model"
	"github.com/Tiliavir/hubstaff-activity-report/internal/timecalc"
)

var htmlTemplate = template.Must(template.New("daily").Funcs(template.FuncMap{
	"duration": timecalc.FormatDuration,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Daily activity report for {{ .Date }}</title>
</head>
<body>
<h1>Daily activity report for {{ .Date }}</h1>
{{- if .Empty }}
<p>No time was tracked on this day.</p>
{{- else }}
<table border="1" cellpadding="5" cellspacing="0">
<tr><th>User</th><th>Project</th><th>Tracked</th><th>Seconds</th></tr>
{{- range $u := .ByUser }}
{{- range $p := $u.ByProject }}
<tr><td>{{ $u.UserID }}</td><td>{{ $p.ProjectID }}</td><td>{{ duration $p.Tracked }}</td><td>{{ $p.Tracked }}</td></tr>
{{- end }}
{{- end }}
<tr><th colspan="2">Total</th><th>{{ duration .TotalTracked }}</th><th>{{ .TotalTracked }}</th></tr>
</table>
{{- end }}
</body>
</html>
`))

// RenderHTML renders r as a standalone HTML page with one table row per
// user and project.
func RenderHTML(r model.DailyActivityReport) (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("rendering report for %s: %w", r.Date, err)
	}
	return buf.String(), nil
}

// Subject returns the email subject for the report of date.
func Subject(date string) string {
	return "Daily Activity Report - " + date
}
