package view

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/coverwatch/dashboard/internal/api"
)

const runColumns = 8

var runsTmpl = template.Must(template.New("runs").Parse(`{{range .}}<tr>
  <td>{{.When}}</td>
  <td><span class="badge {{.StatusClass}}">{{.Status}}</span></td>
  <td>{{.Trigger}}</td>
  <td>{{.Tests}}</td>
  <td><div class="progress inline"><div class="progress-fill {{.PassClass}}" style="width: {{.PassWidth}}%"></div></div> {{.PassRate}}</td>
  <td>{{.Coverage}}</td>
  <td>{{.Duration}}</td>
  <td class="commit">{{.Commit}}</td>
</tr>
{{end}}`))

var emptyRunsTmpl = template.Must(template.New("empty").Parse(
	`<tr class="empty-state"><td colspan="{{.Cols}}">{{.Message}}</td></tr>`))

// EmptyRunsMessage is the call to action shown when there is no run
// history yet.
const EmptyRunsMessage = "No verification runs yet. Trigger a run to see results here."

type runRow struct {
	When        string
	Status      string
	StatusClass string
	Trigger     string
	Tests       string
	PassRate    string
	PassClass   string
	PassWidth   float64
	Coverage    string
	Duration    string
	Commit      string
}

// RenderRuns builds the run-history table body and returns it with the
// row count for the "N runs" label. Runs are rendered in the order given
// (newest first); no reordering happens here.
func RenderRuns(runs []api.RunRecord) (template.HTML, int) {
	if len(runs) == 0 {
		var buf bytes.Buffer
		emptyRunsTmpl.Execute(&buf, struct {
			Cols    int
			Message string
		}{runColumns, EmptyRunsMessage})
		return template.HTML(buf.String()), 0
	}

	rows := make([]runRow, len(runs))
	for i, r := range runs {
		coverage := "-"
		if r.CoveragePercent != nil {
			coverage = fmt.Sprintf("%.1f%%", *r.CoveragePercent)
		}
		rows[i] = runRow{
			When:        FormatDateTime(r.Timestamp),
			Status:      r.Status,
			StatusClass: StatusClass(r.Status),
			Trigger:     r.Trigger,
			Tests:       fmt.Sprintf("%d/%d", r.PassedTests, r.TotalTests),
			PassRate:    fmt.Sprintf("%.1f%%", r.PassRate),
			PassClass:   ProgressClass(r.PassRate),
			PassWidth:   r.PassRate,
			Coverage:    coverage,
			Duration:    FormatDuration(r.DurationSeconds),
			Commit:      ShortSHA(r.CommitSHA),
		}
	}

	var buf bytes.Buffer
	runsTmpl.Execute(&buf, rows)
	return template.HTML(buf.String()), len(runs)
}
