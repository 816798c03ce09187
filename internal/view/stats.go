package view

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/coverwatch/dashboard/internal/api"
)

// FetchErrorMessage is what replaces the stat cards when a poll cycle
// fails for any reason.
const FetchErrorMessage = "Failed to load dashboard data. Retrying shortly..."

var statsTmpl = template.Must(template.New("stats").Parse(`<div class="stat-card">
  <div class="stat-label">Coverage</div>
  <div class="stat-value {{.CoverageClass}}">{{.Coverage}}</div>
  <div class="stat-trend">{{.Trend}}</div>
  {{.Sparkline}}
</div>
<div class="stat-card">
  <div class="stat-label">Total Runs</div>
  <div class="stat-value">{{.TotalRuns}}</div>
  <div class="stat-detail">{{.RunsDetail}}</div>
</div>
<div class="stat-card">
  <div class="stat-label">Success Rate</div>
  <div class="stat-value">{{.SuccessRate}}</div>
  <div class="progress"><div class="progress-fill {{.SuccessClass}}" style="width: {{.SuccessWidth}}%"></div></div>
</div>
<div class="stat-card">
  <div class="stat-label">Avg Duration</div>
  <div class="stat-value">{{.AvgDuration}}</div>
  <div class="stat-detail">{{.AvgPassRate}} avg pass rate</div>
</div>
`))

type statsView struct {
	Coverage      string
	CoverageClass string
	Trend         string
	Sparkline     template.HTML
	TotalRuns     int
	RunsDetail    string
	SuccessRate   string
	SuccessClass  string
	SuccessWidth  float64
	AvgDuration   string
	AvgPassRate   string
}

// RenderStats builds the four stat cards. The fragment fully replaces the
// stats container, so rendering the same input twice yields identical
// output.
func RenderStats(s api.Stats, sparkline template.HTML) template.HTML {
	v := statsView{
		Coverage:      fmt.Sprintf("%.1f%%", s.CurrentCoverage),
		CoverageClass: CoverageClass(s.CurrentCoverage),
		Trend:         fmt.Sprintf("%s %s", TrendGlyph(s.CoverageTrend), trendLabel(s.CoverageTrend)),
		Sparkline:     sparkline,
		TotalRuns:     s.TotalTestRuns,
		RunsDetail:    fmt.Sprintf("%d passed · %d failed", s.SuccessfulRuns, s.FailedRuns),
		SuccessRate:   fmt.Sprintf("%.1f%%", s.SuccessRate),
		SuccessClass:  ProgressClass(s.SuccessRate),
		SuccessWidth:  s.SuccessRate,
		AvgDuration:   FormatDuration(s.AvgDurationSeconds),
		AvgPassRate:   fmt.Sprintf("%.1f%%", s.AvgPassRate),
	}

	var buf bytes.Buffer
	statsTmpl.Execute(&buf, v)
	return template.HTML(buf.String())
}

// RenderStatsError is the fetch-failure state for the stats container.
func RenderStatsError(msg string) template.HTML {
	var buf bytes.Buffer
	template.Must(template.New("err").Parse(
		`<div class="stat-error">{{.}}</div>`)).Execute(&buf, msg)
	return template.HTML(buf.String())
}

func trendLabel(trend string) string {
	switch trend {
	case "up", "down", "stable":
		return trend
	default:
		return "stable"
	}
}
