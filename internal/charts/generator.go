package charts

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"math"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/coverwatch/dashboard/internal/api"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// CoverageTrendChart draws the smoothed, filled coverage line. A fresh
// chart object is built on every call; nothing is mutated in place
// between poll cycles.
func (g *Generator) CoverageTrendChart(points []api.CoveragePoint) template.HTML {
	if len(points) == 0 {
		return emptyState("No coverage data yet")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithYAxisOpts(opts.YAxis{
			Min:       0,
			Max:       100,
			AxisLabel: &opts.AxisLabel{Formatter: "{value}%"},
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Height: "220px",
			Width:  "100%",
		}),
	)

	xAxis := make([]string, len(points))
	yAxis := make([]opts.LineData, len(points))
	for i, p := range points {
		xAxis[i] = p.Timestamp.Format("Jan 2")
		yAxis[i] = opts.LineData{Value: round1(p.CoveragePercent)}
	}

	line.SetXAxis(xAxis).
		AddSeries("Coverage %", yAxis).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.2)}),
		)

	return template.HTML(g.renderToString(line))
}

// TestOutcomeChart draws passed/failed test counts as stacked bars on the
// same date axis as the coverage chart. Runs arrive newest-first; the
// axis reads left to right, so they are walked in reverse.
func (g *Generator) TestOutcomeChart(runs []api.RunRecord) template.HTML {
	if len(runs) == 0 {
		return emptyState("No runs to chart yet")
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithColorsOpts(opts.Colors{"#2f9e44", "#e03131"}),
		charts.WithInitializationOpts(opts.Initialization{
			Height: "220px",
			Width:  "100%",
		}),
	)

	xAxis := make([]string, len(runs))
	passed := make([]opts.BarData, len(runs))
	failed := make([]opts.BarData, len(runs))
	for i, r := range runs {
		j := len(runs) - 1 - i
		xAxis[j] = r.Timestamp.Format("Jan 2")
		passed[j] = opts.BarData{Value: r.PassedTests}
		failed[j] = opts.BarData{Value: r.TotalTests - r.PassedTests}
	}

	bar.SetXAxis(xAxis).
		AddSeries("Passed", passed).
		AddSeries("Failed", failed).
		SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{Stack: "runs"}))

	return template.HTML(g.renderToString(bar))
}

// Sparkline renders a small inline SVG for the coverage stat card.
func (g *Generator) Sparkline(values []float64) template.HTML {
	if len(values) < 2 {
		return ""
	}
	width := 100
	height := 30

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		max = min + 1
	}

	points := make([]string, len(values))
	for i, v := range values {
		x := float64(i) * float64(width) / float64(len(values)-1)
		y := float64(height) - ((v - min) / (max - min) * float64(height))
		points[i] = fmt.Sprintf("%.1f,%.1f", x, y)
	}

	return template.HTML(fmt.Sprintf(`<svg width="%d" height="%d" class="sparkline">
		<polyline points="%s" fill="none" stroke="currentColor" stroke-width="2"/>
	</svg>`, width, height, strings.Join(points, " ")))
}

// Interface for anything that can render itself to an io.Writer
type Renderer interface {
	Render(w io.Writer) error
}

func (g *Generator) renderToString(c Renderer) string {
	var buf bytes.Buffer
	c.Render(&buf)
	return buf.String()
}

func emptyState(msg string) template.HTML {
	var buf bytes.Buffer
	template.Must(template.New("empty").Parse(
		`<div class="chart-empty">{{.}}</div>`)).Execute(&buf, msg)
	return template.HTML(buf.String())
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
