package charts

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/coverwatch/dashboard/internal/api"
)

func points(n int) []api.CoveragePoint {
	out := make([]api.CoveragePoint, n)
	for i := range out {
		out[i] = api.CoveragePoint{
			Timestamp:       time.Date(2026, time.August, 1+i, 0, 0, 0, 0, time.UTC),
			CoveragePercent: 70 + float64(i),
		}
	}
	return out
}

func TestCoverageTrendChart(t *testing.T) {
	g := NewGenerator()

	html := string(g.CoverageTrendChart(points(5)))
	assert.Contains(t, html, "Coverage %")
	assert.Contains(t, html, "Aug 1")
	assert.Contains(t, html, "Aug 5")
	// Values rounded to one decimal for the tooltip
	assert.NotContains(t, html, "70.00")
}

func TestCoverageTrendChart_Empty(t *testing.T) {
	g := NewGenerator()
	html := string(g.CoverageTrendChart(nil))
	assert.Contains(t, html, "chart-empty")
	assert.NotContains(t, html, "echarts")
}

func TestTestOutcomeChart(t *testing.T) {
	g := NewGenerator()
	runs := []api.RunRecord{
		{Timestamp: time.Date(2026, time.August, 2, 0, 0, 0, 0, time.UTC),
			Status: "passed", PassedTests: 48, TotalTests: 48},
		{Timestamp: time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
			Status: "failed", PassedTests: 44, TotalTests: 48},
	}

	html := string(g.TestOutcomeChart(runs))
	assert.Contains(t, html, "Passed")
	assert.Contains(t, html, "Failed")

	// Newest-first input ends up oldest-first on the axis
	assert.Less(t, strings.Index(html, "Aug 1"), strings.Index(html, "Aug 2"))
}

func TestTestOutcomeChart_Empty(t *testing.T) {
	g := NewGenerator()
	assert.Contains(t, string(g.TestOutcomeChart(nil)), "chart-empty")
}

func TestSparkline(t *testing.T) {
	g := NewGenerator()

	svg := string(g.Sparkline([]float64{70, 75, 80, 78}))
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "polyline")

	// Not enough points for a line
	assert.Empty(t, string(g.Sparkline([]float64{70})))
	assert.Empty(t, string(g.Sparkline(nil)))
}
