package api

import (
	"fmt"
	"sort"
	"time"
)

// DashboardSummary is one snapshot of the verification API's state.
// A fresh one is fetched on every poll cycle and replaces the previous
// snapshot wholesale.
type DashboardSummary struct {
	Project        string          `json:"project"`
	Stats          Stats           `json:"stats"`
	RecentCoverage []CoveragePoint `json:"recent_coverage"`
	RecentRuns     []RunRecord     `json:"recent_runs"`
}

type Stats struct {
	CurrentCoverage    float64 `json:"current_coverage"`
	CoverageTrend      string  `json:"coverage_trend"` // up, down, stable
	TotalTestRuns      int     `json:"total_test_runs"`
	SuccessfulRuns     int     `json:"successful_runs"`
	FailedRuns         int     `json:"failed_runs"`
	SuccessRate        float64 `json:"success_rate"`
	AvgDurationSeconds float64 `json:"avg_duration_seconds"`
	AvgPassRate        float64 `json:"avg_pass_rate"`
}

type CoveragePoint struct {
	Timestamp       time.Time `json:"timestamp"`
	CoveragePercent float64   `json:"coverage_percent"`
}

// RunRecord is a single verification run. CoveragePercent and CommitSHA
// are optional in the wire format.
type RunRecord struct {
	Timestamp       time.Time `json:"timestamp"`
	Status          string    `json:"status"` // passed, failed, error, ...
	Trigger         string    `json:"trigger"`
	PassedTests     int       `json:"passed_tests"`
	TotalTests      int       `json:"total_tests"`
	PassRate        float64   `json:"pass_rate"`
	CoveragePercent *float64  `json:"coverage_percent,omitempty"`
	DurationSeconds float64   `json:"duration_seconds"`
	CommitSHA       string    `json:"commit_sha,omitempty"`
}

// Validate checks the payload against the summary contract. A violation is
// reported as a plain error so the poll boundary can treat it exactly like
// a fetch failure.
func (s *DashboardSummary) Validate() error {
	if s.Stats.SuccessfulRuns+s.Stats.FailedRuns > s.Stats.TotalTestRuns {
		return fmt.Errorf("stats: successful (%d) + failed (%d) exceeds total runs (%d)",
			s.Stats.SuccessfulRuns, s.Stats.FailedRuns, s.Stats.TotalTestRuns)
	}
	for i, p := range s.RecentCoverage {
		if p.CoveragePercent < 0 || p.CoveragePercent > 100 {
			return fmt.Errorf("coverage point %d: percent %.2f out of range", i, p.CoveragePercent)
		}
	}
	for i, r := range s.RecentRuns {
		if r.PassedTests > r.TotalTests {
			return fmt.Errorf("run %d: passed tests (%d) exceeds total (%d)", i, r.PassedTests, r.TotalTests)
		}
		if r.PassedTests < 0 || r.TotalTests < 0 {
			return fmt.Errorf("run %d: negative test counts", i)
		}
	}
	return nil
}

// Normalize sorts coverage points oldest-first and runs newest-first. The
// server is expected to deliver them this way already; sorting here means
// renderers never have to reorder anything.
func (s *DashboardSummary) Normalize() {
	sort.SliceStable(s.RecentCoverage, func(i, j int) bool {
		return s.RecentCoverage[i].Timestamp.Before(s.RecentCoverage[j].Timestamp)
	})
	sort.SliceStable(s.RecentRuns, func(i, j int) bool {
		return s.RecentRuns[i].Timestamp.After(s.RecentRuns[j].Timestamp)
	})
}
