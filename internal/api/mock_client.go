package api

import (
	"context"
	"fmt"
	"time"
)

// MockClient returns generated summary data so the dashboard can run
// without a verification API behind it (USE_MOCK=true).
type MockClient struct {
	summary *DashboardSummary
}

func NewMockClient() *MockClient {
	c := &MockClient{}
	c.generateMockData()
	return c
}

func (c *MockClient) generateMockData() {
	now := time.Now()

	// Two weeks of coverage climbing from ~72% to ~84%
	var coverage []CoveragePoint
	for i := 13; i >= 0; i-- {
		coverage = append(coverage, CoveragePoint{
			Timestamp:       now.AddDate(0, 0, -i),
			CoveragePercent: 72.0 + float64(13-i)*0.9,
		})
	}

	var runs []RunRecord
	for i := 0; i < 20; i++ {
		status := "passed"
		passed, total := 48, 48
		if i%7 == 0 {
			status = "failed"
			passed = 44
		}
		if i == 11 {
			status = "error"
			passed, total = 0, 0
		}

		run := RunRecord{
			Timestamp:       now.Add(time.Duration(-i*5) * time.Hour),
			Status:          status,
			Trigger:         []string{"file_change", "manual", "schedule"}[i%3],
			PassedTests:     passed,
			TotalTests:      total,
			DurationSeconds: 95 + float64(i%5)*14,
			CommitSHA:       fmt.Sprintf("%07x4b2c81d3e5f6a7b8c9d0e1f2a3b4c5d", i),
		}
		if total > 0 {
			run.PassRate = float64(passed) / float64(total) * 100
		}
		if i%4 != 3 {
			cov := 84.2 - float64(i)*0.3
			run.CoveragePercent = &cov
		}
		runs = append(runs, run)
	}

	c.summary = &DashboardSummary{
		Project: "/home/dev/projects/payments-service",
		Stats: Stats{
			CurrentCoverage:    83.7,
			CoverageTrend:      "up",
			TotalTestRuns:      20,
			SuccessfulRuns:     16,
			FailedRuns:         3,
			SuccessRate:        80,
			AvgDurationSeconds: 123.6,
			AvgPassRate:        95.8,
		},
		RecentCoverage: coverage,
		RecentRuns:     runs,
	}
}

func (c *MockClient) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	return c.summary, nil
}
