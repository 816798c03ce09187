package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverwatch/dashboard/internal/api"
	"github.com/coverwatch/dashboard/internal/view"
)

// flakyClient serves a summary until told to fail.
type flakyClient struct {
	summary *api.DashboardSummary
	fail    bool
}

func (c *flakyClient) GetSummary(ctx context.Context) (*api.DashboardSummary, error) {
	if c.fail {
		return nil, errors.New("upstream went away")
	}
	return c.summary, nil
}

func testSummary() *api.DashboardSummary {
	cov := 82.3
	return &api.DashboardSummary{
		Project: "/srv/checkout",
		Stats: api.Stats{
			CurrentCoverage:    82.3,
			CoverageTrend:      "up",
			TotalTestRuns:      10,
			SuccessfulRuns:     9,
			FailedRuns:         1,
			SuccessRate:        90,
			AvgDurationSeconds: 125.4,
			AvgPassRate:        88,
		},
		RecentCoverage: []api.CoveragePoint{
			{Timestamp: time.Now().AddDate(0, 0, -1), CoveragePercent: 81.1},
			{Timestamp: time.Now(), CoveragePercent: 82.3},
		},
		RecentRuns: []api.RunRecord{
			{Timestamp: time.Now(), Status: "passed", Trigger: "file_change",
				PassedTests: 48, TotalTests: 48, PassRate: 100,
				CoveragePercent: &cov, DurationSeconds: 95.2, CommitSHA: "deadbeefcafe1234"},
		},
	}
}

func TestController_Refresh(t *testing.T) {
	client := &flakyClient{summary: testSummary()}
	ctrl := NewController(client, 30*time.Second)

	assert.Nil(t, ctrl.Frame())

	ctrl.Refresh(context.Background())

	frame := ctrl.Frame()
	require.NotNil(t, frame)
	assert.Equal(t, "/srv/checkout", frame.Project)
	assert.Contains(t, string(frame.Stats), "82.3%")
	assert.Contains(t, string(frame.CoverageChart), "Coverage %")
	assert.Contains(t, string(frame.TestsChart), "Passed")
	assert.Contains(t, string(frame.RunsBody), "deadbee")
	assert.Equal(t, 1, frame.RunsCount)
	assert.True(t, strings.HasPrefix(frame.LastUpdated, "Last updated:"))
	assert.Empty(t, frame.Err)
}

func TestController_FetchFailureKeepsStaleRegions(t *testing.T) {
	client := &flakyClient{summary: testSummary()}
	ctrl := NewController(client, 30*time.Second)

	ctrl.Refresh(context.Background())
	good := ctrl.Frame()
	require.NotNil(t, good)

	client.fail = true
	ctrl.Refresh(context.Background())

	frame := ctrl.Frame()
	require.NotNil(t, frame)

	// Stat cards replaced by the fixed error message
	assert.Contains(t, string(frame.Stats), view.FetchErrorMessage)
	assert.Equal(t, view.FetchErrorMessage, frame.Err)

	// Charts, table and timestamp keep their previous content
	assert.Equal(t, good.CoverageChart, frame.CoverageChart)
	assert.Equal(t, good.TestsChart, frame.TestsChart)
	assert.Equal(t, good.RunsBody, frame.RunsBody)
	assert.Equal(t, good.RunsCount, frame.RunsCount)
	assert.Equal(t, good.LastUpdated, frame.LastUpdated)

	// Recovery on the next cycle
	client.fail = false
	ctrl.Refresh(context.Background())
	assert.Empty(t, ctrl.Frame().Err)
}

func TestController_FailureBeforeFirstSuccess(t *testing.T) {
	ctrl := NewController(&flakyClient{fail: true}, 30*time.Second)
	ctrl.Refresh(context.Background())

	frame := ctrl.Frame()
	require.NotNil(t, frame)
	assert.Contains(t, string(frame.Stats), view.FetchErrorMessage)
	assert.Empty(t, frame.CoverageChart)
	assert.Equal(t, 0, frame.RunsCount)
}

func TestController_SubscribeNotifies(t *testing.T) {
	ctrl := NewController(&flakyClient{summary: testSummary()}, 30*time.Second)

	sub := ctrl.Subscribe()
	defer ctrl.Unsubscribe(sub)

	ctrl.Refresh(context.Background())

	select {
	case <-sub:
	default:
		t.Fatal("expected a notification after the frame swap")
	}
}

func TestController_InFlightGuard(t *testing.T) {
	ctrl := NewController(&flakyClient{summary: testSummary()}, 30*time.Second)

	// Simulate a cycle already in flight; Refresh must be a no-op
	ctrl.inFlight.Store(true)
	ctrl.Refresh(context.Background())
	assert.Nil(t, ctrl.Frame())

	ctrl.inFlight.Store(false)
	ctrl.Refresh(context.Background())
	assert.NotNil(t, ctrl.Frame())
}
