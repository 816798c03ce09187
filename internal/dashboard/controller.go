package dashboard

import (
	"context"
	"html/template"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coverwatch/dashboard/internal/api"
	"github.com/coverwatch/dashboard/internal/charts"
	"github.com/coverwatch/dashboard/internal/view"
)

// Frame is everything one poll cycle produced, ready to serve. A new
// frame replaces the previous one wholesale; nothing is merged or
// mutated in place.
type Frame struct {
	Project       string
	Stats         template.HTML
	CoverageChart template.HTML
	TestsChart    template.HTML
	RunsBody      template.HTML
	RunsCount     int
	LastUpdated   string
	Err           string
}

// Controller owns the poll loop: it fetches the summary on a fixed
// interval, renders the regions in a fixed order and swaps the frame.
type Controller struct {
	client   api.Client
	charts   *charts.Generator
	interval time.Duration

	inFlight atomic.Bool

	mu        sync.RWMutex
	frame     *Frame
	listeners map[chan struct{}]struct{}
}

func NewController(client api.Client, interval time.Duration) *Controller {
	return &Controller{
		client:    client,
		charts:    charts.NewGenerator(),
		interval:  interval,
		listeners: make(map[chan struct{}]struct{}),
	}
}

// Start runs the poll loop until ctx is cancelled. The first cycle fires
// immediately; a failed cycle never stops the ticker.
func (c *Controller) Start(ctx context.Context) {
	log.Printf("Poll: starting, interval %s", c.interval)

	c.Refresh(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Poll: stopping")
			return
		case <-ticker.C:
			c.Refresh(ctx)
		}
	}
}

// Refresh runs one poll cycle. Overlapping cycles are skipped rather than
// stacked: a slow response should not race a second request for the same
// frame.
func (c *Controller) Refresh(ctx context.Context) {
	if !c.inFlight.CompareAndSwap(false, true) {
		log.Println("Poll: previous cycle still in flight, skipping")
		return
	}
	defer c.inFlight.Store(false)

	summary, err := c.client.GetSummary(ctx)
	if err != nil {
		log.Printf("Poll: failed to load summary: %v", err)
		c.swap(c.errorFrame())
		return
	}

	c.swap(c.buildFrame(summary))
}

// buildFrame renders the regions in their fixed order: project label,
// stat cards, coverage chart, test chart, run table, timestamp.
func (c *Controller) buildFrame(s *api.DashboardSummary) *Frame {
	f := &Frame{Project: s.Project}

	spark := make([]float64, len(s.RecentCoverage))
	for i, p := range s.RecentCoverage {
		spark[i] = p.CoveragePercent
	}

	f.Stats = view.RenderStats(s.Stats, c.charts.Sparkline(spark))
	f.CoverageChart = c.charts.CoverageTrendChart(s.RecentCoverage)
	f.TestsChart = c.charts.TestOutcomeChart(s.RecentRuns)
	f.RunsBody, f.RunsCount = view.RenderRuns(s.RecentRuns)
	f.LastUpdated = "Last updated: " + time.Now().Format("Jan 2 15:04:05")

	return f
}

// errorFrame keeps the previous charts and table (possibly stale) and
// replaces only the stat-card region with the fixed error message. The
// timestamp is left as-is: nothing was updated.
func (c *Controller) errorFrame() *Frame {
	f := Frame{}
	if prev := c.Frame(); prev != nil {
		f = *prev
	}
	f.Stats = view.RenderStatsError(view.FetchErrorMessage)
	f.Err = view.FetchErrorMessage
	return &f
}

func (c *Controller) swap(f *Frame) {
	c.mu.Lock()
	c.frame = f
	for ch := range c.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	c.mu.Unlock()
}

// Frame returns the latest rendered frame, or nil before the first cycle
// completes.
func (c *Controller) Frame() *Frame {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.frame
}

// Subscribe registers for a signal after every frame swap. The channel is
// buffered; a slow consumer misses intermediate swaps instead of
// blocking the poll loop.
func (c *Controller) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	c.mu.Lock()
	c.listeners[ch] = struct{}{}
	c.mu.Unlock()
	return ch
}

func (c *Controller) Unsubscribe(ch chan struct{}) {
	c.mu.Lock()
	delete(c.listeners, ch)
	c.mu.Unlock()
}

// Interval is exposed for the page's refresh fallback.
func (c *Controller) Interval() time.Duration {
	return c.interval
}
