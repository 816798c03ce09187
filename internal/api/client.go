package api

import "context"

// Client fetches dashboard summaries from the verification API.
type Client interface {
	GetSummary(ctx context.Context) (*DashboardSummary, error)
}
