package api

import "github.com/coursehub-dev/coursehub/shared/domain"

// Request DTOs

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// Response DTOs

type ThreadResponse struct {
	domain.Thread
}

type TrendingResponse []domain.TrendingEntry

type ActivityResponse []domain.Event

// DashboardResponse bundles everything the community dashboard renders in one
// round trip.
type DashboardResponse struct {
	Trending   []domain.TrendingEntry `json:"trending"`
	Activity   []domain.Event         `json:"activity"`
	TopThreads []domain.Thread        `json:"topThreads"`
}
