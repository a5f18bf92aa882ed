package service

import (
	"sort"
	"time"

	"github.com/coursehub-dev/coursehub/shared/config"
	"github.com/coursehub-dev/coursehub/shared/domain"
	internal_errors "github.com/coursehub-dev/coursehub/shared/errors"
)

type TrendingService interface {
	Trending(windowDays, limit int) ([]domain.TrendingEntry, error)
}

type TrendingEventStorage interface {
	EventsSince(since time.Time) ([]domain.Event, error)
}

type TrendingThreadStorage interface {
	ThreadsByCourseCodes(codes []domain.CourseCode) ([]domain.Thread, error)
	RecentThreads(limit int) ([]domain.Thread, error)
}

// Trending ranks courses by decay-weighted recent engagement. It is stateless:
// every call recomputes from the event log and thread directory.
type Trending struct {
	events  TrendingEventStorage
	threads TrendingThreadStorage
	cfg     *config.Public
	now     func() time.Time
}

func NewTrending(events TrendingEventStorage, threads TrendingThreadStorage, cfg *config.Public) *Trending {
	return &Trending{events: events, threads: threads, cfg: cfg, now: time.Now}
}

// Trending computes the top courses for the window. Zero or negative
// windowDays/limit fall back to the configured defaults. Storage failures
// surface as DependencyError; an empty window is not an error and degrades to
// the most recently active threads with a neutral score of 1.
func (s *Trending) Trending(windowDays, limit int) ([]domain.TrendingEntry, error) {
	if windowDays <= 0 {
		windowDays = s.cfg.Trending.WindowDays
	}
	if limit <= 0 {
		limit = s.cfg.Trending.Limit
	}

	now := s.now()
	since := now.Add(-time.Duration(windowDays) * 24 * time.Hour)

	events, err := s.events.EventsSince(since)
	if err != nil {
		return nil, &internal_errors.DependencyError{Op: "trending: fetch events", Err: err}
	}

	scores := ScoreEvents(events, now)

	codes := make([]domain.CourseCode, 0, len(scores))
	for code := range scores {
		codes = append(codes, code)
	}
	sort.Strings(codes) // deterministic batch fetch and tie handling

	threads, err := s.threads.ThreadsByCourseCodes(codes)
	if err != nil {
		return nil, &internal_errors.DependencyError{Op: "trending: fetch threads", Err: err}
	}

	entries := make([]domain.TrendingEntry, 0, len(threads))
	for _, t := range threads {
		entries = append(entries, domain.TrendingEntry{
			CourseCode:     t.CourseCode,
			CourseTitle:    t.CourseTitle,
			Score:          scores[t.CourseCode],
			PostsCount:     t.PostsCount,
			LastActivityAt: t.LastActivityAt,
		})
	}

	// Score descending; ties broken by most recent activity. The scorer gives
	// no order for equal scores, so the tie-break must be explicit here.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].LastActivityAt.After(entries[j].LastActivityAt)
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	if len(entries) > 0 {
		return entries, nil
	}

	return s.fallback(limit)
}

// fallback returns the most recently active threads with a neutral score of 1
// so downstream consumers don't render them as dead.
func (s *Trending) fallback(limit int) ([]domain.TrendingEntry, error) {
	threads, err := s.threads.RecentThreads(limit)
	if err != nil {
		return nil, &internal_errors.DependencyError{Op: "trending: fallback fetch", Err: err}
	}
	entries := make([]domain.TrendingEntry, 0, len(threads))
	for _, t := range threads {
		entries = append(entries, domain.TrendingEntry{
			CourseCode:     t.CourseCode,
			CourseTitle:    t.CourseTitle,
			Score:          1,
			PostsCount:     t.PostsCount,
			LastActivityAt: t.LastActivityAt,
		})
	}
	return entries, nil
}
