package service

import (
	"context"
	"time"

	"github.com/coursehub-dev/coursehub/backend/internal/ws"
	"github.com/coursehub-dev/coursehub/shared/config"
	"github.com/coursehub-dev/coursehub/shared/domain"
	"github.com/coursehub-dev/coursehub/shared/logger"
)

// Broadcaster periodically recomputes the trending ranking and pushes it to
// the lobby. It is an explicitly started task tied to process lifecycle:
// cancel the context and it stops.
type Broadcaster struct {
	trending TrendingService
	hub      Publisher
	cfg      *config.Public
}

func NewBroadcaster(trending TrendingService, hub Publisher, cfg *config.Public) *Broadcaster {
	return &Broadcaster{trending: trending, hub: hub, cfg: cfg}
}

// Start launches the broadcast loop. Each tick is bounded by the broadcast
// interval itself: a computation still running when the deadline passes is
// abandoned (its result discarded) so a slow tick can never stall the next
// one. Failed ticks log and are skipped; the next tick retries naturally.
func (b *Broadcaster) Start(ctx context.Context) {
	interval := b.cfg.Trending.BroadcastInterval
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				b.tick(ctx, interval)
			}
		}
	}()
}

func (b *Broadcaster) tick(ctx context.Context, timeout time.Duration) {
	type result struct {
		entries []domain.TrendingEntry
		err     error
	}
	done := make(chan result, 1)
	go func() {
		entries, err := b.trending.Trending(b.cfg.Trending.WindowDays, b.cfg.Trending.Limit)
		done <- result{entries, err}
	}()

	select {
	case <-ctx.Done():
	case <-time.After(timeout):
		logger.Log.Warn("trending broadcast tick timed out", "timeout", timeout)
	case res := <-done:
		if res.err != nil {
			logger.Log.Error("trending broadcast tick failed", "error", res.err)
			return
		}
		b.hub.Publish(ws.LobbyRoom, ws.EventTrendingUpdate, res.entries)
	}
}
