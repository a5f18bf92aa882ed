package handler

import (
	"fmt"
	"strconv"

	"github.com/coursehub-dev/coursehub/backend/internal/service"
	"github.com/coursehub-dev/coursehub/backend/internal/ws"
	"github.com/coursehub-dev/coursehub/shared/config"
)

type Handler struct {
	thread   service.ThreadService
	comment  service.CommentService
	trending service.TrendingService
	activity service.ActivityService
	hub      *ws.Hub
	cfg      *config.Config
}

func New(
	thread service.ThreadService,
	comment service.CommentService,
	trending service.TrendingService,
	activity service.ActivityService,
	hub *ws.Hub,
	cfg *config.Config,
) *Handler {
	return &Handler{thread, comment, trending, activity, hub, cfg}
}

func parseIntParam(raw, name string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}
