package setup

import (
	"github.com/coursehub-dev/coursehub/backend/internal/handler"
	"github.com/coursehub-dev/coursehub/backend/internal/service"
	"github.com/coursehub-dev/coursehub/backend/internal/storage/pg"
	"github.com/coursehub-dev/coursehub/backend/internal/ws"
	"github.com/coursehub-dev/coursehub/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	Config      *config.Config
	Storage     *pg.Storage
	Hub         *ws.Hub
	Handler     *handler.Handler
	Broadcaster *service.Broadcaster
}

// SetupDependencies wires the whole graph: storage, fan-out hub, services,
// handler. The hub is constructed here and injected everywhere it is needed;
// nothing reaches for it through a global.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	hub := ws.NewHub()

	activity := service.NewActivity(storage, hub)
	comment := service.NewComment(storage, activity, hub)
	thread := service.NewThread(storage)
	trending := service.NewTrending(storage, storage, &cfg.Public)
	broadcaster := service.NewBroadcaster(trending, hub, &cfg.Public)

	h := handler.New(thread, comment, trending, activity, hub, cfg)

	return &Dependencies{
		Config:      cfg,
		Storage:     storage,
		Hub:         hub,
		Handler:     h,
		Broadcaster: broadcaster,
	}, nil
}
