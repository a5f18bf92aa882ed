package service

import (
	"fmt"

	"github.com/coursehub-dev/coursehub/backend/internal/ws"
	"github.com/coursehub-dev/coursehub/shared/domain"
	internal_errors "github.com/coursehub-dev/coursehub/shared/errors"
)

// Publisher is the fan-out surface the services need. Satisfied by *ws.Hub;
// kept narrow so tests can record pushes.
type Publisher interface {
	Publish(room, event string, data any)
}

type ActivityService interface {
	Record(e domain.Event) (domain.Event, error)
	Recent(limit int) ([]domain.Event, error)
}

type ActivityStorage interface {
	AppendEvent(e domain.Event) (domain.Event, error)
	RecentEvents(limit int) ([]domain.Event, error)
}

// Activity appends engagement events to the log and mirrors each one into the
// lobby room so connected dashboards update live.
type Activity struct {
	storage ActivityStorage
	hub     Publisher
}

func NewActivity(storage ActivityStorage, hub Publisher) *Activity {
	return &Activity{storage: storage, hub: hub}
}

func (s *Activity) Record(e domain.Event) (domain.Event, error) {
	if !e.Kind.Valid() {
		return domain.Event{}, &internal_errors.ValidationError{Message: fmt.Sprintf("unknown event kind %q", e.Kind)}
	}
	stored, err := s.storage.AppendEvent(e)
	if err != nil {
		return domain.Event{}, fmt.Errorf("failed to record activity: %w", err)
	}
	s.hub.Publish(ws.LobbyRoom, ws.EventActivity, stored)
	return stored, nil
}

func (s *Activity) Recent(limit int) ([]domain.Event, error) {
	events, err := s.storage.RecentEvents(limit)
	if err != nil {
		return nil, &internal_errors.DependencyError{Op: "activity: fetch recent", Err: err}
	}
	return events, nil
}
