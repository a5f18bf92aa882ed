package pg

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/coursehub-dev/coursehub/shared/domain"
)

// AppendEvent writes one row to the append-only engagement log and returns the
// stored event with its id and timestamp filled in.
func (s *Storage) AppendEvent(e domain.Event) (domain.Event, error) {
	var course sql.NullString
	if e.CourseCode != "" {
		course = sql.NullString{String: e.CourseCode, Valid: true}
	}
	var comment sql.NullInt64
	if e.CommentId != nil {
		comment = sql.NullInt64{Int64: *e.CommentId, Valid: true}
	}

	err := s.db.QueryRow(`
        INSERT INTO events (kind, actor_id, actor_name, actor_avatar, course_code, comment_id, message)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, occurred_at
    `, e.Kind, e.Actor.Id, e.Actor.Username, e.Actor.Avatar, course, comment, e.Message).Scan(&e.Id, &e.OccurredAt)
	if err != nil {
		return domain.Event{}, fmt.Errorf("failed to append event: %w", err)
	}
	return e, nil
}

// RecentEvents returns the newest events for the activity feed, newest first.
func (s *Storage) RecentEvents(limit int) ([]domain.Event, error) {
	rows, err := s.db.Query(`
        SELECT id, kind, actor_id, actor_name, actor_avatar, course_code, comment_id, message, occurred_at
        FROM events
        ORDER BY occurred_at DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// EventsSince returns every event inside the trailing scoring window. Events
// older than the boundary are excluded entirely, not merely decayed.
func (s *Storage) EventsSince(since time.Time) ([]domain.Event, error) {
	rows, err := s.db.Query(`
        SELECT id, kind, actor_id, actor_name, actor_avatar, course_code, comment_id, message, occurred_at
        FROM events
        WHERE occurred_at >= $1
        ORDER BY occurred_at
    `, since)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events since %s: %w", since, err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]domain.Event, error) {
	var events []domain.Event
	for rows.Next() {
		var (
			e       domain.Event
			course  sql.NullString
			comment sql.NullInt64
		)
		if err := rows.Scan(
			&e.Id, &e.Kind, &e.Actor.Id, &e.Actor.Username, &e.Actor.Avatar,
			&course, &comment, &e.Message, &e.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if course.Valid {
			e.CourseCode = course.String
		}
		if comment.Valid {
			e.CommentId = &comment.Int64
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return events, nil
}
