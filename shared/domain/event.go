package domain

import (
	"fmt"
	"time"
)

// EventKind discriminates the engagement event variants. Only the constructors
// below should build events so that each variant carries exactly the fields
// that are meaningful for it.
type EventKind string

const (
	EventPost  EventKind = "post"
	EventReply EventKind = "reply"
	EventLike  EventKind = "like"
	EventJoin  EventKind = "join"
)

func (k EventKind) Valid() bool {
	switch k {
	case EventPost, EventReply, EventLike, EventJoin:
		return true
	}
	return false
}

// Event is one append-only engagement log entry. Rows are immutable: they are
// never updated or deleted once written.
type Event struct {
	Id         EventId    `json:"-"`
	Kind       EventKind  `json:"type"`
	Actor      User       `json:"actor"`
	CourseCode CourseCode `json:"courseCode,omitempty"` // empty for events not tied to a course
	CommentId  *CommentId `json:"-"`
	Message    string     `json:"message"`
	OccurredAt time.Time  `json:"createdAt"`
}

func NewPostEvent(actor User, course CourseCode, commentId CommentId) Event {
	return Event{
		Kind:       EventPost,
		Actor:      actor,
		CourseCode: course,
		CommentId:  &commentId,
		Message:    fmt.Sprintf("%s posted in %s", actor.Username, course),
	}
}

func NewReplyEvent(actor User, course CourseCode, commentId CommentId) Event {
	return Event{
		Kind:       EventReply,
		Actor:      actor,
		CourseCode: course,
		CommentId:  &commentId,
		Message:    fmt.Sprintf("%s replied in %s", actor.Username, course),
	}
}

func NewLikeEvent(actor User, course CourseCode, commentId CommentId) Event {
	name := actor.Username
	if name == "" {
		name = "Someone"
	}
	return Event{
		Kind:       EventLike,
		Actor:      actor,
		CourseCode: course,
		CommentId:  &commentId,
		Message:    fmt.Sprintf("%s liked a post in %s", name, course),
	}
}

func NewJoinEvent(actor User) Event {
	return Event{
		Kind:    EventJoin,
		Actor:   actor,
		Message: fmt.Sprintf("%s joined the community", actor.Username),
	}
}
