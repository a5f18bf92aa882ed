package service

import (
	"math"
	"testing"
	"time"

	"github.com/coursehub-dev/coursehub/shared/domain"
)

func TestDecay(t *testing.T) {
	testCases := []struct {
		ageHours float64
		expected float64
	}{
		{0, 1},
		{12, 0.5},
		{24, 1.0 / 3},
		{36, 0.25},
	}

	for _, tc := range testCases {
		got := decay(tc.ageHours)
		if math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("decay(%v) = %v, expected %v", tc.ageHours, got, tc.expected)
		}
	}

	// Monotonicity: older events always weigh less.
	prev := decay(0)
	for h := 1.0; h <= 168; h++ {
		cur := decay(h)
		if cur >= prev {
			t.Fatalf("decay not strictly decreasing at %v hours", h)
		}
		prev = cur
	}
}

func TestScoreEvents(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	actor := domain.User{Id: 1, Username: "alice"}
	commentId := domain.CommentId(1)

	at := func(age time.Duration, e domain.Event) domain.Event {
		e.OccurredAt = now.Add(-age)
		return e
	}

	events := []domain.Event{
		at(0, domain.NewPostEvent(actor, "CS101", commentId)),
		at(12*time.Hour, domain.NewReplyEvent(actor, "CS101", commentId)),
		at(24*time.Hour, domain.NewLikeEvent(actor, "CS101", commentId)),
		at(24*time.Hour, domain.NewLikeEvent(actor, "CS102", commentId)),
	}

	scores := ScoreEvents(events, now)

	// CS101: 3*1 + 2*0.5 + 1*(1/3) = 4.3333 -> 4.33
	if scores["CS101"] != 4.33 {
		t.Errorf("CS101 score = %v, expected 4.33", scores["CS101"])
	}
	// CS102: 1*(1/3) = 0.3333 -> 0.33
	if scores["CS102"] != 0.33 {
		t.Errorf("CS102 score = %v, expected 0.33", scores["CS102"])
	}
}

func TestScoreEventsDecayedMix(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	actor := domain.User{Id: 1, Username: "alice"}
	commentId := domain.CommentId(1)

	post1 := domain.NewPostEvent(actor, "CS101", commentId)
	post1.OccurredAt = now.Add(-time.Hour)
	like1 := domain.NewLikeEvent(actor, "CS101", commentId)
	like1.OccurredAt = now.Add(-time.Hour)
	post2 := domain.NewPostEvent(actor, "CS102", commentId)
	post2.OccurredAt = now.Add(-100 * time.Hour)

	scores := ScoreEvents([]domain.Event{post1, like1, post2}, now)

	// CS101: (3+1) * 1/(1+1/12) = 4 * 12/13 = 3.6923 -> 3.69
	if scores["CS101"] != 3.69 {
		t.Errorf("CS101 score = %v, expected 3.69", scores["CS101"])
	}
	// CS102: 3 * 1/(1+100/12) = 3 * 12/112 = 0.3214 -> 0.32
	if scores["CS102"] != 0.32 {
		t.Errorf("CS102 score = %v, expected 0.32", scores["CS102"])
	}
}

func TestScoreEventsMonotonicInEventCount(t *testing.T) {
	now := time.Now()
	actor := domain.User{Id: 1, Username: "alice"}

	var events []domain.Event
	prev := 0.0
	for i := 0; i < 30; i++ {
		e := domain.NewLikeEvent(actor, "CS101", domain.CommentId(i+1))
		e.OccurredAt = now.Add(-time.Duration(i*3) * time.Hour)
		events = append(events, e)

		score := ScoreEvents(events, now)["CS101"]
		if score < prev {
			t.Fatalf("adding an event lowered the score: %v -> %v after %d events", prev, score, i+1)
		}
		prev = score
	}
}

func TestScoreEventsSkipsUnscorable(t *testing.T) {
	now := time.Now()
	actor := domain.User{Id: 1, Username: "alice"}
	commentId := domain.CommentId(1)

	join := domain.NewJoinEvent(actor)
	join.OccurredAt = now

	unweighted := domain.NewJoinEvent(actor)
	unweighted.CourseCode = "CS101"
	unweighted.OccurredAt = now

	like := domain.NewLikeEvent(actor, "CS101", commentId)
	like.OccurredAt = now

	scores := ScoreEvents([]domain.Event{join, unweighted, like}, now)

	if len(scores) != 1 {
		t.Fatalf("expected 1 scored course, got %d", len(scores))
	}
	if scores["CS101"] != 1 {
		t.Errorf("CS101 score = %v, expected 1 (join events must not contribute)", scores["CS101"])
	}
}

func TestScoreEventsClampsFutureEvents(t *testing.T) {
	now := time.Now()
	actor := domain.User{Id: 1, Username: "alice"}
	commentId := domain.CommentId(1)

	e := domain.NewPostEvent(actor, "CS101", commentId)
	e.OccurredAt = now.Add(time.Hour) // clock skew

	scores := ScoreEvents([]domain.Event{e}, now)
	if scores["CS101"] != 3 {
		t.Errorf("future event score = %v, expected full weight 3", scores["CS101"])
	}
}

func TestScoreEventsDeterministic(t *testing.T) {
	now := time.Now()
	actor := domain.User{Id: 1, Username: "alice"}
	commentId := domain.CommentId(1)

	var events []domain.Event
	for i := 0; i < 50; i++ {
		e := domain.NewReplyEvent(actor, "CS101", commentId)
		e.OccurredAt = now.Add(-time.Duration(i) * time.Hour)
		events = append(events, e)
	}

	first := ScoreEvents(events, now)
	for i := 0; i < 10; i++ {
		again := ScoreEvents(events, now)
		if again["CS101"] != first["CS101"] {
			t.Fatalf("score not deterministic: %v vs %v", again["CS101"], first["CS101"])
		}
	}
}
