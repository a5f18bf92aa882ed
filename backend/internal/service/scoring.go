package service

import (
	"math"
	"time"

	"github.com/coursehub-dev/coursehub/shared/domain"
)

// Engagement weights per event kind. Kinds not listed here (join) count for
// the activity feed but contribute nothing to trending.
var eventWeights = map[domain.EventKind]float64{
	domain.EventPost:  3,
	domain.EventReply: 2,
	domain.EventLike:  1,
}

// decay maps an event's age in hours to a weight multiplier in (0, 1]:
// decay(0) == 1, decay(12) == 0.5, asymptotically approaching zero. The hard
// window cutoff happens upstream in the event fetch, not here.
func decay(ageHours float64) float64 {
	return 1 / (1 + ageHours/12)
}

// ScoreEvents folds a window of events into per-course trending scores.
// Deterministic for a fixed event set and now; events without a course code
// are skipped. Scores are rounded to 2 decimals after full-precision
// accumulation.
func ScoreEvents(events []domain.Event, now time.Time) map[domain.CourseCode]float64 {
	scores := make(map[domain.CourseCode]float64)
	for _, e := range events {
		if e.CourseCode == "" {
			continue
		}
		weight, ok := eventWeights[e.Kind]
		if !ok {
			continue
		}
		age := now.Sub(e.OccurredAt).Hours()
		if age < 0 {
			age = 0
		}
		scores[e.CourseCode] += weight * decay(age)
	}
	for code, score := range scores {
		scores[code] = math.Round(score*100) / 100
	}
	return scores
}
