package domain

import "time"

// TrendingEntry is a derived ranking row. It is computed on demand from the
// event log and thread directory and never persisted.
type TrendingEntry struct {
	CourseCode     CourseCode  `json:"courseCode"`
	CourseTitle    CourseTitle `json:"courseTitle"`
	Score          float64     `json:"score"`
	PostsCount     int         `json:"postsCount"`
	LastActivityAt time.Time   `json:"lastActivityAt"`
}
