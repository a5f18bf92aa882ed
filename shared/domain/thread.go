package domain

import "time"

// Thread is the per-course discussion aggregate. Courses map 1:1 to threads;
// the row is created lazily on first access and its counters are maintained in
// the same transaction as the comment/like mutation they mirror.
//
// Invariants:
//   - PostsCount == number of root comments for the course (replies excluded).
//   - LikesCount == sum of like counts across all comments, never negative.
type Thread struct {
	CourseCode     CourseCode  `json:"courseCode"`
	CourseTitle    CourseTitle `json:"courseTitle"`
	PostsCount     int         `json:"postsCount"`
	LikesCount     int         `json:"likesCount"`
	LastActivityAt time.Time   `json:"lastActivityAt"`
}
