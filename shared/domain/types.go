package domain

import "strings"

type (
	UserId   = int64
	Username = string

	CourseCode  = string
	CourseTitle = string

	CommentId = int64
	EventId   = int64

	CommentText = string
)

// NormalizeCourseCode canonicalizes user-supplied course codes ("cs101 " -> "CS101")
// so that thread lookups, room names and score buckets all agree on one key.
func NormalizeCourseCode(code CourseCode) CourseCode {
	return strings.ToUpper(strings.TrimSpace(code))
}
