package domain

import "time"

// Comment is a single post in a course thread. ParentId is nil for root posts
// and set for replies; replies never nest further than one level.
type Comment struct {
	Id         CommentId  `json:"id"`
	CourseCode CourseCode `json:"courseCode"`
	Author     User       `json:"author"`
	Text       string     `json:"text"`
	ParentId   *CommentId `json:"parentId"`
	LikesCount int        `json:"likesCount"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// to iterate thru layers: handler -> service -> storage
type CommentCreationData struct {
	CourseCode CourseCode
	Author     User
	Text       string
	ParentId   *CommentId
}

func (c *CommentCreationData) IsRoot() bool {
	return c.ParentId == nil
}

// CommentPage is one page of a thread's comments plus paging metadata.
type CommentPage struct {
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
	Total    int       `json:"total"`
	Items    []Comment `json:"items"`
}

// LikeResult is the outcome of a like toggle, returned to the toggling user.
type LikeResult struct {
	CommentId  CommentId `json:"commentId"`
	LikesCount int       `json:"likesCount"`
	Liked      bool      `json:"liked"`
}

// LikeUpdate is the room broadcast for a like toggle. Liked is per-user state
// and deliberately absent here; subscribers only merge the fresh count.
type LikeUpdate struct {
	CommentId  CommentId `json:"commentId"`
	LikesCount int       `json:"likesCount"`
}
