package service

import (
	"fmt"
	"strings"

	"github.com/coursehub-dev/coursehub/backend/internal/ws"
	"github.com/coursehub-dev/coursehub/shared/domain"
	internal_errors "github.com/coursehub-dev/coursehub/shared/errors"
	"github.com/microcosm-cc/bluemonday"
)

type CommentService interface {
	CreatePost(courseCode domain.CourseCode, author domain.User, text string) (domain.Comment, error)
	CreateReply(courseCode domain.CourseCode, parentId domain.CommentId, author domain.User, text string) (domain.Comment, error)
	ToggleLike(courseCode domain.CourseCode, commentId domain.CommentId, user domain.User) (domain.LikeResult, error)
	List(courseCode domain.CourseCode, parentId *domain.CommentId, page, limit int) (domain.CommentPage, error)
}

type CommentStorage interface {
	CreateComment(data domain.CommentCreationData) (domain.Comment, error)
	ListComments(courseCode domain.CourseCode, parentId *domain.CommentId, page, limit int) (domain.CommentPage, error)
	ToggleLike(courseCode domain.CourseCode, commentId domain.CommentId, userId domain.UserId) (domain.LikeResult, error)
}

// Comment drives the whole write path for a thread: the comment insert with
// its aggregate bump (storage transaction), the activity log entry, and the
// fan-out push to the thread room.
type Comment struct {
	storage  CommentStorage
	activity ActivityService
	hub      Publisher
	policy   *bluemonday.Policy
}

func NewComment(storage CommentStorage, activity ActivityService, hub Publisher) *Comment {
	return &Comment{
		storage:  storage,
		activity: activity,
		hub:      hub,
		policy:   bluemonday.StrictPolicy(),
	}
}

// cleanText strips all markup and surrounding whitespace.
func (s *Comment) cleanText(text string) string {
	return strings.TrimSpace(s.policy.Sanitize(text))
}

func (s *Comment) CreatePost(courseCode domain.CourseCode, author domain.User, text string) (domain.Comment, error) {
	courseCode = domain.NormalizeCourseCode(courseCode)
	text = s.cleanText(text)
	if text == "" {
		return domain.Comment{}, &internal_errors.ValidationError{Message: "text is required"}
	}

	comment, err := s.storage.CreateComment(domain.CommentCreationData{
		CourseCode: courseCode,
		Author:     author,
		Text:       text,
	})
	if err != nil {
		return domain.Comment{}, err
	}

	if _, err := s.activity.Record(domain.NewPostEvent(author, courseCode, comment.Id)); err != nil {
		return domain.Comment{}, fmt.Errorf("post created but activity recording failed: %w", err)
	}

	s.hub.Publish(ws.ThreadRoom(courseCode), ws.EventNewPost, comment)
	return comment, nil
}

func (s *Comment) CreateReply(courseCode domain.CourseCode, parentId domain.CommentId, author domain.User, text string) (domain.Comment, error) {
	courseCode = domain.NormalizeCourseCode(courseCode)
	text = s.cleanText(text)
	if text == "" {
		return domain.Comment{}, &internal_errors.ValidationError{Message: "text is required"}
	}

	comment, err := s.storage.CreateComment(domain.CommentCreationData{
		CourseCode: courseCode,
		Author:     author,
		Text:       text,
		ParentId:   &parentId,
	})
	if err != nil {
		return domain.Comment{}, err
	}

	if _, err := s.activity.Record(domain.NewReplyEvent(author, courseCode, comment.Id)); err != nil {
		return domain.Comment{}, fmt.Errorf("reply created but activity recording failed: %w", err)
	}

	s.hub.Publish(ws.ThreadRoom(courseCode), ws.EventNewReply, comment)
	return comment, nil
}

// ToggleLike flips the caller's like on a comment. The storage layer rejects
// comments outside courseCode before mutating anything. Only the
// unliked->liked transition produces an activity event; the push happens in
// both directions so clients can merge the fresh count. The caller's personal
// liked flag stays in the HTTP response and out of the room broadcast.
func (s *Comment) ToggleLike(courseCode domain.CourseCode, commentId domain.CommentId, user domain.User) (domain.LikeResult, error) {
	courseCode = domain.NormalizeCourseCode(courseCode)

	result, err := s.storage.ToggleLike(courseCode, commentId, user.Id)
	if err != nil {
		return domain.LikeResult{}, err
	}

	if result.Liked {
		if _, err := s.activity.Record(domain.NewLikeEvent(user, courseCode, commentId)); err != nil {
			return domain.LikeResult{}, fmt.Errorf("like stored but activity recording failed: %w", err)
		}
	}

	s.hub.Publish(ws.ThreadRoom(courseCode), ws.EventLikeUpdate, domain.LikeUpdate{
		CommentId:  result.CommentId,
		LikesCount: result.LikesCount,
	})
	return result, nil
}

func (s *Comment) List(courseCode domain.CourseCode, parentId *domain.CommentId, page, limit int) (domain.CommentPage, error) {
	courseCode = domain.NormalizeCourseCode(courseCode)
	return s.storage.ListComments(courseCode, parentId, page, limit)
}
