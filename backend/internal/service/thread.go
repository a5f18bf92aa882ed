package service

import (
	"github.com/coursehub-dev/coursehub/shared/domain"
	internal_errors "github.com/coursehub-dev/coursehub/shared/errors"
)

type ThreadService interface {
	GetOrCreate(courseCode domain.CourseCode, courseTitle domain.CourseTitle) (domain.Thread, error)
	TopThreads(limit int) ([]domain.Thread, error)
}

type ThreadStorage interface {
	GetOrCreateThread(courseCode domain.CourseCode, courseTitle domain.CourseTitle) (domain.Thread, error)
	RecentThreads(limit int) ([]domain.Thread, error)
}

type Thread struct {
	storage ThreadStorage
}

func NewThread(storage ThreadStorage) *Thread {
	return &Thread{storage: storage}
}

// GetOrCreate resolves the per-course thread aggregate, creating it lazily on
// first access. The title falls back to the course code when unknown.
func (s *Thread) GetOrCreate(courseCode domain.CourseCode, courseTitle domain.CourseTitle) (domain.Thread, error) {
	courseCode = domain.NormalizeCourseCode(courseCode)
	if courseCode == "" {
		return domain.Thread{}, &internal_errors.ValidationError{Message: "courseCode is required"}
	}
	return s.storage.GetOrCreateThread(courseCode, courseTitle)
}

func (s *Thread) TopThreads(limit int) ([]domain.Thread, error) {
	threads, err := s.storage.RecentThreads(limit)
	if err != nil {
		return nil, &internal_errors.DependencyError{Op: "threads: fetch top", Err: err}
	}
	return threads, nil
}
