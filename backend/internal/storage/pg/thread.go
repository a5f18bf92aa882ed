package pg

import (
	"database/sql"
	"fmt"

	"github.com/coursehub-dev/coursehub/shared/domain"
	"github.com/lib/pq"
)

// GetOrCreateThread returns the per-course aggregate, lazily creating the row
// on first access. The no-op DO UPDATE makes the upsert always return a row.
func (s *Storage) GetOrCreateThread(courseCode domain.CourseCode, courseTitle domain.CourseTitle) (domain.Thread, error) {
	var t domain.Thread
	err := s.db.QueryRow(`
        INSERT INTO threads (course_code, course_title)
        VALUES ($1, COALESCE(NULLIF($2, ''), $1))
        ON CONFLICT (course_code) DO UPDATE SET course_code = EXCLUDED.course_code
        RETURNING course_code, course_title, posts_count, likes_count, last_activity_at
    `, courseCode, courseTitle).Scan(
		&t.CourseCode, &t.CourseTitle, &t.PostsCount, &t.LikesCount, &t.LastActivityAt,
	)
	if err != nil {
		return domain.Thread{}, fmt.Errorf("failed to upsert thread: %w", err)
	}
	return t, nil
}

// ThreadsByCourseCodes resolves aggregates for a set of course codes in one
// query. Codes without a thread row are simply absent from the result.
func (s *Storage) ThreadsByCourseCodes(codes []domain.CourseCode) ([]domain.Thread, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	rows, err := s.db.Query(`
        SELECT course_code, course_title, posts_count, likes_count, last_activity_at
        FROM threads
        WHERE course_code = ANY($1)
        ORDER BY last_activity_at DESC
    `, pq.Array(codes))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch threads by course codes: %w", err)
	}
	defer rows.Close()
	return scanThreads(rows)
}

// RecentThreads returns the most recently active threads directory-wide.
func (s *Storage) RecentThreads(limit int) ([]domain.Thread, error) {
	rows, err := s.db.Query(`
        SELECT course_code, course_title, posts_count, likes_count, last_activity_at
        FROM threads
        ORDER BY last_activity_at DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent threads: %w", err)
	}
	defer rows.Close()
	return scanThreads(rows)
}

func scanThreads(rows *sql.Rows) ([]domain.Thread, error) {
	var threads []domain.Thread
	for rows.Next() {
		var t domain.Thread
		if err := rows.Scan(&t.CourseCode, &t.CourseTitle, &t.PostsCount, &t.LikesCount, &t.LastActivityAt); err != nil {
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		threads = append(threads, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return threads, nil
}
