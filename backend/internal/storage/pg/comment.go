package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coursehub-dev/coursehub/shared/domain"
	internal_errors "github.com/coursehub-dev/coursehub/shared/errors"
)

// CreateComment inserts a comment and maintains the thread aggregate in the
// same transaction. Root posts increment posts_count; replies only bump
// last_activity_at (replies are deliberately not counted as posts).
func (s *Storage) CreateComment(data domain.CommentCreationData) (domain.Comment, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return domain.Comment{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Round(time.Microsecond) // database anyway rounds to microsecond

	if data.IsRoot() {
		_, err = tx.Exec(`
            INSERT INTO threads (course_code, course_title, posts_count, last_activity_at)
            VALUES ($1, $1, 1, $2)
            ON CONFLICT (course_code) DO UPDATE
                SET posts_count = threads.posts_count + 1, last_activity_at = $2
        `, data.CourseCode, now)
		if err != nil {
			return domain.Comment{}, fmt.Errorf("failed to bump thread for root post: %w", err)
		}
	} else {
		var parentCourse domain.CourseCode
		var parentParent sql.NullInt64
		err = tx.QueryRow(
			"SELECT course_code, parent_id FROM comments WHERE id = $1",
			*data.ParentId,
		).Scan(&parentCourse, &parentParent)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.Comment{}, &internal_errors.ErrorWithStatusCode{
					Message:    "Parent comment not found",
					StatusCode: http.StatusNotFound,
				}
			}
			return domain.Comment{}, fmt.Errorf("failed to validate parent comment: %w", err)
		}
		if parentCourse != data.CourseCode {
			return domain.Comment{}, &internal_errors.ErrorWithStatusCode{
				Message:    "Parent comment not found",
				StatusCode: http.StatusNotFound,
			}
		}
		// replies attach to root posts only, one level deep
		if parentParent.Valid {
			return domain.Comment{}, &internal_errors.ValidationError{Message: "replies cannot be nested"}
		}

		_, err = tx.Exec(
			"UPDATE threads SET last_activity_at = $2 WHERE course_code = $1",
			data.CourseCode, now,
		)
		if err != nil {
			return domain.Comment{}, fmt.Errorf("failed to bump thread for reply: %w", err)
		}
	}

	var id domain.CommentId
	err = tx.QueryRow(`
        INSERT INTO comments (course_code, author_id, author_name, author_avatar, parent_id, text, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `, data.CourseCode, data.Author.Id, data.Author.Username, data.Author.Avatar, data.ParentId, data.Text, now).Scan(&id)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("failed to insert comment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Comment{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return domain.Comment{
		Id:         id,
		CourseCode: data.CourseCode,
		Author:     data.Author,
		Text:       data.Text,
		ParentId:   data.ParentId,
		LikesCount: 0,
		CreatedAt:  now,
	}, nil
}

// ListComments returns one page of a thread's comments. Root posts come
// newest-first; replies to a given parent come oldest-first.
func (s *Storage) ListComments(courseCode domain.CourseCode, parentId *domain.CommentId, page, limit int) (domain.CommentPage, error) {
	var (
		rows *sql.Rows
		err  error
	)
	offset := (page - 1) * limit
	if parentId == nil {
		rows, err = s.db.Query(`
            SELECT id, course_code, author_id, author_name, author_avatar, parent_id, text, likes_count, created_at
            FROM comments
            WHERE course_code = $1 AND parent_id IS NULL
            ORDER BY created_at DESC
            OFFSET $2 LIMIT $3
        `, courseCode, offset, limit)
	} else {
		rows, err = s.db.Query(`
            SELECT id, course_code, author_id, author_name, author_avatar, parent_id, text, likes_count, created_at
            FROM comments
            WHERE course_code = $1 AND parent_id = $2
            ORDER BY created_at ASC
            OFFSET $3 LIMIT $4
        `, courseCode, *parentId, offset, limit)
	}
	if err != nil {
		return domain.CommentPage{}, fmt.Errorf("failed to fetch comments: %w", err)
	}
	defer rows.Close()

	items := []domain.Comment{}
	for rows.Next() {
		var (
			c      domain.Comment
			parent sql.NullInt64
		)
		if err := rows.Scan(
			&c.Id, &c.CourseCode, &c.Author.Id, &c.Author.Username, &c.Author.Avatar,
			&parent, &c.Text, &c.LikesCount, &c.CreatedAt,
		); err != nil {
			return domain.CommentPage{}, fmt.Errorf("failed to scan comment: %w", err)
		}
		if parent.Valid {
			c.ParentId = &parent.Int64
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return domain.CommentPage{}, fmt.Errorf("rows iteration error: %w", err)
	}

	var total int
	if parentId == nil {
		err = s.db.QueryRow(
			"SELECT COUNT(*) FROM comments WHERE course_code = $1 AND parent_id IS NULL",
			courseCode,
		).Scan(&total)
	} else {
		err = s.db.QueryRow(
			"SELECT COUNT(*) FROM comments WHERE course_code = $1 AND parent_id = $2",
			courseCode, *parentId,
		).Scan(&total)
	}
	if err != nil {
		return domain.CommentPage{}, fmt.Errorf("failed to count comments: %w", err)
	}

	return domain.CommentPage{Page: page, PageSize: limit, Total: total, Items: items}, nil
}

// ToggleLike flips the per-user like on a comment and keeps both counters in
// sync inside one transaction. The comment must belong to courseCode; a
// mismatch fails before anything is mutated. The comment_likes primary key
// decides the direction; counter updates are atomic increments, so two
// concurrent likes from different users both land (no read-modify-write on
// the counter).
func (s *Storage) ToggleLike(courseCode domain.CourseCode, commentId domain.CommentId, userId domain.UserId) (domain.LikeResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return domain.LikeResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var storedCourse domain.CourseCode
	err = tx.QueryRow("SELECT course_code FROM comments WHERE id = $1", commentId).Scan(&storedCourse)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.LikeResult{}, &internal_errors.ErrorWithStatusCode{
				Message:    "Comment not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.LikeResult{}, fmt.Errorf("failed to fetch comment: %w", err)
	}
	if storedCourse != courseCode {
		return domain.LikeResult{}, &internal_errors.ErrorWithStatusCode{
			Message:    "Comment not found",
			StatusCode: http.StatusNotFound,
		}
	}

	res, err := tx.Exec(
		"DELETE FROM comment_likes WHERE comment_id = $1 AND user_id = $2",
		commentId, userId,
	)
	if err != nil {
		return domain.LikeResult{}, fmt.Errorf("failed to delete like: %w", err)
	}
	removed, _ := res.RowsAffected()

	delta := 0
	liked := false
	if removed > 0 {
		delta = -1
	} else {
		res, err = tx.Exec(`
            INSERT INTO comment_likes (comment_id, user_id)
            VALUES ($1, $2)
            ON CONFLICT (comment_id, user_id) DO NOTHING
        `, commentId, userId)
		if err != nil {
			return domain.LikeResult{}, fmt.Errorf("failed to insert like: %w", err)
		}
		// inserted == 0 means a concurrent toggle by the same user won; skip
		// the increment so the counter stays consistent with the like set.
		if inserted, _ := res.RowsAffected(); inserted > 0 {
			delta = 1
			liked = true
		} else {
			liked = true
		}
	}

	now := time.Now().UTC().Round(time.Microsecond)
	var likesCount int
	err = tx.QueryRow(`
        UPDATE comments
        SET likes_count = GREATEST(likes_count + $2, 0)
        WHERE id = $1
        RETURNING likes_count
    `, commentId, delta).Scan(&likesCount)
	if err != nil {
		return domain.LikeResult{}, fmt.Errorf("failed to update comment like count: %w", err)
	}

	_, err = tx.Exec(`
        UPDATE threads
        SET likes_count = GREATEST(likes_count + $2, 0), last_activity_at = $3
        WHERE course_code = $1
    `, courseCode, delta, now)
	if err != nil {
		return domain.LikeResult{}, fmt.Errorf("failed to update thread like count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.LikeResult{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return domain.LikeResult{CommentId: commentId, LikesCount: likesCount, Liked: liked}, nil
}
