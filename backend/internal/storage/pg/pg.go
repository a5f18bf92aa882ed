package pg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/coursehub-dev/coursehub/shared/config"
	"github.com/coursehub-dev/coursehub/shared/logger"

	_ "github.com/lib/pq"
)

type Storage struct {
	db  *sql.DB
	cfg *config.Config
}

func New(cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to db")
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("successfully connected to db")
	return &Storage{db, cfg}, nil
}

func Connect(cfg *config.Config) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Private.Pg.Host, cfg.Private.Pg.Port, cfg.Private.Pg.User, cfg.Private.Pg.Password, cfg.Private.Pg.Dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

// StartPeriodicReconciliation repairs counter drift between the thread
// directory and the underlying comments. Counters are maintained incrementally
// inside the mutating transactions; this job only exists as a repair mechanism
// and runs rarely. A zero interval disables it.
func (s *Storage) StartPeriodicReconciliation(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.ReconcileThreadCounters(); err != nil {
					logger.Log.Error("thread counter reconciliation failed", "error", err)
				}
			}
		}
	}()
}

// ReconcileThreadCounters recomputes posts_count and likes_count from the
// comments table for any thread whose counters drifted.
func (s *Storage) ReconcileThreadCounters() error {
	_, err := s.db.Exec(`
        UPDATE threads t
        SET posts_count = a.posts, likes_count = a.likes
        FROM (
            SELECT t2.course_code,
                   COUNT(c.id) FILTER (WHERE c.parent_id IS NULL) AS posts,
                   COALESCE(SUM(c.likes_count), 0) AS likes
            FROM threads t2
            LEFT JOIN comments c ON c.course_code = t2.course_code
            GROUP BY t2.course_code
        ) a
        WHERE a.course_code = t.course_code
          AND (t.posts_count <> a.posts OR t.likes_count <> a.likes)
    `)
	if err != nil {
		return fmt.Errorf("failed to reconcile thread counters: %w", err)
	}
	return nil
}
