// Package jobs holds the background maintenance tasks run alongside the API.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"centroespirita/internal/domain"
)

const cleanupTimeout = 30 * time.Second

// SessionCleanup periodically deletes refresh sessions past their expiry.
// Revoked sessions are kept until they expire so token-reuse detection
// still works.
type SessionCleanup struct {
	sessions domain.SessionRepository
	logger   *slog.Logger
	cron     *cron.Cron
}

func NewSessionCleanup(sessions domain.SessionRepository, logger *slog.Logger) *SessionCleanup {
	return &SessionCleanup{
		sessions: sessions,
		logger:   logger,
		cron:     cron.New(),
	}
}

// Start schedules the hourly purge and starts the cron scheduler.
func (j *SessionCleanup) Start() error {
	if _, err := j.cron.AddFunc("@hourly", j.run); err != nil {
		return err
	}
	j.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running purge to finish.
func (j *SessionCleanup) Stop() {
	<-j.cron.Stop().Done()
}

func (j *SessionCleanup) run() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	deleted, err := j.sessions.DeleteExpiredBefore(ctx, time.Now())
	if err != nil {
		j.logger.ErrorContext(ctx, "session cleanup failed", "error", err)
		return
	}
	if deleted > 0 {
		j.logger.InfoContext(ctx, "expired sessions purged", "count", deleted)
	}
}
