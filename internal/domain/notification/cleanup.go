package notification

import (
	"context"
	"time"
)

// CleanupOlderThan removes sent and failed notifications older than age.
// Drafts and scheduled notifications are never removed.
func (s *Service) CleanupOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	started := s.now()

	deleted, err := s.repo.DeleteOlderThan(ctx, started.Add(-age))
	if err != nil {
		s.log.Error().Err(err).Msg("notification cleanup failed")
		return 0, err
	}

	s.log.Info().
		Int64("deleted", deleted).
		Dur("took", time.Since(started)).
		Msg("notification cleanup completed")
	return deleted, nil
}
