package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/estatecore/backend/internal/app/repositories"
)

// Scheduler runs the periodic maintenance jobs
type Scheduler struct {
	cron     *cron.Cron
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
}

// NewScheduler creates a Scheduler with its jobs registered but not running
func NewScheduler(userRepo repositories.IUserRepository, logger zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(),
		userRepo: userRepo,
		logger:   logger,
	}

	// Reset tokens expire on their own; this only keeps the table clean.
	if _, err := s.cron.AddFunc("@hourly", s.purgeExpiredResetTokens); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running the registered jobs
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Msg("Maintenance scheduler started")
}

// Stop halts scheduling and waits for a running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("Maintenance scheduler stopped")
}

func (s *Scheduler) purgeExpiredResetTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	purged, err := s.userRepo.PurgeExpiredResetTokens(ctx, time.Now())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to purge expired reset tokens")
		return
	}
	if purged > 0 {
		s.logger.Info().Int64("count", purged).Msg("Purged expired reset tokens")
	}
}
