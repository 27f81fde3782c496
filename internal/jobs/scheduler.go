package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// OrphanCleaner removes uploaded photos that were never attached to a
// listing. The upload service implements it.
type OrphanCleaner interface {
	CleanupOrphans(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	cleaner OrphanCleaner
	log     zerolog.Logger
}

func NewScheduler(cleaner OrphanCleaner, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		cleaner: cleaner,
		log:     log,
	}
}

func (s *Scheduler) Start() error {
	if s.cleaner == nil {
		return nil
	}

	if _, err := s.cron.AddFunc("@daily", s.runCleanup); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	removed, err := s.cleaner.CleanupOrphans(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("orphan photo cleanup failed")
		return
	}
	if removed > 0 {
		s.log.Info().Int("removed", removed).Msg("orphan photos cleaned up")
	}
}
