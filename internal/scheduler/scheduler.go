// Package scheduler drives the recurring ingestion cycle. One cycle is the
// feed pipeline followed by the enrichment stage, the same order an operator
// would run them by hand.
package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/catalog-ingest-api/internal/config"
	"github.com/catalog-ingest-api/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler triggers pipeline cycles on a cron expression
type Scheduler struct {
	ingest     service.IngestService
	enrich     service.EnrichService
	cron       *cron.Cron
	spec       string
	runOnStart bool
	log        zerolog.Logger
}

// New creates a scheduler. It does nothing until Start is called.
func New(ingest service.IngestService, enrich service.EnrichService, cfg config.SchedulerConfig, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		ingest:     ingest,
		enrich:     enrich,
		cron:       cron.New(),
		spec:       cfg.CronSpec,
		runOnStart: cfg.RunOnStart,
		log:        log.With().Str("component", "scheduler").Logger(),
	}
}

// Start registers the cron entry and, if configured, fires an immediate
// first cycle in the background.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.RunCycle); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", s.spec, err)
	}
	s.cron.Start()

	s.log.Info().Str("spec", s.spec).Bool("run_on_start", s.runOnStart).
		Msg("Scheduler started")

	if s.runOnStart {
		go s.RunCycle()
	}
	return nil
}

// Stop halts the cron loop and waits for a running cycle's trigger to return
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("Scheduler stopped")
}

// RunCycle executes one ingestion cycle. Overlapping triggers are dropped:
// when the previous cycle is still running this one logs and returns. A
// failed ingestion still runs enrichment, matching manual operation.
func (s *Scheduler) RunCycle() {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("Cycle panicked")
		}
	}()

	ctx := context.Background()

	_, err := s.ingest.Run(ctx)
	if errors.Is(err, service.ErrRunInProgress) {
		s.log.Warn().Msg("Previous cycle still running, trigger dropped")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Ingestion failed")
	}

	if _, err := s.enrich.Run(ctx); err != nil {
		s.log.Error().Err(err).Msg("Enrichment failed")
	}
}
