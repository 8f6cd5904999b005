package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Refresher reloads reference data. catalog.Store satisfies it.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler periodically refreshes the reagent catalog.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	spec      string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewScheduler creates a scheduler that runs refresher on the standard
// five-field cron spec.
func NewScheduler(spec string, refresher Refresher, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:      cron.New(),
		refresher: refresher,
		spec:      spec,
		timeout:   time.Minute,
		logger:    logger,
	}
}

// Start registers the refresh job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.refreshCatalog); err != nil {
		return fmt.Errorf("schedule catalog refresh %q: %w", s.spec, err)
	}

	s.logger.Info("starting scheduler", zap.String("catalog_refresh", s.spec))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) refreshCatalog() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.refresher.Refresh(ctx); err != nil {
		s.logger.Error("scheduled catalog refresh failed", zap.Error(err))
		return
	}
	s.logger.Debug("scheduled catalog refresh completed")
}
