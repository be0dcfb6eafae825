// Package scheduler runs the service's periodic jobs on a cron schedule.
// Currently a single job: the overdue-task sweep.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/taskhive/taskhive-backend/internal/service"
)

const jobTimeout = 30 * time.Second

type Scheduler struct {
	cron  *cron.Cron
	tasks service.TaskService
	log   zerolog.Logger
}

// New wires the cron runner. overdueSpec is a standard 5-field cron
// expression controlling how often pending tasks are checked against their
// due dates.
func New(tasks service.TaskService, overdueSpec string, logger zerolog.Logger) (*Scheduler, error) {
	l := logger.With().Str("component", "scheduler").Logger()
	s := &Scheduler{
		cron:  cron.New(),
		tasks: tasks,
		log:   l,
	}
	if _, err := s.cron.AddFunc(overdueSpec, s.sweepOverdue); err != nil {
		return nil, fmt.Errorf("invalid overdue sweep spec %q: %w", overdueSpec, err)
	}
	return s, nil
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop halts scheduling and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) sweepOverdue() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.tasks.SweepOverdue(ctx)
	if err != nil {
		// The service already logged details; record the job outcome only.
		s.log.Warn().Err(err).Msg("overdue sweep run failed")
		return
	}
	s.log.Debug().Dur("took", time.Since(start)).Int64("marked", n).Msg("overdue sweep finished")
}
