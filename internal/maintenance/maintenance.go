// Package maintenance runs periodic housekeeping next to the HTTP server.
package maintenance

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Job is one periodic task. It runs once at start and then every Every.
type Job struct {
	Name  string
	Every time.Duration
	Run   func(ctx context.Context) error
}

type Runner struct {
	jobs []Job
	log  *zap.Logger
}

func NewRunner(log *zap.Logger, jobs ...Job) *Runner {
	return &Runner{jobs: jobs, log: log}
}

// Run blocks until ctx is cancelled. A failing run is logged and retried on
// the next tick.
func (r *Runner) Run(ctx context.Context) error {
	for _, job := range r.jobs {
		if job.Every <= 0 {
			return fmt.Errorf("job %s: interval must be positive", job.Name)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, job := range r.jobs {
		g.Go(func() error {
			r.loop(ctx, job)
			return nil
		})
	}
	return g.Wait()
}

func (r *Runner) loop(ctx context.Context, job Job) {
	ticker := time.NewTicker(job.Every)
	defer ticker.Stop()

	for {
		r.runOnce(ctx, job)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (r *Runner) runOnce(ctx context.Context, job Job) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("maintenance job panicked", zap.String("job", job.Name), zap.Any("panic", p))
		}
	}()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		r.log.Warn("maintenance job failed", zap.String("job", job.Name), zap.Error(err))
		return
	}
	r.log.Debug("maintenance job finished", zap.String("job", job.Name), zap.Duration("took", time.Since(start)))
}

// LogPurger deletes audit entries older than a cutoff.
type LogPurger interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// AdminLogCleanup removes admin_logs entries older than retention, once a day.
func AdminLogCleanup(logs LogPurger, retention time.Duration, log *zap.Logger) Job {
	return Job{
		Name:  "admin_log_cleanup",
		Every: 24 * time.Hour,
		Run: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()

			cutoff := time.Now().UTC().Add(-retention)
			n, err := logs.DeleteOlderThan(ctx, cutoff)
			if err != nil {
				return err
			}
			log.Info("old admin logs deleted", zap.Int64("deleted", n), zap.Time("cutoff", cutoff))
			return nil
		},
	}
}

// Sweeper drops idle state; the rate limiter implements it.
type Sweeper interface {
	Sweep() int
}

func RateLimiterSweep(s Sweeper) Job {
	return Job{
		Name:  "rate_limiter_sweep",
		Every: 5 * time.Minute,
		Run: func(context.Context) error {
			s.Sweep()
			return nil
		},
	}
}
