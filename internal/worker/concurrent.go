package worker

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// BatchOptions configures RunBatch.
type BatchOptions struct {
	// Sequential disables concurrent processing.
	Sequential    bool
	MaxConcurrent int
	// JobsPerMin throttles job starts; zero means unlimited.
	JobsPerMin int
}

// RunBatch processes many jobs, concurrently unless disabled or trivial.
func RunBatch(ctx context.Context, jobs []Options, opts BatchOptions) error {
	if len(jobs) == 0 {
		return nil
	}
	if opts.Sequential || opts.MaxConcurrent <= 1 || len(jobs) == 1 {
		return processSequential(ctx, jobs)
	}
	return processConcurrent(ctx, jobs, opts)
}

// processConcurrent processes jobs with bounded parallelism and rate limiting.
func processConcurrent(ctx context.Context, jobs []Options, opts BatchOptions) error {
	slog.Info("starting concurrent processing",
		"jobs", len(jobs),
		"max_concurrent", opts.MaxConcurrent,
		"jobs_per_min", opts.JobsPerMin)

	// Tokens per second = jobs per minute / 60.
	limit := rate.Inf
	if opts.JobsPerMin > 0 {
		limit = rate.Limit(float64(opts.JobsPerMin) / 60.0)
	}
	limiter := rate.NewLimiter(limit, 1)

	var (
		mu   sync.Mutex
		done = make(map[int]bool)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.MaxConcurrent)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return fmt.Errorf("rate limiter: %w", err)
			}

			slog.Info("starting job",
				"job", fmt.Sprintf("%d/%d", i+1, len(jobs)),
				"file", filepath.Base(job.InputPath))

			if err := Run(gctx, job); err != nil {
				return fmt.Errorf("job %d/%d (%s) failed: %w", i+1, len(jobs), filepath.Base(job.InputPath), err)
			}

			mu.Lock()
			done[i] = true
			mu.Unlock()

			slog.Info("job completed", "job", fmt.Sprintf("%d/%d", i+1, len(jobs)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		mu.Lock()
		completed := len(done)
		mu.Unlock()

		if completed > 0 && ctx.Err() == nil {
			slog.Warn("concurrent processing partially failed, falling back to sequential",
				"completed", completed, "total", len(jobs), "err", err)
			return fallbackToSequential(ctx, jobs, done)
		}
		return err
	}

	return nil
}

func fallbackToSequential(ctx context.Context, jobs []Options, done map[int]bool) error {
	slog.Info("falling back to sequential processing for remaining jobs")

	var remaining []Options
	for i, job := range jobs {
		if !done[i] {
			remaining = append(remaining, job)
		}
	}
	return processSequential(ctx, remaining)
}
