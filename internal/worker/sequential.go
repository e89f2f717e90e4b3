package worker

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
)

// processSequential runs jobs one at a time, stopping at the first failure.
func processSequential(ctx context.Context, jobs []Options) error {
	for i, job := range jobs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		slog.Info("processing job",
			"job", fmt.Sprintf("%d/%d", i+1, len(jobs)),
			"file", filepath.Base(job.InputPath))

		if err := Run(ctx, job); err != nil {
			return fmt.Errorf("job %d/%d (%s) failed: %w", i+1, len(jobs), filepath.Base(job.InputPath), err)
		}

		slog.Info("job completed", "job", fmt.Sprintf("%d/%d", i+1, len(jobs)))
	}

	return nil
}
