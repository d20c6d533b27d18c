package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"streakboard/internal/habit"
	"streakboard/internal/motivation"
	"streakboard/internal/store"
)

// Refiller tops up a user's motivation queue with a generated batch.
type Refiller struct {
	Store     *store.Store
	Generator motivation.Generator
}

// Refill generates a batch and appends it to the user's queue. It returns the
// number of unserved motivations afterwards.
func (f *Refiller) Refill(ctx context.Context, userID uint64) (int, error) {
	batch, err := f.Generator.Generate(ctx)
	if err != nil {
		return 0, fmt.Errorf("generate batch: %w", err)
	}
	doc, err := f.Store.Update(ctx, userID, TypeMotivationRefill, func(d *habit.Document) error {
		motivation.Refill(d, batch)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return motivation.Remaining(doc), nil
}

type Worker struct {
	ID       string
	Repo     *Repo
	Refiller *Refiller
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time
}

func (w *Worker) Run(ctx context.Context) {
	interval := w.Interval
	if interval <= 0 {
		interval = 800 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := w.RunOnce(ctx); err != nil {
				w.logger().Error("worker claim error", "worker", w.ID, "error", err)
			}
		}
	}
}

// RunOnce claims and handles at most one due job. It reports whether a job
// was claimed.
func (w *Worker) RunOnce(ctx context.Context) (bool, error) {
	job, err := w.Repo.Claim(ctx, w.ID, w.now())
	if err != nil {
		return false, err
	}
	if job == nil {
		return false, nil
	}
	w.handle(ctx, job)
	return true, nil
}

// handle runs one claimed job. Status writes use a context that survives
// cancellation so a job interrupted by shutdown is never left RUNNING.
func (w *Worker) handle(ctx context.Context, job *Job) {
	switch job.Type {
	case TypeMotivationRefill:
		w.handleRefill(ctx, job)
	default:
		w.settle(job, w.Repo.MarkFailed(context.WithoutCancel(ctx), job.ID, "unknown job type"))
	}
}

func (w *Worker) handleRefill(ctx context.Context, job *Job) {
	statusCtx := context.WithoutCancel(ctx)

	n, err := w.Refiller.Refill(ctx, job.UserID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			w.settle(job, w.Repo.MarkDone(statusCtx, job.ID))
		case ctx.Err() != nil:
			// shutdown: hand the job back without spending an attempt
			w.settle(job, w.Repo.RetryLater(statusCtx, job.ID, job.Attempts, w.now(), "interrupted: "+err.Error()))
		default:
			w.logger().Warn("motivation refill failed", "job", job.ID, "user", job.UserID, "error", err)
			w.retry(statusCtx, job, err.Error())
		}
		return
	}

	w.logger().Info("motivation queue refilled", "user", job.UserID, "queued", n)
	w.settle(job, w.Repo.MarkDone(statusCtx, job.ID))
}

func (w *Worker) retry(ctx context.Context, job *Job, errMsg string) {
	attempts := job.Attempts + 1
	if attempts >= job.MaxAttempts {
		w.settle(job, w.Repo.MarkFailed(ctx, job.ID, errMsg))
		return
	}

	w.settle(job, w.Repo.RetryLater(ctx, job.ID, attempts, w.now().Add(Backoff(attempts)), errMsg))
}

func (w *Worker) settle(job *Job, err error) {
	if err != nil {
		w.logger().Error("update job status", "job", job.ID, "error", err)
	}
}

// Backoff doubles per attempt and is capped at ten minutes.
func Backoff(attempts int) time.Duration {
	sec := math.Min(math.Pow(2, float64(attempts)), 600)
	return time.Duration(sec) * time.Second
}

func (w *Worker) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

func (w *Worker) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}
