package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a periodic task: a pure function of the trigger time plus whatever
// state its closure carries. Any scheduler (this runner, a cron trigger, or a
// test) can invoke one directly.
type Job func(ctx context.Context, now time.Time) error

type job struct {
	name     string
	interval time.Duration
	run      Job

	// mu enforces at-most-one concurrent run per job. A tick that finds the
	// previous run still in flight is skipped, not queued.
	mu sync.Mutex
}

// Runner executes registered jobs on independent schedules. Different jobs
// are unordered with respect to each other.
type Runner struct {
	jobs   []*job
	logger *slog.Logger
}

// NewRunner creates an empty runner.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{logger: logger}
}

// Register adds a named periodic job. Must be called before Start.
func (r *Runner) Register(name string, interval time.Duration, fn Job) {
	r.jobs = append(r.jobs, &job{name: name, interval: interval, run: fn})
}

// Start launches one goroutine per job. Each job runs once immediately and
// then on every tick until ctx is cancelled.
func (r *Runner) Start(ctx context.Context) {
	for _, j := range r.jobs {
		go r.loop(ctx, j)
		r.logger.Info("Scheduled job started",
			slog.String("job", j.name),
			slog.Duration("interval", j.interval),
		)
	}
}

func (r *Runner) loop(ctx context.Context, j *job) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	r.RunOnce(ctx, j.name, time.Now())

	for {
		select {
		case now := <-ticker.C:
			r.RunOnce(ctx, j.name, now)
		case <-ctx.Done():
			r.logger.Info("Scheduled job stopped", slog.String("job", j.name))
			return
		}
	}
}

// RunOnce triggers a single run of the named job, honoring the per-job
// serialization guard. Unknown names are ignored.
func (r *Runner) RunOnce(ctx context.Context, name string, now time.Time) {
	for _, j := range r.jobs {
		if j.name != name {
			continue
		}
		if !j.mu.TryLock() {
			r.logger.Warn("Previous run still in flight, skipping tick", slog.String("job", j.name))
			return
		}
		start := time.Now()
		err := j.run(ctx, now)
		j.mu.Unlock()

		if err != nil {
			// Failed runs are retried on the next scheduled trigger only.
			r.logger.Error("Job run failed",
				slog.String("job", j.name),
				slog.Duration("elapsed", time.Since(start)),
				slog.String("error", err.Error()),
			)
			return
		}
		r.logger.Info("Job run completed",
			slog.String("job", j.name),
			slog.Duration("elapsed", time.Since(start)),
		)
		return
	}
}
