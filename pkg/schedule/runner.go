package schedule

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mscrnt/project_bottleneck/pkg/analyzer"
	"github.com/mscrnt/project_bottleneck/pkg/db"
	"github.com/robfig/cron/v3"
)

// DefaultStopTimeout bounds how long Stop waits for a running job
const DefaultStopTimeout = 2 * time.Minute

// Job is one scheduled unit of work
type Job func(ctx context.Context) error

// Saver stores completed analyses
type Saver interface {
	SaveAnalysis(a *db.Analysis, recs []*db.Recommendation) error
}

// AnalysisJob analyzes the machine and saves the result together with an
// upgrade recommendation for every component
func AnalysisJob(a *analyzer.Analyzer, store Saver, logger *log.Logger) Job {
	if logger == nil {
		logger = log.Default()
	}
	return func(ctx context.Context) error {
		res := a.Analyze(ctx)

		recs, err := a.Recommend(res.Snapshot, analyzer.All)
		if err != nil {
			return err
		}

		record := db.NewAnalysis(res)
		if err := store.SaveAnalysis(record, db.NewRecommendations(recs)); err != nil {
			return fmt.Errorf("failed to save analysis: %w", err)
		}

		logger.Printf("[SCHEDULE] saved analysis %d: %s", record.ID, res.Verdict.Label)
		return nil
	}
}

// Runner manages scheduled analyses
type Runner struct {
	cron        *cron.Cron
	jobs        map[string]cron.EntryID
	mu          sync.Mutex
	logger      *log.Logger
	stopTimeout time.Duration
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewRunner creates a new schedule runner. A job still running when its
// next activation comes up is skipped, and panics are recovered and logged.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	cronLogger := cron.PrintfLogger(logger)

	return &Runner{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		jobs:        make(map[string]cron.EntryID),
		logger:      logger,
		stopTimeout: DefaultStopTimeout,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// SetStopTimeout changes how long Stop waits for running jobs
func (r *Runner) SetStopTimeout(d time.Duration) {
	r.stopTimeout = d
}

// Add registers job under name. An existing job with the same name is
// replaced.
func (r *Runner) Add(name, expr string, job Job) error {
	if _, err := Parse(expr); err != nil {
		return err
	}

	entryID, err := r.cron.AddFunc(expr, r.wrap(name, job))
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	r.mu.Lock()
	if old, exists := r.jobs[name]; exists {
		r.cron.Remove(old)
	}
	r.jobs[name] = entryID
	r.mu.Unlock()

	r.logger.Printf("[SCHEDULE] registered %q with cron expression: %s", name, expr)
	return nil
}

// Remove unregisters a job
func (r *Runner) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entryID, exists := r.jobs[name]; exists {
		r.cron.Remove(entryID)
		delete(r.jobs, name)
		r.logger.Printf("[SCHEDULE] unregistered %q", name)
	}
}

// wrap runs job synchronously so SkipIfStillRunning sees it as busy.
// Errors are logged and never stop the scheduler.
func (r *Runner) wrap(name string, job Job) func() {
	return func() {
		select {
		case <-r.ctx.Done():
			return
		default:
		}

		start := time.Now()
		if err := job(r.ctx); err != nil {
			r.logger.Printf("[SCHEDULE] job %q failed: %v", name, err)
			return
		}
		r.logger.Printf("[SCHEDULE] job %q completed in %s", name, time.Since(start).Round(time.Millisecond))
	}
}

// Start starts the scheduler
func (r *Runner) Start() {
	r.cron.Start()
	r.logger.Printf("[SCHEDULE] started with %d jobs", r.Len())
}

// Stop stops the scheduler and waits, up to the stop timeout, for a
// running job to finish
func (r *Runner) Stop() {
	r.cancel()
	ctx := r.cron.Stop()

	select {
	case <-ctx.Done():
		r.logger.Println("[SCHEDULE] all jobs completed")
	case <-time.After(r.stopTimeout):
		r.logger.Println("[SCHEDULE] timeout waiting for jobs to complete")
	}
}

// Len returns the number of registered jobs
func (r *Runner) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}

// ListJobs returns information about all scheduled jobs
func (r *Runner) ListJobs() []cron.Entry {
	return r.cron.Entries()
}
