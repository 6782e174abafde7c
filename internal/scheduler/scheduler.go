// Package scheduler runs the periodic background jobs: the daily
// snapshot pass and the refresh sweep. One goroutine per job; a job
// never overlaps itself because the next tick waits for the previous
// run to return.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// RunFunc executes one job run and returns a human-readable summary.
type RunFunc func(ctx context.Context) (string, error)

// Job is a named periodic task.
type Job struct {
	Name  string
	Every time.Duration
	Run   RunFunc
}

// Status is the last observed outcome of a job.
type Status struct {
	LastRun     time.Time
	LastSummary string
	LastError   string
}

// Scheduler owns the job goroutines and their status registry.
type Scheduler struct {
	logger *logrus.Logger
	jobs   []Job

	mu       sync.Mutex
	statuses map[string]Status

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler(logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		logger:   logger,
		statuses: make(map[string]Status),
	}
}

func (s *Scheduler) Register(job Job) {
	s.jobs = append(s.jobs, job)
	s.mu.Lock()
	s.statuses[job.Name] = Status{}
	s.mu.Unlock()
}

// Start launches every registered job. Each job runs once immediately,
// then on its interval.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.loop(ctx, job)
	}
	s.logger.WithField("jobs", len(s.jobs)).Info("Scheduler.Start")
}

// Stop cancels all job contexts and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.logger.Info("Scheduler.Stop")
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	defer s.wg.Done()

	s.runOnce(ctx, job)

	ticker := time.NewTicker(job.Every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, job)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, job Job) {
	start := time.Now()
	summary, err := job.Run(ctx)

	status := Status{LastRun: start, LastSummary: summary}
	if err != nil {
		status.LastError = err.Error()
		s.logger.WithError(err).WithField("job", job.Name).Error("Scheduler.runOnce.job failed")
	} else {
		s.logger.WithFields(logrus.Fields{
			"job":      job.Name,
			"summary":  summary,
			"duration": time.Since(start).String(),
		}).Info("Scheduler.runOnce.Complete")
	}

	s.mu.Lock()
	s.statuses[job.Name] = status
	s.mu.Unlock()
}

// RunJob triggers a named job out of schedule. Used by the manual sync
// endpoints.
func (s *Scheduler) RunJob(ctx context.Context, name string) error {
	for _, job := range s.jobs {
		if job.Name == name {
			s.runOnce(ctx, job)
			return nil
		}
	}
	return fmt.Errorf("scheduler: unknown job %q", name)
}

// Statuses snapshots the registry for the status endpoint.
func (s *Scheduler) Statuses() map[string]Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Status, len(s.statuses))
	for k, v := range s.statuses {
		out[k] = v
	}
	return out
}
