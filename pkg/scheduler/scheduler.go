// Package scheduler runs the daily batch refreshes in-process. It stands in
// for the hosted job orchestrator: at-least-once execution, step-level retry
// with backoff, no cross-step ordering guarantees.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

const (
	stepTimeout  = 10 * time.Minute
	retryBase    = 30 * time.Second
	retryRetries = 2 // 3 attempts total
)

// StepFunc is one scheduled unit of work.
type StepFunc func(ctx context.Context) error

// StepResult follows the orchestrator contract for step completions.
type StepResult struct {
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
}

// Scheduler owns the cron entries and their retry policy.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

func New(log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cron: cron.New(),
		log:  log,
	}
}

// Register adds a named step on a cron spec ("0 0 * * *" style).
func (s *Scheduler) Register(name, spec string, fn StepFunc) error {
	_, err := s.cron.AddFunc(spec, func() {
		res := s.runStep(name, fn)
		if res.Success {
			s.log.Info("step succeeded", zap.String("step", name), zap.Time("timestamp", res.Timestamp))
		}
	})
	return err
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop stops scheduling and waits for running steps to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// runStep executes a step with a timeout and capped exponential backoff.
// Retries are the scheduler's concern; step code never retries itself.
func (s *Scheduler) runStep(name string, fn StepFunc) StepResult {
	ctx, cancel := context.WithTimeout(context.Background(), stepTimeout)
	defer cancel()

	start := time.Now()
	backoff := retry.WithMaxRetries(retryRetries, retry.NewExponential(retryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			s.log.Warn("step attempt failed", zap.String("step", name), zap.Error(err))
			return retry.RetryableError(err)
		}
		return nil
	})
	took := time.Since(start)
	if err != nil {
		s.log.Error("step failed after retries",
			zap.String("step", name),
			zap.Duration("took", took),
			zap.Error(err))
		return StepResult{Success: false, Timestamp: time.Now().UTC()}
	}
	s.log.Debug("step finished", zap.String("step", name), zap.Duration("took", took))
	return StepResult{Success: true, Timestamp: time.Now().UTC()}
}
