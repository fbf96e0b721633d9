// Package scheduler triggers recurring maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job is the work triggered on each tick. It either performs the cleanup or
// enqueues it on the task queue.
type Job func(ctx context.Context) error

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule reports whether schedule is a valid five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// AuditCleanupScheduler runs the audit retention job on a cron schedule.
type AuditCleanupScheduler struct {
	schedule string
	job      Job
	log      logrus.FieldLogger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	isCleaning bool
	ctx        context.Context
}

func NewAuditCleanupScheduler(schedule string, job Job, log logrus.FieldLogger) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		schedule: schedule,
		job:      job,
		log:      log.WithField("component", "audit_cleanup_scheduler"),
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// Start schedules the job. An empty schedule disables the scheduler.
func (s *AuditCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.schedule == "" {
		s.log.Info("Audit cleanup scheduler: disabled")
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.run)
	if err != nil {
		return fmt.Errorf("failed to schedule audit cleanup: %w", err)
	}
	s.entryID = entryID
	s.ctx = ctx

	s.cron.Start()
	s.isRunning = true

	s.log.WithFields(logrus.Fields{
		"schedule": s.schedule,
		"next_run": s.cron.Entry(entryID).Next,
	}).Info("Audit cleanup scheduler: started")

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job and stops the scheduler.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	// a running job takes the lock on exit, so wait without holding it
	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)

	s.log.Info("Audit cleanup scheduler: stopped")
}

func (s *AuditCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the job fires next, or nil when stopped.
func (s *AuditCleanupScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}

// RunNow triggers the job immediately in the caller's goroutine.
func (s *AuditCleanupScheduler) RunNow() {
	s.run()
}

func (s *AuditCleanupScheduler) run() {
	s.mu.Lock()
	if s.isCleaning {
		s.mu.Unlock()
		s.log.Debug("Audit cleanup: skipped (already running)")
		return
	}
	s.isCleaning = true
	ctx := s.ctx
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isCleaning = false
		s.mu.Unlock()
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.job(ctx); err != nil {
		s.log.WithError(err).Error("Audit cleanup failed")
	}
}
