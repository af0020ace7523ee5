package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"locallibrary/internal/tasks"
)

// AuditCleaner deletes audit events older than the retention period.
// Implemented by internal/database/audit.Repository.
type AuditCleaner interface {
	DeleteOldEvents(retention time.Duration) (int64, error)
}

// AuditCleanupScheduler enqueues an audit-retention sweep on a cron
// schedule. When no task queue is available the sweep runs inline.
type AuditCleanupScheduler struct {
	cleaner       AuditCleaner
	taskClient    *tasks.Client
	schedule      string
	retentionDays int

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewAuditCleanupScheduler creates a new scheduler instance. taskClient
// may be nil.
func NewAuditCleanupScheduler(cleaner AuditCleaner, taskClient *tasks.Client, schedule string, retentionDays int) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		cleaner:       cleaner,
		taskClient:    taskClient,
		schedule:      schedule,
		retentionDays: retentionDays,
		cron:          cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *AuditCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runCleanup)
	if err != nil {
		return fmt.Errorf("failed to schedule audit cleanup '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Audit cleanup: scheduled with '%s', retention %d days", s.schedule, s.retentionDays)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running sweep.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Audit cleanup: stopped")
}

func (s *AuditCleanupScheduler) runCleanup() {
	if s.taskClient != nil {
		_, err := s.taskClient.Add(tasks.CleanupAuditEventsTask{RetentionDays: s.retentionDays}).Save()
		if err == nil {
			return
		}
		log.Printf("Audit cleanup: failed to enqueue, running inline: %v", err)
	}

	retention := time.Duration(s.retentionDays) * 24 * time.Hour
	deleted, err := s.cleaner.DeleteOldEvents(retention)
	if err != nil {
		log.Printf("Audit cleanup failed: %v", err)
		return
	}
	log.Printf("Audit cleanup: removed %d events older than %d days", deleted, s.retentionDays)
}
