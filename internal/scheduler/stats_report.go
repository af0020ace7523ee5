// Package scheduler runs periodic background jobs: an operational catalog
// report and the audit-retention sweep, both on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"locallibrary/internal/catalog"
)

// StatsReportScheduler periodically logs catalog aggregates so operators
// can watch stock levels without querying the database.
type StatsReportScheduler struct {
	summary  *catalog.SummaryProvider
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewStatsReportScheduler creates a new scheduler instance.
func NewStatsReportScheduler(summary *catalog.SummaryProvider, schedule string) *StatsReportScheduler {
	return &StatsReportScheduler{
		summary:  summary,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *StatsReportScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runReport)
	if err != nil {
		return fmt.Errorf("failed to schedule stats report '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Catalog stats report: scheduled with '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running report.
func (s *StatsReportScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Catalog stats report: stopped")
}

func (s *StatsReportScheduler) runReport() {
	summary, err := s.summary.Summary()
	if err != nil {
		log.Printf("Catalog stats report failed: %v", err)
		return
	}

	log.Printf("Catalog stats: %d books, %d copies (%d available), %d authors",
		summary.NumBooks, summary.NumInstances, summary.NumInstancesAvailable, summary.NumAuthors)
}
