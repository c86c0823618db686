package audit

import (
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// retentionSchedule runs the prune daily at 03:00.
const retentionSchedule = "0 3 * * *"

// RetentionScheduler prunes old audit files on a cron schedule.
type RetentionScheduler struct {
	auditor       *Auditor
	retentionDays int

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

// NewRetentionScheduler creates a scheduler for the given auditor.
func NewRetentionScheduler(auditor *Auditor, retentionDays int) *RetentionScheduler {
	return &RetentionScheduler{
		auditor:       auditor,
		retentionDays: retentionDays,
		cron:          cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the retention schedule. Safe to call once.
func (s *RetentionScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.retentionDays <= 0 {
		log.Printf("Audit retention: disabled")
		return nil
	}

	_, err := s.cron.AddFunc(retentionSchedule, s.runOnce)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Audit retention: pruning files older than %d days", s.retentionDays)
	return nil
}

// Stop halts the schedule and waits for a running prune to finish.
func (s *RetentionScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
}

func (s *RetentionScheduler) runOnce() {
	removed, err := s.auditor.Prune(s.retentionDays)
	if err != nil {
		log.Printf("Audit retention: prune failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Audit retention: removed %d expired records", removed)
	}
}
