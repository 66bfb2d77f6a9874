// Package scheduler enqueues the periodic maintenance tasks on cron
// schedules: the overdue sweep and the activity log cleanup.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"librarysystem/internal/config"
	"librarysystem/internal/tasks"
)

// MaintenanceScheduler enqueues the recurring maintenance tasks.
type MaintenanceScheduler struct {
	taskClient *tasks.Client
	cfg        config.Tasks

	cron       *cron.Cron
	mu         sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewMaintenanceScheduler creates a scheduler over the given task client.
func NewMaintenanceScheduler(taskClient *tasks.Client, cfg config.Tasks) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		taskClient: taskClient,
		cfg:        cfg,
		cron:       cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start registers both cron entries and begins scheduling.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.OverdueSweepSchedule, s.enqueueOverdueSweep)
	if err != nil {
		return fmt.Errorf("failed to schedule overdue sweep '%s': %w", s.cfg.OverdueSweepSchedule, err)
	}

	_, err = s.cron.AddFunc(s.cfg.ActivityCleanupSchedule, s.enqueueActivityCleanup)
	if err != nil {
		return fmt.Errorf("failed to schedule activity cleanup '%s': %w", s.cfg.ActivityCleanupSchedule, err)
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Maintenance scheduler: overdue sweep '%s', activity cleanup '%s'",
		s.cfg.OverdueSweepSchedule, s.cfg.ActivityCleanupSchedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops scheduling and waits for in-flight enqueues to finish.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Maintenance scheduler: stopped")
}

func (s *MaintenanceScheduler) enqueueOverdueSweep() {
	if _, err := s.taskClient.Add(tasks.OverdueSweepTask{}).Save(); err != nil {
		log.Printf("Maintenance scheduler: failed to enqueue overdue sweep: %v", err)
	}
}

func (s *MaintenanceScheduler) enqueueActivityCleanup() {
	task := tasks.CleanupActivitiesTask{RetentionDays: s.cfg.ActivityRetentionDays}
	if _, err := s.taskClient.Add(task).Save(); err != nil {
		log.Printf("Maintenance scheduler: failed to enqueue activity cleanup: %v", err)
	}
}
