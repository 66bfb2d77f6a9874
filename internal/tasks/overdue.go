package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// OverdueMarker refreshes the status of unreturned transactions past their
// due day.
type OverdueMarker interface {
	MarkOverdue(now time.Time) (int64, error)
}

// OverdueSweepTask recomputes overdue statuses for open transactions.
type OverdueSweepTask struct{}

// Config returns the queue configuration for the overdue sweep.
func (t OverdueSweepTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "overdue_sweep",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// OverdueSweepProcessor creates a processor function for OverdueSweepTask.
func OverdueSweepProcessor(marker OverdueMarker) backlite.QueueProcessor[OverdueSweepTask] {
	return func(ctx context.Context, task OverdueSweepTask) error {
		if marker == nil {
			return fmt.Errorf("overdue marker not configured")
		}

		updated, err := marker.MarkOverdue(time.Now())
		if err != nil {
			return fmt.Errorf("overdue sweep: %w", err)
		}

		log.Printf("[TASK] Overdue sweep marked %d transactions", updated)
		return nil
	}
}

// NewOverdueSweepQueue creates a backlite queue for the overdue sweep.
func NewOverdueSweepQueue(marker OverdueMarker) backlite.Queue {
	return backlite.NewQueue(OverdueSweepProcessor(marker))
}
