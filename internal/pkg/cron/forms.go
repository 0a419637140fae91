package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/form"
)

const syncBatchSize = 100

type FormJobs struct {
	formService form.FormService
	interval    time.Duration
}

func NewFormJobs(formService form.FormService, interval time.Duration) *FormJobs {
	return &FormJobs{
		formService: formService,
		interval:    interval,
	}
}

func (j *FormJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("sync_pending_forms", j.interval, j.SyncPendingForms)
}

// SyncPendingForms pulls the BPM status of pending forms whose callback may
// have been lost.
func (j *FormJobs) SyncPendingForms(ctx context.Context) error {
	changed, err := j.formService.SyncPending(ctx, syncBatchSize)
	if changed > 0 {
		slog.Info("Cron: pending forms synced from BPM", "changed", changed)
	}
	return err
}
