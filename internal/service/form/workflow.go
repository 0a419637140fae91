package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/form"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/bpm"
)

// Workflow is the part of the BPM client the form services use.
type Workflow interface {
	StartProcess(ctx context.Context, req bpm.StartProcessRequest) (bpm.Process, error)
	GetProcess(ctx context.Context, instanceID string) (bpm.Process, error)
	WithdrawProcess(ctx context.Context, instanceID, operator, reason string) error
	ListTasks(ctx context.Context, assignee string) ([]bpm.Task, error)
	ApproveTask(ctx context.Context, taskID, assignee, comment string) error
	RejectTask(ctx context.Context, taskID, assignee, comment string) error
}

// mapStatus translates a BPM instance status into the local form status.
func mapStatus(bpmStatus string) form.Status {
	switch bpmStatus {
	case bpm.StatusApproved:
		return form.StatusApproved
	case bpm.StatusRejected:
		return form.StatusRejected
	case bpm.StatusWithdrawn:
		return form.StatusWithdrawn
	case bpm.StatusRunning:
		return form.StatusPending
	default:
		slog.Warn("Unknown BPM status, keeping form pending", "bpm_status", bpmStatus)
		return form.StatusPending
	}
}

// kindForProcess is the inverse of form.Kind.ProcessKey.
func kindForProcess(processKey string) form.Kind {
	for _, k := range []form.Kind{form.KindLeave, form.KindOvertime, form.KindBusinessTrip} {
		if k.ProcessKey() == processKey {
			return k
		}
	}
	return form.Kind(processKey)
}

// workflowError converts BPM client failures into form domain errors.
func workflowError(op string, err error) error {
	var apiErr *bpm.APIError
	if errors.As(err, &apiErr) && apiErr.IsClientError() {
		return fmt.Errorf("%w: %s", form.ErrWorkflowRejected, apiErr.Message)
	}
	slog.Error("BPM call failed", "operation", op, "error", err)
	return fmt.Errorf("%w: %s", form.ErrWorkflowUnavailable, op)
}

func historyFrom(p bpm.Process) []form.ApprovalStep {
	steps := make([]form.ApprovalStep, 0, len(p.History))
	for _, h := range p.History {
		steps = append(steps, form.ApprovalStep{
			Step:     h.TaskName,
			Approver: h.Assignee,
			Action:   h.Action,
			Comment:  h.Comment,
			ActedAt:  h.CompletedAt,
		})
	}
	return steps
}
