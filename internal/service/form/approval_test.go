package form

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/form"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/bpm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingTasks(t *testing.T) {
	created := time.Date(2025, 11, 17, 8, 0, 0, 0, time.UTC)
	wf := &fakeWorkflow{tasks: []bpm.Task{
		{TaskID: "T-1", ProcessKey: "hr_overtime_form", BusinessKey: "F9", TaskName: "manager", ApplicantNo: "A0099", CreatedAt: created},
		{TaskID: "T-2", ProcessKey: "legacy_process"},
	}}
	svc := NewApprovalService(&fakeEmployees{emp: activeEmployee}, wf)

	tasks, err := svc.PendingTasks(context.Background(), "C01", "E001")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, form.KindOvertime, tasks[0].Kind)
	assert.Equal(t, "F9", tasks[0].FormID)
	assert.Equal(t, created, tasks[0].CreatedAt)
	assert.Equal(t, form.Kind("legacy_process"), tasks[1].Kind)
}

func TestApproveAndRejectTask(t *testing.T) {
	wf := &fakeWorkflow{tasks: []bpm.Task{{TaskID: "T-1"}, {TaskID: "T-2"}}}
	svc := NewApprovalService(&fakeEmployees{emp: activeEmployee}, wf)
	ctx := context.Background()

	require.NoError(t, svc.ApproveTask(ctx, "C01", "E001", form.TaskActionRequest{TaskID: "T-1", Comment: "ok"}))
	require.NoError(t, svc.RejectTask(ctx, "C01", "E001", form.TaskActionRequest{TaskID: "T-2"}))
	assert.Equal(t, []string{"T-1"}, wf.approved)
	assert.Equal(t, []string{"T-2"}, wf.rejected)
}

func TestApproveTask_NotAssigned(t *testing.T) {
	wf := &fakeWorkflow{tasks: []bpm.Task{{TaskID: "T-1"}}}
	svc := NewApprovalService(&fakeEmployees{emp: activeEmployee}, wf)

	err := svc.ApproveTask(context.Background(), "C01", "E001", form.TaskActionRequest{TaskID: "T-77"})
	assert.ErrorIs(t, err, form.ErrTaskNotFound)
	assert.Empty(t, wf.approved)
}

func TestRejectTask_BPMRejects(t *testing.T) {
	wf := &fakeWorkflow{
		tasks:     []bpm.Task{{TaskID: "T-1"}},
		actionErr: &bpm.APIError{StatusCode: 409, Message: "task already completed"},
	}
	svc := NewApprovalService(&fakeEmployees{emp: activeEmployee}, wf)

	err := svc.RejectTask(context.Background(), "C01", "E001", form.TaskActionRequest{TaskID: "T-1"})
	assert.ErrorIs(t, err, form.ErrWorkflowRejected)
}
