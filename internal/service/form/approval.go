package form

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/employee"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/form"
)

type ApprovalServiceImpl struct {
	employee.EmployeeRepository
	workflow Workflow
}

func (s *ApprovalServiceImpl) assignee(ctx context.Context, companyID, employeeID string) (string, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, companyID, employeeID)
	if err != nil {
		return "", fmt.Errorf("failed to get employee: %w", err)
	}
	return emp.EmployeeNo, nil
}

// PendingTasks implements form.ApprovalService.
func (s *ApprovalServiceImpl) PendingTasks(ctx context.Context, companyID, employeeID string) ([]form.Task, error) {
	employeeNo, err := s.assignee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.workflow.ListTasks(ctx, employeeNo)
	if err != nil {
		return nil, workflowError("list_tasks", err)
	}

	result := make([]form.Task, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, form.Task{
			TaskID:        t.TaskID,
			FormID:        t.BusinessKey,
			Kind:          kindForProcess(t.ProcessKey),
			Step:          t.TaskName,
			ApplicantNo:   t.ApplicantNo,
			ApplicantName: t.ApplicantName,
			Summary:       t.Summary,
			CreatedAt:     t.CreatedAt,
		})
	}
	return result, nil
}

// ownTask makes sure the task is currently assigned to the employee.
func (s *ApprovalServiceImpl) ownTask(ctx context.Context, employeeNo, taskID string) error {
	tasks, err := s.workflow.ListTasks(ctx, employeeNo)
	if err != nil {
		return workflowError("list_tasks", err)
	}
	for _, t := range tasks {
		if t.TaskID == taskID {
			return nil
		}
	}
	return form.ErrTaskNotFound
}

// ApproveTask implements form.ApprovalService.
func (s *ApprovalServiceImpl) ApproveTask(ctx context.Context, companyID, employeeID string, req form.TaskActionRequest) error {
	employeeNo, err := s.assignee(ctx, companyID, employeeID)
	if err != nil {
		return err
	}
	if err := s.ownTask(ctx, employeeNo, req.TaskID); err != nil {
		return err
	}
	if err := s.workflow.ApproveTask(ctx, req.TaskID, employeeNo, req.Comment); err != nil {
		return workflowError("approve_task", err)
	}

	slog.Info("Task approved", "task_id", req.TaskID, "assignee", employeeNo)
	return nil
}

// RejectTask implements form.ApprovalService.
func (s *ApprovalServiceImpl) RejectTask(ctx context.Context, companyID, employeeID string, req form.TaskActionRequest) error {
	employeeNo, err := s.assignee(ctx, companyID, employeeID)
	if err != nil {
		return err
	}
	if err := s.ownTask(ctx, employeeNo, req.TaskID); err != nil {
		return err
	}
	if err := s.workflow.RejectTask(ctx, req.TaskID, employeeNo, req.Comment); err != nil {
		return workflowError("reject_task", err)
	}

	slog.Info("Task rejected", "task_id", req.TaskID, "assignee", employeeNo)
	return nil
}

func NewApprovalService(employeeRepo employee.EmployeeRepository, workflow Workflow) form.ApprovalService {
	return &ApprovalServiceImpl{
		EmployeeRepository: employeeRepo,
		workflow:           workflow,
	}
}
