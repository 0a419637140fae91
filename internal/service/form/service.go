package form

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/auth"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/employee"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/form"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/leave"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/bpm"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultPageLimit = 20
	bpmTimeLayout    = time.RFC3339
)

type FormServiceImpl struct {
	form.FormRepository
	employee.EmployeeRepository
	tx       form.Transactor
	balance  leave.BalanceChecker
	workflow Workflow
	now      func() time.Time
}

type leavePayload struct {
	LeaveCode   string          `json:"leave_code"`
	StartTime   string          `json:"start_time"`
	EndTime     string          `json:"end_time"`
	Hours       decimal.Decimal `json:"hours"`
	Reason      string          `json:"reason"`
	DeputyNo    string          `json:"deputy_no,omitempty"`
	Attachments []string        `json:"attachments,omitempty"`
}

type overtimePayload struct {
	StartTime        string          `json:"start_time"`
	EndTime          string          `json:"end_time"`
	Hours            decimal.Decimal `json:"hours"`
	CompensationType string          `json:"compensation_type"`
	Reason           string          `json:"reason"`
}

type businessTripPayload struct {
	StartTime     string          `json:"start_time"`
	EndTime       string          `json:"end_time"`
	Destination   string          `json:"destination"`
	Purpose       string          `json:"purpose"`
	Transport     string          `json:"transport,omitempty"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	Attachments   []string        `json:"attachments,omitempty"`
}

// toBPMTime re-renders a client "YYYY-MM-DD HH:mm" as RFC3339.
func toBPMTime(s string) string {
	t, _ := validator.IsValidLocalDateTime(s)
	return t.Format(bpmTimeLayout)
}

// SubmitLeave implements form.FormService.
func (s *FormServiceImpl) SubmitLeave(ctx context.Context, companyID, employeeID string, req form.LeaveFormRequest) (form.SubmitResponse, error) {
	if err := s.balance.CheckBalance(ctx, companyID, employeeID, req.LeaveCode, req.Hours); err != nil {
		return form.SubmitResponse{}, err
	}

	payload := leavePayload{
		LeaveCode:   req.LeaveCode,
		StartTime:   toBPMTime(req.StartTime),
		EndTime:     toBPMTime(req.EndTime),
		Hours:       req.Hours,
		Reason:      req.Reason,
		DeputyNo:    req.DeputyNo,
		Attachments: req.Attachments,
	}
	return s.submit(ctx, companyID, employeeID, form.KindLeave, payload)
}

// SubmitOvertime implements form.FormService.
func (s *FormServiceImpl) SubmitOvertime(ctx context.Context, companyID, employeeID string, req form.OvertimeFormRequest) (form.SubmitResponse, error) {
	payload := overtimePayload{
		StartTime:        toBPMTime(req.StartTime),
		EndTime:          toBPMTime(req.EndTime),
		Hours:            req.Hours,
		CompensationType: req.CompensationType,
		Reason:           req.Reason,
	}
	return s.submit(ctx, companyID, employeeID, form.KindOvertime, payload)
}

// SubmitBusinessTrip implements form.FormService.
func (s *FormServiceImpl) SubmitBusinessTrip(ctx context.Context, companyID, employeeID string, req form.BusinessTripFormRequest) (form.SubmitResponse, error) {
	payload := businessTripPayload{
		StartTime:     toBPMTime(req.StartTime),
		EndTime:       toBPMTime(req.EndTime),
		Destination:   req.Destination,
		Purpose:       req.Purpose,
		Transport:     req.Transport,
		EstimatedCost: req.EstimatedCost,
		Attachments:   req.Attachments,
	}
	return s.submit(ctx, companyID, employeeID, form.KindBusinessTrip, payload)
}

// submit starts the BPM process first, then records the submission. If the
// insert fails the process is withdrawn again.
func (s *FormServiceImpl) submit(ctx context.Context, companyID, employeeID string, kind form.Kind, payload any) (form.SubmitResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, companyID, employeeID)
	if err != nil {
		return form.SubmitResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive() {
		return form.SubmitResponse{}, auth.ErrEmployeeNotActive
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return form.SubmitResponse{}, fmt.Errorf("failed to encode form payload: %w", err)
	}
	var variables map[string]any
	if err := json.Unmarshal(raw, &variables); err != nil {
		return form.SubmitResponse{}, fmt.Errorf("failed to encode form variables: %w", err)
	}

	formID, err := uuid.NewV7()
	if err != nil {
		return form.SubmitResponse{}, fmt.Errorf("failed to generate form id: %w", err)
	}

	process, err := s.workflow.StartProcess(ctx, bpm.StartProcessRequest{
		ProcessKey:  kind.ProcessKey(),
		BusinessKey: formID.String(),
		CompanyID:   companyID,
		Initiator:   emp.EmployeeNo,
		Variables:   variables,
	})
	if err != nil {
		return form.SubmitResponse{}, workflowError("start_process", err)
	}

	now := s.now()
	created, err := s.FormRepository.Create(ctx, form.Submission{
		ID:            formID.String(),
		CompanyID:     companyID,
		EmployeeID:    employeeID,
		Kind:          kind,
		BPMInstanceID: process.InstanceID,
		Status:        mapStatus(process.Status),
		Payload:       raw,
		SubmittedAt:   now,
		UpdatedAt:     now,
	})
	if err != nil {
		if wErr := s.workflow.WithdrawProcess(ctx, process.InstanceID, emp.EmployeeNo, "submission could not be recorded"); wErr != nil {
			slog.Error("Failed to withdraw orphaned BPM process", "instance_id", process.InstanceID, "error", wErr)
		}
		return form.SubmitResponse{}, fmt.Errorf("failed to record form submission: %w", err)
	}

	slog.Info("Form submitted", "form_id", created.ID, "kind", kind, "company_id", companyID, "employee_id", employeeID, "instance_id", created.BPMInstanceID)

	return form.SubmitResponse{
		FormID:        created.ID,
		BPMInstanceID: created.BPMInstanceID,
		Status:        created.Status,
	}, nil
}

// ListMyForms implements form.FormService.
func (s *FormServiceImpl) ListMyForms(ctx context.Context, companyID, employeeID string, req form.ListFormsRequest) (form.ListFormsResponse, error) {
	page, limit := req.Page, req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}

	forms, total, err := s.FormRepository.List(ctx, companyID, employeeID, form.ListFilter{
		Kind:   form.Kind(req.Kind),
		Status: form.Status(req.Status),
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return form.ListFormsResponse{}, fmt.Errorf("failed to list forms: %w", err)
	}
	if forms == nil {
		forms = []form.Submission{}
	}

	return form.ListFormsResponse{
		Forms:      forms,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// FormDetail implements form.FormService. BPM being down degrades to the
// locally recorded status without history.
func (s *FormServiceImpl) FormDetail(ctx context.Context, companyID, employeeID, formID string) (form.FormDetailResponse, error) {
	sub, err := s.FormRepository.GetByID(ctx, companyID, employeeID, formID)
	if err != nil {
		return form.FormDetailResponse{}, err
	}

	detail := form.FormDetailResponse{Submission: sub, History: []form.ApprovalStep{}}

	process, err := s.workflow.GetProcess(ctx, sub.BPMInstanceID)
	if err != nil {
		slog.Warn("Could not refresh form from BPM", "form_id", sub.ID, "instance_id", sub.BPMInstanceID, "error", err)
		return detail, nil
	}
	detail.History = historyFrom(process)

	status := mapStatus(process.Status)
	if status == sub.Status {
		return detail, nil
	}
	changed, err := s.transition(ctx, sub.ID, status)
	if err != nil {
		return form.FormDetailResponse{}, err
	}
	if changed {
		detail.Status = status
	}

	return detail, nil
}

// WithdrawForm implements form.FormService.
func (s *FormServiceImpl) WithdrawForm(ctx context.Context, companyID, employeeID string, req form.WithdrawRequest) error {
	sub, err := s.FormRepository.GetByID(ctx, companyID, employeeID, req.FormID)
	if err != nil {
		return err
	}
	if sub.Status != form.StatusPending {
		return form.ErrFormNotPending
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, companyID, employeeID)
	if err != nil {
		return fmt.Errorf("failed to get employee: %w", err)
	}

	if err := s.workflow.WithdrawProcess(ctx, sub.BPMInstanceID, emp.EmployeeNo, req.Reason); err != nil {
		return workflowError("withdraw_process", err)
	}

	changed, err := s.transition(ctx, sub.ID, form.StatusWithdrawn)
	if err != nil {
		return err
	}
	if !changed {
		// a callback finalized the form while BPM processed the withdrawal
		slog.Warn("Form reached a final status before withdrawal was recorded", "form_id", sub.ID)
		return nil
	}

	slog.Info("Form withdrawn", "form_id", sub.ID, "employee_id", employeeID)
	return nil
}

// SyncPending implements form.FormService. It stops at the first sign of BPM
// being unavailable; other per-form failures are logged and skipped.
func (s *FormServiceImpl) SyncPending(ctx context.Context, batchSize int) (int, error) {
	pending, err := s.FormRepository.ListPending(ctx, batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending forms: %w", err)
	}

	changed := 0
	checked := make([]string, 0, len(pending))
	defer func() {
		if len(checked) == 0 {
			return
		}
		if err := s.FormRepository.MarkSynced(ctx, checked); err != nil {
			slog.Error("Failed to mark forms synced", "count", len(checked), "error", err)
		}
	}()

	for _, sub := range pending {
		process, err := s.workflow.GetProcess(ctx, sub.BPMInstanceID)
		if err != nil {
			if errors.Is(err, bpm.ErrUnavailable) {
				return changed, workflowError("get_process", err)
			}
			slog.Warn("Skipping form during sync", "form_id", sub.ID, "instance_id", sub.BPMInstanceID, "error", err)
			checked = append(checked, sub.ID)
			continue
		}
		checked = append(checked, sub.ID)

		status := mapStatus(process.Status)
		if status == sub.Status {
			continue
		}
		ok, err := s.transition(ctx, sub.ID, status)
		if err != nil {
			return changed, err
		}
		if ok {
			changed++
		}
	}

	return changed, nil
}

// ApplyCallback implements form.FormService.
func (s *FormServiceImpl) ApplyCallback(ctx context.Context, cb form.StatusCallback) error {
	if cb.InstanceID == "" || cb.Status == "" {
		return form.ErrInvalidCallback
	}

	sub, err := s.FormRepository.GetByInstanceID(ctx, cb.InstanceID)
	if err != nil {
		return err
	}

	status := mapStatus(cb.Status)
	changed, err := s.transition(ctx, sub.ID, status)
	if err != nil {
		return err
	}
	if changed {
		slog.Info("Form status updated by callback", "form_id", sub.ID, "status", status)
	}
	return nil
}

// transition moves a form to status unless it already has it or has reached a
// final status. The row stays locked for the check and the update, so callbacks,
// syncs and withdrawals on the same form serialize.
func (s *FormServiceImpl) transition(ctx context.Context, id string, status form.Status) (bool, error) {
	changed := false
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.FormRepository.LockStatus(ctx, id)
		if err != nil {
			return err
		}
		if current == status || current.IsFinal() {
			return nil
		}
		if err := s.FormRepository.UpdateStatus(ctx, id, status); err != nil {
			return fmt.Errorf("failed to update form status: %w", err)
		}
		changed = true
		return nil
	})
	return changed, err
}

func NewFormService(
	formRepo form.FormRepository,
	employeeRepo employee.EmployeeRepository,
	tx form.Transactor,
	balance leave.BalanceChecker,
	workflow Workflow,
) form.FormService {
	return &FormServiceImpl{
		FormRepository:     formRepo,
		EmployeeRepository: employeeRepo,
		tx:                 tx,
		balance:            balance,
		workflow:           workflow,
		now:                time.Now,
	}
}
