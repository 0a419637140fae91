package form

import (
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/auth"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// SUBMISSION DTOs
// ========================================

type LeaveFormRequest struct {
	auth.Credentials
	LeaveCode   string          `json:"leave_code" validate:"required,max=10"`
	StartTime   string          `json:"start_time" validate:"required,datetime_local"`
	EndTime     string          `json:"end_time" validate:"required,datetime_local"`
	Hours       decimal.Decimal `json:"hours"`
	Reason      string          `json:"reason" validate:"required,max=500"`
	DeputyNo    string          `json:"deputy_no" validate:"omitempty,max=20"`
	Attachments []string        `json:"attachments" validate:"omitempty,max=5,dive,required"`
}

func (r *LeaveFormRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	return validatePeriod(r.StartTime, r.EndTime, r.Hours)
}

type OvertimeFormRequest struct {
	auth.Credentials
	StartTime        string          `json:"start_time" validate:"required,datetime_local"`
	EndTime          string          `json:"end_time" validate:"required,datetime_local"`
	Hours            decimal.Decimal `json:"hours"`
	CompensationType string          `json:"compensation_type" validate:"required,oneof=pay leave"`
	Reason           string          `json:"reason" validate:"required,max=500"`
}

func (r *OvertimeFormRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	return validatePeriod(r.StartTime, r.EndTime, r.Hours)
}

type BusinessTripFormRequest struct {
	auth.Credentials
	StartTime     string          `json:"start_time" validate:"required,datetime_local"`
	EndTime       string          `json:"end_time" validate:"required,datetime_local"`
	Destination   string          `json:"destination" validate:"required,max=100"`
	Purpose       string          `json:"purpose" validate:"required,max=500"`
	Transport     string          `json:"transport" validate:"omitempty,oneof=car train plane ship other"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	Attachments   []string        `json:"attachments" validate:"omitempty,max=5,dive,required"`
}

func (r *BusinessTripFormRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	var errs validator.ValidationErrors
	if r.EstimatedCost.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "estimated_cost", Message: "estimated_cost must not be negative"})
	}
	if !periodOrdered(r.StartTime, r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: ErrInvalidTimeRange.Error()})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func periodOrdered(start, end string) bool {
	s, _ := validator.IsValidLocalDateTime(start)
	e, _ := validator.IsValidLocalDateTime(end)
	return e.After(s)
}

func validatePeriod(start, end string, hours decimal.Decimal) error {
	var errs validator.ValidationErrors
	if !periodOrdered(start, end) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: ErrInvalidTimeRange.Error()})
	}
	if !hours.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "hours", Message: ErrInvalidHours.Error()})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SubmitResponse struct {
	FormID        string `json:"form_id"`
	BPMInstanceID string `json:"bpm_instance_id"`
	Status        Status `json:"status"`
}

// ========================================
// INQUIRY DTOs
// ========================================

type ListFormsRequest struct {
	auth.Credentials
	Kind   string `json:"kind" validate:"omitempty,oneof=leave overtime business_trip"`
	Status string `json:"status" validate:"omitempty,oneof=pending approved rejected withdrawn"`
	Page   int    `json:"page" validate:"omitempty,gte=1"`
	Limit  int    `json:"limit" validate:"omitempty,gte=1,lte=100"`
}

func (r *ListFormsRequest) Validate() error {
	return validator.Struct(r)
}

// ListFilter is the repository-side form of ListFormsRequest.
type ListFilter struct {
	Kind   Kind
	Status Status
	Limit  int
	Offset int
}

type ListFormsResponse struct {
	Forms      []Submission `json:"forms"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"total_pages"`
}

type FormIDRequest struct {
	auth.Credentials
	FormID string `json:"form_id" validate:"required,uuid"`
}

func (r *FormIDRequest) Validate() error {
	return validator.Struct(r)
}

type WithdrawRequest struct {
	auth.Credentials
	FormID string `json:"form_id" validate:"required,uuid"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

func (r *WithdrawRequest) Validate() error {
	return validator.Struct(r)
}

type FormDetailResponse struct {
	Submission
	History []ApprovalStep `json:"history"`
}

// ========================================
// APPROVAL DTOs
// ========================================

type PendingTasksRequest struct {
	auth.Credentials
}

func (r *PendingTasksRequest) Validate() error {
	return nil
}

type TaskActionRequest struct {
	auth.Credentials
	TaskID  string `json:"task_id" validate:"required,max=64"`
	Comment string `json:"comment" validate:"omitempty,max=500"`
}

func (r *TaskActionRequest) Validate() error {
	return validator.Struct(r)
}

// StatusCallback is the status notification BPM posts when an instance changes.
type StatusCallback struct {
	InstanceID string    `json:"instance_id"`
	Status     string    `json:"status"`
	ChangedAt  time.Time `json:"changed_at"`
}
