package form

import (
	"encoding/json"
	"time"
)

// Kind is the type of self-service form.
type Kind string

const (
	KindLeave        Kind = "leave"
	KindOvertime     Kind = "overtime"
	KindBusinessTrip Kind = "business_trip"
)

// ProcessKey names the BPM process definition a form kind starts.
func (k Kind) ProcessKey() string {
	switch k {
	case KindLeave:
		return "hr_leave_form"
	case KindOvertime:
		return "hr_overtime_form"
	case KindBusinessTrip:
		return "hr_business_trip_form"
	default:
		return ""
	}
}

// Status is the local view of a form's workflow state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

// IsFinal reports whether the workflow can no longer change the status.
func (s Status) IsFinal() bool {
	return s != StatusPending
}

// Submission is a form pushed to BPM, as recorded locally.
type Submission struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"-"`
	EmployeeID    string          `json:"employee_id"`
	Kind          Kind            `json:"kind"`
	BPMInstanceID string          `json:"bpm_instance_id"`
	Status        Status          `json:"status"`
	Payload       json.RawMessage `json:"payload"`
	SubmittedAt   time.Time       `json:"submitted_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ApprovalStep is one entry of a form's approval history.
type ApprovalStep struct {
	Step     string     `json:"step"`
	Approver string     `json:"approver"`
	Action   string     `json:"action"`
	Comment  string     `json:"comment,omitempty"`
	ActedAt  *time.Time `json:"acted_at,omitempty"`
}

// Task is a workflow task waiting on the current employee.
type Task struct {
	TaskID        string    `json:"task_id"`
	FormID        string    `json:"form_id,omitempty"`
	Kind          Kind      `json:"kind"`
	Step          string    `json:"step"`
	ApplicantNo   string    `json:"applicant_no"`
	ApplicantName string    `json:"applicant_name"`
	Summary       string    `json:"summary"`
	CreatedAt     time.Time `json:"created_at"`
}
