package form

import "context"

type FormService interface {
	SubmitLeave(ctx context.Context, companyID, employeeID string, req LeaveFormRequest) (SubmitResponse, error)
	SubmitOvertime(ctx context.Context, companyID, employeeID string, req OvertimeFormRequest) (SubmitResponse, error)
	SubmitBusinessTrip(ctx context.Context, companyID, employeeID string, req BusinessTripFormRequest) (SubmitResponse, error)

	ListMyForms(ctx context.Context, companyID, employeeID string, req ListFormsRequest) (ListFormsResponse, error)

	// FormDetail refreshes the status from BPM before returning
	FormDetail(ctx context.Context, companyID, employeeID, formID string) (FormDetailResponse, error)

	WithdrawForm(ctx context.Context, companyID, employeeID string, req WithdrawRequest) error

	// SyncPending refreshes pending submissions from BPM and returns how many changed
	SyncPending(ctx context.Context, batchSize int) (int, error)

	// ApplyCallback records a status pushed by BPM
	ApplyCallback(ctx context.Context, cb StatusCallback) error
}

type ApprovalService interface {
	PendingTasks(ctx context.Context, companyID, employeeID string) ([]Task, error)
	ApproveTask(ctx context.Context, companyID, employeeID string, req TaskActionRequest) error
	RejectTask(ctx context.Context, companyID, employeeID string, req TaskActionRequest) error
}
