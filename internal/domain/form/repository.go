package form

import "context"

type FormRepository interface {
	Create(ctx context.Context, s Submission) (Submission, error)

	// GetByID scopes the lookup to the owning employee; ErrFormNotFound otherwise
	GetByID(ctx context.Context, companyID, employeeID, id string) (Submission, error)

	GetByInstanceID(ctx context.Context, instanceID string) (Submission, error)

	List(ctx context.Context, companyID, employeeID string, filter ListFilter) ([]Submission, int64, error)

	// ListPending returns up to limit pending submissions, least recently synced first
	ListPending(ctx context.Context, limit int) ([]Submission, error)

	// MarkSynced records that the submissions were checked against BPM
	MarkSynced(ctx context.Context, ids []string) error

	// LockStatus reads the status and holds a row lock until the transaction ends
	LockStatus(ctx context.Context, id string) (Status, error)

	UpdateStatus(ctx context.Context, id string, status Status) error
}

// Transactor runs fn inside one database transaction. Repository calls made
// with the ctx passed to fn join it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
