package postgresql_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/form"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubmission(employeeID string, kind form.Kind) form.Submission {
	id := uuid.NewString()
	return form.Submission{
		ID:            id,
		CompanyID:     "C01",
		EmployeeID:    employeeID,
		Kind:          kind,
		BPMInstanceID: "PI-" + id,
		Status:        form.StatusPending,
		Payload:       json.RawMessage(`{"reason":"family trip"}`),
	}
}

func TestFormRepository_CreateAndGet(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewFormRepository(setup.DB)
	ctx := context.Background()

	created, err := repo.Create(ctx, newSubmission("E001", form.KindLeave))
	require.NoError(t, err)
	assert.False(t, created.SubmittedAt.IsZero())

	got, err := repo.GetByID(ctx, "C01", "E001", created.ID)
	require.NoError(t, err)
	assert.Equal(t, form.KindLeave, got.Kind)
	assert.JSONEq(t, `{"reason":"family trip"}`, string(got.Payload))

	byInstance, err := repo.GetByInstanceID(ctx, created.BPMInstanceID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byInstance.ID)

	_, err = repo.GetByID(ctx, "C01", "E999", created.ID)
	assert.ErrorIs(t, err, form.ErrFormNotFound)
}

func TestFormRepository_ListFilters(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewFormRepository(setup.DB)
	ctx := context.Background()

	for _, kind := range []form.Kind{form.KindLeave, form.KindLeave, form.KindOvertime} {
		_, err := repo.Create(ctx, newSubmission("E001", kind))
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, newSubmission("E002", form.KindLeave))
	require.NoError(t, err)

	forms, total, err := repo.List(ctx, "C01", "E001", form.ListFilter{Kind: form.KindLeave, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, forms, 1)

	forms, total, err = repo.List(ctx, "C01", "E001", form.ListFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, forms, 3)
}

func TestFormRepository_PendingRotation(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewFormRepository(setup.DB)
	ctx := context.Background()

	first, err := repo.Create(ctx, newSubmission("E001", form.KindLeave))
	require.NoError(t, err)
	second, err := repo.Create(ctx, newSubmission("E001", form.KindOvertime))
	require.NoError(t, err)

	pending, err := repo.ListPending(ctx, 1)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, first.ID, pending[0].ID)

	require.NoError(t, repo.MarkSynced(ctx, []string{first.ID}))

	pending, err = repo.ListPending(ctx, 1)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)
}

func TestFormRepository_StatusInTransaction(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewFormRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)
	ctx := context.Background()

	sub, err := repo.Create(ctx, newSubmission("E001", form.KindLeave))
	require.NoError(t, err)

	err = tx.WithinTx(ctx, func(ctx context.Context) error {
		status, err := repo.LockStatus(ctx, sub.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, form.StatusPending, status)
		return repo.UpdateStatus(ctx, sub.ID, form.StatusApproved)
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "C01", "E001", sub.ID)
	require.NoError(t, err)
	assert.Equal(t, form.StatusApproved, got.Status)

	rollback := errors.New("rollback")
	err = tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := repo.UpdateStatus(ctx, sub.ID, form.StatusRejected); err != nil {
			return err
		}
		return rollback
	})
	assert.ErrorIs(t, err, rollback)

	got, err = repo.GetByID(ctx, "C01", "E001", sub.ID)
	require.NoError(t, err)
	assert.Equal(t, form.StatusApproved, got.Status)

	_, err = repo.LockStatus(ctx, uuid.NewString())
	assert.ErrorIs(t, err, form.ErrFormNotFound)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, uuid.NewString(), form.StatusApproved), form.ErrFormNotFound)
}
