package employee

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/employee"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	emp employee.Employee
	err error
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, companyID, id string) (employee.Employee, error) {
	return f.emp, f.err
}

func (f *fakeEmployeeRepo) GetByEmployeeNo(ctx context.Context, companyID, employeeNo string) (employee.Employee, error) {
	return f.emp, f.err
}

func strPtr(s string) *string { return &s }

func newLocal(t *testing.T) storage.FileStorage {
	t.Helper()
	s, err := storage.NewLocalStorage(t.TempDir(), "http://files.local/uploads")
	require.NoError(t, err)
	return s
}

func TestGetBusinessCard(t *testing.T) {
	repo := &fakeEmployeeRepo{emp: employee.Employee{
		ID:             "E001",
		EmployeeNo:     "A0123",
		FullName:       "王小明",
		EnglishName:    strPtr("Ming Wang"),
		JobTitle:       strPtr("Engineer"),
		DepartmentName: strPtr("R&D"),
		CompanyName:    "Acme",
		Email:          strPtr("ming@acme.test"),
		PhotoPath:      strPtr("photos/A0123.jpg"),
	}}
	svc := NewEmployeeService(repo, newLocal(t))

	card, err := svc.GetBusinessCard(context.Background(), "C01", "E001")
	require.NoError(t, err)
	assert.Equal(t, "A0123", card.EmployeeNo)
	assert.Equal(t, "王小明", card.Name)
	assert.Equal(t, "Acme", card.Company)
	require.NotNil(t, card.PhotoURL)
	assert.Equal(t, "http://files.local/uploads/photos/A0123.jpg", *card.PhotoURL)
}

func TestGetBusinessCard_BadPhotoPathIsIgnored(t *testing.T) {
	repo := &fakeEmployeeRepo{emp: employee.Employee{ID: "E001", FullName: "A", PhotoPath: strPtr("../secret")}}
	svc := NewEmployeeService(repo, newLocal(t))

	card, err := svc.GetBusinessCard(context.Background(), "C01", "E001")
	require.NoError(t, err)
	assert.Nil(t, card.PhotoURL)
}

func TestGetBusinessCard_NotFound(t *testing.T) {
	svc := NewEmployeeService(&fakeEmployeeRepo{err: employee.ErrEmployeeNotFound}, newLocal(t))

	_, err := svc.GetBusinessCard(context.Background(), "C01", "E404")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
