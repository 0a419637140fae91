package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/employee"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/storage"
)

// photoURLExpiry bounds presigned photo links on backends that support them.
const photoURLExpiry = time.Hour

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	storage storage.FileStorage
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, fileStorage storage.FileStorage) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepo,
		storage:            fileStorage,
	}
}

func (s *EmployeeServiceImpl) GetBusinessCard(ctx context.Context, companyID, employeeID string) (employee.BusinessCard, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, companyID, employeeID)
	if err != nil {
		return employee.BusinessCard{}, fmt.Errorf("failed to get employee: %w", err)
	}

	card := employee.BusinessCard{
		EmployeeNo:  emp.EmployeeNo,
		Name:        emp.FullName,
		EnglishName: emp.EnglishName,
		JobTitle:    emp.JobTitle,
		Department:  emp.DepartmentName,
		Company:     emp.CompanyName,
		Email:       emp.Email,
		Mobile:      emp.Mobile,
		OfficePhone: emp.OfficePhone,
		Extension:   emp.Extension,
	}

	// A missing photo must not fail the card.
	if emp.PhotoPath != nil && *emp.PhotoPath != "" {
		url, err := s.storage.GetURL(ctx, *emp.PhotoPath, photoURLExpiry)
		if err != nil {
			slog.Warn("failed to resolve business card photo", "employee_id", employeeID, "error", err)
		} else {
			card.PhotoURL = &url
		}
	}

	return card, nil
}
