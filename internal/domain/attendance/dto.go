package attendance

import (
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/auth"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type DailyRecordRequest struct {
	auth.Credentials
	Date string `json:"date" validate:"required,date"` // YYYY-MM-DD
}

func (r *DailyRecordRequest) Validate() error {
	return validator.Struct(r)
}

type MonthlyRecordsRequest struct {
	auth.Credentials
	Month string `json:"month" validate:"required,month"` // YYYY-MM
}

func (r *MonthlyRecordsRequest) Validate() error {
	return validator.Struct(r)
}

type MonthlyRecordsResponse struct {
	Month   string             `json:"month"`
	Records []AttendanceRecord `json:"records"`
}
