package salary

import (
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/auth"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/validator"
)

type SlipRequest struct {
	auth.Credentials
	PayPeriod string `json:"pay_period" validate:"required,payperiod"` // YYYYMM
}

func (r *SlipRequest) Validate() error {
	return validator.Struct(r)
}

type PeriodsRequest struct {
	auth.Credentials
}

func (r *PeriodsRequest) Validate() error {
	return nil
}

type PeriodsResponse struct {
	Periods []string `json:"periods"`
}
