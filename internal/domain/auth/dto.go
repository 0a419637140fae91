package auth

import (
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/validator"
)

type SendCodeRequest struct {
	CID        string `json:"cid" validate:"required"`
	EmployeeNo string `json:"employee_no" validate:"required,max=20"`
}

func (r *SendCodeRequest) Validate() error {
	return validator.Struct(r)
}

type SendCodeResponse struct {
	MaskedEmail string `json:"masked_email"`
	ExpiresIn   int64  `json:"expires_in"`
}

type VerifyCodeRequest struct {
	CID        string `json:"cid" validate:"required"`
	EmployeeNo string `json:"employee_no" validate:"required,max=20"`
	Code       string `json:"code" validate:"required,len=6,numeric"`
}

func (r *VerifyCodeRequest) Validate() error {
	return validator.Struct(r)
}

type TokenResponse struct {
	TokenID   string    `json:"tokenid"`
	UID       string    `json:"uid"`
	CID       string    `json:"cid"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
}

type LogoutRequest struct {
	Credentials
}

func (r *LogoutRequest) Validate() error {
	return nil
}

// VerificationCode is the stored state of an outstanding code.
type VerificationCode struct {
	Hash     string
	Attempts int64
}
