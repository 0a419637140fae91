package attachment

import (
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/auth"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/validator"
)

// UploadRequest is the JSON "data" part of the multipart upload.
type UploadRequest struct {
	auth.Credentials
	Purpose Purpose `json:"purpose" validate:"required,oneof=leave overtime business_trip"`
}

func (r *UploadRequest) Validate() error {
	return validator.Struct(r)
}
