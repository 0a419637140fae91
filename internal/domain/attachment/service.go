package attachment

import (
	"context"
	"io"
)

type AttachmentService interface {
	// Upload stores a form attachment and returns the key a form submission references
	Upload(ctx context.Context, companyID, employeeID string, purpose Purpose, file io.Reader, filename string, size int64) (Attachment, error)
}
