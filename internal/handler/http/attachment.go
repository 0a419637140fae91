package http

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/attachment"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/handler/http/response"
)

// AttachmentFileField is the multipart field holding the uploaded file.
const AttachmentFileField = "file"

type AttachmentHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
}

type attachmentHandlerImpl struct {
	attachmentService attachment.AttachmentService
}

func NewAttachmentHandler(attachmentService attachment.AttachmentService) AttachmentHandler {
	return &attachmentHandlerImpl{attachmentService: attachmentService}
}

// Upload implements AttachmentHandler. Bind has already parsed the multipart form.
func (h *attachmentHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequestFrom[attachment.UploadRequest](r.Context())

	file, header, err := r.FormFile(AttachmentFileField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.HandleError(w, r, attachment.ErrFileRequired)
			return
		}
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}
	defer file.Close()

	uploaded, err := h.attachmentService.Upload(r.Context(), req.CID, req.UID, req.Purpose, file, header.Filename, header.Size)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Created(w, "Attachment uploaded", uploaded)
}
