package attachment

import "time"

// MaxFileSize caps a single upload before any image compression runs.
const MaxFileSize = 10 << 20

// Purpose is the form kind an attachment is uploaded for.
type Purpose string

const (
	PurposeLeave        Purpose = "leave"
	PurposeOvertime     Purpose = "overtime"
	PurposeBusinessTrip Purpose = "business_trip"
)

type Attachment struct {
	Path        string    `json:"path"`
	URL         string    `json:"url"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
