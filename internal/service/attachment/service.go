package attachment

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"log/slog"
	"math"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/attachment"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/metrics"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// maxImageSize is the size above which photos are re-encoded as JPEG.
const maxImageSize = 300 * 1024

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

type AttachmentServiceImpl struct {
	storage storage.FileStorage
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewAttachmentService(fileStorage storage.FileStorage, m *metrics.Metrics) attachment.AttachmentService {
	return &AttachmentServiceImpl{
		storage: fileStorage,
		metrics: m,
		now:     time.Now,
	}
}

func (s *AttachmentServiceImpl) Upload(ctx context.Context, companyID, employeeID string, purpose attachment.Purpose, file io.Reader, filename string, size int64) (attachment.Attachment, error) {
	if file == nil || filename == "" {
		return attachment.Attachment{}, attachment.ErrFileRequired
	}
	if size > attachment.MaxFileSize {
		return attachment.Attachment{}, attachment.ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := contentTypes[ext]
	if !ok {
		return attachment.Attachment{}, fmt.Errorf("%w: %s", attachment.ErrFileTypeNotAllowed, ext)
	}

	// The declared size comes from the client, so the read is capped as well.
	buffer, err := io.ReadAll(io.LimitReader(file, attachment.MaxFileSize+1))
	if err != nil {
		return attachment.Attachment{}, fmt.Errorf("failed to read attachment: %w", err)
	}
	if len(buffer) > attachment.MaxFileSize {
		return attachment.Attachment{}, attachment.ErrFileTooLarge
	}

	if strings.HasPrefix(contentType, "image/") {
		compressed, converted, err := compressImage(buffer, maxImageSize)
		if err != nil {
			return attachment.Attachment{}, fmt.Errorf("%w: %v", attachment.ErrInvalidImage, err)
		}
		if converted {
			slog.Info("Compressed attachment image", "file", filename, "from", len(buffer), "to", len(compressed))
			buffer, ext, contentType = compressed, ".jpg", "image/jpeg"
		}
	}

	key := path.Join("forms", string(purpose), companyID, employeeID, uuid.New().String()+ext)

	uploaded, err := s.storage.Upload(ctx, bytes.NewReader(buffer), key, contentType)
	if err != nil {
		s.observe("error")
		return attachment.Attachment{}, fmt.Errorf("failed to upload attachment: %w", err)
	}
	s.observe("success")

	url, err := s.storage.GetURL(ctx, uploaded, 0)
	if err != nil {
		return attachment.Attachment{}, fmt.Errorf("failed to resolve attachment url: %w", err)
	}

	return attachment.Attachment{
		Path:        uploaded,
		URL:         url,
		FileName:    filepath.Base(filename),
		ContentType: contentType,
		Size:        int64(len(buffer)),
		UploadedAt:  s.now(),
	}, nil
}

func (s *AttachmentServiceImpl) observe(result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.AttachmentUploads.WithLabelValues(s.storage.Backend(), result).Inc()
}

// compressImage re-encodes an image as JPEG until it fits maxSize, first by
// stepping quality down and then by resizing. Images already within maxSize
// are returned untouched with converted=false.
func compressImage(buffer []byte, maxSize int) (out []byte, converted bool, err error) {
	if len(buffer) <= maxSize {
		if _, _, err := image.DecodeConfig(bytes.NewReader(buffer)); err != nil {
			return nil, false, err
		}
		return buffer, false, nil
	}

	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode image: %w", err)
	}

	var compressed []byte
	for quality := 85; quality >= 50; quality -= 5 {
		compressed, err = encodeJPEG(img, quality)
		if err != nil {
			return nil, false, err
		}
		if len(compressed) <= maxSize {
			return compressed, true, nil
		}
	}

	bounds := img.Bounds()
	ratio := math.Sqrt(float64(maxSize) / float64(len(compressed)))
	width := max(int(float64(bounds.Dx())*ratio), 600)
	height := max(int(float64(bounds.Dy())*ratio), 400)
	if width >= bounds.Dx() || height >= bounds.Dy() {
		return compressed, true, nil
	}

	compressed, err = encodeJPEG(resizeImage(img, width, height), 70)
	if err != nil {
		return nil, false, err
	}
	return compressed, true, nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// resizeImage scales with CatmullRom for high-quality downscaling
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
