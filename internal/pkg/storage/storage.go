package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/config"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrInvalidPath  = errors.New("invalid file path")
)

type FileStorage interface {
	// Upload uploads a file and returns the file path/key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a file
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file
	Delete(ctx context.Context, path string) error

	// GetURL generates a presigned/public URL
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)

	// Backend names the implementation for logs and metrics
	Backend() string
}

type UploadOptions struct {
	MaxSize     int64
	AllowedExts []string
}

// New builds the backend selected by cfg.Type.
func New(cfg config.StorageConfig) (FileStorage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg.BasePath, cfg.BaseURL)
	case "ftp":
		return NewFTPStorage(cfg.FTP, cfg.BaseURL), nil
	case "sftp":
		return NewSFTPStorage(cfg.FTP, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// cleanKey normalizes a storage key to a relative slash path and rejects
// anything that would escape the storage root.
func cleanKey(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	cleaned := path.Clean("/" + p)
	if cleaned == "/" || strings.Contains(p, "..") {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, p)
	}
	return strings.TrimPrefix(cleaned, "/"), nil
}

func publicURL(baseURL, key string) string {
	return strings.TrimRight(baseURL, "/") + "/" + key
}
