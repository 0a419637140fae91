package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/textproto"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/config"
	"github.com/jlaffaye/ftp"
)

// FTPStorage keeps attachments on the HR FTP server. Each operation opens its
// own control connection, so the type is safe for concurrent use.
type FTPStorage struct {
	cfg     config.FTPConfig
	baseURL string
}

func NewFTPStorage(cfg config.FTPConfig, baseURL string) *FTPStorage {
	return &FTPStorage{cfg: cfg, baseURL: baseURL}
}

func (s *FTPStorage) Backend() string { return "ftp" }

func (s *FTPStorage) connect(ctx context.Context) (*ftp.ServerConn, error) {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	conn, err := ftp.Dial(addr, ftp.DialWithContext(ctx), ftp.DialWithTimeout(s.cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("ftp dial %s: %w", addr, err)
	}
	if err := conn.Login(s.cfg.User, s.cfg.Password); err != nil {
		_ = conn.Quit()
		return nil, fmt.Errorf("ftp login: %w", err)
	}
	return conn, nil
}

func (s *FTPStorage) remotePath(p string) (string, string, error) {
	key, err := cleanKey(p)
	if err != nil {
		return "", "", err
	}
	return key, path.Join("/", s.cfg.RootDir, key), nil
}

func isFTPNotFound(err error) bool {
	var tpErr *textproto.Error
	return errors.As(err, &tpErr) && tpErr.Code == ftp.StatusFileUnavailable
}

// mkdirAll creates every missing directory of dir; existing ones are ignored.
func mkdirAll(conn *ftp.ServerConn, dir string) {
	current := ""
	for _, part := range strings.Split(strings.Trim(dir, "/"), "/") {
		if part == "" {
			continue
		}
		current += "/" + part
		_ = conn.MakeDir(current)
	}
}

func (s *FTPStorage) Upload(ctx context.Context, file io.Reader, p string, contentType string) (string, error) {
	key, remote, err := s.remotePath(p)
	if err != nil {
		return "", err
	}

	conn, err := s.connect(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Quit()

	mkdirAll(conn, path.Dir(remote))
	if err := conn.Stor(remote, file); err != nil {
		return "", fmt.Errorf("ftp store %s: %w", remote, err)
	}

	slog.Info("Uploaded file to FTP", "path", remote)
	return key, nil
}

// ftpReadCloser closes the data transfer before the control connection.
type ftpReadCloser struct {
	*ftp.Response
	conn *ftp.ServerConn
}

func (r *ftpReadCloser) Close() error {
	err := r.Response.Close()
	if qErr := r.conn.Quit(); err == nil {
		err = qErr
	}
	return err
}

func (s *FTPStorage) Download(ctx context.Context, p string) (io.ReadCloser, error) {
	_, remote, err := s.remotePath(p)
	if err != nil {
		return nil, err
	}

	conn, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := conn.Retr(remote)
	if err != nil {
		_ = conn.Quit()
		if isFTPNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, p)
		}
		return nil, fmt.Errorf("ftp retrieve %s: %w", remote, err)
	}

	return &ftpReadCloser{Response: resp, conn: conn}, nil
}

func (s *FTPStorage) Delete(ctx context.Context, p string) error {
	_, remote, err := s.remotePath(p)
	if err != nil {
		return err
	}

	conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Quit()

	if err := conn.Delete(remote); err != nil && !isFTPNotFound(err) {
		return fmt.Errorf("ftp delete %s: %w", remote, err)
	}
	return nil
}

func (s *FTPStorage) GetURL(ctx context.Context, p string, expiry time.Duration) (string, error) {
	key, err := cleanKey(p)
	if err != nil {
		return "", err
	}
	return publicURL(s.baseURL, key), nil
}

func (s *FTPStorage) Exists(ctx context.Context, p string) (bool, error) {
	_, remote, err := s.remotePath(p)
	if err != nil {
		return false, err
	}

	conn, err := s.connect(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Quit()

	if _, err := conn.FileSize(remote); err != nil {
		if isFTPNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("ftp size %s: %w", remote, err)
	}
	return true, nil
}
