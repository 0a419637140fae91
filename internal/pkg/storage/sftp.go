package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/config"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// SFTPStorage keeps attachments on an SSH file server, one session per operation.
type SFTPStorage struct {
	cfg       config.FTPConfig
	baseURL   string
	sshConfig *ssh.ClientConfig
}

func NewSFTPStorage(cfg config.FTPConfig, baseURL string) (*SFTPStorage, error) {
	hostKey, _, _, _, err := ssh.ParseAuthorizedKey([]byte(cfg.HostKey))
	if err != nil {
		return nil, fmt.Errorf("invalid SFTP host key: %w", err)
	}

	return &SFTPStorage{
		cfg:     cfg,
		baseURL: baseURL,
		sshConfig: &ssh.ClientConfig{
			User:            cfg.User,
			Auth:            []ssh.AuthMethod{ssh.Password(cfg.Password)},
			HostKeyCallback: ssh.FixedHostKey(hostKey),
			Timeout:         cfg.Timeout,
		},
	}, nil
}

func (s *SFTPStorage) Backend() string { return "sftp" }

type sftpSession struct {
	ssh  *ssh.Client
	sftp *sftp.Client
}

func (c *sftpSession) Close() error {
	err := c.sftp.Close()
	if sErr := c.ssh.Close(); err == nil {
		err = sErr
	}
	return err
}

func (s *SFTPStorage) connect(ctx context.Context) (*sftpSession, error) {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	dialer := net.Dialer{Timeout: s.cfg.Timeout}
	netConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("sftp dial %s: %w", addr, err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(netConn, addr, s.sshConfig)
	if err != nil {
		netConn.Close()
		return nil, fmt.Errorf("sftp handshake: %w", err)
	}
	sshClient := ssh.NewClient(sshConn, chans, reqs)

	client, err := sftp.NewClient(sshClient)
	if err != nil {
		sshClient.Close()
		return nil, fmt.Errorf("sftp session: %w", err)
	}

	return &sftpSession{ssh: sshClient, sftp: client}, nil
}

func (s *SFTPStorage) remotePath(p string) (string, string, error) {
	key, err := cleanKey(p)
	if err != nil {
		return "", "", err
	}
	return key, path.Join("/", s.cfg.RootDir, key), nil
}

func (s *SFTPStorage) Upload(ctx context.Context, file io.Reader, p string, contentType string) (string, error) {
	key, remote, err := s.remotePath(p)
	if err != nil {
		return "", err
	}

	sess, err := s.connect(ctx)
	if err != nil {
		return "", err
	}
	defer sess.Close()

	if err := sess.sftp.MkdirAll(path.Dir(remote)); err != nil {
		return "", fmt.Errorf("sftp mkdir: %w", err)
	}

	dst, err := sess.sftp.Create(remote)
	if err != nil {
		return "", fmt.Errorf("sftp create %s: %w", remote, err)
	}
	if _, err := dst.ReadFrom(file); err != nil {
		dst.Close()
		_ = sess.sftp.Remove(remote)
		return "", fmt.Errorf("sftp write %s: %w", remote, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("sftp close %s: %w", remote, err)
	}

	slog.Info("Uploaded file to SFTP", "path", remote)
	return key, nil
}

type sftpReadCloser struct {
	*sftp.File
	sess *sftpSession
}

func (r *sftpReadCloser) Close() error {
	err := r.File.Close()
	if sErr := r.sess.Close(); err == nil {
		err = sErr
	}
	return err
}

func (s *SFTPStorage) Download(ctx context.Context, p string) (io.ReadCloser, error) {
	_, remote, err := s.remotePath(p)
	if err != nil {
		return nil, err
	}

	sess, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	f, err := sess.sftp.Open(remote)
	if err != nil {
		sess.Close()
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, p)
		}
		return nil, fmt.Errorf("sftp open %s: %w", remote, err)
	}

	return &sftpReadCloser{File: f, sess: sess}, nil
}

func (s *SFTPStorage) Delete(ctx context.Context, p string) error {
	_, remote, err := s.remotePath(p)
	if err != nil {
		return err
	}

	sess, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.sftp.Remove(remote); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("sftp remove %s: %w", remote, err)
	}
	return nil
}

func (s *SFTPStorage) GetURL(ctx context.Context, p string, expiry time.Duration) (string, error) {
	key, err := cleanKey(p)
	if err != nil {
		return "", err
	}
	return publicURL(s.baseURL, key), nil
}

func (s *SFTPStorage) Exists(ctx context.Context, p string) (bool, error) {
	_, remote, err := s.remotePath(p)
	if err != nil {
		return false, err
	}

	sess, err := s.connect(ctx)
	if err != nil {
		return false, err
	}
	defer sess.Close()

	if _, err := sess.sftp.Stat(remote); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("sftp stat %s: %w", remote, err)
	}
	return true, nil
}
