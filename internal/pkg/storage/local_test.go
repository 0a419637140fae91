package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads/")
	require.NoError(t, err)

	key, err := s.Upload(ctx, strings.NewReader("hello"), "forms/2025/a.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "forms/2025/a.txt", key)

	ok, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := s.Download(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "hello", string(body))

	url, err := s.GetURL(ctx, key, 0)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/forms/2025/a.txt", url)

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key))

	ok, err = s.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Download(ctx, key)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost/uploads")
	require.NoError(t, err)

	for _, p := range []string{"../escape.txt", "a/../../b.txt", "..\\win.txt", ""} {
		_, err := s.Upload(ctx, strings.NewReader("x"), p, "text/plain")
		assert.ErrorIs(t, err, ErrInvalidPath, p)
	}
}

func TestCleanKey(t *testing.T) {
	key, err := cleanKey("/forms//2025/./a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "forms/2025/a.pdf", key)

	key, err = cleanKey("forms\\b.pdf")
	require.NoError(t, err)
	assert.Equal(t, "forms/b.pdf", key)
}

func TestNew(t *testing.T) {
	s, err := New(config.StorageConfig{Type: "local", BasePath: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "local", s.Backend())

	s, err = New(config.StorageConfig{Type: "ftp", FTP: config.FTPConfig{Host: "ftp.local", Port: 21}})
	require.NoError(t, err)
	assert.Equal(t, "ftp", s.Backend())

	_, err = New(config.StorageConfig{Type: "sftp", FTP: config.FTPConfig{HostKey: "not a key"}})
	assert.Error(t, err)

	_, err = New(config.StorageConfig{Type: "s3"})
	assert.Error(t, err)
}

func TestFTPStorage_RemotePath(t *testing.T) {
	s := NewFTPStorage(config.FTPConfig{RootDir: "attachments"}, "")
	key, remote, err := s.remotePath("forms/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "forms/a.pdf", key)
	assert.Equal(t, "/attachments/forms/a.pdf", remote)

	_, _, err = s.remotePath("../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidPath)
}
