package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadAndURL(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "http://localhost:8080/files/")
	require.NoError(t, err)
	ctx := context.Background()

	path, err := s.Upload(ctx, strings.NewReader("%PDF-1.3"), "payslips/2024-05/a.pdf", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "payslips/2024-05/a.pdf", path)

	data, err := os.ReadFile(filepath.Join(dir, "payslips", "2024-05", "a.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))

	// overwrite in place
	_, err = s.Upload(ctx, strings.NewReader("%PDF-1.4"), "payslips/2024-05/a.pdf", "application/pdf")
	require.NoError(t, err)
	data, err = os.ReadFile(filepath.Join(dir, "payslips", "2024-05", "a.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	url, err := s.GetURL(ctx, path, 0)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/payslips/2024-05/a.pdf", url)
}

func TestLocalStorage_StaysInsideBasePath(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(filepath.Join(dir, "root"), "http://x")
	require.NoError(t, err)

	path, err := s.Upload(context.Background(), strings.NewReader("x"), "../../escape.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "escape.txt", path)
	_, err = os.Stat(filepath.Join(dir, "root", "escape.txt"))
	assert.NoError(t, err)

	_, err = s.Upload(context.Background(), strings.NewReader("x"), "/", "text/plain")
	assert.Error(t, err)
}
