package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*Storage, string) {
	t.Helper()

	dir := t.TempDir()
	root := filepath.Join(dir, "dist")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<html>Y</html>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "assets", "app.js"), []byte("X"), 0644))

	s, err := NewStorage(root, "index.html", filepath.Join(dir, "results", "ai_analysis.json"))
	require.NoError(t, err)
	return s, dir
}

func TestAssetPath(t *testing.T) {
	s, _ := newTestStorage(t)
	root := s.Root()

	tests := []struct {
		urlPath string
		want    string
	}{
		{"/", filepath.Join(root, "index.html")},
		{"/index.html", filepath.Join(root, "index.html")},
		{"/assets/app.js", filepath.Join(root, "assets", "app.js")},
		{"/assets/../index.html", filepath.Join(root, "index.html")},
		{"/../../etc/passwd", filepath.Join(root, "etc", "passwd")},
		{"/a//b/./c.css", filepath.Join(root, "a", "b", "c.css")},
	}

	for _, tt := range tests {
		t.Run(tt.urlPath, func(t *testing.T) {
			assert.Equal(t, tt.want, s.AssetPath(tt.urlPath))
		})
	}
}

func TestReadAsset(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	data, err := s.ReadAsset(ctx, "/assets/app.js")
	require.NoError(t, err)
	assert.Equal(t, "X", string(data))

	data, err = s.ReadAsset(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, "<html>Y</html>", string(data))

	_, err = s.ReadAsset(ctx, "/missing.js")
	require.Error(t, err)
	assert.True(t, IsNotExist(err))
	assert.Equal(t, "ENOENT", ErrorCode(err))
}

func TestReadIndex(t *testing.T) {
	s, _ := newTestStorage(t)

	data, err := s.ReadIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "<html>Y</html>", string(data))

	require.NoError(t, os.Remove(s.IndexPath()))
	_, err = s.ReadIndex(context.Background())
	assert.True(t, IsNotExist(err))
}

func TestReadAnalysis(t *testing.T) {
	s, dir := newTestStorage(t)
	ctx := context.Background()

	_, err := s.ReadAnalysis(ctx)
	assert.True(t, IsNotExist(err))

	payload := []byte(`{"vulnerabilities":[{"id":"CVE-2024-0001","severity":"high"}]}`)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "results"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "results", "ai_analysis.json"), payload, 0644))

	data, err := s.ReadAnalysis(ctx)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestReadHonorsCancelledContext(t *testing.T) {
	s, _ := newTestStorage(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ReadAsset(ctx, "/assets/app.js")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsNotExist(err))
}

func TestErrorCodeDirectory(t *testing.T) {
	s, _ := newTestStorage(t)

	_, err := s.ReadAsset(context.Background(), "/assets")
	require.Error(t, err)
	assert.False(t, IsNotExist(err))
	assert.Equal(t, "EISDIR", ErrorCode(err))
}

func TestErrorCodeNotDirectory(t *testing.T) {
	s, _ := newTestStorage(t)

	_, err := s.ReadAsset(context.Background(), "/index.html/nested")
	require.Error(t, err)
	assert.False(t, IsNotExist(err))
	assert.Equal(t, "ENOTDIR", ErrorCode(err))
}

func TestErrorCodePermission(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	s, _ := newTestStorage(t)

	locked := filepath.Join(s.Root(), "locked.css")
	require.NoError(t, os.WriteFile(locked, []byte("body{}"), 0000))

	_, err := s.ReadAsset(context.Background(), "/locked.css")
	require.Error(t, err)
	assert.False(t, IsNotExist(err))
	assert.Equal(t, "EACCES", ErrorCode(err))
}
