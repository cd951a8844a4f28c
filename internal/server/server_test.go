package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bilgisen/dashboard/internal/config"
	"github.com/bilgisen/dashboard/internal/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOpener mocks browser.Opener
type MockOpener struct {
	mock.Mock
}

func (m *MockOpener) Open(url string) error {
	args := m.Called(url)
	return args.Error(0)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	dist := filepath.Join(dir, "dist")
	require.NoError(t, os.MkdirAll(dist, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "index.html"), []byte("<html>dashboard</html>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "app.js"), []byte("console.log(1)"), 0644))

	return &config.Config{
		Host:            "127.0.0.1",
		Port:            0,
		ShutdownTimeout: 2 * time.Second,
		DashboardDir:    dist,
		IndexFile:       "index.html",
		AnalysisPath:    filepath.Join(dir, "results", "ai_analysis.json"),
		AnalysisRoute:   "/data/ai_analysis.json",
		LogLevel:        "info",
	}
}

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestRunServesAndOpensBrowser(t *testing.T) {
	cfg := testConfig(t)
	cfg.WatchFiles = true

	opened := make(chan string, 1)
	opener := new(MockOpener)
	opener.On("Open", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { opened <- args.String(0) }).
		Return(nil).
		Once()

	var banner bytes.Buffer
	srv, err := New(Options{Config: cfg, Opener: opener, Logger: nopLogger(), Out: &banner})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	var url string
	select {
	case url = <-opened:
	case err := <-done:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("browser was never opened")
	}

	assert.Regexp(t, `^http://localhost:\d+$`, url)
	assert.Equal(t, srv.URL(), url)

	resp, err := http.Get(url + "/app.js")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/javascript", resp.Header.Get("Content-Type"))
	assert.Equal(t, "console.log(1)", string(body))

	resp, err = http.Get(url + "/data/ai_analysis.json")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	opener.AssertExpectations(t)
	assert.Contains(t, banner.String(), "Server running at: "+url)
	assert.Contains(t, banner.String(), "Press Ctrl+C to stop the server")
}

func TestRunBrowserFailureIsNotFatal(t *testing.T) {
	cfg := testConfig(t)

	opened := make(chan struct{}, 1)
	opener := new(MockOpener)
	opener.On("Open", mock.Anything).
		Run(func(mock.Arguments) { opened <- struct{}{} }).
		Return(errors.New("xdg-open: not found"))

	srv, err := New(Options{Config: cfg, Opener: opener, Logger: nopLogger(), Out: io.Discard})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	select {
	case <-opened:
	case <-time.After(5 * time.Second):
		t.Fatal("browser was never opened")
	}

	resp, err := http.Get(srv.URL() + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	assert.NoError(t, <-done)
}

func TestRunBindFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := testConfig(t)
	cfg.Port = ln.Addr().(*net.TCPAddr).Port

	opener := new(MockOpener)
	srv, err := New(Options{Config: cfg, Opener: opener, Logger: nopLogger(), Out: io.Discard})
	require.NoError(t, err)

	err = srv.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")

	opener.AssertNotCalled(t, "Open", mock.Anything)
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	printBanner(&buf, "http://localhost:3000")

	out := buf.String()
	assert.Contains(t, out, "AI-Driven DevSecOps Dashboard")
	assert.Contains(t, out, "✅ Server running at: http://localhost:3000")
	assert.Contains(t, out, "✅ Dashboard ready!")
}

func TestRunWithoutWatchableDirectories(t *testing.T) {
	cfg := testConfig(t)
	cfg.WatchFiles = true
	cfg.DashboardDir = filepath.Join(t.TempDir(), "not-built")
	cfg.AnalysisPath = filepath.Join(t.TempDir(), "no-results", "ai_analysis.json")

	var logs bytes.Buffer
	log := logger.New(&logs, "info", false)

	opened := make(chan struct{}, 1)
	opener := new(MockOpener)
	opener.On("Open", mock.Anything).
		Run(func(mock.Arguments) { opened <- struct{}{} }).
		Return(nil)

	srv, err := New(Options{Config: cfg, Opener: opener, Logger: &log, Out: io.Discard})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	select {
	case <-opened:
	case err := <-done:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("browser was never opened")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	assert.Contains(t, logs.String(), "File watcher not started")
}
