// Package server runs the dashboard HTTP app: it binds the port, prints the
// startup banner, opens the browser and shuts down when its context ends.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/bilgisen/dashboard/internal/api"
	"github.com/bilgisen/dashboard/internal/browser"
	"github.com/bilgisen/dashboard/internal/config"
	"github.com/bilgisen/dashboard/internal/logger"
	"github.com/bilgisen/dashboard/internal/storage"
	"github.com/bilgisen/dashboard/internal/watch"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Options wires a Server. Only Config is required.
type Options struct {
	Config *config.Config
	Opener browser.Opener  // default: browser.Noop
	Logger *zerolog.Logger // default: logger.Get()
	Out    io.Writer       // banner output, default: os.Stdout
}

// Server serves the dashboard build output and the AI analysis artifact.
type Server struct {
	cfg    *config.Config
	app    *fiber.App
	store  *storage.Storage
	opener browser.Opener
	log    *zerolog.Logger
	out    io.Writer
	port   int
}

func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		return nil, errors.New("server: config is required")
	}
	if opts.Opener == nil {
		opts.Opener = browser.Noop{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Get()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	store, err := storage.NewStorage(opts.Config.DashboardDir, opts.Config.IndexFile, opts.Config.AnalysisPath)
	if err != nil {
		return nil, err
	}

	app, err := api.NewApp(api.Options{
		Storage:       store,
		AnalysisRoute: opts.Config.AnalysisRoute,
		Logger:        opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    opts.Config,
		app:    app,
		store:  store,
		opener: opts.Opener,
		log:    opts.Logger,
		out:    opts.Out,
		port:   opts.Config.Port,
	}
	app.Hooks().OnListen(s.onListen)

	return s, nil
}

// App exposes the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// URL returns the address opened in the browser.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}

// Run binds the listening socket and serves until ctx is cancelled. A bind
// failure is returned immediately and nothing is served.
func (s *Server) Run(ctx context.Context) error {
	addr := s.cfg.Addr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.port = ln.Addr().(*net.TCPAddr).Port

	if s.cfg.WatchFiles {
		w, err := watch.NewWatcher(s.store, s.log)
		if err != nil {
			s.log.Warn().Err(err).Msg("File watcher unavailable")
		} else if err := w.Start(nil); err != nil {
			s.log.Warn().Err(err).Msg("File watcher not started")
			w.Stop()
		} else {
			defer w.Stop()
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listener(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		s.log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	if err := <-errCh; err != nil {
		return err
	}

	s.log.Info().Msg("Server exited properly")
	return nil
}

func (s *Server) onListen(fiber.ListenData) error {
	url := s.URL()

	s.log.Info().
		Int("port", s.port).
		Str("dashboard_dir", s.store.Root()).
		Str("analysis_path", s.store.AnalysisPath()).
		Msg("Dashboard server listening")

	printBanner(s.out, url)

	if err := s.opener.Open(url); err != nil {
		s.log.Warn().Err(err).Str("url", url).Msg("Could not open browser")
	}
	return nil
}

func printBanner(w io.Writer, url string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, "🚀 AI-Driven DevSecOps Dashboard")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "✅ Server running at: %s\n", url)
	fmt.Fprintln(w, "✅ Dashboard ready!")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Press Ctrl+C to stop the server")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w)
}
