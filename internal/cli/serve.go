package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bilgisen/dashboard/internal/browser"
	"github.com/bilgisen/dashboard/internal/config"
	"github.com/bilgisen/dashboard/internal/logger"
	"github.com/bilgisen/dashboard/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type serveFlags struct {
	host     string
	port     int
	dir      string
	analysis string
	noOpen   bool
	noWatch  bool
	logLevel string
}

func newServeCmd() *cobra.Command {
	f := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard server",
		Long:  "Serves the dashboard build output with SPA fallback and the AI analysis file, then opens the browser.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.host, "host", "", "interface to bind (env HOST)")
	flags.IntVarP(&f.port, "port", "p", 3000, "port to listen on (env PORT)")
	flags.StringVarP(&f.dir, "dir", "d", "dashboard/dist", "dashboard build output directory (env DASHBOARD_DIR)")
	flags.StringVarP(&f.analysis, "analysis", "a", "results/ai_analysis.json", "AI analysis JSON file (env AI_ANALYSIS_PATH)")
	flags.BoolVar(&f.noOpen, "no-open", false, "do not open the browser (env OPEN_BROWSER=false)")
	flags.BoolVar(&f.noWatch, "no-watch", false, "do not watch files for changes (env WATCH_FILES=false)")
	flags.StringVar(&f.logLevel, "log-level", "info", "log level (env LOG_LEVEL)")

	return cmd
}

func runServe(cmd *cobra.Command, f *serveFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyServeFlags(cfg, cmd.Flags(), f)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	output := cfg.LogFile
	if output == "" {
		output = "stdout"
	}
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: output,
		Pretty: cfg.LogPretty,
	}); err != nil {
		return err
	}
	log := logger.Get()

	var opener browser.Opener = browser.Noop{}
	if cfg.OpenBrowser {
		opener = browser.NewCommandOpener()
	}

	srv, err := server.New(server.Options{
		Config: cfg,
		Opener: opener,
		Logger: log,
		Out:    cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Server error")
		return err
	}
	return nil
}

// applyServeFlags overrides configuration with flags set explicitly on the
// command line.
func applyServeFlags(cfg *config.Config, flags *pflag.FlagSet, f *serveFlags) {
	if flags.Changed("host") {
		cfg.Host = f.host
	}
	if flags.Changed("port") {
		cfg.Port = f.port
	}
	if flags.Changed("dir") {
		cfg.DashboardDir = f.dir
	}
	if flags.Changed("analysis") {
		cfg.AnalysisPath = f.analysis
	}
	if flags.Changed("no-open") {
		cfg.OpenBrowser = !f.noOpen
	}
	if flags.Changed("no-watch") {
		cfg.WatchFiles = !f.noWatch
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
}
