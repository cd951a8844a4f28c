package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/bilgisen/dashboard/internal/config"
	"github.com/bilgisen/dashboard/internal/models"
	"github.com/bilgisen/dashboard/internal/probe"
	"github.com/spf13/cobra"
)

type checkFlags struct {
	url     string
	route   string
	asJSON  bool
	retries int
	timeout time.Duration
}

func newCheckCmd() *cobra.Command {
	f := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a running dashboard server",
		Long:  "Fetches the dashboard root and the AI analysis route from a running server and reports what came back.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.url, "url", "", "server base URL (default from PORT)")
	flags.StringVar(&f.route, "route", "", "analysis route (default from AI_ANALYSIS_ROUTE)")
	flags.BoolVar(&f.asJSON, "json", false, "print the report as JSON")
	flags.IntVar(&f.retries, "retries", probe.DefaultConfig.RetryCount, "retries per request")
	flags.DurationVar(&f.timeout, "timeout", probe.DefaultConfig.Timeout, "timeout per request")

	return cmd
}

func runCheck(cmd *cobra.Command, f *checkFlags) error {
	if f.url == "" || f.route == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if f.url == "" {
			f.url = cfg.URL()
		}
		if f.route == "" {
			f.route = cfg.AnalysisRoute
		}
	}

	prober := probe.NewProber(probe.Config{
		Timeout:       f.timeout,
		RetryCount:    f.retries,
		RetryWaitTime: probe.DefaultConfig.RetryWaitTime,
	})
	report := prober.Check(cmd.Context(), f.url, f.route)

	out := cmd.OutOrStdout()
	if f.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(out, report)
	}

	if !report.Healthy {
		return fmt.Errorf("dashboard at %s is not healthy", report.BaseURL)
	}
	return nil
}

func printReport(w io.Writer, report models.ProbeReport) {
	fmt.Fprintf(w, "dashboard server: %s\n", report.BaseURL)
	for _, r := range []models.ProbeResult{report.Dashboard, report.Analysis} {
		mark := "✅"
		if !r.OK() {
			mark = "❌"
		}
		if r.Error != "" {
			fmt.Fprintf(w, "%s %-9s %s\n", mark, r.Name, r.Error)
			continue
		}
		fmt.Fprintf(w, "%s %-9s %d %s (%d bytes)", mark, r.Name, r.StatusCode, r.ContentType, r.Size)
		if r.SHA256 != "" {
			fmt.Fprintf(w, " sha256=%s", r.SHA256[:12])
		}
		fmt.Fprintln(w)
	}
}
