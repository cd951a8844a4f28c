package probe

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bilgisen/dashboard/internal/models"
	"github.com/bilgisen/dashboard/internal/utils"
	"github.com/go-resty/resty/v2"
)

// Prober checks a running dashboard server
type Prober struct {
	client *resty.Client
}

// Config controls the probe client
type Config struct {
	Timeout       time.Duration
	RetryCount    int
	RetryWaitTime time.Duration
}

// DefaultConfig is used when NewProber gets no config
var DefaultConfig = Config{
	Timeout:       10 * time.Second,
	RetryCount:    3,
	RetryWaitTime: 500 * time.Millisecond,
}

func NewProber(config ...Config) *Prober {
	cfg := DefaultConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	return &Prober{
		client: resty.New().
			SetTimeout(cfg.Timeout).
			SetRetryCount(cfg.RetryCount).
			SetRetryWaitTime(cfg.RetryWaitTime).
			SetRetryMaxWaitTime(4 * cfg.RetryWaitTime).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				return err != nil || r.StatusCode() >= http.StatusInternalServerError
			}),
	}
}

// Check fetches the dashboard root and the analysis route of the server at baseURL
func (p *Prober) Check(ctx context.Context, baseURL, analysisRoute string) models.ProbeReport {
	base := strings.TrimRight(baseURL, "/")

	report := models.ProbeReport{
		BaseURL:   base,
		Dashboard: p.Fetch(ctx, "dashboard", base+"/"),
		Analysis:  p.Fetch(ctx, "analysis", base+analysisRoute),
	}
	report.Healthy = report.Dashboard.OK()

	return report
}

// Fetch performs a single GET and records what came back
func (p *Prober) Fetch(ctx context.Context, name, url string) models.ProbeResult {
	result := models.ProbeResult{Name: name, URL: url}

	resp, err := p.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		result.Error = fmt.Sprintf("failed to fetch %s: %v", url, err)
		return result
	}

	body := resp.Body()
	result.StatusCode = resp.StatusCode()
	result.ContentType = resp.Header().Get("Content-Type")
	result.Size = len(body)
	if resp.StatusCode() == http.StatusOK {
		result.SHA256 = utils.Hash(body)
	}

	return result
}
