package models

// ProbeResult describes one endpoint fetched from a running dashboard server
type ProbeResult struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
	SHA256      string `json:"sha256,omitempty"`
	Error       string `json:"error,omitempty"`
}

// OK reports whether the endpoint answered 200
func (r ProbeResult) OK() bool {
	return r.Error == "" && r.StatusCode == 200
}

// ProbeReport is the outcome of a dashboard check
type ProbeReport struct {
	BaseURL   string      `json:"base_url"`
	Dashboard ProbeResult `json:"dashboard"`
	Analysis  ProbeResult `json:"analysis"`
	Healthy   bool        `json:"healthy"`
}
