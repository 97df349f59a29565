// Package backend is the HTTP client for the external scanner service that
// performs the actual certificate, header, port and subdomain probing.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/buihoanganh/webcheck/internal/scan"
	sharederrors "github.com/buihoanganh/webcheck/internal/shared/errors"
	"go.uber.org/zap"
)

const (
	scanPath   = "/api/scan"
	reportPath = "/api/report"
	healthPath = "/health"

	// maxResponseBytes caps how much of a backend response we read.
	maxResponseBytes = 8 << 20
)

// Client talks to the scanner backend. A client with an empty base URL is
// valid but unconfigured; every call then fails with
// ErrBackendNotConfigured so the orchestrator can report that condition
// distinctly from an unreachable backend.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *zap.Logger
}

// NewClient builds a backend client. The timeout bounds one full
// multi-category scan, not one category.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Configured reports whether a backend base URL was provided.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

type scanRequest struct {
	Domain string   `json:"domain"`
	Scans  []string `json:"scans"`
}

// wireFinding carries the backend's raw status string; it is normalized into
// the canonical vocabulary before anything downstream sees it.
type wireFinding struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Details     string `json:"details,omitempty"`
	Where       string `json:"where,omitempty"`
	Risk        string `json:"risk,omitempty"`
	Mitigation  string `json:"mitigation,omitempty"`
}

type scanResponse struct {
	Domain     string        `json:"domain"`
	Timestamp  string        `json:"timestamp"`
	SSL        []wireFinding `json:"ssl,omitempty"`
	Headers    []wireFinding `json:"headers,omitempty"`
	Ports      []wireFinding `json:"ports,omitempty"`
	Subdomains []wireFinding `json:"subdomains,omitempty"`
}

// Scan runs one backend scan covering every requested category. Network
// failures, timeouts and non-2xx responses all surface as
// ErrBackendUnavailable.
func (c *Client) Scan(ctx context.Context, domain string, categories []scan.Category) (*scan.Result, error) {
	if !c.Configured() {
		return nil, sharederrors.ErrBackendNotConfigured
	}

	req := scanRequest{Domain: domain, Scans: make([]string, 0, len(categories))}
	for _, cat := range categories {
		req.Scans = append(req.Scans, string(cat))
	}

	body, err := c.post(ctx, scanPath, req)
	if err != nil {
		return nil, err
	}

	var resp scanResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: undecodable scan response: %v", sharederrors.ErrBackendUnavailable, err)
	}

	result := &scan.Result{
		Domain:     domain,
		Timestamp:  parseTimestamp(resp.Timestamp),
		Categories: make(map[scan.Category][]scan.Finding, len(categories)),
		Provenance: scan.ProvenanceBackend,
	}
	sections := map[scan.Category][]wireFinding{
		scan.CategorySSL:        resp.SSL,
		scan.CategoryHeaders:    resp.Headers,
		scan.CategoryPorts:      resp.Ports,
		scan.CategorySubdomains: resp.Subdomains,
	}
	for _, cat := range categories {
		findings := make([]scan.Finding, 0, len(sections[cat]))
		for _, wf := range sections[cat] {
			f := scan.NewFinding(wf.Name, wf.Status, wf.Description)
			f.Details = wf.Details
			f.Where = wf.Where
			f.Risk = wf.Risk
			f.Mitigation = wf.Mitigation
			findings = append(findings, f)
		}
		result.Categories[cat] = findings
	}
	return result, nil
}

// Render asks the backend to render a report document for a result. Callers
// fall back to local rendering when this fails.
func (c *Client) Render(ctx context.Context, res *scan.Result) ([]byte, error) {
	if !c.Configured() {
		return nil, sharederrors.ErrBackendNotConfigured
	}
	return c.post(ctx, reportPath, res)
}

// Health probes the backend liveness endpoint. Diagnostics only; it is not
// part of the scan path.
func (c *Client) Health(ctx context.Context) error {
	if !c.Configured() {
		return sharederrors.ErrBackendNotConfigured
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", sharederrors.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: health returned %d", sharederrors.ErrBackendUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sharederrors.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("backend_request",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned %d", sharederrors.ErrBackendUnavailable, path, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sharederrors.ErrBackendUnavailable, err)
	}
	return body, nil
}

func parseTimestamp(raw string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Now()
}
