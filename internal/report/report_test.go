package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/buihoanganh/webcheck/internal/scan"
	sharederrors "github.com/buihoanganh/webcheck/internal/shared/errors"
)

func sampleResult() *scan.Result {
	return &scan.Result{
		Domain:     "example.com",
		Timestamp:  time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC),
		Synthetic:  false,
		Provenance: scan.ProvenanceBackend,
		Categories: map[scan.Category][]scan.Finding{
			scan.CategorySSL: {
				{Name: "SSL Certificate Valid", Status: scan.StatusPass, Description: "Certificate is valid and trusted"},
				{Name: "Certificate Expiration", Status: scan.StatusWarning, Description: "Certificate expires soon", Details: "Expires in 21 days"},
			},
			scan.CategoryPorts: {
				{Name: "Exposed Services", Status: scan.StatusFail, Description: "Unexpected open port detected", Details: "Port 8080 open", Mitigation: "Close or firewall the port"},
			},
		},
	}
}

func renderSample(t *testing.T, format Format) *Document {
	t.Helper()
	res := sampleResult()
	m := scan.ComputeMetrics(res)
	doc, err := Render(res, m, Options{
		Format:      format,
		GeneratedAt: time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("render %s: %v", format, err)
	}
	return doc
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"json":     FormatJSON,
		"JSON":     FormatJSON,
		"md":       FormatMarkdown,
		"markdown": FormatMarkdown,
		"html":     FormatHTML,
		" pdf ":    FormatPDF,
	}
	for raw, want := range cases {
		got, err := ParseFormat(raw)
		if err != nil {
			t.Errorf("ParseFormat(%q): unexpected error %v", raw, err)
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %q, want %q", raw, got, want)
		}
	}

	if _, err := ParseFormat("docx"); !errors.Is(err, sharederrors.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestRenderContainsEveryFinding(t *testing.T) {
	res := sampleResult()
	for _, format := range []Format{FormatJSON, FormatMarkdown, FormatHTML} {
		doc := renderSample(t, format)
		body := string(doc.Data)
		for _, cat := range res.Requested() {
			for _, f := range res.Findings(cat) {
				if !strings.Contains(body, f.Name) {
					t.Errorf("%s output missing finding name %q", format, f.Name)
				}
				if !strings.Contains(body, string(f.Status)) {
					t.Errorf("%s output missing status %q for %q", format, f.Status, f.Name)
				}
			}
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	// PDF is excluded: gofpdf stamps its own creation date into the
	// document metadata.
	for _, format := range []Format{FormatJSON, FormatMarkdown, FormatHTML} {
		a := renderSample(t, format)
		b := renderSample(t, format)
		if !bytes.Equal(a.Data, b.Data) {
			t.Errorf("%s output not deterministic for a fixed GeneratedAt", format)
		}
	}
}

func TestRenderJSONShape(t *testing.T) {
	doc := renderSample(t, FormatJSON)
	if doc.ContentType != "application/json" {
		t.Fatalf("unexpected content type %q", doc.ContentType)
	}

	var payload struct {
		Result struct {
			Domain    string `json:"domain"`
			Synthetic bool   `json:"synthetic"`
		} `json:"result"`
		Metrics struct {
			Score int `json:"score"`
		} `json:"metrics"`
		RiskLevel string `json:"risk_level"`
		Status    string `json:"status"`
	}
	if err := json.Unmarshal(doc.Data, &payload); err != nil {
		t.Fatalf("undecodable json report: %v", err)
	}
	if payload.Result.Domain != "example.com" {
		t.Fatalf("unexpected domain %q", payload.Result.Domain)
	}
	if payload.Result.Synthetic {
		t.Fatal("backend result must not be marked synthetic")
	}
	// 1 pass of 3 findings => round(100/3) = 33
	if payload.Metrics.Score != 33 {
		t.Fatalf("unexpected score %d", payload.Metrics.Score)
	}
	if payload.RiskLevel != "High" || payload.Status != "AT RISK" {
		t.Fatalf("unexpected risk fields: %q / %q", payload.RiskLevel, payload.Status)
	}
}

func TestRenderMarkdownSyntheticBanner(t *testing.T) {
	res := sampleResult()
	res.Synthetic = true
	res.Provenance = scan.ProvenanceSynthetic
	m := scan.ComputeMetrics(res)
	doc, err := Render(res, m, Options{Format: FormatMarkdown, GeneratedAt: time.Now()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(doc.Data), "SYNTHETIC") {
		t.Fatal("synthetic report must carry the synthetic banner")
	}

	live := renderSample(t, FormatMarkdown)
	if strings.Contains(string(live.Data), "SYNTHETIC") {
		t.Fatal("backend report must not carry the synthetic banner")
	}
}

func TestRenderPDF(t *testing.T) {
	doc := renderSample(t, FormatPDF)
	if doc.ContentType != "application/pdf" {
		t.Fatalf("unexpected content type %q", doc.ContentType)
	}
	if !bytes.HasPrefix(doc.Data, []byte("%PDF")) {
		t.Fatal("pdf output missing %PDF header")
	}
	if doc.Filename != "example_com_security_report.pdf" {
		t.Fatalf("unexpected filename %q", doc.Filename)
	}
}

func TestRenderEmptyResult(t *testing.T) {
	_, err := Render(nil, scan.Metrics{}, Options{Format: FormatJSON})
	if !errors.Is(err, sharederrors.ErrRenderFailure) {
		t.Fatalf("expected ErrRenderFailure for nil result, got %v", err)
	}

	_, err = Render(&scan.Result{}, scan.Metrics{}, Options{Format: FormatJSON})
	if !errors.Is(err, sharederrors.ErrRenderFailure) {
		t.Fatalf("expected ErrRenderFailure for empty domain, got %v", err)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	res := sampleResult()
	_, err := Render(res, scan.ComputeMetrics(res), Options{Format: Format("docx")})
	if !errors.Is(err, sharederrors.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("api.example.co.uk", FormatHTML); got != "api_example_co_uk_security_report.html" {
		t.Fatalf("unexpected filename %q", got)
	}
}
