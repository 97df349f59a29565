// Package report renders a scan result plus its computed metrics into a
// downloadable document. One renderer, four formats; the format selector is
// the only thing that varies between them.
package report

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmltemplate "html/template"
	"io"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/buihoanganh/webcheck/internal/scan"
	sharederrors "github.com/buihoanganh/webcheck/internal/shared/errors"
)

const (
	jsonPrefix = ""
	jsonIndent = "  "

	timestampLayout = "2006-01-02 15:04:05"
)

//go:embed templates/report.md templates/report.html
var templateFS embed.FS

var (
	markdownTemplate = texttemplate.Must(
		texttemplate.New("report.md").ParseFS(templateFS, "templates/report.md"),
	)
	htmlTemplate = htmltemplate.Must(
		htmltemplate.New("report.html").ParseFS(templateFS, "templates/report.html"),
	)
)

// Format selects the output document type.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
)

// ParseFormat maps a raw format name onto a known Format.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q (must be json, md, html, or pdf)", sharederrors.ErrUnknownFormat, raw)
}

// Document is a rendered report ready to write to disk or an HTTP response.
type Document struct {
	Format      Format
	ContentType string
	Filename    string
	Data        []byte
}

// Options tunes one Render call. A zero GeneratedAt stamps the document
// with the current time; rendering is deterministic apart from that stamp.
type Options struct {
	Format      Format
	GeneratedAt time.Time
}

// Section is one category block in the rendered report.
type Section struct {
	Category scan.Category
	Title    string
	Counts   scan.StatusCounts
	Findings []scan.Finding
}

// TemplateData holds everything the markdown/HTML/PDF layouts need.
type TemplateData struct {
	Domain          string
	ScanDate        string
	GeneratedAt     string
	Synthetic       bool
	Provenance      string
	Score           int
	RiskLevel       string
	StatusLabel     string
	TotalFindings   int
	PassCount       int
	WarningCount    int
	FailCount       int
	Sections        []Section
	Critical        []scan.Issue
	Warnings        []scan.Issue
	Recommendations []string
}

// Render produces the report document for one result and its metrics.
func Render(res *scan.Result, m scan.Metrics, opts Options) (*Document, error) {
	if res == nil || res.Domain == "" {
		return nil, fmt.Errorf("%w: %w", sharederrors.ErrRenderFailure, sharederrors.ErrEmptyResult)
	}
	generatedAt := opts.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	doc := &Document{
		Format:   opts.Format,
		Filename: Filename(res.Domain, opts.Format),
	}
	data := buildTemplateData(res, m, generatedAt)

	var err error
	switch opts.Format {
	case FormatJSON:
		doc.ContentType = "application/json"
		doc.Data, err = renderJSON(res, m, generatedAt)
	case FormatMarkdown:
		doc.ContentType = "text/markdown; charset=utf-8"
		doc.Data, err = executeTemplate(markdownTemplate, data)
	case FormatHTML:
		doc.ContentType = "text/html; charset=utf-8"
		doc.Data, err = executeTemplate(htmlTemplate, data)
	case FormatPDF:
		doc.ContentType = "application/pdf"
		doc.Data, err = renderPDF(data)
	default:
		return nil, fmt.Errorf("%w: %q", sharederrors.ErrUnknownFormat, opts.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sharederrors.ErrRenderFailure, err)
	}
	return doc, nil
}

func buildTemplateData(res *scan.Result, m scan.Metrics, generatedAt time.Time) TemplateData {
	data := TemplateData{
		Domain:          res.Domain,
		ScanDate:        res.Timestamp.Format(timestampLayout),
		GeneratedAt:     generatedAt.Format(timestampLayout),
		Synthetic:       res.Synthetic,
		Provenance:      string(res.Provenance),
		Score:           m.Score,
		RiskLevel:       m.RiskLevel(),
		StatusLabel:     m.StatusLabel(),
		TotalFindings:   m.TotalFindings,
		PassCount:       m.PassCount,
		WarningCount:    m.WarningCount,
		FailCount:       m.FailCount,
		Critical:        scan.CriticalIssues(res),
		Warnings:        scan.Warnings(res),
		Recommendations: recommendations(m),
	}
	for _, c := range res.Requested() {
		data.Sections = append(data.Sections, Section{
			Category: c,
			Title:    c.Title(),
			Counts:   m.PerCategory[c],
			Findings: res.Findings(c),
		})
	}
	return data
}

// recommendations builds the remediation bullet list: dynamic lines driven
// by the counts, then the static hardening advice.
func recommendations(m scan.Metrics) []string {
	var recs []string
	if m.FailCount > 0 {
		recs = append(recs, fmt.Sprintf("Address all %d failed checks immediately", m.FailCount))
	}
	if m.WarningCount > 0 {
		recs = append(recs, fmt.Sprintf("Review and resolve %d warning findings", m.WarningCount))
	}
	if m.Score < 80 {
		recs = append(recs, "Implement comprehensive security hardening measures")
	}
	return append(recs,
		"Keep security software and systems updated",
		"Monitor security headers and certificates regularly",
		"Conduct periodic security audits",
		"Implement proper access controls and authentication",
	)
}

type jsonReport struct {
	Result      *scan.Result `json:"result"`
	Metrics     scan.Metrics `json:"metrics"`
	RiskLevel   string       `json:"risk_level"`
	Status      string       `json:"status"`
	Critical    []scan.Issue `json:"critical_issues"`
	Warnings    []scan.Issue `json:"warnings"`
	GeneratedAt time.Time    `json:"generated_at"`
}

func renderJSON(res *scan.Result, m scan.Metrics, generatedAt time.Time) ([]byte, error) {
	return json.MarshalIndent(jsonReport{
		Result:      res,
		Metrics:     m,
		RiskLevel:   m.RiskLevel(),
		Status:      m.StatusLabel(),
		Critical:    scan.CriticalIssues(res),
		Warnings:    scan.Warnings(res),
		GeneratedAt: generatedAt,
	}, jsonPrefix, jsonIndent)
}

// executableTemplate is satisfied by both text/template and html/template.
type executableTemplate interface {
	Execute(wr io.Writer, data any) error
}

func executeTemplate(tmpl executableTemplate, data TemplateData) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename is the download name for a report: dots in the domain become
// underscores, suffixed with the format extension.
func Filename(domain string, format Format) string {
	base := strings.ReplaceAll(domain, ".", "_")
	return fmt.Sprintf("%s_security_report.%s", base, format)
}
