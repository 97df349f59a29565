package scan

import (
	"fmt"
	"strings"
	"time"

	sharederrors "github.com/buihoanganh/webcheck/internal/shared/errors"
)

// Status is the canonical outcome of a single check.
type Status string

const (
	StatusPass    Status = "pass"
	StatusWarning Status = "warning"
	StatusFail    Status = "fail"
	// StatusUnknown marks findings whose producer emitted an unrecognized
	// status string. Unknown findings are reported but never counted toward
	// the pass/warning/fail tallies.
	StatusUnknown Status = "unknown"
)

// NormalizeStatus folds the status spellings seen from producers into the
// canonical set. Comparison is case-insensitive; anything outside the known
// synonyms becomes StatusUnknown.
func NormalizeStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pass", "passed", "ok", "success":
		return StatusPass
	case "warning", "warn":
		return StatusWarning
	case "fail", "failed", "error":
		return StatusFail
	default:
		return StatusUnknown
	}
}

// Category is one of the four fixed scan dimensions.
type Category string

const (
	CategorySSL        Category = "ssl"
	CategoryHeaders    Category = "headers"
	CategoryPorts      Category = "ports"
	CategorySubdomains Category = "subdomains"
)

// Categories lists the four dimensions in report order.
var Categories = []Category{CategorySSL, CategoryHeaders, CategoryPorts, CategorySubdomains}

// Title returns the human-readable section heading for a category.
func (c Category) Title() string {
	switch c {
	case CategorySSL:
		return "SSL/TLS Certificate"
	case CategoryHeaders:
		return "Security Headers"
	case CategoryPorts:
		return "Open Ports"
	case CategorySubdomains:
		return "Subdomains"
	}
	return string(c)
}

// ParseCategory maps a raw category name onto one of the four dimensions.
func ParseCategory(raw string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "ssl":
		return CategorySSL, nil
	case "headers":
		return CategoryHeaders, nil
	case "ports":
		return CategoryPorts, nil
	case "subdomains":
		return CategorySubdomains, nil
	}
	return "", fmt.Errorf("%w: %q", sharederrors.ErrUnknownCategory, raw)
}

// ParseCategories parses a list of raw category names, dropping duplicates
// while preserving first-seen order.
func ParseCategories(raw []string) ([]Category, error) {
	seen := make(map[Category]struct{}, len(raw))
	cats := make([]Category, 0, len(raw))
	for _, r := range raw {
		c, err := ParseCategory(r)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		cats = append(cats, c)
	}
	return cats, nil
}

// Finding is one discrete check result with its supporting evidence.
type Finding struct {
	Name        string `json:"name"`
	Status      Status `json:"status"`
	Description string `json:"description"`
	Details     string `json:"details,omitempty"`
	Where       string `json:"where,omitempty"`
	Risk        string `json:"risk,omitempty"`
	Mitigation  string `json:"mitigation,omitempty"`
}

// NewFinding builds a finding with its status normalized at the construction
// boundary so nothing deeper in the pipeline compares raw strings.
func NewFinding(name, status, description string) Finding {
	return Finding{
		Name:        name,
		Status:      NormalizeStatus(status),
		Description: description,
	}
}

// Provenance records which producer assembled a result.
type Provenance string

const (
	ProvenanceBackend   Provenance = "backend"
	ProvenanceSynthetic Provenance = "synthetic"
)

// Result is one completed scan. It is assembled once and treated as
// immutable afterwards; metrics and reports are derived from it, never
// written back into it.
type Result struct {
	Domain     string                 `json:"domain"`
	Timestamp  time.Time              `json:"timestamp"`
	Categories map[Category][]Finding `json:"categories"`
	// Synthetic is true when the findings were fabricated because the real
	// scanner backend could not serve the request.
	Synthetic  bool       `json:"synthetic"`
	Provenance Provenance `json:"provenance"`
}

// Requested returns the categories present in the result, in report order.
// An absent category was not requested; it is not the same as a category
// that produced zero findings.
func (r *Result) Requested() []Category {
	cats := make([]Category, 0, len(r.Categories))
	for _, c := range Categories {
		if _, ok := r.Categories[c]; ok {
			cats = append(cats, c)
		}
	}
	return cats
}

// Findings returns the ordered findings for one category.
func (r *Result) Findings(c Category) []Finding {
	return r.Categories[c]
}

// Normalize re-applies status normalization to every finding. Results
// decoded from JSON pass through here so hand-edited or foreign files obey
// the same canonical vocabulary as producer output.
func (r *Result) Normalize() {
	for c, findings := range r.Categories {
		for i := range findings {
			findings[i].Status = NormalizeStatus(string(findings[i].Status))
		}
		r.Categories[c] = findings
	}
	if r.Provenance == "" {
		if r.Synthetic {
			r.Provenance = ProvenanceSynthetic
		} else {
			r.Provenance = ProvenanceBackend
		}
	}
}
