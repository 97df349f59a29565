package scan

import (
	"math"

	consts "github.com/buihoanganh/webcheck/internal/shared/constants"
)

// StatusCounts is a pass/warning/fail tally for one category or for the
// whole scan.
type StatusCounts struct {
	Pass    int `json:"pass"`
	Warning int `json:"warning"`
	Fail    int `json:"fail"`
}

// CountByStatus tallies findings by canonical status. Findings with an
// unrecognized status increment none of the three counters.
func CountByStatus(findings []Finding) StatusCounts {
	var c StatusCounts
	for _, f := range findings {
		switch f.Status {
		case StatusPass:
			c.Pass++
		case StatusWarning:
			c.Warning++
		case StatusFail:
			c.Fail++
		}
	}
	return c
}

// Metrics is the derived security posture of one scan. It is computed fresh
// from a Result and never mutated in place.
type Metrics struct {
	Score         int                       `json:"score"`
	TotalFindings int                       `json:"total_findings"`
	PassCount     int                       `json:"pass_count"`
	WarningCount  int                       `json:"warning_count"`
	FailCount     int                       `json:"fail_count"`
	PerCategory   map[Category]StatusCounts `json:"per_category"`
}

// ComputeMetrics aggregates per-category counts and derives the 0-100 score.
// The score is round(100 * pass / total) with ties rounded away from zero.
// TotalFindings counts every finding, including unknown-status ones that are
// excluded from the pass/warning/fail numerators; the denominator keeps that
// asymmetry on purpose because changing it changes observable scores.
func ComputeMetrics(res *Result) Metrics {
	m := Metrics{PerCategory: make(map[Category]StatusCounts, len(res.Categories))}
	for _, c := range res.Requested() {
		findings := res.Findings(c)
		counts := CountByStatus(findings)
		m.PerCategory[c] = counts
		m.TotalFindings += len(findings)
		m.PassCount += counts.Pass
		m.WarningCount += counts.Warning
		m.FailCount += counts.Fail
	}
	if m.TotalFindings > 0 {
		m.Score = int(math.Round(100 * float64(m.PassCount) / float64(m.TotalFindings)))
	}
	return m
}

// RiskLevel maps the score onto the Low/Medium/High bands used in reports.
func (m Metrics) RiskLevel() string {
	switch {
	case m.Score >= consts.ScoreSecure:
		return "Low"
	case m.Score >= consts.ScoreCaution:
		return "Medium"
	}
	return "High"
}

// StatusLabel is the headline verdict shown next to the score.
func (m Metrics) StatusLabel() string {
	switch {
	case m.Score >= consts.ScoreSecure:
		return "SECURE"
	case m.Score >= consts.ScoreCaution:
		return "CAUTION"
	}
	return "AT RISK"
}

// Issue annotates a finding with its originating category for the
// remediation lists.
type Issue struct {
	Category Category `json:"category"`
	Finding  Finding  `json:"finding"`
}

// CriticalIssues collects every failed finding across the result in
// category-then-discovery order. Derived fresh on each call.
func CriticalIssues(res *Result) []Issue {
	return collect(res, StatusFail)
}

// Warnings collects every warning finding across the result in
// category-then-discovery order. Derived fresh on each call.
func Warnings(res *Result) []Issue {
	return collect(res, StatusWarning)
}

func collect(res *Result, status Status) []Issue {
	var issues []Issue
	for _, c := range res.Requested() {
		for _, f := range res.Findings(c) {
			if f.Status == status {
				issues = append(issues, Issue{Category: c, Finding: f})
			}
		}
	}
	return issues
}
