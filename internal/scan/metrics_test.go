package scan

import (
	"reflect"
	"testing"
	"time"
)

func findingsWithStatus(status Status, n int) []Finding {
	findings := make([]Finding, n)
	for i := range findings {
		findings[i] = Finding{Name: "check", Status: status, Description: "desc"}
	}
	return findings
}

func TestCountByStatus(t *testing.T) {
	findings := []Finding{
		{Status: StatusPass},
		{Status: StatusPass},
		{Status: StatusWarning},
		{Status: StatusFail},
		{Status: StatusUnknown},
		{Status: Status("passed")}, // raw string that skipped normalization
	}
	counts := CountByStatus(findings)
	if counts.Pass != 2 || counts.Warning != 1 || counts.Fail != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestComputeMetricsEmptyResult(t *testing.T) {
	res := &Result{Domain: "example.com", Categories: map[Category][]Finding{}}
	m := ComputeMetrics(res)
	if m.Score != 0 {
		t.Fatalf("expected score 0 for empty result, got %d", m.Score)
	}
	if m.TotalFindings != 0 {
		t.Fatalf("expected 0 findings, got %d", m.TotalFindings)
	}
}

func TestComputeMetricsAllPass(t *testing.T) {
	res := &Result{
		Domain: "example.com",
		Categories: map[Category][]Finding{
			CategorySSL:     findingsWithStatus(StatusPass, 3),
			CategoryHeaders: findingsWithStatus(StatusPass, 2),
		},
	}
	m := ComputeMetrics(res)
	if m.Score != 100 {
		t.Fatalf("expected score 100, got %d", m.Score)
	}
}

func TestComputeMetricsScenario(t *testing.T) {
	// 3 ssl passes + 1 header fail => round(100*3/4) = 75
	res := &Result{
		Domain: "example.com",
		Categories: map[Category][]Finding{
			CategorySSL:     findingsWithStatus(StatusPass, 3),
			CategoryHeaders: findingsWithStatus(StatusFail, 1),
		},
	}
	m := ComputeMetrics(res)
	if m.TotalFindings != 4 {
		t.Fatalf("expected 4 findings, got %d", m.TotalFindings)
	}
	if m.PassCount != 3 || m.FailCount != 1 {
		t.Fatalf("unexpected counts: %+v", m)
	}
	if m.Score != 75 {
		t.Fatalf("expected score 75, got %d", m.Score)
	}
}

func TestComputeMetricsUnknownInflatesDenominator(t *testing.T) {
	// 1 pass + 1 unknown: unknown is excluded from the numerators but kept
	// in the denominator, so the score is 50, not 100.
	res := &Result{
		Domain: "example.com",
		Categories: map[Category][]Finding{
			CategorySSL: {
				{Name: "a", Status: StatusPass},
				{Name: "b", Status: StatusUnknown},
			},
		},
	}
	m := ComputeMetrics(res)
	if m.TotalFindings != 2 {
		t.Fatalf("expected 2 findings, got %d", m.TotalFindings)
	}
	if m.PassCount+m.WarningCount+m.FailCount != 1 {
		t.Fatalf("expected only one counted finding, got %+v", m)
	}
	if m.Score != 50 {
		t.Fatalf("expected score 50, got %d", m.Score)
	}
}

func TestComputeMetricsRoundsHalfUp(t *testing.T) {
	// 1 pass of 8 findings = 12.5 -> 13
	res := &Result{
		Domain: "example.com",
		Categories: map[Category][]Finding{
			CategoryPorts: append(findingsWithStatus(StatusPass, 1), findingsWithStatus(StatusFail, 7)...),
		},
	}
	if m := ComputeMetrics(res); m.Score != 13 {
		t.Fatalf("expected score 13, got %d", m.Score)
	}
}

func TestComputeMetricsBounds(t *testing.T) {
	res := &Result{
		Domain: "example.com",
		Categories: map[Category][]Finding{
			CategorySSL:        findingsWithStatus(StatusFail, 5),
			CategoryHeaders:    findingsWithStatus(StatusWarning, 3),
			CategoryPorts:      findingsWithStatus(StatusPass, 4),
			CategorySubdomains: findingsWithStatus(StatusUnknown, 2),
		},
	}
	m := ComputeMetrics(res)
	if m.Score < 0 || m.Score > 100 {
		t.Fatalf("score out of bounds: %d", m.Score)
	}
	if m.PassCount+m.WarningCount+m.FailCount > m.TotalFindings {
		t.Fatalf("counted findings exceed total: %+v", m)
	}
}

func TestComputeMetricsIdempotent(t *testing.T) {
	res := &Result{
		Domain:    "example.com",
		Timestamp: time.Now(),
		Categories: map[Category][]Finding{
			CategorySSL:     findingsWithStatus(StatusPass, 2),
			CategoryHeaders: findingsWithStatus(StatusWarning, 1),
		},
	}
	first := ComputeMetrics(res)
	second := ComputeMetrics(res)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("metrics not idempotent: %+v vs %+v", first, second)
	}
}

func TestComputeMetricsPerCategory(t *testing.T) {
	res := &Result{
		Domain: "example.com",
		Categories: map[Category][]Finding{
			CategorySSL:   findingsWithStatus(StatusPass, 2),
			CategoryPorts: findingsWithStatus(StatusFail, 1),
		},
	}
	m := ComputeMetrics(res)
	if m.PerCategory[CategorySSL].Pass != 2 {
		t.Fatalf("unexpected ssl counts: %+v", m.PerCategory[CategorySSL])
	}
	if m.PerCategory[CategoryPorts].Fail != 1 {
		t.Fatalf("unexpected ports counts: %+v", m.PerCategory[CategoryPorts])
	}
	if _, ok := m.PerCategory[CategoryHeaders]; ok {
		t.Fatal("headers was not requested, should not appear in per-category counts")
	}
}

func TestCriticalIssuesAndWarningsOrder(t *testing.T) {
	res := &Result{
		Domain: "example.com",
		Categories: map[Category][]Finding{
			CategoryPorts: {
				{Name: "port-fail-1", Status: StatusFail},
				{Name: "port-warn-1", Status: StatusWarning},
				{Name: "port-fail-2", Status: StatusFail},
			},
			CategorySSL: {
				{Name: "ssl-fail", Status: StatusFail},
				{Name: "ssl-pass", Status: StatusPass},
			},
		},
	}

	critical := CriticalIssues(res)
	wantNames := []string{"ssl-fail", "port-fail-1", "port-fail-2"}
	if len(critical) != len(wantNames) {
		t.Fatalf("expected %d critical issues, got %d", len(wantNames), len(critical))
	}
	for i, name := range wantNames {
		if critical[i].Finding.Name != name {
			t.Fatalf("critical %d: expected %s, got %s", i, name, critical[i].Finding.Name)
		}
	}
	if critical[0].Category != CategorySSL {
		t.Fatalf("expected ssl category annotation, got %s", critical[0].Category)
	}

	warnings := Warnings(res)
	if len(warnings) != 1 || warnings[0].Finding.Name != "port-warn-1" {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}
}

func TestRiskLevels(t *testing.T) {
	cases := []struct {
		score  int
		level  string
		status string
	}{
		{95, "Low", "SECURE"},
		{80, "Low", "SECURE"},
		{79, "Medium", "CAUTION"},
		{50, "Medium", "CAUTION"},
		{49, "High", "AT RISK"},
		{0, "High", "AT RISK"},
	}
	for _, tc := range cases {
		m := Metrics{Score: tc.score}
		if got := m.RiskLevel(); got != tc.level {
			t.Errorf("score %d: expected risk %s, got %s", tc.score, tc.level, got)
		}
		if got := m.StatusLabel(); got != tc.status {
			t.Errorf("score %d: expected status %s, got %s", tc.score, tc.status, got)
		}
	}
}
