package scan

import (
	"errors"
	"testing"

	sharederrors "github.com/buihoanganh/webcheck/internal/shared/errors"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]Status{
		"pass":    StatusPass,
		"PASS":    StatusPass,
		"passed":  StatusPass,
		"ok":      StatusPass,
		"warning": StatusWarning,
		"Warn":    StatusWarning,
		"fail":    StatusFail,
		"FAILED":  StatusFail,
		"error":   StatusFail,
		" pass ":  StatusPass,
		"":        StatusUnknown,
		"bogus":   StatusUnknown,
		"unknown": StatusUnknown,
	}
	for raw, want := range cases {
		if got := NormalizeStatus(raw); got != want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestParseCategories(t *testing.T) {
	cats, err := ParseCategories([]string{"SSL", "headers", "ssl", "ports"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Category{CategorySSL, CategoryHeaders, CategoryPorts}
	if len(cats) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(cats))
	}
	for i, c := range want {
		if cats[i] != c {
			t.Fatalf("category %d: expected %s, got %s", i, c, cats[i])
		}
	}
}

func TestParseCategoriesUnknown(t *testing.T) {
	_, err := ParseCategories([]string{"ssl", "malware"})
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	if !errors.Is(err, sharederrors.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestResultRequestedOrder(t *testing.T) {
	res := &Result{
		Domain: "example.com",
		Categories: map[Category][]Finding{
			CategorySubdomains: {},
			CategorySSL:        {},
			CategoryPorts:      {},
		},
	}
	got := res.Requested()
	want := []Category{CategorySSL, CategoryPorts, CategorySubdomains}
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestResultNormalize(t *testing.T) {
	res := &Result{
		Domain: "example.com",
		Categories: map[Category][]Finding{
			CategorySSL: {
				{Name: "Certificate Expiration", Status: "Passed"},
				{Name: "Cipher Strength", Status: "weird"},
			},
		},
	}
	res.Normalize()

	findings := res.Findings(CategorySSL)
	if findings[0].Status != StatusPass {
		t.Fatalf("expected pass, got %s", findings[0].Status)
	}
	if findings[1].Status != StatusUnknown {
		t.Fatalf("expected unknown, got %s", findings[1].Status)
	}
	if res.Provenance != ProvenanceBackend {
		t.Fatalf("expected backend provenance default, got %s", res.Provenance)
	}
}

func TestResultNormalizeSyntheticProvenance(t *testing.T) {
	res := &Result{Domain: "example.com", Synthetic: true, Categories: map[Category][]Finding{}}
	res.Normalize()
	if res.Provenance != ProvenanceSynthetic {
		t.Fatalf("expected synthetic provenance, got %s", res.Provenance)
	}
}
