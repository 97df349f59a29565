// Package orchestrator dispatches one scan request to a finding producer
// and applies the fallback policy when the real backend cannot serve it.
package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/buihoanganh/webcheck/internal/scan"
	consts "github.com/buihoanganh/webcheck/internal/shared/constants"
	sharederrors "github.com/buihoanganh/webcheck/internal/shared/errors"
	"go.uber.org/zap"
)

// Producer obtains findings for a set of categories in one call. Both the
// backend client and the synthetic generator satisfy it.
type Producer interface {
	Scan(ctx context.Context, domain string, categories []scan.Category) (*scan.Result, error)
}

// Orchestrator validates scan requests and runs them against the backend,
// substituting synthetic findings when the backend fails. Availability wins
// over accuracy here; provenance tagging on the result is what keeps the
// substitution honest.
type Orchestrator struct {
	backend  Producer
	fallback Producer
	timeout  time.Duration
	logger   *zap.Logger
}

// New builds an orchestrator. A zero timeout uses the default scan window.
func New(backend, fallback Producer, timeout time.Duration, logger *zap.Logger) *Orchestrator {
	if timeout <= 0 {
		timeout = consts.ScanTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{backend: backend, fallback: fallback, timeout: timeout, logger: logger}
}

// Run executes one scan. Validation failures are terminal and reported to
// the caller; backend failures of any kind (not configured, unreachable,
// timeout, non-success response) are absorbed by generating synthetic
// findings for every requested category, so the caller always receives a
// complete, well-formed result.
func (o *Orchestrator) Run(ctx context.Context, domain string, categories []scan.Category) (*scan.Result, error) {
	if err := scan.ValidateDomain(domain); err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, sharederrors.ErrNoCategories
	}

	scanCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()
	result, err := o.backend.Scan(scanCtx, domain, categories)
	if err == nil {
		o.logger.Info("scan_complete",
			zap.String("domain", domain),
			zap.Int("categories", len(categories)),
			zap.Duration("duration", time.Since(start)),
			zap.String("provenance", string(result.Provenance)),
		)
		return result, nil
	}

	// Not configured and unreachable are different operator problems; log
	// them apart even though the recovery is the same.
	if errors.Is(err, sharederrors.ErrBackendNotConfigured) {
		o.logger.Warn("backend not configured, generating synthetic findings",
			zap.String("domain", domain))
	} else {
		o.logger.Warn("backend unavailable, generating synthetic findings",
			zap.String("domain", domain),
			zap.Error(err))
	}

	// The synthetic producer does no I/O, so the original (possibly
	// expired) scan context is not reused for it.
	return o.fallback.Scan(context.WithoutCancel(ctx), domain, categories)
}
