package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/dkrylov/shiftline/internal/contract"
	"github.com/dkrylov/shiftline/schema"
)

// ErrDestinationLocked means the destination workbook could not be replaced
// because some other program holds it open.
var ErrDestinationLocked = errors.New("destination workbook is open elsewhere, close the file first")

// hostRetryAttempts is how many times the host strategy is tried before
// falling back to the portable copier.
const hostRetryAttempts = 3

// CopyJob describes one consolidation run handed to a SheetCopier: pull the
// named sheet out of every source workbook into a fresh workbook at DestPath.
type CopyJob struct {
	Sources   []string
	SheetName string
	DestPath  string
	Progress  func(pct float64) // 0-100 within the copy phase, may be nil
}

// SheetCopier is one mechanism for producing the consolidated workbook.
type SheetCopier interface {
	Name() schema.CopyStrategy
	Copy(ctx context.Context, job CopyJob) (int, error)
}

// Consolidator merges the day sheet of every source workbook into a single
// file for the shift meeting. It prefers the external automation host when
// one is configured, retrying transient faults, and falls back to the
// in-process copier.
type Consolidator struct {
	cfg           *contract.Config
	reporter      contract.Reporter
	fast          SheetCopier // nil when no host command is configured
	fallback      SheetCopier
	retryInterval time.Duration
}

// NewConsolidator builds a consolidator over cfg, reporting through reporter.
func NewConsolidator(cfg *contract.Config, reporter contract.Reporter) *Consolidator {
	c := &Consolidator{
		cfg:           cfg,
		reporter:      reporter,
		fallback:      &portableCopier{},
		retryInterval: time.Second,
	}
	if c.reporter == nil {
		c.reporter = contract.NopReporter{}
	}
	if cfg.HostCommand != "" {
		c.fast = newHostCopier(cfg.HostCommand)
	}
	return c
}

// newConsolidatorWithCopiers wires explicit copiers. Used by tests.
func newConsolidatorWithCopiers(cfg *contract.Config, reporter contract.Reporter, fast, fallback SheetCopier) *Consolidator {
	c := NewConsolidator(cfg, reporter)
	c.fast = fast
	c.fallback = fallback
	return c
}

// Run produces the consolidated workbook from the configured source paths
// and reports which strategy made it.
func (c *Consolidator) Run(ctx context.Context) (*schema.ConsolidationResult, error) {
	return c.RunSources(ctx, c.cfg.FilePaths)
}

// RunSources consolidates the given source workbooks. Ingestion uses this to
// consolidate only the lines that actually produced a record, skipping
// sources whose sheets were missing or empty. A locked destination fails the
// whole run immediately: there is no point copying sheets into a file that
// cannot be written.
func (c *Consolidator) RunSources(ctx context.Context, sources []string) (*schema.ConsolidationResult, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no source workbooks to consolidate")
	}

	dest := c.destPath()
	if err := c.prepareDestination(dest); err != nil {
		return nil, err
	}
	c.reporter.Progress(5)

	job := CopyJob{
		Sources:   sources,
		SheetName: fmt.Sprintf("%d", c.cfg.Date.Day),
		DestPath:  dest,
		Progress: func(pct float64) {
			// The copy phase occupies the 10-90 band of the overall run;
			// 95 is the finalize milestone, 100 is done.
			c.reporter.Progress(10 + pct*0.80)
		},
	}

	if c.fast != nil {
		count, err := c.copyWithRetry(ctx, c.fast, job)
		if err == nil {
			c.reporter.Progress(95)
			c.reporter.Progress(100)
			return &schema.ConsolidationResult{
				SheetCount: count,
				Strategy:   c.fast.Name(),
				OutputPath: dest,
			}, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		contract.LogWarn("host copy failed, falling back to portable strategy", err)
		c.reporter.Log(fmt.Sprintf("Host copy failed (%v), using portable strategy", err))
	}

	count, err := c.fallback.Copy(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("consolidating into %s: %w", dest, err)
	}
	c.reporter.Progress(95)
	c.reporter.Progress(100)
	return &schema.ConsolidationResult{
		SheetCount: count,
		Strategy:   c.fallback.Name(),
		OutputPath: dest,
	}, nil
}

// copyWithRetry drives one copier through exponential backoff: three
// attempts total, one second before the second try, doubling after.
func (c *Consolidator) copyWithRetry(ctx context.Context, copier SheetCopier, job CopyJob) (int, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval
	policy.Multiplier = 2
	policy.RandomizationFactor = 0

	var count int
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		if attempt > 1 {
			c.reporter.Log(fmt.Sprintf("Retrying host copy (attempt %d of %d)", attempt, hostRetryAttempts))
		}
		var copyErr error
		count, copyErr = copier.Copy(ctx, job)
		return copyErr
	}, backoff.WithContext(backoff.WithMaxRetries(policy, hostRetryAttempts-1), ctx))
	return count, err
}

// destPath returns the configured destination, defaulting to a dated file in
// the working directory.
func (c *Consolidator) destPath() string {
	if c.cfg.Destination != "" {
		return c.cfg.Destination
	}
	return fmt.Sprintf("consolidated_%s.xlsx", c.cfg.Date.ISO())
}

// prepareDestination deletes any previous consolidated workbook so the run
// always starts from a clean file. A remove failure on an existing file
// means the workbook is held open.
func (c *Consolidator) prepareDestination(dest string) error {
	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating destination directory: %w", err)
		}
	}
	if err := os.Remove(dest); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrDestinationLocked, dest)
	}
	return nil
}
