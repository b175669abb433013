package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrylov/shiftline/internal/contract"
	"github.com/dkrylov/shiftline/schema"
)

// stubCopier fails a set number of times, then succeeds. It records the
// last job it was handed and reports copy-phase progress like a real copier.
type stubCopier struct {
	strategy schema.CopyStrategy
	failures int
	calls    int
	sheets   int
	lastJob  CopyJob
}

func (s *stubCopier) Name() schema.CopyStrategy { return s.strategy }

func (s *stubCopier) Copy(_ context.Context, job CopyJob) (int, error) {
	s.calls++
	s.lastJob = job
	if s.calls <= s.failures {
		return 0, errors.New("transient host fault")
	}
	if job.Progress != nil {
		job.Progress(50)
		job.Progress(100)
	}
	return s.sheets, nil
}

func consolidateConfig(t *testing.T) *contract.Config {
	t.Helper()
	return &contract.Config{
		FilePaths:   []string{"line1.xlsx", "line2.xlsx"},
		Date:        schema.ShiftDate{Day: 15, Month: 3, Year: 2025},
		Destination: filepath.Join(t.TempDir(), "consolidated.xlsx"),
	}
}

func newTestConsolidator(cfg *contract.Config, fast, fallback SheetCopier) *Consolidator {
	c := newConsolidatorWithCopiers(cfg, contract.NopReporter{}, fast, fallback)
	c.retryInterval = time.Millisecond
	return c
}

func TestConsolidateHostSucceedsAfterRetry(t *testing.T) {
	fast := &stubCopier{strategy: schema.HostStrategy, failures: 2, sheets: 2}
	fallback := &stubCopier{strategy: schema.PortableStrategy, sheets: 2}

	c := newTestConsolidator(consolidateConfig(t), fast, fallback)
	res, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, schema.HostStrategy, res.Strategy)
	assert.Equal(t, 2, res.SheetCount)
	assert.Equal(t, 3, fast.calls)
	assert.Equal(t, 0, fallback.calls)
}

func TestConsolidateFallsBackToPortable(t *testing.T) {
	fast := &stubCopier{strategy: schema.HostStrategy, failures: 10}
	fallback := &stubCopier{strategy: schema.PortableStrategy, sheets: 2}

	cfg := consolidateConfig(t)
	c := newTestConsolidator(cfg, fast, fallback)
	res, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, schema.PortableStrategy, res.Strategy)
	assert.Equal(t, 3, fast.calls, "host gets exactly three attempts")
	assert.Equal(t, 1, fallback.calls)
	assert.Equal(t, cfg.Destination, res.OutputPath)
}

func TestConsolidateWithoutHostUsesPortableDirectly(t *testing.T) {
	fallback := &stubCopier{strategy: schema.PortableStrategy, sheets: 1}

	c := newTestConsolidator(consolidateConfig(t), nil, fallback)
	res, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, schema.PortableStrategy, res.Strategy)
	assert.Equal(t, 1, fallback.calls)
}

func TestConsolidateLockedDestination(t *testing.T) {
	cfg := consolidateConfig(t)

	// A non-empty directory at the destination path cannot be removed,
	// which is how an undeletable destination presents itself.
	require.NoError(t, os.MkdirAll(cfg.Destination, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Destination, "x"), []byte("x"), 0o644))

	fast := &stubCopier{strategy: schema.HostStrategy, sheets: 2}
	c := newTestConsolidator(cfg, fast, &stubCopier{strategy: schema.PortableStrategy})

	_, err := c.Run(context.Background())
	require.ErrorIs(t, err, ErrDestinationLocked)
	assert.Equal(t, 0, fast.calls, "a locked destination fails before any copying")
}

func TestConsolidateCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fast := &stubCopier{strategy: schema.HostStrategy, failures: 10}
	c := newTestConsolidator(consolidateConfig(t), fast, &stubCopier{strategy: schema.PortableStrategy})

	_, err := c.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestConsolidateDefaultDestination(t *testing.T) {
	cfg := consolidateConfig(t)
	cfg.Destination = ""

	c := NewConsolidator(cfg, nil)
	assert.Equal(t, "consolidated_2025-03-15.xlsx", c.destPath())
}

func TestConsolidateRunSourcesSubset(t *testing.T) {
	fallback := &stubCopier{strategy: schema.PortableStrategy, sheets: 1}

	c := newTestConsolidator(consolidateConfig(t), nil, fallback)
	res, err := c.RunSources(context.Background(), []string{"line2.xlsx"})
	require.NoError(t, err)

	assert.Equal(t, 1, res.SheetCount)
	assert.Equal(t, []string{"line2.xlsx"}, fallback.lastJob.Sources,
		"only the requested sources reach the copier, not the full configured set")
}

func TestConsolidateRunSourcesEmpty(t *testing.T) {
	c := newTestConsolidator(consolidateConfig(t), nil, &stubCopier{strategy: schema.PortableStrategy})
	_, err := c.RunSources(context.Background(), nil)
	require.Error(t, err)
}

func TestConsolidateProgressMilestones(t *testing.T) {
	rep := &testReporter{}
	cfg := consolidateConfig(t)
	c := newConsolidatorWithCopiers(cfg, rep, nil, &stubCopier{strategy: schema.PortableStrategy, sheets: 2})
	c.retryInterval = time.Millisecond

	_, err := c.Run(context.Background())
	require.NoError(t, err)

	// 5 prepare, 10-90 copy band, 95 finalize, 100 done.
	require.Len(t, rep.progress, 5)
	assert.Equal(t, 5.0, rep.progress[0])
	assert.InDelta(t, 50, rep.progress[1], 1e-9)
	assert.InDelta(t, 90, rep.progress[2], 1e-9)
	assert.Equal(t, 95.0, rep.progress[3])
	assert.Equal(t, 100.0, rep.progress[4])
}
