// Package litterbox detects unwanted filesystem mutation during test runs.
// It snapshots a directory tree before a test, snapshots it again after,
// and reports every path the test created or deleted in between.
package litterbox

import (
	"errors"
	"testing"

	"github.com/keshon/litterbox/internal/ignore"
	"github.com/keshon/litterbox/internal/snapshot"
	"github.com/keshon/litterbox/internal/tracer"
)

// ErrNotArmed is returned by End when no baseline snapshot is held, e.g.
// when End is called twice for one Begin.
var ErrNotArmed = errors.New("no baseline snapshot armed")

// Detector holds the per-test baseline for one protected root. A detector
// is not safe for concurrent use; parallel test workers each need their own.
type Detector struct {
	cfg     *Config
	matcher *ignore.Matcher

	baseline *snapshot.Snapshot
	trace    *tracer.Tracer
}

// New validates cfg and builds a Detector. A nil cfg protects the process
// working directory with default ignores.
func New(cfg *Config) (*Detector, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Detector{
		cfg:     cfg,
		matcher: ignore.New(cfg.Ignore),
	}, nil
}

// Root returns the directory tree the detector protects.
func (d *Detector) Root() string { return d.cfg.Root }

// Begin takes the baseline snapshot. Call it immediately before the test
// body runs.
func (d *Detector) Begin() error {
	snap, err := snapshot.Take(d.cfg.Root, d.matcher)
	if err != nil {
		return err
	}
	d.baseline = snap

	if d.cfg.Trace {
		// best effort: detection degrades to the plain diff if the
		// tracer cannot start
		if t, err := tracer.Start(d.cfg.Root); err == nil {
			d.trace = t
		}
	}

	return nil
}

// End takes the closing snapshot, diffs it against the baseline and
// releases the baseline whether or not anything went wrong. The test's own
// outcome is irrelevant here; litter found after a failing test is still
// litter.
func (d *Detector) End() (*Report, error) {
	if d.baseline == nil {
		return nil, ErrNotArmed
	}
	before := d.baseline
	d.baseline = nil

	var traced []string
	if d.trace != nil {
		traced = d.trace.Stop()
		d.trace = nil
	}

	after, err := snapshot.Take(d.cfg.Root, d.matcher)
	if err != nil {
		return nil, err
	}

	diff, err := snapshot.Compare(before, after)
	if err != nil {
		return nil, err
	}

	return &Report{
		Created:   diff.Created,
		Deleted:   diff.Deleted,
		Transient: d.transientPaths(traced, after),
	}, nil
}

// transientPaths filters traced create events down to paths that no longer
// exist in the closing snapshot: created and removed within the test.
func (d *Detector) transientPaths(traced []string, after *snapshot.Snapshot) []string {
	var out []string
	for _, p := range traced {
		if after.Has(p) || d.matcher.Match(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Check guards a single Go test: it snapshots now and registers a cleanup
// that fails the test if its tree changed. Usage:
//
//	func TestSomething(t *testing.T) {
//	    litterbox.Check(t)
//	    ...
//	}
func Check(tb testing.TB) {
	tb.Helper()
	CheckWith(tb, nil)
}

// CheckWith is Check with an explicit configuration.
func CheckWith(tb testing.TB, cfg *Config) {
	tb.Helper()

	d, err := New(cfg)
	if err != nil {
		tb.Fatalf("litterbox: %v", err)
	}
	if err := d.Begin(); err != nil {
		tb.Fatalf("litterbox: %v", err)
	}

	tb.Cleanup(func() {
		rep, err := d.End()
		if err != nil {
			tb.Errorf("litterbox: %v", err)
			return
		}
		if !rep.Clean() {
			tb.Errorf("%s littered %s:\n%s", tb.Name(), d.Root(), rep)
			return
		}
		if len(rep.Transient) > 0 {
			tb.Logf("%s created transient paths under %s:\n%s", tb.Name(), d.Root(), rep)
		}
	})
}
