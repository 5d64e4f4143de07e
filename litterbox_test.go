package litterbox_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/keshon/litterbox"
	"github.com/keshon/litterbox/internal/snapshot"
)

func newDetector(t *testing.T, cfg *litterbox.Config) *litterbox.Detector {
	t.Helper()
	d, err := litterbox.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func write(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCleanRun(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.txt")

	d := newDetector(t, &litterbox.Config{Root: root})
	if err := d.Begin(); err != nil {
		t.Fatal(err)
	}

	rep, err := d.End()
	if err != nil {
		t.Fatal(err)
	}
	if !rep.Clean() {
		t.Errorf("untouched tree reported dirty: %s", rep)
	}
	if rep.String() != "" {
		t.Errorf("clean report should render empty, got %q", rep.String())
	}
}

func TestReportsCreatedFile(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.txt")

	d := newDetector(t, &litterbox.Config{Root: root})
	if err := d.Begin(); err != nil {
		t.Fatal(err)
	}

	write(t, root, "b.txt")

	rep, err := d.End()
	if err != nil {
		t.Fatal(err)
	}
	if want := "Created:\n  b.txt"; rep.String() != want {
		t.Errorf("report = %q, want %q", rep.String(), want)
	}
}

func TestReportsDeletedFile(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.txt")
	write(t, root, "b.txt")

	d := newDetector(t, &litterbox.Config{Root: root})
	if err := d.Begin(); err != nil {
		t.Fatal(err)
	}

	if err := os.Remove(filepath.Join(root, "b.txt")); err != nil {
		t.Fatal(err)
	}

	rep, err := d.End()
	if err != nil {
		t.Fatal(err)
	}
	if want := "Deleted:\n  b.txt"; rep.String() != want {
		t.Errorf("report = %q, want %q", rep.String(), want)
	}
}

func TestCreateThenDeleteIsClean(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.txt")

	d := newDetector(t, &litterbox.Config{Root: root})
	if err := d.Begin(); err != nil {
		t.Fatal(err)
	}

	write(t, root, "b.txt")
	if err := os.Remove(filepath.Join(root, "b.txt")); err != nil {
		t.Fatal(err)
	}

	rep, err := d.End()
	if err != nil {
		t.Fatal(err)
	}
	if !rep.Clean() {
		t.Errorf("restored tree reported dirty: %s", rep)
	}
}

func TestRenameReportsBothSides(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.txt")

	d := newDetector(t, &litterbox.Config{Root: root})
	if err := d.Begin(); err != nil {
		t.Fatal(err)
	}

	if err := os.Rename(filepath.Join(root, "a.txt"), filepath.Join(root, "c.txt")); err != nil {
		t.Fatal(err)
	}

	rep, err := d.End()
	if err != nil {
		t.Fatal(err)
	}
	if want := "Created:\n  c.txt\nDeleted:\n  a.txt"; rep.String() != want {
		t.Errorf("report = %q, want %q", rep.String(), want)
	}
}

func TestIgnoredPatternStaysClean(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.txt")

	d := newDetector(t, &litterbox.Config{Root: root, Ignore: []string{"*.log"}})
	if err := d.Begin(); err != nil {
		t.Fatal(err)
	}

	write(t, root, "run.log")

	rep, err := d.End()
	if err != nil {
		t.Fatal(err)
	}
	if !rep.Clean() {
		t.Errorf("whitelisted file reported as litter: %s", rep)
	}
}

func TestLitterInsideCreatedDirectory(t *testing.T) {
	root := t.TempDir()

	d := newDetector(t, &litterbox.Config{Root: root})
	if err := d.Begin(); err != nil {
		t.Fatal(err)
	}

	write(t, root, "tmp/deep/file.txt")

	rep, err := d.End()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"tmp", "tmp/deep", "tmp/deep/file.txt"}
	if !reflect.DeepEqual(rep.Created, want) {
		t.Errorf("Created = %v, want %v", rep.Created, want)
	}
}

func TestEndWithoutBegin(t *testing.T) {
	d := newDetector(t, &litterbox.Config{Root: t.TempDir()})

	if _, err := d.End(); !errors.Is(err, litterbox.ErrNotArmed) {
		t.Fatalf("expected ErrNotArmed, got %v", err)
	}
}

func TestEndTwice(t *testing.T) {
	d := newDetector(t, &litterbox.Config{Root: t.TempDir()})
	if err := d.Begin(); err != nil {
		t.Fatal(err)
	}
	if _, err := d.End(); err != nil {
		t.Fatal(err)
	}

	if _, err := d.End(); !errors.Is(err, litterbox.ErrNotArmed) {
		t.Fatalf("second End should fail cleanly, got %v", err)
	}
}

func TestEndSurvivesRootRemoval(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "workdir")
	if err := os.Mkdir(root, 0o755); err != nil {
		t.Fatal(err)
	}

	d := newDetector(t, &litterbox.Config{Root: root})
	if err := d.Begin(); err != nil {
		t.Fatal(err)
	}

	if err := os.RemoveAll(root); err != nil {
		t.Fatal(err)
	}

	_, err := d.End()
	var we *snapshot.WalkError
	if !errors.As(err, &we) {
		t.Fatalf("expected walk error, got %v", err)
	}

	// per-test state was released regardless
	if _, err := d.End(); !errors.Is(err, litterbox.ErrNotArmed) {
		t.Fatalf("baseline leaked past a failed End: %v", err)
	}
}

func TestNewRejectsBadRoot(t *testing.T) {
	if _, err := litterbox.New(&litterbox.Config{Root: filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Fatal("expected configuration error for missing root")
	}
}

func TestTraceReportsTransientPaths(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.txt")

	d := newDetector(t, &litterbox.Config{Root: root, Trace: true})
	if err := d.Begin(); err != nil {
		t.Fatal(err)
	}

	write(t, root, "scratch.txt")
	time.Sleep(500 * time.Millisecond) // let the watcher see the create
	if err := os.Remove(filepath.Join(root, "scratch.txt")); err != nil {
		t.Fatal(err)
	}

	rep, err := d.End()
	if err != nil {
		t.Fatal(err)
	}
	if !rep.Clean() {
		t.Errorf("transient file must not dirty the report: %s", rep)
	}
	if want := []string{"scratch.txt"}; !reflect.DeepEqual(rep.Transient, want) {
		t.Errorf("Transient = %v, want %v", rep.Transient, want)
	}
	if !strings.Contains(rep.String(), "Transient:\n  scratch.txt") {
		t.Errorf("report = %q", rep.String())
	}
}

// recordingTB captures failures so Check can be tested without failing the
// real test.
type recordingTB struct {
	testing.TB
	name     string
	cleanups []func()
	errs     []string
	logs     []string
}

func (r *recordingTB) Helper()          {}
func (r *recordingTB) Name() string     { return r.name }
func (r *recordingTB) Cleanup(f func()) { r.cleanups = append(r.cleanups, f) }
func (r *recordingTB) Errorf(format string, args ...any) {
	r.errs = append(r.errs, fmt.Sprintf(format, args...))
}
func (r *recordingTB) Fatalf(format string, args ...any) {
	r.errs = append(r.errs, fmt.Sprintf(format, args...))
}
func (r *recordingTB) Logf(format string, args ...any) {
	r.logs = append(r.logs, fmt.Sprintf(format, args...))
}

func (r *recordingTB) runCleanups() {
	for i := len(r.cleanups) - 1; i >= 0; i-- {
		r.cleanups[i]()
	}
}

func TestCheckFailsLitteringTest(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.txt")

	rtb := &recordingTB{name: "TestGuilty"}
	litterbox.CheckWith(rtb, &litterbox.Config{Root: root})

	write(t, root, "leftover.txt")
	rtb.runCleanups()

	if len(rtb.errs) != 1 {
		t.Fatalf("expected one failure, got %v", rtb.errs)
	}
	if !strings.Contains(rtb.errs[0], "TestGuilty") || !strings.Contains(rtb.errs[0], "Created:\n  leftover.txt") {
		t.Errorf("failure message = %q", rtb.errs[0])
	}
}

func TestCheckPassesCleanTest(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.txt")

	rtb := &recordingTB{name: "TestInnocent"}
	litterbox.CheckWith(rtb, &litterbox.Config{Root: root})
	rtb.runCleanups()

	if len(rtb.errs) != 0 {
		t.Fatalf("clean test was failed: %v", rtb.errs)
	}
}

// Check guarding this very test: the module's own test run must not litter
// its temp root.
func TestCheckSelf(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.txt")

	litterbox.CheckWith(t, &litterbox.Config{Root: root})

	data, err := os.ReadFile(filepath.Join(root, "a.txt"))
	if err != nil || string(data) != "x" {
		t.Fatalf("read back: %q, %v", data, err)
	}
}
