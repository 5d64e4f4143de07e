package run

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"

	"github.com/keshon/litterbox"
	"github.com/keshon/litterbox/internal/cli"
	"github.com/keshon/litterbox/internal/exitcode"
	"github.com/keshon/litterbox/internal/render"
)

type Command struct{}

func (c *Command) Name() string      { return "run" }
func (c *Command) Aliases() []string { return []string{"r"} }
func (c *Command) Usage() string     { return "run [-c config] [-root dir] [-trace] -- <command> [args...]" }
func (c *Command) Brief() string     { return "Run a command and fail if it litters the tree" }

func (c *Command) Help() string {
	return `Snapshot the protected tree, run the given command, snapshot again and
report every path the command created or deleted.

Options:
  -c <file>    Config file (default: .litterbox.yml if present)
  -root <dir>  Directory tree to protect (default: working directory)
  -trace       Record transient paths (created and removed during the run)

Exit codes:
  0  tree came back clean
  1  litter found
  2  invalid configuration
  3  snapshot walk failed
  A failing command keeps its own exit code; litter is still reported.
`
}

func (c *Command) Run(ctx *cli.Context) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	cfgPath := fs.String("c", "", "config file")
	root := fs.String("root", "", "directory tree to protect")
	trace := fs.Bool("trace", false, "record transient paths")
	if err := fs.Parse(ctx.Args); err != nil {
		return exitcode.Wrap(exitcode.InvalidConfig, err)
	}

	child := fs.Args()
	if len(child) == 0 {
		return exitcode.Wrap(exitcode.InvalidConfig,
			fmt.Errorf("no command given; usage: litterbox %s", c.Usage()))
	}

	cfg, err := litterbox.LoadConfigOrDefault(*cfgPath)
	if err != nil {
		return exitcode.Wrap(exitcode.InvalidConfig, err)
	}
	if *root != "" {
		cfg.Root = *root
	}
	cfg.Trace = cfg.Trace || *trace

	d, err := litterbox.New(cfg)
	if err != nil {
		return exitcode.Wrap(exitcode.InvalidConfig, err)
	}

	if err := d.Begin(); err != nil {
		return exitcode.Wrap(exitcode.SnapshotFailure, err)
	}

	childErr := execChild(child)

	rep, err := d.End()
	if err != nil {
		return exitcode.Wrap(exitcode.SnapshotFailure, err)
	}

	render.Report(os.Stdout, d.Root(), rep)

	// the child's own failure wins the exit code, litter stays visible above
	if childErr != nil {
		code := exitcode.RuntimeError
		var xe *exec.ExitError
		if errors.As(childErr, &xe) {
			code = xe.ExitCode()
		}
		return exitcode.Wrap(code, fmt.Errorf("command failed: %w", childErr))
	}

	if !rep.Clean() {
		return exitcode.Wrap(exitcode.LitterFound,
			fmt.Errorf("litter detected under %s", d.Root()))
	}
	return nil
}

func execChild(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func init() {
	cli.RegisterCommand(
		cli.ApplyMiddlewares(
			&Command{},
			cli.WithWorkdirCheck(),
		),
	)
}
