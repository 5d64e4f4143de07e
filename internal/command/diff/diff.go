package diff

import (
	"flag"
	"fmt"
	"os"

	"github.com/keshon/litterbox"
	"github.com/keshon/litterbox/internal/cli"
	"github.com/keshon/litterbox/internal/exitcode"
	"github.com/keshon/litterbox/internal/ignore"
	"github.com/keshon/litterbox/internal/render"
	"github.com/keshon/litterbox/internal/snapshot"
)

type Command struct{}

func (c *Command) Name() string      { return "diff" }
func (c *Command) Aliases() []string { return []string{"d"} }
func (c *Command) Usage() string     { return "diff [-c config] <snapshot.json>" }
func (c *Command) Brief() string     { return "Compare a saved snapshot against the live tree" }

func (c *Command) Help() string {
	return `Load a snapshot previously written by "scan -o" and report every path
created or deleted since it was taken. The saved snapshot's root is the
tree being compared; ignore entries come from the config.

Exit codes match "run": 0 clean, 1 litter found.
`
}

func (c *Command) Run(ctx *cli.Context) error {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	cfgPath := fs.String("c", "", "config file")
	if err := fs.Parse(ctx.Args); err != nil {
		return exitcode.Wrap(exitcode.InvalidConfig, err)
	}

	if fs.NArg() != 1 {
		return exitcode.Wrap(exitcode.InvalidConfig,
			fmt.Errorf("expected a snapshot file; usage: litterbox %s", c.Usage()))
	}

	cfg, err := litterbox.LoadConfigOrDefault(*cfgPath)
	if err != nil {
		return exitcode.Wrap(exitcode.InvalidConfig, err)
	}

	saved, err := snapshot.Load(fs.Arg(0))
	if err != nil {
		return exitcode.Wrap(exitcode.SnapshotFailure, err)
	}

	current, err := snapshot.Take(saved.Root, ignore.New(cfg.Ignore))
	if err != nil {
		return exitcode.Wrap(exitcode.SnapshotFailure, err)
	}

	d, err := snapshot.Compare(saved, current)
	if err != nil {
		return exitcode.Wrap(exitcode.RuntimeError, err)
	}

	rep := &litterbox.Report{Created: d.Created, Deleted: d.Deleted}
	render.Report(os.Stdout, saved.Root, rep)

	if !rep.Clean() {
		return exitcode.Wrap(exitcode.LitterFound,
			fmt.Errorf("tree drifted from snapshot %s", saved.ID))
	}
	return nil
}

func init() {
	cli.RegisterCommand(
		cli.ApplyMiddlewares(
			&Command{},
			cli.WithWorkdirCheck(),
		),
	)
}
