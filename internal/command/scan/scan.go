package scan

import (
	"flag"
	"fmt"
	"os"

	"github.com/keshon/litterbox"
	"github.com/keshon/litterbox/internal/cli"
	"github.com/keshon/litterbox/internal/exitcode"
	"github.com/keshon/litterbox/internal/ignore"
	"github.com/keshon/litterbox/internal/snapshot"
)

type Command struct{}

func (c *Command) Name() string      { return "scan" }
func (c *Command) Aliases() []string { return []string{"ls"} }
func (c *Command) Usage() string     { return "scan [-c config] [-root dir] [-o file]" }
func (c *Command) Brief() string     { return "Print or save a snapshot of the protected tree" }

func (c *Command) Help() string {
	return `Enumerate every entry under the protected tree and print its relative
path. The snapshot fingerprint identifies the exact entry set.

Options:
  -c <file>    Config file (default: .litterbox.yml if present)
  -root <dir>  Directory tree to protect (default: working directory)
  -o <file>    Save the snapshot as JSON instead of listing paths
`
}

func (c *Command) Run(ctx *cli.Context) error {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	cfgPath := fs.String("c", "", "config file")
	root := fs.String("root", "", "directory tree to protect")
	out := fs.String("o", "", "save snapshot to file")
	if err := fs.Parse(ctx.Args); err != nil {
		return exitcode.Wrap(exitcode.InvalidConfig, err)
	}

	cfg, err := litterbox.LoadConfigOrDefault(*cfgPath)
	if err != nil {
		return exitcode.Wrap(exitcode.InvalidConfig, err)
	}
	if *root != "" {
		cfg.Root = *root
	}
	if err := cfg.Validate(); err != nil {
		return exitcode.Wrap(exitcode.InvalidConfig, err)
	}

	snap, err := snapshot.Take(cfg.Root, ignore.New(cfg.Ignore))
	if err != nil {
		return exitcode.Wrap(exitcode.SnapshotFailure, err)
	}

	if *out != "" {
		if err := snap.Save(*out); err != nil {
			return exitcode.Wrap(exitcode.RuntimeError, fmt.Errorf("save snapshot: %w", err))
		}
		fmt.Printf("Saved snapshot of %s (%d entries, id %s) to %s\n",
			snap.Root, snap.Len(), snap.ID, *out)
		return nil
	}

	fmt.Printf("Snapshot of %s (%d entries, id %s)\n", snap.Root, snap.Len(), snap.ID)
	for _, p := range snap.Paths {
		fmt.Fprintf(os.Stdout, "  %s\n", p)
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
