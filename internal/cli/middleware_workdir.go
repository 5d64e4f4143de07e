package cli

import (
	"fmt"

	"github.com/keshon/litterbox/internal/fsio"
)

// WithWorkdirCheck ensures the process working directory still exists
// before running the command. A previous run's target may have deleted it.
func WithWorkdirCheck() Middleware {
	return func(cmd Command) Command {
		return &WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *Context) error {
				wd, err := fsio.Getwd()
				if err != nil {
					return fmt.Errorf("working directory is gone: %w", err)
				}
				if !fsio.IsDir(wd) {
					return fmt.Errorf("working directory %q is gone", wd)
				}
				return cmd.Run(ctx)
			},
		}
	}
}
