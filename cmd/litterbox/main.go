package main

import (
	"fmt"
	"os"

	"github.com/keshon/litterbox/internal/cli"
	_ "github.com/keshon/litterbox/internal/command/diff"
	_ "github.com/keshon/litterbox/internal/command/run"
	_ "github.com/keshon/litterbox/internal/command/scan"
	"github.com/keshon/litterbox/internal/exitcode"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: litterbox <command> [args...]")
		fmt.Println("Available commands:")
		for _, cmd := range cli.AllCommands() {
			fmt.Printf("  %-6s %s\n", cmd.Name(), cmd.Brief())
		}
		os.Exit(0)
	}

	cmdName := os.Args[1]

	if cmdName == "help" {
		if len(os.Args) > 2 {
			if cmd, ok := cli.GetCommand(os.Args[2]); ok {
				fmt.Printf("Usage: litterbox %s\n\n%s", cmd.Usage(), cmd.Help())
				os.Exit(0)
			}
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[2])
			os.Exit(exitcode.RuntimeError)
		}
		fmt.Println("Usage: litterbox <command> [args...]")
		for _, cmd := range cli.AllCommands() {
			fmt.Printf("  %-6s %s\n", cmd.Name(), cmd.Brief())
		}
		os.Exit(0)
	}

	cmd, ok := cli.GetCommand(cmdName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmdName)
		os.Exit(exitcode.RuntimeError)
	}

	ctx := &cli.Context{
		Args: os.Args[2:],
	}

	if err := cmd.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitcode.From(err))
	}
}
