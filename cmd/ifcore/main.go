// ifcore is a deterministic, data-driven engine for second-person text
// adventures. Game content is authored in Lua and compiled into an
// immutable blueprint at startup.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nathoo/ifcore/cli"
	"github.com/nathoo/ifcore/engine"
	"github.com/nathoo/ifcore/engine/state"
	"github.com/nathoo/ifcore/loader"
	"github.com/nathoo/ifcore/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	plain bool
	trace bool
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "ifcore <game_directory>",
		Short:         "Play a Lua-authored interactive fiction game",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runPlay(args[0])
		},
	}

	root.PersistentFlags().BoolVar(&plain, "plain", false, "use the plain-text CLI frontend instead of the TUI")
	root.PersistentFlags().BoolVar(&trace, "trace", false, "enable state-change trace output (plain frontend only)")

	root.AddCommand(newPlayCommand())
	root.AddCommand(newValidateCommand())
	root.AddCommand(newVersionCommand())
	return root
}

func newPlayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "play <game_directory>",
		Short: "Load a game and start playing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(args[0])
		},
	}
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <game_directory>",
		Short: "Load and validate a game's content without playing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bp, err := loader.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("OK: %q — %d location(s), %d item(s), %d fuse(s), %d daemon(s)\n",
				bp.Title, len(bp.Locations), len(bp.Items), len(bp.Fuses), len(bp.Daemons))
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ifcore version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ifcore %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

func runPlay(gameDir string) error {
	bp, err := loader.Load(gameDir)
	if err != nil {
		return fmt.Errorf("loading game: %w", err)
	}
	defs := state.NewDefs(*bp)
	eng := engine.New(defs)

	if plain || !isTerminal() {
		c := cli.New(eng, defs)
		c.Trace = trace
		c.Run()
		return nil
	}

	return tui.Run(eng, defs)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
