package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/fragment/foundation/core/log"
	mdwast "github.com/msto63/fragment/foundation/fragment/ast"
	"github.com/msto63/fragment/internal/repl"
	tuirepl "github.com/msto63/fragment/internal/tui/repl"
)

// stdinSource names constructs read by the plain session
const stdinSource = "<stdin>"

var (
	replPlain  bool
	replQuiet  bool
	replRecord bool
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive parsing session",
	Long: `Start an interactive session. Every construct entered is parsed and its
tree printed. A syntax error prints a diagnostic, drops the rest of the line
and the session continues.

On a terminal the session runs as a full-screen UI. With --plain, or when
standard input is not a terminal, it reads lines from standard input.

Keys (UI):
  Enter       Parse line
  Up/Down     Recall earlier lines
  Ctrl+L      Clear transcript
  Esc/Ctrl+C  Quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		if replRecord {
			a.cfg.History.Enabled = true
		}
		return runREPL(a, cmd, replPlain || a.cfg.REPL.Plain)
	},
}

func init() {
	replCmd.Flags().BoolVar(&replPlain, "plain", false, "read lines from stdin instead of the full-screen UI")
	replCmd.Flags().BoolVarP(&replQuiet, "quiet", "q", false, "no banner and no prompt (plain mode)")
	replCmd.Flags().BoolVar(&replRecord, "record", false, "record results in the parse history")
	rootCmd.AddCommand(replCmd)
}

func runREPL(a *app, cmd *cobra.Command, plain bool) error {
	in := cmd.InOrStdin()
	if !plain && !isTerminal(in) {
		plain = true
	}

	if !plain {
		return tuirepl.Run(tuirepl.Config{
			Engine: a.engine,
			Prompt: a.cfg.REPL.Prompt,
			OnEntry: func(e tuirepl.Entry) {
				if !a.cfg.History.Enabled {
					return
				}
				var nodes []mdwast.Node
				if e.Unit != nil {
					nodes = e.Unit.Nodes
				}
				a.record(tuirepl.SourceName, nodes, e.Err)
			},
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	session := &repl.Session{
		In:     in,
		Out:    cmd.OutOrStdout(),
		Err:    cmd.ErrOrStderr(),
		Engine: a.engine,
		Prompt: a.cfg.REPL.Prompt,
		Quiet:  replQuiet,
	}
	if a.cfg.History.Enabled {
		session.Record = func(node mdwast.Node, err error) {
			var nodes []mdwast.Node
			if node != nil {
				nodes = []mdwast.Node{node}
			}
			a.record(stdinSource, nodes, err)
		}
	}

	stats, err := session.Run(ctx)
	a.logger.Debug("repl finished", mdwlog.Fields{
		"constructs": stats.Constructs,
		"errors":     stats.Errors,
	})
	return err
}

// isTerminal reports whether r is an interactive terminal
func isTerminal(r interface{}) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
