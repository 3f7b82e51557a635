package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/fragment/foundation/core/error"
	"github.com/msto63/fragment/internal/watch"
)

var (
	watchDebounce time.Duration
	watchOnce     bool
	watchTrees    bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <files or directories...>",
	Short: "Re-parse sources whenever they change",
	Long: `Parse every given .fr file, or every .fr file in the given directories,
then keep watching and re-parse a file after it has been quiet for the
debounce interval. Stop with Ctrl+C.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		return runWatch(a, cmd, args)
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "quiet period before re-parsing (default from config)")
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "parse once and exit")
	watchCmd.Flags().BoolVar(&watchTrees, "trees", false, "print the trees of each re-parsed file")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(a *app, cmd *cobra.Command, paths []string) error {
	debounce := a.cfg.Watch.Debounce.Duration
	if watchDebounce > 0 {
		debounce = watchDebounce
	}

	out := cmd.OutOrStdout()
	failed := 0
	w, err := watch.New(paths, watch.Options{
		Engine:   a.engine,
		Logger:   a.logger,
		Debounce: debounce,
		OnResult: func(r watch.Result) {
			if r.Err != nil {
				failed++
			}
			printWatchResult(out, r, watchTrees)
			if a.cfg.History.Enabled && !r.Removed && !r.Unchanged {
				a.record(r.Unit.Source, r.Unit.Nodes, r.Err)
			}
		},
	})
	if err != nil {
		return err
	}

	results := w.ParseAll()
	if watchOnce {
		if failed > 0 {
			return mdwerror.Newf("%d of %d file(s) failed to parse", failed, len(results)).
				WithCode(mdwerror.CodeInvalidInput).
				WithOperation("cmd.watch")
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Start(ctx); err != nil {
		return err
	}
	fmt.Fprintf(out, "watching %d file(s), Ctrl+C to stop\n", len(w.Files()))

	<-ctx.Done()
	w.Stop()
	return nil
}

func printWatchResult(w io.Writer, r watch.Result, trees bool) {
	stamp := time.Now().Format("15:04:05")
	switch {
	case r.Removed:
		fmt.Fprintf(w, "[%s] %s: removed\n", stamp, r.Path)
	case r.Unchanged:
		fmt.Fprintf(w, "[%s] %s: unchanged\n", stamp, r.Path)
		return
	case r.Err != nil:
		fmt.Fprintf(w, "[%s] %s\n", stamp, mdwerror.Diagnostic(r.Err))
	default:
		s := r.Unit.Summary()
		fmt.Fprintf(w, "[%s] %s: ok (%d definitions, %d externs, %d expressions)\n",
			stamp, r.Path, s.Definitions, s.Externs, s.Expressions)
	}
	if trees && r.Unit != nil && !r.Removed {
		for _, n := range r.Unit.Nodes {
			fmt.Fprintln(w, n.String())
		}
	}
}
