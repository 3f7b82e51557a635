package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/msto63/fragment/internal/history"
)

var (
	historySource  string
	historySession string
	historyKind    string
	historyErrors  bool
	historySince   time.Duration
	historyLimit   int
	historyPrune   time.Duration
	historyStats   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded parse results",
	Long: `Show parse results recorded by parse --record, repl --record or watch
when history is enabled in the configuration. Newest entries come first.

Examples:
  fragment history --errors --limit 10
  fragment history --source prog.fr --kind definition
  fragment history --stats
  fragment history --prune 720h`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		return runHistory(a, cmd)
	},
}

func init() {
	historyCmd.Flags().StringVar(&historySource, "source", "", "only entries of this source")
	historyCmd.Flags().StringVar(&historySession, "session", "", "only entries of this run id")
	historyCmd.Flags().StringVar(&historyKind, "kind", "", "only entries of this kind: definition, extern, expression, error")
	historyCmd.Flags().BoolVar(&historyErrors, "errors", false, "only failures")
	historyCmd.Flags().DurationVar(&historySince, "since", 0, "only entries younger than this")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
	historyCmd.Flags().DurationVar(&historyPrune, "prune", 0, "delete entries older than this and exit")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "print statistics and exit")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(a *app, cmd *cobra.Command) error {
	store, err := a.history()
	if err != nil {
		return err
	}
	ctx := context.Background()
	out := cmd.OutOrStdout()

	if historyPrune > 0 {
		n, err := store.Prune(ctx, historyPrune)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "pruned %d entries\n", n)
		return nil
	}

	if historyStats {
		stats, err := store.Stats(ctx)
		if err != nil {
			return err
		}
		printHistoryStats(out, stats)
		return nil
	}

	filter := history.Filter{
		Source:     historySource,
		SessionID:  historySession,
		Kind:       historyKind,
		ErrorsOnly: historyErrors,
		Limit:      historyLimit,
	}
	if historySince > 0 {
		filter.Since = time.Now().Add(-historySince)
	}

	entries, err := store.Query(ctx, filter)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "no entries")
		return nil
	}
	printHistoryTable(out, entries)
	return nil
}

func printHistoryTable(w io.Writer, entries []*history.Entry) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Time", "Source", "Line", "Kind", "Detail"})
	table.SetAutoWrapText(false)
	for _, e := range entries {
		table.Append([]string{
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Source,
			strconv.Itoa(e.Line),
			e.Kind,
			historyDetail(e),
		})
	}
	table.Render()
}

func historyDetail(e *history.Entry) string {
	switch {
	case e.Kind == history.KindError:
		return e.ErrorCode + ": " + e.ErrorMessage
	case e.Kind == history.KindExpression:
		first, _, _ := strings.Cut(e.Rendered, "\n")
		return first
	default:
		return e.Name + "(" + strings.Join(e.Params, " ") + ")"
	}
}

func printHistoryStats(w io.Writer, s *history.Stats) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"entries", strconv.FormatInt(s.Total, 10)})
	table.Append([]string{"sessions", strconv.FormatInt(s.Sessions, 10)})
	table.Append([]string{"sources", strconv.FormatInt(s.Sources, 10)})

	kinds := make([]string, 0, len(s.ByKind))
	for k := range s.ByKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		table.Append([]string{"kind " + k, strconv.FormatInt(s.ByKind[k], 10)})
	}
	if !s.LastEntry.IsZero() {
		table.Append([]string{"last entry", s.LastEntry.Local().Format(time.RFC3339)})
	}
	table.Render()
}
