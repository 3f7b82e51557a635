package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/fragment/foundation/core/error"
	"github.com/msto63/fragment/pkg/core/health"
	"github.com/msto63/fragment/pkg/core/version"
)

// selfTest exercises every construct kind
const selfTest = "extern sin(x)\ndef f(a b) a*sin(b) + 1\nf(2, 3) < 4\n"

var doctorJSON bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration, history storage and the parser",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		return runDoctor(a, cmd)
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(a *app, cmd *cobra.Command) error {
	registry := health.NewRegistry("fragment", version.Tool)

	if a.cfg.Source != "" {
		registry.Register(health.FileCheck("config", a.cfg.Source, false))
	} else {
		registry.RegisterFunc("config", func(ctx context.Context) health.CheckResult {
			return health.CheckResult{Status: health.StatusDegraded, Message: "no config file, defaults in use"}
		})
	}

	registry.RegisterFunc("parser", func(ctx context.Context) health.CheckResult {
		unit, err := a.engine.ParseString("self-test.fr", selfTest)
		if err != nil {
			return health.CheckResult{Status: health.StatusUnhealthy, Message: mdwerror.Diagnostic(err)}
		}
		s := unit.Summary()
		if s.Definitions != 1 || s.Externs != 1 || s.Expressions != 1 {
			return health.CheckResult{Status: health.StatusUnhealthy, Message: fmt.Sprintf("unexpected constructs %+v", s)}
		}
		return health.CheckResult{
			Status:  health.StatusHealthy,
			Message: "self-test parsed",
			Details: map[string]interface{}{"nodes": s.Nodes, "division": a.cfg.Parser.Division},
		}
	})

	if a.cfg.History.Enabled {
		registry.Register(health.DirWritableCheck("history-dir", filepath.Dir(a.cfg.History.Path)))
		registry.RegisterFunc("history-db", func(ctx context.Context) health.CheckResult {
			store, err := a.history()
			if err != nil {
				return health.CheckResult{Status: health.StatusUnhealthy, Message: err.Error()}
			}
			stats, err := store.Stats(ctx)
			if err != nil {
				return health.CheckResult{Status: health.StatusUnhealthy, Message: err.Error()}
			}
			return health.CheckResult{
				Status:  health.StatusHealthy,
				Message: strconv.FormatInt(stats.Total, 10) + " entries",
			}
		})
	} else {
		registry.RegisterFunc("history", func(ctx context.Context) health.CheckResult {
			return health.CheckResult{Status: health.StatusHealthy, Message: "disabled"}
		})
	}

	registry.RegisterFunc("terminal", func(ctx context.Context) health.CheckResult {
		if isTerminal(cmd.InOrStdin()) && isTerminal(os.Stdout) {
			return health.CheckResult{Status: health.StatusHealthy, Message: "interactive"}
		}
		return health.CheckResult{Status: health.StatusDegraded, Message: "not a terminal, repl runs in plain mode"}
	})

	report := registry.CheckWithTimeout(5 * time.Second)
	out := cmd.OutOrStdout()
	if doctorJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(out, report)
	}

	if !report.Healthy() {
		return mdwerror.Newf("doctor: %s", report.Status).
			WithCode(mdwerror.CodeInternal).
			WithOperation("cmd.doctor")
	}
	return nil
}

func printReport(w io.Writer, report *health.Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Check", "Status", "Message"})
	table.SetAutoWrapText(false)
	for _, c := range report.Checks {
		table.Append([]string{c.Name, string(c.Status), c.Message})
	}
	table.Render()
	fmt.Fprintln(w, report.String())
}
