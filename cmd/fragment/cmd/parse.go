package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/fragment/foundation/core/error"
	mdwlog "github.com/msto63/fragment/foundation/core/log"
	"github.com/msto63/fragment/foundation/fragment"
	mdwast "github.com/msto63/fragment/foundation/fragment/ast"
	"github.com/msto63/fragment/pkg/core/config"
)

var (
	parseFormat string
	parseRecord bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <files...>",
	Short: "Parse files and print their syntax trees",
	Long: `Parse every file and print the trees of its top-level constructs.

A file stops at its first error; the constructs parsed before it are still
printed and the remaining files are parsed as usual. The exit status is
non-zero when any file failed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		format := a.cfg.Output.Format
		if parseFormat != "" {
			format = parseFormat
		}
		return runParse(a, cmd, args, format, parseRecord || a.cfg.History.Enabled)
	},
}

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "output format: text, yaml, json")
	parseCmd.Flags().BoolVar(&parseRecord, "record", false, "record results in the parse history")
	rootCmd.AddCommand(parseCmd)
}

// unitReport is the serialized form of one parsed file
type unitReport struct {
	Source     string         `yaml:"source" json:"source"`
	Constructs []*mdwast.Tree `yaml:"constructs" json:"constructs"`
	Error      string         `yaml:"error,omitempty" json:"error,omitempty"`
	DurationMS float64        `yaml:"duration_ms" json:"duration_ms"`
}

func runParse(a *app, cmd *cobra.Command, files []string, format string, record bool) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	switch format {
	case config.OutputText, config.OutputYAML, config.OutputJSON:
	default:
		return mdwerror.Newf("unknown output format %q", format).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("cmd.parse")
	}

	var result *multierror.Error
	var reports []unitReport
	failed := 0

	for _, file := range files {
		unit, err := a.engine.ParseFile(file)
		if err != nil {
			fmt.Fprintln(errOut, mdwerror.Diagnostic(err))
			result = multierror.Append(result, err)
			failed++
		}
		if record {
			a.record(unit.Source, unit.Nodes, err)
		}

		if format == config.OutputText {
			printUnitText(out, unit, len(files) > 1)
			continue
		}
		report := unitReport{
			Source:     unit.Source,
			Constructs: mdwast.EncodeAll(unit.Nodes),
			DurationMS: float64(unit.Duration.Microseconds()) / 1000,
		}
		if err != nil {
			report.Error = mdwerror.Diagnostic(err)
		}
		reports = append(reports, report)
	}

	if format != config.OutputText {
		if err := writeReports(out, format, reports); err != nil {
			return err
		}
	}

	a.logger.Debug("parse finished", mdwlog.Fields{
		"files":  len(files),
		"failed": failed,
	})

	if result != nil {
		result.ErrorFormat = func(errs []error) string {
			return fmt.Sprintf("%d of %d file(s) failed to parse", len(errs), len(files))
		}
		return result.ErrorOrNil()
	}
	return nil
}

func printUnitText(w io.Writer, unit *fragment.Unit, header bool) {
	if header {
		fmt.Fprintf(w, "== %s ==\n", unit.Source)
	}
	for _, n := range unit.Nodes {
		fmt.Fprintln(w, n.String())
	}
}

func writeReports(w io.Writer, format string, reports []unitReport) error {
	switch format {
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}
}
