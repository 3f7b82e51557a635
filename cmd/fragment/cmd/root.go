package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	logLevel  string
	logFormat string
	lexOnly   bool
)

var rootCmd = &cobra.Command{
	Use:   "fragment [files...]",
	Short: "Fragment - the Fragment language front end",
	Long: `fragment lexes and parses Fragment source units (.fr files) and prints
the resulting syntax trees.

With file arguments every file is parsed in turn. Without arguments an
interactive session starts on standard input.

Commands:
  lex      - print the token stream of files
  parse    - parse files and print their trees
  repl     - interactive session
  watch    - re-parse files whenever they change
  history  - show recorded parse results
  doctor   - check configuration, storage and the parser`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		switch {
		case lexOnly:
			return runLex(a, cmd, args, false)
		case len(args) == 0:
			return runREPL(a, cmd, a.cfg.REPL.Plain)
		default:
			return runParse(a, cmd, args, a.cfg.Output.Format, a.cfg.History.Enabled)
		}
	},
}

// Execute runs the root command and reports any error on stderr
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $FRAGMENT_CONFIG or ./fragment.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace tokens and parser decisions")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error, off")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console, text, json, logfmt")
	rootCmd.Flags().BoolVarP(&lexOnly, "lex", "l", false, "only lex the files and print their tokens")
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
