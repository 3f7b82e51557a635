package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/fragment/foundation/core/error"
	"github.com/msto63/fragment/foundation/fragment/token"
)

var lexTable bool

var lexCmd = &cobra.Command{
	Use:   "lex <files...>",
	Short: "Print the token stream of files",
	Long: `Lex every file and print one token per line as "line:column TOKEN".
Positions are 0-based. With --table the tokens are printed as a table with
their source spelling.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		return runLex(a, cmd, args, lexTable)
	},
}

func init() {
	lexCmd.Flags().BoolVarP(&lexTable, "table", "t", false, "print tokens as a table")
	rootCmd.AddCommand(lexCmd)
}

func runLex(a *app, cmd *cobra.Command, files []string, table bool) error {
	out := cmd.OutOrStdout()
	var result *multierror.Error

	for _, file := range files {
		tokens, err := a.engine.Tokenize(file)
		if len(files) > 1 {
			fmt.Fprintf(out, "== %s ==\n", file)
		}
		if table {
			printTokenTable(out, tokens)
		} else {
			for _, tok := range tokens {
				fmt.Fprintf(out, "%s %s\n", tok.Pos, tok)
			}
		}
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), mdwerror.Diagnostic(err))
			result = multierror.Append(result, err)
		}
	}

	if result != nil {
		result.ErrorFormat = func(errs []error) string {
			return fmt.Sprintf("%d of %d file(s) failed to lex", len(errs), len(files))
		}
	}
	return result.ErrorOrNil()
}

func printTokenTable(w io.Writer, tokens []token.Token) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Line", "Col", "Kind", "Text"})
	table.SetBorder(false)
	for _, tok := range tokens {
		table.Append([]string{
			strconv.Itoa(tok.Pos.Line),
			strconv.Itoa(tok.Pos.Column),
			tok.Kind.String(),
			tok.Text(),
		})
	}
	table.Render()
}
