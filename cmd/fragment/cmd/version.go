package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/fragment/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Current()
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, info.String())
		fmt.Fprintf(out, "  Lexer:      %s\n", version.Lexer)
		fmt.Fprintf(out, "  Parser:     %s\n", version.Parser)
		fmt.Fprintf(out, "  Git Commit: %s\n", info.GitCommit)
		fmt.Fprintf(out, "  Build Date: %s\n", info.BuildDate)
		fmt.Fprintf(out, "  Go Version: %s\n", info.GoVersion)
		fmt.Fprintf(out, "  OS/Arch:    %s\n", info.Platform)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
