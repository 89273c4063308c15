package main

import (
	"os"

	"github.com/cottand/tyverse/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "tyverse [subcommand]",
	Short:        "tyverse\n inspect the builtin type universe",
	SilenceUsage: true,
}

func init() {
	cmd.RegisterGlobalFlags(rootCmd)
	rootCmd.AddCommand(cmd.TypesCmd)
	rootCmd.AddCommand(cmd.MroCmd)
	rootCmd.AddCommand(cmd.TraitsCmd)
	rootCmd.AddCommand(cmd.SubtypeCmd)
	rootCmd.AddCommand(cmd.MethodCmd)
	rootCmd.AddCommand(cmd.ReplCmd)
}
