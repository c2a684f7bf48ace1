package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of auto-bibtex",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "auto-bibtex %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
