// Package main provides the CLI entry point for gridtable.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gridtable",
		Short: "Read and edit a spreadsheet sheet as a keyed table",
		Long: `gridtable treats row 1 of a workbook sheet as a header and every row
below it as a record keyed by the first column. Reads stop at the first
blank row.`,
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}

	addGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newHeaderCmd(),
		newFetchCmd(),
		newInsertCmd(),
		newUpdateCmd(),
		newClearCmd(),
	)
	return rootCmd
}
