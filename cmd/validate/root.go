package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "smz3-validate",
	Short: "Check settings files and the SMZ3 logic graph",
	Long: "smz3-validate loads settings files the way the API does and walks the\n" +
		"logic graph looking for nodes no item combination can reach.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(worldCmd)
	rootCmd.AddCommand(explainCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
