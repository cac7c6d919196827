package main

import (
	"fmt"
	"runtime"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jwebster45206/smz3-tracker/pkg/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings FILE...",
	Short: "Validate settings files (.json, .yaml, .yml)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSettings,
}

// checkSettingsFiles loads and validates every file, returning one error
// slot per file in argument order.
func checkSettingsFiles(files []string) []error {
	results := make([]error, len(files))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		g.Go(func() error {
			cfg, err := settings.LoadFromPath(file)
			if err == nil {
				err = cfg.Validate()
			}
			results[i] = err
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func runSettings(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0
	for i, err := range checkSettingsFiles(args) {
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s %s\n    %v\n", color.Red.Sprint("FAIL"), args[i], err)
			continue
		}
		fmt.Fprintf(out, "%s   %s\n", color.Green.Sprint("OK"), args[i])
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d settings files invalid", failed, len(args))
	}
	return nil
}
