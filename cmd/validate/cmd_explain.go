package main

import (
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/jwebster45206/smz3-tracker/internal/logger"
	"github.com/jwebster45206/smz3-tracker/pkg/items"
	"github.com/jwebster45206/smz3-tracker/pkg/search"
	"github.com/jwebster45206/smz3-tracker/pkg/settings"
	"github.com/jwebster45206/smz3-tracker/pkg/tracker"
	"github.com/jwebster45206/smz3-tracker/pkg/world"
)

var explainFlags struct {
	settingsFile string
	have         []string
	budget       int
}

var explainCmd = &cobra.Command{
	Use:   "explain LOCATION",
	Short: "Show a location's accessibility and what it still needs",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

func init() {
	f := explainCmd.Flags()
	f.StringVar(&explainFlags.settingsFile, "settings", "", "Settings file (defaults when empty)")
	f.StringSliceVar(&explainFlags.have, "have", nil, "Items already found, comma separated; repeat a name for more than one")
	f.IntVar(&explainFlags.budget, "budget", search.DefaultMaxProbes, "Probe budget")
}

func accessibilityColor(a world.Accessibility) color.Color {
	switch a {
	case world.Available, world.Cleared:
		return color.Green
	case world.AvailableWithKeys:
		return color.Cyan
	case world.Relevant, world.RelevantWithKeys:
		return color.Yellow
	case world.OutOfLogic:
		return color.Red
	}
	return color.Gray
}

func runExplain(cmd *cobra.Command, args []string) error {
	cfg := settings.Default()
	if explainFlags.settingsFile != "" {
		var err error
		if cfg, err = settings.LoadFromPath(explainFlags.settingsFile); err != nil {
			return err
		}
	}

	tr, err := tracker.New(cfg,
		tracker.WithLogger(logger.Discard()),
		tracker.WithSearchOptions(search.Options{MaxProbes: explainFlags.budget}),
	)
	if err != nil {
		return err
	}
	for _, name := range explainFlags.have {
		item, err := items.ParseItem(name)
		if err != nil {
			return err
		}
		if _, err := tr.Track(item); err != nil {
			return err
		}
	}

	status, err := tr.Location(args[0])
	if err != nil {
		return err
	}
	res, err := tr.MissingItems(cmd.Context(), status.Node)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s, %s)\n", status.Name, status.Region, status.Game)
	fmt.Fprintf(out, "  accessibility: %s\n", accessibilityColor(status.Accessibility).Sprint(status.Accessibility))
	switch {
	case res.Satisfied:
		fmt.Fprintln(out, "  needs: nothing more")
	case res.Unsatisfiable:
		fmt.Fprintln(out, "  needs: "+color.Red.Sprint("no item combination reaches it"))
	default:
		fmt.Fprintf(out, "  needs: %s\n", res.String())
		if res.Exhausted {
			fmt.Fprintln(out, "  "+color.Yellow.Sprint("search budget ran out; more options may exist"))
		}
	}
	return nil
}
