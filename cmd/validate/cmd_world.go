package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jwebster45206/smz3-tracker/internal/logger"
	"github.com/jwebster45206/smz3-tracker/pkg/search"
	"github.com/jwebster45206/smz3-tracker/pkg/settings"
	"github.com/jwebster45206/smz3-tracker/pkg/tracker"
)

var worldFlags struct {
	settingsFile string
	budget       int
	timeout      time.Duration
}

var worldCmd = &cobra.Command{
	Use:   "world",
	Short: "Search every node from an empty inventory and report unreachable ones",
	Long: "Builds the world for each keysanity mode (or only the given settings)\n" +
		"and runs a missing-item search for every location, boss and reward.\n" +
		"A node no item combination satisfies points at a broken requirement.",
	RunE: runWorld,
}

func init() {
	f := worldCmd.Flags()
	f.StringVar(&worldFlags.settingsFile, "settings", "", "Settings file to check instead of every keysanity mode")
	f.IntVar(&worldFlags.budget, "budget", search.DefaultMaxProbes, "Probe budget per node")
	f.DurationVar(&worldFlags.timeout, "timeout", 5*time.Minute, "Overall time limit")
}

// worldReport is the outcome of walking one configuration.
type worldReport struct {
	Name          string
	Nodes         int
	Unsatisfiable []string
	Exhausted     []string
}

func checkWorld(ctx context.Context, name string, cfg *settings.Config, budget int) (worldReport, error) {
	report := worldReport{Name: name}
	tr, err := tracker.New(cfg,
		tracker.WithLogger(logger.Discard()),
		tracker.WithSearchOptions(search.Options{MaxProbes: budget}),
	)
	if err != nil {
		return report, fmt.Errorf("%s: %w", name, err)
	}

	for _, st := range tr.Status(tracker.Filter{}) {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		res, err := tr.MissingItemsFromEmpty(ctx, st.Node)
		if err != nil {
			return report, fmt.Errorf("%s: %s: %w", name, st.Name, err)
		}
		report.Nodes++
		label := st.Region + " / " + st.Name
		switch {
		case res.Unsatisfiable:
			report.Unsatisfiable = append(report.Unsatisfiable, label)
		case res.Exhausted:
			report.Exhausted = append(report.Exhausted, label)
		}
	}
	return report, nil
}

func runWorld(cmd *cobra.Command, _ []string) error {
	type job struct {
		name string
		cfg  *settings.Config
	}
	var jobs []job
	if worldFlags.settingsFile != "" {
		cfg, err := settings.LoadFromPath(worldFlags.settingsFile)
		if err != nil {
			return err
		}
		jobs = append(jobs, job{worldFlags.settingsFile, cfg})
	} else {
		for _, mode := range []settings.KeysanityMode{
			settings.KeysanityNone, settings.KeysanityZelda,
			settings.KeysanityMetroid, settings.KeysanityBoth,
		} {
			cfg := settings.Default()
			cfg.Keysanity = mode
			jobs = append(jobs, job{"keysanity=" + mode.String(), cfg})
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), worldFlags.timeout)
	defer cancel()

	reports := make([]worldReport, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, j := range jobs {
		g.Go(func() error {
			r, err := checkWorld(gctx, j.name, j.cfg, worldFlags.budget)
			reports[i] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	broken := 0
	for _, r := range reports {
		status := color.Green.Sprint("OK")
		if len(r.Unsatisfiable) > 0 {
			status = color.Red.Sprint("FAIL")
		} else if len(r.Exhausted) > 0 {
			status = color.Yellow.Sprint("WARN")
		}
		fmt.Fprintf(out, "%s %s: %d nodes\n", status, r.Name, r.Nodes)
		for _, n := range r.Unsatisfiable {
			fmt.Fprintf(out, "    %s %s\n", color.Red.Sprint("unreachable"), n)
		}
		for _, n := range r.Exhausted {
			fmt.Fprintf(out, "    %s %s\n", color.Yellow.Sprint("budget exhausted"), n)
		}
		broken += len(r.Unsatisfiable)
	}
	if broken > 0 {
		return fmt.Errorf("%d unreachable nodes", broken)
	}
	return nil
}
