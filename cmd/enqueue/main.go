package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jwebster45206/smz3-tracker/internal/logger"
	"github.com/jwebster45206/smz3-tracker/internal/services/queue"
	queuePkg "github.com/jwebster45206/smz3-tracker/pkg/queue"
)

var flags struct {
	redisURL string
	session  string
	target   string
}

var rootCmd = &cobra.Command{
	Use:   "smz3-enqueue TYPE [VALUE]",
	Short: "Push an auto-track request onto the worker queue",
	Example: "  smz3-enqueue track Hookshot --session <uuid>\n" +
		"  smz3-enqueue clear --target \"Link's House\" --session <uuid>",
	Args:         cobra.RangeArgs(1, 2),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flags.redisURL, "redis", envOr("REDIS_URL", "redis://localhost:6379"), "Redis URL")
	f.StringVar(&flags.session, "session", "", "Session ID (required)")
	f.StringVar(&flags.target, "target", "", "Location or region the request applies to")
	_ = rootCmd.MarkFlagRequired("session")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func run(cmd *cobra.Command, args []string) error {
	sessionID, err := uuid.Parse(flags.session)
	if err != nil {
		return fmt.Errorf("invalid session ID: %w", err)
	}
	value := ""
	if len(args) > 1 {
		value = args[1]
	}
	req := queuePkg.NewRequest(sessionID, queuePkg.RequestType(args[0]), value, flags.target)
	if err := req.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	client, err := queue.NewClient(flags.redisURL, logger.Discard())
	if err != nil {
		return err
	}
	defer client.Close()

	q := queue.NewAutoTrackQueue(client, logger.Discard())
	if err := q.EnqueueRequest(ctx, req); err != nil {
		return err
	}
	depth, err := q.Depth(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Enqueued %s request %s\n", req.Type, req.RequestID)
	fmt.Fprintf(out, "Queue depth: %d\n", depth)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
