package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/loom-ui/loom/internal/inspect"
	"github.com/loom-ui/loom/pkg/observe"
	"github.com/loom-ui/loom/pkg/recon"
)

func inspectCmd() *cobra.Command {
	var (
		addr     string
		interval time.Duration
		depth    int
		fanout   int
		faster   bool
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Serve a live tree view over a demo build loop",
		Long: `Run the inspect server against a synthetic tree that rebuilds on an
interval, dirtying one random leaf per pass. Open /tree for the latest
generation, /stats for the pass summary, /metrics for Prometheus
metrics, or connect to /ws for pushed snapshots.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			srv := inspect.New(inspect.Config{Addr: addr, Logger: logger})
			metrics := observe.NewMetrics()
			builder := recon.NewBuilder(srv, metrics)
			config := recon.BuildConfig{EnableFasterStateUpdates: faster}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go runDemoLoop(ctx, builder, config, depth, fanout, interval)

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", inspect.DefaultAddr, "Listen address")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "Rebuild interval")
	cmd.Flags().IntVar(&depth, "depth", 4, "Tree depth")
	cmd.Flags().IntVar(&fanout, "fanout", 3, "Children per node")
	cmd.Flags().BoolVar(&faster, "faster", true, "Enable subtree reuse")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	return cmd
}

// runDemoLoop rebuilds the synthetic tree on every tick, dirtying one
// random leaf, until ctx is cancelled.
func runDemoLoop(ctx context.Context, builder *recon.Builder, config recon.BuildConfig, depth, fanout int, interval time.Duration) {
	makeRoot := func() recon.Component {
		return &benchComponent{depth: depth, fanout: fanout}
	}

	root := recon.NewScopeRoot()
	builder.Build(makeRoot(), recon.BuildParams{
		Root:    root,
		Trigger: recon.TriggerNewTree,
	}, config)

	increment := func(prev any) any {
		n, _ := prev.(int)
		return n + 1
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			leaves := leafIDs(root.Root())
			id := leaves[rand.Intn(len(leaves))]

			root = root.NewRoot()
			builder.Build(makeRoot(), recon.BuildParams{
				Root:             root,
				StateUpdates:     map[uint64][]recon.StateUpdate{id: {increment}},
				TreeNodeDirtyIDs: recon.DirtySet(id),
				Trigger:          recon.TriggerStateUpdate,
			}, config)
		}
	}
}
