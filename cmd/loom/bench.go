package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/loom-ui/loom/pkg/recon"
)

// benchComponent builds a uniform tree: every node above the leaf level
// has fanout children of the same type.
type benchComponent struct {
	depth  int
	fanout int
}

func (b *benchComponent) InitialState() any { return 0 }

func (b *benchComponent) Render(state any) recon.Component { return nil }

func (b *benchComponent) ChildComponents(state any) []recon.Component {
	if b.depth == 0 {
		return nil
	}
	children := make([]recon.Component, b.fanout)
	for i := range children {
		children[i] = &benchComponent{depth: b.depth - 1, fanout: b.fanout}
	}
	return children
}

// passCollector accumulates pass summaries across a run.
type passCollector struct {
	recon.NopObserver

	passes      int
	nodesBuilt  int
	nodesReused int
	renders     int
	duration    time.Duration
}

func (c *passCollector) BuildFinished(root *recon.ScopeRoot, stats recon.BuildStats) {
	c.passes++
	c.nodesBuilt += stats.NodesBuilt
	c.nodesReused += stats.NodesReused
	c.renders += stats.Renders
	c.duration += stats.Duration
}

func benchCmd() *cobra.Command {
	var (
		depth  int
		fanout int
		passes int
		dirty  int
		seed   int64
		faster bool
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure reuse rates on a synthetic tree",
		Long: `Build a uniform synthetic tree, then run state-update passes that
dirty a few random leaves each, and report how much of the tree was
reused versus rebuilt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if depth < 1 || fanout < 1 || passes < 1 {
				return fmt.Errorf("depth, fanout, and passes must be at least 1")
			}

			rng := rand.New(rand.NewSource(seed))
			collector := &passCollector{}
			builder := recon.NewBuilder(collector)
			config := recon.BuildConfig{EnableFasterStateUpdates: faster}

			makeRoot := func() recon.Component {
				return &benchComponent{depth: depth, fanout: fanout}
			}

			root := recon.NewScopeRoot()
			builder.Build(makeRoot(), recon.BuildParams{
				Root:    root,
				Trigger: recon.TriggerNewTree,
			}, config)

			treeNodes := root.Root().CountNodes() - 1 // exclude the host node
			leaves := leafIDs(root.Root())

			increment := func(prev any) any {
				n, _ := prev.(int)
				return n + 1
			}

			for i := 0; i < passes; i++ {
				ids := make([]uint64, 0, dirty)
				updates := make(map[uint64][]recon.StateUpdate, dirty)
				for j := 0; j < dirty && j < len(leaves); j++ {
					id := leaves[rng.Intn(len(leaves))]
					ids = append(ids, id)
					updates[id] = append(updates[id], increment)
				}

				root = root.NewRoot()
				builder.Build(makeRoot(), recon.BuildParams{
					Root:             root,
					StateUpdates:     updates,
					TreeNodeDirtyIDs: recon.DirtySet(ids...),
					Trigger:          recon.TriggerStateUpdate,
				}, config)

				leaves = leafIDs(root.Root())
			}

			updatePasses := collector.passes - 1
			updateBuilt := collector.nodesBuilt - treeNodes
			updateReused := collector.nodesReused
			reuseRate := 0.0
			if updatePasses > 0 {
				reuseRate = float64(updateReused) / float64(updatePasses*treeNodes) * 100
			}

			fmt.Println()
			info("tree: depth=%d fanout=%d nodes=%d leaves=%d", depth, fanout, treeNodes, len(leaves))
			info("faster state updates: %v", faster)
			info("passes: %d (+1 initial), dirty leaves per pass: %d", updatePasses, dirty)
			info("nodes rebuilt per pass: %.1f", float64(updateBuilt)/float64(updatePasses))
			info("nodes reused per pass:  %.1f", float64(updateReused)/float64(updatePasses))
			info("reuse rate: %.1f%%", reuseRate)
			info("avg pass duration: %s", (collector.duration / time.Duration(collector.passes)).Round(time.Microsecond))
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", 5, "Tree depth")
	cmd.Flags().IntVar(&fanout, "fanout", 4, "Children per node")
	cmd.Flags().IntVar(&passes, "passes", 100, "Number of state-update passes")
	cmd.Flags().IntVar(&dirty, "dirty", 2, "Dirty leaves per pass")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed for dirty-leaf selection")
	cmd.Flags().BoolVar(&faster, "faster", true, "Enable subtree reuse")

	return cmd
}

// leafIDs collects the identifiers of every childless node in the tree.
func leafIDs(root *recon.TreeNode) []uint64 {
	var ids []uint64
	root.Walk(func(n *recon.TreeNode) bool {
		if len(n.Children()) == 0 {
			ids = append(ids, n.ID())
		}
		return true
	})
	return ids
}
