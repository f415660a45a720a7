package inspect

import (
	"fmt"
	"time"

	"github.com/loom-ui/loom/pkg/recon"
)

// NodeSnapshot is the JSON form of one tree node.
type NodeSnapshot struct {
	ID        uint64          `json:"id"`
	Key       string          `json:"key"`
	Component string          `json:"component,omitempty"`
	Children  []*NodeSnapshot `json:"children,omitempty"`
}

// TreeSnapshot is the JSON form of one completed generation, as served
// on /tree and pushed to WebSocket clients.
type TreeSnapshot struct {
	Generation          uint64        `json:"generation"`
	Trigger             string        `json:"trigger"`
	NodesBuilt          int           `json:"nodesBuilt"`
	NodesReused         int           `json:"nodesReused"`
	Renders             int           `json:"renders"`
	StateUpdatesApplied int           `json:"stateUpdatesApplied"`
	StartedAt           time.Time     `json:"startedAt"`
	DurationMillis      float64       `json:"durationMillis"`
	Root                *NodeSnapshot `json:"root"`
}

// snapshotNode converts a tree node and its subtree. A reused subtree
// shows up with the same IDs as in the generation it was built in.
func snapshotNode(n *recon.TreeNode) *NodeSnapshot {
	if n == nil {
		return nil
	}
	snap := &NodeSnapshot{
		ID:  n.ID(),
		Key: n.Key().String(),
	}
	if c := n.Component(); c != nil {
		snap.Component = fmt.Sprintf("%T", c)
	}
	for _, child := range n.Children() {
		snap.Children = append(snap.Children, snapshotNode(child))
	}
	return snap
}

// snapshotTree captures a completed generation together with its pass
// summary.
func snapshotTree(root *recon.ScopeRoot, stats recon.BuildStats) *TreeSnapshot {
	return &TreeSnapshot{
		Generation:          stats.Generation,
		Trigger:             stats.Trigger.String(),
		NodesBuilt:          stats.NodesBuilt,
		NodesReused:         stats.NodesReused,
		Renders:             stats.Renders,
		StateUpdatesApplied: stats.StateUpdatesApplied,
		StartedAt:           stats.StartedAt,
		DurationMillis:      float64(stats.Duration.Microseconds()) / 1000.0,
		Root:                snapshotNode(root.Root()),
	}
}
