package recon

import "time"

// BuildStats summarizes one build pass.
type BuildStats struct {
	Generation          uint64
	Trigger             BuildTrigger
	NodesBuilt          int
	NodesReused         int
	Renders             int
	StateUpdatesApplied int
	StartedAt           time.Time
	Duration            time.Duration
}

// BuildObserver receives reconciliation events. Observers are how render
// invocations and reuse decisions are observed from outside the core;
// the component contract itself carries no instrumentation.
//
// All methods are called synchronously on the building goroutine and
// must not block.
type BuildObserver interface {
	// BuildStarted is called when a build pass begins on root.
	BuildStarted(root *ScopeRoot, trigger BuildTrigger)

	// ComponentRendered is called each time a component's render logic
	// is invoked. It is never called for a reused component.
	ComponentRendered(c Component)

	// NodeReused is called when a previous-generation subtree is
	// attached under the new parent without rebuilding.
	NodeReused(node *TreeNode)

	// BuildFinished is called when the pass completes, with the
	// populated root and the pass summary.
	BuildFinished(root *ScopeRoot, stats BuildStats)
}

// MultiObserver fans events out to several observers in order.
type MultiObserver []BuildObserver

// BuildStarted implements BuildObserver.
func (m MultiObserver) BuildStarted(root *ScopeRoot, trigger BuildTrigger) {
	for _, o := range m {
		o.BuildStarted(root, trigger)
	}
}

// ComponentRendered implements BuildObserver.
func (m MultiObserver) ComponentRendered(c Component) {
	for _, o := range m {
		o.ComponentRendered(c)
	}
}

// NodeReused implements BuildObserver.
func (m MultiObserver) NodeReused(node *TreeNode) {
	for _, o := range m {
		o.NodeReused(node)
	}
}

// BuildFinished implements BuildObserver.
func (m MultiObserver) BuildFinished(root *ScopeRoot, stats BuildStats) {
	for _, o := range m {
		o.BuildFinished(root, stats)
	}
}

// NopObserver is an embeddable BuildObserver with no-op methods, for
// observers that only care about a subset of events.
type NopObserver struct{}

func (NopObserver) BuildStarted(*ScopeRoot, BuildTrigger) {}
func (NopObserver) ComponentRendered(Component)           {}
func (NopObserver) NodeReused(*TreeNode)                  {}
func (NopObserver) BuildFinished(*ScopeRoot, BuildStats)  {}
