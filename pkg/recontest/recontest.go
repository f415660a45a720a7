package recontest

import (
	"sync/atomic"
	"testing"

	"github.com/loom-ui/loom/pkg/recon"
)

// CountingComponent is a component that counts its render invocations.
// A reused component's count must not move, which is what most
// reconciliation assertions hang off.
type CountingComponent struct {
	Name string

	child   recon.Component
	renders atomic.Int32
}

// Counting creates a leaf counting component.
func Counting(name string) *CountingComponent {
	return &CountingComponent{Name: name}
}

// CountingWithChild creates a counting component that renders child.
func CountingWithChild(name string, child recon.Component) *CountingComponent {
	return &CountingComponent{Name: name, child: child}
}

// Render implements recon.Component and increments the counter.
func (c *CountingComponent) Render(state any) recon.Component {
	c.renders.Add(1)
	return c.child
}

// InitialState implements recon.Component.
func (c *CountingComponent) InitialState() any { return nil }

// RenderCount returns how many times Render has been invoked.
func (c *CountingComponent) RenderCount() int {
	return int(c.renders.Load())
}

// Column is a multi-child container for tests.
type Column struct {
	recon.LeafComponent
	children []recon.Component
}

// NewColumn creates a container that builds the given children in order.
func NewColumn(children ...recon.Component) *Column {
	return &Column{children: children}
}

// ChildComponents implements recon.Container.
func (c *Column) ChildComponents(state any) []recon.Component {
	return c.children
}

// Stack builds a linear chain of counting components, outermost first.
// Stack("a", "b", "c") renders a -> b -> c.
func Stack(names ...string) []*CountingComponent {
	comps := make([]*CountingComponent, len(names))
	var child recon.Component
	for i := len(names) - 1; i >= 0; i-- {
		comps[i] = CountingWithChild(names[i], child)
		child = comps[i]
	}
	return comps
}

// Harness drives a builder through successive generations.
//
// Example:
//
//	h := recontest.NewHarness(t)
//	h.EnableFasterStateUpdates()
//	c := recontest.Counting("app")
//	h.BuildNew(c)
//	h.BuildNext(recontest.Counting("app"), recon.TriggerStateUpdate)
type Harness struct {
	t *testing.T

	// Builder runs the passes. Replace before the first build to attach
	// observers.
	Builder *recon.Builder

	// Config is passed to every build.
	Config recon.BuildConfig

	root *recon.ScopeRoot
}

// NewHarness creates a harness with a fresh builder and the default
// config (reuse optimization off).
func NewHarness(t *testing.T, observers ...recon.BuildObserver) *Harness {
	return &Harness{
		t:       t,
		Builder: recon.NewBuilder(observers...),
		Config:  recon.DefaultBuildConfig(),
	}
}

// EnableFasterStateUpdates turns the reuse optimization on for
// subsequent builds.
func (h *Harness) EnableFasterStateUpdates() {
	h.Config.EnableFasterStateUpdates = true
}

// Root returns the current generation's scope root.
func (h *Harness) Root() *recon.ScopeRoot {
	return h.root
}

// BuildNew starts a fresh first generation and builds c into it with the
// NewTree trigger.
func (h *Harness) BuildNew(c recon.Component) *recon.TreeNode {
	h.t.Helper()
	h.root = recon.NewScopeRoot()
	return h.Builder.Build(c, recon.BuildParams{
		Root:    h.root,
		Trigger: recon.TriggerNewTree,
	}, h.Config)
}

// BuildNext derives the next generation and builds c into it. dirtyIDs
// become the pass's TreeNodeDirtyIDs verbatim.
func (h *Harness) BuildNext(c recon.Component, trigger recon.BuildTrigger, dirtyIDs ...uint64) *recon.TreeNode {
	h.t.Helper()
	return h.BuildNextWithUpdates(c, trigger, nil, dirtyIDs...)
}

// BuildNextWithUpdates is BuildNext with pending state updates.
func (h *Harness) BuildNextWithUpdates(c recon.Component, trigger recon.BuildTrigger, updates map[uint64][]recon.StateUpdate, dirtyIDs ...uint64) *recon.TreeNode {
	h.t.Helper()
	if h.root == nil {
		h.t.Fatal("BuildNext before BuildNew")
	}
	h.root = h.root.NewRoot()
	return h.Builder.Build(c, recon.BuildParams{
		Root:             h.root,
		StateUpdates:     updates,
		TreeNodeDirtyIDs: recon.DirtySet(dirtyIDs...),
		Trigger:          trigger,
	}, h.Config)
}

// ChildNode returns the single node attached under the current
// generation's host root, failing the test if there isn't exactly one.
func (h *Harness) ChildNode() *recon.TreeNode {
	h.t.Helper()
	if h.root == nil || h.root.Root() == nil {
		h.t.Fatal("no generation built yet")
	}
	children := h.root.Root().Children()
	if len(children) != 1 {
		h.t.Fatalf("host root has %d children, want 1", len(children))
	}
	return children[0]
}
