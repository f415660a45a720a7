package recontest

import (
	"testing"

	"github.com/loom-ui/loom/pkg/recon"
)

func TestCountingComponent(t *testing.T) {
	c := Counting("leaf")
	if c.RenderCount() != 0 {
		t.Fatalf("fresh component count = %d, want 0", c.RenderCount())
	}
	if child := c.Render(nil); child != nil {
		t.Error("leaf counting component should render nil")
	}
	c.Render(nil)
	if c.RenderCount() != 2 {
		t.Errorf("count = %d, want 2", c.RenderCount())
	}
}

func TestStackLinksChain(t *testing.T) {
	chain := Stack("a", "b", "c")
	if len(chain) != 3 {
		t.Fatalf("len = %d, want 3", len(chain))
	}
	if got := chain[0].Render(nil); got != recon.Component(chain[1]) {
		t.Error("outer component should render the next in the chain")
	}
	if got := chain[2].Render(nil); got != nil {
		t.Error("innermost component should be a leaf")
	}
}

func TestHarnessGenerationStepping(t *testing.T) {
	h := NewHarness(t)
	h.EnableFasterStateUpdates()

	h.BuildNew(Counting("app"))
	gen1 := h.Root()
	if gen1 == nil || gen1.Root() == nil {
		t.Fatal("BuildNew should populate a generation")
	}

	h.BuildNext(Counting("app"), recon.TriggerStateUpdate)
	gen2 := h.Root()
	if gen2 == gen1 {
		t.Error("BuildNext must derive a new generation")
	}
	if gen2.PreviousRoot() != gen1.Root() {
		t.Error("new generation should see the predecessor's tree")
	}
}

func TestColumnIsContainer(t *testing.T) {
	var _ recon.Container = NewColumn()
}
