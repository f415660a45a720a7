package recon

import (
	"testing"

	"github.com/loom-ui/loom/internal/errors"
)

func TestNewRootDerivesFreshGeneration(t *testing.T) {
	gen1 := NewScopeRoot()
	if gen1.Root() != nil {
		t.Error("new scope root should have no tree yet")
	}

	tree := newHostNode()
	gen1.setRoot(tree)

	gen2 := gen1.NewRoot()
	if gen2.Generation() == gen1.Generation() {
		t.Error("derived generation must have a new identifier")
	}
	if gen2.Root() != nil {
		t.Error("derived generation's root node must be unset")
	}
	if gen2.PreviousRoot() != tree {
		t.Error("derived generation should reference the predecessor's root for lookup")
	}
	if gen1.Root() != tree {
		t.Error("deriving a generation must not disturb the predecessor")
	}
}

func TestNewRootBeforeBuild(t *testing.T) {
	gen2 := NewScopeRoot().NewRoot()
	if gen2.PreviousRoot() != nil {
		t.Error("predecessor with no built tree yields nil previous root")
	}
}

func TestSetRootTwicePanics(t *testing.T) {
	root := NewScopeRoot()
	root.setRoot(newHostNode())

	defer func() {
		r := recover()
		le, ok := r.(*errors.LoomError)
		if !ok {
			t.Fatalf("panic value %T, want *errors.LoomError", r)
		}
		if le.Code != "E004" {
			t.Errorf("Code = %q, want E004", le.Code)
		}
	}()
	root.setRoot(newHostNode())
}

func TestRegistrationTable(t *testing.T) {
	root := NewScopeRoot()

	if _, ok := root.Lookup("missing"); ok {
		t.Error("Lookup on empty table should miss")
	}

	type key struct{}
	root.Register(key{}, 42)
	v, ok := root.Lookup(key{})
	if !ok || v != 42 {
		t.Errorf("Lookup = %v, %v, want 42, true", v, ok)
	}

	// The table is per-generation, not inherited.
	next := root.NewRoot()
	if _, ok := next.Lookup(key{}); ok {
		t.Error("derived generation must not share the registration table")
	}
}
