package recon

import (
	"testing"

	"github.com/loom-ui/loom/internal/errors"
)

type leafA struct{ LeafComponent }
type leafB struct{ LeafComponent }

func TestComponentKeyString(t *testing.T) {
	key := ComponentKey{Type: "*recon.leafA", Ordinal: 2}
	if got, want := key.String(), "*recon.leafA#2"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSiblingKeyForOrdinals(t *testing.T) {
	parent := newHostNode()

	a0 := newTreeNode(parent.siblingKeyFor(&leafA{}), &leafA{}, nil)
	parent.attach(a0)
	b0 := newTreeNode(parent.siblingKeyFor(&leafB{}), &leafB{}, nil)
	parent.attach(b0)
	a1 := newTreeNode(parent.siblingKeyFor(&leafA{}), &leafA{}, nil)
	parent.attach(a1)

	if a0.Key().Ordinal != 0 || a1.Key().Ordinal != 1 {
		t.Errorf("same-type ordinals = %d, %d, want 0, 1", a0.Key().Ordinal, a1.Key().Ordinal)
	}
	if b0.Key().Ordinal != 0 {
		t.Errorf("first leafB ordinal = %d, want 0", b0.Key().Ordinal)
	}
	if a0.Key() == b0.Key() {
		t.Error("different component types must produce different keys")
	}
}

func TestAttachPreservesOrder(t *testing.T) {
	parent := newHostNode()
	var attached []*TreeNode
	for i := 0; i < 4; i++ {
		c := &leafA{}
		n := newTreeNode(parent.siblingKeyFor(c), c, nil)
		parent.attach(n)
		attached = append(attached, n)
	}

	children := parent.Children()
	if len(children) != 4 {
		t.Fatalf("len(Children()) = %d, want 4", len(children))
	}
	for i, n := range attached {
		if children[i] != n {
			t.Errorf("child %d out of order", i)
		}
	}
}

func TestAttachDuplicateKeyPanics(t *testing.T) {
	parent := newHostNode()
	c := &leafA{}
	key := parent.siblingKeyFor(c)
	parent.attach(newTreeNode(key, c, nil))

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on duplicate sibling key")
		}
		le, ok := r.(*errors.LoomError)
		if !ok {
			t.Fatalf("panic value %T, want *errors.LoomError", r)
		}
		if le.Code != "E002" {
			t.Errorf("Code = %q, want E002", le.Code)
		}
	}()
	parent.attach(newTreeNode(key, &leafA{}, nil))
}

func TestChildForKey(t *testing.T) {
	parent := newHostNode()
	c := &leafA{}
	node := newTreeNode(parent.siblingKeyFor(c), c, nil)
	parent.attach(node)

	got, comp, ok := parent.ChildForKey(node.Key())
	if !ok {
		t.Fatal("ChildForKey should find attached child")
	}
	if got != node {
		t.Error("ChildForKey returned a different node")
	}
	if comp != Component(c) {
		t.Error("ChildForKey returned a different component instance")
	}

	if _, _, ok := parent.ChildForKey(ComponentKey{Type: "missing"}); ok {
		t.Error("ChildForKey should miss for an unknown key")
	}

	var nilNode *TreeNode
	if _, _, ok := nilNode.ChildForKey(node.Key()); ok {
		t.Error("ChildForKey on nil node should miss")
	}
}

func TestCountNodesAndFindByID(t *testing.T) {
	root := newHostNode()
	mid := newTreeNode(root.siblingKeyFor(&leafA{}), &leafA{}, nil)
	root.attach(mid)
	leaf := newTreeNode(mid.siblingKeyFor(&leafB{}), &leafB{}, nil)
	mid.attach(leaf)

	if got := root.CountNodes(); got != 3 {
		t.Errorf("CountNodes() = %d, want 3", got)
	}
	if got := root.FindByID(leaf.ID()); got != leaf {
		t.Error("FindByID should locate a grandchild")
	}
	if got := root.FindByID(1 << 62); got != nil {
		t.Errorf("FindByID(unknown) = %v, want nil", got)
	}
}

func TestWalkOrderAndEarlyStop(t *testing.T) {
	root := newHostNode()
	first := newTreeNode(root.siblingKeyFor(&leafA{}), &leafA{}, nil)
	root.attach(first)
	second := newTreeNode(root.siblingKeyFor(&leafA{}), &leafA{}, nil)
	root.attach(second)

	var seen []uint64
	root.Walk(func(n *TreeNode) bool {
		seen = append(seen, n.ID())
		return true
	})
	want := []uint64{root.ID(), first.ID(), second.ID()}
	if len(seen) != len(want) {
		t.Fatalf("visited %d nodes, want %d", len(seen), len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("visit order[%d] = %d, want %d", i, seen[i], want[i])
		}
	}

	count := 0
	root.Walk(func(*TreeNode) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("early-stopped walk visited %d nodes, want 1", count)
	}
}
