package recon

import (
	"fmt"

	"github.com/loom-ui/loom/internal/errors"
)

// ComponentKey is the structural address of a node among its siblings.
// It combines the component's type name with a per-type sibling ordinal,
// so the same key resolves to the corresponding node across generations.
type ComponentKey struct {
	Type    string // Component type name (e.g., "*recontest.CountingComponent")
	Ordinal int    // Position among siblings of the same type
}

// String returns the key in "type#ordinal" form.
func (k ComponentKey) String() string {
	return fmt.Sprintf("%s#%d", k.Type, k.Ordinal)
}

// TreeNode represents one component instance's position in a built tree.
// Nodes are created once per build per position and are immutable after
// they have been attached to their parent. A reused node is re-parented
// by reference under the new generation's parent; it is never copied.
type TreeNode struct {
	id        uint64
	key       ComponentKey
	component Component
	state     any

	children []*TreeNode
	byKey    map[ComponentKey]*TreeNode
}

// newTreeNode creates an unattached node for the given component and
// resolved state snapshot.
func newTreeNode(key ComponentKey, c Component, state any) *TreeNode {
	return &TreeNode{
		id:        nextID(),
		key:       key,
		component: c,
		state:     state,
	}
}

// newHostNode creates the anonymous node a scope root uses as the
// attachment point for the root component's node.
func newHostNode() *TreeNode {
	return &TreeNode{id: nextID(), key: ComponentKey{Type: "host"}}
}

// ID returns the node's unique identifier. IDs are stable for the node's
// lifetime and are the keys used in BuildParams.TreeNodeDirtyIDs.
func (n *TreeNode) ID() uint64 {
	return n.id
}

// Key returns the node's structural key within its parent.
func (n *TreeNode) Key() ComponentKey {
	return n.key
}

// Component returns the component instance that produced this node.
// The host node of a scope root has no component.
func (n *TreeNode) Component() Component {
	return n.component
}

// State returns the resolved state snapshot this node was built with.
func (n *TreeNode) State() any {
	return n.state
}

// Children returns the node's child nodes in build order. The returned
// slice is read-only after the build pass completes.
func (n *TreeNode) Children() []*TreeNode {
	return n.children
}

// ChildForKey returns the child node and its component registered under
// the given structural key, or ok=false if no child carries that key.
// During reconciliation this is the previous-generation lookup that
// locates a reuse candidate.
func (n *TreeNode) ChildForKey(key ComponentKey) (*TreeNode, Component, bool) {
	if n == nil || n.byKey == nil {
		return nil, nil, false
	}
	child, ok := n.byKey[key]
	if !ok {
		return nil, nil, false
	}
	return child, child.component, true
}

// attach registers child under this node. Sibling keys must be unique
// within one build; a collision is a contract violation and panics.
func (n *TreeNode) attach(child *TreeNode) {
	if n.byKey == nil {
		n.byKey = make(map[ComponentKey]*TreeNode)
	}
	if _, dup := n.byKey[child.key]; dup {
		panic(errors.New("E002").WithDetailf(
			"duplicate sibling key %q under node %d", child.key, n.id))
	}
	n.byKey[child.key] = child
	n.children = append(n.children, child)
}

// siblingKeyFor computes the structural key the given component would
// occupy as the next child of this node: its type name plus the count of
// already-attached siblings of that type.
func (n *TreeNode) siblingKeyFor(c Component) ComponentKey {
	typ := componentTypeName(c)
	ordinal := 0
	for _, child := range n.children {
		if child.key.Type == typ {
			ordinal++
		}
	}
	return ComponentKey{Type: typ, Ordinal: ordinal}
}

// componentTypeName returns the type name used in structural keys.
func componentTypeName(c Component) string {
	return fmt.Sprintf("%T", c)
}

// Walk visits the node and every descendant in depth-first build order.
// The visit function returns false to stop the walk early.
func (n *TreeNode) Walk(visit func(*TreeNode) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	for _, child := range n.children {
		if !child.Walk(visit) {
			return false
		}
	}
	return true
}

// CountNodes returns the number of nodes in the subtree rooted at n,
// including n itself.
func (n *TreeNode) CountNodes() int {
	if n == nil {
		return 0
	}
	count := 1
	for _, child := range n.children {
		count += child.CountNodes()
	}
	return count
}

// FindByID returns the node with the given identifier in the subtree
// rooted at n, or nil if no such node exists.
func (n *TreeNode) FindByID(id uint64) *TreeNode {
	if n == nil {
		return nil
	}
	if n.id == id {
		return n
	}
	for _, child := range n.children {
		if found := child.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}
