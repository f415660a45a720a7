package recon

import (
	"github.com/loom-ui/loom/internal/errors"
)

// Builder is the reconciliation core. Given a component, the parent node
// being built, the previous generation's corresponding parent, the build
// params, and the config, it produces a tree node that is either freshly
// built (render re-invoked) or the previous generation's subtree reused
// by reference.
//
// A Builder carries no per-pass state and may be shared across
// generations and goroutines; per-pass bookkeeping lives in the
// goroutine's BuildScope.
type Builder struct {
	observer BuildObserver
}

// NewBuilder creates a Builder. Observers receive render, reuse, and
// pass-lifecycle events; with more than one they are notified in order.
func NewBuilder(observers ...BuildObserver) *Builder {
	b := &Builder{}
	switch len(observers) {
	case 0:
	case 1:
		b.observer = observers[0]
	default:
		b.observer = MultiObserver(observers)
	}
	return b
}

// Build runs a complete build pass for the root component: it opens a
// build scope, installs the scope root's host node, reconciles the tree,
// and reports the pass to observers. The scope is released on normal and
// panicking exit alike.
func (b *Builder) Build(c Component, params BuildParams, config BuildConfig) *TreeNode {
	if params.Root == nil {
		panic(errors.New("E005"))
	}

	if b.observer != nil {
		b.observer.BuildStarted(params.Root, params.Trigger)
	}

	host := params.Root.BeginTree()

	var built *TreeNode
	WithBuildScope(func(scope *BuildScope) {
		built = b.BuildComponentTree(c, host, params.Root.PreviousRoot(), params, config, false)

		if b.observer != nil {
			stats := scope.Stats()
			stats.Generation = params.Root.Generation()
			stats.Trigger = params.Trigger
			b.observer.BuildFinished(params.Root, stats)
		}
	})
	return built
}

// BuildComponentTree reconciles one component into a tree node attached
// under newParent and recurses into its children. previousParent is the
// corresponding node of the prior generation, used only to look up reuse
// candidates; ownership stays with the prior scope root.
//
// The reuse decision is made once per node, before recursing:
//
//  1. With EnableFasterStateUpdates off, always rebuild (legacy path).
//  2. Otherwise a node is dirty when the trigger is PropsUpdate, or when
//     the trigger is StateUpdate and either an ancestor already rebuilt
//     (hasDirtyParent) or the node's previous-generation ID is in
//     TreeNodeDirtyIDs. A NewTree pass has nothing to reuse.
//  3. Dirty nodes rebuild, and dirtiness propagates to every descendant.
//  4. A clean node with a previous-generation node at the same key is
//     reused: the same component instance and the same subtree are
//     attached under newParent, render is not invoked.
//  5. A clean node with no previous counterpart rebuilds.
//
// Must be called inside an active build scope.
func (b *Builder) BuildComponentTree(c Component, newParent, previousParent *TreeNode, params BuildParams, config BuildConfig, hasDirtyParent bool) *TreeNode {
	scope := requireBuildScope()
	if c == nil {
		return nil
	}
	if newParent == nil {
		panic(errors.New("E006"))
	}

	key := newParent.siblingKeyFor(c)

	var prevNode *TreeNode
	if previousParent != nil {
		prevNode, _, _ = previousParent.ChildForKey(key)
	}

	if config.EnableFasterStateUpdates {
		switch params.Trigger {
		case TriggerNewTree:
			// No previous tree; always build fresh.
		case TriggerPropsUpdate:
			// Props changes are assumed to affect every node.
			hasDirtyParent = true
		case TriggerStateUpdate:
			selfDirty := prevNode != nil && params.isDirtyID(prevNode.id)
			if !hasDirtyParent && !selfDirty && prevNode != nil {
				// A subtree is reusable only when none of its nodes is
				// dirty: an update targeting a descendant makes this
				// node non-reusable, while its own clean children are
				// decided individually on the way down.
				if !prevNode.ContainsDirtyID(params.TreeNodeDirtyIDs) {
					return b.reuse(scope, newParent, prevNode)
				}
			}
			hasDirtyParent = hasDirtyParent || selfDirty
		}
	}

	return b.rebuild(scope, c, key, newParent, prevNode, params, config, hasDirtyParent)
}

// reuse attaches the previous generation's node, component instance, and
// subtree under newParent without invoking render.
func (b *Builder) reuse(scope *BuildScope, newParent, prevNode *TreeNode) *TreeNode {
	newParent.attach(prevNode)
	scope.nodesReused++
	if b.observer != nil {
		b.observer.NodeReused(prevNode)
	}
	return prevNode
}

// rebuild creates a fresh node for c under newParent, invokes render,
// and recurses into the children it yields.
func (b *Builder) rebuild(scope *BuildScope, c Component, key ComponentKey, newParent, prevNode *TreeNode, params BuildParams, config BuildConfig, hasDirtyParent bool) *TreeNode {
	state := b.resolveState(scope, c, prevNode, params)

	node := newTreeNode(key, c, state)
	newParent.attach(node)
	scope.nodesBuilt++

	children := b.renderChildren(scope, c, state)
	for _, child := range children {
		b.BuildComponentTree(child, node, prevNode, params, config, hasDirtyParent)
	}
	return node
}

// resolveState computes the state a rebuilt node renders with: the
// previous generation's snapshot if one exists (else the component's
// initial state), with any pending updates for the previous node applied
// in order.
func (b *Builder) resolveState(scope *BuildScope, c Component, prevNode *TreeNode, params BuildParams) any {
	if prevNode == nil {
		return c.InitialState()
	}
	state := prevNode.state
	for _, update := range params.StateUpdates[prevNode.id] {
		state = update(state)
		scope.updatesApplied++
	}
	return state
}

// renderChildren invokes the component's render logic once and returns
// the children to build, in order.
func (b *Builder) renderChildren(scope *BuildScope, c Component, state any) []Component {
	scope.renders++
	if b.observer != nil {
		b.observer.ComponentRendered(c)
	}

	if container, ok := c.(Container); ok {
		return container.ChildComponents(state)
	}
	if child := c.Render(state); child != nil {
		return []Component{child}
	}
	return nil
}
