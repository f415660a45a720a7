// Package recon provides Loom's component-tree reconciliation engine.
//
// Given a previous render tree and a build trigger (initial build, an
// incoming property change, or a state update on specific nodes), the
// engine decides node by node whether to re-invoke a component's render
// logic or reuse the previously produced subtree by reference.
//
// # Core Types
//
// TreeNode is one component instance's position in a built tree,
// addressable by a stable ID and by a structural ComponentKey within its
// parent. ScopeRoot is an immutable-per-build snapshot of the whole
// tree — one generation — and derives the next via NewRoot. Component is
// the unit of render work; Container extends it for multi-child nodes.
//
// # Reconciliation
//
// Builder.Build runs one synchronous pass:
//
//	root := recon.NewScopeRoot()
//	builder := recon.NewBuilder()
//	builder.Build(app, recon.BuildParams{
//	    Root:    root,
//	    Trigger: recon.TriggerNewTree,
//	}, recon.BuildConfig{EnableFasterStateUpdates: true})
//
// Later passes derive a new generation with root.NewRoot() and pass the
// dirty node set (see DirtySet); a subtree containing no dirty node is
// attached under the new parent without re-rendering.
//
// # Build Scopes
//
// A pass's transient bookkeeping is scoped to the calling goroutine via
// WithBuildScope and released when the pass completes. Previous
// generations are read-only once built, so independent passes on
// different goroutines need no locking.
//
// # Observation
//
// Render invocations and reuse decisions are reported through the
// BuildObserver interface; see the observe package for Prometheus and
// OpenTelemetry implementations.
package recon
