package recon

// BuildTrigger is the reason a build pass was initiated.
type BuildTrigger uint8

const (
	TriggerNewTree     BuildTrigger = iota // First build, no previous tree
	TriggerPropsUpdate                     // Incoming property change
	TriggerStateUpdate                     // State update on specific nodes
)

// String returns the string representation of the BuildTrigger.
func (t BuildTrigger) String() string {
	switch t {
	case TriggerNewTree:
		return "NewTree"
	case TriggerPropsUpdate:
		return "PropsUpdate"
	case TriggerStateUpdate:
		return "StateUpdate"
	default:
		return "Unknown"
	}
}

// StateUpdate transforms a component's state during a rebuild. Updates
// are opaque to the reconciliation core; they are applied in order to the
// previous generation's state snapshot.
type StateUpdate func(prev any) any

// BuildParams describes why a build pass is happening and which prior
// nodes are known-dirty.
type BuildParams struct {
	// Root is the scope root the pass builds into.
	Root *ScopeRoot

	// StateUpdates holds pending updates keyed by previous-generation
	// node identifier. Applied when the owning node is rebuilt.
	StateUpdates map[uint64][]StateUpdate

	// TreeNodeDirtyIDs is the set of previous-generation node
	// identifiers that require rebuilding. Only meaningful when Trigger
	// is TriggerStateUpdate; a PropsUpdate pass treats every node as
	// dirty regardless of this set.
	TreeNodeDirtyIDs map[uint64]struct{}

	// Trigger is the reason for this pass.
	Trigger BuildTrigger
}

// isDirtyID reports whether id is a member of the dirty set.
func (p BuildParams) isDirtyID(id uint64) bool {
	_, ok := p.TreeNodeDirtyIDs[id]
	return ok
}

// BuildConfig carries the flags that gate reconciliation behavior.
type BuildConfig struct {
	// EnableFasterStateUpdates gates the subtree-reuse optimization.
	// When false the builder always re-invokes render (the legacy path).
	EnableFasterStateUpdates bool
}

// DefaultBuildConfig returns the default configuration: the reuse
// optimization disabled.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{EnableFasterStateUpdates: false}
}
