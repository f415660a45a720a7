package recon

import (
	"sync"

	"github.com/loom-ui/loom/internal/errors"
)

// ScopeRoot is an immutable-per-build snapshot of global tree state: one
// generation. It owns its root node exclusively; once the root is built
// it never changes. The next generation is derived with NewRoot.
type ScopeRoot struct {
	generation uint64

	// root is set exactly once, by the first Build on this generation.
	root   *TreeNode
	rootMu sync.Mutex

	// previousRoot is the predecessor generation's root node. It is used
	// only for reuse-candidate lookup and is never mutated through this
	// reference.
	previousRoot *TreeNode

	// values is the registration table. It is opaque to the
	// reconciliation core; callers use it to associate external state
	// with a generation.
	values   map[any]any
	valuesMu sync.RWMutex
}

// NewScopeRoot creates the first generation. Its root node is unset until
// the first build pass populates it.
func NewScopeRoot() *ScopeRoot {
	return &ScopeRoot{generation: nextID()}
}

// NewRoot derives the next generation. The new ScopeRoot shares no
// mutable state with its predecessor; it only carries a read-only
// reference to the predecessor's root node so the next build pass can
// look up reuse candidates.
func (s *ScopeRoot) NewRoot() *ScopeRoot {
	s.rootMu.Lock()
	prev := s.root
	s.rootMu.Unlock()

	return &ScopeRoot{
		generation:   nextID(),
		previousRoot: prev,
	}
}

// Generation returns the generation identifier.
func (s *ScopeRoot) Generation() uint64 {
	return s.generation
}

// Root returns this generation's root node, or nil if no build pass has
// populated it yet.
func (s *ScopeRoot) Root() *TreeNode {
	s.rootMu.Lock()
	defer s.rootMu.Unlock()
	return s.root
}

// PreviousRoot returns the predecessor generation's root node, or nil on
// the first generation. Read-only.
func (s *ScopeRoot) PreviousRoot() *TreeNode {
	return s.previousRoot
}

// BeginTree installs and returns this generation's host node, the
// attachment point for the root component's node. Builder.Build calls
// this; direct BuildComponentTree callers use it to obtain newParent for
// the root invocation.
func (s *ScopeRoot) BeginTree() *TreeNode {
	host := newHostNode()
	s.setRoot(host)
	return host
}

// setRoot installs the root node. A scope root's root node, once built,
// is immutable; a second build on the same generation is a contract
// violation.
func (s *ScopeRoot) setRoot(root *TreeNode) {
	s.rootMu.Lock()
	defer s.rootMu.Unlock()
	if s.root != nil {
		panic(errors.New("E004").WithDetailf(
			"scope root generation %d already has a built tree", s.generation))
	}
	s.root = root
}

// Register stores a value in the generation's registration table.
func (s *ScopeRoot) Register(key, value any) {
	s.valuesMu.Lock()
	defer s.valuesMu.Unlock()
	if s.values == nil {
		s.values = make(map[any]any)
	}
	s.values[key] = value
}

// Lookup retrieves a value from the registration table.
func (s *ScopeRoot) Lookup(key any) (any, bool) {
	s.valuesMu.RLock()
	defer s.valuesMu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}
