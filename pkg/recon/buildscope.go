package recon

import (
	"runtime"
	"sync"
	"time"

	"github.com/loom-ui/loom/internal/errors"
)

// BuildScope holds the transient bookkeeping of one build pass. It is
// scoped to the calling goroutine for the duration of the pass and is
// released when the pass completes, whether it returns normally or
// panics. Independent passes on different goroutines each get their own
// scope, which is what makes concurrent cross-generation builds safe.
type BuildScope struct {
	startedAt time.Time

	nodesBuilt     int
	nodesReused    int
	renders        int
	updatesApplied int
}

// buildScopes stores per-goroutine build scopes.
var buildScopes sync.Map

// getGoroutineID returns a unique identifier for the current goroutine,
// parsed from the runtime stack header ("goroutine <id> ...").
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := 10; i < n; i++ { // Skip "goroutine "
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// currentBuildScope returns the active scope for this goroutine, or nil.
func currentBuildScope() *BuildScope {
	if s, ok := buildScopes.Load(getGoroutineID()); ok {
		return s.(*BuildScope)
	}
	return nil
}

// requireBuildScope returns the active scope or panics: invoking the
// builder outside an active build scope is a contract violation.
func requireBuildScope() *BuildScope {
	s := currentBuildScope()
	if s == nil {
		panic(errors.New("E001"))
	}
	return s
}

// WithBuildScope establishes a build scope for the current goroutine,
// runs fn inside it, and guarantees release afterwards. Nesting is a
// contract violation: a single synchronous pass has no suspension points
// that could legitimately start another.
func WithBuildScope(fn func(*BuildScope)) {
	gid := getGoroutineID()
	if _, active := buildScopes.Load(gid); active {
		panic(errors.New("E003"))
	}

	scope := &BuildScope{startedAt: time.Now()}
	buildScopes.Store(gid, scope)
	defer buildScopes.Delete(gid)

	fn(scope)
}

// Stats summarizes the pass so far.
func (s *BuildScope) Stats() BuildStats {
	return BuildStats{
		NodesBuilt:          s.nodesBuilt,
		NodesReused:         s.nodesReused,
		Renders:             s.renders,
		StateUpdatesApplied: s.updatesApplied,
		StartedAt:           s.startedAt,
		Duration:            time.Since(s.startedAt),
	}
}
