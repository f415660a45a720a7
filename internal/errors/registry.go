package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
	DocURL     string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Contract Violations (E001-E009)
	// ============================================

	"E001": {
		Category:   CategoryContract,
		Message:    "Build invoked outside an active build scope",
		Detail:     "BuildComponentTree must run inside a scope established by WithBuildScope; Builder.Build sets one up automatically.",
		Suggestion: "Call Builder.Build, or wrap direct BuildComponentTree calls in recon.WithBuildScope.",
		DocURL:     "https://loom-ui.dev/docs/errors/E001",
	},
	"E002": {
		Category:   CategoryContract,
		Message:    "Duplicate component key among siblings",
		Detail:     "Within one parent and one build, every child's structural key must be unique.",
		Suggestion: "Check for the same component being attached twice at one position in a single pass.",
		DocURL:     "https://loom-ui.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryContract,
		Message:  "Nested build scope",
		Detail:   "A build pass is synchronous and single-shot; starting another scope on the same goroutine is invalid.",
		DocURL:   "https://loom-ui.dev/docs/errors/E003",
	},
	"E004": {
		Category:   CategoryContract,
		Message:    "Scope root already built",
		Detail:     "A scope root's tree is immutable once set. Derive the next generation with NewRoot instead of rebuilding in place.",
		Suggestion: "Call root.NewRoot() and build into the new generation.",
		DocURL:     "https://loom-ui.dev/docs/errors/E004",
	},
	"E005": {
		Category: CategoryContract,
		Message:  "Build without a scope root",
		Detail:   "BuildParams.Root must reference the generation being built.",
		DocURL:   "https://loom-ui.dev/docs/errors/E005",
	},
	"E006": {
		Category: CategoryContract,
		Message:  "Build into a nil parent node",
		DocURL:   "https://loom-ui.dev/docs/errors/E006",
	},

	// ============================================
	// Config Errors (E010-E019)
	// ============================================

	"E010": {
		Category:   CategoryConfig,
		Message:    "Invalid inspect server address",
		Suggestion: "Use host:port form, e.g. \"127.0.0.1:7744\".",
		DocURL:     "https://loom-ui.dev/docs/errors/E010",
	},

	// ============================================
	// Inspect Errors (E020-E029)
	// ============================================

	"E020": {
		Category: CategoryInspect,
		Message:  "No generation observed yet",
		Detail:   "The inspect server has not seen a completed build pass.",
		DocURL:   "https://loom-ui.dev/docs/errors/E020",
	},
}

// Lookup returns the template for a code and whether it is registered.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
