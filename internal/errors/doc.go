// Package errors provides Loom's structured error type.
//
// Every known failure has a stable code (E001, E002, ...) registered
// with a category, message, and optional fix suggestion. Contract
// violations in the reconciliation core — building outside an active
// scope, duplicate sibling keys, rebuilding a sealed generation — panic
// with a *LoomError carrying the relevant code; they are programmer
// errors and are never silently recovered.
//
//	panic(errors.New("E002").WithDetailf("duplicate sibling key %q", key))
//
// Format renders an error for terminal display with the detail,
// suggestion, and documentation link from the registry.
package errors
