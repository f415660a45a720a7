// Package recontest provides test helpers for the reconciliation
// engine: a render-counting component and a harness that steps a
// builder through successive scope root generations.
package recontest
