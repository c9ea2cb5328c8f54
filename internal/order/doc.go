// Package order provides the display ordering for todo lists using
// locale-aware collation with case-insensitive and numeric comparison.
//
// # Overview
//
// Titles are compared the way a person scanning a list would expect,
// not by raw code points:
//
//   - Case differences don't split the list: "apfel" and "Äpfel" sort
//     together instead of landing in separate uppercase/lowercase bands.
//   - Runs of digits compare as numbers: "Todo 2" comes before
//     "Todo 10", where a plain string comparison would reverse them.
//   - Accented characters sort near their base letter under the
//     configured locale's collation rules.
//
// A list like
//
//	["Todo 10", "Todo 2", "apfel", "Äpfel"]
//
// sorts to
//
//	["apfel", "Äpfel", "Todo 2", "Todo 10"]
//
// # Stability
//
// Sorting is stable: items whose titles compare equal keep their
// relative insertion order. Because collation is case-insensitive,
// distinct titles can compare equal ("todo" and "TODO"), so stability
// is what keeps repeated sorts from reshuffling them.
//
// Sort never mutates its input. Callers hand in the store's snapshot
// and receive a fresh ordered slice, so concurrent readers of the
// snapshot are never affected.
//
// # Usage
//
//	policy := order.ForLocale("de")
//	sorted := policy.Sort(store.List())
//
// Callers that keep their own slices sort with Compare directly, the way
// the client store orders its views.
//
// # See Also
//
// Related packages:
//   - internal/todo: The Item type being ordered
//   - internal/client: Applies the policy to every view it publishes
package order
