// Package todo defines the domain model shared by every other package in
// ticklist: the Item entity, the title rules, the error taxonomy, and the
// JSON wire envelopes spoken between the server handlers and the client
// gateway.
//
// # Overview
//
// The package is deliberately free of transport, storage, and concurrency
// concerns. It exists so that the server store, the HTTP layer, and the
// optimistic client cache agree on three things without importing each other:
//
//   - What an item is (Item, Patch) and how it is encoded on the wire.
//   - Which inputs are acceptable (NormalizeTitle), enforced on both sides
//     of the network so the invariant holds regardless of caller.
//   - How failures are classified (ErrNotFound, ValidationError,
//     IsDefinitive); the classification drives the client's retry and
//     rollback decisions.
//
// # Error Taxonomy
//
// Three failure classes cross the wire:
//
//	ValidationError  bad input; mapped to 400; never retried
//	ErrNotFound      stale id; mapped to 404; never retried, local entry dropped
//	(transient)      network/5xx; owned by the client package; retried with backoff
//
// IsDefinitive folds the first two together for callers that only need the
// retry decision.
//
// # Shared Policy
//
// ToggleTarget is the one piece of behavior both sides must compute
// identically: the target state of an implicit "toggle all". Any incomplete
// item drives the list to completed; an all-completed list flips back to
// active. Keeping it here means the client's speculative prediction and the
// server's authoritative application can never diverge.
//
// # See Also
//
// Related packages:
//   - internal/storage: the authoritative, mutex-guarded server store
//   - internal/api: the HTTP surface serving these wire shapes
//   - internal/client: the optimistic cache consuming them
package todo
