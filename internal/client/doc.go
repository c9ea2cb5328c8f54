// Package client implements the optimistic side of the todo protocol:
// a local cache that applies every mutation immediately, reconciles
// with the server in the background, and rolls back exactly what it
// speculated when the server says no.
//
// # Overview
//
// The package has two halves. Gateway is the HTTP edge: it shapes
// requests, classifies responses into the error taxonomy (definitive
// rejection vs transient failure), and retries transient failures with
// exponential backoff. Store is the interesting half: an in-memory
// list that stays responsive by assuming the server will agree, and
// repairs itself when it does not.
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────┐
//	│                        Store                        │
//	│                                                     │
//	│   entries: []*entry ── token ─┐                     │
//	│       speculative list        │ correlation         │
//	│                               ▼                     │
//	│   dispatch queue: tails / lastBulk / inflight       │
//	│       per-item FIFO, bulk barriers                  │
//	└───────────────┬─────────────────────────────────────┘
//	                │ Remote interface
//	                ▼
//	┌─────────────────────────────────────────────────────┐
//	│                       Gateway                       │
//	│   JSON over HTTP, retry with backoff, error         │
//	│   classification (definitive vs transient)          │
//	└───────────────┬─────────────────────────────────────┘
//	                │
//	                ▼
//	          todo server (internal/api)
//
// # Speculation and Identity
//
// A created item is visible before the server has named it. The store
// hands it a negative placeholder id and a random correlation token;
// the create request carries neither. When the response arrives, the
// token (not the id) matches it to the waiting entry, and the server
// id replaces the placeholder in place. Placeholder ids are usable:
// updating, toggling, or deleting a still-pending item queues the
// operation behind the create, and the real id is read from the entry
// at send time, after the swap.
//
// # Ordering
//
// At most one request per entry is in flight; later operations on the
// same entry queue in submission order. Operations on different
// entries proceed in parallel. Bulk operations (ToggleAll,
// DeleteCompleted, Refresh) are barriers: they wait for everything
// already submitted and block everything submitted after them. This
// keeps the server's per-item history identical to the order the user
// acted in, without serializing independent work.
//
// # Failure and Rollback
//
// Each operation records the exact state it changed: the prior item
// for an update or toggle, the prior item and position for a delete,
// the prior completed flags for a sweep. Rollback restores that record
// verbatim. Two refinements:
//
//   - A not-found rejection removes the entry instead of restoring it;
//     the server has proven the item no longer exists.
//   - A response for an entry the user has since deleted locally is
//     discarded. Nothing resurrects, nobody is notified; the pending
//     delete will settle matters with the server.
//
// Operations queued behind a failed create are never sent and resolve
// with the create's own error, so one root cause explains the whole
// chain.
//
// # Callbacks
//
// Subscribe observers receive a sorted snapshot after every visible
// change. SetOnFailure receives rollback notices for operations that
// had already applied locally. Both run without the store lock held,
// so a callback may call back into the store. Every snapshot is
// internally consistent; when several goroutines mutate at once, the
// delivery order between their notifications is unspecified. Handles
// returned by mutators resolve exactly once; Wait, Err, and Item block
// until then.
//
// # Usage
//
//	gw := client.NewGateway("http://localhost:8080")
//	store := client.NewStore(gw, order.Default(), nil)
//	defer store.Close()
//
//	if err := store.Refresh().Wait(ctx); err != nil {
//		return err
//	}
//	op := store.Create("buy milk")
//	for _, v := range store.View(client.FilterActive) {
//		fmt.Println(v.ID, v.Title)
//	}
//	if err := op.Wait(ctx); err != nil {
//		return err
//	}
//
// # See Also
//
//   - internal/api for the server half of the wire contract
//   - internal/order for the display sort policy
//   - internal/todo for the shared data model and error taxonomy
package client
