// Package storage provides the authoritative server-side todo list: a
// thread-safe, insertion-ordered store with atomic id assignment and
// bulk operations that are indivisible from a reader's point of view.
//
// # Overview
//
// The storage package is the single source of truth for list contents.
// Every HTTP handler reads from and writes to a ListStore; clients hold
// optimistic caches that are reconciled against responses produced from
// this store. The package guarantees three things:
//
//   - Identity: every created item gets a unique id from an atomic
//     sequence. Ids are monotonically increasing, start at 1, and are
//     never reused, so an id always denotes the same item for the whole
//     life of the process.
//   - Order: items are kept in insertion order. List() returns items in
//     the order they were created regardless of how often they were
//     updated or toggled in between.
//   - Isolation: bulk operations (toggle-all, clear-completed) run in a
//     single exclusive section. A concurrent List() observes either the
//     full before-state or the full after-state, never a partial sweep.
//
// # Architecture
//
// ListStore is the interface handlers depend on; MemoryList is the
// in-memory implementation:
//
//	┌─────────────────────────────────────┐
//	│            HTTP Handlers            │
//	│           (internal/api)            │
//	└─────────────────────────────────────┘
//	                 │
//	                 ▼
//	┌─────────────────────────────────────┐
//	│         ListStore Interface         │
//	│  (Create, Get, List, Update, ...)   │
//	└─────────────────────────────────────┘
//	                 │
//	                 ▼
//	┌─────────────────────────────────────┐
//	│             MemoryList              │
//	│  []todo.Item  +  map[id]position    │
//	│        guarded by RWMutex           │
//	└─────────────────────────────────────┘
//
// The slice carries the canonical order; the map makes id lookups O(1).
// Deletions compact the slice and refresh positions from the deletion
// point onward.
//
// # Concurrency and Thread Safety
//
// MemoryList uses a single sync.RWMutex:
//
//   - Read operations (Get, List, Len, Stats) take the shared lock
//   - Write operations (Create, Update, Toggle, Delete) take the
//     exclusive lock
//   - Bulk operations (ToggleAll, ToggleAllComplement, DeleteCompleted)
//     take the exclusive lock for the entire sweep
//
// Id assignment uses an atomic sequence rather than the mutex, so the
// uniqueness guarantee does not depend on the caller holding any lock.
// Operation counters are also atomic and never block on the list lock.
//
// Every read returns copies. List() allocates a fresh slice on each
// call; handing the result to a caller can never alias internal state.
//
// # Bulk Operations
//
// ToggleAll(completed) forces every item to the given state. Callers
// that want the "toggle all" button behavior use ToggleAllComplement,
// which derives the target inside the critical section: if any item is
// incomplete the whole list becomes completed, otherwise (including the
// empty list) the whole list becomes active. Deriving and applying under
// one lock means the decision can never be based on a list that changed
// before the sweep ran.
//
// # Validation
//
// Titles are normalized on every Create and title-bearing Update: the
// title is trimmed, and an empty or over-long result is rejected with a
// *todo.ValidationError before the store is touched. Operations on
// unknown ids return todo.ErrNotFound; Update never inserts.
//
// # Usage
//
//	store := storage.NewMemoryList()
//
//	item, err := store.Create("buy milk")
//	if err != nil {
//	    log.Fatalf("create failed: %v", err)
//	}
//
//	item, err = store.Toggle(item.ID)
//	if errors.Is(err, todo.ErrNotFound) {
//	    log.Println("item is gone")
//	}
//
//	target, all := store.ToggleAllComplement()
//	log.Printf("list flipped to completed=%v (%d items)", target, len(all))
//
// # See Also
//
// Related packages:
//   - internal/todo: Item, validation rules, and the error taxonomy
//   - internal/api: HTTP handlers layered over ListStore
//   - internal/client: The optimistic cache reconciled against this store
package storage
