package client

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/dreamware/ticklist/internal/order"
	"github.com/dreamware/ticklist/internal/todo"
)

// Remote is the server surface the store reconciles against.
// *Gateway implements it; tests substitute stubs.
type Remote interface {
	List(ctx context.Context) ([]todo.Item, error)
	Create(ctx context.Context, title string) (todo.Item, error)
	Update(ctx context.Context, id int64, patch todo.Patch) (todo.Item, error)
	Toggle(ctx context.Context, id int64) (todo.Item, error)
	Delete(ctx context.Context, id int64) error
	DeleteCompleted(ctx context.Context) (int, error)
	ToggleAll(ctx context.Context, completed bool) ([]todo.Item, error)
}

// Filter selects a slice of the visible list by completion state
type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

// TodoView is one item as the user currently sees it. Pending reports
// whether the entry itself is still unconfirmed: its create has not
// been acknowledged yet, or an operation addressed to it is in flight
// or queued. Bulk sweeps don't mark individual entries pending.
type TodoView struct {
	todo.Item
	Pending bool `json:"pending"`
}

// Snapshot is a consistent copy of the visible list handed to
// observers, sorted in display order.
type Snapshot struct {
	Items []TodoView // Display order under the store's sort policy
	Stats todo.Stats // Counts over the visible list
}

// entry is one cache slot. The token is the entry's identity for its
// whole life; the numeric id changes exactly once, from a negative
// placeholder to the server id, when a create confirms.
type entry struct {
	token uuid.UUID
	item  todo.Item
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// Store is an optimistic cache of the todo list.
//
// Every mutation applies to the local cache immediately and returns an
// *Op handle; the matching request is sent in the background. When the
// server confirms, the confirmed state is folded back in. When the
// server definitively rejects (or a transient failure outlasts the
// retry budget), the operation's exact prior state is restored and the
// failure callback fires.
//
// Ordering model:
//   - Operations on the same entry are serialized: at most one request
//     per entry is in flight, later ones queue behind it.
//   - Operations on different entries proceed in parallel.
//   - Bulk operations (ToggleAll, DeleteCompleted, Refresh) are
//     barriers: they wait for everything already submitted, and
//     everything submitted after them waits for them.
//
// Identity model:
//   - Entries created locally are visible at once under a negative
//     placeholder id, so they can be addressed before the server has
//     named them.
//   - Each entry carries a correlation token; the token, never the
//     numeric id, ties a pending create to its confirmation. When the
//     confirmation arrives the placeholder id is swapped for the server
//     id and the entry keeps its place.
//   - Operations queued behind a create resolve their target id at send
//     time, after the swap.
//
// Failure model:
//   - A rejection that proves the item is gone (not found) removes the
//     local entry instead of restoring it.
//   - Responses for entries the user has since deleted locally are
//     discarded rather than resurrecting them.
//   - Operations queued behind a failed create resolve with the
//     create's error and are never sent.
//
// All methods are safe for concurrent use. Observer callbacks and the
// failure callback are invoked without the store lock held, so they
// may call back into the store.
type Store struct {
	remote Remote
	policy *order.Policy
	log    *log.Logger

	// ctx parents every request; cancel + wg implement Close
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	closed  bool
	entries []*entry
	tempSeq int64 // Placeholder ids issued so far; id = -tempSeq

	// Dispatch state: the dependency queue described in dispatch.go
	seq          uint64
	tails        map[uuid.UUID]*pendingOp
	lastBulk     *pendingOp
	inflight     map[*pendingOp]struct{}
	removedCause map[uuid.UUID]error

	subs      []subscriber
	nextSub   int
	onFailure func(op string, err error)
}

// NewStore creates an optimistic store in front of the given remote.
// A nil policy means the default sort policy; a nil logger means the
// standard logger. The store starts empty: call Refresh to load the
// server's list.
func NewStore(remote Remote, policy *order.Policy, logger *log.Logger) *Store {
	if policy == nil {
		policy = order.Default()
	}
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Store{
		remote:       remote,
		policy:       policy,
		log:          logger,
		ctx:          ctx,
		cancel:       cancel,
		tails:        make(map[uuid.UUID]*pendingOp),
		inflight:     make(map[*pendingOp]struct{}),
		removedCause: make(map[uuid.UUID]error),
	}
}

// Close cancels every in-flight request and waits for their goroutines
// to drain. Every unresolved handle resolves; operations submitted
// after Close resolve immediately with ErrClosed.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

// Subscribe registers an observer invoked after every visible change.
// The returned function removes the observer.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
	}
}

// SetOnFailure registers the notice shown to the user when an operation
// that had already applied locally was rolled back. Immediate local
// rejections (invalid title, unknown id) don't fire it: their error is
// already in the caller's hands on the returned handle.
func (s *Store) SetOnFailure(fn func(op string, err error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onFailure = fn
}

// Snapshot returns the visible list in display order plus its counts
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// View returns the visible items selected by the filter, in display
// order. A filtered view keeps the same relative order as the full
// list.
func (s *Store) View(f Filter) []TodoView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked(f)
}

// Counts returns item counts over the visible (speculative) list,
// mirroring the server's stats shape
func (s *Store) Counts() todo.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats todo.Stats
	for _, ent := range s.entries {
		stats.Total++
		if ent.item.Completed {
			stats.Completed++
		} else {
			stats.Active++
		}
	}
	return stats
}

func (s *Store) viewLocked(f Filter) []TodoView {
	views := make([]TodoView, 0, len(s.entries))
	for _, ent := range s.entries {
		switch f {
		case FilterActive:
			if ent.item.Completed {
				continue
			}
		case FilterCompleted:
			if !ent.item.Completed {
				continue
			}
		}
		pending := ent.item.ID < 0 || s.tails[ent.token] != nil
		views = append(views, TodoView{Item: ent.item, Pending: pending})
	}

	slices.SortStableFunc(views, func(a, b TodoView) int {
		return s.policy.Compare(a.Title, b.Title)
	})
	return views
}

func (s *Store) snapshotLocked() Snapshot {
	var stats todo.Stats
	for _, ent := range s.entries {
		stats.Total++
		if ent.item.Completed {
			stats.Completed++
		} else {
			stats.Active++
		}
	}
	return Snapshot{Items: s.viewLocked(FilterAll), Stats: stats}
}

// findLocked locates a visible entry by its current id, which may be a
// negative placeholder
func (s *Store) findLocked(id int64) *entry {
	idx := slices.IndexFunc(s.entries, func(e *entry) bool { return e.item.ID == id })
	if idx < 0 {
		return nil
	}
	return s.entries[idx]
}

// Create appends an item speculatively and submits it.
//
// The entry is visible immediately under a negative placeholder id and
// a fresh correlation token. Confirmation swaps in the server id; a
// failure removes the entry again. The title is validated first: an
// invalid title resolves the handle immediately and nothing is applied
// or sent.
func (s *Store) Create(title string) *Op {
	normalized, err := todo.NormalizeTitle(title)
	if err != nil {
		return failedOp("create", err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return failedOp("create", ErrClosed)
	}

	s.tempSeq++
	ent := &entry{
		token: uuid.New(),
		item:  todo.Item{ID: -s.tempSeq, Title: normalized},
	}
	s.entries = append(s.entries, ent)

	po := s.newPendingLocked(opCreate, ent)
	po.title = normalized

	var eff effects
	eff.changed = true
	s.enqueueLocked(po, &eff)
	s.flushLocked(eff)
	return po.op
}

// Update patches an item in place and submits the change.
//
// A patch that clears the title is reshaped into a delete before
// anything is sent: the visible outcome of saving an emptied title is
// the item disappearing, so the wire says what the user meant. An
// otherwise invalid title (too long) resolves the handle immediately
// with the validation error and nothing is applied or sent. An empty
// patch resolves immediately with the item's current state.
func (s *Store) Update(id int64, patch todo.Patch) *Op {
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return s.Delete(id)
		}
		normalized, err := todo.NormalizeTitle(*patch.Title)
		if err != nil {
			return failedOp("update", err)
		}
		patch.Title = &normalized
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return failedOp("update", ErrClosed)
	}
	ent := s.findLocked(id)
	if ent == nil {
		s.mu.Unlock()
		return failedOp("update", todo.ErrNotFound)
	}
	if patch.IsZero() {
		op := newOp("update")
		op.resolve(ent.item, nil)
		s.mu.Unlock()
		return op
	}

	po := s.newPendingLocked(opUpdate, ent)
	po.patch = patch
	po.prior = ent.item
	if patch.Title != nil {
		ent.item.Title = *patch.Title
	}
	if patch.Completed != nil {
		ent.item.Completed = *patch.Completed
	}

	var eff effects
	eff.changed = true
	s.enqueueLocked(po, &eff)
	s.flushLocked(eff)
	return po.op
}

// Toggle flips an item's completed flag speculatively and submits the
// flip
func (s *Store) Toggle(id int64) *Op {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return failedOp("toggle", ErrClosed)
	}
	ent := s.findLocked(id)
	if ent == nil {
		s.mu.Unlock()
		return failedOp("toggle", todo.ErrNotFound)
	}

	po := s.newPendingLocked(opToggle, ent)
	po.prior = ent.item
	ent.item.Completed = !ent.item.Completed

	var eff effects
	eff.changed = true
	s.enqueueLocked(po, &eff)
	s.flushLocked(eff)
	return po.op
}

// Delete removes an item speculatively and submits the removal.
//
// The entry disappears from views at once. A transient failure that
// outlasts the retry budget puts it back where it was; a not-found
// response means the server was already there, and counts as success.
func (s *Store) Delete(id int64) *Op {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return failedOp("delete", ErrClosed)
	}
	idx := slices.IndexFunc(s.entries, func(e *entry) bool { return e.item.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return failedOp("delete", todo.ErrNotFound)
	}
	ent := s.entries[idx]

	po := s.newPendingLocked(opDelete, ent)
	po.prior = ent.item
	po.priorPos = idx
	s.entries = slices.Delete(s.entries, idx, idx+1)

	var eff effects
	eff.changed = true
	s.enqueueLocked(po, &eff)
	s.flushLocked(eff)
	return po.op
}

// ToggleAll forces every visible item to the given state and submits
// one bulk request carrying that explicit target
func (s *Store) ToggleAll(completed bool) *Op {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return failedOp("toggle_all", ErrClosed)
	}
	return s.toggleAllLocked(completed)
}

// ToggleAllAuto derives the toggle-all target from the current visible
// list the same way the server would: if anything is incomplete the
// list becomes completed, otherwise it becomes active. The wire always
// carries the resolved explicit target, so client and server cannot
// disagree about what the user saw.
func (s *Store) ToggleAllAuto() *Op {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return failedOp("toggle_all", ErrClosed)
	}

	items := make([]todo.Item, len(s.entries))
	for i, ent := range s.entries {
		items[i] = ent.item
	}
	return s.toggleAllLocked(todo.ToggleTarget(items))
}

// toggleAllLocked applies the sweep and enqueues the bulk op.
// Takes over the held lock and releases it.
func (s *Store) toggleAllLocked(completed bool) *Op {
	po := s.newPendingLocked(opToggleAll, nil)
	po.target = completed
	po.priorDone = make(map[*entry]bool, len(s.entries))
	for _, ent := range s.entries {
		po.priorDone[ent] = ent.item.Completed
		ent.item.Completed = completed
	}

	var eff effects
	eff.changed = true
	s.enqueueLocked(po, &eff)
	s.flushLocked(eff)
	return po.op
}

// DeleteCompleted removes every completed item speculatively and
// submits one bulk request. Rollback puts each removed entry back at
// its recorded position.
func (s *Store) DeleteCompleted() *Op {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return failedOp("delete_completed", ErrClosed)
	}

	po := s.newPendingLocked(opDeleteCompleted, nil)
	kept := make([]*entry, 0, len(s.entries))
	for i, ent := range s.entries {
		if ent.item.Completed {
			po.removed = append(po.removed, removedAt{ent: ent, pos: i})
			continue
		}
		kept = append(kept, ent)
	}
	s.entries = kept

	var eff effects
	eff.changed = len(po.removed) > 0
	s.enqueueLocked(po, &eff)
	s.flushLocked(eff)
	return po.op
}

// Refresh fetches the authoritative list and folds it into the cache.
// It is a barrier like the other bulk operations: every operation
// submitted before it confirms first, so the fetched list is never
// stale with respect to this client's own writes.
func (s *Store) Refresh() *Op {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return failedOp("refresh", ErrClosed)
	}

	po := s.newPendingLocked(opRefresh, nil)

	var eff effects
	s.enqueueLocked(po, &eff)
	s.flushLocked(eff)
	return po.op
}

// flushLocked releases the lock and delivers whatever the critical
// section produced: at most one coalesced snapshot to observers, and
// any rollback notices to the failure callback.
func (s *Store) flushLocked(eff effects) {
	var fns []func(Snapshot)
	var snap Snapshot
	if eff.changed {
		fns = make([]func(Snapshot), len(s.subs))
		for i, sub := range s.subs {
			fns[i] = sub.fn
		}
		snap = s.snapshotLocked()
	}
	onFailure := s.onFailure
	s.mu.Unlock()

	for _, f := range eff.failures {
		s.log.Printf("%s rolled back: %v", f.op, f.err)
		if onFailure != nil {
			onFailure(f.op, f.err)
		}
	}
	for _, fn := range fns {
		fn(snap)
	}
}
