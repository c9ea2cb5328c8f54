package client

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/dreamware/ticklist/internal/todo"
)

// Dispatch engine for the optimistic store.
//
// Every mutation becomes a pendingOp. An op launches immediately when
// nothing stands in front of it; otherwise it registers as a waiter on
// the ops it depends on and launches when the last of them resolves.
// Dependencies follow two rules:
//
//   - a per-item op waits for the newest earlier op on the same entry,
//     or the newest earlier bulk op, whichever was enqueued later
//   - a bulk op waits for every op still outstanding
//
// Per-item chains therefore stay FIFO, independent items proceed in
// parallel, and bulk operations act as barriers in both directions.
// Completion is processed under the store lock; callbacks fire after
// the lock is released.

type opKind int

const (
	opCreate opKind = iota
	opUpdate
	opToggle
	opDelete
	opToggleAll
	opDeleteCompleted
	opRefresh
)

func (k opKind) String() string {
	switch k {
	case opCreate:
		return "create"
	case opUpdate:
		return "update"
	case opToggle:
		return "toggle"
	case opDelete:
		return "delete"
	case opToggleAll:
		return "toggle_all"
	case opDeleteCompleted:
		return "delete_completed"
	case opRefresh:
		return "refresh"
	}
	return "unknown"
}

// outcome carries whichever result shape the remote call produced
type outcome struct {
	item  todo.Item   // create, update, toggle
	list  []todo.Item // toggle_all, refresh
	count int         // delete_completed
}

type failureNotice struct {
	op  string
	err error
}

// effects accumulates what a critical section did, so callbacks can be
// delivered after the lock is dropped
type effects struct {
	changed  bool
	failures []failureNotice
}

// removedAt remembers where a bulk delete took an entry from
type removedAt struct {
	ent *entry
	pos int
}

// pendingOp is one queued operation: what to send, the exact prior
// state needed to undo its speculative effect, and who is waiting on
// it. ent is nil for bulk kinds.
type pendingOp struct {
	op   *Op
	kind opKind
	seq  uint64
	ent  *entry

	// Request shaping, captured at submit time
	title  string     // create
	patch  todo.Patch // update
	target bool       // toggle_all

	// Recorded prior state; rollback restores these verbatim rather
	// than recomputing anything
	prior     todo.Item       // update, toggle, delete
	priorPos  int             // delete
	priorDone map[*entry]bool // toggle_all
	removed   []removedAt     // delete_completed

	deps     int
	waiters  []*pendingOp
	resolved bool
}

func (s *Store) newPendingLocked(kind opKind, ent *entry) *pendingOp {
	return &pendingOp{op: newOp(kind.String()), kind: kind, ent: ent}
}

// enqueueLocked stamps the op, wires its dependencies, and launches it
// if nothing is in front of it
func (s *Store) enqueueLocked(po *pendingOp, eff *effects) {
	s.seq++
	po.seq = s.seq
	s.inflight[po] = struct{}{}

	if po.ent != nil {
		// Chain behind the entry's own newest op or the newest bulk
		// barrier, whichever came later
		dep := s.tails[po.ent.token]
		if s.lastBulk != nil && (dep == nil || s.lastBulk.seq > dep.seq) {
			dep = s.lastBulk
		}
		if dep != nil {
			dep.waiters = append(dep.waiters, po)
			po.deps++
		}
		s.tails[po.ent.token] = po
	} else {
		for other := range s.inflight {
			if other == po {
				continue
			}
			other.waiters = append(other.waiters, po)
			po.deps++
		}
		s.lastBulk = po
	}

	if po.deps == 0 {
		s.launchLocked(po, eff)
	}
}

// launchLocked either spawns the request goroutine or, when the op can
// no longer be sent, resolves it on the spot
func (s *Store) launchLocked(po *pendingOp, eff *effects) {
	if s.closed {
		s.finishLocked(po, outcome{}, ErrClosed, false, eff)
		return
	}
	if po.ent != nil {
		if cause, gone := s.removedCause[po.ent.token]; gone {
			// The entry died before this op could go out; surface the
			// root cause instead of sending a request for a dead id
			s.finishLocked(po, outcome{}, cause, false, eff)
			return
		}
	}

	// Resolve the target id now, after any earlier create has swapped
	// the placeholder for the server id
	var id int64
	if po.ent != nil {
		id = po.ent.item.ID
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		out, err := s.send(po, id)
		s.complete(po, out, err)
	}()
}

// send performs the remote call for an op. Runs outside the lock.
func (s *Store) send(po *pendingOp, id int64) (outcome, error) {
	var out outcome
	var err error
	switch po.kind {
	case opCreate:
		out.item, err = s.remote.Create(s.ctx, po.title)
	case opUpdate:
		out.item, err = s.remote.Update(s.ctx, id, po.patch)
	case opToggle:
		out.item, err = s.remote.Toggle(s.ctx, id)
	case opDelete:
		err = s.remote.Delete(s.ctx, id)
	case opToggleAll:
		out.list, err = s.remote.ToggleAll(s.ctx, po.target)
	case opDeleteCompleted:
		out.count, err = s.remote.DeleteCompleted(s.ctx)
	case opRefresh:
		out.list, err = s.remote.List(s.ctx)
	}
	return out, err
}

// complete folds a finished request back into the store and delivers
// the resulting callbacks
func (s *Store) complete(po *pendingOp, out outcome, err error) {
	var eff effects
	s.mu.Lock()
	s.finishLocked(po, out, err, true, &eff)
	s.flushLocked(eff)
}

// finishLocked resolves one op and cascades to its waiters. Waiters
// whose last dependency this was are launched (or short-circuited)
// before the lock is released, so the queue never stalls.
func (s *Store) finishLocked(po *pendingOp, out outcome, err error, sent bool, eff *effects) {
	if po.resolved {
		return
	}
	po.resolved = true
	delete(s.inflight, po)

	// Whether a newer op for the same entry is already queued; if so,
	// that op's speculation supersedes this confirmation
	var hasLater bool
	if po.ent != nil {
		if s.tails[po.ent.token] == po {
			delete(s.tails, po.ent.token)
		} else {
			hasLater = s.tails[po.ent.token] != nil
		}
	} else if s.lastBulk == po {
		s.lastBulk = nil
	}

	switch {
	case s.closed:
		// Shutdown: report the raw outcome, leave the cache alone
		po.op.resolve(out.item, err)
	case !sent:
		po.op.resolve(todo.Item{}, err)
	case err == nil:
		s.confirmLocked(po, out, hasLater, eff)
		po.op.resolve(out.item, nil)
	case po.kind == opDelete && errors.Is(err, todo.ErrNotFound):
		// Already gone server-side; that was the goal state
		po.op.resolve(todo.Item{}, nil)
	default:
		s.rollbackLocked(po, err, eff)
		po.op.resolve(todo.Item{}, err)
	}

	for _, w := range po.waiters {
		w.deps--
		if w.deps == 0 {
			s.launchLocked(w, eff)
		}
	}

	// Once an entry's queue drains there is nothing left to
	// short-circuit; drop its removal record
	if po.ent != nil && s.tails[po.ent.token] == nil {
		delete(s.removedCause, po.ent.token)
	}
}

// confirmLocked folds a successful response into the cache
func (s *Store) confirmLocked(po *pendingOp, out outcome, hasLater bool, eff *effects) {
	switch po.kind {
	case opCreate:
		// Bind the server id to the entry even when the entry is no
		// longer visible: ops queued behind this create read their
		// target id from the entry at launch time
		po.ent.item.ID = out.item.ID
		if slices.Contains(s.entries, po.ent) {
			if !hasLater {
				po.ent.item = out.item
			}
			eff.changed = true
		}

	case opUpdate, opToggle:
		if !slices.Contains(s.entries, po.ent) {
			// Late response for a locally deleted item: discard it
			return
		}
		if !hasLater {
			po.ent.item = out.item
			eff.changed = true
		}

	case opDelete:
		// The entry left the cache when the delete was submitted

	case opToggleAll, opRefresh:
		s.reconcileLocked(out.list, eff)

	case opDeleteCompleted:
		// The speculative removal already matches the server
	}
}

// rollbackLocked restores the exact state an op recorded when it was
// submitted, except the entry's id, which only ever moves from the
// placeholder to the server id. A not-found rejection removes the
// entry instead: the server has proven the item no longer exists.
func (s *Store) rollbackLocked(po *pendingOp, err error, eff *effects) {
	switch po.kind {
	case opCreate:
		s.removedCause[po.ent.token] = err
		if !s.removeEntryLocked(po.ent) {
			// Already deleted locally; nothing to undo or announce
			return
		}

	case opUpdate, opToggle:
		if !slices.Contains(s.entries, po.ent) {
			return
		}
		if errors.Is(err, todo.ErrNotFound) {
			s.removedCause[po.ent.token] = err
			s.removeEntryLocked(po.ent)
		} else {
			// prior may predate the create confirmation that swapped in
			// the server id; the swap is never undone
			prior := po.prior
			prior.ID = po.ent.item.ID
			po.ent.item = prior
		}

	case opDelete:
		pos := po.priorPos
		if pos > len(s.entries) {
			pos = len(s.entries)
		}
		s.entries = slices.Insert(s.entries, pos, po.ent)

	case opToggleAll:
		for ent, done := range po.priorDone {
			if slices.Contains(s.entries, ent) {
				ent.item.Completed = done
			}
		}

	case opDeleteCompleted:
		// Positions were recorded ascending, so inserting in order
		// rebuilds the original layout
		for _, r := range po.removed {
			pos := r.pos
			if pos > len(s.entries) {
				pos = len(s.entries)
			}
			s.entries = slices.Insert(s.entries, pos, r.ent)
		}

	case opRefresh:
		// Nothing was applied locally; the handle carries the error
		return
	}

	eff.changed = true
	eff.failures = append(eff.failures, failureNotice{op: po.kind.String(), err: err})
}

// reconcileLocked folds an authoritative server list into the cache.
// Entries with operations still queued keep their speculative state;
// unknown server items are adopted under fresh tokens; settled entries
// the server no longer has are dropped; pending creates keep their
// place after the server's order.
func (s *Store) reconcileLocked(list []todo.Item, eff *effects) {
	byID := make(map[int64]*entry, len(s.entries))
	for _, ent := range s.entries {
		if ent.item.ID > 0 {
			byID[ent.item.ID] = ent
		}
	}

	next := make([]*entry, 0, len(list))
	seen := make(map[*entry]bool, len(list))
	for _, item := range list {
		if ent, ok := byID[item.ID]; ok {
			if s.tails[ent.token] == nil {
				ent.item = item
			}
			next = append(next, ent)
			seen[ent] = true
			continue
		}
		next = append(next, &entry{token: uuid.New(), item: item})
	}

	for _, ent := range s.entries {
		if seen[ent] {
			continue
		}
		if ent.item.ID < 0 || s.tails[ent.token] != nil {
			next = append(next, ent)
		}
	}

	s.entries = next
	eff.changed = true
}

func (s *Store) removeEntryLocked(ent *entry) bool {
	idx := slices.Index(s.entries, ent)
	if idx < 0 {
		return false
	}
	s.entries = slices.Delete(s.entries, idx, idx+1)
	return true
}
