package storage

import (
	"sync/atomic"

	"github.com/dreamware/ticklist/internal/todo"
)

// Bulk operations run inside a single exclusive section so a concurrent
// reader sees either the list before the sweep or the list after it,
// never a partial mix.

// ToggleAll sets every item's completed flag to the given value
// Idempotent; returns the resulting list in insertion order
func (m *MemoryList) ToggleAll(completed bool) []todo.Item {
	atomic.AddUint64(&m.ops.bulk, 1)

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.setAllLocked(completed)
}

// ToggleAllComplement derives the target state from the current list and
// applies it without releasing the lock in between: if any item is
// incomplete everything becomes completed, otherwise everything becomes
// active. Returns the target it chose and the resulting list.
func (m *MemoryList) ToggleAllComplement() (bool, []todo.Item) {
	atomic.AddUint64(&m.ops.bulk, 1)

	m.mu.Lock()
	defer m.mu.Unlock()

	target := todo.ToggleTarget(m.items)
	return target, m.setAllLocked(target)
}

// setAllLocked sweeps the completed flag across all items and returns a
// copy of the result. Caller must hold the write lock.
func (m *MemoryList) setAllLocked(completed bool) []todo.Item {
	for i := range m.items {
		m.items[i].Completed = completed
	}

	out := make([]todo.Item, len(m.items))
	copy(out, m.items)
	return out
}

// DeleteCompleted removes every completed item in one sweep
// Remaining items keep their insertion order; returns the removed count
func (m *MemoryList) DeleteCompleted() int {
	atomic.AddUint64(&m.ops.bulk, 1)

	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.items[:0]
	removed := 0
	for _, item := range m.items {
		if item.Completed {
			delete(m.index, item.ID)
			removed++
			continue
		}
		kept = append(kept, item)
	}
	m.items = kept
	m.reindexFrom(0)

	return removed
}
