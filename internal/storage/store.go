package storage

import (
	"sync"
	"sync/atomic"

	"github.com/dreamware/ticklist/internal/todo"
)

// ListStore defines the interface for the authoritative todo list
// All implementations must be thread-safe for concurrent access
type ListStore interface {
	// Create adds an item with the given title and a fresh id
	// The title is normalized and validated before anything is stored
	Create(title string) (todo.Item, error)

	// Get retrieves an item by id
	// Returns todo.ErrNotFound if the id doesn't exist
	Get(id int64) (todo.Item, error)

	// List returns all items in insertion order
	List() []todo.Item

	// Update applies a partial update to an item
	// Returns todo.ErrNotFound if the id doesn't exist; never inserts
	Update(id int64, patch todo.Patch) (todo.Item, error)

	// Toggle flips an item's completed flag
	Toggle(id int64) (todo.Item, error)

	// Delete removes an item
	// Returns todo.ErrNotFound if the id doesn't exist
	Delete(id int64) error

	// DeleteCompleted removes every completed item
	// Returns the number of items removed
	DeleteCompleted() int

	// ToggleAll sets every item's completed flag and returns the new list
	ToggleAll(completed bool) []todo.Item

	// ToggleAllComplement derives the toggle target from the current list
	// and applies it within the same critical section
	ToggleAllComplement() (bool, []todo.Item)

	// Len returns the number of items
	Len() int

	// Stats returns list statistics
	Stats() todo.Stats

	// OpCounts returns how many operations of each kind have been served
	OpCounts() todo.OpCounts
}

// MemoryList implements ListStore with an in-memory slice
// Uses sync.RWMutex for thread-safe concurrent access; the slice keeps
// insertion order and the index maps ids to positions
type MemoryList struct {
	mu    sync.RWMutex  // Protects items and index
	items []todo.Item   // Items in insertion order
	index map[int64]int // Item id -> position in items
	seq   Sequence      // Issues item ids
	ops   opCounters    // Served operation counts
}

// opCounters tracks served operation counts
// Fields are advanced atomically so Stats never blocks on the list lock
type opCounters struct {
	creates uint64
	updates uint64
	toggles uint64
	deletes uint64
	bulk    uint64
}

// NewMemoryList creates an empty in-memory list store
func NewMemoryList() *MemoryList {
	return &MemoryList{
		index: make(map[int64]int),
	}
}

// Create adds an item with the given title
// Returns the stored item with its assigned id, or a validation error
// if the title is empty after trimming or too long
func (m *MemoryList) Create(title string) (todo.Item, error) {
	normalized, err := todo.NormalizeTitle(title)
	if err != nil {
		return todo.Item{}, err
	}
	atomic.AddUint64(&m.ops.creates, 1)

	m.mu.Lock()
	defer m.mu.Unlock()

	item := todo.Item{
		ID:    m.seq.Next(),
		Title: normalized,
	}
	m.items = append(m.items, item)
	m.index[item.ID] = len(m.items) - 1

	return item, nil
}

// Get retrieves an item by id
func (m *MemoryList) Get(id int64) (todo.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pos, exists := m.index[id]
	if !exists {
		return todo.Item{}, todo.ErrNotFound
	}
	return m.items[pos], nil
}

// List returns all items in insertion order
// Returns a copy so callers can never alias the internal slice
func (m *MemoryList) List() []todo.Item {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]todo.Item, len(m.items))
	copy(out, m.items)
	return out
}

// Update applies a partial update to an item
// A nil patch field leaves that field unchanged; an empty patch is a no-op
// that returns the current item
func (m *MemoryList) Update(id int64, patch todo.Patch) (todo.Item, error) {
	var normalized string
	if patch.Title != nil {
		var err error
		normalized, err = todo.NormalizeTitle(*patch.Title)
		if err != nil {
			return todo.Item{}, err
		}
	}
	atomic.AddUint64(&m.ops.updates, 1)

	m.mu.Lock()
	defer m.mu.Unlock()

	pos, exists := m.index[id]
	if !exists {
		return todo.Item{}, todo.ErrNotFound
	}

	if patch.Title != nil {
		m.items[pos].Title = normalized
	}
	if patch.Completed != nil {
		m.items[pos].Completed = *patch.Completed
	}
	return m.items[pos], nil
}

// Toggle flips an item's completed flag
func (m *MemoryList) Toggle(id int64) (todo.Item, error) {
	atomic.AddUint64(&m.ops.toggles, 1)

	m.mu.Lock()
	defer m.mu.Unlock()

	pos, exists := m.index[id]
	if !exists {
		return todo.Item{}, todo.ErrNotFound
	}

	m.items[pos].Completed = !m.items[pos].Completed
	return m.items[pos], nil
}

// Delete removes an item
// Returns todo.ErrNotFound if the id doesn't exist so the caller can
// tell a deletion apart from a no-op
func (m *MemoryList) Delete(id int64) error {
	atomic.AddUint64(&m.ops.deletes, 1)

	m.mu.Lock()
	defer m.mu.Unlock()

	pos, exists := m.index[id]
	if !exists {
		return todo.ErrNotFound
	}

	m.items = append(m.items[:pos], m.items[pos+1:]...)
	delete(m.index, id)
	m.reindexFrom(pos)

	return nil
}

// reindexFrom refreshes index positions from pos onward
// Caller must hold the write lock
func (m *MemoryList) reindexFrom(pos int) {
	for i := pos; i < len(m.items); i++ {
		m.index[m.items[i].ID] = i
	}
}

// Len returns the number of items
func (m *MemoryList) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.items)
}

// Stats returns list statistics counted under a single read lock
func (m *MemoryList) Stats() todo.Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := todo.Stats{Total: len(m.items)}
	for _, item := range m.items {
		if item.Completed {
			stats.Completed++
		} else {
			stats.Active++
		}
	}
	return stats
}

// OpCounts returns how many operations of each kind have been served
func (m *MemoryList) OpCounts() todo.OpCounts {
	return todo.OpCounts{
		Creates: atomic.LoadUint64(&m.ops.creates),
		Updates: atomic.LoadUint64(&m.ops.updates),
		Toggles: atomic.LoadUint64(&m.ops.toggles),
		Deletes: atomic.LoadUint64(&m.ops.deletes),
		Bulk:    atomic.LoadUint64(&m.ops.bulk),
	}
}
