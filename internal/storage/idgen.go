package storage

import "sync/atomic"

// Sequence issues unique, monotonically increasing item ids
// The zero value is ready to use; the first id issued is 1
//
// Ids are never reused, including after the item they named is deleted,
// so an id observed anywhere in the system always denotes the same item.
type Sequence struct {
	last int64 // Last issued id, advanced atomically
}

// Next issues the next id
// Safe for concurrent use; two callers can never receive the same id
func (s *Sequence) Next() int64 {
	return atomic.AddInt64(&s.last, 1)
}

// Last reports the most recently issued id, 0 before the first
func (s *Sequence) Last() int64 {
	return atomic.LoadInt64(&s.last)
}
