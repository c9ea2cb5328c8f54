package client

import (
	"context"
	"sync"

	"github.com/dreamware/ticklist/internal/todo"
)

// Op is the handle for one submitted operation. The local effect of the
// operation is already visible when the handle is returned; the handle
// resolves when the server has confirmed or the operation was rolled
// back.
type Op struct {
	kind string // What was submitted, e.g. "create"

	done chan struct{}

	mu   sync.Mutex
	err  error
	item todo.Item
}

func newOp(kind string) *Op {
	return &Op{kind: kind, done: make(chan struct{})}
}

// failedOp returns a handle that resolved before anything was applied
// or sent, carrying the given error
func failedOp(kind string, err error) *Op {
	op := newOp(kind)
	op.resolve(todo.Item{}, err)
	return op
}

// resolve records the outcome and releases waiters. Called exactly once.
func (o *Op) resolve(item todo.Item, err error) {
	o.mu.Lock()
	o.item = item
	o.err = err
	o.mu.Unlock()
	close(o.done)
}

// Kind reports what kind of operation this handle tracks
func (o *Op) Kind() string {
	return o.kind
}

// Done returns a channel closed when the operation has resolved
func (o *Op) Done() <-chan struct{} {
	return o.done
}

// Err returns the outcome. It blocks until the operation resolves:
// nil means the server confirmed; anything else means the local effect
// was rolled back (or never applied).
func (o *Op) Err() error {
	<-o.done
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// Item returns the confirmed server item, blocking until resolution.
// It is the zero Item for deletes, bulk operations, and failures.
func (o *Op) Item() todo.Item {
	<-o.done
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.item
}

// Wait blocks until the operation resolves or the context ends,
// returning the outcome or the context error
func (o *Op) Wait(ctx context.Context) error {
	select {
	case <-o.done:
		return o.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}
