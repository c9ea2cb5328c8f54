package order

import (
	"sync"

	"golang.org/x/exp/slices"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dreamware/ticklist/internal/todo"
)

// Policy compares and sorts items by title using locale-aware collation.
// Comparison is case-insensitive and treats digit runs as numbers, so
// "Todo 2" sorts before "Todo 10".
//
// All methods are safe for concurrent use.
type Policy struct {
	mu  sync.Mutex // Collators carry internal buffers and are not goroutine-safe
	col *collate.Collator
}

// New creates a sort policy for the given locale
func New(tag language.Tag) *Policy {
	return &Policy{
		col: collate.New(tag, collate.IgnoreCase, collate.Numeric),
	}
}

// Default creates a sort policy with locale-neutral collation
func Default() *Policy {
	return New(language.Und)
}

// ForLocale creates a sort policy for a BCP 47 locale string like "de"
// or "en-US". Falls back to the neutral locale if the string doesn't parse.
func ForLocale(locale string) *Policy {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	return New(tag)
}

// Compare reports the collation order of two titles:
// -1 if a sorts before b, +1 if after, 0 if they compare equal
func (p *Policy) Compare(a, b string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.col.CompareString(a, b)
}

// Sort returns the items ordered by title under this policy.
// The input slice is never modified; items whose titles compare equal
// keep their relative input order.
func (p *Policy) Sort(items []todo.Item) []todo.Item {
	sorted := slices.Clone(items)

	p.mu.Lock()
	defer p.mu.Unlock()

	slices.SortStableFunc(sorted, func(a, b todo.Item) int {
		return p.col.CompareString(a.Title, b.Title)
	})
	return sorted
}
