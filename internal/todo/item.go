package todo

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTitleLen is the maximum accepted title length in characters (runes),
// measured after surrounding whitespace has been trimmed.
const MaxTitleLen = 500

// Item is the single task entity shared by the server store, the transport
// layer, and the client cache.
//
// Identity rules:
//   - Server-assigned ids are strictly positive and monotonically increasing.
//   - The client cache may hold items with negative placeholder ids while a
//     create is awaiting confirmation; those never reach the wire as ids.
//
// The JSON field names are the wire contract: every endpoint that returns an
// item returns exactly this shape.
type Item struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Patch is a partial update to an item. A nil field leaves the corresponding
// attribute unchanged. It doubles as the PATCH request body, which is why the
// fields are pointers rather than values.
type Patch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return p.Title == nil && p.Completed == nil
}

// NormalizeTitle validates and canonicalizes a title: surrounding whitespace
// is trimmed, and the result must be non-empty and at most MaxTitleLen
// characters. It returns the trimmed title, or a *ValidationError describing
// why the input was rejected.
//
// Both the server store and the client store call this, so the title
// invariant holds regardless of which side a caller talks to.
func NormalizeTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if n := utf8.RuneCountInString(trimmed); n > MaxTitleLen {
		return "", &ValidationError{
			Field:  "title",
			Reason: fmt.Sprintf("must be at most %d characters, got %d", MaxTitleLen, n),
		}
	}
	return trimmed, nil
}

// ToggleTarget returns the completion state an implicit "toggle all" should
// drive the list to: true while any incomplete item remains, false once every
// item is completed. An empty list toggles to active.
//
// The client uses this to predict the outcome it applies speculatively and
// the server uses it for complement-mode bulk toggles, so the two sides can
// never disagree about the target.
func ToggleTarget(items []Item) bool {
	for _, it := range items {
		if !it.Completed {
			return true
		}
	}
	return false
}
