package order

import (
	"fmt"
	"sync"
	"testing"

	"github.com/dreamware/ticklist/internal/todo"
)

func titles(items []todo.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Title
	}
	return out
}

func itemsFromTitles(names ...string) []todo.Item {
	items := make([]todo.Item, len(names))
	for i, name := range names {
		items[i] = todo.Item{ID: int64(i + 1), Title: name}
	}
	return items
}

// TestSortOrdering tests the collation rules on representative lists
func TestSortOrdering(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "numeric runs compare as numbers",
			input: []string{"Todo 10", "Todo 2", "Todo 1"},
			want:  []string{"Todo 1", "Todo 2", "Todo 10"},
		},
		{
			name:  "case differences do not split the list",
			input: []string{"banana", "Apple", "apple pie"},
			want:  []string{"Apple", "apple pie", "banana"},
		},
		{
			name:  "accents sort near the base letter",
			input: []string{"Todo 10", "Todo 2", "apfel", "Äpfel"},
			want:  []string{"apfel", "Äpfel", "Todo 2", "Todo 10"},
		},
		{
			name:  "empty list",
			input: nil,
			want:  []string{},
		},
		{
			name:  "single item",
			input: []string{"only"},
			want:  []string{"only"},
		},
	}

	policy := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titles(policy.Sort(itemsFromTitles(tt.input...)))
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d items, got %d", len(tt.want), len(got))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Position %d: expected %q, got %q (full order %v)", i, tt.want[i], got[i], got)
				}
			}
		})
	}
}

// TestSortStability tests that equal-comparing titles keep insertion order
func TestSortStability(t *testing.T) {
	// "todo" and "TODO" compare equal under case-insensitive collation
	items := []todo.Item{
		{ID: 1, Title: "todo"},
		{ID: 2, Title: "TODO"},
		{ID: 3, Title: "Todo"},
		{ID: 4, Title: "aardvark"},
	}

	policy := Default()
	sorted := policy.Sort(items)

	if sorted[0].Title != "aardvark" {
		t.Fatalf("Expected 'aardvark' first, got %q", sorted[0].Title)
	}
	wantIDs := []int64{1, 2, 3}
	for i, want := range wantIDs {
		if sorted[i+1].ID != want {
			t.Errorf("Position %d: expected ID %d, got %d", i+1, want, sorted[i+1].ID)
		}
	}
}

// TestSortIdempotent tests that re-sorting a sorted list changes nothing
func TestSortIdempotent(t *testing.T) {
	policy := Default()
	items := itemsFromTitles("Todo 10", "Todo 2", "apfel", "Äpfel", "todo 2")

	once := policy.Sort(items)
	twice := policy.Sort(once)

	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("Position %d: first sort %+v, second sort %+v", i, once[i], twice[i])
		}
	}
}

// TestSortDoesNotMutateInput tests that Sort returns a fresh slice
func TestSortDoesNotMutateInput(t *testing.T) {
	input := itemsFromTitles("zebra", "apple", "mango")
	want := titles(input)

	policy := Default()
	sorted := policy.Sort(input)

	for i, title := range want {
		if input[i].Title != title {
			t.Errorf("Input position %d changed: expected %q, got %q", i, title, input[i].Title)
		}
	}
	if len(sorted) > 0 && &sorted[0] == &input[0] {
		t.Error("Expected Sort to return a copy, got the input slice")
	}
}

// TestCompare tests the pairwise comparison contract
func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"apple", "banana", -1},
		{"banana", "apple", 1},
		{"same", "same", 0},
		{"todo", "TODO", 0},
		{"Todo 2", "Todo 10", -1},
		{"Todo 10", "Todo 2", 1},
	}

	policy := Default()
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_vs_%s", tt.a, tt.b), func(t *testing.T) {
			if got := policy.Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// TestForLocale tests locale parsing and the fallback to neutral collation
func TestForLocale(t *testing.T) {
	german := ForLocale("de")
	if german == nil {
		t.Fatal("Expected a policy for 'de', got nil")
	}
	if got := german.Compare("apfel", "Äpfel"); got != -1 {
		t.Errorf("Expected 'apfel' before 'Äpfel' under German collation, got %d", got)
	}

	// Garbage locale strings fall back rather than fail
	fallback := ForLocale("not a locale!!")
	if fallback == nil {
		t.Fatal("Expected a fallback policy, got nil")
	}
	if got := fallback.Compare("a", "b"); got != -1 {
		t.Errorf("Expected fallback policy to compare, got %d", got)
	}
}

// TestPolicyConcurrentUse tests that a shared policy is goroutine-safe
func TestPolicyConcurrentUse(t *testing.T) {
	policy := Default()
	items := itemsFromTitles("Todo 10", "Todo 2", "apfel", "Äpfel", "banana", "Apple")
	want := titles(policy.Sort(items))

	const goroutines = 10
	const iterations = 50

	var wg sync.WaitGroup
	errs := make(chan error, goroutines)

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				got := titles(policy.Sort(items))
				for j := range want {
					if got[j] != want[j] {
						errs <- fmt.Errorf("position %d: expected %q, got %q", j, want[j], got[j])
						return
					}
				}
				_ = policy.Compare("alpha", "beta")
			}
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
