package storage

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dreamware/ticklist/internal/todo"
)

// TestMemoryList tests the in-memory list store implementation
func TestMemoryList(t *testing.T) {
	t.Run("new store is empty", func(t *testing.T) {
		store := NewMemoryList()

		items := store.List()
		if len(items) != 0 {
			t.Errorf("Expected empty store, got %d items", len(items))
		}

		if store.Len() != 0 {
			t.Errorf("Expected Len 0, got %d", store.Len())
		}

		_, err := store.Get(1)
		if !errors.Is(err, todo.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("create and get", func(t *testing.T) {
		store := NewMemoryList()

		created, err := store.Create("buy milk")
		if err != nil {
			t.Fatalf("Failed to create item: %v", err)
		}
		if created.ID != 1 {
			t.Errorf("Expected first id 1, got %d", created.ID)
		}
		if created.Title != "buy milk" {
			t.Errorf("Expected title 'buy milk', got %q", created.Title)
		}
		if created.Completed {
			t.Error("Expected new item to be incomplete")
		}

		got, err := store.Get(created.ID)
		if err != nil {
			t.Fatalf("Failed to get item: %v", err)
		}
		if got != created {
			t.Errorf("Expected %+v, got %+v", created, got)
		}
	})

	t.Run("create trims the title", func(t *testing.T) {
		store := NewMemoryList()

		created, err := store.Create("  spaced out  ")
		if err != nil {
			t.Fatalf("Failed to create item: %v", err)
		}
		if created.Title != "spaced out" {
			t.Errorf("Expected trimmed title, got %q", created.Title)
		}
	})

	t.Run("create rejects invalid titles", func(t *testing.T) {
		store := NewMemoryList()

		for _, title := range []string{"", "   ", "\t\n"} {
			_, err := store.Create(title)
			var ve *todo.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("Expected validation error for %q, got %v", title, err)
			}
		}

		// Nothing should have been stored
		if store.Len() != 0 {
			t.Errorf("Expected empty store after rejections, got %d items", store.Len())
		}
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		store := NewMemoryList()

		titles := []string{"zebra", "apple", "mango"}
		for _, title := range titles {
			if _, err := store.Create(title); err != nil {
				t.Fatalf("Failed to create %q: %v", title, err)
			}
		}

		items := store.List()
		if len(items) != len(titles) {
			t.Fatalf("Expected %d items, got %d", len(titles), len(items))
		}
		for i, title := range titles {
			if items[i].Title != title {
				t.Errorf("Position %d: expected %q, got %q", i, title, items[i].Title)
			}
		}
	})

	t.Run("list returns a copy", func(t *testing.T) {
		store := NewMemoryList()
		if _, err := store.Create("original"); err != nil {
			t.Fatalf("Failed to create item: %v", err)
		}

		items := store.List()
		items[0].Title = "mutated"

		again := store.List()
		if again[0].Title != "original" {
			t.Errorf("Store was mutated through a returned slice: %q", again[0].Title)
		}
	})

	t.Run("update title", func(t *testing.T) {
		store := NewMemoryList()
		created, _ := store.Create("draft")

		title := "  final  "
		updated, err := store.Update(created.ID, todo.Patch{Title: &title})
		if err != nil {
			t.Fatalf("Failed to update item: %v", err)
		}
		if updated.Title != "final" {
			t.Errorf("Expected trimmed 'final', got %q", updated.Title)
		}
		if updated.Completed != created.Completed {
			t.Error("Update of title should not change completed")
		}
	})

	t.Run("update completed", func(t *testing.T) {
		store := NewMemoryList()
		created, _ := store.Create("task")

		completed := true
		updated, err := store.Update(created.ID, todo.Patch{Completed: &completed})
		if err != nil {
			t.Fatalf("Failed to update item: %v", err)
		}
		if !updated.Completed {
			t.Error("Expected item to be completed")
		}
		if updated.Title != "task" {
			t.Errorf("Update of completed should not change title, got %q", updated.Title)
		}
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		store := NewMemoryList()
		created, _ := store.Create("task")

		updated, err := store.Update(created.ID, todo.Patch{})
		if err != nil {
			t.Fatalf("Failed to apply empty patch: %v", err)
		}
		if updated != created {
			t.Errorf("Expected %+v unchanged, got %+v", created, updated)
		}
	})

	t.Run("update missing id never inserts", func(t *testing.T) {
		store := NewMemoryList()

		title := "ghost"
		_, err := store.Update(42, todo.Patch{Title: &title})
		if !errors.Is(err, todo.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		if store.Len() != 0 {
			t.Errorf("Expected update to never insert, got %d items", store.Len())
		}
	})

	t.Run("update rejects empty title", func(t *testing.T) {
		store := NewMemoryList()
		created, _ := store.Create("task")

		empty := "   "
		_, err := store.Update(created.ID, todo.Patch{Title: &empty})
		var ve *todo.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("Expected validation error, got %v", err)
		}

		// Item should be untouched
		got, _ := store.Get(created.ID)
		if got.Title != "task" {
			t.Errorf("Expected title unchanged, got %q", got.Title)
		}
	})

	t.Run("toggle twice is identity", func(t *testing.T) {
		store := NewMemoryList()
		created, _ := store.Create("task")

		once, err := store.Toggle(created.ID)
		if err != nil {
			t.Fatalf("Failed to toggle item: %v", err)
		}
		if !once.Completed {
			t.Error("Expected first toggle to complete the item")
		}

		twice, err := store.Toggle(created.ID)
		if err != nil {
			t.Fatalf("Failed to toggle item: %v", err)
		}
		if twice != created {
			t.Errorf("Expected double toggle to restore %+v, got %+v", created, twice)
		}
	})

	t.Run("toggle missing id", func(t *testing.T) {
		store := NewMemoryList()

		_, err := store.Toggle(7)
		if !errors.Is(err, todo.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete removes the item", func(t *testing.T) {
		store := NewMemoryList()
		first, _ := store.Create("first")
		second, _ := store.Create("second")
		third, _ := store.Create("third")

		if err := store.Delete(second.ID); err != nil {
			t.Fatalf("Failed to delete item: %v", err)
		}

		_, err := store.Get(second.ID)
		if !errors.Is(err, todo.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}

		// Remaining items keep their order and stay reachable by id
		items := store.List()
		if len(items) != 2 || items[0].ID != first.ID || items[1].ID != third.ID {
			t.Errorf("Expected [%d %d], got %+v", first.ID, third.ID, items)
		}
		if _, err := store.Get(third.ID); err != nil {
			t.Errorf("Item after the deleted one became unreachable: %v", err)
		}
	})

	t.Run("delete missing id errors", func(t *testing.T) {
		store := NewMemoryList()

		err := store.Delete(99)
		if !errors.Is(err, todo.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ids are never reused", func(t *testing.T) {
		store := NewMemoryList()

		first, _ := store.Create("first")
		if err := store.Delete(first.ID); err != nil {
			t.Fatalf("Failed to delete item: %v", err)
		}

		second, _ := store.Create("second")
		if second.ID <= first.ID {
			t.Errorf("Expected id above %d after delete, got %d", first.ID, second.ID)
		}
	})
}

// TestMemoryListConcurrency tests thread safety under concurrent access
func TestMemoryListConcurrency(t *testing.T) {
	t.Run("concurrent creates get unique ids", func(t *testing.T) {
		store := NewMemoryList()

		numGoroutines := 50
		numCreates := 20

		var wg sync.WaitGroup
		wg.Add(numGoroutines)

		ids := make(chan int64, numGoroutines*numCreates)
		for i := 0; i < numGoroutines; i++ {
			go func(id int) {
				defer wg.Done()
				for j := 0; j < numCreates; j++ {
					item, err := store.Create(fmt.Sprintf("goroutine-%d-item-%d", id, j))
					if err != nil {
						t.Errorf("Failed to create: %v", err)
						return
					}
					ids <- item.ID
				}
			}(i)
		}

		wg.Wait()
		close(ids)

		seen := make(map[int64]bool)
		for id := range ids {
			if seen[id] {
				t.Errorf("Id %d was issued twice", id)
			}
			seen[id] = true
		}

		expected := numGoroutines * numCreates
		if len(seen) != expected {
			t.Errorf("Expected %d unique ids, got %d", expected, len(seen))
		}
		if store.Len() != expected {
			t.Errorf("Expected %d items, got %d", expected, store.Len())
		}
	})

	t.Run("concurrent mixed operations", func(t *testing.T) {
		store := NewMemoryList()

		// Pre-populate so readers and togglers have targets
		numItems := 50
		created := make([]int64, numItems)
		for i := 0; i < numItems; i++ {
			item, err := store.Create(fmt.Sprintf("item-%d", i))
			if err != nil {
				t.Fatalf("Failed to pre-populate: %v", err)
			}
			created[i] = item.ID
		}

		var wg sync.WaitGroup
		numGoroutines := 20
		wg.Add(numGoroutines * 3)

		// Togglers
		for i := 0; i < numGoroutines; i++ {
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					store.Toggle(created[j%numItems])
				}
			}()
		}

		// Readers
		for i := 0; i < numGoroutines; i++ {
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					store.Get(created[j%numItems])
					store.List()
				}
			}()
		}

		// Updaters
		for i := 0; i < numGoroutines; i++ {
			go func(id int) {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					title := fmt.Sprintf("updated-%d-%d", id, j)
					store.Update(created[j%numItems], todo.Patch{Title: &title})
				}
			}(i)
		}

		wg.Wait()

		// Every pre-populated item must still exist exactly once
		if store.Len() != numItems {
			t.Errorf("Expected %d items after mixed ops, got %d", numItems, store.Len())
		}
		for _, id := range created {
			if _, err := store.Get(id); err != nil {
				t.Errorf("Item %d disappeared: %v", id, err)
			}
		}
	})
}

// TestMemoryListStats tests the statistics counters
func TestMemoryListStats(t *testing.T) {
	t.Run("counts by completion state", func(t *testing.T) {
		store := NewMemoryList()

		for i := 0; i < 5; i++ {
			if _, err := store.Create(fmt.Sprintf("item-%d", i)); err != nil {
				t.Fatalf("Failed to create: %v", err)
			}
		}
		store.Toggle(1)
		store.Toggle(2)

		stats := store.Stats()
		if stats.Total != 5 {
			t.Errorf("Expected total 5, got %d", stats.Total)
		}
		if stats.Active != 3 {
			t.Errorf("Expected active 3, got %d", stats.Active)
		}
		if stats.Completed != 2 {
			t.Errorf("Expected completed 2, got %d", stats.Completed)
		}
	})

	t.Run("operation counters", func(t *testing.T) {
		store := NewMemoryList()

		store.Create("a")
		store.Create("b")
		store.Toggle(1)
		completed := true
		store.Update(2, todo.Patch{Completed: &completed})
		store.Delete(1)
		store.ToggleAll(false)
		store.DeleteCompleted()

		ops := store.OpCounts()
		if ops.Creates != 2 {
			t.Errorf("Expected 2 creates, got %d", ops.Creates)
		}
		if ops.Toggles != 1 {
			t.Errorf("Expected 1 toggle, got %d", ops.Toggles)
		}
		if ops.Updates != 1 {
			t.Errorf("Expected 1 update, got %d", ops.Updates)
		}
		if ops.Deletes != 1 {
			t.Errorf("Expected 1 delete, got %d", ops.Deletes)
		}
		if ops.Bulk != 2 {
			t.Errorf("Expected 2 bulk ops, got %d", ops.Bulk)
		}
	})
}

// TestListStoreInterface verifies MemoryList satisfies ListStore
func TestListStoreInterface(t *testing.T) {
	var store ListStore = NewMemoryList()

	item, err := store.Create("through the interface")
	if err != nil {
		t.Fatalf("Failed to create via interface: %v", err)
	}
	if _, err := store.Get(item.ID); err != nil {
		t.Errorf("Failed to get via interface: %v", err)
	}
}
