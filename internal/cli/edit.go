package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dreamware/ticklist/internal/client"
	"github.com/dreamware/ticklist/internal/todo"
)

var editCmd = &cobra.Command{
	Use:   "edit ID TITLE...",
	Short: "Rename a todo",
	Long: `Rename a todo. An empty title deletes the todo instead, the same way
clearing a title in an editor removes the entry.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	title := strings.Join(args[1:], " ")

	return withStore(cmd, func(ctx context.Context, s *client.Store) error {
		op := s.Update(id, todo.Patch{Title: &title})
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("edit failed: %w", err)
		}
		if op.Kind() == "delete" {
			fmt.Printf("Deleted %d (empty title)\n", id)
			return nil
		}
		item := op.Item()
		fmt.Printf("Renamed %d: %s\n", item.ID, item.Title)
		return nil
	})
}
