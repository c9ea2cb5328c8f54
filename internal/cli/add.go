package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dreamware/ticklist/internal/client"
)

var addCmd = &cobra.Command{
	Use:   "add TITLE...",
	Short: "Add a todo",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")

	return withStore(cmd, func(ctx context.Context, s *client.Store) error {
		op := s.Create(title)
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("add failed: %w", err)
		}
		item := op.Item()
		fmt.Printf("Added %d: %s\n", item.ID, item.Title)
		return nil
	})
}
