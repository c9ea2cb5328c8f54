package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dreamware/ticklist/internal/client"
)

var rmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every completed todo",
	RunE:  runClear,
}

func runRm(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, s *client.Store) error {
		op := s.Delete(id)
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("delete failed: %w", err)
		}
		fmt.Printf("Deleted %d\n", id)
		return nil
	})
}

func runClear(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, s *client.Store) error {
		before := s.Counts().Completed
		if before == 0 {
			fmt.Println("Nothing completed to clear.")
			return nil
		}

		if err := s.DeleteCompleted().Wait(ctx); err != nil {
			return fmt.Errorf("clear failed: %w", err)
		}
		fmt.Printf("Cleared %d completed todo(s)\n", before)
		return nil
	})
}
