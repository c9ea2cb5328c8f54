package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dreamware/ticklist/internal/client"
)

var doneCmd = &cobra.Command{
	Use:   "done ID",
	Short: "Toggle a todo between done and not done",
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

var toggleAllCmd = &cobra.Command{
	Use:   "toggle-all",
	Short: "Toggle every todo at once",
	Long: `Toggle every todo at once.

Without --completed the target is derived from the list: if anything is
still active everything becomes done, otherwise everything becomes
active. With --completed the whole list is forced to that state.`,
	RunE: runToggleAll,
}

func init() {
	toggleAllCmd.Flags().Bool("completed", false, "Force every todo to this state instead of deriving it")
}

func runDone(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, s *client.Store) error {
		op := s.Toggle(id)
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("toggle failed: %w", err)
		}
		item := op.Item()
		state := "not done"
		if item.Completed {
			state = "done"
		}
		fmt.Printf("Marked %d %s: %s\n", item.ID, state, item.Title)
		return nil
	})
}

func runToggleAll(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, s *client.Store) error {
		var op *client.Op
		if cmd.Flags().Changed("completed") {
			target, _ := cmd.Flags().GetBool("completed")
			op = s.ToggleAll(target)
		} else {
			op = s.ToggleAllAuto()
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("toggle-all failed: %w", err)
		}

		printTodos(cmd.OutOrStdout(), s.View(client.FilterAll))
		return nil
	})
}
