package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dreamware/ticklist/internal/client"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos",
	RunE:  runList,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show item counts and server operation counters",
	RunE:  runStats,
}

func init() {
	listCmd.Flags().String("filter", "all", "Which todos to show: all, active, or completed")
}

func runList(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("filter")
	filter, err := parseFilter(name)
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, s *client.Store) error {
		views := s.View(filter)
		if len(views) == 0 {
			fmt.Println("Nothing to do.")
			return nil
		}
		printTodos(cmd.OutOrStdout(), views)

		stats := s.Counts()
		fmt.Printf("\n%d total, %d active, %d completed\n", stats.Total, stats.Active, stats.Completed)
		return nil
	})
}

// runStats asks the server directly: the counters live there, and the
// counts should be the server's own, not the local cache's
func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	resp, err := buildGateway(cfg.Client).Stats(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Items:      %d total, %d active, %d completed\n", resp.Total, resp.Active, resp.Completed)
	fmt.Printf("Operations: %d creates, %d updates, %d toggles, %d deletes, %d bulk\n",
		resp.Ops.Creates, resp.Ops.Updates, resp.Ops.Toggles, resp.Ops.Deletes, resp.Ops.Bulk)
	return nil
}
