// Package cli implements the ticklist command tree. Every command is
// one round trip: load configuration, connect a store to the server,
// run a single operation, wait for it to settle, print the result.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dreamware/ticklist/internal/client"
	"github.com/dreamware/ticklist/internal/config"
	"github.com/dreamware/ticklist/internal/order"
)

var (
	configPath string
	serverURL  string
	locale     string

	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "ticklist",
		Short: "ticklist - a todo list that talks to a ticklist server",
		Long: `ticklist manages a single shared todo list over HTTP.

Mutations apply optimistically and reconcile with the server before the
command exits, so what you see is what the server has.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (default: built-in defaults plus TICKLIST_* env)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Server base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "", "Sort locale, e.g. de or en-US (overrides config)")
}

// Execute runs the root command
func Execute(version string) error {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(toggleAllCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(statsCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// loadConfig merges the config file, environment, and command-line
// overrides into the client settings a command should use
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if serverURL != "" {
		cfg.Client.BaseURL = serverURL
	}
	if locale != "" {
		cfg.Client.Locale = locale
	}
	return cfg, nil
}

func buildGateway(cfg config.ClientConfig) *client.Gateway {
	gw := client.NewGateway(cfg.BaseURL)
	gw.Client.Timeout = cfg.Timeout.Std()
	gw.Attempts = cfg.Retry.Attempts
	gw.Backoff = cfg.Retry.Backoff.Std()
	return gw
}

// withStore connects a store, loads the server's list into it, and
// hands it to fn. The store is closed when fn returns. Commands wait
// on each operation they submit, so rollback logging stays off and the
// operation's own error reaches the user instead.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, s *client.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := client.NewStore(
		buildGateway(cfg.Client),
		order.ForLocale(cfg.Client.Locale),
		log.New(io.Discard, "", 0),
	)
	defer store.Close()

	ctx := cmd.Context()
	if err := store.Refresh().Wait(ctx); err != nil {
		return fmt.Errorf("fetch todos: %w", err)
	}
	return fn(ctx, store)
}

// parseID reads a numeric todo id from a command argument
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid todo id %q", arg)
	}
	return id, nil
}

// parseFilter maps the --filter flag onto a view filter
func parseFilter(name string) (client.Filter, error) {
	switch name {
	case "", "all":
		return client.FilterAll, nil
	case "active":
		return client.FilterActive, nil
	case "completed":
		return client.FilterCompleted, nil
	}
	return client.FilterAll, fmt.Errorf("invalid filter %q: want all, active, or completed", name)
}

// printTodos renders one line per item with a checkbox, id, and title
func printTodos(out io.Writer, views []client.TodoView) {
	for _, v := range views {
		box := "[ ]"
		if v.Completed {
			box = "[x]"
		}
		fmt.Fprintf(out, "%s %4d  %s\n", box, v.ID, v.Title)
	}
}
