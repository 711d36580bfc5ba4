package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mmcdole/streamlist/internal/domain"
	"github.com/mmcdole/streamlist/internal/service"
	"github.com/mmcdole/streamlist/internal/store"
	"github.com/spf13/cobra"
)

// storeOpener opens the watchlist store for one command run
type storeOpener func() (*store.WatchlistStore, error)

// NewAddCmd creates the add command with explicit dependencies.
func NewAddCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a movie or show to the watchlist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := open()
			if err != nil {
				return err
			}
			defer st.Close()

			svc := service.NewWatchlistService(st, slog.Default())
			item, ok := svc.AddItem(strings.Join(args, " "))
			if !ok {
				return fmt.Errorf("title cannot be blank")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s)\n", item.Text, item.ID)
			return nil
		},
	}
}

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(open storeOpener) *cobra.Command {
	var filterFlag string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print the watchlist",
		Long: `Print the watchlist, one item per line.

Without --filter the filter last chosen in the TUI is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := open()
			if err != nil {
				return err
			}
			defer st.Close()

			svc := service.NewWatchlistService(st, slog.Default())
			filter := svc.Filter()
			if filterFlag != "" {
				f, ok := domain.ParseFilter(filterFlag)
				if !ok {
					return fmt.Errorf("invalid filter %q (want all, active or completed)", filterFlag)
				}
				filter = f
			}

			printItems(cmd.OutOrStdout(), svc.Items(), filter)
			return nil
		},
	}
	listCmd.Flags().StringVarP(&filterFlag, "filter", "f", "", "all, active or completed")
	return listCmd
}

// printItems writes one "[x] text" line per item matching filter
func printItems(w io.Writer, items []domain.WatchlistItem, filter domain.Filter) {
	if len(items) == 0 {
		fmt.Fprintln(w, "Your list is empty.")
		return
	}

	shown := 0
	for _, item := range items {
		if !filter.Matches(item) {
			continue
		}
		mark := "[ ]"
		if item.Completed {
			mark = "[x]"
		}
		fmt.Fprintf(w, "%s %s\n", mark, item.Text)
		shown++
	}
	if shown == 0 {
		fmt.Fprintf(w, "No %s items.\n", strings.ToLower(filter.Label()))
	}
}

// NewResetCmd creates the reset command with explicit dependencies.
func NewResetCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored watchlist and filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := open()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Reset(); err != nil {
				return fmt.Errorf("failed to reset watchlist: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Watchlist cleared.")
			return nil
		},
	}
}

// NewVersionCmd creates the version command.
func NewVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "streamlist version %s\n", version)
			return nil
		},
	}
}
