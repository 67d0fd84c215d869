package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage search history",
	Long:  `View and manage the recent-search history (the last 10 unique queries).`,
	RunE:  runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent searches",
	RunE:  runHistoryList,
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove one history entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryRemove,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all search history",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyRemoveCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	items, err := historyService.List(cmd.Context())
	if err != nil {
		return err
	}

	if len(items) == 0 {
		cmd.Println("No search history.")
		return nil
	}

	for i := range items {
		cmd.Printf("  %s  %-30q %3d results  (%s)\n",
			items[i].Timestamp.Format("2006-01-02 15:04"),
			items[i].Query,
			items[i].ResultCount,
			items[i].ID,
		)
	}
	return nil
}

func runHistoryRemove(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	if err := historyService.Remove(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Println("Removed.")
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	if err := historyService.Clear(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("History cleared.")
	return nil
}
