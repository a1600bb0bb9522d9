package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the last ten songs you played, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := recent.All()
		if len(entries) == 0 {
			fmt.Println("Nothing played yet.")
			return nil
		}
		for i, entry := range entries {
			fmt.Printf("%3d. %s - %s\n", i+1, entry.Title, entry.Artist)
		}
		return nil
	},
}

var recentClearCmd = &cobra.Command{
	Use:   "remove <song-id>",
	Short: "Remove a song from the history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := recent.Remove(args[0]); err != nil {
			return err
		}
		fmt.Println("Removed.")
		return nil
	},
}

func init() {
	recentCmd.AddCommand(recentClearCmd)
	rootCmd.AddCommand(recentCmd)
}
