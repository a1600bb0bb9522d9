package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"soundest/model"
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search the catalogue by title or artist",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		token := searchRes.Begin()
		songs, err := client.Search(context.Background(), query)
		if err != nil {
			return err
		}
		if !searchRes.Apply(token, songs) {
			// A later search superseded this one; nothing to show.
			return nil
		}

		printSongs(searchRes.Songs())
		return nil
	},
}

func printSongs(songs []model.Song) {
	if len(songs) == 0 {
		fmt.Println("No songs found.")
		return
	}
	for i, song := range songs {
		fmt.Printf("%3d. %s - %s\n", i+1, song.Title, song.Artist)
	}
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
