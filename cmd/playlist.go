package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"soundest/model"
)

var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "Manage your playlist",
}

var playlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the playlist",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := playlist.All()
		if len(entries) == 0 {
			fmt.Println("Playlist is empty.")
			return nil
		}
		for i, entry := range entries {
			fmt.Printf("%3d. %s - %s\n", i+1, entry.Title, entry.Artist)
		}
		return nil
	},
}

var playlistAddCmd = &cobra.Command{
	Use:   "add <song-id>",
	Short: "Add a song to the playlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		song, err := findSong(args[0])
		if err != nil {
			return err
		}
		if playlist.Contains(song.ID) {
			fmt.Println("Already in playlist.")
			return nil
		}
		if err := playlist.Add(song.Ref()); err != nil {
			return err
		}
		fmt.Printf("Added %s to playlist.\n", song.Title)
		return nil
	},
}

var playlistRemoveCmd = &cobra.Command{
	Use:   "remove <song-id>",
	Short: "Remove a song from the playlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := playlist.Remove(args[0]); err != nil {
			return err
		}
		fmt.Println("Removed.")
		return nil
	},
}

// findSong resolves a song id against the catalogue.
func findSong(id string) (model.Song, error) {
	songs, err := client.AllSongs(context.Background())
	if err != nil {
		return model.Song{}, err
	}
	for _, song := range songs {
		if song.ID == id {
			return song, nil
		}
	}
	return model.Song{}, fmt.Errorf("song %s not found", id)
}

func init() {
	playlistCmd.AddCommand(playlistListCmd)
	playlistCmd.AddCommand(playlistAddCmd)
	playlistCmd.AddCommand(playlistRemoveCmd)
	rootCmd.AddCommand(playlistCmd)
}
