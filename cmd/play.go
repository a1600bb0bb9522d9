package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"soundest/api"
	"soundest/core/player"
	"soundest/logger"
	"soundest/model"
	"soundest/store"
)

var (
	playCategory string
	playFromList bool
	playStart    int
)

var playCmd = &cobra.Command{
	Use:   "play [song-id]",
	Short: "Play music with interactive queue navigation",
	Long: `Play a single song by id, a whole category, or your playlist.

While playing:
  n          next song
  p          previous song
  space      pause / resume
  seek <s>   jump to position (seconds)
  vol <0-99> set volume
  q          quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		songs, start, err := resolvePlaySource(args)
		if err != nil {
			return err
		}
		if len(songs) == 0 {
			fmt.Println("Nothing to play.")
			return nil
		}

		queue := player.NewQueue()
		ctrl := player.NewController(queue, nil)
		dev := player.NewSpeaker(ctrl.HandleEvent)
		ctrl.SetDevice(dev)
		defer dev.Close()

		// Every song that starts goes into the recently-played history.
		ctrl.OnSongStart(func(song model.Song) {
			if song.ID == "" {
				return
			}
			if err := recent.Add(song.Ref()); err != nil {
				logger.Warn("failed to record recent song", logger.ErrorField(err))
			}
		})

		// Another process writing the same profile (second client on the
		// same account) gets folded back in rather than silently raced.
		if fileStore, ok := storage.(*store.File); ok {
			err := fileStore.Watch(func() {
				playlist.Rehydrate()
				recent.Rehydrate()
			})
			if err != nil {
				logger.Warn("profile watch unavailable", logger.ErrorField(err))
			}
		}

		ctrl.SetVolume(float64(cfg.DefaultVolume) / 100)
		ctrl.PlayList(songs, start)

		return interactLoop(ctrl)
	},
}

// resolvePlaySource picks the queue contents from the command arguments.
func resolvePlaySource(args []string) ([]model.Song, int, error) {
	ctx := context.Background()

	switch {
	case len(args) == 1:
		song, err := findSong(args[0])
		if err != nil {
			return nil, 0, err
		}
		return []model.Song{song}, 0, nil
	case playFromList:
		entries := playlist.All()
		songs := make([]model.Song, 0, len(entries))
		for _, entry := range entries {
			songs = append(songs, entry.Song())
		}
		return songs, playStart, nil
	case playCategory != "":
		songs, err := client.Songs(ctx, api.Category(playCategory))
		if err != nil {
			return nil, 0, err
		}
		return songs, playStart, nil
	default:
		songs, err := client.Songs(ctx, api.CategoryTrending)
		if err != nil {
			return nil, 0, err
		}
		return songs, playStart, nil
	}
}

// interactLoop reads navigation commands until quit or EOF.
func interactLoop(ctrl *player.Controller) error {
	printNowPlaying(ctrl)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		cmd := ""
		if len(fields) > 0 {
			cmd = fields[0]
		}

		switch cmd {
		case "q", "quit":
			return nil
		case "n", "next":
			ctrl.Next()
			printNowPlaying(ctrl)
		case "p", "prev":
			ctrl.Previous()
			printNowPlaying(ctrl)
		case "", "space", "pause":
			ctrl.TogglePause()
			fmt.Println(ctrl.State())
		case "seek":
			if len(fields) < 2 {
				fmt.Println("usage: seek <seconds>")
				break
			}
			seconds, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				fmt.Println("usage: seek <seconds>")
				break
			}
			ctrl.Seek(seconds)
		case "vol":
			if len(fields) < 2 {
				fmt.Println("usage: vol <0-100>")
				break
			}
			level, err := strconv.Atoi(fields[1])
			if err != nil || level < 0 || level > 100 {
				fmt.Println("usage: vol <0-100>")
				break
			}
			ctrl.SetVolume(float64(level) / 100)
		case "s", "status":
			printNowPlaying(ctrl)
		default:
			fmt.Println("commands: n p space seek vol s q")
		}
		fmt.Print("> ")
	}
	return scanner.Err()
}

func printNowPlaying(ctrl *player.Controller) {
	song, ok := ctrl.Current()
	if !ok {
		fmt.Println("No song playing.")
		return
	}
	position, duration := ctrl.Progress()
	fmt.Printf("[%s] %s - %s (%s / %s)\n",
		ctrl.State(), song.Title, song.Artist,
		formatTime(position), formatTime(duration))
}

// formatTime renders seconds as m:ss, or --:-- when unknown.
func formatTime(seconds float64) string {
	if seconds <= 0 {
		return "--:--"
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func init() {
	playCmd.Flags().StringVar(&playCategory, "category", "", "play a category (e.g. trend-songs, love-songs)")
	playCmd.Flags().BoolVar(&playFromList, "playlist", false, "play your playlist")
	playCmd.Flags().IntVar(&playStart, "start", 0, "index to start from")
	rootCmd.AddCommand(playCmd)
}
