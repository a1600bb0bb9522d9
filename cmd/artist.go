package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"soundest/api"
	"soundest/core/session"
	"soundest/core/validate"
	"soundest/logger"
	"soundest/model"
)

var artistCmd = &cobra.Command{
	Use:   "artist",
	Short: "Artist account commands",
}

var artistLoginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in to an artist account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		if fields := validate.Login(email, password); !fields.Ok() {
			printFieldErrors(fields)
			return fmt.Errorf("validation failed")
		}

		result, err := client.LoginArtist(context.Background(), email, password)
		if err != nil {
			// Pending approval comes back as 403 with an explanation; it
			// is status information, not a credential failure.
			if api.IsStatus(err, 403) {
				apiErr := err.(*api.Error)
				fmt.Println(orDefault(apiErr.Message, "Your account is pending approval."))
				return nil
			}
			return err
		}

		if err := sess.LoginArtist(result.Artist); err != nil {
			if errors.Is(err, session.ErrPendingApproval) {
				fmt.Println("Your account is pending approval.")
				return nil
			}
			return err
		}

		fmt.Printf("Logged in as artist %s\n", result.Artist.Name)
		return nil
	},
}

var artistRegisterCmd = &cobra.Command{
	Use:   "register <name> <email>",
	Short: "Apply for an artist account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, email := args[0], args[1]
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		fields := validate.Fields{}
		validate.Required(fields, "name", name, "Please enter artist name")
		validate.Email(fields, "email", email)
		validate.Password(fields, "password", password)
		if !fields.Ok() {
			printFieldErrors(fields)
			return fmt.Errorf("validation failed")
		}

		msg, err := client.RegisterArtist(context.Background(), name, email, password)
		if err != nil {
			return err
		}
		fmt.Println(orDefault(msg, "Application submitted. You can log in once approved."))
		return nil
	},
}

var artistSongsCmd = &cobra.Command{
	Use:   "songs <artist-id>",
	Short: "List an artist's published songs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		songs, err := client.ArtistSongs(context.Background(), args[0])
		if err != nil {
			return err
		}
		printSongs(songs)
		return nil
	},
}

var uploadTitle string

var artistUploadCmd = &cobra.Command{
	Use:   "upload <audio-file> [cover-image]",
	Short: "Upload a song (requires an approved artist session)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		identity := sess.Current()
		if identity.Kind != model.IdentityArtist || identity.Artist == nil {
			return fmt.Errorf("log in as an approved artist first")
		}

		audioPath := args[0]
		audio, err := os.Open(audioPath)
		if err != nil {
			return fmt.Errorf("failed to open audio file: %w", err)
		}
		defer audio.Close()

		title := uploadTitle
		if title == "" {
			base := filepath.Base(audioPath)
			title = base[:len(base)-len(filepath.Ext(base))]
		}

		up := api.Upload{
			Title:     title,
			Artist:    identity.Artist.Name,
			AudioName: uuid.NewString() + filepath.Ext(audioPath),
			Audio:     audio,
		}

		if len(args) == 2 {
			image, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("failed to open cover image: %w", err)
			}
			defer image.Close()
			up.ImageName = uuid.NewString() + filepath.Ext(args[1])
			up.Image = image
		}

		msg, err := client.UploadSong(context.Background(), up)
		if err != nil {
			return err
		}

		logger.Info("song uploaded", logger.String("title", title))
		fmt.Println(orDefault(msg, "Uploaded."))
		return nil
	},
}

func init() {
	artistUploadCmd.Flags().StringVar(&uploadTitle, "title", "", "song title (defaults to the file name)")
	artistCmd.AddCommand(artistLoginCmd)
	artistCmd.AddCommand(artistRegisterCmd)
	artistCmd.AddCommand(artistSongsCmd)
	artistCmd.AddCommand(artistUploadCmd)
	rootCmd.AddCommand(artistCmd)
}
