package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"soundest/model"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		identity := sess.Current()
		if identity.IsNone() {
			fmt.Println("Not logged in.")
		} else {
			fmt.Printf("Logged in as %s (%s)\n", identity.DisplayName(), identity.Kind)
		}
		fmt.Printf("playlist: %d songs, recent: %d songs\n", playlist.Len(), recent.Len())
		if email, ok := sess.PendingVerification(); ok {
			fmt.Printf("pending email verification: %s\n", email)
		}
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Fetch your profile from the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sess.Current().Kind != model.IdentityUser {
			return fmt.Errorf("log in first")
		}
		user, err := client.Profile(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s>\n", user.Username, user.Email)
		return nil
	},
}

var deleteAccountCmd = &cobra.Command{
	Use:   "delete-account",
	Short: "Permanently delete your account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sess.Current().Kind != model.IdentityUser {
			return fmt.Errorf("log in first")
		}
		fmt.Print("Type the word DELETE to confirm: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "DELETE" {
			fmt.Println("Aborted.")
			return nil
		}
		if err := client.DeleteAccount(context.Background()); err != nil {
			return err
		}
		return logoutCmd.RunE(cmd, nil)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(deleteAccountCmd)
}
