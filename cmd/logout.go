package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"soundest/store"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Every key the login flows write must be enumerated here, or
		// stale state survives into the next Restore.
		err := sess.Logout(
			store.KeyToken,
			store.KeyUser,
			store.KeyIsLoggedIn,
			store.KeyArtist,
		)
		if err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
