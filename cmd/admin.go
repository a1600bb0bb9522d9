package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"soundest/store"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Back-office commands (requires admin login)",
}

var adminLoginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in to the back office",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		token, err := client.AdminLogin(context.Background(), args[0], password)
		if err != nil {
			return err
		}
		if token == "" {
			return fmt.Errorf("admin login response carried no token")
		}
		if err := storage.Set(store.KeyToken, token); err != nil {
			return err
		}

		fmt.Println("Admin session active.")
		return nil
	},
}

var adminDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show back-office counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		dash, err := client.AdminDashboard(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("users: %d\nartists: %d (pending: %d)\ncontacts: %d\n",
			dash.Users, dash.Artists, dash.Pending, dash.Contacts)
		return nil
	},
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered users",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := client.AdminUsers(context.Background())
		if err != nil {
			return err
		}
		for _, user := range users {
			fmt.Printf("%s  %s <%s> verified=%t\n", user.ID, user.Username, user.Email, user.Verified)
		}
		return nil
	},
}

var adminDeleteUserCmd = &cobra.Command{
	Use:   "delete-user <id>",
	Short: "Delete a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.AdminDeleteUser(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Println("User deleted.")
		return nil
	},
}

var adminArtistsCmd = &cobra.Command{
	Use:   "artists",
	Short: "List artist accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		artists, err := client.AdminArtists(context.Background())
		if err != nil {
			return err
		}
		for _, artist := range artists {
			status := "approved"
			if !artist.Approved {
				status = "pending"
			}
			fmt.Printf("%s  %s <%s> %s\n", artist.ID, artist.Name, artist.Email, status)
		}
		return nil
	},
}

var adminApproveCmd = &cobra.Command{
	Use:   "approve <artist-id>",
	Short: "Approve a pending artist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.AdminApproveArtist(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Println("Artist approved.")
		return nil
	},
}

var adminDeleteArtistCmd = &cobra.Command{
	Use:   "delete-artist <id>",
	Short: "Delete an artist account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.AdminDeleteArtist(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Println("Artist deleted.")
		return nil
	},
}

var adminContactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List contact-form submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		contacts, err := client.AdminContacts(context.Background())
		if err != nil {
			return err
		}
		for _, contact := range contacts {
			fmt.Printf("%s  %s <%s>: %s\n", contact.ID, contact.Name, contact.Email, contact.Message)
		}
		return nil
	},
}

var adminDeleteContactCmd = &cobra.Command{
	Use:   "delete-contact <id>",
	Short: "Delete a contact submission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.AdminDeleteContact(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Println("Contact deleted.")
		return nil
	},
}

func init() {
	adminCmd.AddCommand(adminLoginCmd)
	adminCmd.AddCommand(adminDashboardCmd)
	adminCmd.AddCommand(adminUsersCmd)
	adminCmd.AddCommand(adminDeleteUserCmd)
	adminCmd.AddCommand(adminArtistsCmd)
	adminCmd.AddCommand(adminApproveCmd)
	adminCmd.AddCommand(adminDeleteArtistCmd)
	adminCmd.AddCommand(adminContactsCmd)
	adminCmd.AddCommand(adminDeleteContactCmd)
	rootCmd.AddCommand(adminCmd)
}
