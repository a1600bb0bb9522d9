package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"soundest/core/validate"
)

var contactCmd = &cobra.Command{
	Use:   "contact <name> <email> <message...>",
	Short: "Send a message to the Soundest team",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, email := args[0], args[1]
		message := strings.Join(args[2:], " ")

		if fields := validate.Contact(name, email, message); !fields.Ok() {
			printFieldErrors(fields)
			return fmt.Errorf("validation failed")
		}

		msg, err := client.SubmitContact(context.Background(), name, email, message)
		if err != nil {
			return err
		}
		fmt.Println(orDefault(msg, "Message sent."))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(contactCmd)
}
