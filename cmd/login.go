package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"soundest/core/validate"
	"soundest/logger"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in to Soundest",
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

		result, err := client.Login(context.Background(), email, password)
		if err != nil {
			return err
		}
		if err := sess.Login(result.User(), result.Token); err != nil {
			return err
		}

		fmt.Printf("Logged in as %s\n", result.Username)
		return nil
	},
}

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password <email>",
	Short: "Request a password reset email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := validate.Fields{}
		validate.Email(fields, "email", args[0])
		if !fields.Ok() {
			printFieldErrors(fields)
			return fmt.Errorf("validation failed")
		}

		msg, err := client.ForgotPassword(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(orDefault(msg, "Check your inbox for reset instructions."))
		return nil
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password <token>",
	Short: "Set a new password using the emailed reset token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword("New password: ")
		if err != nil {
			return err
		}
		confirm, err := readPassword("Confirm password: ")
		if err != nil {
			return err
		}

		fields := validate.Fields{}
		validate.Password(fields, "password", password)
		validate.Confirm(fields, "confirm", password, confirm)
		if !fields.Ok() {
			printFieldErrors(fields)
			return fmt.Errorf("validation failed")
		}

		msg, err := client.ResetPassword(context.Background(), args[0], password)
		if err != nil {
			return err
		}
		fmt.Println(orDefault(msg, "Password updated."))
		return nil
	},
}

// readPassword prompts without echo when stdin is a terminal, falling
// back to a plain line read otherwise (tests, pipes).
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func printFieldErrors(fields validate.Fields) {
	for field, msg := range fields {
		fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
	}
	logger.Debug("form validation failed", logger.Int("fields", len(fields)))
}

func orDefault(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(forgotPasswordCmd)
	rootCmd.AddCommand(resetPasswordCmd)
}
