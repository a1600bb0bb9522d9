package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"soundest/core/validate"
)

var registerCmd = &cobra.Command{
	Use:   "register <username> <email>",
	Short: "Create an account (an OTP is mailed for verification)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		username, email := args[0], args[1]
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := readPassword("Confirm password: ")
		if err != nil {
			return err
		}

		if fields := validate.Register(username, email, password, confirm); !fields.Ok() {
			printFieldErrors(fields)
			return fmt.Errorf("validation failed")
		}

		msg, err := client.Register(context.Background(), username, email, password)
		if err != nil {
			return err
		}
		if err := sess.SetPendingVerification(email); err != nil {
			return err
		}

		fmt.Println(orDefault(msg, "Registered. Check your email for the verification code."))
		fmt.Println("Run `soundest verify <otp>` to finish.")
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <otp>",
	Short: "Confirm the emailed verification code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, ok := sess.PendingVerification()
		if !ok {
			return fmt.Errorf("no registration awaiting verification; run `soundest register` first")
		}

		msg, err := client.VerifyEmail(context.Background(), email, args[0])
		if err != nil {
			return err
		}
		if err := sess.ClearPendingVerification(); err != nil {
			return err
		}

		fmt.Println(orDefault(msg, "Email verified. You can log in now."))
		return nil
	},
}

var resendOTPCmd = &cobra.Command{
	Use:   "resend-otp",
	Short: "Resend the verification code",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, ok := sess.PendingVerification()
		if !ok {
			return fmt.Errorf("no registration awaiting verification")
		}

		msg, err := client.ResendOTP(context.Background(), email)
		if err != nil {
			return err
		}
		fmt.Println(orDefault(msg, "A fresh code is on its way."))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(resendOTPCmd)
}
