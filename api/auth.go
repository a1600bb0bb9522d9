package api

import (
	"context"

	"soundest/model"
)

// LoginResult is the successful login response: the bearer token plus
// the user snapshot the session persists.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Message  string `json:"message"`
}

// User converts the response into the session's user snapshot.
func (r LoginResult) User() model.User {
	return model.User{Username: r.Username, Email: r.Email}
}

// Login authenticates an end user.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	payload := map[string]string{"email": email, "password": password}
	var result LoginResult
	err := c.postJSON(ctx, "/api/auth/login", payload, "Invalid email or password", &result)
	return result, err
}

// Register creates an account; the backend mails an OTP to the address.
func (c *Client) Register(ctx context.Context, username, email, password string) (string, error) {
	payload := map[string]string{"username": username, "email": email, "password": password}
	var result struct {
		Message string `json:"message"`
	}
	err := c.postJSON(ctx, "/api/auth/register", payload, "Registration failed", &result)
	return result.Message, err
}

// VerifyEmail confirms the OTP sent during registration.
func (c *Client) VerifyEmail(ctx context.Context, email, otp string) (string, error) {
	payload := map[string]string{"email": email, "otp": otp}
	var result struct {
		Message string `json:"message"`
	}
	err := c.postJSON(ctx, "/api/auth/verifyemail", payload, "Verification failed", &result)
	return result.Message, err
}

// ResendOTP requests a fresh verification code.
func (c *Client) ResendOTP(ctx context.Context, email string) (string, error) {
	payload := map[string]string{"email": email}
	var result struct {
		Message string `json:"message"`
	}
	err := c.postJSON(ctx, "/api/auth/resendOtp", payload, "Could not resend code", &result)
	return result.Message, err
}

// ForgotPassword starts a password reset for the address.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	payload := map[string]string{"email": email}
	var result struct {
		Message string `json:"message"`
	}
	err := c.postJSON(ctx, "/api/auth/forgot-password", payload, "Could not start password reset", &result)
	return result.Message, err
}

// ResetPassword completes a password reset with the emailed token.
func (c *Client) ResetPassword(ctx context.Context, token, password string) (string, error) {
	payload := map[string]string{"token": token, "password": password}
	var result struct {
		Message string `json:"message"`
	}
	err := c.postJSON(ctx, "/api/auth/reset-password", payload, "Could not reset password", &result)
	return result.Message, err
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (model.User, error) {
	var result model.User
	err := c.getJSON(ctx, "/api/auth/profile", "Could not load profile", &result)
	return result, err
}

// DeleteAccount permanently removes the authenticated account.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.delete(ctx, "/api/auth/delete-account", "Could not delete account")
}
