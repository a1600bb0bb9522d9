package api

import "context"

// SubmitContact sends a contact-form message.
func (c *Client) SubmitContact(ctx context.Context, name, email, message string) (string, error) {
	payload := map[string]string{"name": name, "email": email, "message": message}
	var result struct {
		Message string `json:"message"`
	}
	err := c.postJSON(ctx, "/api/contact/contact", payload, "Could not send message", &result)
	return result.Message, err
}
