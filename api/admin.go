package api

import "context"

// AdminLogin authenticates the back-office account and returns its token.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{"email": email, "password": password}
	var result struct {
		Token   string `json:"token"`
		Message string `json:"message"`
	}
	err := c.postJSON(ctx, "/api/admin/adminlogin", payload, "Admin login failed", &result)
	return result.Token, err
}

// AdminUser is a registered end user as the back-office sees it.
type AdminUser struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

// AdminArtist is an artist account as the back-office sees it.
type AdminArtist struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Approved bool   `json:"isartist"`
}

// ContactMessage is a contact-form submission.
type ContactMessage struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// AdminUsers lists every registered user.
func (c *Client) AdminUsers(ctx context.Context) ([]AdminUser, error) {
	var users []AdminUser
	err := c.getJSON(ctx, "/api/admin/users", "Could not load users", &users)
	return users, err
}

// AdminDeleteUser removes a user account.
func (c *Client) AdminDeleteUser(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/admin/users/"+id, "Could not delete user")
}

// AdminArtists lists every artist account.
func (c *Client) AdminArtists(ctx context.Context) ([]AdminArtist, error) {
	var artists []AdminArtist
	err := c.getJSON(ctx, "/api/admin/artists", "Could not load artists", &artists)
	return artists, err
}

// AdminApproveArtist flips an artist to approved, unlocking artist
// destinations for that account.
func (c *Client) AdminApproveArtist(ctx context.Context, id string) error {
	payload := map[string]bool{"isartist": true}
	return c.patchJSON(ctx, "/api/admin/artists/"+id, payload, "Could not approve artist", nil)
}

// AdminDeleteArtist removes an artist account.
func (c *Client) AdminDeleteArtist(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/admin/artists/"+id, "Could not delete artist")
}

// AdminContacts lists contact-form submissions.
func (c *Client) AdminContacts(ctx context.Context) ([]ContactMessage, error) {
	var contacts []ContactMessage
	err := c.getJSON(ctx, "/api/admin/contacts", "Could not load contacts", &contacts)
	return contacts, err
}

// AdminDeleteContact removes a contact submission.
func (c *Client) AdminDeleteContact(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/admin/contacts/"+id, "Could not delete contact")
}

// Dashboard aggregates the back-office landing counts.
type Dashboard struct {
	Users    int
	Artists  int
	Pending  int
	Contacts int
}

// AdminDashboard composes the dashboard counts from the three listings.
func (c *Client) AdminDashboard(ctx context.Context) (Dashboard, error) {
	var dash Dashboard
	users, err := c.AdminUsers(ctx)
	if err != nil {
		return dash, err
	}
	artists, err := c.AdminArtists(ctx)
	if err != nil {
		return dash, err
	}
	contacts, err := c.AdminContacts(ctx)
	if err != nil {
		return dash, err
	}
	dash.Users = len(users)
	dash.Artists = len(artists)
	for _, a := range artists {
		if !a.Approved {
			dash.Pending++
		}
	}
	dash.Contacts = len(contacts)
	return dash, nil
}
