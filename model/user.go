package model

// User represents an authenticated end user.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Artist represents an authenticated artist account. Approved gates the
// artist-only destinations; an unapproved artist can log in but gets a
// pending-approval response instead of a session.
type Artist struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Approved bool   `json:"isartist"`
}

// IdentityKind discriminates the session identity variant.
type IdentityKind string

const (
	IdentityNone   IdentityKind = "none"
	IdentityUser   IdentityKind = "user"
	IdentityArtist IdentityKind = "artist"
	IdentityAdmin  IdentityKind = "admin"
)

// Identity is the tagged union of who is logged in. Exactly one variant
// holds at a time: Kind selects it, and only the matching pointer is
// non-nil.
type Identity struct {
	Kind   IdentityKind
	User   *User
	Artist *Artist
}

// Nobody is the signed-out identity.
func Nobody() Identity {
	return Identity{Kind: IdentityNone}
}

// UserIdentity wraps a User as an Identity.
func UserIdentity(u User) Identity {
	return Identity{Kind: IdentityUser, User: &u}
}

// ArtistIdentity wraps an Artist as an Identity.
func ArtistIdentity(a Artist) Identity {
	return Identity{Kind: IdentityArtist, Artist: &a}
}

// IsNone reports whether nobody is logged in.
func (id Identity) IsNone() bool {
	return id.Kind == IdentityNone || id.Kind == ""
}

// DisplayName returns a printable name for the identity.
func (id Identity) DisplayName() string {
	switch id.Kind {
	case IdentityUser:
		return id.User.Username
	case IdentityArtist:
		return id.Artist.Name
	case IdentityAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}
