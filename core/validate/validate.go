// Package validate implements the local pre-submission checks the forms
// run before any network call. A non-empty result blocks submission.
package validate

import "strings"

// Fields maps a field name to its error message.
type Fields map[string]string

// Ok reports whether validation passed.
func (f Fields) Ok() bool {
	return len(f) == 0
}

// Email checks the address shape the backend expects.
func Email(fields Fields, field, email string) {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		fields[field] = "Please enter email"
	case strings.Index(email, "@") <= 0:
		fields[field] = "`@` is in an invalid position"
	case !strings.HasSuffix(email, ".com"):
		fields[field] = "Email must end with `.com`"
	}
}

// Password enforces the minimum length.
func Password(fields Fields, field, password string) {
	switch {
	case password == "":
		fields[field] = "Please enter password"
	case len(password) < 8:
		fields[field] = "Enter more than 8 characters"
	}
}

// Confirm checks a confirmation field against the original.
func Confirm(fields Fields, field, password, confirm string) {
	switch {
	case confirm == "":
		fields[field] = "Please confirm password"
	case confirm != password:
		fields[field] = "Passwords do not match"
	}
}

// Required rejects an empty value.
func Required(fields Fields, field, value, message string) {
	if strings.TrimSpace(value) == "" {
		fields[field] = message
	}
}

// Login validates the user login form.
func Login(email, password string) Fields {
	fields := Fields{}
	Email(fields, "email", email)
	Password(fields, "password", password)
	return fields
}

// Register validates the registration form.
func Register(username, email, password, confirm string) Fields {
	fields := Fields{}
	Required(fields, "username", username, "Please enter username")
	Email(fields, "email", email)
	Password(fields, "password", password)
	Confirm(fields, "confirm", password, confirm)
	return fields
}

// Contact validates the contact form.
func Contact(name, email, message string) Fields {
	fields := Fields{}
	Required(fields, "name", name, "Please enter your name")
	Email(fields, "email", email)
	Required(fields, "message", message, "Please enter a message")
	return fields
}
