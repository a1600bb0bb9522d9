package validate

import "testing"

func TestEmail(t *testing.T) {
	cases := []struct {
		name  string
		email string
		valid bool
	}{
		{"Valid", "ada@example.com", true},
		{"Empty", "", false},
		{"MissingAt", "adaexample.com", false},
		{"AtFirst", "@example.com", false},
		{"WrongSuffix", "ada@example.org", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := Fields{}
			Email(fields, "email", tc.email)
			if fields.Ok() != tc.valid {
				t.Errorf("Email(%q): valid=%t, want %t (%v)", tc.email, fields.Ok(), tc.valid, fields)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"LongEnough", "correcthorse", true},
		{"Empty", "", false},
		{"TooShort", "short", false},
		{"SevenChars", "1234567", false},
		{"EightChars", "12345678", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := Fields{}
			Password(fields, "password", tc.password)
			if fields.Ok() != tc.valid {
				t.Errorf("Password(%q): valid=%t, want %t", tc.password, fields.Ok(), tc.valid)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	t.Run("MismatchedConfirmation", func(t *testing.T) {
		fields := Register("ada", "ada@example.com", "longenough", "different")
		if fields.Ok() {
			t.Fatal("mismatched confirmation must fail")
		}
		if _, ok := fields["confirm"]; !ok {
			t.Error("expected the confirm field to carry the error")
		}
	})

	t.Run("AllFieldsReported", func(t *testing.T) {
		fields := Register("", "bad", "x", "")
		for _, field := range []string{"username", "email", "password", "confirm"} {
			if _, ok := fields[field]; !ok {
				t.Errorf("expected an error for %s", field)
			}
		}
	})

	t.Run("Valid", func(t *testing.T) {
		fields := Register("ada", "ada@example.com", "longenough", "longenough")
		if !fields.Ok() {
			t.Errorf("expected valid, got %v", fields)
		}
	})
}

func TestContact(t *testing.T) {
	if fields := Contact("", "ada@example.com", "hi"); fields.Ok() {
		t.Error("empty name must fail")
	}
	if fields := Contact("Ada", "ada@example.com", "   "); fields.Ok() {
		t.Error("blank message must fail")
	}
	if fields := Contact("Ada", "ada@example.com", "hello"); !fields.Ok() {
		t.Errorf("expected valid, got %v", fields)
	}
}
