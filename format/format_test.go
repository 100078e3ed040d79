package format

import (
	"errors"
	"testing"
)

func TestDefaultFormats(t *testing.T) {
	r := Default()

	tests := []struct {
		tag   string
		value string
		valid bool
	}{
		{"date-time", "2024-06-01T12:00:00Z", true},
		{"date-time", "June 1st", false},
		{"date", "2024-06-01", true},
		{"date", "01/06/2024", false},
		{"time", "12:30:00", true},
		{"time", "25:99:00", false},
		{"email", "dev@example.com", true},
		{"email", "Dev <dev@example.com>", false},
		{"email", "not-an-address", false},
		{"uri", "https://example.com/a", true},
		{"uri", "relative/path", false},
		{"uri-reference", "relative/path", true},
		{"hostname", "api.example.com", true},
		{"hostname", "-bad-.example", false},
		{"ipv4", "192.168.0.1", true},
		{"ipv4", "::1", false},
		{"ipv6", "::1", true},
		{"ipv6", "192.168.0.1", false},
		{"uuid", "123e4567-e89b-12d3-a456-426614174000", true},
		{"uuid", "not-a-uuid", false},
		{"regex", "^a+$", true},
		{"regex", "([", false},
		{"json-pointer", "/a/b~0c", true},
		{"json-pointer", "no-leading-slash", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag+"/"+tt.value, func(t *testing.T) {
			if got := r.IsValid(tt.value, tt.tag); got != tt.valid {
				t.Errorf("IsValid(%q, %q) = %v, want %v", tt.value, tt.tag, got, tt.valid)
			}
		})
	}
}

func TestUnknownTagPasses(t *testing.T) {
	r := Default()
	if err := r.Check("anything", "custom-format"); err != nil {
		t.Errorf("unknown tag must pass, got %v", err)
	}
}

func TestRegisterCustomFormat(t *testing.T) {
	r := NewRegistry()
	r.Register("even-length", func(v string) error {
		if len(v)%2 != 0 {
			return errors.New("odd length")
		}
		return nil
	})

	if !r.IsValid("ab", "even-length") {
		t.Error("even string rejected")
	}
	if r.IsValid("abc", "even-length") {
		t.Error("odd string accepted")
	}
}
