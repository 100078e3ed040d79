// Package format implements pluggable semantic format checking for the
// JSON Schema "format" keyword. The same checker backs both live
// field-level hints on String nodes and whole-document validation, so the
// two never disagree about what a valid "email" or "date-time" is.
package format

import (
	"fmt"
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"time"
)

// CheckFunc validates one string against one format tag.
type CheckFunc func(value string) error

// Checker validates values against format tags. Unknown tags are treated
// as valid, per JSON Schema semantics.
type Checker interface {
	Check(value, tag string) error
	IsValid(value, tag string) bool
}

// Registry is the default Checker: a map of format tag to check function.
type Registry struct {
	checks map[string]CheckFunc
}

// NewRegistry returns an empty registry with no formats.
func NewRegistry() *Registry {
	return &Registry{checks: make(map[string]CheckFunc)}
}

// Register installs or replaces the check for a format tag.
func (r *Registry) Register(tag string, fn CheckFunc) {
	r.checks[tag] = fn
}

// Check validates value against tag. Unknown tags pass.
func (r *Registry) Check(value, tag string) error {
	fn, ok := r.checks[tag]
	if !ok {
		return nil
	}
	return fn(value)
}

// IsValid reports whether value conforms to tag.
func (r *Registry) IsValid(value, tag string) bool {
	return r.Check(value, tag) == nil
}

var (
	hostnameRe = regexp.MustCompile(`^(?i)[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?(\.[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?)*$`)
	uuidRe     = regexp.MustCompile(`^(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	pointerRe  = regexp.MustCompile(`^(/([^/~]|~[01])*)*$`)
)

// Default returns a registry with the built-in formats: date-time, date,
// time, email, uri, uri-reference, hostname, ipv4, ipv6, uuid, regex and
// json-pointer.
func Default() *Registry {
	r := NewRegistry()

	r.Register("date-time", func(v string) error {
		if _, err := time.Parse(time.RFC3339, v); err != nil {
			return fmt.Errorf("%q is not an RFC 3339 date-time", v)
		}
		return nil
	})

	r.Register("date", func(v string) error {
		if _, err := time.Parse("2006-01-02", v); err != nil {
			return fmt.Errorf("%q is not a full-date", v)
		}
		return nil
	})

	r.Register("time", func(v string) error {
		if _, err := time.Parse("15:04:05Z07:00", v); err != nil {
			if _, err2 := time.Parse("15:04:05", v); err2 != nil {
				return fmt.Errorf("%q is not a full-time", v)
			}
		}
		return nil
	})

	r.Register("email", func(v string) error {
		addr, err := mail.ParseAddress(v)
		if err != nil {
			return fmt.Errorf("%q is not an email address", v)
		}
		// Reject the display-name form; the schema wants a bare address.
		if addr.Address != v {
			return fmt.Errorf("%q is not a bare email address", v)
		}
		return nil
	})

	r.Register("uri", func(v string) error {
		u, err := url.Parse(v)
		if err != nil || !u.IsAbs() {
			return fmt.Errorf("%q is not an absolute URI", v)
		}
		return nil
	})

	r.Register("uri-reference", func(v string) error {
		if _, err := url.Parse(v); err != nil {
			return fmt.Errorf("%q is not a URI reference", v)
		}
		return nil
	})

	r.Register("hostname", func(v string) error {
		if len(v) > 253 || !hostnameRe.MatchString(v) {
			return fmt.Errorf("%q is not a hostname", v)
		}
		return nil
	})

	r.Register("ipv4", func(v string) error {
		ip := net.ParseIP(v)
		if ip == nil || ip.To4() == nil {
			return fmt.Errorf("%q is not an IPv4 address", v)
		}
		return nil
	})

	r.Register("ipv6", func(v string) error {
		ip := net.ParseIP(v)
		if ip == nil || ip.To4() != nil {
			return fmt.Errorf("%q is not an IPv6 address", v)
		}
		return nil
	})

	r.Register("uuid", func(v string) error {
		if !uuidRe.MatchString(v) {
			return fmt.Errorf("%q is not a UUID", v)
		}
		return nil
	})

	r.Register("regex", func(v string) error {
		if _, err := regexp.Compile(v); err != nil {
			return fmt.Errorf("%q is not a valid regular expression", v)
		}
		return nil
	})

	r.Register("json-pointer", func(v string) error {
		if !pointerRe.MatchString(v) {
			return fmt.Errorf("%q is not a JSON Pointer", v)
		}
		return nil
	})

	return r
}
