package node

import (
	"context"
	"fmt"
	"regexp"

	ft "github.com/goschema/formtree"
	"github.com/goschema/formtree/format"
	"github.com/goschema/formtree/resolve"
	"github.com/goschema/formtree/schema"
)

// fieldValidator is one live check run against a String node's current
// value, for per-field hints distinct from whole-document validation.
type fieldValidator interface {
	check(value string) error
}

type patternValidator struct {
	re *regexp.Regexp
}

func (v patternValidator) check(s string) error {
	if !v.re.MatchString(s) {
		return fmt.Errorf("value %q does not match pattern %q", s, v.re.String())
	}
	return nil
}

type formatValidator struct {
	checker format.Checker
	tag     string
}

func (v formatValidator) check(s string) error {
	if err := v.checker.Check(s, v.tag); err != nil {
		return fmt.Errorf("value %q does not conform to format %q: %w", s, v.tag, err)
	}
	return nil
}

type minLengthValidator struct {
	min int
}

func (v minLengthValidator) check(s string) error {
	if len([]rune(s)) < v.min {
		return fmt.Errorf("length of %q is less than the permitted minimum %d", s, v.min)
	}
	return nil
}

// String holds a scalar string value plus the accumulated field
// validators declared by the schema: pattern, format and minLength.
// maxLength is not a validator; it is enforced as a hard input cap.
type String struct {
	base

	value      string
	maxLength  int // -1 when uncapped
	validators []fieldValidator
}

func newString(_ context.Context, f *Factory, name string, frag *schema.Fragment, rctx resolve.Context, parent Node) (Node, error) {
	s := &String{
		base:      newBase(name, frag, rctx, parent, f),
		maxLength: -1,
	}

	if pattern, ok := frag.String("pattern"); ok {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, &ft.SchemaShapeError{Type: "string", Reason: fmt.Sprintf("invalid pattern %q", pattern)}
		}
		s.validators = append(s.validators, patternValidator{re: re})
	}

	if tag, ok := frag.String("format"); ok && f.Formats != nil {
		s.validators = append(s.validators, formatValidator{checker: f.Formats, tag: tag})
	}

	if min, ok := frag.Int("minLength"); ok {
		s.validators = append(s.validators, minLengthValidator{min: min})
	}

	if max, ok := frag.Int("maxLength"); ok && max >= 0 {
		s.maxLength = max
	}

	return s, nil
}

// SetValue replaces the current value, truncating to maxLength when the
// schema caps input length.
func (s *String) SetValue(v string) {
	if s.maxLength >= 0 {
		if runes := []rune(v); len(runes) > s.maxLength {
			v = string(runes[:s.maxLength])
		}
	}
	s.value = v
}

// Value returns the current value.
func (s *String) Value() string { return s.value }

// FieldError runs the accumulated validators against the current value
// and returns the first failure, nil when the value passes.
func (s *String) FieldError() error {
	for _, v := range s.validators {
		if err := v.check(s.value); err != nil {
			return err
		}
	}
	return nil
}

// Load is the identity on the string value (modulo the input cap).
func (s *String) Load(_ context.Context, data any) error {
	v, ok := data.(string)
	if !ok {
		return fmt.Errorf("string %q: cannot load %T", s.name, data)
	}
	s.SetValue(v)
	return nil
}

// Dump returns the current string value.
func (s *String) Dump() any { return s.value }
