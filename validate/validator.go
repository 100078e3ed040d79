// Package validate checks a dumped tree value against its schema,
// producing an ordered list of path-addressed issues. Issues are ordinary
// return data, never Go errors; an empty list signals success.
package validate

import (
	"context"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	ft "github.com/goschema/formtree"
	"github.com/goschema/formtree/format"
	"github.com/goschema/formtree/resolve"
	"github.com/goschema/formtree/schema"
)

// Validator runs schema validation for the supported keyword subset:
// type, enum, pattern, format, minLength/maxLength, minimum/maximum with
// exclusiveMinimum/exclusiveMaximum, multipleOf, required, properties,
// items/additionalItems, minItems/maxItems and uniqueItems.
//
// Numeric comparisons are exact (decimal arithmetic), so exclusive bounds
// keep true exclusivity independent of the input-range epsilon the node
// tree uses.
type Validator struct {
	// Formats backs the "format" keyword. A nil checker disables format
	// validation.
	Formats format.Checker

	// MaxErrors caps the reported issues; 0 reports everything. The
	// validator itself never short-circuits on first error.
	MaxErrors int

	// MaxRefDepth bounds $ref chains followed during validation.
	MaxRefDepth int
}

// New returns a validator using the given format checker.
func New(formats format.Checker) *Validator {
	return &Validator{Formats: formats, MaxRefDepth: 32}
}

// Validate checks value against frag, resolving references through rctx.
// The returned issues are in document order; an empty slice means valid.
func (v *Validator) Validate(ctx context.Context, frag *schema.Fragment, value any, rctx resolve.Context) []ft.Issue {
	r := &run{v: v, ctx: ctx}
	r.check(frag, value, rctx, ft.Path{}, ft.Path{})
	return r.issues
}

type run struct {
	v      *Validator
	ctx    context.Context
	issues []ft.Issue
	full   bool
}

func (r *run) add(issue ft.Issue) {
	if r.full {
		return
	}
	r.issues = append(r.issues, issue)
	if r.v.MaxErrors > 0 && len(r.issues) >= r.v.MaxErrors {
		r.full = true
	}
}

func (r *run) check(frag *schema.Fragment, value any, rctx resolve.Context, spath, ipath ft.Path) {
	if r.full || r.ctx.Err() != nil {
		return
	}

	if id, ok := frag.String("id"); ok {
		derived, err := rctx.FollowURI(id)
		if err == nil {
			rctx = derived
		}
	}

	frag, spath, ok := r.deref(frag, rctx, spath, ipath)
	if !ok {
		return
	}

	r.checkEnum(frag, value, spath, ipath)
	r.checkType(frag, value, spath, ipath)

	switch t := value.(type) {
	case string:
		r.checkString(frag, t, spath, ipath)
	case map[string]any:
		r.checkObject(frag, t, rctx, spath, ipath)
	case []any:
		r.checkArray(frag, t, rctx, spath, ipath)
	}
	if d, isNum := schema.NumberOf(value); isNum {
		r.checkNumber(frag, d, spath, ipath)
	}
}

// deref follows the fragment's $ref chain, mirroring the node factory's
// bound. Resolution failures become reference issues instead of aborting
// the pass.
func (r *run) deref(frag *schema.Fragment, rctx resolve.Context, spath, ipath ft.Path) (*schema.Fragment, ft.Path, bool) {
	depth := r.v.MaxRefDepth
	if depth <= 0 {
		depth = 32
	}

	seen := make(map[string]struct{})
	for steps := 0; frag.Has("$ref"); steps++ {
		ref, ok := frag.String("$ref")
		if !ok {
			r.add(ft.ErrorAt(ft.IssueTypeReference, "$ref is not a string", spath.Child("$ref"), ipath))
			return nil, spath, false
		}

		key := rctx.BaseURI() + "\x00" + ref
		if _, dup := seen[key]; dup || steps >= depth {
			r.add(ft.ErrorAt(ft.IssueTypeReference,
				fmt.Sprintf("cyclic $ref chain through %q", ref), spath.Child("$ref"), ipath))
			return nil, spath, false
		}
		seen[key] = struct{}{}

		target, err := rctx.Dereference(r.ctx, ref)
		if err != nil {
			r.add(ft.ErrorAt(ft.IssueTypeReference, err.Error(), spath.Child("$ref"), ipath))
			return nil, spath, false
		}
		next, ok := target.(*schema.Fragment)
		if !ok {
			r.add(ft.ErrorAt(ft.IssueTypeReference,
				fmt.Sprintf("referent of %q is not a schema object", ref), spath.Child("$ref"), ipath))
			return nil, spath, false
		}
		frag = next
		spath = spath.Child("$ref")
	}
	return frag, spath, true
}

func (r *run) checkEnum(frag *schema.Fragment, value any, spath, ipath ft.Path) {
	entries, ok := frag.Array("enum")
	if !ok {
		return
	}
	for _, e := range entries {
		if schema.ValueEqual(e, value) {
			return
		}
	}
	r.add(ft.ErrorAt(ft.IssueTypeEnum,
		fmt.Sprintf("%v is not one of the permitted values", display(value)),
		spath.Child("enum"), ipath))
}

func (r *run) checkType(frag *schema.Fragment, value any, spath, ipath ft.Path) {
	typ, ok := frag.String("type")
	if !ok {
		return
	}
	if !typeMatches(typ, value) {
		r.add(ft.ErrorAt(ft.IssueTypeType,
			fmt.Sprintf("%v is not of type %q", display(value), typ),
			spath.Child("type"), ipath))
	}
}

func typeMatches(typ string, value any) bool {
	switch typ {
	case "object":
		_, ok := value.(map[string]any)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok
	case "string":
		_, ok := value.(string)
		return ok
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "integer":
		d, ok := schema.NumberOf(value)
		return ok && d.IsInteger()
	case "number":
		_, ok := schema.NumberOf(value)
		return ok
	case "null":
		return value == nil
	default:
		// Unknown type values are a schema-authoring problem, not a data
		// problem; stay permissive.
		return true
	}
}

func (r *run) checkString(frag *schema.Fragment, value string, spath, ipath ft.Path) {
	if min, ok := frag.Int("minLength"); ok {
		if len([]rune(value)) < min {
			r.add(ft.ErrorAt(ft.IssueTypeLength,
				fmt.Sprintf("%q is shorter than %d characters", value, min),
				spath.Child("minLength"), ipath))
		}
	}
	if max, ok := frag.Int("maxLength"); ok {
		if len([]rune(value)) > max {
			r.add(ft.ErrorAt(ft.IssueTypeLength,
				fmt.Sprintf("%q is longer than %d characters", value, max),
				spath.Child("maxLength"), ipath))
		}
	}

	if pattern, ok := frag.String("pattern"); ok {
		re, err := regexp.Compile(pattern)
		if err != nil {
			r.add(ft.ErrorAt(ft.IssueTypeProcessing,
				fmt.Sprintf("schema pattern %q does not compile", pattern),
				spath.Child("pattern"), ipath))
		} else if !re.MatchString(value) {
			r.add(ft.ErrorAt(ft.IssueTypePattern,
				fmt.Sprintf("%q does not match pattern %q", value, pattern),
				spath.Child("pattern"), ipath))
		}
	}

	if tag, ok := frag.String("format"); ok && r.v.Formats != nil {
		if err := r.v.Formats.Check(value, tag); err != nil {
			r.add(ft.ErrorAt(ft.IssueTypeFormat,
				fmt.Sprintf("%q does not conform to format %q", value, tag),
				spath.Child("format"), ipath))
		}
	}
}

func (r *run) checkNumber(frag *schema.Fragment, d decimal.Decimal, spath, ipath ft.Path) {
	if min, ok := frag.Number("minimum"); ok {
		if bound, err := decimal.NewFromString(min.String()); err == nil {
			exclusive := frag.Bool("exclusiveMinimum")
			if d.LessThan(bound) || (exclusive && d.Equal(bound)) {
				word := "less than"
				if exclusive {
					word = "less than or equal to"
				}
				r.add(ft.ErrorAt(ft.IssueTypeRange,
					fmt.Sprintf("%s is %s the minimum of %s", d.String(), word, bound.String()),
					spath.Child("minimum"), ipath))
			}
		}
	}

	if max, ok := frag.Number("maximum"); ok {
		if bound, err := decimal.NewFromString(max.String()); err == nil {
			exclusive := frag.Bool("exclusiveMaximum")
			if d.GreaterThan(bound) || (exclusive && d.Equal(bound)) {
				word := "greater than"
				if exclusive {
					word = "greater than or equal to"
				}
				r.add(ft.ErrorAt(ft.IssueTypeRange,
					fmt.Sprintf("%s is %s the maximum of %s", d.String(), word, bound.String()),
					spath.Child("maximum"), ipath))
			}
		}
	}

	if mul, ok := frag.Number("multipleOf"); ok {
		if factor, err := decimal.NewFromString(mul.String()); err == nil && !factor.IsZero() {
			if !d.Mod(factor).IsZero() {
				r.add(ft.ErrorAt(ft.IssueTypeRange,
					fmt.Sprintf("%s is not a multiple of %s", d.String(), factor.String()),
					spath.Child("multipleOf"), ipath))
			}
		}
	}
}

func (r *run) checkObject(frag *schema.Fragment, value map[string]any, rctx resolve.Context, spath, ipath ft.Path) {
	if required, ok := frag.Array("required"); ok {
		for _, raw := range required {
			name, ok := raw.(string)
			if !ok {
				continue
			}
			if _, present := value[name]; !present {
				r.add(ft.ErrorAt(ft.IssueTypeRequired,
					fmt.Sprintf("required property %q is missing", name),
					spath.Child("required"), ipath))
			}
		}
	}

	props, ok := frag.Object("properties")
	if !ok {
		return
	}
	for _, name := range props.Keys() {
		sub, present := value[name]
		if !present {
			continue
		}
		raw, _ := props.Get(name)
		child, ok := raw.(*schema.Fragment)
		if !ok {
			continue
		}
		r.check(child, sub, rctx, spath.Child("properties").Child(name), ipath.Child(name))
		if r.full {
			return
		}
	}
}

func (r *run) checkArray(frag *schema.Fragment, value []any, rctx resolve.Context, spath, ipath ft.Path) {
	if min, ok := frag.Int("minItems"); ok && len(value) < min {
		r.add(ft.ErrorAt(ft.IssueTypeItems,
			fmt.Sprintf("array has %d items, fewer than %d", len(value), min),
			spath.Child("minItems"), ipath))
	}
	if max, ok := frag.Int("maxItems"); ok && len(value) > max {
		r.add(ft.ErrorAt(ft.IssueTypeItems,
			fmt.Sprintf("array has %d items, more than %d", len(value), max),
			spath.Child("maxItems"), ipath))
	}
	if frag.Bool("uniqueItems") {
	outer:
		for i := 1; i < len(value); i++ {
			for j := 0; j < i; j++ {
				if schema.ValueEqual(value[i], value[j]) {
					r.add(ft.ErrorAt(ft.IssueTypeItems,
						fmt.Sprintf("items %d and %d are duplicates", j, i),
						spath.Child("uniqueItems"), ipath))
					break outer
				}
			}
		}
	}

	items, hasItems := frag.Get("items")
	if !hasItems {
		return
	}

	switch t := items.(type) {
	case *schema.Fragment:
		for i, elem := range value {
			r.check(t, elem, rctx, spath.Child("items"), ipath.Child(i))
			if r.full {
				return
			}
		}

	case []any:
		// additionalItems may be a schema, a bare bool, or absent. Absent
		// and true both admit extra items unchecked; false forbids them.
		additional, _ := frag.Get("additionalItems")
		for i, elem := range value {
			if i < len(t) {
				child, ok := t[i].(*schema.Fragment)
				if !ok {
					continue
				}
				r.check(child, elem, rctx, spath.Child("items").Child(i), ipath.Child(i))
			} else if sub, ok := additional.(*schema.Fragment); ok {
				r.check(sub, elem, rctx, spath.Child("additionalItems"), ipath.Child(i))
			} else if forbid, ok := additional.(bool); ok && !forbid {
				r.add(ft.ErrorAt(ft.IssueTypeItems,
					fmt.Sprintf("item %d is beyond the fixed items list", i),
					spath.Child("items"), ipath.Child(i)))
			}
			if r.full {
				return
			}
		}
	}
}

func display(value any) string {
	switch t := value.(type) {
	case string:
		return fmt.Sprintf("%q", t)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", t)
	}
}
