// Package resolve implements $ref dereferencing through resolution
// contexts: immutable (base URI, loader registry) pairs.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	ft "github.com/goschema/formtree"
	"github.com/goschema/formtree/loader"
	"github.com/goschema/formtree/schema"
)

// Context pairs a base URI with a loader registry. Deriving a child
// context for a nested "id" never mutates the parent; contexts are values
// and copy on derive.
type Context struct {
	base     *url.URL
	registry *loader.Registry
}

// NewContext creates a resolution context rooted at baseURI. An empty
// baseURI roots the context at the bare current-document fragment, the
// same as the original caller not knowing its own schema's location.
func NewContext(baseURI string, registry *loader.Registry) (Context, error) {
	if baseURI == "" {
		baseURI = "#"
	}
	u, err := url.Parse(baseURI)
	if err != nil {
		return Context{}, fmt.Errorf("parse base URI %q: %w", baseURI, err)
	}
	return Context{base: u, registry: registry}, nil
}

// BaseURI returns the context's base URI.
func (c Context) BaseURI() string {
	if c.base == nil {
		return ""
	}
	return c.base.String()
}

// Registry returns the loader registry the context resolves through.
func (c Context) Registry() *loader.Registry {
	return c.registry
}

// FollowURI derives a child context whose base is id resolved against the
// current base per RFC 3986. Used when a schema fragment declares its own
// "id", so nested references resolve relative to that fragment.
func (c Context) FollowURI(id string) (Context, error) {
	ref, err := url.Parse(id)
	if err != nil {
		return Context{}, fmt.Errorf("parse id %q: %w", id, err)
	}
	return Context{base: c.base.ResolveReference(ref), registry: c.registry}, nil
}

// Dereference resolves a $ref value against the base URI, fetches the
// referent's document through the registry and walks the fragment pointer
// to the referenced schema value.
//
// Failures come back as *formtree.UnknownSchemeError when no loader covers
// the scheme, and *formtree.ReferenceResolutionError for everything else.
// Both are fatal only for the node being built; the node factory degrades
// the subtree rather than aborting the tree.
func (c Context) Dereference(ctx context.Context, ref string) (any, error) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return nil, &ft.ReferenceResolutionError{Ref: ref, Err: err}
	}
	abs := c.base.ResolveReference(parsed)

	doc, err := c.registry.Resolve(ctx, abs.String())
	if err != nil {
		var unknown *ft.UnknownSchemeError
		if errors.As(err, &unknown) {
			return nil, err
		}
		return nil, &ft.ReferenceResolutionError{Ref: ref, Err: err}
	}

	target, err := schema.WalkPointer(doc, abs.Fragment)
	if err != nil {
		return nil, &ft.ReferenceResolutionError{Ref: ref, Err: err}
	}
	return target, nil
}
