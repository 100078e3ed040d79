package loader

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/sirupsen/logrus"

	ft "github.com/goschema/formtree"
	"github.com/goschema/formtree/cache"
)

// Registry maps URI schemes to loaders and memoizes fetched documents by
// absolute, fragment-free URI. Within one registry a given absolute URI
// always resolves to the same document object, which is what gives cyclic
// and repeated references referential identity during a tree build.
//
// Registries are not shared between tree builds unless the caller wants
// the cache shared too; the engine creates one per build.
type Registry struct {
	loaders map[string]Loader
	docs    *cache.Cache[string, any]
	log     logrus.FieldLogger
}

// NewRegistry creates an empty registry with a document cache of the given
// capacity.
func NewRegistry(cacheSize int, log logrus.FieldLogger) *Registry {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Registry{
		loaders: make(map[string]Loader),
		docs:    cache.New[string, any](cacheSize),
		log:     log,
	}
}

// Register installs a loader for a URI scheme. The empty scheme stands for
// fragment-only references into the current document.
func (r *Registry) Register(scheme string, l Loader) {
	r.loaders[scheme] = l
}

// Resolve fetches the document containing the referent of uri. The URI's
// fragment is stripped before the fetch; pointer walking within the
// document is the resolution context's job, not the registry's.
func (r *Registry) Resolve(ctx context.Context, uri string) (any, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse reference URI %q: %w", uri, err)
	}
	u.Fragment = ""
	location := u.String()

	l, ok := r.loaders[u.Scheme]
	if !ok {
		// A seeded document is still addressable even when its scheme has
		// no loader.
		if doc, hit := r.docs.Get(location); hit {
			return doc, nil
		}
		return nil, &ft.UnknownSchemeError{Scheme: u.Scheme}
	}

	return r.docs.GetOrLoad(location, func() (any, error) {
		r.log.WithField("uri", location).Debug("loading schema document")
		return l.Fetch(ctx, location)
	})
}

// Seed stores doc in the cache under uri (fragment-stripped), so
// references back into an already-parsed document never trigger a fetch.
func (r *Registry) Seed(uri string, doc any) error {
	u, err := url.Parse(uri)
	if err != nil {
		return fmt.Errorf("parse seed URI %q: %w", uri, err)
	}
	u.Fragment = ""
	r.docs.Put(u.String(), doc)
	return nil
}

// CacheStats returns the document cache counters.
func (r *Registry) CacheStats() cache.Stats {
	return r.docs.Stats()
}
