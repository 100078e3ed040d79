// Package loader fetches and parses schema documents per URI scheme.
//
// Three loaders are provided out of the box: DocumentLoader for the
// in-memory current document (fragment-only references), FileLoader for
// local filesystem URIs and HTTPLoader for http/https URIs. All three
// share the Loader interface, so additional schemes can be registered
// without touching the resolution logic.
package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goschema/formtree/schema"
)

// Loader fetches and parses the schema document identified by an absolute,
// fragment-free URI. Fetching blocks; callers needing cancellation pass a
// context with a deadline.
type Loader interface {
	Fetch(ctx context.Context, uri string) (any, error)
}

// DocumentLoader serves a single already-parsed document: the schema the
// tree is being built from. It answers only for its own location, which is
// empty when the caller never supplied a schema URI.
type DocumentLoader struct {
	location string
	document any
}

// NewDocumentLoader wraps document, addressable at location.
func NewDocumentLoader(document any, location string) *DocumentLoader {
	return &DocumentLoader{location: location, document: document}
}

// Fetch returns the held document for its own location and fails for any
// other URI: the scheme-less loader cannot retrieve external documents.
func (l *DocumentLoader) Fetch(_ context.Context, uri string) (any, error) {
	if uri != l.location {
		return nil, fmt.Errorf("cannot retrieve external document %q from the current document", uri)
	}
	return l.document, nil
}

// FileLoader reads schema documents from the local filesystem. Documents
// with a .yaml or .yml extension are decoded as YAML, everything else as
// JSON.
type FileLoader struct{}

// NewFileLoader creates a FileLoader.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Fetch reads and parses the file identified by a file: URI.
func (l *FileLoader) Fetch(_ context.Context, uri string) (any, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse file URI %q: %w", uri, err)
	}
	if u.Host != "" {
		return nil, fmt.Errorf("network paths are unsupported for file URIs (%q)", uri)
	}

	data, err := os.ReadFile(u.Path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(u.Path)) {
	case ".yaml", ".yml":
		return schema.DecodeYAML(data)
	default:
		return schema.DecodeJSON(data)
	}
}

// HTTPLoader fetches schema documents over http/https.
type HTTPLoader struct {
	client *http.Client
}

// NewHTTPLoader creates an HTTPLoader with the given timeout. A nil-safe
// default client is used when timeout is zero.
func NewHTTPLoader(timeout time.Duration) *HTTPLoader {
	return &HTTPLoader{client: &http.Client{Timeout: timeout}}
}

// NewHTTPLoaderWithClient creates an HTTPLoader using client, letting
// callers inject transports, proxies or test servers.
func NewHTTPLoaderWithClient(client *http.Client) *HTTPLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPLoader{client: client}
}

// Fetch GETs the document and parses the body as JSON.
func (l *HTTPLoader) Fetch(ctx context.Context, uri string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %q: %w", uri, err)
	}
	req.Header.Set("Accept", "application/schema+json, application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %q: unexpected status %s", uri, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of %q: %w", uri, err)
	}
	return schema.DecodeJSON(data)
}
