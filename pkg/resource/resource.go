// Package resource implements the asset-loading abstraction every other
// subsystem reads shaders, atlases, and font data through: named byte
// streams, served by a filesystem root when present and falling back to a
// set of blobs baked into the binary otherwise.
package resource

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var logger = log.New(os.Stderr, "[resource] ", log.LstdFlags)

// Provider opens named byte streams. Names are "/"-separated regardless of
// the host OS.
type Provider interface {
	// List returns every name this provider can open, in no particular
	// order.
	List() ([]string, error)
	// Open returns a byte stream for name, or an error satisfying
	// errors.Is(err, fs.ErrNotExist) if it doesn't exist.
	Open(name string) (io.ReadCloser, error)
}

// Bytes reads the entirety of the named resource.
func Bytes(p Provider, name string) ([]byte, error) {
	r, err := p.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("resource: reading %q: %w", name, err)
	}
	return data, nil
}

// UTF8String reads the named resource as a UTF-8 string, rejecting
// embedded NUL bytes (shader sources must not contain them).
func UTF8String(p Provider, name string) (string, error) {
	data, err := Bytes(p, name)
	if err != nil {
		return "", err
	}
	if bytes.IndexByte(data, 0) != -1 {
		return "", fmt.Errorf("resource: %q contains an embedded NUL byte", name)
	}
	return string(data), nil
}

// NulTerminatedString reads the named resource up to (and excluding) its
// first NUL byte, or its entirety if none is present.
func NulTerminatedString(p Provider, name string) (string, error) {
	data, err := Bytes(p, name)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(data, 0); i != -1 {
		data = data[:i]
	}
	return string(data), nil
}

// FilesystemProvider serves resources from a directory on disk, rooted at
// Root, with names translated from "/"-separated to the host separator.
type FilesystemProvider struct {
	Root string
}

// NewFilesystemProvider returns a provider rooted at root.
func NewFilesystemProvider(root string) *FilesystemProvider {
	return &FilesystemProvider{Root: root}
}

func (p *FilesystemProvider) resolve(name string) string {
	return filepath.Join(p.Root, filepath.FromSlash(name))
}

// List walks Root and returns every regular file found, as "/"-separated
// paths relative to Root.
func (p *FilesystemProvider) List() ([]string, error) {
	var names []string
	err := filepath.WalkDir(p.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == p.Root {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(p.Root, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("resource: listing %q: %w", p.Root, err)
	}
	sort.Strings(names)
	return names, nil
}

// Open opens the named resource from disk.
func (p *FilesystemProvider) Open(name string) (io.ReadCloser, error) {
	name = normalizeName(name)
	f, err := os.Open(p.resolve(name))
	if err != nil {
		return nil, fmt.Errorf("resource: opening %q: %w", name, err)
	}
	return f, nil
}

// EmbeddedProvider serves resources from an in-memory name→bytes map,
// typically populated from a Go //go:embed blob.
type EmbeddedProvider struct {
	entries map[string][]byte
}

// NewEmbeddedProvider returns a provider serving entries verbatim.
func NewEmbeddedProvider(entries map[string][]byte) *EmbeddedProvider {
	return &EmbeddedProvider{entries: entries}
}

// List returns every embedded name.
func (p *EmbeddedProvider) List() ([]string, error) {
	names := make([]string, 0, len(p.entries))
	for name := range p.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Open returns a reader over the embedded bytes for name.
func (p *EmbeddedProvider) Open(name string) (io.ReadCloser, error) {
	name = normalizeName(name)
	data, ok := p.entries[name]
	if !ok {
		return nil, fmt.Errorf("resource: %q: %w", name, fs.ErrNotExist)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// CompositeProvider tries each of its providers in order and returns the
// first successful open, so later (typically embedded, always-present)
// providers act as a fallback for earlier (typically filesystem,
// override-friendly) ones.
type CompositeProvider struct {
	providers []Provider
}

// NewCompositeProvider composes providers in priority order: the first
// provider that has a resource wins.
func NewCompositeProvider(providers ...Provider) *CompositeProvider {
	return &CompositeProvider{providers: providers}
}

// List returns the union of every provider's names.
func (p *CompositeProvider) List() ([]string, error) {
	seen := make(map[string]struct{})
	var names []string
	for _, prov := range p.providers {
		list, err := prov.List()
		if err != nil {
			return nil, err
		}
		for _, name := range list {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Open tries each provider in order, returning the first successful open.
func (p *CompositeProvider) Open(name string) (io.ReadCloser, error) {
	var lastErr error
	for _, prov := range p.providers {
		r, err := prov.Open(name)
		if err == nil {
			return r, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("resource: %q: %w", name, fs.ErrNotExist)
	}
	return nil, lastErr
}

// New returns the standard two-provider composition: a filesystem
// provider rooted at assetsDir, falling back to the embedded blobs built
// into the binary.
func New(assetsDir string, embedded map[string][]byte) *CompositeProvider {
	return NewCompositeProvider(
		NewFilesystemProvider(assetsDir),
		NewEmbeddedProvider(embedded),
	)
}

// normalizeName guards against accidental OS-separator names leaking into
// callers that build names with filepath.Join by mistake.
func normalizeName(name string) string {
	if strings.Contains(name, "\\") {
		logger.Printf("resource name %q contains a backslash; resource names always use /", name)
	}
	return strings.TrimPrefix(name, "/")
}
