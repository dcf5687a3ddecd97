package resource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Fetcher retrieves documents by URI.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// FileFetcher reads documents from disk, resolving relative paths against
// Base.
type FileFetcher struct {
	Base string
}

// NewFetcher creates a FileFetcher rooted at base. An empty base resolves
// against the working directory.
func NewFetcher(base string) *FileFetcher {
	return &FileFetcher{Base: base}
}

func (f *FileFetcher) Resolve(uri string) string {
	if filepath.IsAbs(uri) || f.Base == "" {
		return uri
	}
	return filepath.Join(f.Base, uri)
}

// Fetch reads the file uri names.
func (f *FileFetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := os.ReadFile(f.Resolve(uri))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", uri, err)
	}
	return body, nil
}
