package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-openapi/jsonpointer"
)

const (
	// DefaultURL is the GitHub tree page listing the x86_64 archives.
	DefaultURL = "https://github.com/archcraft-os/pkgs/tree/main/x86_64"

	// EmbeddedDataStart opens the JSON blob GitHub embeds in tree pages.
	EmbeddedDataStart = `<script type="application/json" data-target="react-app.embeddedData">`
	// EmbeddedDataEnd closes it.
	EmbeddedDataEnd = `</script>`
	// ItemsPointer locates the directory entries inside the blob.
	ItemsPointer = "/payload/tree/items"
)

// ErrParse is returned when the listing page does not carry a usable catalog.
var ErrParse = errors.New("catalog: malformed listing")

// Getter retrieves the body at url.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Fetcher reads the remote directory listing. It keeps no state between
// calls; every Fetch downloads and parses the page again.
type Fetcher struct {
	getter Getter
	url    string
}

// NewFetcher creates a fetcher for the listing at url.
func NewFetcher(getter Getter, url string) *Fetcher {
	if url == "" {
		url = DefaultURL
	}
	return &Fetcher{getter: getter, url: url}
}

// Fetch returns the raw entry names of the listing in page order. Entries
// are not filtered; use a Matcher for that.
func (f *Fetcher) Fetch(ctx context.Context) ([]string, error) {
	page, err := f.getter.Get(ctx, f.url)
	if err != nil {
		return nil, err
	}
	return ParsePage(page)
}

// ParsePage extracts the entry names from a listing page.
func ParsePage(page []byte) ([]string, error) {
	blob, err := embeddedData(page)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal(blob, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode embedded data: %w", ErrParse, err)
	}

	node, err := lookup(doc, ItemsPointer)
	if err != nil {
		return nil, err
	}
	items, ok := node.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an array", ErrParse, ItemsPointer)
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := obj["name"].(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

func embeddedData(page []byte) ([]byte, error) {
	start := bytes.Index(page, []byte(EmbeddedDataStart))
	if start < 0 {
		return nil, fmt.Errorf("%w: embedded data marker not found", ErrParse)
	}
	start += len(EmbeddedDataStart)

	end := bytes.Index(page[start:], []byte(EmbeddedDataEnd))
	if end < 0 {
		return nil, fmt.Errorf("%w: embedded data is not terminated", ErrParse)
	}
	return page[start : start+end], nil
}

// lookup resolves an RFC 6901 JSON pointer against a decoded document.
func lookup(doc any, pointer string) (any, error) {
	p, err := jsonpointer.New(pointer)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid pointer %q: %w", ErrParse, pointer, err)
	}

	node, _, err := p.Get(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, pointer, err)
	}
	return node, nil
}
