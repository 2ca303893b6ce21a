package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGetter struct {
	body []byte
	err  error
	urls []string
}

func (g *fakeGetter) Get(_ context.Context, url string) ([]byte, error) {
	g.urls = append(g.urls, url)
	return g.body, g.err
}

func page(blob string) []byte {
	return []byte(`<!DOCTYPE html><html><head><title>pkgs</title>
<script type="application/json" data-target="react-partial.embeddedData">{"other":true}</script>
</head><body>
` + EmbeddedDataStart + blob + EmbeddedDataEnd + `
<script>console.log("tail")</script>
</body></html>`)
}

func TestFetcher_Fetch(t *testing.T) {
	getter := &fakeGetter{body: page(`{"payload":{"tree":{"items":[
		{"name":"archcraft-fish-3.6.1-1-x86_64.pkg.tar.zst","path":"x86_64/archcraft-fish-3.6.1-1-x86_64.pkg.tar.zst","contentType":"file"},
		{"name":"htop-3.2.2-2-x86_64.pkg.tar.zst","contentType":"file"},
		{"path":"x86_64/nameless","contentType":"file"},
		{"name":42},
		"stray",
		{"name":"notes.txt","contentType":"file"}
	]}}}`)}

	f := NewFetcher(getter, "https://example.test/tree/main/x86_64")
	names, err := f.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"archcraft-fish-3.6.1-1-x86_64.pkg.tar.zst",
		"htop-3.2.2-2-x86_64.pkg.tar.zst",
		"notes.txt",
	}, names)
	assert.Equal(t, []string{"https://example.test/tree/main/x86_64"}, getter.urls)
}

func TestFetcher_FetchIsStateless(t *testing.T) {
	getter := &fakeGetter{body: page(`{"payload":{"tree":{"items":[{"name":"a-1-1-any.pkg.tar.zst"}]}}}`)}
	f := NewFetcher(getter, "")

	_, err := f.Fetch(context.Background())
	require.NoError(t, err)

	getter.body = page(`{"payload":{"tree":{"items":[{"name":"b-1-1-any.pkg.tar.zst"}]}}}`)
	names, err := f.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"b-1-1-any.pkg.tar.zst"}, names)
	assert.Equal(t, []string{DefaultURL, DefaultURL}, getter.urls)
}

func TestFetcher_FetchGetterError(t *testing.T) {
	boom := errors.New("connection refused")
	f := NewFetcher(&fakeGetter{err: boom}, "")

	_, err := f.Fetch(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrParse)
}

func TestParsePage_Errors(t *testing.T) {
	tests := []struct {
		name string
		page []byte
	}{
		{name: "no marker", page: []byte(`<html><body>rate limited</body></html>`)},
		{name: "unterminated", page: []byte(EmbeddedDataStart + `{"payload":{}}`)},
		{name: "bad json", page: page(`{"payload":`)},
		{name: "missing payload", page: page(`{"title":"x"}`)},
		{name: "missing items", page: page(`{"payload":{"tree":{}}}`)},
		{name: "items not array", page: page(`{"payload":{"tree":{"items":{"name":"x"}}}}`)},
		{name: "tree not object", page: page(`{"payload":{"tree":"x"}}`)},
		{name: "empty", page: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePage(tt.page)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestParsePage_EmptyListing(t *testing.T) {
	names, err := ParsePage(page(`{"payload":{"tree":{"items":[]}}}`))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestParsePage_UsesFirstMarker(t *testing.T) {
	p := append(page(`{"payload":{"tree":{"items":[{"name":"first"}]}}}`),
		page(`{"payload":{"tree":{"items":[{"name":"second"}]}}}`)...)

	names, err := ParsePage(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, names)
}

func TestLookup(t *testing.T) {
	doc := map[string]any{
		"a/b": map[string]any{"~c": []any{"zero", "one"}},
	}

	got, err := lookup(doc, "/a~1b/~0c/1")
	require.NoError(t, err)
	assert.Equal(t, "one", got)

	got, err = lookup(doc, "")
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	_, err = lookup(doc, "/a~1b/~0c/2")
	assert.ErrorIs(t, err, ErrParse)

	_, err = lookup(doc, "/a~1b/~0c/1/deeper")
	assert.ErrorIs(t, err, ErrParse)

	_, err = lookup(doc, "/missing")
	assert.ErrorIs(t, err, ErrParse)

	_, err = lookup(doc, "a")
	assert.ErrorIs(t, err, ErrParse)
}
