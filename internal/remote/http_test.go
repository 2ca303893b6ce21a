package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPRemote_Get(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html>listing</html>"))
	}))
	defer srv.Close()

	r := NewHTTPRemote(WithUserAgent("crafty-test"))
	body, err := r.Get(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "<html>listing</html>", string(body))
	assert.Equal(t, "crafty-test", gotUA)
}

func TestHTTPRemote_GetStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewHTTPRemote().Get(context.Background(), srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Contains(t, err.Error(), "HTTP 429")
}

func TestHTTPRemote_GetUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPRemote().Get(context.Background(), url)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestHTTPRemote_Download(t *testing.T) {
	payload := []byte{0x28, 0xB5, 0x2F, 0xFD, 0x00, 0x01, 0x02}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/x86_64/htop-3.2.2-2-x86_64.pkg.tar.zst", r.URL.Path)
		w.Write(payload)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "nested", "htop-3.2.2-2-x86_64.pkg.tar.zst")
	url := JoinURL(srv.URL+"/x86_64/", "htop-3.2.2-2-x86_64.pkg.tar.zst")

	err := NewHTTPRemote().Download(context.Background(), url, dest)
	require.NoError(t, err)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestHTTPRemote_DownloadStatusLeavesNoFile(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "missing.pkg.tar.zst")
	err := NewHTTPRemote().Download(context.Background(), srv.URL+"/missing", dest)
	assert.ErrorIs(t, err, ErrNetwork)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "https://h/x86_64/a.zst", JoinURL("https://h/x86_64", "a.zst"))
	assert.Equal(t, "https://h/x86_64/a.zst", JoinURL("https://h/x86_64/", "a.zst"))
	assert.Equal(t, "https://h/x86_64/a.zst", JoinURL("https://h/x86_64//", "/a.zst"))
}
