package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"
)

// DefaultUserAgent identifies crafty to the repository host.
const DefaultUserAgent = "crafty"

var _ Remote = (*HTTPRemote)(nil)

// HTTPRemote is a Remote backed by net/http.
type HTTPRemote struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// Option configures an HTTPRemote.
type Option func(*HTTPRemote)

// WithClient sets the HTTP client.
func WithClient(c *http.Client) Option {
	return func(r *HTTPRemote) {
		if c != nil {
			r.client = c
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(r *HTTPRemote) {
		if ua != "" {
			r.userAgent = ua
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *HTTPRemote) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewHTTPRemote creates an HTTPRemote.
func NewHTTPRemote(opts ...Option) *HTTPRemote {
	r := &HTTPRemote{
		client: &http.Client{
			Timeout: 0, // No timeout, archives can be large
		},
		userAgent: DefaultUserAgent,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the body of url.
func (r *HTTPRemote) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := r.do(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrNetwork, url, err)
	}

	r.logger.Debug("fetched page", zap.String("url", url), zap.Int("bytes", len(body)))
	return body, nil
}

// Download writes the body of url to dest verbatim. dest only appears once
// the whole body has been received.
func (r *HTTPRemote) Download(ctx context.Context, url, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("create download dir: %w", err)
	}

	resp, err := r.do(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	counter := &countingReader{reader: resp.Body}
	if err := atomic.WriteFile(dest, counter); err != nil {
		return fmt.Errorf("%w: download %s: %w", ErrNetwork, url, err)
	}

	r.logger.Debug("downloaded archive",
		zap.String("url", url),
		zap.String("dest", dest),
		zap.Int64("bytes", counter.n),
	)
	return nil
}

func (r *HTTPRemote) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrNetwork, err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrNetwork, url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: GET %s: HTTP %d", ErrNetwork, url, resp.StatusCode)
	}
	return resp, nil
}

type countingReader struct {
	reader io.Reader
	n      int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	c.n += int64(n)
	return n, err
}

// JoinURL appends name to base with exactly one slash between them.
func JoinURL(base, name string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(name, "/")
}
