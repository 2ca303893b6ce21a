// Package remote implements the HTTP side of crafty.
//
// Two operations are needed against the package repository:
// - Get: read a page (the directory listing) into memory
// - Download: stream an archive to a local path
//
// Neither retries, caches, or times out on its own; cancellation comes from
// the caller's context.
package remote

import (
	"context"
	"errors"
)

// ErrNetwork is returned when a request could not be completed.
var ErrNetwork = errors.New("remote: request failed")

// Remote handles package repository transfers.
type Remote interface {
	// Get returns the response body for url.
	Get(ctx context.Context, url string) ([]byte, error)

	// Download writes the response body for url to dest.
	Download(ctx context.Context, url, dest string) error
}
