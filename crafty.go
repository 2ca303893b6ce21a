package crafty

import "context"

// Source returns the raw entry names of the remote listing.
type Source interface {
	Fetch(ctx context.Context) ([]string, error)
}

// Downloader writes the archive at url to dest.
type Downloader interface {
	Download(ctx context.Context, url, dest string) error
}

// Installer is the system package manager.
type Installer interface {
	Install(ctx context.Context, path string) error // install a local archive
	Remove(ctx context.Context, name string) error  // remove a package and its unneeded deps
}

// Decompressor unpacks a zstd archive to dst.
type Decompressor interface {
	DecompressFile(src, dst string) error
}
