package crafty

import (
	"io"
	"os"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"

	"github.com/aweris/crafty/internal/catalog"
	"github.com/aweris/crafty/internal/ledger"
)

const (
	// DefaultDownloadURL is where archives from the listing are served raw.
	DefaultDownloadURL = "https://github.com/archcraft-os/pkgs/raw/refs/heads/main/x86_64"

	// DefaultLedgerPath is the per-user ledger location.
	DefaultLedgerPath = "~/.config/.crafty/installed.json"
)

// Options configures a Manager.
type Options struct {
	CatalogURL  string
	DownloadURL string
	Prefix      string
	TmpDir      string

	Source       Source
	Downloader   Downloader
	Installer    Installer
	Decompressor Decompressor
	Ledger       *ledger.Store

	Output io.Writer
	Logger *zap.Logger
}

// Option is a functional option for configuring New.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		CatalogURL:  catalog.DefaultURL,
		DownloadURL: DefaultDownloadURL,
		Prefix:      catalog.DefaultPrefix,
		TmpDir:      os.TempDir(),
		Output:      os.Stdout,
		Logger:      zap.NewNop(),
	}
}

// WithCatalogURL sets the directory listing page.
func WithCatalogURL(url string) Option {
	return func(o *Options) {
		if url != "" {
			o.CatalogURL = url
		}
	}
}

// WithDownloadURL sets the base URL archives are downloaded from.
func WithDownloadURL(url string) Option {
	return func(o *Options) {
		if url != "" {
			o.DownloadURL = url
		}
	}
}

// WithPrefix sets the optional name prefix accepted on install.
func WithPrefix(prefix string) Option {
	return func(o *Options) { o.Prefix = prefix }
}

// WithTmpDir sets where archives are downloaded to.
func WithTmpDir(dir string) Option {
	return func(o *Options) {
		if dir != "" {
			o.TmpDir = dir
		}
	}
}

// WithSource sets the catalog source.
func WithSource(s Source) Option {
	return func(o *Options) { o.Source = s }
}

// WithDownloader sets the archive downloader.
func WithDownloader(d Downloader) Option {
	return func(o *Options) { o.Downloader = d }
}

// WithInstaller sets the package manager used to install and remove.
func WithInstaller(i Installer) Option {
	return func(o *Options) { o.Installer = i }
}

// WithDecompressor sets the archive decompressor used by the install fallback.
func WithDecompressor(d Decompressor) Option {
	return func(o *Options) { o.Decompressor = d }
}

// WithLedger sets the ledger store.
func WithLedger(s *ledger.Store) Option {
	return func(o *Options) { o.Ledger = s }
}

// WithLedgerPath stores the ledger at path on the local filesystem.
func WithLedgerPath(path string) Option {
	return func(o *Options) {
		if path != "" {
			o.Ledger = ledger.NewStore(path)
		}
	}
}

// WithOutput sets where progress messages are written.
func WithOutput(w io.Writer) Option {
	return func(o *Options) {
		if w != nil {
			o.Output = w
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	return homedir.Expand(path)
}
