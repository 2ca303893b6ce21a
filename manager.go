package crafty

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"

	"github.com/aweris/crafty/internal/catalog"
	"github.com/aweris/crafty/internal/compression"
	"github.com/aweris/crafty/internal/ledger"
	"github.com/aweris/crafty/internal/pacman"
	"github.com/aweris/crafty/internal/remote"
)

// Manager installs, upgrades, searches and removes packages from the
// remote listing.
type Manager struct {
	source       Source
	matcher      catalog.Matcher
	downloader   Downloader
	installer    Installer
	decompressor Decompressor
	ledger       *ledger.Store

	downloadURL string
	tmpDir      string
	out         io.Writer
	logger      *zap.Logger
}

// New creates a Manager. Collaborators not set through opts are built from
// the defaults: the GitHub listing over HTTP, pacman through sudo, and the
// ledger under the user's config directory.
func New(opts ...Option) (*Manager, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	if options.Source == nil || options.Downloader == nil {
		r := remote.NewHTTPRemote(remote.WithLogger(options.Logger))
		if options.Source == nil {
			options.Source = catalog.NewFetcher(r, options.CatalogURL)
		}
		if options.Downloader == nil {
			options.Downloader = r
		}
	}

	if options.Installer == nil {
		options.Installer = pacman.New(pacman.WithLogger(options.Logger))
	}

	if options.Decompressor == nil {
		options.Decompressor = compression.NewDecompressor()
	}

	if options.Ledger == nil {
		path, err := ExpandPath(DefaultLedgerPath)
		if err != nil {
			return nil, fmt.Errorf("resolve ledger path: %w", err)
		}
		options.Ledger = ledger.NewStore(path)
	}

	return &Manager{
		source:       options.Source,
		matcher:      catalog.NewMatcher(options.Prefix),
		downloader:   options.Downloader,
		installer:    options.Installer,
		decompressor: options.Decompressor,
		ledger:       options.Ledger,
		downloadURL:  options.DownloadURL,
		tmpDir:       options.TmpDir,
		out:          options.Output,
		logger:       options.Logger,
	}, nil
}

// Ledger returns the store the manager records installs in.
func (m *Manager) Ledger() *ledger.Store { return m.ledger }

func (m *Manager) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

// Install resolves pkg in the listing, downloads its archive and hands it to
// the installer. If the installer rejects the archive it is decompressed and
// offered once more. The package name is recorded in the ledger only after a
// successful install.
func (m *Manager) Install(ctx context.Context, pkg string) error {
	entries, err := m.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch catalog: %w", err)
	}

	file, ok := m.matcher.Resolve(entries, pkg)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, pkg)
	}

	name, ok := catalog.ExtractName(file)
	if !ok {
		name = file
	}

	url := remote.JoinURL(m.downloadURL, file)
	archive := filepath.Join(m.tmpDir, file)
	tarball := compression.TarPath(archive)
	defer func() {
		os.Remove(archive)
		os.Remove(tarball)
	}()

	m.printf("Downloading from %s\n", url)
	if err := m.downloader.Download(ctx, url, archive); err != nil {
		return fmt.Errorf("download %s: %w", file, err)
	}

	if err := compression.ValidateFile(archive); err != nil {
		return err
	}

	m.logger.Info("installing archive", zap.String("package", name), zap.String("path", archive))
	if err := m.installer.Install(ctx, archive); err != nil {
		m.logger.Warn("install failed, retrying decompressed", zap.String("package", name), zap.Error(err))
		m.printf("Installing the .zst archive failed. Decompressing and retrying...\n")

		if err := m.decompressor.DecompressFile(archive, tarball); err != nil {
			return fmt.Errorf("decompress %s: %w", file, err)
		}
		if err := m.installer.Install(ctx, tarball); err != nil {
			return fmt.Errorf("install decompressed %s: %w", file, err)
		}
	}

	if err := m.ledger.Load().Add(name); err != nil {
		return fmt.Errorf("record %s: %w", name, err)
	}

	m.printf("Installed: %s\n", pkg)
	return nil
}

// Upgrade reinstalls pkg if the ledger holds it. With an empty pkg every
// package in the ledger is reinstalled, whether or not a newer archive
// exists; one failing package does not stop the others.
func (m *Manager) Upgrade(ctx context.Context, pkg string) error {
	l := m.ledger.Load()

	if pkg != "" {
		name, ok := m.managedName(l, pkg)
		if !ok {
			m.printf("Package '%s' is not installed via crafty.\n", pkg)
			return fmt.Errorf("%w: %s", ErrNotManaged, pkg)
		}
		m.printf("Upgrading %s\n", name)
		return m.Install(ctx, name)
	}

	names := l.Names()
	if len(names) == 0 {
		m.printf("No packages installed via crafty, nothing to upgrade.\n")
		return nil
	}

	var errs []error
	for _, name := range names {
		m.printf("Upgrading %s\n", name)

		var err error
		if r := panics.Try(func() { err = m.Install(ctx, name) }); r != nil {
			err = r.AsError()
		}
		if err != nil {
			m.logger.Error("upgrade failed", zap.String("package", name), zap.Error(err))
			errs = append(errs, fmt.Errorf("upgrade %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// managedName returns the ledger entry for pkg. The ledger keeps archive
// names, so "fish" is found as "archcraft-fish" too. An exact entry wins.
func (m *Manager) managedName(l *ledger.Ledger, pkg string) (string, bool) {
	if l.Contains(pkg) {
		return pkg, true
	}
	for _, name := range l.Names() {
		if m.matcher.Owns(name, pkg) {
			return name, true
		}
	}
	return "", false
}

// Search returns the archives whose package name contains keyword.
func (m *Manager) Search(ctx context.Context, keyword string) ([]string, error) {
	entries, err := m.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	return m.matcher.Filter(entries, keyword), nil
}

// List returns every archive in the listing.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	entries, err := m.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	return m.matcher.List(entries), nil
}

// Remove uninstalls pkg and drops it from the ledger. The ledger is not
// consulted beforehand, so packages installed by other means can be removed
// too.
func (m *Manager) Remove(ctx context.Context, pkg string) error {
	m.printf("Removing package %s\n", pkg)

	if err := m.installer.Remove(ctx, pkg); err != nil {
		return fmt.Errorf("remove %s: %w", pkg, err)
	}

	if err := m.ledger.Load().Remove(pkg); err != nil {
		return fmt.Errorf("forget %s: %w", pkg, err)
	}

	m.printf("Removed: %s\n", pkg)
	return nil
}
