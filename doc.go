// Package crafty installs Archcraft packages straight from the GitHub
// repository listing.
//
// Archives are located by name in the directory listing, downloaded,
// checked for the zstd magic number and installed with pacman. Packages
// installed this way are recorded in a ledger so they can be upgraded
// later.
//
// Basic usage:
//
//	m, _ := crafty.New()
//
//	// Install by name, with or without the archcraft- prefix
//	m.Install(ctx, "fish")
//
//	// Reinstall everything crafty installed
//	m.Upgrade(ctx, "")
//
//	// Query the listing
//	matches, _ := m.Search(ctx, "theme")
//	all, _ := m.List(ctx)
//
//	// Uninstall and forget
//	m.Remove(ctx, "archcraft-fish")
//
// Every collaborator can be replaced, which is how the tests run without
// network or root:
//
//	m, _ := crafty.New(
//		crafty.WithSource(src),
//		crafty.WithInstaller(fakePacman),
//		crafty.WithLedgerPath("/tmp/installed.json"),
//	)
package crafty
