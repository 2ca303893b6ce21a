package catalog

import (
	"regexp"
	"strings"
)

// DefaultPrefix is the distribution prefix some archives carry in front of
// the package name (archcraft-fish-3.6.1-1-x86_64.pkg.tar.zst).
const DefaultPrefix = "archcraft"

// Matcher answers name and keyword queries against a fetched listing.
// Entries that are not package archives are ignored by every method.
type Matcher struct {
	// Prefix is optional in front of a name passed to Resolve.
	Prefix string
}

// NewMatcher returns a Matcher for the given prefix. An empty prefix
// disables prefix handling.
func NewMatcher(prefix string) Matcher {
	return Matcher{Prefix: prefix}
}

// Resolve returns the first entry whose name is pkg, optionally preceded by
// the matcher prefix. Listing order decides: when several versions or
// architectures of pkg are listed, the first one wins, which is not
// necessarily the newest.
func (m Matcher) Resolve(entries []string, pkg string) (string, bool) {
	name := regexp.QuoteMeta(pkg)
	if m.Prefix != "" {
		name = `(?:` + regexp.QuoteMeta(m.Prefix) + `-)?` + name
	}
	re := grammar(name)

	for _, entry := range entries {
		if re.MatchString(entry) && IsArchive(entry) {
			return entry, true
		}
	}
	return "", false
}

// Filter returns the archives whose name contains keyword, ignoring case.
// Version, release, arch and extension are never searched. An empty keyword
// matches every archive.
func (m Matcher) Filter(entries []string, keyword string) []string {
	keyword = strings.ToLower(keyword)

	matches := []string{}
	for _, entry := range entries {
		a, ok := Parse(entry)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(a.Name), keyword) {
			matches = append(matches, entry)
		}
	}
	return matches
}

// List returns every entry that is a package archive, in listing order.
func (m Matcher) List(entries []string) []string {
	archives := []string{}
	for _, entry := range entries {
		if IsArchive(entry) {
			archives = append(archives, entry)
		}
	}
	return archives
}

// Owns reports whether the package name is addressed by pkg, with or
// without the matcher prefix.
func (m Matcher) Owns(name, pkg string) bool {
	if name == pkg {
		return true
	}
	return m.Prefix != "" && name == m.Prefix+"-"+pkg
}
