// Package catalog reads the remote package listing and answers queries
// against it.
//
// Package archives are named
//
//	[prefix-]name-version-release-arch.pkg.tar.zst
//
// and everything else in the listing is ignored.
package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// ArchiveSuffix is the extension every package archive in the listing carries.
const ArchiveSuffix = ".pkg.tar.zst"

// Architectures accepted in archive filenames.
var Architectures = []string{"any", "x86_64"}

// Archive is a parsed catalog entry of the form
// name-version-release-arch.pkg.tar.zst.
type Archive struct {
	Filename string
	Name     string
	Version  string
	Release  string
	Arch     string
}

// String rebuilds the archive filename from its components.
func (a Archive) String() string {
	return fmt.Sprintf("%s-%s-%s-%s%s", a.Name, a.Version, a.Release, a.Arch, ArchiveSuffix)
}

// grammar builds the archive filename pattern around namePattern. Every
// catalog operation goes through here so the version/release/arch/suffix
// rules exist exactly once.
func grammar(namePattern string) *regexp.Regexp {
	return regexp.MustCompile(
		`^(?P<name>` + namePattern + `)` +
			`-(?P<version>\d+(?:\.\d+)*)` +
			`-(?P<release>\d+)` +
			`-(?P<arch>` + strings.Join(Architectures, "|") + `)` +
			regexp.QuoteMeta(ArchiveSuffix) + `$`,
	)
}

var archivePattern = grammar(`[^/]+`)

// Parse splits filename into its components. It reports false for anything
// that is not a package archive.
func Parse(filename string) (Archive, bool) {
	m := archivePattern.FindStringSubmatch(filename)
	if m == nil {
		return Archive{}, false
	}
	return Archive{
		Filename: filename,
		Name:     m[archivePattern.SubexpIndex("name")],
		Version:  m[archivePattern.SubexpIndex("version")],
		Release:  m[archivePattern.SubexpIndex("release")],
		Arch:     m[archivePattern.SubexpIndex("arch")],
	}, true
}

// ExtractName returns the package name portion of an archive filename.
func ExtractName(filename string) (string, bool) {
	a, ok := Parse(filename)
	if !ok {
		return "", false
	}
	return a.Name, true
}

// IsArchive reports whether filename follows the archive grammar.
func IsArchive(filename string) bool {
	return archivePattern.MatchString(filename)
}
