// Package build provides version and build information for changelog.
// This package intentionally has no dependencies on other internal packages
// to avoid import cycles.
package build

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

const (
	// BinaryName is the name printed in help and version banners.
	BinaryName = "changelog"
	// Authors is printed below the version line of the help banner.
	Authors = "Ariel Frischer"
	// Description is the one-line summary of the tool.
	Description = "Generates a CHANGELOG.md from Conventional Commits between semantic version tags"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}
