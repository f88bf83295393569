// Package version exposes the build-time version string.
package version

// version is injected at build time via -ldflags.
var version = "v0.0.0"

// Value returns the version the binary was built with.
func Value() string {
	return version
}
