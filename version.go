// Package vellum holds build metadata shared by tools embedding the
// compiler libraries.
package vellum

// Build-time variables injected via linker flags (ldflags).
//
// Development builds keep the defaults. Release builds run:
//
//	go build -ldflags "-X github.com/vellumlang/vellum.Version=$(git describe --tags) ..."
//
// The -X flag overwrites these string variables at link time.
// See: https://pkg.go.dev/cmd/link (-X importpath.name=value)
var (
	Version   = "dev"     // Overwritten with git tag (e.g., "v0.3.0")
	Commit    = "unknown" // Overwritten with git commit hash
	BuildDate = "unknown" // Overwritten with build timestamp
)
