package msca

import (
	"errors"
	"fmt"
)

// Sentinel errors for terminal resolution failures.
var (
	// ErrNoCandidate indicates wildcard selection found no usable version directory.
	ErrNoCandidate = errors.New("no installable version found")

	// ErrNotInstalled indicates the selected version is missing on disk after installation.
	ErrNotInstalled = errors.New("version was not found after installation")
)

// ResolveError carries the context of a failed resolution.
type ResolveError struct {
	Err       error  // ErrNoCandidate or ErrNotInstalled
	PackageID string // package being resolved
	Version   string // requested specifier
	Root      string // versions directory that was searched
}

func (e *ResolveError) Error() string {
	if errors.Is(e.Err, ErrNoCandidate) {
		return fmt.Sprintf("%s %s: %v in %s", e.PackageID, e.Version, e.Err, e.Root)
	}

	return fmt.Sprintf("%s v%s was not found after installation (searched %s)", e.PackageID, e.Version, e.Root)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}
