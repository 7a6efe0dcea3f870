package msca

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Source tells how an installation was obtained.
type Source string

const (
	SourceCache    Source = "cache"    // already on disk, nothing fetched
	SourceFetch    Source = "fetch"    // verified after a fetch
	SourceOverride Source = "override" // taken from MSCA_FILEPATH / MSCA_DIRECTORY
)

// Installation is a resolved tool installation.
type Installation struct {
	Version    string // selected version directory name, empty for overrides
	SemVer     string // canonical SemVer form of Version when it has one
	PackageDir string // <versions>/<version>
	Directory  string // directory holding the executable
	FilePath   string // executable path
	Source     Source
}

// Resolver finds or installs a package version under a versions root.
// One Resolver must not be used for concurrent resolutions against the same root.
type Resolver struct {
	fetcher Fetcher
	log     *log.Entry
	opt     Options
}

// NewResolver returns a Resolver for opt that installs missing versions with fetcher.
func NewResolver(opt Options, fetcher Fetcher) *Resolver {
	opt = opt.normalized()

	return &Resolver{
		opt:     opt,
		fetcher: fetcher,
		log:     opt.Logger.WithField("package", opt.PackageID),
	}
}

// Options returns the normalized options the resolver runs with.
func (r *Resolver) Options() Options {
	return r.opt
}

// PackagesDir is the restore target: <root>/versions.
func (r *Resolver) PackagesDir() string {
	return filepath.Join(r.opt.Root, "versions")
}

// VersionsDir holds one directory per installed version of the package.
// NuGet lays packages out under their lowercased id.
func (r *Resolver) VersionsDir() string {
	return filepath.Join(r.PackagesDir(), strings.ToLower(r.opt.PackageID))
}

// installation computes the expected paths for a concrete version.
func (r *Resolver) installation(version string, src Source) Installation {
	pkg := filepath.Join(r.VersionsDir(), version)
	dir := filepath.Join(pkg, r.opt.ToolsDir)

	return Installation{
		Version:    version,
		SemVer:     canonicalSemver(version),
		PackageDir: pkg,
		Directory:  dir,
		FilePath:   filepath.Join(dir, r.opt.Executable),
		Source:     src,
	}
}

// IsInstalled reports whether an exact version is already on disk.
// Wildcards are never considered installed.
func (r *Resolver) IsInstalled(spec string) bool {
	if IsWildcard(spec) {
		r.log.Debugf("version %q contains a latest quantifier, continuing with install", spec)
		return false
	}

	inst := r.installation(strings.TrimSpace(spec), SourceCache)
	r.log.Debugf("checking %s", inst.Directory)

	return isDir(inst.Directory)
}

// Installed lists the version directories currently on disk, newest first.
// Pre-release directories are included when the channel allows them.
func (r *Resolver) Installed() ([]string, error) {
	names, err := listDirs(r.VersionsDir())
	if err != nil {
		return nil, err
	}

	return SortVersions(names, SortDesc, r.opt.Channel == ChannelPreRelease), nil
}

// Resolve returns the installation for the configured version, fetching it
// when needed.
//
// Overrides short-circuit everything. An exact version already on disk is
// returned without fetching. Otherwise the fetcher runs up to Attempts times;
// failures are logged and absorbed, and the outcome is judged by what is on
// disk afterwards: ErrNoCandidate when a wildcard finds nothing,
// ErrNotInstalled when the selected version directory is missing.
func (r *Resolver) Resolve(ctx context.Context) (Installation, error) {
	if inst, ok := fromOverrides(r.opt); ok {
		r.log.WithField("path", inst.FilePath).Info("tool path overridden")
		return inst, nil
	}

	spec := r.opt.Version
	wildcard := IsWildcard(spec)

	// CHECK_CACHE
	if !wildcard && r.IsInstalled(spec) {
		inst := r.installation(spec, SourceCache)
		r.log.WithField("version", spec).Info("already installed")
		return inst, nil
	}

	// FETCH
	if err := r.fetch(ctx, spec); err != nil {
		return Installation{}, err
	}

	// SELECT
	version := spec
	if wildcard {
		var err error
		if version, err = r.selectLatest(); err != nil {
			return Installation{}, err
		}
	}

	// VERIFY
	inst := r.installation(version, SourceFetch)
	if !isDir(inst.Directory) {
		return Installation{}, &ResolveError{
			Err:       ErrNotInstalled,
			PackageID: r.opt.PackageID,
			Version:   spec,
			Root:      r.VersionsDir(),
		}
	}

	r.log.WithFields(log.Fields{"version": version, "path": inst.FilePath}).Info("installed")

	return inst, nil
}

// fetch prepares the packages directory and runs the fetcher with retries.
// Only setup and cancellation errors are returned; fetch failures are not.
func (r *Resolver) fetch(ctx context.Context, spec string) error {
	if err := os.MkdirAll(r.PackagesDir(), 0o755); err != nil {
		return errors.Wrapf(err, "creating packages dir %s", r.PackagesDir())
	}

	if r.fetcher == nil {
		r.log.Warn("no fetcher configured, skipping install")
		return nil
	}

	req := FetchRequest{
		PackageID:   r.opt.PackageID,
		Version:     spec,
		PackagesDir: r.PackagesDir(),
		Source:      r.opt.Source,
	}

	r.log.WithField("version", spec).Info("installing")

	err := retry(ctx, r.opt.Attempts, r.opt.RetryDelay,
		func(attempt int, err error) {
			r.log.WithFields(log.Fields{
				"attempt": attempt,
				"of":      r.opt.Attempts,
			}).WithError(err).Warn("fetch failed")
		},
		func() error { return r.fetcher.Fetch(ctx, req) },
	)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil {
		r.log.WithError(err).Warnf("fetch failed after %d attempts, checking disk", r.opt.Attempts)
	}

	return nil
}

// selectLatest picks the most recent version directory on disk.
func (r *Resolver) selectLatest() (string, error) {
	dir := r.VersionsDir()
	r.log.Debugf("searching for all version folders in %s", dir)

	names, err := listDirs(dir)
	if err != nil {
		return "", err
	}

	skip := func(name, reason string) {
		r.log.Debugf("skipping %s: %s", reason, name)
	}

	version, ok := selectLatest(names, r.opt.Channel == ChannelPreRelease, skip)
	if !ok {
		return "", &ResolveError{
			Err:       ErrNoCandidate,
			PackageID: r.opt.PackageID,
			Version:   r.opt.Version,
			Root:      dir,
		}
	}

	r.log.Debugf("latest version directory: %s", version)

	return version, nil
}

// listDirs returns the names of subdirectories of dir, sorted by name.
// A missing dir is an empty listing.
func listDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "listing %s", dir)
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}

	return out, nil
}
