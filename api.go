package msca

import "context"

// Install resolves opt.Version with the dotnet fetcher.
// It is equivalent to NewResolver(opt, NewDotnetFetcher(opt)).Resolve(ctx).
func Install(ctx context.Context, opt Options) (Installation, error) {
	fetcher, err := NewDotnetFetcher(opt)
	if err != nil {
		return Installation{}, err
	}

	return NewResolver(opt, fetcher).Resolve(ctx)
}

// IsAlreadyInstalled reports whether the exact version spec of the default
// package is present under root. It never fetches and is always false for
// wildcards.
func IsAlreadyInstalled(spec, root string) bool {
	return NewResolver(Options{Root: root, Version: spec}, nil).IsInstalled(spec)
}

// Latest returns the most recent stable version directory name in names.
// Equivalent to SelectLatest(names, false).
func Latest(names []string) (string, bool) {
	return SelectLatest(names, false)
}
