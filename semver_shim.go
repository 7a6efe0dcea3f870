package msca

import sv "github.com/woozymasta/semver"

// canonicalSemver returns "vMAJOR.MINOR.PATCH[-PRERELEASE]" for version
// directory names that are also valid SemVer, and "" for the rest
// (four-part NuGet versions and the like).
func canonicalSemver(name string) string {
	v, ok := sv.Parse(name)
	if !ok || !v.IsValid() {
		return ""
	}

	return v.Canonical()
}
