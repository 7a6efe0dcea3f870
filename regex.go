package msca

import "regexp"

var (
	// Version directory names: 1-6 numeric groups, optional single "-tag".
	// Kept bit-exact with trees written by earlier installers.
	dirRe = regexp.MustCompile(`^(\d+\.?){1,6}(-\w+)?$`)

	// NuGet package ids as they may appear in a generated project file.
	packageIDRe = regexp.MustCompile(`^[A-Za-z0-9_]+(?:[.-][A-Za-z0-9_]+)*$`)
)
