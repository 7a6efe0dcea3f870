package msca

import "strings"

// Supersedes reports whether t is more recent than the current best.
//
// Numeric segments are compared left to right up to the longer of the two,
// missing segments count as 0. At equal numbers a stable version beats a
// pre-release one, and with includePre two pre-releases are ordered by plain
// string comparison of their tags. Equal versions never supersede each other,
// so an established best is kept.
func (t Token) Supersedes(best Token, includePre bool) bool {
	if c := compareSegments(t, best); c != 0 {
		return c > 0
	}

	switch {
	case !t.IsPreRelease() && best.IsPreRelease():
		return true

	case includePre && t.IsPreRelease() && best.IsPreRelease():
		return t.PreRelease > best.PreRelease

	default:
		return false
	}
}

// Compare is a total order over tokens: numbers first, then stable above
// pre-release, then pre-release tags lexicographically.
// Returns -1, 0 or +1.
func Compare(a, b Token) int {
	if c := compareSegments(a, b); c != 0 {
		return c
	}

	switch {
	case a.IsPreRelease() == b.IsPreRelease():
		return strings.Compare(a.PreRelease, b.PreRelease)
	case a.IsPreRelease():
		return -1
	default:
		return 1
	}
}

func compareSegments(a, b Token) int {
	n := max(len(a.Segments), len(b.Segments))
	for i := 0; i < n; i++ {
		x, y := a.segment(i), b.segment(i)
		if x > y {
			return 1
		}
		if x < y {
			return -1
		}
	}

	return 0
}
