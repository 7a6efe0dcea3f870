package msca

import "sort"

// SortVersions returns the valid version directory names from in, ordered by
// Compare. Invalid names are dropped, as are pre-release names unless
// includePre is set. SortNone keeps the input order.
func SortVersions(in []string, mode SortMode, includePre bool) []string {
	toks := parseAll(in, includePre, nil)

	if mode != SortNone && len(toks) > 1 {
		sort.SliceStable(toks, func(i, j int) bool {
			c := Compare(toks[i], toks[j])
			if mode == SortAsc {
				return c < 0
			}
			return c > 0 // SortDesc
		})
	}

	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Name
	}

	return out
}

// SortVersionsN sorts and then returns at most n items.
func SortVersionsN(in []string, mode SortMode, includePre bool, n int) []string {
	return capStrings(SortVersions(in, mode, includePre), n)
}
