package msca

// skipFunc receives names dropped while parsing a directory listing.
type skipFunc func(name, reason string)

// * parsing & gating

// parseAll parses every candidate name and drops invalid ones.
// Without includePre, pre-release directories are dropped as well.
func parseAll(names []string, includePre bool, skip skipFunc) []Token {
	out := make([]Token, 0, len(names))
	for _, name := range names {
		t, ok := ParseDirectory(name)
		if !ok {
			if skip != nil {
				skip(name, "invalid version directory")
			}
			continue
		}

		if !includePre && t.IsPreRelease() {
			if skip != nil {
				skip(name, "pre-release version directory")
			}
			continue
		}

		out = append(out, t)
	}

	return out
}

// * reduction

// latest reduces tokens to the single most recent one.
// The first of several equal tokens wins.
func latest(in []Token, includePre bool) (Token, bool) {
	if len(in) == 0 {
		return Token{}, false
	}

	best := in[0]
	for _, t := range in[1:] {
		if t.Supersedes(best, includePre) {
			best = t
		}
	}

	return best, true
}

// SelectLatest returns the name of the most recent version directory among
// names. Names that are not version directories are ignored, and unless
// includePre is set so are pre-release directories. ok is false when no
// candidate survives filtering.
func SelectLatest(names []string, includePre bool) (string, bool) {
	return selectLatest(names, includePre, nil)
}

func selectLatest(names []string, includePre bool, skip skipFunc) (string, bool) {
	best, ok := latest(parseAll(names, includePre, skip), includePre)
	if !ok {
		return "", false
	}

	return best.Name, true
}
