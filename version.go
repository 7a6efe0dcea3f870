package msca

import (
	"strconv"
	"strings"
)

// Token is a parsed version directory name.
type Token struct {
	Name       string // original directory name
	PreRelease string // tag after the first '-', empty for stable versions
	Segments   []int  // dotted numeric components
}

// IsPreRelease reports whether the directory carried a "-tag" suffix.
func (t Token) IsPreRelease() bool {
	return t.PreRelease != ""
}

// String re-derives a directory name from the token.
// Segment order is preserved; zero padding and a trailing dot are not.
func (t Token) String() string {
	var b strings.Builder
	for i, s := range t.Segments {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(s))
	}

	if t.PreRelease != "" {
		b.WriteByte('-')
		b.WriteString(t.PreRelease)
	}

	return b.String()
}

// ParseDirectory parses a version directory name such as "1.2.3" or "2.0.0-beta1".
// Names that do not match the directory grammar are rejected with ok=false.
func ParseDirectory(name string) (Token, bool) {
	if name == "" || !dirRe.MatchString(name) {
		return Token{}, false
	}

	nums, tag, _ := strings.Cut(name, "-")

	parts := strings.Split(nums, ".")
	// "1.2." matches the grammar; the empty tail is not a segment
	if n := len(parts); n > 1 && parts[n-1] == "" {
		parts = parts[:n-1]
	}

	segs := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil { // overflow
			return Token{}, false
		}
		segs = append(segs, n)
	}

	return Token{Name: name, Segments: segs, PreRelease: tag}, true
}

// segment returns the i-th numeric component, 0 when absent.
func (t Token) segment(i int) int {
	if i < len(t.Segments) {
		return t.Segments[i]
	}

	return 0
}
