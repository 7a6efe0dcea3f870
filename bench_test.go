package msca

import (
	"math/rand"
	"strconv"
	"testing"
)

// Global sinks to avoid compiler eliminating results.
var (
	benchName   string
	benchResult []string
)

// makeDirs generates a directory listing the way a long-lived agent collects
// it: dotted versions of 2-4 parts, pre-releases, and NuGet leftovers.
func makeDirs(n int) []string {
	r := rand.New(rand.NewSource(1)) // deterministic
	out := make([]string, n)

	for i := 0; i < n; i++ {
		switch x := r.Intn(100); {
		case x < 70: // X.Y[.Z[.W]]
			parts := 2 + r.Intn(3)
			s := strconv.Itoa(r.Intn(5))
			for j := 1; j < parts; j++ {
				s += "." + strconv.Itoa(r.Intn(40))
			}

			// ~25% pre-release
			if r.Intn(100) < 25 {
				kind := []string{"alpha", "beta", "rc", "preview"}[r.Intn(4)]
				s += "-" + kind + strconv.Itoa(r.Intn(12))
			}
			out[i] = s

		case x < 85: // almost versions
			out[i] = []string{"v1.2.3", "1.2.3-beta.1", "1.2.3+build", "1..2", "1.2.3-rc-1"}[r.Intn(5)]

		default: // junk
			junks := []string{
				".nupkg.metadata", "tools", "lib", "content", "_rels",
				"package", "temp", "latest", "",
			}
			out[i] = junks[r.Intn(len(junks))]
		}
	}

	return out
}

func BenchmarkSelectLatest_Stable(b *testing.B) {
	b.ReportAllocs()
	dirs := makeDirs(50000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchName, _ = SelectLatest(dirs, false)
	}
}

func BenchmarkSelectLatest_PreRelease(b *testing.B) {
	b.ReportAllocs()
	dirs := makeDirs(50000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchName, _ = SelectLatest(dirs, true)
	}
}

func BenchmarkSortVersions_Desc(b *testing.B) {
	b.ReportAllocs()
	dirs := makeDirs(5000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchResult = SortVersions(dirs, SortDesc, true)
	}
}

func BenchmarkParseDirectory(b *testing.B) {
	b.ReportAllocs()
	dirs := makeDirs(1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ParseDirectory(dirs[i%len(dirs)])
	}
}
