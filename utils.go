package msca

import (
	"os"
	"strings"
)

// toTok normalizes a free-form string into a lowercased token.
func toTok(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// capStrings returns out[:min(limit, len(out))] if limit>0; otherwise out.
func capStrings(out []string, limit int) []string {
	if limit > 0 && limit < len(out) {
		return out[:limit]
	}

	return out
}

// isDir reports whether path exists and is a directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
