package scanner

import (
	"strings"

	"github.com/vvka-141/fcount/pkg/fcount"
)

// MatchesName reports whether name contains pattern as a literal,
// case-sensitive substring. The default pattern "*" and the empty pattern
// match every name; "*" is not a wildcard anywhere else.
func MatchesName(name, pattern string) bool {
	if pattern == "" || pattern == fcount.DefaultPattern {
		return true
	}
	return strings.Contains(name, pattern)
}
