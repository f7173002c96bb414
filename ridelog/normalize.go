package ridelog

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NameKey folds a driver name for comparison: trim, lowercase, canonical
// Unicode decomposition. Both sides of every name comparison go through it.
func NameKey(s string) string {
	return norm.NFKD.String(strings.ToLower(strings.TrimSpace(s)))
}
