package catalog

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// transform.Chain carries per-call buffers, so a single chain instance must
// not be shared across goroutines. Fold runs on every filter and suggest
// request, so the chains are pooled instead of rebuilt per call.
var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	},
}

// Fold lowercases and strips combining marks so that "Café" matches "cafe".
// Safe for concurrent use.
func Fold(s string) string {
	t := foldPool.Get().(transform.Transformer)
	out, _, err := transform.String(t, s)
	foldPool.Put(t)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// foldContains reports whether needle occurs in haystack, case- and
// accent-insensitively. An empty needle always matches.
func foldContains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(Fold(haystack), Fold(needle))
}
