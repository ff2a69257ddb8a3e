package validate

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const maxSearchRunes = 120

// BoundSearchTerm trims a free-text search term and truncates absurdly long
// input instead of rejecting it; a short screen over the substring matcher.
func BoundSearchTerm(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= maxSearchRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxSearchRunes])
}

// ClampLimitOffset parses and clamps paging params. Out-of-range or
// non-numeric limits fall back to the default; negative offsets to zero.
func ClampLimitOffset(limitRaw, offsetRaw string, def, max int) (int, int) {
	limit := def
	if v, err := strconv.Atoi(strings.TrimSpace(limitRaw)); err == nil && v >= 1 && v <= max {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(strings.TrimSpace(offsetRaw)); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
