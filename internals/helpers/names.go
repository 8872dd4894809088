package helper

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName folds a free-text name for matching: diacritics stripped,
// lower-cased, whitespace collapsed. "  Grace  Chapel " and "grace chapel" match.
func NormalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range norm.NFD.String(strings.TrimSpace(s)) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// CleanName trims and collapses inner whitespace but keeps the original casing,
// used before persisting names that came from spreadsheets.
func CleanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeHeader maps "Church  Name", "church_name", "CHURCH-NAME" to "church name".
func NormalizeHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return NormalizeName(s)
}
