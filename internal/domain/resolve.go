package domain

import (
	"regexp"
	"strings"
)

// clauseSepRe splits dual-terminal posts into clauses.
var clauseSepRe = regexp.MustCompile(`-|,`)

// ResolveHours returns the wait for terminal described by a normalized post.
//
// Posts that do not name terminal yield nil. Posts that name only terminal are
// parsed whole. Posts that also name other are split into clauses; a clause
// belongs to terminal when it contains the canonical name or an alternate from
// alt. The last owning clause supplies the primary value and the last
// non-owning clause the backup, each overwriting the previous one even when
// the later clause has no number. The backup is used only when the primary
// is nil.
func ResolveHours(text, terminal, other string, alt AltNameTable) *float64 {
	if terminal == "" || !strings.Contains(text, terminal) {
		return nil
	}
	if other == "" || !strings.Contains(text, other) {
		return ParseHours(text)
	}

	var primary, backup *float64
	for _, clause := range clauseSepRe.Split(text, -1) {
		if mentions(clause, terminal, alt[terminal]) {
			primary = ParseHours(clause)
		} else {
			backup = ParseHours(clause)
		}
	}
	if primary == nil {
		return backup
	}
	return primary
}

// mentions reports whether clause contains name or any of its alternates.
func mentions(clause, name string, alternates []string) bool {
	if strings.Contains(clause, name) {
		return true
	}
	for _, a := range alternates {
		if strings.Contains(clause, a) {
			return true
		}
	}
	return false
}
