// Package util holds small naming helpers shared by storage, rendering and logging.
package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// Digest returns the hex sha256 of s. Object keys use it so raw user ids never
// appear in storage paths.
func Digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// FileNamePart strips characters that are unsafe in a download filename. Runs of
// whitespace and path separators become one underscore and runs of dots one dot,
// so the result never contains a traversal segment.
func FileNamePart(raw string) string {
	var b strings.Builder
	pendingSep := false
	var last rune
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case unicode.IsSpace(r) || r == '/' || r == '\\':
			pendingSep = b.Len() > 0
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.' || r == '&' || r == '+':
			if pendingSep {
				b.WriteByte('_')
				pendingSep = false
				last = '_'
			}
			if r == '.' && last == '.' {
				continue
			}
			b.WriteRune(r)
			last = r
		}
	}
	return strings.Trim(b.String(), "._")
}

// ObjectName is FileNamePart with a fallback, for use as the last key segment.
func ObjectName(raw string) string {
	if s := FileNamePart(raw); s != "" {
		return s
	}
	return "file"
}
