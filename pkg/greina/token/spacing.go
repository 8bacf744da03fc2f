package token

import "strings"

// Punctuation that attaches to the preceding token (no space before).
// Includes “ since quotations close with it („…“).
const leftHug = ".,:;!?%)]}»”“’…"

// Punctuation that attaches to the following token (no space after).
const rightHug = "([{«„“‘"

// CorrectSpacing rejoins space-separated tokens with conventional
// punctuation spacing and normalizes free-standing hyphens to en dashes.
func CorrectSpacing(text string) string {
	fields := strings.Fields(text)
	var b strings.Builder
	hugNext := false
	for i, f := range fields {
		if f == "-" || f == "--" {
			// A free-standing hyphen is typographically an en dash.
			f = "–"
		}
		switch {
		case i == 0:
		case hugNext:
		case isLeftHug(f):
		default:
			b.WriteByte(' ')
		}
		b.WriteString(f)
		hugNext = len(f) > 0 && strings.ContainsRune(rightHug, []rune(f)[len([]rune(f))-1])
	}
	return b.String()
}

// isLeftHug reports whether the token consists only of punctuation that
// binds to the preceding token.
func isLeftHug(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune(leftHug, r) {
			return false
		}
	}
	return len(s) > 0
}
