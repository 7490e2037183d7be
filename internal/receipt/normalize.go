package receipt

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Matches ASCII whitespace plus unicode space separators (&nbsp; shows
// up a lot in the receipt markup).
var reWhitespace = regexp.MustCompile(`[\s\p{Zs}]+`)

// Code-point ranges treated as emoji by CleanText.
var emojiRanges = [...][2]rune{
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F300, 0x1F5FF}, // symbols & pictographs
	{0x1F680, 0x1F6FF}, // transport & map symbols
	{0x1F1E0, 0x1F1FF}, // regional indicators (flags)
	{0x2702, 0x27B0},   // dingbats
	{0x24C2, 0x1F251},  // enclosed characters
}

func isEmoji(r rune) bool {
	for _, rng := range emojiRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}

// CleanText applies NFC composition, optionally strips emoji, and
// collapses every whitespace run to a single space. It never fails:
// invalid UTF-8 is re-encoded best-effort with undecodable bytes
// dropped. Empty input comes back unchanged, and the function is
// idempotent.
func CleanText(text string, removeEmojis bool) string {
	if text == "" {
		return text
	}
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	text = norm.NFC.String(text)
	if removeEmojis {
		text = strings.Map(func(r rune) rune {
			if isEmoji(r) {
				return -1
			}
			return r
		}, text)
	}
	text = reWhitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
