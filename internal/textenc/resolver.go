// Package textenc decodes raw markdown bytes of unknown encoding.
package textenc

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Decode converts raw file bytes into text, trying encodings in priority
// order: strict UTF-8, Windows-1252, ISO-8859-1. The terminal fallback is a
// lossy UTF-8 decode that substitutes invalid sequences, so Decode always
// produces some text. Markdown files authored on Windows tooling frequently
// carry extended-ASCII punctuation; refusing to open them is worse than an
// imperfect decode.
func Decode(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	if s, ok := decodeCharmap(charmap.Windows1252, raw); ok {
		return s
	}
	if s, ok := decodeCharmap(charmap.ISO8859_1, raw); ok {
		return s
	}
	return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
}

// decodeCharmap performs a strict single-byte decode. The charmap decoders
// substitute undefined bytes instead of failing, so a substitution rune in
// the output counts as a failed strict decode.
func decodeCharmap(cm *charmap.Charmap, raw []byte) (string, bool) {
	out, err := cm.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false
	}
	s := string(out)
	if strings.ContainsRune(s, utf8.RuneError) {
		return "", false
	}
	return s, true
}
