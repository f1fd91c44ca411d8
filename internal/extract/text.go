package extract

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DecodeText decodes bytes as UTF-8, falling back to Latin-1 with lossy
// substitution. Deliberately never fails: garbage in, best-effort text out.
func DecodeText(data []byte) string {
	return decodeCharset(data)
}

func decodeCharset(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	// Latin-1 maps every byte to a rune, so this cannot fail.
	decoded, _ := charmap.ISO8859_1.NewDecoder().Bytes(data)
	return string(decoded)
}
