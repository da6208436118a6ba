// Package g9 parses the text exports written by the g9 absolute-gravimeter
// acquisition software: the per-survey project summary (*.project.txt) and
// the per-set drop-reduction table (*.set.txt). The parsers are deliberately
// tolerant; field instruments produce files with inconsistent encodings,
// shifted headers and locale decimal commas, and an import must never fail
// outright because of them.
package g9

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// legacyEncodings are tried, in order, for input that is not valid UTF-8.
// The order matches the encodings g9 installations have been seen to
// produce: UTF-16 (with and without BOM) from newer Windows versions,
// then Windows-1252 and Latin-1 from older ones.
var legacyEncodings = []encoding.Encoding{
	unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	charmap.Windows1252,
	charmap.ISO8859_1,
}

// DecodeText converts a raw export file to a string. It tries UTF-8 first,
// then the legacy encodings above, and as a last resort decodes as UTF-8
// with replacement runes. It always returns a string; there is no error
// path for any byte input.
func DecodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	for _, enc := range legacyEncodings {
		if text, ok := tryDecode(enc, data); ok {
			return text
		}
	}
	return string(bytes.ToValidUTF8(data, []byte(string(utf8.RuneError))))
}

// tryDecode attempts a strict decode. A candidate is rejected when the
// decoder errors or when it had to substitute replacement runes, which is
// how x/text decoders signal unmappable input bytes.
func tryDecode(enc encoding.Encoding, data []byte) (string, bool) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	if !utf8.Valid(out) || bytes.ContainsRune(out, utf8.RuneError) {
		return "", false
	}
	return string(out), true
}
