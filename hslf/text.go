package hslf

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func eightBitEncoding(name string) encoding.Encoding {
	switch name {
	case "cp1252":
		return charmap.Windows1252
	case "mac_roman":
		return charmap.Macintosh
	}
	return charmap.ISO8859_1
}

// DecodeTextChars decodes the payload of a TextCharsAtom (UTF-16LE).
func DecodeTextChars(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", fmt.Errorf("invalid UTF-16 text length %d", len(data))
	}
	res, err := utf16le.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode UTF-16 text: %v", err)
	}
	return string(res), nil
}

// EncodeTextChars encodes s as the payload of a TextCharsAtom.
func EncodeTextChars(s string) []byte {
	res, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		// invalid UTF-8 is replaced, so this cannot happen
		panic(err)
	}
	return res
}

// DecodeTextBytes decodes the payload of a TextBytesAtom, using the given
// 8-bit encoding name ("latin_1", "cp1252" or "mac_roman").
func DecodeTextBytes(data []byte, enc string) (string, error) {
	res, err := eightBitEncoding(enc).NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s text: %v", enc, err)
	}
	return string(res), nil
}

// EncodeTextBytes encodes s as the payload of a TextBytesAtom.
// It fails if s contains characters outside the 8-bit encoding.
func EncodeTextBytes(s string, enc string) ([]byte, error) {
	res, err := eightBitEncoding(enc).NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s text: %v", enc, err)
	}
	return res, nil
}

// fitsEightBit reports whether every character of s is below U+0100.
func fitsEightBit(s string) bool {
	for _, c := range s {
		if c > 0xFF {
			return false
		}
	}
	return true
}

// textLen returns the length of s in UTF-16 code units, which is the unit
// used for character counts in style atoms.
func textLen(s string) int {
	n := 0
	for _, c := range s {
		n += utf16.RuneLen(c)
	}
	return n
}

// toInternalString converts user supplied run text to storage form.
// Paragraph breaks are implied by the paragraph structure, so line breaks
// inside a run become vertical tabs (soft line breaks).
func toInternalString(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\v")
	return strings.NewReplacer("\r", "\v", "\n", "\v").Replace(s)
}
