package hslf

import (
	"bytes"
	"testing"
)

func TestTextChars(t *testing.T) {
	s := "héllo Ω 😀"
	data := EncodeTextChars(s)
	if len(data) != 2*textLen(s) {
		t.Errorf("encoded %d bytes for %d code units", len(data), textLen(s))
	}
	got, err := DecodeTextChars(data)
	if err != nil || got != s {
		t.Errorf("DecodeTextChars = %q, %v, want %q", got, err, s)
	}
	if _, err := DecodeTextChars([]byte{'a', 0, 'b'}); err == nil {
		t.Errorf("odd length UTF-16 should fail")
	}
}

func TestTextBytes(t *testing.T) {
	tests := []struct {
		enc  string
		data []byte
		want string
	}{
		{"latin_1", []byte{'a', 0xE9}, "aé"},
		{"cp1252", []byte{0x80, 0x93}, "€“"},
		{"mac_roman", []byte{0x8E}, "é"},
	}
	for _, test := range tests {
		got, err := DecodeTextBytes(test.data, test.enc)
		if err != nil || got != test.want {
			t.Errorf("DecodeTextBytes(%x, %s) = %q, %v, want %q", test.data, test.enc, got, err, test.want)
		}
		back, err := EncodeTextBytes(got, test.enc)
		if err != nil || !bytes.Equal(back, test.data) {
			t.Errorf("EncodeTextBytes(%q, %s) = %x, %v", got, test.enc, back, err)
		}
	}
	if _, err := EncodeTextBytes("Ω", "latin_1"); err == nil {
		t.Errorf("EncodeTextBytes of a character outside latin_1 should fail")
	}
}

func TestTextHelpers(t *testing.T) {
	if n := textLen("a😀"); n != 3 {
		t.Errorf("textLen = %d, want 3", n)
	}
	if !fitsEightBit("naïve") || fitsEightBit("€") {
		t.Errorf("fitsEightBit")
	}
	tests := map[string]string{
		"a\r\nb": "a\vb",
		"a\rb":   "a\vb",
		"a\nb":   "a\vb",
		"a\vb":   "a\vb",
	}
	for in, want := range tests {
		if got := toInternalString(in); got != want {
			t.Errorf("toInternalString(%q) = %q, want %q", in, got, want)
		}
	}
}
