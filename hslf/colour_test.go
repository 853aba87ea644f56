package hslf

import (
	"bytes"
	"errors"
	"image/color"
	"testing"
)

func TestColorStorage(t *testing.T) {
	c := color.RGBA{R: 10, G: 20, B: 30, A: 0xFF}
	v := ColorToStorage(c)
	if v != 0xFE1E140A {
		t.Errorf("ColorToStorage = 0x%X, want 0xFE1E140A", v)
	}
	if got := le32(uint32(v)); !bytes.Equal(got, []byte{10, 20, 30, 0xFE}) {
		t.Errorf("stored bytes = %v", got)
	}
	got, ok := ColorFromStorage(v, nil)
	if !ok || got != c {
		t.Errorf("ColorFromStorage = %v, %v, want %v", got, ok, c)
	}

	// Alpha is dropped.
	if v := ColorToStorage(color.NRGBA{R: 0xFF, A: 0x80}); uint32(v)&0x00FFFFFF == 0 {
		t.Errorf("translucent red stored as 0x%X", v)
	}
}

func TestColorFromScheme(t *testing.T) {
	scheme := defaultColorScheme
	scheme[1] = 0x0000FF

	tests := []struct {
		value  int64
		scheme *ColorScheme
		want   color.RGBA
		ok     bool
	}{
		{1 << 24, &scheme, color.RGBA{R: 0xFF, A: 0xFF}, true},
		{0, &scheme, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, true},
		{1 << 24, nil, color.RGBA{}, false},
		{0x10 << 24, &scheme, color.RGBA{}, false},
	}
	for _, test := range tests {
		got, ok := ColorFromStorage(test.value, test.scheme)
		if got != test.want || ok != test.ok {
			t.Errorf("ColorFromStorage(0x%X) = %v, %v, want %v, %v", test.value, got, ok, test.want, test.ok)
		}
	}
}

func TestColorSchemeCodec(t *testing.T) {
	data := defaultColorScheme.Encode()
	data[3] = 0xFE
	cs, err := DecodeColorScheme(data)
	if err != nil {
		t.Fatalf("DecodeColorScheme error: %v", err)
	}
	if *cs != defaultColorScheme {
		t.Errorf("DecodeColorScheme = %x, want %x", *cs, defaultColorScheme)
	}
	if _, err := DecodeColorScheme(data[:31]); !errors.Is(err, ErrTruncatedRecord) {
		t.Errorf("short scheme error = %v, want truncated record", err)
	}
}
