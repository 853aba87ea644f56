package hslf

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCollectionRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		table *PropertyTable
		data  []byte
		want  map[string]int64
	}{
		{
			name:  "paragraph",
			table: ParagraphProps,
			data:  concat(le16(1), le32(1<<0|1<<5), le16(0x0001, AlignRight)),
			want:  map[string]int64{PropParagraphFlags: 1, PropAlignment: AlignRight},
		},
		{
			name:  "character",
			table: CharacterProps,
			data:  concat(le32(1<<0|1<<5|1<<6|1<<7), le32(0x3), le16(24), le32(0xFE1E140A), le16(0xFFE2)),
			want: map[string]int64{
				PropCharFlags:   3,
				PropFontSize:    24,
				PropFontColor:   0xFE1E140A,
				PropSuperscript: -30,
			},
		},
		{
			name:  "empty",
			table: CharacterProps,
			data:  le32(0),
			want:  map[string]int64{},
		},
	}

	for _, test := range tests {
		pc, n, err := DecodeCollection(test.data, test.table, nil)
		if err != nil {
			t.Fatalf("%s: DecodeCollection error: %v", test.name, err)
		}
		if n != len(test.data) {
			t.Errorf("%s: consumed %d bytes, want %d", test.name, n, len(test.data))
		}
		got := make(map[string]int64)
		for _, v := range pc.Values() {
			got[v.Name] = v.Value
		}
		if d := cmp.Diff(test.want, got); d != "" {
			t.Errorf("%s: values mismatch (-want +got):\n%s", test.name, d)
		}
		if enc := pc.Encode(); !bytes.Equal(enc, test.data) {
			t.Errorf("%s: Encode = %x, want %x", test.name, enc, test.data)
		}
	}
}

func TestCollectionIndentLevel(t *testing.T) {
	pc, _, err := DecodeCollection(concat(le16(3), le32(0)), ParagraphProps, nil)
	if err != nil {
		t.Fatalf("DecodeCollection error: %v", err)
	}
	if pc.IndentLevel != 3 {
		t.Errorf("IndentLevel = %d, want 3", pc.IndentLevel)
	}
}

func TestCollectionInsertAscending(t *testing.T) {
	pc := NewPropertyCollection(CharacterKind)
	for _, s := range []struct {
		name  string
		value int64
	}{
		{PropFontSize, 24},
		{PropCharFlags, 1},
		{PropFontIndex, 3},
	} {
		if err := pc.Set(s.name, s.value); err != nil {
			t.Fatalf("Set(%s) error: %v", s.name, err)
		}
	}

	var bits []uint
	for _, v := range pc.Values() {
		bits = append(bits, v.Bit)
	}
	if d := cmp.Diff([]uint{0, 1, 5}, bits); d != "" {
		t.Errorf("entry order mismatch (-want +got):\n%s", d)
	}
	if pc.Mask != 0x23 {
		t.Errorf("Mask = 0x%X, want 0x23", pc.Mask)
	}
	want := concat(le32(0x23), le32(1), le16(3), le16(24))
	if got := pc.Encode(); !bytes.Equal(got, want) {
		t.Errorf("Encode = %x, want %x", got, want)
	}

	// Overwrite in place.
	if err := pc.Set(PropFontSize, 30); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if v, _ := pc.Find(PropFontSize); v != 30 || pc.Len() != 3 {
		t.Errorf("after overwrite: font.size = %d, Len = %d", v, pc.Len())
	}

	if !pc.Remove(PropFontIndex) {
		t.Errorf("Remove(font.index) = false")
	}
	if pc.Remove(PropFontIndex) {
		t.Errorf("second Remove(font.index) = true")
	}
	if pc.Mask != 0x21 {
		t.Errorf("Mask after Remove = 0x%X, want 0x21", pc.Mask)
	}
}

func TestCollectionSetErrors(t *testing.T) {
	pc := NewPropertyCollection(CharacterKind)
	if err := pc.Set(PropAlignment, 1); err == nil {
		t.Errorf("Set of a paragraph property on a character collection should fail")
	}
	if err := pc.SetFlag(PropFontSize, 0, true, 0); err == nil {
		t.Errorf("SetFlag on a non-flags property should fail")
	}
	if err := pc.SetFlag(PropCharFlags, 32, true, 0); err == nil {
		t.Errorf("SetFlag with an out of range sub-flag should fail")
	}
}

func TestCollectionSignedValues(t *testing.T) {
	pc := NewPropertyCollection(CharacterKind)
	if err := pc.Set(PropSuperscript, -20); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if got := pc.Encode(); !bytes.Equal(got, concat(le32(1<<7), le16(0xFFEC))) {
		t.Errorf("Encode = %x", got)
	}
	if err := pc.Set(PropSuperscript, 0xFFFF); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if v, _ := pc.Find(PropSuperscript); v != -1 {
		t.Errorf("superscript stored as %d, want -1", v)
	}
}

func TestCollectionUnknownBit(t *testing.T) {
	data := concat(le32(1<<0|1<<20), le32(1), []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02})
	var logbuf bytes.Buffer

	pc, n, err := DecodeCollection(data, CharacterProps, bufferLogger(&logbuf))
	if err != nil {
		t.Fatalf("DecodeCollection error: %v", err)
	}
	if n != len(data) {
		t.Errorf("consumed %d bytes, want %d", n, len(data))
	}
	if !pc.HasUnknown() {
		t.Errorf("HasUnknown = false")
	}
	if v, ok := pc.Find(PropCharFlags); !ok || v != 1 {
		t.Errorf("char_flags = %d, %v", v, ok)
	}
	if got := pc.Encode(); !bytes.Equal(got, data) {
		t.Errorf("Encode = %x, want %x", got, data)
	}
	if !strings.Contains(logbuf.String(), "diagnostic="+DiagUnrecognizedProperty) {
		t.Errorf("no diagnostic logged, got: %s", logbuf.String())
	}

	clean := pc.withoutUnknown()
	if clean.HasUnknown() || clean.Mask != 1 {
		t.Errorf("withoutUnknown: HasUnknown = %v, Mask = 0x%X", clean.HasUnknown(), clean.Mask)
	}
}

func TestCollectionTruncated(t *testing.T) {
	tests := []struct {
		name  string
		table *PropertyTable
		data  []byte
	}{
		{"missing indent", ParagraphProps, []byte{1}},
		{"missing mask", CharacterProps, []byte{1, 0}},
		{"short value", CharacterProps, concat(le32(1<<5), []byte{18})},
	}
	for _, test := range tests {
		_, _, err := DecodeCollection(test.data, test.table, nil)
		if !errors.Is(err, ErrTruncatedRecord) {
			t.Errorf("%s: error = %v, want truncated record", test.name, err)
		}
	}
}

func TestSetFlagIndependence(t *testing.T) {
	flags := []uint{BoldIdx, ItalicIdx, UnderlineIdx, ShadowIdx, ReliefIdx, StrikethroughIdx}
	pc := NewPropertyCollection(CharacterKind)

	check := func(step string, want map[uint]bool) {
		t.Helper()
		for _, sub := range flags {
			got, _ := pc.Flag(PropCharFlags, sub)
			if got != want[sub] {
				t.Errorf("%s: sub-flag %d = %v, want %v", step, sub, got, want[sub])
			}
		}
	}

	want := make(map[uint]bool)
	for _, sub := range flags {
		if err := pc.SetFlag(PropCharFlags, sub, true, 0); err != nil {
			t.Fatalf("SetFlag(%d) error: %v", sub, err)
		}
		want[sub] = true
		check("set", want)
	}
	for _, sub := range flags {
		if err := pc.SetFlag(PropCharFlags, sub, false, 0); err != nil {
			t.Fatalf("SetFlag(%d) error: %v", sub, err)
		}
		want[sub] = false
		check("clear", want)

		// Turning it back on touches no other sub-flag.
		_ = pc.SetFlag(PropCharFlags, sub, true, 0)
		want[sub] = true
		check("set again", want)
		_ = pc.SetFlag(PropCharFlags, sub, false, 0)
		want[sub] = false
	}
	if v, _ := pc.Find(PropCharFlags); v != 0 {
		t.Errorf("char_flags = 0x%X after clearing all, want 0", v)
	}
}

func TestSetFlagSeedsFromInherited(t *testing.T) {
	pc := NewPropertyCollection(CharacterKind)
	if _, ok := pc.Flag(PropCharFlags, BoldIdx); ok {
		t.Errorf("Flag on an empty collection reported the property present")
	}
	inherited := int64(1<<ItalicIdx | 1<<UnderlineIdx)
	if err := pc.SetFlag(PropCharFlags, BoldIdx, true, inherited); err != nil {
		t.Fatalf("SetFlag error: %v", err)
	}
	if v, _ := pc.Find(PropCharFlags); v != inherited|1<<BoldIdx {
		t.Errorf("char_flags = 0x%X, want 0x%X", v, inherited|1<<BoldIdx)
	}
}

func TestCollectionCloneAndEqual(t *testing.T) {
	pc := NewPropertyCollection(CharacterKind)
	_ = pc.Set(PropFontSize, 12)
	pc.CharactersCovered = 4

	c := pc.Clone()
	c.CharactersCovered = 9
	if !pc.Equal(c) {
		t.Errorf("clone should equal the original, ignoring CharactersCovered")
	}
	_ = c.Set(PropFontSize, 14)
	if pc.Equal(c) {
		t.Errorf("modified clone should differ")
	}
	if v, _ := pc.Find(PropFontSize); v != 12 {
		t.Errorf("modifying the clone changed the original")
	}
}

func TestCollectionMerge(t *testing.T) {
	run := NewPropertyCollection(CharacterKind)
	_ = run.Set(PropFontSize, 10)
	para := NewPropertyCollection(CharacterKind)
	_ = para.Set(PropFontSize, 20)
	_ = para.Set(PropFontIndex, 2)

	run.merge(para)
	if v, _ := run.Find(PropFontSize); v != 10 {
		t.Errorf("merge overwrote font.size: %d", v)
	}
	if v, ok := run.Find(PropFontIndex); !ok || v != 2 {
		t.Errorf("merge did not add font.index")
	}
}
