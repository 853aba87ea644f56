package hslf

import "unicode/utf16"

// fontEntitySize is the payload size of a FontEntityAtom.
const fontEntitySize = 68

// maxFontNameLen is the number of UTF-16 code units available for a face
// name, leaving room for the terminating NUL.
const maxFontNameLen = 31

// FontEntity represents font information, as stored in a FontEntityAtom.
type FontEntity struct {
	// Name is the font face name.
	Name string

	// CharSet is the Windows character set.
	CharSet uint8

	// Flags holds the embedding flags.
	Flags uint8

	// FontType is the font type (raster, device, TrueType).
	FontType uint8

	// PitchAndFamily is the Windows pitch and family byte.
	PitchAndFamily uint8
}

// DecodeFontEntity decodes the payload of a FontEntityAtom.
func DecodeFontEntity(data []byte) (FontEntity, error) {
	if len(data) < fontEntitySize {
		return FontEntity{}, newFormatError(TruncatedRecord, len(data), RT_FONT_ENTITY_ATOM,
			"font entity needs %d bytes, have %d", fontEntitySize, len(data))
	}

	// Face name: 32 UTF-16LE characters, NUL padded
	raw := data[:64]
	for i := 0; i+1 < len(raw); i += 2 {
		if raw[i] == 0 && raw[i+1] == 0 {
			raw = raw[:i]
			break
		}
	}
	name, err := DecodeTextChars(raw)
	if err != nil {
		return FontEntity{}, err
	}
	return FontEntity{
		Name:           name,
		CharSet:        data[64],
		Flags:          data[65],
		FontType:       data[66],
		PitchAndFamily: data[67],
	}, nil
}

// Encode returns the FontEntityAtom payload. Names longer than 31 UTF-16
// code units are truncated.
func (f FontEntity) Encode() []byte {
	units := utf16.Encode([]rune(f.Name))
	if len(units) > maxFontNameLen {
		units = units[:maxFontNameLen]
	}
	buf := make([]byte, fontEntitySize)
	name := EncodeTextChars(string(utf16.Decode(units)))
	copy(buf[:64], name)
	buf[64] = f.CharSet
	buf[65] = f.Flags
	buf[66] = f.FontType
	buf[67] = f.PitchAndFamily
	return buf
}

// FontCollection is the document's append-only registry of font faces.
// Character properties refer to fonts by their index in this registry.
type FontCollection struct {
	fonts []FontEntity
	index map[string]int

	// record is the FontCollection container the registry was loaded from;
	// fonts past persisted are appended to it on save.
	record    *Record
	persisted int
}

// NewFontCollection returns an empty registry.
func NewFontCollection() *FontCollection {
	return &FontCollection{index: make(map[string]int)}
}

func decodeFontCollection(rec *Record) (*FontCollection, error) {
	fc := NewFontCollection()
	fc.record = rec
	for _, c := range rec.FindChildren(RT_FONT_ENTITY_ATOM) {
		f, err := DecodeFontEntity(c.Data)
		if err != nil {
			return nil, err
		}
		fc.add(f)
	}
	fc.persisted = len(fc.fonts)
	return fc, nil
}

func (fc *FontCollection) add(f FontEntity) int {
	idx := len(fc.fonts)
	fc.fonts = append(fc.fonts, f)
	if _, seen := fc.index[f.Name]; !seen {
		fc.index[f.Name] = idx
	}
	return idx
}

// AddFont returns the index of the named font, appending it to the registry
// if it is not yet known. Names are matched exactly, including case.
func (fc *FontCollection) AddFont(name string) int {
	if idx, ok := fc.index[name]; ok {
		return idx
	}
	return fc.add(FontEntity{Name: name, FontType: 4, PitchAndFamily: 0x22})
}

// FontWithID returns the name of the font with the given index.
func (fc *FontCollection) FontWithID(idx int) (string, bool) {
	if idx < 0 || idx >= len(fc.fonts) {
		return "", false
	}
	return fc.fonts[idx].Name, true
}

// Font returns the full entry for the font with the given index.
func (fc *FontCollection) Font(idx int) (FontEntity, bool) {
	if idx < 0 || idx >= len(fc.fonts) {
		return FontEntity{}, false
	}
	return fc.fonts[idx], true
}

// Len returns the number of registered fonts.
func (fc *FontCollection) Len() int {
	return len(fc.fonts)
}

// Names returns the font names in index order.
func (fc *FontCollection) Names() []string {
	names := make([]string, len(fc.fonts))
	for i, f := range fc.fonts {
		names[i] = f.Name
	}
	return names
}

// sync appends FontEntityAtoms for fonts added since the registry was
// loaded. Existing atoms are never rewritten.
func (fc *FontCollection) sync() {
	if fc.record == nil {
		return
	}
	for i := fc.persisted; i < len(fc.fonts); i++ {
		fc.record.Children = append(fc.record.Children,
			NewAtom(RT_FONT_ENTITY_ATOM, uint16(i), fc.fonts[i].Encode()))
	}
	fc.persisted = len(fc.fonts)
}
