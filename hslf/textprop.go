package hslf

import "fmt"

// PropertyKind says whether a property collection styles a paragraph or a
// run of characters.
type PropertyKind int

const (
	ParagraphKind PropertyKind = iota
	CharacterKind
)

func (k PropertyKind) String() string {
	if k == ParagraphKind {
		return "paragraph"
	}
	return "character"
}

// PropertyDefinition describes one entry of a property table.
type PropertyDefinition struct {
	// Name is the name used by the accessors, e.g. "font.size".
	Name string

	// Bit is the index of the bit which marks the property as present in
	// the collection bitmask.
	Bit uint

	// Width is the number of bytes of the stored value: 1, 2 or 4.
	Width int

	// Flags is set for properties whose value packs independent boolean
	// sub-flags, addressed by sub-bit index.
	Flags bool

	// Signed is set for values which are sign extended when decoded.
	Signed bool

	// Default is the built-in value used when no level of the cascade
	// defines the property.
	Default int64
}

// PropertyTable is the ordered list of definitions for one kind.
type PropertyTable struct {
	Kind  PropertyKind
	Props []PropertyDefinition

	byName map[string]*PropertyDefinition
	byBit  map[uint]*PropertyDefinition
}

func newPropertyTable(kind PropertyKind, props []PropertyDefinition) *PropertyTable {
	t := &PropertyTable{
		Kind:   kind,
		Props:  props,
		byName: make(map[string]*PropertyDefinition, len(props)),
		byBit:  make(map[uint]*PropertyDefinition, len(props)),
	}
	for i := range t.Props {
		def := &t.Props[i]
		if def.Bit > 31 {
			panic(fmt.Sprintf("property %s: bit %d out of range", def.Name, def.Bit))
		}
		t.byName[def.Name] = def
		t.byBit[def.Bit] = def
	}
	return t
}

// Lookup returns the definition with the given name.
func (t *PropertyTable) Lookup(name string) (*PropertyDefinition, bool) {
	def, ok := t.byName[name]
	return def, ok
}

// ByBit returns the definition for the given bitmask bit.
func (t *PropertyTable) ByBit(bit uint) (*PropertyDefinition, bool) {
	def, ok := t.byBit[bit]
	return def, ok
}

// Property names.
const (
	PropParagraphFlags = "paragraph_flags"
	PropBulletChar     = "bullet.char"
	PropBulletFont     = "bullet.font"
	PropBulletSize     = "bullet.size"
	PropBulletColor    = "bullet.color"
	PropAlignment      = "alignment"
	PropLineSpacing    = "linespacing"
	PropSpaceBefore    = "spacebefore"
	PropSpaceAfter     = "spaceafter"
	PropTextOffset     = "text.offset"
	PropBulletOffset   = "bullet.offset"
	PropDefaultTab     = "defaulttab"
	PropFontAlign      = "fontAlign"
	PropWrapFlags      = "wrapFlags"
	PropTextDirection  = "textDirection"

	PropCharFlags       = "char_flags"
	PropFontIndex       = "font.index"
	PropAsianFontIndex  = "asian.font.index"
	PropAnsiFontIndex   = "ansi.font.index"
	PropSymbolFontIndex = "symbol.font.index"
	PropFontSize        = "font.size"
	PropFontColor       = "font.color"
	PropSuperscript     = "superscript"
	PropCharUnknown1    = "char_unknown_1"
	PropLanguage        = "lang"
)

// Sub-flags of the char_flags property.
const (
	BoldIdx             = 0
	ItalicIdx           = 1
	UnderlineIdx        = 2
	ShadowIdx           = 4
	FEHintIdx           = 5
	KumiIdx             = 7
	StrikethroughIdx    = 8
	ReliefIdx           = 9
	ResetNumberingIdx   = 10
	EnableNumbering1Idx = 11
	EnableNumbering2Idx = 12
)

// Sub-flags of the paragraph_flags property.
const (
	BulletIdx          = 0
	BulletHardFontIdx  = 1
	BulletHardColorIdx = 2
	BulletHardSizeIdx  = 3
)

// Text alignment values of the alignment property.
const (
	AlignLeft    = 0
	AlignCenter  = 1
	AlignRight   = 2
	AlignJustify = 3
)

// ParagraphProps is the property table for paragraph collections.
var ParagraphProps = newPropertyTable(ParagraphKind, []PropertyDefinition{
	{Name: PropParagraphFlags, Bit: 0, Width: 2, Flags: true},
	{Name: PropBulletChar, Bit: 1, Width: 2, Default: 0x2022},
	{Name: PropBulletFont, Bit: 2, Width: 2},
	{Name: PropBulletSize, Bit: 3, Width: 2, Signed: true, Default: 100},
	{Name: PropBulletColor, Bit: 4, Width: 4, Default: 0xFE000000},
	{Name: PropAlignment, Bit: 5, Width: 2, Default: AlignLeft},
	{Name: PropLineSpacing, Bit: 6, Width: 2, Signed: true, Default: 100},
	{Name: PropSpaceBefore, Bit: 7, Width: 2, Signed: true},
	{Name: PropSpaceAfter, Bit: 8, Width: 2, Signed: true},
	{Name: PropTextOffset, Bit: 9, Width: 2},
	{Name: PropBulletOffset, Bit: 10, Width: 2},
	{Name: PropDefaultTab, Bit: 11, Width: 2, Default: 576},
	{Name: PropFontAlign, Bit: 12, Width: 2},
	{Name: PropWrapFlags, Bit: 13, Width: 2, Flags: true},
	{Name: PropTextDirection, Bit: 14, Width: 2},
})

// CharacterProps is the property table for character collections.
var CharacterProps = newPropertyTable(CharacterKind, []PropertyDefinition{
	{Name: PropCharFlags, Bit: 0, Width: 4, Flags: true},
	{Name: PropFontIndex, Bit: 1, Width: 2},
	{Name: PropAsianFontIndex, Bit: 2, Width: 2},
	{Name: PropAnsiFontIndex, Bit: 3, Width: 2},
	{Name: PropSymbolFontIndex, Bit: 4, Width: 2},
	{Name: PropFontSize, Bit: 5, Width: 2, Default: 18},
	{Name: PropFontColor, Bit: 6, Width: 4, Default: 0xFE000000},
	{Name: PropSuperscript, Bit: 7, Width: 2, Signed: true},
	{Name: PropCharUnknown1, Bit: 8, Width: 2},
	{Name: PropLanguage, Bit: 9, Width: 2},
})

// tableFor returns the table defining name, checking the paragraph table
// first.
func tableFor(name string) (*PropertyTable, *PropertyDefinition, bool) {
	if def, ok := ParagraphProps.Lookup(name); ok {
		return ParagraphProps, def, true
	}
	if def, ok := CharacterProps.Lookup(name); ok {
		return CharacterProps, def, true
	}
	return nil, nil, false
}

// RunType classifies the role of a block of text on a sheet. It selects
// the master style set used for defaults.
type RunType int

const (
	TitleType       RunType = 0
	BodyType        RunType = 1
	NotesType       RunType = 2
	NotUsedType     RunType = 3
	OtherType       RunType = 4
	CenterBodyType  RunType = 5
	CenterTitleType RunType = 6
	HalfBodyType    RunType = 7
	QuarterBodyType RunType = 8
)

var runTypeNames = map[RunType]string{
	TitleType:       "title",
	BodyType:        "body",
	NotesType:       "notes",
	NotUsedType:     "not used",
	OtherType:       "other",
	CenterBodyType:  "center body",
	CenterTitleType: "center title",
	HalfBodyType:    "half body",
	QuarterBodyType: "quarter body",
}

func (t RunType) String() string {
	if s, ok := runTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("RunType(%d)", int(t))
}

// baseType returns the run type whose master styles a derived type falls
// back to, or false when t has no base type.
func (t RunType) baseType() (RunType, bool) {
	switch t {
	case CenterBodyType, HalfBodyType, QuarterBodyType:
		return BodyType, true
	case CenterTitleType:
		return TitleType, true
	}
	return t, false
}
