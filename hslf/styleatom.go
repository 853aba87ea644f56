package hslf

import (
	"encoding/binary"
	"log/slog"
)

// StyleTextProps is the decoded payload of a StyleTextPropAtom: the
// paragraph collections followed by the character collections of one text
// block, each covering a number of characters.
type StyleTextProps struct {
	Paragraphs []*PropertyCollection
	Characters []*PropertyCollection

	// Trailing holds bytes found after the character collections, written
	// back unchanged.
	Trailing []byte
}

// DecodeStyleTextProps decodes a StyleTextPropAtom payload for a text block
// of textLength characters. The collections of each kind cover
// textLength+1 characters, the extra one being the final paragraph mark.
//
// An atom which ends on a collection boundary before the text is covered is
// accepted; the uncovered text uses inherited formatting.
func DecodeStyleTextProps(data []byte, textLength int, diag *slog.Logger) (*StyleTextProps, error) {
	res := &StyleTextProps{}
	size := textLength + 1
	pos := 0

	decodeRuns := func(table *PropertyTable) ([]*PropertyCollection, bool, error) {
		var list []*PropertyCollection
		handled := 0
		for handled < size && pos < len(data) {
			// Character count (4 bytes)
			if pos+4 > len(data) {
				return nil, false, newFormatError(TruncatedRecord, pos, RT_STYLE_TEXT_PROP_ATOM,
					"missing %s character count", table.Kind)
			}
			count := int(binary.LittleEndian.Uint32(data[pos : pos+4]))
			pos += 4

			pc, n, err := DecodeCollection(data[pos:], table, diag)
			if err != nil {
				if fe, ok := err.(*FormatError); ok {
					fe.Pos += pos
					fe.Type = RT_STYLE_TEXT_PROP_ATOM
				}
				return nil, false, err
			}
			pc.CharactersCovered = count
			list = append(list, pc)
			pos += n
			handled += count
			if pc.HasUnknown() {
				return list, true, nil
			}
		}
		return list, false, nil
	}

	var err error
	var opaque bool
	res.Paragraphs, opaque, err = decodeRuns(ParagraphProps)
	if err != nil || opaque {
		return res, err
	}
	res.Characters, opaque, err = decodeRuns(CharacterProps)
	if err != nil || opaque {
		return res, err
	}
	if pos < len(data) {
		res.Trailing = data[pos:len(data):len(data)]
	}
	return res, nil
}

// Encode returns the StyleTextPropAtom payload.
func (s *StyleTextProps) Encode() []byte {
	var buf []byte
	for _, list := range [][]*PropertyCollection{s.Paragraphs, s.Characters} {
		for _, pc := range list {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(pc.CharactersCovered))
			buf = append(buf, pc.Encode()...)
		}
	}
	return append(buf, s.Trailing...)
}

// MasterStyleLevel holds the master defaults for one indent level.
type MasterStyleLevel struct {
	Paragraph *PropertyCollection

	// Character is nil if the paragraph collection swallowed the rest of
	// the atom as opaque data.
	Character *PropertyCollection
}

// MasterStyles is the decoded payload of a TxMasterStyleAtom. The atom's
// instance tag is the run type the styles apply to.
type MasterStyles struct {
	RunType RunType

	// LevelCount is the number of levels recorded in the atom header.
	LevelCount int

	Levels []MasterStyleLevel

	// Trailing holds bytes found after the last level.
	Trailing []byte
}

// hasLevelIndent reports whether the levels of a TxMasterStyleAtom for
// runType store their indent level. For the other run types the indent
// level is the position of the level in the atom.
func hasLevelIndent(runType RunType) bool {
	return runType >= CenterBodyType
}

// DecodeMasterStyles decodes a TxMasterStyleAtom payload.
func DecodeMasterStyles(runType RunType, data []byte, diag *slog.Logger) (*MasterStyles, error) {
	if len(data) < 2 {
		return nil, newFormatError(TruncatedRecord, 0, RT_TX_MASTER_STYLE_ATOM, "missing level count")
	}
	ms := &MasterStyles{
		RunType:    runType,
		LevelCount: int(binary.LittleEndian.Uint16(data[0:2])),
	}
	pos := 2
	for i := 0; i < ms.LevelCount; i++ {
		var level MasterStyleLevel
		for _, table := range []*PropertyTable{ParagraphProps, CharacterProps} {
			withIndent := table.Kind == ParagraphKind && hasLevelIndent(runType)
			pc, n, err := decodeCollection(data[pos:], table, withIndent, diag)
			if err != nil {
				if fe, ok := err.(*FormatError); ok {
					fe.Pos += pos
					fe.Type = RT_TX_MASTER_STYLE_ATOM
				}
				return nil, err
			}
			pos += n
			if table.Kind == ParagraphKind {
				if !withIndent {
					pc.IndentLevel = i
				}
				level.Paragraph = pc
			} else {
				pc.IndentLevel = level.Paragraph.IndentLevel
				level.Character = pc
			}
			if pc.HasUnknown() {
				break
			}
		}
		ms.Levels = append(ms.Levels, level)
		if pos >= len(data) {
			break
		}
	}
	if pos < len(data) {
		ms.Trailing = data[pos:len(data):len(data)]
	}
	return ms, nil
}

// Encode returns the TxMasterStyleAtom payload.
func (ms *MasterStyles) Encode() []byte {
	buf := binary.LittleEndian.AppendUint16(nil, uint16(ms.LevelCount))
	withIndent := hasLevelIndent(ms.RunType)
	for _, level := range ms.Levels {
		buf = append(buf, level.Paragraph.encode(withIndent)...)
		if level.Character != nil {
			buf = append(buf, level.Character.encode(false)...)
		}
	}
	return append(buf, ms.Trailing...)
}

// Level returns the collection of the given kind for an indent level.
func (ms *MasterStyles) Level(indent int, kind PropertyKind) *PropertyCollection {
	for _, level := range ms.Levels {
		if level.Paragraph.IndentLevel != indent {
			continue
		}
		if kind == ParagraphKind {
			return level.Paragraph
		}
		return level.Character
	}
	return nil
}
