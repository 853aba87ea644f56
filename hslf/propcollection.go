package hslf

import (
	"bytes"
	"encoding/binary"
	"log/slog"
)

// PropertyValue is one entry of a property collection.
//
// Entries for bits known to the property table carry a decoded Value.
// Entries for unknown bits carry the undecoded remainder of the payload in
// Raw, which is written back verbatim.
type PropertyValue struct {
	Bit   uint
	Known bool
	Name  string
	Value int64
	Raw   []byte
}

// PropertyCollection is a bitmask-selected set of property values for one
// paragraph or one run of characters.
//
// Entries are kept in ascending bit order, which is also the order in which
// they are stored on disk.
type PropertyCollection struct {
	Kind PropertyKind

	// CharactersCovered is the number of characters the collection applies
	// to, as recorded in the style atom header.
	CharactersCovered int

	// IndentLevel is the paragraph indent level. Unused for character
	// collections.
	IndentLevel int

	// Mask has bit i set iff the collection holds an entry for bit i.
	Mask uint32

	entries []PropertyValue
}

// NewPropertyCollection returns an empty collection of the given kind.
func NewPropertyCollection(kind PropertyKind) *PropertyCollection {
	return &PropertyCollection{Kind: kind}
}

func tableForKind(kind PropertyKind) *PropertyTable {
	if kind == ParagraphKind {
		return ParagraphProps
	}
	return CharacterProps
}

// DecodeCollection decodes one property collection from the start of data
// and returns it together with the number of bytes consumed.
//
// A bit which is set in the mask but missing from table is reported to diag
// and the rest of data is kept as an opaque entry, since its width is
// unknown.
func DecodeCollection(data []byte, table *PropertyTable, diag *slog.Logger) (*PropertyCollection, int, error) {
	return decodeCollection(data, table, table.Kind == ParagraphKind, diag)
}

func decodeCollection(data []byte, table *PropertyTable, withIndent bool, diag *slog.Logger) (*PropertyCollection, int, error) {
	pc := &PropertyCollection{Kind: table.Kind}
	pos := 0

	// Indent level (2 bytes)
	if withIndent {
		if len(data) < 2 {
			return nil, 0, newFormatError(TruncatedRecord, pos, 0, "missing indent level")
		}
		pc.IndentLevel = int(binary.LittleEndian.Uint16(data[0:2]))
		pos += 2
	}

	// Bitmask (4 bytes)
	if pos+4 > len(data) {
		return nil, 0, newFormatError(TruncatedRecord, pos, 0, "missing %s property mask", table.Kind)
	}
	pc.Mask = binary.LittleEndian.Uint32(data[pos : pos+4])
	pos += 4

	for bit := uint(0); bit < 32; bit++ {
		if pc.Mask&(1<<bit) == 0 {
			continue
		}
		def, ok := table.ByBit(bit)
		if !ok {
			if diag != nil {
				err := newFormatError(UnrecognizedProperty, pos, 0, "%s property bit %d", table.Kind, bit)
				diag.Warn("keeping unknown property data",
					slog.String(DiagnosticKey, DiagUnrecognizedProperty),
					slog.Int("bit", int(bit)),
					slog.Int("bytes", len(data)-pos),
					slog.Any("error", err))
			}
			pc.entries = append(pc.entries, PropertyValue{Bit: bit, Raw: data[pos:len(data):len(data)]})
			pos = len(data)
			break
		}
		if pos+def.Width > len(data) {
			return nil, 0, newFormatError(TruncatedRecord, pos, 0,
				"property %s needs %d bytes, have %d", def.Name, def.Width, len(data)-pos)
		}
		pc.entries = append(pc.entries, PropertyValue{
			Bit:   bit,
			Known: true,
			Name:  def.Name,
			Value: readValue(data[pos:pos+def.Width], def.Signed),
		})
		pos += def.Width
	}
	return pc, pos, nil
}

func readValue(b []byte, signed bool) int64 {
	switch len(b) {
	case 1:
		if signed {
			return int64(int8(b[0]))
		}
		return int64(b[0])
	case 2:
		v := binary.LittleEndian.Uint16(b)
		if signed {
			return int64(int16(v))
		}
		return int64(v)
	default:
		v := binary.LittleEndian.Uint32(b)
		if signed {
			return int64(int32(v))
		}
		return int64(v)
	}
}

func appendValue(buf []byte, v int64, width int) []byte {
	switch width {
	case 1:
		return append(buf, byte(v))
	case 2:
		return binary.LittleEndian.AppendUint16(buf, uint16(v))
	default:
		return binary.LittleEndian.AppendUint32(buf, uint32(v))
	}
}

// Encode returns the on-disk form of the collection: the indent level
// (paragraphs only), the mask and the values in ascending bit order.
// CharactersCovered is not included; it belongs to the style atom.
func (pc *PropertyCollection) Encode() []byte {
	return pc.encode(pc.Kind == ParagraphKind)
}

func (pc *PropertyCollection) encode(withIndent bool) []byte {
	var buf []byte
	if withIndent {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(pc.IndentLevel))
	}
	buf = binary.LittleEndian.AppendUint32(buf, pc.Mask)
	table := tableForKind(pc.Kind)
	for _, e := range pc.entries {
		if !e.Known {
			buf = append(buf, e.Raw...)
			continue
		}
		def, _ := table.ByBit(e.Bit)
		buf = appendValue(buf, e.Value, def.Width)
	}
	return buf
}

// Values returns a copy of the entries in ascending bit order.
func (pc *PropertyCollection) Values() []PropertyValue {
	return append([]PropertyValue(nil), pc.entries...)
}

// Len returns the number of entries.
func (pc *PropertyCollection) Len() int {
	return len(pc.entries)
}

// HasUnknown reports whether the collection carries opaque data for bits
// the property table does not define.
func (pc *PropertyCollection) HasUnknown() bool {
	for _, e := range pc.entries {
		if !e.Known {
			return true
		}
	}
	return false
}

// Find returns the value of the named property, if the collection holds it.
func (pc *PropertyCollection) Find(name string) (int64, bool) {
	if pc == nil {
		return 0, false
	}
	for _, e := range pc.entries {
		if e.Known && e.Name == name {
			return e.Value, true
		}
	}
	return 0, false
}

// search returns the position of the entry for bit, or the position at
// which it would be inserted.
func (pc *PropertyCollection) search(bit uint) (int, bool) {
	for i, e := range pc.entries {
		if e.Bit == bit {
			return i, true
		}
		if e.Bit > bit {
			return i, false
		}
	}
	return len(pc.entries), false
}

// Set stores a value for the named property. A new entry is inserted at
// its ascending bit position and its mask bit is set; an existing entry is
// overwritten in place.
func (pc *PropertyCollection) Set(name string, value int64) error {
	def, ok := tableForKind(pc.Kind).Lookup(name)
	if !ok {
		return NewHSLFError("no %s property named %q", pc.Kind, name)
	}
	pc.set(def, value)
	return nil
}

func (pc *PropertyCollection) set(def *PropertyDefinition, value int64) {
	value = readValue(appendValue(nil, value, def.Width), def.Signed)
	i, found := pc.search(def.Bit)
	if found {
		pc.entries[i] = PropertyValue{Bit: def.Bit, Known: true, Name: def.Name, Value: value}
		return
	}
	pc.entries = append(pc.entries, PropertyValue{})
	copy(pc.entries[i+1:], pc.entries[i:])
	pc.entries[i] = PropertyValue{Bit: def.Bit, Known: true, Name: def.Name, Value: value}
	pc.Mask |= 1 << def.Bit
}

// Remove deletes the named property and clears its mask bit.
// It reports whether the property was present.
func (pc *PropertyCollection) Remove(name string) bool {
	def, ok := tableForKind(pc.Kind).Lookup(name)
	if !ok {
		return false
	}
	i, found := pc.search(def.Bit)
	if !found {
		return false
	}
	pc.entries = append(pc.entries[:i], pc.entries[i+1:]...)
	pc.Mask &^= 1 << def.Bit
	return true
}

// Flag returns sub-flag sub of the named flags property. The second result
// is false if the collection does not hold the property.
func (pc *PropertyCollection) Flag(name string, sub uint) (bool, bool) {
	v, ok := pc.Find(name)
	if !ok {
		return false, false
	}
	return v&(1<<sub) != 0, true
}

// SetFlag sets sub-flag sub of the named flags property, leaving all other
// sub-flags unchanged. If the property is absent it is created with the
// value inherited, so that the other sub-flags keep their effective state.
func (pc *PropertyCollection) SetFlag(name string, sub uint, on bool, inherited int64) error {
	def, ok := tableForKind(pc.Kind).Lookup(name)
	if !ok || !def.Flags {
		return NewHSLFError("no %s flags property named %q", pc.Kind, name)
	}
	if sub >= uint(def.Width*8) {
		return NewHSLFError("sub-flag %d out of range for %s", sub, name)
	}
	v, found := pc.Find(name)
	if !found {
		v = inherited
	}
	if on {
		v |= 1 << sub
	} else {
		v &^= 1 << sub
	}
	pc.set(def, v)
	return nil
}

// withoutUnknown returns a copy of pc with the opaque entries dropped and
// their mask bits cleared.
func (pc *PropertyCollection) withoutUnknown() *PropertyCollection {
	res := pc.Clone()
	res.entries = res.entries[:0]
	for _, e := range pc.entries {
		if !e.Known {
			res.Mask &^= 1 << e.Bit
			continue
		}
		res.entries = append(res.entries, e)
	}
	return res
}

// merge sets every property of other which pc does not hold.
func (pc *PropertyCollection) merge(other *PropertyCollection) {
	if other == nil {
		return
	}
	table := tableForKind(pc.Kind)
	for _, e := range other.entries {
		if !e.Known {
			continue
		}
		if _, found := pc.search(e.Bit); found {
			continue
		}
		def, _ := table.ByBit(e.Bit)
		pc.set(def, e.Value)
	}
}

// Clone returns a deep copy of pc.
func (pc *PropertyCollection) Clone() *PropertyCollection {
	res := *pc
	res.entries = make([]PropertyValue, len(pc.entries))
	for i, e := range pc.entries {
		if e.Raw != nil {
			e.Raw = append([]byte(nil), e.Raw...)
		}
		res.entries[i] = e
	}
	return &res
}

// Equal reports whether pc and other store the same properties.
// CharactersCovered is ignored.
func (pc *PropertyCollection) Equal(other *PropertyCollection) bool {
	if pc.Kind != other.Kind || pc.Mask != other.Mask || len(pc.entries) != len(other.entries) {
		return false
	}
	if pc.Kind == ParagraphKind && pc.IndentLevel != other.IndentLevel {
		return false
	}
	for i, e := range pc.entries {
		f := other.entries[i]
		if e.Bit != f.Bit || e.Known != f.Known || e.Value != f.Value || !bytes.Equal(e.Raw, f.Raw) {
			return false
		}
	}
	return true
}
