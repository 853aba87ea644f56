package hslf

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"math"
	"slices"
	"strings"
	"unicode/utf16"
)

// SheetKind says whether a sheet is a slide or a notes page.
type SheetKind int

const (
	SlideSheet SheetKind = iota
	NotesSheet
)

func (k SheetKind) String() string {
	if k == NotesSheet {
		return "notes"
	}
	return "slide"
}

// Sheet contains the text of one slide or notes page.
//
// A sheet refers to its slide show and, through MasterID, to a master
// sheet. Both are lookups only; a sheet which has not been added to a
// slide show has neither.
type Sheet struct {
	Kind SheetKind

	// MasterID selects the master sheet of a slide. Notes pages have no
	// master.
	MasterID uint32

	show   *SlideShow
	record *Record
	blocks []*textBlock
	scheme *ColorScheme
}

// NewSheet returns an empty sheet which does not belong to a slide show.
func NewSheet(kind SheetKind) *Sheet {
	return &Sheet{Kind: kind}
}

// SlideShow returns the slide show the sheet belongs to, or nil.
func (s *Sheet) SlideShow() *SlideShow {
	return s.show
}

// MasterSheet returns the master sheet of the sheet, or nil if the sheet
// has none or does not belong to a slide show.
func (s *Sheet) MasterSheet() *MasterSheet {
	if s.show == nil || s.Kind != SlideSheet {
		return nil
	}
	return s.show.MasterSheet(s.MasterID)
}

// ColorScheme returns the sheet's colour scheme, falling back to the scheme
// of its master sheet.
func (s *Sheet) ColorScheme() *ColorScheme {
	if s.scheme != nil {
		return s.scheme
	}
	if m := s.MasterSheet(); m != nil {
		return m.scheme
	}
	return nil
}

// Record returns the Slide or Notes container of the sheet, or nil if the
// sheet has not been added to a slide show.
func (s *Sheet) Record() *Record {
	return s.record
}

// Paragraphs returns the paragraphs of all text on the sheet, in order.
func (s *Sheet) Paragraphs() []*TextParagraph {
	var res []*TextParagraph
	for _, b := range s.blocks {
		res = append(res, b.paragraphs...)
	}
	return res
}

// AddParagraph appends a new paragraph of the given run type.
func (s *Sheet) AddParagraph(runType RunType) *TextParagraph {
	p := NewTextParagraph(runType)
	_ = s.AppendParagraph(p)
	return p
}

// AppendParagraph appends p to the sheet. Consecutive paragraphs of the same
// run type share a text box. If the sheet belongs to a slide show, pending
// font names of the paragraph's runs are registered.
func (s *Sheet) AppendParagraph(p *TextParagraph) error {
	if p.sheet != nil {
		return NewHSLFError("paragraph already belongs to a sheet")
	}
	var b *textBlock
	if n := len(s.blocks); n > 0 && s.blocks[n-1].runType == p.runType {
		b = s.blocks[n-1]
	} else {
		b = &textBlock{runType: p.runType}
		s.blocks = append(s.blocks, b)
	}
	b.paragraphs = append(b.paragraphs, p)
	p.sheet = s
	if s.show != nil {
		p.attach()
	}
	return nil
}

// RemoveParagraph removes p from the sheet and reports whether it was
// found. The paragraph stays usable but loses access to the master sheet.
func (s *Sheet) RemoveParagraph(p *TextParagraph) bool {
	for _, b := range s.blocks {
		if i := slices.Index(b.paragraphs, p); i >= 0 {
			b.paragraphs = slices.Delete(b.paragraphs, i, i+1)
			p.detach()
			return true
		}
	}
	return false
}

func (s *Sheet) logger() *slog.Logger {
	if s.show != nil {
		return s.show.log
	}
	return slog.Default()
}

// load reads the text blocks and colour scheme of the sheet record.
func (s *Sheet) load(enc string, diag *slog.Logger) error {
	if s.Kind == SlideSheet {
		if atom := s.record.FindChild(RT_SLIDE_ATOM); atom != nil && len(atom.Data) >= 16 {
			s.MasterID = binary.LittleEndian.Uint32(atom.Data[12:16])
		}
	}
	if c := s.record.FindChild(RT_COLOR_SCHEME_ATOM); c != nil {
		scheme, err := DecodeColorScheme(c.Data)
		if err != nil {
			return err
		}
		s.scheme = scheme
	}
	s.blocks = findTextBlocks(s.record)
	for _, b := range s.blocks {
		if err := b.load(s, enc, diag); err != nil {
			return err
		}
	}
	return nil
}

// sync writes the sheet's changes back to its record.
func (s *Sheet) sync(enc string, diag *slog.Logger) {
	if s.Kind == SlideSheet {
		if atom := s.record.FindChild(RT_SLIDE_ATOM); atom != nil && len(atom.Data) >= 16 &&
			binary.LittleEndian.Uint32(atom.Data[12:16]) != s.MasterID {
			data := slices.Clone(atom.Data)
			binary.LittleEndian.PutUint32(data[12:16], s.MasterID)
			atom.SetData(data)
		}
	}
	if s.scheme != nil {
		syncColorScheme(s.record, s.scheme)
	}
	blocks := s.blocks[:0]
	for _, b := range s.blocks {
		b.sync(s, enc, diag)
		if len(b.paragraphs) > 0 {
			blocks = append(blocks, b)
		}
	}
	s.blocks = blocks
}

// newSheetRecord builds an empty Slide or Notes container.
func newSheetRecord(kind SheetKind, masterID uint32) *Record {
	if kind == NotesSheet {
		return NewContainer(RT_NOTES, 0,
			&Record{Version: 1, Type: RT_NOTES_ATOM, Data: make([]byte, 8)})
	}
	atom := make([]byte, 24)
	binary.LittleEndian.PutUint32(atom[12:16], masterID)
	return NewContainer(RT_SLIDE, 0,
		&Record{Version: 2, Type: RT_SLIDE_ATOM, Data: atom})
}

// shapeGroup returns the top shape group of the sheet's drawing, creating
// the drawing containers if needed.
func (s *Sheet) shapeGroup() *Record {
	child := func(parent *Record, typ uint16) *Record {
		if c := parent.FindChild(typ); c != nil {
			return c
		}
		c := NewContainer(typ, 0)
		parent.Children = append(parent.Children, c)
		return c
	}
	drawing := child(s.record, RT_PP_DRAWING)
	return child(child(drawing, RT_ESCHER_DG_CONTAINER), RT_ESCHER_SPGR_CONTAINER)
}

// textBlock is the text of one text box: a TextHeaderAtom followed by a
// text atom and a StyleTextPropAtom within the same container.
type textBlock struct {
	runType    RunType
	paragraphs []*TextParagraph

	parent *Record
	header *Record
	text   *Record
	style  *Record

	trailing []byte

	// loadedText and loadedStyle are the canonical encoding of the block
	// as last loaded or saved. The atoms are only rewritten when it
	// changes, so that unmodified text keeps its original bytes.
	loadedText  string
	loadedStyle []byte
}

func findTextBlocks(root *Record) []*textBlock {
	var blocks []*textBlock
	root.Walk(func(rec *Record, depth int) bool {
		if !rec.IsContainer() {
			return false
		}
		var cur *textBlock
		for _, c := range rec.Children {
			switch c.Type {
			case RT_TEXT_HEADER_ATOM:
				cur = &textBlock{parent: rec, header: c}
				blocks = append(blocks, cur)
			case RT_TEXT_CHARS_ATOM, RT_TEXT_BYTES_ATOM:
				if cur != nil && cur.text == nil {
					cur.text = c
				}
			case RT_STYLE_TEXT_PROP_ATOM:
				if cur != nil && cur.style == nil {
					cur.style = c
				}
			}
		}
		return true
	})
	return blocks
}

func (b *textBlock) load(s *Sheet, enc string, diag *slog.Logger) error {
	if len(b.header.Data) >= 4 {
		b.runType = RunType(binary.LittleEndian.Uint32(b.header.Data))
	}

	var text string
	var err error
	if b.text != nil {
		if b.text.Type == RT_TEXT_BYTES_ATOM {
			text, err = DecodeTextBytes(b.text.Data, enc)
		} else {
			text, err = DecodeTextChars(b.text.Data)
		}
		if err != nil {
			return err
		}
	}

	props := &StyleTextProps{}
	if b.style != nil {
		props, err = DecodeStyleTextProps(b.style.Data, textLen(text), diag)
		if err != nil {
			return err
		}
	}
	b.trailing = props.Trailing
	b.paragraphs = splitParagraphs(b.runType, text, props)
	for _, p := range b.paragraphs {
		p.sheet = s
		for _, r := range p.runs {
			r.font = fontAttached{}
		}
	}
	b.loadedText, b.loadedStyle = b.canonical(false)
	return nil
}

// coverage maps character positions to the collections covering them.
type coverage struct {
	list []*PropertyCollection
	ends []int
}

func newCoverage(list []*PropertyCollection) coverage {
	c := coverage{list: list}
	end := 0
	for _, pc := range list {
		end += pc.CharactersCovered
		c.ends = append(c.ends, end)
	}
	return c
}

// at returns the collection covering pos and the position just past it.
// Positions past the last collection are covered by nothing.
func (c coverage) at(pos int) (*PropertyCollection, int) {
	for i, end := range c.ends {
		if pos < end {
			return c.list[i], end
		}
	}
	return nil, math.MaxInt
}

// splitParagraphs builds the paragraphs of a block. Paragraphs are
// separated by '\r'; each paragraph mark, and the implied mark after the
// last paragraph, counts as one character of the paragraph before it.
// Runs are split where the character collections change.
func splitParagraphs(runType RunType, text string, props *StyleTextProps) []*TextParagraph {
	paraCov := newCoverage(props.Paragraphs)
	charCov := newCoverage(props.Characters)

	var res []*TextParagraph
	pos := 0
	for _, line := range strings.Split(text, "\r") {
		units := utf16.Encode([]rune(line))
		n := len(units)

		p := &TextParagraph{runType: runType, charStyle: NewPropertyCollection(CharacterKind)}
		if pc, _ := paraCov.at(pos); pc != nil {
			p.style = pc.Clone()
		} else {
			p.style = NewPropertyCollection(ParagraphKind)
		}

		for start := 0; start < n+1; {
			pc, end := charCov.at(pos + start)
			stop := min(end-pos, n+1)
			textEnd := min(stop, n)
			if textEnd > start || (len(p.runs) == 0 && stop == n+1) {
				r := &TextRun{
					text:      string(utf16.Decode(units[start:textEnd])),
					paragraph: p,
					font:      fontAttached{},
				}
				if pc != nil {
					r.style = pc.Clone()
				} else {
					r.style = NewPropertyCollection(CharacterKind)
				}
				p.runs = append(p.runs, r)
			}
			start = stop
		}

		res = append(res, p)
		pos += n + 1
	}
	return res
}

func (b *textBlock) hasUnknown() bool {
	for _, p := range b.paragraphs {
		if p.style.HasUnknown() {
			return true
		}
		for _, r := range p.runs {
			if r.style.HasUnknown() {
				return true
			}
		}
	}
	return false
}

// canonical returns the text and StyleTextPropAtom payload of the block.
// Each paragraph gets its own paragraph collection; each run gets its own
// character collection with the paragraph-wide overrides merged in. If
// sanitize is set, opaque property data is dropped.
func (b *textBlock) canonical(sanitize bool) (string, []byte) {
	prep := func(pc *PropertyCollection) *PropertyCollection {
		if sanitize {
			return pc.withoutUnknown()
		}
		return pc.Clone()
	}

	var text strings.Builder
	props := &StyleTextProps{Trailing: b.trailing}
	for i, p := range b.paragraphs {
		if i > 0 {
			text.WriteByte('\r')
		}
		n := 0
		for j, r := range p.runs {
			text.WriteString(r.text)
			l := textLen(r.text)
			n += l
			last := j == len(p.runs)-1
			if l == 0 && !last {
				continue
			}
			if last {
				l++
			}
			cs := prep(r.style)
			cs.merge(p.charStyle)
			cs.CharactersCovered = l
			props.Characters = append(props.Characters, cs)
		}
		if len(p.runs) == 0 {
			cs := prep(p.charStyle)
			cs.CharactersCovered = 1
			props.Characters = append(props.Characters, cs)
		}
		ps := prep(p.style)
		ps.CharactersCovered = n + 1
		props.Paragraphs = append(props.Paragraphs, ps)
	}
	return text.String(), props.Encode()
}

// sync writes the block back to its atoms if it changed. An empty block
// is removed from its container.
func (b *textBlock) sync(s *Sheet, enc string, diag *slog.Logger) {
	if len(b.paragraphs) == 0 {
		if b.header != nil {
			b.parent.Children = slices.DeleteFunc(b.parent.Children, func(c *Record) bool {
				return c == b.header || c == b.text || c == b.style
			})
			b.header, b.text, b.style = nil, nil, nil
		}
		return
	}

	text, style := b.canonical(false)
	if b.header != nil && text == b.loadedText && bytes.Equal(style, b.loadedStyle) {
		return
	}
	if b.hasUnknown() {
		diag.Warn("dropping unknown property data from modified text",
			slog.String(DiagnosticKey, DiagUnrecognizedProperty),
			slog.String("runType", b.runType.String()))
		text, style = b.canonical(true)
	}

	if b.header == nil {
		header := make([]byte, 4)
		binary.LittleEndian.PutUint32(header, uint32(b.runType))
		b.header = NewAtom(RT_TEXT_HEADER_ATOM, 0, header)
		b.parent = NewContainer(RT_ESCHER_CLIENT_TEXTBOX, 0, b.header)
		group := s.shapeGroup()
		group.Children = append(group.Children, NewContainer(RT_ESCHER_SP_CONTAINER, 0, b.parent))
	}

	typ := uint16(RT_TEXT_CHARS_ATOM)
	data := EncodeTextChars(text)
	if fitsEightBit(text) && (b.text == nil || b.text.Type == RT_TEXT_BYTES_ATOM) {
		if enc8, err := EncodeTextBytes(text, enc); err == nil {
			typ, data = RT_TEXT_BYTES_ATOM, enc8
		}
	}
	if b.text == nil {
		b.text = NewAtom(typ, 0, data)
		b.insertAfter(b.header, b.text)
	} else {
		b.text.Type = typ
		b.text.SetData(data)
	}
	if b.style == nil {
		b.style = NewAtom(RT_STYLE_TEXT_PROP_ATOM, 0, style)
		b.insertAfter(b.text, b.style)
	} else {
		b.style.SetData(style)
	}

	b.loadedText, b.loadedStyle = b.canonical(false)
}

func (b *textBlock) insertAfter(prev, rec *Record) {
	i := slices.Index(b.parent.Children, prev)
	b.parent.Children = slices.Insert(b.parent.Children, i+1, rec)
}
