package hslf

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
)

// firstMasterID is the identifier of the first master sheet when the
// document does not list master identifiers.
const firstMasterID = 0x80000000

// SlideShow represents the contents of a presentation record stream.
//
// You obtain a SlideShow from Open, OpenFile, OpenSource or NewSlideShow.
type SlideShow struct {
	records  []*Record
	document *Record
	fonts    *FontCollection
	masters  []*MasterSheet
	sheets   []*Sheet

	log      *slog.Logger
	encoding string
}

// Open parses a presentation record stream, the contents of the
// "PowerPoint Document" stream of a presentation file.
//
// Container files are rejected with an error wrapping ErrContainerInput.
// Damaged record streams are rejected with a *FormatError.
func Open(data []byte, opts *Options) (*SlideShow, error) {
	format, err := InspectFormat("", data)
	if err != nil {
		return nil, err
	}
	if format != "" {
		return nil, fmt.Errorf("%s: %w", FileFormatDescriptions[format], ErrContainerInput)
	}
	records, err := ParseRecords(data, opts)
	if err != nil {
		return nil, err
	}
	return newSlideShow(records, opts)
}

// OpenFile reads a record stream from a file and opens it.
func OpenFile(filename string, opts *Options) (*SlideShow, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Open(data, opts)
}

// NewSlideShow returns an empty presentation with one master sheet, the
// default master styles and Arial as the only font.
func NewSlideShow(opts *Options) *SlideShow {
	show, err := newSlideShow(defaultRecords(), opts)
	if err != nil {
		panic(err)
	}
	return show
}

func newSlideShow(records []*Record, opts *Options) (*SlideShow, error) {
	show := &SlideShow{
		records:  records,
		log:      opts.logger(),
		encoding: opts.encoding(),
	}
	for _, r := range records {
		if r.Type == RT_DOCUMENT {
			show.document = r
			break
		}
	}
	if show.document == nil {
		return nil, NewHSLFError("no Document record found")
	}

	if env := show.document.FindChild(RT_ENVIRONMENT); env != nil {
		if rec := env.FindChild(RT_FONT_COLLECTION); rec != nil {
			fonts, err := decodeFontCollection(rec)
			if err != nil {
				return nil, fmt.Errorf("font collection: %w", err)
			}
			show.fonts = fonts
		}
	}
	if show.fonts == nil {
		show.log.Info("document has no font collection")
		show.fonts = NewFontCollection()
	}

	ids := masterIDs(show.document)
	for _, r := range records {
		switch r.Type {
		case RT_MAIN_MASTER:
			n := len(show.masters)
			id := uint32(firstMasterID + n)
			if n < len(ids) {
				id = ids[n]
			}
			m, err := loadMasterSheet(id, r, show.log)
			if err != nil {
				return nil, err
			}
			show.masters = append(show.masters, m)
		case RT_SLIDE, RT_NOTES:
			s := &Sheet{Kind: SlideSheet, show: show, record: r}
			if r.Type == RT_NOTES {
				s.Kind = NotesSheet
			}
			if err := s.load(show.encoding, show.log); err != nil {
				return nil, fmt.Errorf("%s %d: %w", s.Kind, len(show.sheets), err)
			}
			show.sheets = append(show.sheets, s)
		}
	}

	show.log.Info("opened slide show",
		slog.Int("records", len(records)),
		slog.Int("masters", len(show.masters)),
		slog.Int("sheets", len(show.sheets)),
		slog.Int("fonts", show.fonts.Len()))
	return show, nil
}

// masterIDs returns the identifiers listed for the master sheets, in
// order. They are stored in the SlidePersistAtoms of the second
// SlideListWithText.
func masterIDs(document *Record) []uint32 {
	var ids []uint32
	for _, list := range document.FindChildren(RT_SLIDE_LIST_WITH_TEXT) {
		if list.Instance != 1 {
			continue
		}
		for _, atom := range list.FindChildren(RT_SLIDE_PERSIST_ATOM) {
			if len(atom.Data) >= 16 {
				ids = append(ids, binary.LittleEndian.Uint32(atom.Data[12:16]))
			}
		}
	}
	return ids
}

// Records returns the top-level records of the stream.
func (show *SlideShow) Records() []*Record {
	return show.records
}

// Fonts returns the document's font collection.
func (show *SlideShow) Fonts() *FontCollection {
	return show.fonts
}

// Masters returns the master sheets.
func (show *SlideShow) Masters() []*MasterSheet {
	return slices.Clone(show.masters)
}

// MasterSheet returns the master sheet with the given identifier, or nil.
func (show *SlideShow) MasterSheet(id uint32) *MasterSheet {
	for _, m := range show.masters {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// Sheets returns the slides and notes pages in stream order.
func (show *SlideShow) Sheets() []*Sheet {
	return slices.Clone(show.sheets)
}

// AddSheet adds s to the slide show. A slide without a master is given
// the first master sheet. Pending font names of the sheet's text are
// registered in the font collection.
func (show *SlideShow) AddSheet(s *Sheet) error {
	if s.show != nil {
		return NewHSLFError("sheet already belongs to a slide show")
	}
	if s.Kind == SlideSheet && s.MasterID == 0 && len(show.masters) > 0 {
		s.MasterID = show.masters[0].ID
	}
	if s.record == nil {
		s.record = newSheetRecord(s.Kind, s.MasterID)
	}
	show.records = append(show.records, s.record)
	show.sheets = append(show.sheets, s)
	s.show = show
	for _, p := range s.Paragraphs() {
		p.attach()
	}
	return nil
}

// CreateSlide adds a new empty slide.
func (show *SlideShow) CreateSlide() *Sheet {
	s := NewSheet(SlideSheet)
	_ = show.AddSheet(s)
	return s
}

// Bytes writes all changes to the record tree and returns the serialized
// record stream.
func (show *SlideShow) Bytes() []byte {
	show.sync()
	return EncodeRecords(show.records)
}

// Write writes the record stream to w.
func (show *SlideShow) Write(w io.Writer) error {
	show.sync()
	return WriteRecords(w, show.records)
}

func (show *SlideShow) sync() {
	if show.fonts.record == nil && show.fonts.Len() > 0 {
		env := show.document.FindChild(RT_ENVIRONMENT)
		if env == nil {
			env = NewContainer(RT_ENVIRONMENT, 0)
			i := len(show.document.Children)
			if n := i - 1; n >= 0 && show.document.Children[n].Type == RT_END_DOCUMENT {
				i = n
			}
			show.document.Children = slices.Insert(show.document.Children, i, env)
		}
		show.fonts.record = NewContainer(RT_FONT_COLLECTION, 0)
		env.Children = append(env.Children, show.fonts.record)
	}
	show.fonts.sync()
	for _, m := range show.masters {
		m.sync()
	}
	for _, s := range show.sheets {
		s.sync(show.encoding, show.log)
	}
}
