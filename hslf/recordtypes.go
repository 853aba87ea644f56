package hslf

import (
	"errors"
	"fmt"
)

// HSLFError represents an error caused by misuse of the document model,
// such as an out of range index or an input the package cannot handle.
type HSLFError struct {
	Message string
}

func (e *HSLFError) Error() string {
	return e.Message
}

// NewHSLFError creates a new HSLFError with the given message.
func NewHSLFError(format string, args ...interface{}) *HSLFError {
	return &HSLFError{Message: fmt.Sprintf(format, args...)}
}

// FormatErrorKind classifies a FormatError.
type FormatErrorKind int

const (
	// TruncatedRecord means a header or payload extends past the end of the
	// supplied bytes.
	TruncatedRecord FormatErrorKind = iota + 1

	// LengthMismatch means the children of a container do not exactly
	// consume the container's declared length.
	LengthMismatch

	// UnrecognizedProperty means a property bitmask has a bit set for which
	// the property table has no definition.
	UnrecognizedProperty
)

func (k FormatErrorKind) String() string {
	switch k {
	case TruncatedRecord:
		return "truncated record"
	case LengthMismatch:
		return "length mismatch"
	case UnrecognizedProperty:
		return "unrecognized property"
	}
	return fmt.Sprintf("FormatErrorKind(%d)", int(k))
}

// Sentinel values for use with errors.Is.
var (
	ErrTruncatedRecord      = &FormatError{Kind: TruncatedRecord}
	ErrLengthMismatch       = &FormatError{Kind: LengthMismatch}
	ErrUnrecognizedProperty = &FormatError{Kind: UnrecognizedProperty}

	// ErrContainerInput is returned by Open for OLE2 and ZIP container
	// files, which must be unpacked before their record stream is parsed.
	ErrContainerInput = errors.New("input is a container file, not a record stream")
)

// FormatError indicates that a record stream or a property collection could
// not be decoded.
type FormatError struct {
	Kind FormatErrorKind

	// Pos is the byte offset at which the problem was detected.
	Pos int

	// Type is the type code of the record being decoded, or 0.
	Type uint16

	Message string
}

func newFormatError(kind FormatErrorKind, pos int, typ uint16, format string, args ...interface{}) *FormatError {
	return &FormatError{
		Kind:    kind,
		Pos:     pos,
		Type:    typ,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *FormatError) Error() string {
	msg := e.Kind.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Type != 0 {
		msg += fmt.Sprintf(" (record %s)", RecordName(e.Type))
	}
	return fmt.Sprintf("%s at byte %d", msg, e.Pos)
}

// Is reports whether target is a FormatError of the same kind.
func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	return ok && t.Kind == e.Kind
}

// Record type codes.
const (
	RT_UNKNOWN                  = 0x0000
	RT_DOCUMENT                 = 0x03E8 // 1000
	RT_DOCUMENT_ATOM            = 0x03E9
	RT_END_DOCUMENT             = 0x03EA
	RT_SLIDE                    = 0x03EE // 1006
	RT_SLIDE_ATOM               = 0x03EF
	RT_NOTES                    = 0x03F0 // 1008
	RT_NOTES_ATOM               = 0x03F1
	RT_ENVIRONMENT              = 0x03F2 // 1010
	RT_SLIDE_PERSIST_ATOM       = 0x03F3
	RT_MAIN_MASTER              = 0x03F8 // 1016
	RT_SS_SLIDE_INFO_ATOM       = 0x03F9
	RT_EX_OBJ_LIST              = 0x0409
	RT_PP_DRAWING_GROUP         = 0x040B
	RT_PP_DRAWING               = 0x040C
	RT_LIST                     = 0x07D0 // 2000
	RT_FONT_COLLECTION          = 0x07D5 // 2005
	RT_COLOR_SCHEME_ATOM        = 0x07F0 // 2032
	RT_OUTLINE_TEXT_REF_ATOM    = 0x0F9E
	RT_TEXT_HEADER_ATOM         = 0x0F9F // 3999
	RT_TEXT_CHARS_ATOM          = 0x0FA0 // 4000
	RT_STYLE_TEXT_PROP_ATOM     = 0x0FA1 // 4001
	RT_MASTER_TEXT_PROP_ATOM    = 0x0FA2
	RT_TX_MASTER_STYLE_ATOM     = 0x0FA3 // 4003
	RT_TEXT_RULER_ATOM          = 0x0FA6
	RT_TEXT_BYTES_ATOM          = 0x0FA8 // 4008
	RT_TX_CF_STYLE_ATOM         = 0x0FA9
	RT_TEXT_SPEC_INFO_ATOM      = 0x0FAA
	RT_FONT_ENTITY_ATOM         = 0x0FB7 // 4023
	RT_CSTRING                  = 0x0FBA
	RT_HEADERS_FOOTERS          = 0x0FD9
	RT_SLIDE_LIST_WITH_TEXT     = 0x0FF0 // 4080
	RT_INTERACTIVE_INFO         = 0x0FF2
	RT_USER_EDIT_ATOM           = 0x0FF5
	RT_PROG_TAGS                = 0x1388
	RT_PROG_BINARY_TAG          = 0x138A
	RT_BINARY_TAG_DATA          = 0x138B
	RT_PERSIST_PTR_INCREMENTAL  = 0x1772
	RT_ESCHER_DGG_CONTAINER     = 0xF000
	RT_ESCHER_BSTORE_CONTAINER  = 0xF001
	RT_ESCHER_DG_CONTAINER      = 0xF002
	RT_ESCHER_SPGR_CONTAINER    = 0xF003
	RT_ESCHER_SP_CONTAINER      = 0xF004
	RT_ESCHER_SOLVER_CONTAINER  = 0xF005
	RT_ESCHER_CLIENT_TEXTBOX    = 0xF00D
	RT_ESCHER_CLIENT_DATA       = 0xF011
	RT_ESCHER_SPLIT_MENU_COLORS = 0xF11E
)

type recordTypeInfo struct {
	name      string
	container bool
}

var recordTypes = map[uint16]recordTypeInfo{
	RT_DOCUMENT:                 {"Document", true},
	RT_DOCUMENT_ATOM:            {"DocumentAtom", false},
	RT_END_DOCUMENT:             {"EndDocument", false},
	RT_SLIDE:                    {"Slide", true},
	RT_SLIDE_ATOM:               {"SlideAtom", false},
	RT_NOTES:                    {"Notes", true},
	RT_NOTES_ATOM:               {"NotesAtom", false},
	RT_ENVIRONMENT:              {"Environment", true},
	RT_SLIDE_PERSIST_ATOM:       {"SlidePersistAtom", false},
	RT_MAIN_MASTER:              {"MainMaster", true},
	RT_SS_SLIDE_INFO_ATOM:       {"SSSlideInfoAtom", false},
	RT_EX_OBJ_LIST:              {"ExObjList", true},
	RT_PP_DRAWING_GROUP:         {"PPDrawingGroup", true},
	RT_PP_DRAWING:               {"PPDrawing", true},
	RT_LIST:                     {"List", true},
	RT_FONT_COLLECTION:          {"FontCollection", true},
	RT_COLOR_SCHEME_ATOM:        {"ColorSchemeAtom", false},
	RT_OUTLINE_TEXT_REF_ATOM:    {"OutlineTextRefAtom", false},
	RT_TEXT_HEADER_ATOM:         {"TextHeaderAtom", false},
	RT_TEXT_CHARS_ATOM:          {"TextCharsAtom", false},
	RT_STYLE_TEXT_PROP_ATOM:     {"StyleTextPropAtom", false},
	RT_MASTER_TEXT_PROP_ATOM:    {"MasterTextPropAtom", false},
	RT_TX_MASTER_STYLE_ATOM:     {"TxMasterStyleAtom", false},
	RT_TEXT_RULER_ATOM:          {"TextRulerAtom", false},
	RT_TEXT_BYTES_ATOM:          {"TextBytesAtom", false},
	RT_TX_CF_STYLE_ATOM:         {"TxCFStyleAtom", false},
	RT_TEXT_SPEC_INFO_ATOM:      {"TextSpecInfoAtom", false},
	RT_FONT_ENTITY_ATOM:         {"FontEntityAtom", false},
	RT_CSTRING:                  {"CString", false},
	RT_HEADERS_FOOTERS:          {"HeadersFooters", true},
	RT_SLIDE_LIST_WITH_TEXT:     {"SlideListWithText", true},
	RT_INTERACTIVE_INFO:         {"InteractiveInfo", true},
	RT_USER_EDIT_ATOM:           {"UserEditAtom", false},
	RT_PROG_TAGS:                {"ProgTags", true},
	RT_PROG_BINARY_TAG:          {"ProgBinaryTag", true},
	RT_BINARY_TAG_DATA:          {"BinaryTagData", false},
	RT_PERSIST_PTR_INCREMENTAL:  {"PersistPtrIncrementalBlock", false},
	RT_ESCHER_DGG_CONTAINER:     {"EscherDggContainer", true},
	RT_ESCHER_BSTORE_CONTAINER:  {"EscherBStoreContainer", true},
	RT_ESCHER_DG_CONTAINER:      {"EscherDgContainer", true},
	RT_ESCHER_SPGR_CONTAINER:    {"EscherSpgrContainer", true},
	RT_ESCHER_SP_CONTAINER:      {"EscherSpContainer", true},
	RT_ESCHER_SOLVER_CONTAINER:  {"EscherSolverContainer", true},
	RT_ESCHER_CLIENT_TEXTBOX:    {"EscherClientTextbox", true},
	RT_ESCHER_CLIENT_DATA:       {"EscherClientData", true},
	RT_ESCHER_SPLIT_MENU_COLORS: {"EscherSplitMenuColors", false},
}

// RecordName returns a human readable name for a record type code.
func RecordName(typ uint16) string {
	if info, ok := recordTypes[typ]; ok {
		return info.name
	}
	return fmt.Sprintf("Unknown(0x%04X)", typ)
}

// IsContainerType reports whether records of the given type hold child
// records rather than an opaque payload.
func IsContainerType(typ uint16) bool {
	return recordTypes[typ].container
}

// encodingFromName maps the names accepted in Options.EncodingOverride to the
// canonical names used by the 8-bit text codec.
var encodingFromName = map[string]string{
	"":             "latin_1",
	"latin_1":      "latin_1",
	"latin1":       "latin_1",
	"iso8859_1":    "latin_1",
	"cp1252":       "cp1252",
	"windows_1252": "cp1252",
	"mac_roman":    "mac_roman",
}
