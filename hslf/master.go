package hslf

import (
	"bytes"
	"fmt"
	"log/slog"
)

// MasterSheet is a template sheet. It supplies the default paragraph and
// character collections for each run type and indent level, and has no
// master of its own.
type MasterSheet struct {
	// ID is the identifier slides use to select this master.
	ID uint32

	record *Record
	styles map[RunType]*MasterStyles
	atoms  map[RunType]*Record
	scheme *ColorScheme
}

func loadMasterSheet(id uint32, rec *Record, diag *slog.Logger) (*MasterSheet, error) {
	m := &MasterSheet{
		ID:     id,
		record: rec,
		styles: make(map[RunType]*MasterStyles),
		atoms:  make(map[RunType]*Record),
	}
	for _, c := range rec.FindChildren(RT_TX_MASTER_STYLE_ATOM) {
		runType := RunType(c.Instance)
		ms, err := DecodeMasterStyles(runType, c.Data, diag)
		if err != nil {
			return nil, fmt.Errorf("master %#x, %s styles: %w", id, runType, err)
		}
		m.styles[runType] = ms
		m.atoms[runType] = c
	}
	if c := rec.FindChild(RT_COLOR_SCHEME_ATOM); c != nil {
		scheme, err := DecodeColorScheme(c.Data)
		if err != nil {
			return nil, fmt.Errorf("master %#x: %w", id, err)
		}
		m.scheme = scheme
	}
	return m, nil
}

// Record returns the MainMaster container the sheet was loaded from.
func (m *MasterSheet) Record() *Record {
	return m.record
}

// Styles returns the style set for a run type, or nil.
func (m *MasterSheet) Styles(runType RunType) *MasterStyles {
	return m.styles[runType]
}

// ColorScheme returns the master's colour scheme, or nil.
func (m *MasterSheet) ColorScheme() *ColorScheme {
	return m.scheme
}

// StyleAttribute looks up the master default of the named property for
// text of the given run type and indent level.
//
// If the level does not define the property, the lower levels are searched
// in turn. If no level of the run type defines it, derived run types (center
// body, half body, quarter body, center title) repeat the search in the
// styles of their base type.
func (m *MasterSheet) StyleAttribute(runType RunType, level int, name string, kind PropertyKind) (int64, bool) {
	t := runType
	for {
		if ms := m.styles[t]; ms != nil {
			for l := level; l >= 0; l-- {
				if v, ok := ms.Level(l, kind).Find(name); ok {
					return v, true
				}
			}
		}
		base, ok := t.baseType()
		if !ok {
			return 0, false
		}
		t = base
	}
}

// SetStyleAttribute sets the master default of the named property for a
// run type and indent level. The level must exist in the master.
func (m *MasterSheet) SetStyleAttribute(runType RunType, level int, name string, value int64) error {
	table, _, ok := tableFor(name)
	if !ok {
		return NewHSLFError("unknown property %q", name)
	}
	ms := m.styles[runType]
	if ms == nil {
		return NewHSLFError("master %#x has no %s styles", m.ID, runType)
	}
	pc := ms.Level(level, table.Kind)
	if pc == nil {
		return NewHSLFError("master %#x has no %s style for level %d", m.ID, runType, level)
	}
	return pc.Set(name, value)
}

// sync writes modified style sets back to their atoms.
func (m *MasterSheet) sync() {
	for runType, atom := range m.atoms {
		if enc := m.styles[runType].Encode(); !bytes.Equal(enc, atom.Data) {
			atom.SetData(enc)
		}
	}
	if m.scheme != nil {
		syncColorScheme(m.record, m.scheme)
	}
}

// syncColorScheme rewrites the ColorSchemeAtom of rec if scheme changed.
func syncColorScheme(rec *Record, scheme *ColorScheme) {
	atom := rec.FindChild(RT_COLOR_SCHEME_ATOM)
	if atom == nil {
		return
	}
	if cur, err := DecodeColorScheme(atom.Data); err == nil && *cur == *scheme {
		return
	}
	atom.SetData(scheme.Encode())
}
