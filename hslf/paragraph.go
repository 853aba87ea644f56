package hslf

import (
	"log/slog"
	"strings"
)

// TextParagraph is a paragraph of text: an ordered list of runs sharing one
// paragraph property collection.
type TextParagraph struct {
	runType RunType

	// style holds the paragraph properties.
	style *PropertyCollection

	// charStyle holds character properties applying to every run of the
	// paragraph which does not set them itself.
	charStyle *PropertyCollection

	runs  []*TextRun
	sheet *Sheet
}

// NewTextParagraph returns an empty paragraph which does not belong to a
// sheet.
func NewTextParagraph(runType RunType) *TextParagraph {
	return &TextParagraph{
		runType:   runType,
		style:     NewPropertyCollection(ParagraphKind),
		charStyle: NewPropertyCollection(CharacterKind),
	}
}

// RunType returns the run type used to select master defaults.
func (p *TextParagraph) RunType() RunType {
	return p.runType
}

// IndentLevel returns the nesting depth of the paragraph.
func (p *TextParagraph) IndentLevel() int {
	return p.style.IndentLevel
}

// SetIndentLevel sets the nesting depth of the paragraph.
func (p *TextParagraph) SetIndentLevel(level int) {
	p.style.IndentLevel = level
}

// Sheet returns the sheet holding the paragraph, or nil.
func (p *TextParagraph) Sheet() *Sheet {
	return p.sheet
}

// Runs returns the runs of the paragraph.
func (p *TextParagraph) Runs() []*TextRun {
	return append([]*TextRun(nil), p.runs...)
}

// Text returns the text of all runs.
func (p *TextParagraph) Text() string {
	var sb strings.Builder
	for _, r := range p.runs {
		sb.WriteString(r.text)
	}
	return sb.String()
}

// AddRun appends a new run with the given text.
func (p *TextParagraph) AddRun(text string) *TextRun {
	r := NewTextRun(text)
	_ = p.AppendRun(r)
	return r
}

// AppendRun appends r to the paragraph. If the paragraph is part of a slide
// show, a pending font name of the run is registered.
func (p *TextParagraph) AppendRun(r *TextRun) error {
	if r.paragraph != nil {
		return NewHSLFError("run already belongs to a paragraph")
	}
	r.paragraph = p
	p.runs = append(p.runs, r)
	if p.attached() {
		r.attach()
	}
	return nil
}

// ParagraphStyle returns the paragraph's own property collection.
func (p *TextParagraph) ParagraphStyle() *PropertyCollection {
	return p.style
}

// CharacterOverrides returns the collection of character properties set for
// the whole paragraph.
func (p *TextParagraph) CharacterOverrides() *PropertyCollection {
	return p.charStyle
}

// ParagraphProperty returns the effective value of a paragraph property.
func (p *TextParagraph) ParagraphProperty(name string) Resolution {
	return Resolve(ParagraphContext(p), name, p.diag())
}

// SetParagraphProperty sets a paragraph property on the paragraph itself.
func (p *TextParagraph) SetParagraphProperty(name string, value int64) error {
	return p.style.Set(name, value)
}

// SetCharacterOverride sets a character property for every run of the
// paragraph which does not set it itself.
func (p *TextParagraph) SetCharacterOverride(name string, value int64) error {
	return p.charStyle.Set(name, value)
}

// Alignment returns the effective text alignment, one of the Align
// constants.
func (p *TextParagraph) Alignment() int {
	return int(p.ParagraphProperty(PropAlignment).Value)
}

// SetAlignment sets the text alignment.
func (p *TextParagraph) SetAlignment(align int) {
	p.style.set(mustLookup(ParagraphProps, PropAlignment), int64(align))
}

// IsBullet reports whether the paragraph is bulleted.
func (p *TextParagraph) IsBullet() bool {
	v := p.ParagraphProperty(PropParagraphFlags).Value
	return v&(1<<BulletIdx) != 0
}

// SetBullet turns bullets on or off.
func (p *TextParagraph) SetBullet(on bool) {
	res := p.ParagraphProperty(PropParagraphFlags)
	if (res.Value&(1<<BulletIdx) != 0) == on {
		return
	}
	_ = p.style.SetFlag(PropParagraphFlags, BulletIdx, on, res.Value)
}

func (p *TextParagraph) attached() bool {
	return p.sheet != nil && p.sheet.show != nil
}

// attach registers pending font names once the paragraph is part of a
// slide show.
func (p *TextParagraph) attach() {
	for _, r := range p.runs {
		r.attach()
	}
}

// detach cuts the paragraph off its sheet.
func (p *TextParagraph) detach() {
	p.sheet = nil
	for _, r := range p.runs {
		r.detach()
	}
}

func (p *TextParagraph) masterSheet() *MasterSheet {
	if p.sheet == nil {
		return nil
	}
	return p.sheet.MasterSheet()
}

func (p *TextParagraph) diag() *slog.Logger {
	if p.sheet == nil {
		return slog.Default()
	}
	return p.sheet.logger()
}

func mustLookup(table *PropertyTable, name string) *PropertyDefinition {
	def, ok := table.Lookup(name)
	if !ok {
		panic("hslf: no property " + name)
	}
	return def
}
