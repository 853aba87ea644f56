package hslf

import (
	"image/color"
	"log/slog"
)

// fontBinding records how a run's font family is stored. A run which is
// not yet part of a slide show has no font registry, so a font family set
// on it is kept as a pending name until the run is attached.
type fontBinding interface {
	isFontBinding()
}

// fontDetached holds the pending font name, if one was set.
type fontDetached struct {
	name string
	set  bool
}

// fontAttached means the font family lives in the run's font.index
// property.
type fontAttached struct{}

func (fontDetached) isFontBinding() {}
func (fontAttached) isFontBinding() {}

// TextRun is a stretch of text with one character property collection.
type TextRun struct {
	text      string
	style     *PropertyCollection
	paragraph *TextParagraph
	font      fontBinding
}

// NewTextRun returns a run which does not belong to a paragraph. Line
// breaks in text become soft line breaks.
func NewTextRun(text string) *TextRun {
	return &TextRun{
		text:  toInternalString(text),
		style: NewPropertyCollection(CharacterKind),
		font:  fontDetached{},
	}
}

// Text returns the text of the run.
func (r *TextRun) Text() string {
	return r.text
}

// SetText replaces the text of the run. Line breaks become soft line
// breaks.
func (r *TextRun) SetText(text string) {
	r.text = toInternalString(text)
}

// Paragraph returns the paragraph holding the run, or nil.
func (r *TextRun) Paragraph() *TextParagraph {
	if r == nil {
		return nil
	}
	return r.paragraph
}

// CharacterStyle returns the run's own character property collection.
func (r *TextRun) CharacterStyle() *PropertyCollection {
	return r.style
}

// CharacterProperty returns the effective value of a character property.
func (r *TextRun) CharacterProperty(name string) Resolution {
	return Resolve(RunContext(r), name, r.diag())
}

// SetCharacterProperty sets a character property on the run itself.
func (r *TextRun) SetCharacterProperty(name string, value int64) error {
	return r.style.Set(name, value)
}

// ClearCharacterProperty removes a character property from the run, so that
// its value is inherited again.
func (r *TextRun) ClearCharacterProperty(name string) bool {
	return r.style.Remove(name)
}

func (r *TextRun) flag(sub uint) bool {
	return r.CharacterProperty(PropCharFlags).Value&(1<<sub) != 0
}

// setFlag changes one sub-flag of char_flags. Nothing is written if the
// effective value already matches; otherwise the other sub-flags keep
// their effective values.
func (r *TextRun) setFlag(sub uint, on bool) {
	res := r.CharacterProperty(PropCharFlags)
	if (res.Value&(1<<sub) != 0) == on {
		return
	}
	_ = r.style.SetFlag(PropCharFlags, sub, on, res.Value)
}

// IsBold reports whether the text is bold.
func (r *TextRun) IsBold() bool { return r.flag(BoldIdx) }

// SetBold sets whether the text is bold.
func (r *TextRun) SetBold(on bool) { r.setFlag(BoldIdx, on) }

// IsItalic reports whether the text is italic.
func (r *TextRun) IsItalic() bool { return r.flag(ItalicIdx) }

// SetItalic sets whether the text is italic.
func (r *TextRun) SetItalic(on bool) { r.setFlag(ItalicIdx, on) }

// IsUnderlined reports whether the text is underlined.
func (r *TextRun) IsUnderlined() bool { return r.flag(UnderlineIdx) }

// SetUnderlined sets whether the text is underlined.
func (r *TextRun) SetUnderlined(on bool) { r.setFlag(UnderlineIdx, on) }

// IsShadowed reports whether the text has a shadow.
func (r *TextRun) IsShadowed() bool { return r.flag(ShadowIdx) }

// SetShadowed sets whether the text has a shadow.
func (r *TextRun) SetShadowed(on bool) { r.setFlag(ShadowIdx, on) }

// IsEmbossed reports whether the text is embossed.
func (r *TextRun) IsEmbossed() bool { return r.flag(ReliefIdx) }

// SetEmbossed sets whether the text is embossed.
func (r *TextRun) SetEmbossed(on bool) { r.setFlag(ReliefIdx, on) }

// IsStrikethrough reports whether the text is struck through.
func (r *TextRun) IsStrikethrough() bool { return r.flag(StrikethroughIdx) }

// SetStrikethrough sets whether the text is struck through.
func (r *TextRun) SetStrikethrough(on bool) { r.setFlag(StrikethroughIdx, on) }

// FontSize returns the font size in points. Sizes are stored as whole
// points.
func (r *TextRun) FontSize() float64 {
	return float64(r.CharacterProperty(PropFontSize).Value)
}

// SetFontSize sets the font size in points. The fraction is discarded.
func (r *TextRun) SetFontSize(size float64) {
	r.style.set(mustLookup(CharacterProps, PropFontSize), int64(size))
}

// Superscript returns the baseline offset in percent of the font size:
// positive for superscript, negative for subscript, zero for normal text.
func (r *TextRun) Superscript() int {
	return int(r.CharacterProperty(PropSuperscript).Value)
}

// SetSuperscript sets the baseline offset in percent of the font size.
func (r *TextRun) SetSuperscript(percent int) {
	r.style.set(mustLookup(CharacterProps, PropSuperscript), int64(percent))
}

// FontIndex returns the effective index of the font in the slide show's
// font collection.
func (r *TextRun) FontIndex() int {
	return int(r.CharacterProperty(PropFontIndex).Value)
}

// SetFontIndex sets the index of the font in the font collection.
func (r *TextRun) SetFontIndex(idx int) {
	r.style.set(mustLookup(CharacterProps, PropFontIndex), int64(idx))
}

// FontFamily returns the name of the run's font. For a run which is not
// part of a slide show this is the pending name set by SetFontFamily. The
// result is false if no run, paragraph or master sets font.index.
func (r *TextRun) FontFamily() (string, bool) {
	if d, ok := r.font.(fontDetached); ok {
		return d.name, d.set
	}
	fc := r.fontCollection()
	if fc == nil {
		return "", false
	}
	res := r.CharacterProperty(PropFontIndex)
	if res.Level == LevelDefault {
		return "", false
	}
	return fc.FontWithID(int(res.Value))
}

// SetFontFamily sets the run's font by name. If the run is part of a slide
// show the name is registered in its font collection right away; otherwise
// it is registered when the run is attached.
func (r *TextRun) SetFontFamily(name string) {
	if _, ok := r.font.(fontAttached); ok {
		if fc := r.fontCollection(); fc != nil {
			r.SetFontIndex(fc.AddFont(name))
			return
		}
	}
	r.font = fontDetached{name: name, set: true}
}

// FontColor returns the effective font colour. Colours given as an index
// into the colour scheme are looked up in the sheet's scheme; the result is
// false if that is not possible.
func (r *TextRun) FontColor() (color.RGBA, bool) {
	v := r.CharacterProperty(PropFontColor).Value
	var scheme *ColorScheme
	if p := r.paragraph; p != nil && p.sheet != nil {
		scheme = p.sheet.ColorScheme()
	}
	return ColorFromStorage(v, scheme)
}

// SetFontColor sets the font colour. Alpha is not stored.
func (r *TextRun) SetFontColor(c color.Color) {
	r.style.set(mustLookup(CharacterProps, PropFontColor), ColorToStorage(c))
}

// SetFontColorBGR sets the font colour from a value laid out as
// 0x00BBGGRR.
func (r *TextRun) SetFontColorBGR(bgr uint32) {
	r.style.set(mustLookup(CharacterProps, PropFontColor), int64(colorIndexRGB)<<24|int64(bgr&0x00FFFFFF))
}

func (r *TextRun) fontCollection() *FontCollection {
	p := r.paragraph
	if p == nil || p.sheet == nil || p.sheet.show == nil {
		return nil
	}
	return p.sheet.show.fonts
}

// attach flushes a pending font name into font.index. It does nothing
// unless the run is part of a slide show, and at most once per pending
// name.
func (r *TextRun) attach() {
	d, ok := r.font.(fontDetached)
	if !ok {
		return
	}
	fc := r.fontCollection()
	if fc == nil {
		return
	}
	if d.set {
		r.SetFontIndex(fc.AddFont(d.name))
	}
	r.font = fontAttached{}
}

// detach forgets the font registry. font.index stays in the run's
// collection; a pending name is kept.
func (r *TextRun) detach() {
	if _, ok := r.font.(fontAttached); ok {
		r.font = fontDetached{}
	}
}

func (r *TextRun) diag() *slog.Logger {
	if r.paragraph == nil {
		return slog.Default()
	}
	return r.paragraph.diag()
}
