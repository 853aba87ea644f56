package hslf

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDeferredFontBinding(t *testing.T) {
	show := NewSlideShow(nil)

	named := NewTextRun("named")
	named.SetFontFamily("A")
	named.SetFontFamily("B")
	if name, ok := named.FontFamily(); !ok || name != "B" {
		t.Errorf("pending FontFamily = %q, %v", name, ok)
	}
	plain := NewTextRun("plain")

	p := NewTextParagraph(BodyType)
	for _, r := range []*TextRun{named, plain} {
		if err := p.AppendRun(r); err != nil {
			t.Fatalf("AppendRun error: %v", err)
		}
	}
	s := NewSheet(SlideSheet)
	if err := s.AppendParagraph(p); err != nil {
		t.Fatalf("AppendParagraph error: %v", err)
	}
	if show.Fonts().Len() != 1 {
		t.Fatalf("font registered before the sheet was added")
	}
	if named.CharacterStyle().Len() != 0 {
		t.Errorf("detached SetFontFamily wrote %d character properties", named.CharacterStyle().Len())
	}

	if err := show.AddSheet(s); err != nil {
		t.Fatalf("AddSheet error: %v", err)
	}
	if d := cmp.Diff([]string{"Arial", "B"}, show.Fonts().Names()); d != "" {
		t.Errorf("font names mismatch (-want +got):\n%s", d)
	}
	if got := named.FontIndex(); got != 1 {
		t.Errorf("FontIndex = %d, want 1", got)
	}
	if name, ok := named.FontFamily(); !ok || name != "B" {
		t.Errorf("attached FontFamily = %q, %v", name, ok)
	}
	if got := plain.CharacterProperty(PropFontIndex); got.Level != LevelMaster {
		t.Errorf("run without a font family has font.index from %s", got.Level)
	}
	if err := show.AddSheet(s); err == nil {
		t.Errorf("adding a sheet twice should fail")
	}

	// The pending name is flushed once; attaching again changes nothing.
	named.SetFontIndex(0)
	p.attach()
	if got := named.FontIndex(); got != 0 {
		t.Errorf("second attach rewrote font.index to %d", got)
	}
	if show.Fonts().Len() != 2 {
		t.Errorf("second attach registered fonts: %v", show.Fonts().Names())
	}
}

func TestFontFamilyUnset(t *testing.T) {
	show := NewSlideShow(nil)
	notes := NewSheet(NotesSheet)
	r := notes.AddParagraph(NotesType).AddRun("notes")
	if err := show.AddSheet(notes); err != nil {
		t.Fatalf("AddSheet error: %v", err)
	}
	// Notes pages have no master, so nothing sets font.index.
	if name, ok := r.FontFamily(); ok {
		t.Errorf("FontFamily = %q, want none", name)
	}
	r.SetFontIndex(0)
	if name, ok := r.FontFamily(); !ok || name != "Arial" {
		t.Errorf("FontFamily = %q, %v, want Arial", name, ok)
	}
}

func TestDeferredFontAppendToAttached(t *testing.T) {
	show := NewSlideShow(nil)
	s := show.CreateSlide()
	p := s.AddParagraph(OtherType)

	r := NewTextRun("late")
	r.SetFontFamily("Courier New")
	if err := p.AppendRun(r); err != nil {
		t.Fatalf("AppendRun error: %v", err)
	}
	if got := r.FontIndex(); got != 1 {
		t.Errorf("FontIndex = %d, want 1", got)
	}
	if err := p.AppendRun(r); err == nil {
		t.Errorf("appending a run twice should fail")
	}

	// Attached runs register new names right away.
	r.SetFontFamily("Symbol")
	if d := cmp.Diff([]string{"Arial", "Courier New", "Symbol"}, show.Fonts().Names()); d != "" {
		t.Errorf("font names mismatch (-want +got):\n%s", d)
	}
	if name, _ := r.FontFamily(); name != "Symbol" {
		t.Errorf("FontFamily = %q", name)
	}
}

func TestRunFlags(t *testing.T) {
	_, p, r := newBodyRun(t)

	r.SetBold(false)
	if r.CharacterStyle().Len() != 0 {
		t.Errorf("setting the inherited value wrote a property")
	}

	r.SetItalic(true)
	r.SetBold(true)
	if !r.IsBold() || !r.IsItalic() {
		t.Errorf("bold = %v, italic = %v, want both", r.IsBold(), r.IsItalic())
	}
	r.SetItalic(false)
	if !r.IsBold() || r.IsItalic() {
		t.Errorf("clearing italic changed bold")
	}

	// A new run seeds its flags from the paragraph.
	if err := p.SetCharacterOverride(PropCharFlags, 1<<UnderlineIdx); err != nil {
		t.Fatalf("SetCharacterOverride error: %v", err)
	}
	r2 := p.AddRun("more")
	r2.SetShadowed(true)
	if !r2.IsUnderlined() || !r2.IsShadowed() {
		t.Errorf("underlined = %v, shadowed = %v", r2.IsUnderlined(), r2.IsShadowed())
	}
	if v, _ := r2.CharacterStyle().Find(PropCharFlags); v != 1<<UnderlineIdx|1<<ShadowIdx {
		t.Errorf("char_flags = 0x%X", v)
	}

	r2.SetStrikethrough(true)
	r2.SetEmbossed(true)
	if !r2.IsStrikethrough() || !r2.IsEmbossed() || !r2.IsUnderlined() {
		t.Errorf("strikethrough = %v, embossed = %v", r2.IsStrikethrough(), r2.IsEmbossed())
	}
}

func TestRunValues(t *testing.T) {
	_, _, r := newBodyRun(t)

	r.SetFontSize(12.7)
	if got := r.FontSize(); got != 12 {
		t.Errorf("FontSize = %v, want 12", got)
	}
	r.SetSuperscript(-25)
	if got := r.Superscript(); got != -25 {
		t.Errorf("Superscript = %d, want -25", got)
	}

	c, ok := r.FontColor()
	if !ok || c != (color.RGBA{A: 0xFF}) {
		t.Errorf("inherited FontColor = %v, %v, want black", c, ok)
	}
	want := color.RGBA{R: 10, G: 20, B: 30, A: 0xFF}
	r.SetFontColor(want)
	if c, ok := r.FontColor(); !ok || c != want {
		t.Errorf("FontColor = %v, %v, want %v", c, ok, want)
	}
	if v, _ := r.CharacterStyle().Find(PropFontColor); v != 0xFE1E140A {
		t.Errorf("stored font.color = 0x%X", v)
	}
	r.SetFontColorBGR(0x0000FF)
	if c, _ := r.FontColor(); c != (color.RGBA{R: 0xFF, A: 0xFF}) {
		t.Errorf("FontColor after SetFontColorBGR = %v", c)
	}
}

func TestRunText(t *testing.T) {
	r := NewTextRun("a\nb\r\nc")
	if got := r.Text(); got != "a\vb\vc" {
		t.Errorf("Text = %q", got)
	}
	r.SetText("x\ry")
	if got := r.Text(); got != "x\vy" {
		t.Errorf("Text = %q", got)
	}
	if r.Paragraph() != nil {
		t.Errorf("new run has a paragraph")
	}

	// A detached run has no registry, but keeps its font.index.
	r.SetFontIndex(3)
	if name, ok := r.FontFamily(); ok {
		t.Errorf("FontFamily of a detached run = %q", name)
	}
	if got := r.FontIndex(); got != 3 {
		t.Errorf("FontIndex = %d, want 3", got)
	}
}
