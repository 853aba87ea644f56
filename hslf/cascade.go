package hslf

import "log/slog"

// DiagnosticKey is the log attribute naming the kind of a diagnostic.
const DiagnosticKey = "diagnostic"

// Diagnostic kinds.
const (
	DiagNoMasterAvailable    = "NoMasterAvailable"
	DiagUnrecognizedProperty = "UnrecognizedProperty"
)

// CascadeLevel identifies where in the cascade a value was found.
type CascadeLevel int

const (
	LevelNone CascadeLevel = iota
	LevelRun
	LevelParagraph
	LevelMaster
	LevelDefault
)

func (l CascadeLevel) String() string {
	switch l {
	case LevelRun:
		return "run"
	case LevelParagraph:
		return "paragraph"
	case LevelMaster:
		return "master"
	case LevelDefault:
		return "default"
	}
	return "none"
}

// Resolution is the result of a cascade lookup.
type Resolution struct {
	Value int64
	Level CascadeLevel
}

// StyleContext names the run or paragraph whose effective formatting is
// requested. For a run context Paragraph may be left nil; it is then taken
// from the run.
type StyleContext struct {
	Run       *TextRun
	Paragraph *TextParagraph
}

// RunContext returns the context for a run.
func RunContext(r *TextRun) StyleContext {
	return StyleContext{Run: r, Paragraph: r.Paragraph()}
}

// ParagraphContext returns the context for a paragraph.
func ParagraphContext(p *TextParagraph) StyleContext {
	return StyleContext{Paragraph: p}
}

type propertySource struct {
	level CascadeLevel
	find  func(name string) (int64, bool)
}

func collectionSource(level CascadeLevel, pc *PropertyCollection) propertySource {
	return propertySource{level: level, find: pc.Find}
}

// Resolve computes the effective value of the named property. The lookup
// order is: the run's character collection (character properties only),
// the paragraph's collection, the master sheet's collection for the
// paragraph's run type and indent level, and finally the built-in default.
// The first level holding the property wins; levels are never merged.
//
// If the run and paragraph do not hold the property and no master sheet is
// reachable, a diagnostic is written to diag and the default is returned. Resolve never modifies a collection.
// It returns LevelNone for names no property table defines.
func Resolve(ctx StyleContext, name string, diag *slog.Logger) Resolution {
	table, def, ok := tableFor(name)
	if !ok {
		return Resolution{}
	}
	para := ctx.Paragraph
	if para == nil && ctx.Run != nil {
		para = ctx.Run.Paragraph()
	}

	sources := make([]propertySource, 0, 4)
	if table.Kind == CharacterKind {
		if ctx.Run != nil {
			sources = append(sources, collectionSource(LevelRun, ctx.Run.style))
		}
		if para != nil {
			sources = append(sources, collectionSource(LevelParagraph, para.charStyle))
		}
	} else if para != nil {
		sources = append(sources, collectionSource(LevelParagraph, para.style))
	}
	var master *MasterSheet
	if para != nil {
		master = para.masterSheet()
	}
	if master != nil {
		runType, indent, kind := para.runType, para.IndentLevel(), table.Kind
		sources = append(sources, propertySource{
			level: LevelMaster,
			find: func(name string) (int64, bool) {
				return master.StyleAttribute(runType, indent, name, kind)
			},
		})
	}

	for _, src := range sources {
		if v, ok := src.find(name); ok {
			return Resolution{Value: v, Level: src.level}
		}
	}
	if master == nil && diag != nil {
		diag.Warn("master sheet is not available",
			slog.String(DiagnosticKey, DiagNoMasterAvailable),
			slog.String("property", name))
	}
	return Resolution{Value: def.Default, Level: LevelDefault}
}
