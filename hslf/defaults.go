package hslf

import "encoding/binary"

// defaultColorScheme is the scheme of a new master sheet.
var defaultColorScheme = ColorScheme{
	0xFFFFFF, // background
	0x000000, // text and lines
	0x808080, // shadows
	0x000000, // title text
	0xE3E0BB, // fills
	0x993333, // accent
	0x999900, // accent and hyperlink
	0x00CC99, // accent and followed hyperlink
}

// Scheme colour indices.
const (
	schemeText  = 1
	schemeTitle = 3
)

type propSetting struct {
	name  string
	value int64
}

func newCollection(kind PropertyKind, settings ...propSetting) *PropertyCollection {
	pc := NewPropertyCollection(kind)
	for _, s := range settings {
		if err := pc.Set(s.name, s.value); err != nil {
			panic(err)
		}
	}
	return pc
}

// defaultMasterStyles returns the master styles of a new master sheet.
// Only the first level of each run type carries the complete character
// defaults; higher levels inherit them.
func defaultMasterStyles() []*MasterStyles {
	schemeColor := func(idx int64) int64 { return idx << 24 }

	title := &MasterStyles{RunType: TitleType}
	title.Levels = append(title.Levels, MasterStyleLevel{
		Paragraph: newCollection(ParagraphKind,
			propSetting{PropAlignment, AlignCenter}),
		Character: newCollection(CharacterKind,
			propSetting{PropCharFlags, 0},
			propSetting{PropFontIndex, 0},
			propSetting{PropFontSize, 44},
			propSetting{PropFontColor, schemeColor(schemeTitle)}),
	})

	body := &MasterStyles{RunType: BodyType}
	for i, size := range []int64{32, 28, 24, 20, 20} {
		para := newCollection(ParagraphKind,
			propSetting{PropParagraphFlags, 1 << BulletIdx},
			propSetting{PropBulletChar, 0x2022},
			propSetting{PropTextOffset, int64(i+1) * 432},
			propSetting{PropBulletOffset, int64(i) * 432})
		para.IndentLevel = i
		char := newCollection(CharacterKind, propSetting{PropFontSize, size})
		if i == 0 {
			char = newCollection(CharacterKind,
				propSetting{PropCharFlags, 0},
				propSetting{PropFontIndex, 0},
				propSetting{PropFontSize, size},
				propSetting{PropFontColor, schemeColor(schemeText)})
		}
		char.IndentLevel = i
		body.Levels = append(body.Levels, MasterStyleLevel{Paragraph: para, Character: char})
	}

	plain := func(runType RunType, size int64) *MasterStyles {
		return &MasterStyles{
			RunType: runType,
			Levels: []MasterStyleLevel{{
				Paragraph: newCollection(ParagraphKind,
					propSetting{PropAlignment, AlignLeft}),
				Character: newCollection(CharacterKind,
					propSetting{PropCharFlags, 0},
					propSetting{PropFontIndex, 0},
					propSetting{PropFontSize, size},
					propSetting{PropFontColor, schemeColor(schemeText)}),
			}},
		}
	}

	res := []*MasterStyles{title, body, plain(NotesType, 12), plain(OtherType, 18)}
	for _, ms := range res {
		ms.LevelCount = len(ms.Levels)
	}
	return res
}

// defaultRecords builds the record stream of an empty presentation.
func defaultRecords() []*Record {
	// DocumentAtom: slide and notes size in master units, zoom, persist
	// references, first slide number, size type and four flag bytes.
	docAtom := make([]byte, 40)
	binary.LittleEndian.PutUint32(docAtom[0:], 5760)
	binary.LittleEndian.PutUint32(docAtom[4:], 4320)
	binary.LittleEndian.PutUint32(docAtom[8:], 4320)
	binary.LittleEndian.PutUint32(docAtom[12:], 5760)
	binary.LittleEndian.PutUint32(docAtom[16:], 1)
	binary.LittleEndian.PutUint32(docAtom[20:], 2)
	binary.LittleEndian.PutUint16(docAtom[32:], 1)
	docAtom[39] = 1

	arial := FontEntity{Name: "Arial", FontType: 4, PitchAndFamily: 0x22}
	document := NewContainer(RT_DOCUMENT, 0,
		&Record{Version: 1, Type: RT_DOCUMENT_ATOM, Data: docAtom},
		NewContainer(RT_ENVIRONMENT, 0,
			NewContainer(RT_FONT_COLLECTION, 0,
				NewAtom(RT_FONT_ENTITY_ATOM, 0, arial.Encode()))),
		NewAtom(RT_END_DOCUMENT, 0, nil))

	master := NewContainer(RT_MAIN_MASTER, 0,
		&Record{Version: 2, Type: RT_SLIDE_ATOM, Data: make([]byte, 24)},
		NewAtom(RT_COLOR_SCHEME_ATOM, 0, defaultColorScheme.Encode()))
	for _, ms := range defaultMasterStyles() {
		master.Children = append(master.Children,
			NewAtom(RT_TX_MASTER_STYLE_ATOM, uint16(ms.RunType), ms.Encode()))
	}
	return []*Record{document, master}
}
