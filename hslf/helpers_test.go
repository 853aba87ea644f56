package hslf

import (
	"bytes"
	"encoding/binary"
	"log/slog"
)

// header returns an 8-byte record header.
func header(version uint8, instance, typ uint16, length uint32) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint16(buf[0:], uint16(version&0x0F)|instance<<4)
	binary.LittleEndian.PutUint16(buf[2:], typ)
	binary.LittleEndian.PutUint32(buf[4:], length)
	return buf
}

func le16(vals ...uint16) []byte {
	var buf []byte
	for _, v := range vals {
		buf = binary.LittleEndian.AppendUint16(buf, v)
	}
	return buf
}

func le32(vals ...uint32) []byte {
	var buf []byte
	for _, v := range vals {
		buf = binary.LittleEndian.AppendUint32(buf, v)
	}
	return buf
}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

// bufferLogger returns a logger writing all levels to buf.
func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// textBox builds the records of a text box holding text as a TextBytesAtom
// with the given StyleTextPropAtom payload.
func textBox(runType RunType, text string, style []byte) *Record {
	return NewContainer(RT_ESCHER_SP_CONTAINER, 0,
		NewContainer(RT_ESCHER_CLIENT_TEXTBOX, 0,
			NewAtom(RT_TEXT_HEADER_ATOM, 0, le32(uint32(runType))),
			NewAtom(RT_TEXT_BYTES_ATOM, 0, []byte(text)),
			NewAtom(RT_STYLE_TEXT_PROP_ATOM, 0, style)))
}

// slideWith builds a Slide container using the first master, holding the
// given shapes in its drawing.
func slideWith(shapes ...*Record) *Record {
	atom := make([]byte, 24)
	binary.LittleEndian.PutUint32(atom[12:], firstMasterID)
	return NewContainer(RT_SLIDE, 0,
		&Record{Version: 2, Type: RT_SLIDE_ATOM, Data: atom},
		NewContainer(RT_PP_DRAWING, 0,
			NewContainer(RT_ESCHER_DG_CONTAINER, 0,
				NewContainer(RT_ESCHER_SPGR_CONTAINER, 0, shapes...))))
}

// countRecords returns the number of records of type typ in records.
func countRecords(records []*Record, typ uint16) int {
	n := 0
	for _, r := range records {
		r.Walk(func(rec *Record, depth int) bool {
			if rec.Type == typ {
				n++
			}
			return true
		})
	}
	return n
}
