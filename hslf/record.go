package hslf

import (
	"encoding/binary"
	"io"
	"log/slog"
)

// headerSize is the size of a record header in bytes.
const headerSize = 8

// Record is one node of the record tree.
//
// A container record holds child records; an atom holds an opaque payload.
// The length field of the on-disk header is not stored: it is recomputed
// from the children or the payload whenever the record is serialized.
type Record struct {
	// Version is the 4-bit record version.
	Version uint8

	// Instance is the 12-bit instance tag.
	Instance uint16

	// Type is the record type code.
	Type uint16

	// Data is the payload of an atom. After parsing it is a view into the
	// parsed input and must not be modified in place; use SetData.
	Data []byte

	// Children are the child records of a container.
	Children []*Record

	container bool
}

// NewAtom creates an atom record with a copy of the given payload.
func NewAtom(typ, instance uint16, data []byte) *Record {
	r := &Record{Type: typ, Instance: instance}
	r.SetData(data)
	return r
}

// NewContainer creates a container record with the given children.
// Containers use version 0xF, as written by the producer.
func NewContainer(typ, instance uint16, children ...*Record) *Record {
	return &Record{
		Version:   0xF,
		Type:      typ,
		Instance:  instance,
		Children:  children,
		container: true,
	}
}

// IsContainer reports whether r holds child records.
func (r *Record) IsContainer() bool {
	return r.container
}

// SetData replaces the payload of an atom with a copy of data.
func (r *Record) SetData(data []byte) {
	r.Data = append([]byte{}, data...)
}

// Len returns the total serialized size of r, including its header.
func (r *Record) Len() int {
	return headerSize + r.bodyLen()
}

func (r *Record) bodyLen() int {
	if !r.container {
		return len(r.Data)
	}
	n := 0
	for _, c := range r.Children {
		n += c.Len()
	}
	return n
}

// FindChild returns the first direct child with the given type, or nil.
func (r *Record) FindChild(typ uint16) *Record {
	for _, c := range r.Children {
		if c.Type == typ {
			return c
		}
	}
	return nil
}

// FindChildren returns all direct children with the given type.
func (r *Record) FindChildren(typ uint16) []*Record {
	var res []*Record
	for _, c := range r.Children {
		if c.Type == typ {
			res = append(res, c)
		}
	}
	return res
}

// Walk calls fn for r and all records below it, in document order.
// If fn returns false, the children of that record are skipped.
func (r *Record) Walk(fn func(rec *Record, depth int) bool) {
	r.walk(fn, 0)
}

func (r *Record) walk(fn func(*Record, int) bool, depth int) {
	if !fn(r, depth) {
		return
	}
	for _, c := range r.Children {
		c.walk(fn, depth+1)
	}
}

// ParseRecords parses a record stream into a sequence of top-level records.
// Atom payloads in the result share memory with data.
func ParseRecords(data []byte, opts *Options) ([]*Record, error) {
	p := &recordParser{
		data: data,
		opts: opts,
		log:  opts.logger(),
	}
	var records []*Record
	pos := 0
	for pos < len(data) {
		rec, next, err := p.parse(pos, len(data), 0)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
		pos = next
	}
	return records, nil
}

type recordParser struct {
	data []byte
	opts *Options
	log  *slog.Logger
}

// parse reads the record starting at pos, which must end at or before limit.
// It returns the record and the position just after it.
func (p *recordParser) parse(pos, limit, depth int) (*Record, int, error) {
	if pos+headerSize > len(p.data) {
		return nil, pos, newFormatError(TruncatedRecord, pos, 0,
			"need %d header bytes, have %d", headerSize, len(p.data)-pos)
	}
	if pos+headerSize > limit {
		return nil, pos, newFormatError(LengthMismatch, pos, 0,
			"%d bytes of slack at end of container", limit-pos)
	}

	// Version and instance (2 bytes), type (2 bytes), length (4 bytes)
	verInst := binary.LittleEndian.Uint16(p.data[pos : pos+2])
	rec := &Record{
		Version:  uint8(verInst & 0x000F),
		Instance: verInst >> 4,
		Type:     binary.LittleEndian.Uint16(p.data[pos+2 : pos+4]),
	}
	length := int64(binary.LittleEndian.Uint32(p.data[pos+4 : pos+8]))
	start := pos + headerSize
	end64 := int64(start) + length

	if end64 > int64(len(p.data)) {
		return nil, pos, newFormatError(TruncatedRecord, pos, rec.Type,
			"declared length %d exceeds remaining %d bytes", length, len(p.data)-start)
	}
	if end64 > int64(limit) {
		return nil, pos, newFormatError(LengthMismatch, pos, rec.Type,
			"declared length %d overruns parent by %d bytes", length, end64-int64(limit))
	}
	end := int(end64)

	p.log.Debug("record",
		slog.Int("pos", pos),
		slog.Int("depth", depth),
		slog.String("type", RecordName(rec.Type)),
		slog.Int("instance", int(rec.Instance)),
		slog.Int64("length", length))

	if !p.opts.isContainer(rec.Type) {
		rec.Data = p.data[start:end:end]
		return rec, end, nil
	}

	rec.container = true
	cur := start
	for cur < end {
		child, next, err := p.parse(cur, end, depth+1)
		if err != nil {
			return nil, pos, err
		}
		rec.Children = append(rec.Children, child)
		cur = next
	}
	return rec, end, nil
}

// Bytes serializes r and its children.
func (r *Record) Bytes() []byte {
	body := r.encodeBody()
	buf := make([]byte, headerSize, headerSize+len(body))
	binary.LittleEndian.PutUint16(buf[0:2], uint16(r.Version&0x0F)|r.Instance<<4)
	binary.LittleEndian.PutUint16(buf[2:4], r.Type)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(body)))
	return append(buf, body...)
}

// encodeBody encodes the children first, so that the header written by
// Bytes carries the computed length.
func (r *Record) encodeBody() []byte {
	if !r.container {
		return r.Data
	}
	var body []byte
	for _, c := range r.Children {
		body = append(body, c.Bytes()...)
	}
	return body
}

// EncodeRecords serializes a sequence of top-level records.
func EncodeRecords(records []*Record) []byte {
	var buf []byte
	for _, r := range records {
		buf = append(buf, r.Bytes()...)
	}
	return buf
}

// WriteRecords serializes records to w.
func WriteRecords(w io.Writer, records []*Record) error {
	_, err := w.Write(EncodeRecords(records))
	return err
}
