package hslf

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/exp/maps"
)

// Dump dumps a record stream file in char & hex format for debugging.
//
// filename: The path to the file to be dumped.
// outfile: An open file, to which the dump is written.
// unnumbered: If true, omit offsets (for meaningful diffs).
func Dump(filename string, outfile io.Writer, unnumbered bool) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	records, err := ParseRecords(data, nil)
	if err != nil {
		return err
	}
	return DumpRecords(records, outfile, unnumbered)
}

// CountRecords summarises the file's records.
// It produces a table of (record name, count, payload size) sorted by
// record type.
//
// filename: The path to the file to be summarised.
// outfile: An open file, to which the summary is written.
func CountRecords(filename string, outfile io.Writer) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	records, err := ParseRecords(data, nil)
	if err != nil {
		return err
	}
	_, err = io.WriteString(outfile, RecordSummary(records)+"\n")
	return err
}

type dumper struct {
	w          io.Writer
	unnumbered bool
	err        error
}

func (d *dumper) printf(format string, args ...interface{}) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format, args...)
}

// DumpRecords writes the record tree with a hex dump of each atom payload.
// Master style atoms are decoded as well.
func DumpRecords(records []*Record, outfile io.Writer, unnumbered bool) error {
	d := &dumper{w: outfile, unnumbered: unnumbered}
	pos := 0
	for _, r := range records {
		d.record(r, pos, 0)
		pos += r.Len()
	}
	return d.err
}

func (d *dumper) record(r *Record, pos, depth int) {
	indent := strings.Repeat("  ", depth)
	if !d.unnumbered {
		d.printf("%8d: ", pos)
	}
	d.printf("%s%s (0x%04X) ver=%d inst=%d len=%d\n",
		indent, RecordName(r.Type), r.Type, r.Version, r.Instance, r.bodyLen())

	if r.IsContainer() {
		pos += headerSize
		for _, c := range r.Children {
			d.record(c, pos, depth+1)
			pos += c.Len()
		}
		return
	}
	if d.err == nil {
		HexCharDump(r.Data, 0, len(r.Data), pos+headerSize, d.w, d.unnumbered)
	}
	if r.Type == RT_TX_MASTER_STYLE_ATOM {
		ms, err := DecodeMasterStyles(RunType(r.Instance), r.Data, nil)
		if err != nil {
			d.printf("%s  ** %v\n", indent, err)
			return
		}
		for i, level := range ms.Levels {
			d.collection(level.Paragraph, fmt.Sprintf("%s  level %d", indent, i), depth+2)
			if level.Character != nil {
				d.collection(level.Character, "", depth+2)
			}
		}
	}
}

func (d *dumper) collection(pc *PropertyCollection, header string, depth int) {
	if d.err != nil {
		return
	}
	pc.Dump(d.w, header, "", depth*2)
}

// Dump writes the properties of the collection to w, one per line.
func (pc *PropertyCollection) Dump(w io.Writer, header, footer string, indent int) {
	if header != "" {
		fmt.Fprintf(w, "%s\n", header)
	}
	pad := strings.Repeat(" ", indent)
	fmt.Fprintf(w, "%s%s mask=0x%08X indent=%d\n", pad, pc.Kind, pc.Mask, pc.IndentLevel)
	for _, e := range pc.entries {
		if !e.Known {
			fmt.Fprintf(w, "%s  bit %d: %d bytes of unknown data\n", pad, e.Bit, len(e.Raw))
			continue
		}
		fmt.Fprintf(w, "%s  %s = %d (0x%X)\n", pad, e.Name, e.Value, e.Value)
	}
	if footer != "" {
		fmt.Fprintf(w, "%s\n", footer)
	}
}

// HexCharDump writes data[ofs:ofs+dlen] as lines of 16 hex bytes followed
// by the same bytes as characters. NUL is shown as '~' and other
// unprintable bytes as '?'.
func HexCharDump(data []byte, ofs, dlen, base int, w io.Writer, unnumbered bool) {
	endpos := min(ofs+dlen, len(data))
	for pos := ofs; pos < endpos; pos += 16 {
		endsub := min(pos+16, endpos)
		hexd := make([]string, 0, 16)
		var chard strings.Builder
		for _, c := range data[pos:endsub] {
			hexd = append(hexd, fmt.Sprintf("%02x", c))
			switch {
			case c == 0:
				chard.WriteByte('~')
			case c < 32 || c > 126:
				chard.WriteByte('?')
			default:
				chard.WriteByte(c)
			}
		}
		if unnumbered {
			fmt.Fprintf(w, "%-48s %s\n", strings.Join(hexd, " "), chard.String())
		} else {
			fmt.Fprintf(w, "%5x: %-48s %s\n", base+pos-ofs, strings.Join(hexd, " "), chard.String())
		}
	}
}

// RecordSummary renders a table counting the records of each type, with
// the total payload size of the atoms among them.
func RecordSummary(records []*Record) string {
	counts := make(map[uint16]int)
	sizes := make(map[uint16]uint64)
	for _, r := range records {
		r.Walk(func(rec *Record, depth int) bool {
			counts[rec.Type]++
			if !rec.IsContainer() {
				sizes[rec.Type] += uint64(len(rec.Data))
			}
			return true
		})
	}

	types := maps.Keys(counts)
	slices.Sort(types)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Type", "Record", "Count", "Payload"})
	for _, typ := range types {
		size := "-"
		if !IsContainerType(typ) {
			size = humanize.Bytes(sizes[typ])
		}
		tw.AppendRow(table.Row{fmt.Sprintf("0x%04X", typ), RecordName(typ), counts[typ], size})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
