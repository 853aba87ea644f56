package hslf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadOptions(t *testing.T) {
	opts, err := LoadOptions([]byte(`
verbosity = 2
encoding_override = "cp1252"
container_types = [0x2F00, 0x2F01]
`))
	if err != nil {
		t.Fatalf("LoadOptions error: %v", err)
	}
	want := &Options{Verbosity: 2, EncodingOverride: "cp1252", ContainerTypes: []uint16{0x2F00, 0x2F01}}
	if d := cmp.Diff(want, opts); d != "" {
		t.Errorf("options mismatch (-want +got):\n%s", d)
	}
	if !opts.isContainer(0x2F01) || opts.isContainer(0x2F02) {
		t.Errorf("isContainer does not follow ContainerTypes")
	}
	if got := opts.encoding(); got != "cp1252" {
		t.Errorf("encoding = %q", got)
	}
}

func TestLoadOptionsErrors(t *testing.T) {
	for _, doc := range []string{
		`encoding_override = "ebcdic"`,
		`verbosity = "loud"`,
		`verbosity =`,
	} {
		if _, err := LoadOptions([]byte(doc)); err == nil {
			t.Errorf("LoadOptions(%q) should fail", doc)
		}
	}
}

func TestNilOptions(t *testing.T) {
	var opts *Options
	if got := opts.encoding(); got != "latin_1" {
		t.Errorf("encoding = %q", got)
	}
	if !opts.isContainer(RT_DOCUMENT) || opts.isContainer(RT_DOCUMENT_ATOM) {
		t.Errorf("isContainer of nil options")
	}
	if opts.logger() == nil {
		t.Errorf("logger of nil options is nil")
	}
	if got := (&Options{EncodingOverride: "windows_1252"}).encoding(); got != "cp1252" {
		t.Errorf("alias encoding = %q", got)
	}
}

func TestVerbosity(t *testing.T) {
	data := NewSlideShow(nil).Bytes()
	tests := []struct {
		verbosity int
		want      []string
		unwanted  []string
	}{
		{0, nil, []string{"level=INFO", "level=DEBUG"}},
		{1, []string{"level=INFO", "opened slide show"}, []string{"level=DEBUG"}},
		{2, []string{"level=DEBUG msg=record", "type=TxMasterStyleAtom"}, nil},
	}
	for _, test := range tests {
		var buf bytes.Buffer
		if _, err := Open(data, &Options{Logfile: &buf, Verbosity: test.verbosity}); err != nil {
			t.Fatalf("Open error: %v", err)
		}
		s := buf.String()
		for _, w := range test.want {
			if !strings.Contains(s, w) {
				t.Errorf("verbosity %d: log does not contain %q", test.verbosity, w)
			}
		}
		for _, u := range test.unwanted {
			if strings.Contains(s, u) {
				t.Errorf("verbosity %d: log contains %q", test.verbosity, u)
			}
		}
	}
}
