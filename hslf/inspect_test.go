package hslf

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// zipWith returns a zip archive holding empty members with the given names.
func zipWith(t *testing.T, names ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		if _, err := zw.Create(name); err != nil {
			t.Fatalf("zip Create error: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip Close error: %v", err)
	}
	return buf.Bytes()
}

func writeSample(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	return path
}

func TestInspectContent(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    string
	}{
		{"ppt", concat(OLE2_SIGNATURE, make([]byte, 504)), "ppt"},
		{"pptx", zipWith(t, "[Content_Types].xml", "ppt/presentation.xml"), "pptx"},
		{"pptx backslash", zipWith(t, "PPT\\Presentation.xml"), "pptx"},
		{"odp", zipWith(t, "mimetype", "content.xml"), "odp"},
		{"zip", zipWith(t, "readme.txt"), "zip"},
		{"record stream", NewSlideShow(nil).Bytes(), ""},
		{"short", []byte{0xD0, 0xCF}, ""},
	}
	for _, test := range tests {
		format, err := InspectFormat("", test.content)
		if err != nil {
			t.Fatalf("%s: InspectFormat error: %v", test.name, err)
		}
		if format != test.want {
			t.Errorf("InspectFormat(%s) = %q, want %q", test.name, format, test.want)
		}
		if _, ok := FileFormatDescriptions[format]; !ok {
			t.Errorf("%s: no description for %q", test.name, format)
		}
	}
}

func TestInspectFile(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    string
	}{
		{"sample.ppt", concat(OLE2_SIGNATURE, make([]byte, 504)), "ppt"},
		{"sample.pptx", zipWith(t, "ppt/presentation.xml"), "pptx"},
		{"sample.odp", zipWith(t, "content.xml"), "odp"},
		{"sample.txt", []byte("just some text"), ""},
		{"empty", nil, ""},
	}
	for _, test := range tests {
		format, err := InspectFormat(writeSample(t, test.name, test.content), nil)
		if err != nil {
			t.Fatalf("InspectFormat(%s) error: %v", test.name, err)
		}
		if format != test.want {
			t.Errorf("InspectFormat(%s) = %q, want %q", test.name, format, test.want)
		}
	}
}

func TestInspectMissingFile(t *testing.T) {
	if _, err := InspectFormat(filepath.Join(t.TempDir(), "missing.ppt"), nil); err == nil {
		t.Errorf("InspectFormat of a missing file should fail")
	}
}

func TestInspectBadZip(t *testing.T) {
	content := concat(ZIP_SIGNATURE, make([]byte, 16))
	if _, err := InspectFormat("", content); err == nil {
		t.Errorf("InspectFormat of a damaged zip should fail")
	}
}
