package hslf

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"strings"
)

// FileFormatDescriptions provides descriptions of the file types that can be inspected.
var FileFormatDescriptions = map[string]string{
	"ppt":  "PowerPoint 97-2003 compound document",
	"pptx": "PowerPoint pptx file",
	"odp":  "OpenOffice.org ODP file",
	"zip":  "Unknown ZIP file",
	"":     "Unknown file type",
}

// OLE2_SIGNATURE is the magic cookie that should appear in the first 8 bytes of a compound document.
var OLE2_SIGNATURE = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// ZIP_SIGNATURE is the magic cookie for ZIP files.
var ZIP_SIGNATURE = []byte("PK\x03\x04")

// PEEK_SIZE is the maximum size needed to peek at file signatures.
const PEEK_SIZE = 8

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return strings.Replace(path, "~", homeDir, 1), nil
}

// InspectFormat inspects the content at the supplied path or the bytes content provided
// and returns the file's type as a string, or empty string if it is not a known
// container format. A bare presentation record stream yields the empty string.
//
// The return value can always be looked up in FileFormatDescriptions
// to return a human-readable description of the format found.
func InspectFormat(path string, content []byte) (string, error) {
	var peek []byte

	if content != nil {
		if len(content) < PEEK_SIZE {
			return "", nil
		}
		peek = content[:PEEK_SIZE]
	} else {
		expandedPath, err := expandHome(path)
		if err != nil {
			return "", err
		}
		f, err := os.Open(expandedPath)
		if err != nil {
			return "", err
		}
		defer f.Close()

		peek = make([]byte, PEEK_SIZE)
		n, err := f.Read(peek)
		if err != nil && err != io.EOF {
			return "", err
		}
		peek = peek[:n]
	}

	if len(peek) < len(OLE2_SIGNATURE) {
		return "", nil
	}

	if bytes.HasPrefix(peek, OLE2_SIGNATURE) {
		return "ppt", nil
	}

	if !bytes.HasPrefix(peek, ZIP_SIGNATURE) {
		return "", nil
	}

	var zf *zip.Reader
	if content != nil {
		r, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
		if err != nil {
			return "", err
		}
		zf = r
	} else {
		expandedPath, err := expandHome(path)
		if err != nil {
			return "", err
		}
		r, err := zip.OpenReader(expandedPath)
		if err != nil {
			return "", err
		}
		defer r.Close()
		zf = &r.Reader
	}

	// Some producers use backslashes and mixed case in member names.
	componentNames := make(map[string]bool)
	for _, f := range zf.File {
		componentNames[strings.ToLower(strings.ReplaceAll(f.Name, "\\", "/"))] = true
	}

	if componentNames["ppt/presentation.xml"] {
		return "pptx", nil
	}
	if componentNames["content.xml"] {
		return "odp", nil
	}
	return "zip", nil
}
