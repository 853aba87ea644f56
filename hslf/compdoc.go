package hslf

import (
	"fmt"
	"io/fs"
)

// DocumentStreamName is the name of the compound document stream holding
// the presentation record stream.
const DocumentStreamName = "PowerPoint Document"

// StreamSource gives access to the named streams of an OLE2 compound
// document. Reading the container is left to the implementation.
type StreamSource interface {
	Stream(name string) ([]byte, error)
}

// CompDocError represents an error in compound document handling.
type CompDocError struct {
	Stream string
	Err    error
}

func (e *CompDocError) Error() string {
	return fmt.Sprintf("compound document stream %q: %v", e.Stream, e.Err)
}

func (e *CompDocError) Unwrap() error {
	return e.Err
}

// MemSource is a StreamSource holding stream contents in memory.
type MemSource map[string][]byte

// Stream returns the contents of the named stream.
func (m MemSource) Stream(name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

// OpenSource opens the presentation stored in the "PowerPoint Document"
// stream of src.
func OpenSource(src StreamSource, opts *Options) (*SlideShow, error) {
	data, err := src.Stream(DocumentStreamName)
	if err != nil {
		return nil, &CompDocError{Stream: DocumentStreamName, Err: err}
	}
	return Open(data, opts)
}
