package hslf

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/pelletier/go-toml/v2"
)

// Options contains options for parsing and opening a record stream.
// A nil *Options is valid and selects the defaults.
type Options struct {
	// Logfile is an open file to which diagnostics are written.
	// It is ignored when Logger is set.
	Logfile io.Writer `toml:"-"`

	// Verbosity increases the volume of trace material written to the logfile.
	// 0 logs warnings only, 1 adds informational messages, 2 and above adds
	// a per-record parse trace.
	Verbosity int `toml:"verbosity"`

	// Logger receives diagnostics. If nil, a text logger on Logfile is used,
	// or diagnostics are discarded when Logfile is nil too.
	Logger *slog.Logger `toml:"-"`

	// EncodingOverride selects the code page for 8-bit text atoms.
	// One of "latin_1" (the default), "cp1252" or "mac_roman".
	EncodingOverride string `toml:"encoding_override"`

	// ContainerTypes lists additional record type codes to be parsed as
	// containers, for producers that emit private container records.
	ContainerTypes []uint16 `toml:"container_types"`
}

// LoadOptions reads options from a TOML document such as
//
//	verbosity = 1
//	encoding_override = "cp1252"
//	container_types = [0x1388]
func LoadOptions(data []byte) (*Options, error) {
	opts := &Options{}
	if err := toml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("parse options: %w", err)
	}
	if _, ok := encodingFromName[opts.EncodingOverride]; !ok {
		return nil, NewHSLFError("unknown encoding %q", opts.EncodingOverride)
	}
	return opts, nil
}

func (o *Options) logger() *slog.Logger {
	if o == nil {
		return slog.New(slog.DiscardHandler)
	}
	if o.Logger != nil {
		return o.Logger
	}
	if o.Logfile == nil {
		return slog.New(slog.DiscardHandler)
	}
	level := slog.LevelWarn
	switch {
	case o.Verbosity >= 2:
		level = slog.LevelDebug
	case o.Verbosity == 1:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(o.Logfile, &slog.HandlerOptions{Level: level}))
}

func (o *Options) isContainer(typ uint16) bool {
	if IsContainerType(typ) {
		return true
	}
	if o == nil {
		return false
	}
	for _, c := range o.ContainerTypes {
		if c == typ {
			return true
		}
	}
	return false
}

func (o *Options) encoding() string {
	if o == nil {
		return "latin_1"
	}
	if enc, ok := encodingFromName[o.EncodingOverride]; ok {
		return enc
	}
	return "latin_1"
}
