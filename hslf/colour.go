package hslf

import (
	"encoding/binary"
	"image/color"
)

// colorIndexRGB marks a stored colour whose low three bytes are an
// explicit colour rather than a colour scheme index.
const colorIndexRGB = 0xFE

// ColorToStorage converts a colour to the stored form used by colour
// properties. The producer stores colours as blue, green, red (reading the
// value from the most significant byte down) and marks explicit colours
// with a fixed 0xFE index byte; alpha is not stored.
func ColorToStorage(c color.Color) int64 {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return int64(colorIndexRGB)<<24 | int64(rgba.B)<<16 | int64(rgba.G)<<8 | int64(rgba.R)
}

// ColorFromStorage converts a stored colour value back to a colour.
// Values with an index byte of 0 to 7 refer to the colour scheme; scheme
// may be nil if none is available. The second result is false if the value
// cannot be resolved.
func ColorFromStorage(v int64, scheme *ColorScheme) (color.RGBA, bool) {
	idx := int(uint32(v) >> 24)
	switch {
	case idx == colorIndexRGB:
		return bgrToRGBA(uint32(v)), true
	case idx < 8:
		if scheme == nil {
			return color.RGBA{}, false
		}
		return bgrToRGBA(scheme[idx]), true
	}
	return color.RGBA{}, false
}

func bgrToRGBA(v uint32) color.RGBA {
	return color.RGBA{
		R: uint8(v),
		G: uint8(v >> 8),
		B: uint8(v >> 16),
		A: 0xFF,
	}
}

// ColorScheme holds the eight colours of a ColorSchemeAtom: background,
// text and lines, shadows, title text, fills, accent, accent and hyperlink,
// accent and followed hyperlink. Each entry is stored in the same byte
// order as colour properties, without index byte.
type ColorScheme [8]uint32

// DecodeColorScheme decodes the payload of a ColorSchemeAtom.
func DecodeColorScheme(data []byte) (*ColorScheme, error) {
	if len(data) < 32 {
		return nil, newFormatError(TruncatedRecord, len(data), RT_COLOR_SCHEME_ATOM,
			"colour scheme needs 32 bytes, have %d", len(data))
	}
	var cs ColorScheme
	for i := range cs {
		cs[i] = binary.LittleEndian.Uint32(data[4*i:]) & 0x00FFFFFF
	}
	return &cs, nil
}

// Encode returns the ColorSchemeAtom payload.
func (cs *ColorScheme) Encode() []byte {
	buf := make([]byte, 0, 32)
	for _, v := range cs {
		buf = binary.LittleEndian.AppendUint32(buf, v)
	}
	return buf
}
