package raster

import (
	"fmt"
	"unicode/utf16"

	"golang.org/x/image/math/fixed"
)

// Scanning of the 'fvar' table directly from the SFNT binary. The
// rasterization library applies variation coordinates for us, but it does not
// surface the axes' human-readable names — and axis selection works on names.
// The two tables needed for that (fvar and name) are shallow enough to walk
// by hand.

// errFontFormat produces user level errors for font parsing.
func errFontFormat(message string) error {
	return fmt.Errorf("raster: font format: %s", message)
}

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

// fixed16_16To26_6 narrows an OpenType Fixed (16.16) value to 26.6.
func fixed16_16To26_6(v int32) fixed.Int26_6 {
	return fixed.Int26_6(v >> 10)
}

// sfntTable locates a top-level table in a single-font SFNT stream and
// returns its byte segment, or nil if the font has no such table.
func sfntTable(data []byte, tag uint32) ([]byte, error) {
	if len(data) < 12 {
		return nil, errFontFormat("stream shorter than offset table")
	}
	switch v := u32(data); v {
	case 0x00010000, 0x4f54544f, 0x74727565: // TrueType, OTTO, true
	default:
		return nil, errFontFormat(fmt.Sprintf("font type not supported: %x", v))
	}
	numTables := int(u16(data[4:]))
	if len(data) < 12+numTables*16 {
		return nil, errFontFormat("table directory truncated")
	}
	for i := 0; i < numTables; i++ {
		rec := data[12+i*16:]
		if u32(rec) != tag {
			continue
		}
		offset, length := u32(rec[8:]), u32(rec[12:])
		if uint64(offset)+uint64(length) > uint64(len(data)) {
			return nil, errFontFormat("table record points outside stream")
		}
		return data[offset : offset+length], nil
	}
	return nil, nil
}

// scanVariationAxes reads the variation axes of a font binary. Fonts without
// an fvar table return an empty list; that is the common case and not an
// error.
func scanVariationAxes(data []byte) ([]VariationAxis, error) {
	fvar, err := sfntTable(data, 0x66766172) // 'fvar'
	if err != nil || fvar == nil {
		return nil, err
	}
	if len(fvar) < 16 {
		return nil, errFontFormat("fvar header truncated")
	}
	if major := u16(fvar); major != 1 {
		return nil, errFontFormat(fmt.Sprintf("fvar version %d not supported", major))
	}
	axesOffset := int(u16(fvar[4:]))
	axisCount := int(u16(fvar[8:]))
	axisSize := int(u16(fvar[10:]))
	if axisSize < 20 {
		return nil, errFontFormat("fvar axis record too small")
	}
	if axesOffset+axisCount*axisSize > len(fvar) {
		return nil, errFontFormat("fvar axis array truncated")
	}

	names, err := sfntTable(data, 0x6e616d65) // 'name'
	if err != nil {
		return nil, err
	}

	axes := make([]VariationAxis, 0, axisCount)
	for i := 0; i < axisCount; i++ {
		rec := fvar[axesOffset+i*axisSize:]
		ax := VariationAxis{
			Tag:     u32(rec),
			Minimum: fixed16_16To26_6(int32(u32(rec[4:]))),
			Default: fixed16_16To26_6(int32(u32(rec[8:]))),
			Maximum: fixed16_16To26_6(int32(u32(rec[12:]))),
		}
		ax.Name = nameTableString(names, u16(rec[18:]))
		if ax.Name == "" {
			ax.Name = ax.TagString()
		}
		axes = append(axes, ax)
		tracer().Debugf("variation axis %s (%q) default %v", ax.TagString(), ax.Name, ax.Default)
	}
	return axes, nil
}

// nameTableString resolves a name ID against the 'name' table. Windows
// unicode records win over Macintosh ones; an unresolvable ID yields "".
func nameTableString(names []byte, nameID uint16) string {
	if len(names) < 6 {
		return ""
	}
	count := int(u16(names[2:]))
	stringOffset := int(u16(names[4:]))
	if 6+count*12 > len(names) {
		return ""
	}
	best := -1
	bestScore := 0
	for i := 0; i < count; i++ {
		rec := names[6+i*12:]
		if u16(rec[6:]) != nameID {
			continue
		}
		platform, encoding, language := u16(rec), u16(rec[2:]), u16(rec[4:])
		score := 0
		switch {
		case platform == 3 && (encoding == 1 || encoding == 10) && language == 0x409:
			score = 3
		case platform == 3 && (encoding == 1 || encoding == 10):
			score = 2
		case platform == 1 && encoding == 0:
			score = 1
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return ""
	}
	rec := names[6+best*12:]
	length, offset := int(u16(rec[8:])), int(u16(rec[10:]))
	if stringOffset+offset+length > len(names) {
		return ""
	}
	raw := names[stringOffset+offset : stringOffset+offset+length]
	if u16(rec) == 3 { // UTF-16BE
		codes := make([]uint16, 0, len(raw)/2)
		for i := 0; i+1 < len(raw); i += 2 {
			codes = append(codes, u16(raw[i:]))
		}
		return string(utf16.Decode(codes))
	}
	return string(raw) // Mac roman, ASCII in practice for axis names
}
