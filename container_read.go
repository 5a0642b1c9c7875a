package epdfont

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"unicode"
)

// Limits mirroring the device-side loader: a container claiming more than
// this is either corrupt or would not fit into device memory anyway.
const (
	maxIntervalCount = 10000
	maxGlyphCount    = 100000
	maxBitmapSize    = 512 * 1024
)

var (
	ErrBadMagic   = errors.New("epdfont: not an epdfont container (bad magic)")
	ErrBadVersion = errors.New("epdfont: unsupported container version")
)

// ParseContainer decodes a binary container back into a FontAsset. It is a
// conforming reader for the format written by EncodeContainer: parsing a
// container and re-encoding the result reproduces the input byte for byte.
//
// Structural problems (truncation, out-of-bounds table sizes, glyph data
// outside the bitmap blob) are reported as errors; ParseContainer never
// returns a partially filled asset.
func ParseContainer(data []byte) (*FontAsset, error) {
	le := binary.LittleEndian
	if len(data) < containerHeaderSize+containerMetricsSize {
		return nil, fmt.Errorf("epdfont: container truncated: %d bytes", len(data))
	}
	if le.Uint32(data) != ContainerMagic {
		return nil, ErrBadMagic
	}
	if v := le.Uint16(data[4:]); v != ContainerVersion {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, v)
	}
	flags := le.Uint16(data[6:])
	depth := Depth1BPP
	if flags&flag2BitMode != 0 {
		depth = Depth2BPP
	}

	m := data[containerHeaderSize:]
	metrics := FontMetrics{
		LineAdvanceY: int(m[0]),
		Ascender:     int(int16(le.Uint16(m[2:]))),
		Descender:    int(int16(le.Uint16(m[4:]))),
	}
	intervalCount := le.Uint32(m[6:])
	glyphCount := le.Uint32(m[10:])
	bitmapSize := le.Uint32(m[14:])
	if intervalCount > maxIntervalCount || glyphCount > maxGlyphCount || bitmapSize > maxBitmapSize {
		return nil, fmt.Errorf("epdfont: container exceeds size limits (intervals=%d glyphs=%d bitmap=%d)",
			intervalCount, glyphCount, bitmapSize)
	}

	need := containerHeaderSize + containerMetricsSize +
		int(intervalCount)*containerIntervalSize +
		int(glyphCount)*containerGlyphSize +
		int(bitmapSize)
	if len(data) < need {
		return nil, fmt.Errorf("epdfont: container truncated: have %d bytes, need %d", len(data), need)
	}

	asset := &FontAsset{
		Depth:     depth,
		Metrics:   metrics,
		Intervals: make([]CodePointInterval, intervalCount),
		Glyphs:    make([]GlyphRecord, glyphCount),
	}

	p := data[containerHeaderSize+containerMetricsSize:]
	var span uint32
	for i := range asset.Intervals {
		first := le.Uint32(p)
		last := le.Uint32(p[4:])
		offset := le.Uint32(p[8:])
		p = p[containerIntervalSize:]
		if last < first {
			return nil, fmt.Errorf("epdfont: interval %d is inverted (U+%04X..U+%04X)", i, first, last)
		}
		if last > unicode.MaxRune {
			return nil, fmt.Errorf("epdfont: interval %d reaches beyond the unicode code space (0x%X)", i, last)
		}
		if offset != span {
			return nil, fmt.Errorf("epdfont: interval %d has glyph offset %d, expected %d", i, offset, span)
		}
		asset.Intervals[i] = CodePointInterval{First: rune(first), Last: rune(last)}
		span += last - first + 1
	}
	if span != glyphCount {
		return nil, fmt.Errorf("epdfont: intervals span %d code points but container holds %d glyphs", span, glyphCount)
	}

	for i := range asset.Glyphs {
		g := GlyphRecord{
			Width:      p[0],
			Height:     p[1],
			AdvanceX:   p[2],
			Left:       int16(le.Uint16(p[4:])),
			Top:        int16(le.Uint16(p[6:])),
			DataLength: le.Uint16(p[8:]),
			DataOffset: le.Uint32(p[10:]),
		}
		p = p[containerGlyphSize:]
		if uint64(g.DataOffset)+uint64(g.DataLength) > uint64(bitmapSize) {
			return nil, fmt.Errorf("epdfont: glyph %d data [%d,%d) outside bitmap blob of %d bytes",
				i, g.DataOffset, g.DataOffset+uint32(g.DataLength), bitmapSize)
		}
		asset.Glyphs[i] = g
	}

	// code points are not stored per glyph; they follow from the intervals
	inx := 0
	for _, iv := range asset.Intervals {
		for cp := iv.First; cp <= iv.Last; cp++ {
			asset.Glyphs[inx].CodePoint = cp
			inx++
		}
	}

	asset.Bitmap = make([]byte, bitmapSize)
	copy(asset.Bitmap, p)
	return asset, nil
}

// LoadContainer reads and parses a container file.
func LoadContainer(path string) (*FontAsset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	asset, err := ParseContainer(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tracer().Infof("loaded font container %s: %d glyphs, %s", path, asset.GlyphCount(), asset.Depth)
	return asset, nil
}
