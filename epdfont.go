/*
Package epdfont converts outline fonts into compact bitmap font assets for
e-paper reader devices.

An asset holds every glyph of a set of unicode code-point intervals, rendered
at one size and packed at 1 or 2 bits per pixel. Assets exist in two output
forms:

▪︎ A binary container (".epdfont") loaded at runtime from removable storage.

▪︎ A static C table representation compiled into the device firmware.

Both forms are emitted from the same immutable FontAsset, so they agree on
quantization, packing and offsets byte for byte.

This package is the format core: data model, interval management, bit-depth
encoding, asset building and both serializers. Rasterization of outline fonts
lives in package raster, batch orchestration in package convert.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package epdfont

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'papyrix.epdfont'
func tracer() tracing.Trace {
	return tracing.Select("papyrix.epdfont")
}

// BitDepth is the number of bits per pixel in packed glyph bitmaps.
type BitDepth uint8

const (
	Depth1BPP BitDepth = 1 // black/white
	Depth2BPP BitDepth = 2 // 4 grey levels
)

// BitsPerPixel returns the depth as an integer pixel width.
func (d BitDepth) BitsPerPixel() int {
	return int(d)
}

func (d BitDepth) String() string {
	if d == Depth2BPP {
		return "2-bit"
	}
	return "1-bit"
}

// CodePointInterval is an inclusive range of unicode code points,
// First <= Last.
type CodePointInterval struct {
	First rune
	Last  rune
}

// Count returns the number of code points covered by the interval.
func (iv CodePointInterval) Count() int {
	return int(iv.Last-iv.First) + 1
}

// Contains reports whether cp falls into the interval.
func (iv CodePointInterval) Contains(cp rune) bool {
	return cp >= iv.First && cp <= iv.Last
}

// GlyphRecord describes one packed glyph. Field widths match the binary
// container layout; the order of fields is load-bearing for serialization.
type GlyphRecord struct {
	Width      uint8  // bitmap width in pixels
	Height     uint8  // bitmap height in pixels
	AdvanceX   uint8  // horizontal advance in pixels
	Left       int16  // horizontal bearing, origin to bitmap left edge
	Top        int16  // vertical bearing, baseline to bitmap top edge
	DataLength uint16 // packed byte count
	DataOffset uint32 // byte offset into the shared bitmap blob
	CodePoint  rune
}

// FontMetrics are the vertical line metrics of an asset, in integer pixels.
// They are derived once per conversion from a reference glyph (the vertical
// bar) rendered at the target size.
type FontMetrics struct {
	LineAdvanceY int // baseline-to-baseline distance
	Ascender     int // baseline to top of line
	Descender    int // baseline to bottom of line, typically negative
}

// FontAsset is one complete converted font: the finalized interval list, one
// glyph record per covered code point in ascending order, the concatenated
// packed bitmap blob, and the line metrics. A FontAsset is built once by an
// AssetBuilder and is immutable afterwards.
type FontAsset struct {
	Intervals []CodePointInterval
	Glyphs    []GlyphRecord
	Bitmap    []byte
	Depth     BitDepth
	Metrics   FontMetrics
}

// GlyphArrayOffset returns the index of the first glyph of interval i within
// the glyph table, i.e. the cumulative code-point count of all preceding
// intervals.
func (a *FontAsset) GlyphArrayOffset(i int) uint32 {
	var offset uint32
	for j := 0; j < i && j < len(a.Intervals); j++ {
		offset += uint32(a.Intervals[j].Count())
	}
	return offset
}

// GlyphCount returns the number of glyph records in the asset.
func (a *FontAsset) GlyphCount() int {
	return len(a.Glyphs)
}

// Lookup finds the glyph record for a code point, using the interval table
// the same way the device firmware does. The second return value is false if
// the code point is not covered by the asset.
func (a *FontAsset) Lookup(cp rune) (GlyphRecord, bool) {
	var offset uint32
	for _, iv := range a.Intervals {
		if iv.Contains(cp) {
			inx := offset + uint32(cp-iv.First)
			if inx >= uint32(len(a.Glyphs)) {
				return GlyphRecord{}, false
			}
			return a.Glyphs[inx], true
		}
		offset += uint32(iv.Count())
	}
	return GlyphRecord{}, false
}
