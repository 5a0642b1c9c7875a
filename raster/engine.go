package raster

import (
	"golang.org/x/image/math/fixed"
)

// GlyphBitmap is one rendered glyph: an 8-bit greyscale coverage bitmap plus
// the metrics needed to place it.
type GlyphBitmap struct {
	// Pixels holds Width*Height samples, row-major, one byte per pixel,
	// pitch == Width. 0 is blank, 255 fully inked. Empty for zero-area
	// glyphs such as the space.
	Pixels []byte
	Width  int
	Height int

	// Left and Top are the pixel bearings from the glyph origin to the
	// bitmap's top-left corner. Top is measured upwards from the baseline.
	Left int
	Top  int

	// AdvanceX is the unrounded horizontal advance in 26.6 fixed point.
	AdvanceX fixed.Int26_6
}

// LineMetrics are the vertical metrics of a font resource at the configured
// size, in 26.6 fixed point.
type LineMetrics struct {
	Height    fixed.Int26_6 // baseline-to-baseline distance
	Ascender  fixed.Int26_6
	Descender fixed.Int26_6 // negative below the baseline
}

// VariationAxis describes one design axis of a variable font. Coordinates
// are design-space values in 26.6 fixed point.
type VariationAxis struct {
	Tag     uint32 // four-byte axis tag, e.g. 'wght'
	Name    string // axis name from the font's name table, may equal the tag
	Minimum fixed.Int26_6
	Default fixed.Int26_6
	Maximum fixed.Int26_6
}

// TagString renders the axis tag as its four ASCII bytes.
func (ax VariationAxis) TagString() string {
	return string([]byte{byte(ax.Tag >> 24), byte(ax.Tag >> 16), byte(ax.Tag >> 8), byte(ax.Tag)})
}

// Engine rasterizes glyphs of a single font resource at a fixed target size.
// Implementations are stateful handles on the underlying rasterization
// library; they are constructed per conversion run and released with Close.
//
// An Engine is not safe for concurrent use.
type Engine interface {
	// GlyphIndex maps a code point to the font's glyph index. Index 0 is
	// the missing-glyph slot: a zero return means the font does not cover
	// the code point, which is a normal outcome.
	GlyphIndex(cp rune) uint32

	// RenderGlyph rasterizes the glyph for a covered code point. It fails
	// for code points with glyph index 0 and for glyph formats the engine
	// cannot flatten (color bitmap strikes, SVG glyphs).
	RenderGlyph(cp rune) (*GlyphBitmap, error)

	// Metrics returns the font's scaled vertical line metrics.
	Metrics() LineMetrics

	// Axes lists the variation axes of a variable font, in fvar order.
	// Non-variable fonts return an empty list.
	Axes() []VariationAxis

	// SetDesignCoords applies design-space coordinates to the font's
	// variation axes, in the order reported by Axes. Calling it on a
	// non-variable font with an empty slice is a no-op.
	SetDesignCoords(coords []fixed.Int26_6) error

	// Close releases the engine handle. The engine must not be used
	// afterwards.
	Close() error
}

// Floor26_6 converts a 26.6 fixed-point value to integer pixels, rounding
// towards negative infinity. Used for advances and the descender: the
// converted font must never claim more space than the outline occupies.
func Floor26_6(v fixed.Int26_6) int {
	return int(v >> 6)
}

// Ceil26_6 converts a 26.6 fixed-point value to integer pixels, rounding
// towards positive infinity. Used for the ascender and line height: a glyph
// must never be clipped by an underestimated line box.
func Ceil26_6(v fixed.Int26_6) int {
	return int((v + 63) >> 6)
}
