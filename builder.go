package epdfont

import (
	"errors"
	"fmt"
)

// ErrNoGlyphs is returned by AssetBuilder.Build when not a single glyph
// survived interval validation. An asset without glyphs is never valid.
var ErrNoGlyphs = errors.New("epdfont: no glyphs in asset")

// AssetBuilder accumulates glyph records and packed bitmaps in code-point
// order and assembles them into one immutable FontAsset. Records must be
// added in exactly the order dictated by the validated interval list: the
// device resolves glyphs by index arithmetic over the interval table, not by
// searching.
type AssetBuilder struct {
	depth     BitDepth
	metrics   FontMetrics
	intervals []CodePointInterval
	glyphs    []GlyphRecord
	bitmap    []byte
}

// NewAssetBuilder creates a builder for an asset of the given bit depth and
// line metrics.
func NewAssetBuilder(depth BitDepth, metrics FontMetrics) *AssetBuilder {
	return &AssetBuilder{depth: depth, metrics: metrics}
}

// clamp8 truncates a pixel dimension to the single byte the glyph record
// affords. Glyphs wider or taller than 255 pixels lose their excess silently;
// this is a documented limitation of the format, not an error.
func clamp8(v int) uint8 {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}

// AddGlyph appends one glyph. Width, height and advance are clamped to 255;
// the packed bytes are appended to the shared bitmap blob and the record
// receives its byte offset within it.
func (b *AssetBuilder) AddGlyph(cp rune, width, height, advanceX int, left, top int, packed []byte) {
	b.glyphs = append(b.glyphs, GlyphRecord{
		Width:      clamp8(width),
		Height:     clamp8(height),
		AdvanceX:   clamp8(advanceX),
		Left:       int16(left),
		Top:        int16(top),
		DataLength: uint16(len(packed)),
		DataOffset: uint32(len(b.bitmap)),
		CodePoint:  cp,
	})
	b.bitmap = append(b.bitmap, packed...)
}

// SetIntervals records the finalized (merged and validated) interval list.
func (b *AssetBuilder) SetIntervals(intervals []CodePointInterval) {
	b.intervals = intervals
}

// Build finishes the asset. It fails if no glyphs were added, or if the glyph
// count does not match the code-point count of the interval list — the two
// tables must stay in lockstep for interval-offset lookup to work.
func (b *AssetBuilder) Build() (*FontAsset, error) {
	if len(b.glyphs) == 0 {
		return nil, ErrNoGlyphs
	}
	span := 0
	for _, iv := range b.intervals {
		span += iv.Count()
	}
	if span != len(b.glyphs) {
		return nil, fmt.Errorf("epdfont: interval list spans %d code points but %d glyphs were added", span, len(b.glyphs))
	}
	tracer().Infof("built font asset: %d glyphs in %d intervals, %d bitmap bytes (%s)",
		len(b.glyphs), len(b.intervals), len(b.bitmap), b.depth)
	return &FontAsset{
		Intervals: b.intervals,
		Glyphs:    b.glyphs,
		Bitmap:    b.bitmap,
		Depth:     b.depth,
		Metrics:   b.metrics,
	}, nil
}
