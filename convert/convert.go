/*
Package convert orchestrates font-to-asset conversions: it turns requested
unicode intervals plus an opened font fallback stack into one epdfont.FontAsset,
and runs batches of (font, size, style) combinations with per-item failure
reporting.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package convert

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/papyrix/epdfont"
	"github.com/papyrix/epdfont/raster"
)

// tracer writes to trace with key 'papyrix.convert'
func tracer() tracing.Trace {
	return tracing.Select("papyrix.convert")
}

// ErrNoCoverage is returned when interval validation leaves nothing: the font
// stack covers not a single requested code point. An asset without glyphs is
// useless on the device, so this is fatal for the conversion.
var ErrNoCoverage = errors.New("convert: no requested code points are covered by the font stack")

// GlyphSource is what a conversion needs from a font stack: coverage probing
// for interval validation, glyph rendering, and line metrics. *raster.Stack
// implements it.
type GlyphSource interface {
	epdfont.GlyphCoverage
	LoadGlyph(cp rune) (*raster.GlyphBitmap, bool, error)
	Metrics() epdfont.FontMetrics
}

// Convert runs the conversion pipeline for one font stack: merge the
// requested intervals, validate them against actual coverage, render and
// pack every surviving code point, and build the immutable asset.
//
// Nothing is written anywhere; the caller serializes the returned asset.
func Convert(src GlyphSource, depth epdfont.BitDepth, requested []epdfont.CodePointInterval) (*epdfont.FontAsset, error) {
	merged := epdfont.MergeIntervals(requested)
	valid := epdfont.ValidateIntervals(merged, src)
	if len(valid) == 0 {
		return nil, ErrNoCoverage
	}

	builder := epdfont.NewAssetBuilder(depth, src.Metrics())
	builder.SetIntervals(valid)
	for _, iv := range valid {
		for cp := iv.First; cp <= iv.Last; cp++ {
			g, ok, err := src.LoadGlyph(cp)
			if err != nil {
				return nil, fmt.Errorf("convert: rendering U+%04X: %w", cp, err)
			}
			if !ok {
				// cannot happen after validation unless the source mutates
				return nil, fmt.Errorf("convert: validated code point U+%04X not covered", cp)
			}
			packed := epdfont.EncodeGlyphBitmap(depth, g.Pixels, g.Width, g.Height)
			builder.AddGlyph(cp, g.Width, g.Height, g.AdvancePixels(), g.Left, g.Top, packed)
		}
	}
	return builder.Build()
}
