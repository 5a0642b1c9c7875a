/*
Package raster renders glyphs of outline fonts into greyscale bitmaps for
packing by package epdfont.

The rasterization engine itself is behind the Engine interface: given a code
point, an engine either renders an 8-bit greyscale bitmap with pixel metrics
or reports that the font does not cover the code point. The production engine
parses fonts with go-text/typesetting and fills their outlines with
golang.org/x/image/vector.

On top of single-font engines, Stack implements the ordered fallback
semantics of a conversion: the first font resource in the stack exposing a
nonzero glyph index for a code point renders it. All metrics crossing the
engine boundary are fixed-point 26.6 values; Stack normalizes them to integer
pixels with the asymmetric rounding policy the device layout depends on
(floor for advances and descender, ceiling for ascender and line height).

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package raster

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'papyrix.raster'
func tracer() tracing.Trace {
	return tracing.Select("papyrix.raster")
}
