package raster

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// outlineEngine is the production Engine. Fonts are parsed with
// go-text/typesetting, which also applies variable-font design coordinates to
// the outlines; the outlines are filled into 8-bit coverage masks with
// x/image/vector.
type outlineEngine struct {
	face  *font.Face
	axes  []VariationAxis
	scale float64 // pixels per font unit
}

// NewEngine parses an OpenType font (TTF or OTF) from memory and returns an
// engine rendering it at sizePt points for a dpi-dots-per-inch device.
func NewEngine(data []byte, sizePt int, dpi int) (Engine, error) {
	if sizePt <= 0 || dpi <= 0 {
		return nil, fmt.Errorf("raster: invalid size %dpt at %ddpi", sizePt, dpi)
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("raster: cannot parse font: %w", err)
	}
	axes, err := scanVariationAxes(data)
	if err != nil {
		return nil, err
	}
	upem := float64(face.Upem())
	if upem == 0 {
		return nil, errFontFormat("unitsPerEm is zero")
	}
	ppem := float64(sizePt) * float64(dpi) / 72
	return &outlineEngine{
		face:  face,
		axes:  axes,
		scale: ppem / upem,
	}, nil
}

func (e *outlineEngine) GlyphIndex(cp rune) uint32 {
	gid, ok := e.face.NominalGlyph(cp)
	if !ok {
		return 0
	}
	return uint32(gid)
}

func (e *outlineEngine) RenderGlyph(cp rune) (*GlyphBitmap, error) {
	gid, ok := e.face.NominalGlyph(cp)
	if !ok {
		return nil, fmt.Errorf("raster: code point U+%04X not covered", cp)
	}
	advance := fixed.Int26_6(math.Round(float64(e.face.HorizontalAdvance(gid)) * e.scale * 64))

	extents, ok := e.face.GlyphExtents(gid)
	if !ok || extents.Width == 0 || extents.Height == 0 {
		// no visible outline (space and friends): metrics only
		return &GlyphBitmap{AdvanceX: advance}, nil
	}

	data := e.face.GlyphData(gid)
	outline, ok := data.(font.GlyphOutline)
	if !ok {
		return nil, fmt.Errorf("raster: glyph for U+%04X is not an outline (color and bitmap strikes are unsupported)", cp)
	}

	// pixel-grid box around the scaled outline; extents follow the
	// harfbuzz convention of YBearing at the top and a negative Height
	xMin := float64(extents.XBearing) * e.scale
	xMax := float64(extents.XBearing+extents.Width) * e.scale
	yMax := float64(extents.YBearing) * e.scale
	yMin := float64(extents.YBearing+extents.Height) * e.scale
	left := int(math.Floor(xMin))
	top := int(math.Ceil(yMax))
	width := int(math.Ceil(xMax)) - left
	height := top - int(math.Floor(yMin))
	if width <= 0 || height <= 0 {
		return &GlyphBitmap{AdvanceX: advance}, nil
	}

	r := vector.NewRasterizer(width, height)
	pt := func(p font.SegmentPoint) (float32, float32) {
		return float32(float64(p.X)*e.scale - float64(left)),
			float32(float64(top) - float64(p.Y)*e.scale)
	}
	open := false
	for _, seg := range outline.Segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			if open {
				r.ClosePath()
			}
			x, y := pt(seg.Args[0])
			r.MoveTo(x, y)
			open = true
		case ot.SegmentOpLineTo:
			x, y := pt(seg.Args[0])
			r.LineTo(x, y)
		case ot.SegmentOpQuadTo:
			cx, cy := pt(seg.Args[0])
			x, y := pt(seg.Args[1])
			r.QuadTo(cx, cy, x, y)
		case ot.SegmentOpCubeTo:
			c1x, c1y := pt(seg.Args[0])
			c2x, c2y := pt(seg.Args[1])
			x, y := pt(seg.Args[2])
			r.CubeTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if open {
		r.ClosePath()
	}
	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	return &GlyphBitmap{
		Pixels:   mask.Pix,
		Width:    width,
		Height:   height,
		Left:     left,
		Top:      top,
		AdvanceX: advance,
	}, nil
}

func (e *outlineEngine) Metrics() LineMetrics {
	extents, ok := e.face.FontHExtents()
	if !ok {
		// synthesize from the em square, as rasterizers commonly do
		extents.Ascender = float32(e.face.Upem())
		extents.Descender = 0
		extents.LineGap = 0
	}
	asc := float64(extents.Ascender) * e.scale
	desc := float64(extents.Descender) * e.scale
	gap := float64(extents.LineGap) * e.scale
	return LineMetrics{
		Height:    fixed.Int26_6(math.Round((asc - desc + gap) * 64)),
		Ascender:  fixed.Int26_6(math.Round(asc * 64)),
		Descender: fixed.Int26_6(math.Round(desc * 64)),
	}
}

func (e *outlineEngine) Axes() []VariationAxis {
	return e.axes
}

func (e *outlineEngine) SetDesignCoords(coords []fixed.Int26_6) error {
	if len(coords) != len(e.axes) {
		return fmt.Errorf("raster: got %d design coordinates for %d axes", len(coords), len(e.axes))
	}
	if len(coords) == 0 {
		return nil
	}
	variations := make([]font.Variation, len(coords))
	for i, c := range coords {
		variations[i] = font.Variation{
			Tag:   font.Tag(e.axes[i].Tag),
			Value: float32(c) / 64,
		}
	}
	e.face.SetVariations(variations)
	return nil
}

func (e *outlineEngine) Close() error {
	e.face = nil
	return nil
}
