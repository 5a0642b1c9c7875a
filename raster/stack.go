package raster

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/papyrix/epdfont"
)

// Font is one opened font resource: the raw bytes, an engine handle rendering
// it at the target size, and the font's full name for reporting.
type Font struct {
	Name   string
	Path   string
	Engine Engine
}

// OpenFont reads and parses a font file and acquires an engine for it at the
// given size. A file that cannot be read or parsed fails here, which makes
// the failure attributable to this one resource.
func OpenFont(path string, sizePt int, dpi int) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f := &Font{Path: path}
	if parsed, err := sfnt.Parse(data); err == nil {
		if name, err := parsed.Name(nil, sfnt.NameIDFull); err == nil {
			f.Name = name
		}
	}
	f.Engine, err = NewEngine(data, sizePt, dpi)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tracer().Infof("opened font %q (%s) at %dpt/%ddpi", f.Name, path, sizePt, dpi)
	return f, nil
}

// Stack is an ordered fallback stack of font resources, priority descending.
// A code point resolves to the first resource whose character map exposes a
// nonzero glyph index for it; later resources are only consulted when every
// earlier one lacks the code point. No reordering, no caching.
type Stack struct {
	fonts []*Font
}

// OpenStack opens the given font files in fallback order at one target size.
// A weight > 0 is applied to every variable font in the stack whose axis
// names identify a weight axis; see applyWeight. If any font fails to open,
// the already-opened ones are released and the error names the failing file.
func OpenStack(paths []string, sizePt int, dpi int, weight int) (*Stack, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("raster: empty font stack")
	}
	s := &Stack{fonts: make([]*Font, 0, len(paths))}
	for _, path := range paths {
		f, err := OpenFont(path, sizePt, dpi)
		if err != nil {
			s.Close()
			return nil, err
		}
		if weight > 0 {
			if err := applyWeight(f, weight); err != nil {
				s.Close()
				f.Engine.Close()
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
		s.fonts = append(s.fonts, f)
	}
	return s, nil
}

// NewStack assembles a stack from already-opened fonts. Used by tests and by
// callers that manage engine lifetimes themselves.
func NewStack(fonts ...*Font) *Stack {
	return &Stack{fonts: fonts}
}

// applyWeight sets the weight axis of a variable font to the given design
// value. An axis is a weight axis when its name contains "weight" or "wght",
// case-insensitively — the axis-tag registry spells it 'wght', vendors spell
// the name freely. All other axes keep their default coordinate. Fonts
// without variation axes are left untouched; that is a no-op, not an error.
func applyWeight(f *Font, weight int) error {
	axes := f.Engine.Axes()
	if len(axes) == 0 {
		return nil
	}
	coords := make([]fixed.Int26_6, len(axes))
	for i, ax := range axes {
		name := strings.ToLower(ax.Name)
		if strings.Contains(name, "weight") || strings.Contains(name, "wght") {
			coords[i] = fixed.Int26_6(weight << 6)
			tracer().Debugf("font %q: weight axis %q set to %d", f.Name, ax.Name, weight)
		} else {
			coords[i] = ax.Default
		}
	}
	return f.Engine.SetDesignCoords(coords)
}

// Covers reports whether any font in the stack has a glyph for cp.
func (s *Stack) Covers(cp rune) bool {
	for _, f := range s.fonts {
		if f.Engine.GlyphIndex(cp) != 0 {
			return true
		}
	}
	return false
}

// LoadGlyph renders cp with the first covering font in the stack. The second
// return value is false when no font covers the code point, which is a
// normal outcome; the error is non-nil only for real rendering failures.
func (s *Stack) LoadGlyph(cp rune) (*GlyphBitmap, bool, error) {
	for _, f := range s.fonts {
		if f.Engine.GlyphIndex(cp) == 0 {
			continue
		}
		g, err := f.Engine.RenderGlyph(cp)
		if err != nil {
			return nil, true, fmt.Errorf("%s: %w", f.Path, err)
		}
		return g, true, nil
	}
	return nil, false, nil
}

// Metrics derives the asset's line metrics, in integer pixels, from the
// resource that renders the reference glyph '|' — the glyph with the deepest
// descender in practice. If no font in the stack covers it, the primary
// font's metrics are used.
//
// Rounding is asymmetric on purpose: ascender and line advance are rounded
// up so no glyph is ever clipped, the descender is rounded down (it is
// negative, so towards larger magnitude) for the same reason.
func (s *Stack) Metrics() epdfont.FontMetrics {
	ref := s.fonts[0]
	for _, f := range s.fonts {
		if f.Engine.GlyphIndex('|') != 0 {
			ref = f
			break
		}
	}
	lm := ref.Engine.Metrics()
	return epdfont.FontMetrics{
		LineAdvanceY: Ceil26_6(lm.Height),
		Ascender:     Ceil26_6(lm.Ascender),
		Descender:    Floor26_6(lm.Descender),
	}
}

// AdvancePixels normalizes the glyph's advance to integer pixels, rounding
// down: an advance must never claim more space than the outline occupies.
func (g *GlyphBitmap) AdvancePixels() int {
	return Floor26_6(g.AdvanceX)
}

// Close releases every engine in the stack. The first error wins, but all
// engines are closed.
func (s *Stack) Close() error {
	var first error
	for _, f := range s.fonts {
		if err := f.Engine.Close(); err != nil && first == nil {
			first = err
		}
	}
	s.fonts = nil
	return first
}
