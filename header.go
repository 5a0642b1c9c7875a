package epdfont

import (
	"fmt"
	"io"
	"strings"
)

// Static-table serialization: the asset as compilable C tables for firmware
// builds. The emitted header declares three parallel PROGMEM tables — bitmap
// bytes, glyph records and unicode intervals — plus one EpdFontData aggregate
// referencing them, exactly the structures the device renderer indexes at
// draw time.

// EncodeHeader renders the asset as a C header. The table identifiers are
// derived from name. Output depends only on the asset and the name, so
// repeated runs produce byte-identical headers.
func (a *FontAsset) EncodeHeader(name string) []byte {
	var sb strings.Builder
	sb.Grow(a.ContainerSize() * 6)

	fmt.Fprintf(&sb, "/**\n * generated by fontconvert\n * name: %s\n * mode: %s\n */\n", name, a.Depth)
	sb.WriteString("#pragma once\n")
	sb.WriteString("#include \"EpdFontData.h\"\n\n")

	fmt.Fprintf(&sb, "static const uint8_t PROGMEM %sBitmaps[%d] = {\n", name, len(a.Bitmap))
	for row := 0; row < len(a.Bitmap); row += 16 {
		end := row + 16
		if end > len(a.Bitmap) {
			end = len(a.Bitmap)
		}
		sb.WriteString("   ")
		for _, b := range a.Bitmap[row:end] {
			fmt.Fprintf(&sb, " 0x%02X,", b)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("};\n\n")

	fmt.Fprintf(&sb, "static const EpdGlyph PROGMEM %sGlyphs[] = {\n", name)
	for _, g := range a.Glyphs {
		fmt.Fprintf(&sb, "    { %d, %d, %d, %d, %d, %d, %d },%s\n",
			g.Width, g.Height, g.AdvanceX, g.Left, g.Top, g.DataLength, g.DataOffset,
			glyphComment(g.CodePoint))
	}
	sb.WriteString("};\n\n")

	fmt.Fprintf(&sb, "static const EpdUnicodeInterval PROGMEM %sIntervals[] = {\n", name)
	for i, iv := range a.Intervals {
		fmt.Fprintf(&sb, "    { 0x%X, 0x%X, 0x%X },\n", iv.First, iv.Last, a.GlyphArrayOffset(i))
	}
	sb.WriteString("};\n\n")

	fmt.Fprintf(&sb, "static const EpdFontData %s = {\n", name)
	fmt.Fprintf(&sb, "    %sBitmaps,\n", name)
	fmt.Fprintf(&sb, "    %sGlyphs,\n", name)
	fmt.Fprintf(&sb, "    %sIntervals,\n", name)
	fmt.Fprintf(&sb, "    %d,\n", len(a.Intervals))
	fmt.Fprintf(&sb, "    %d,\n", a.Metrics.LineAdvanceY)
	fmt.Fprintf(&sb, "    %d,\n", a.Metrics.Ascender)
	fmt.Fprintf(&sb, "    %d,\n", a.Metrics.Descender)
	fmt.Fprintf(&sb, "    %t,\n", a.Depth == Depth2BPP)
	sb.WriteString("};\n")

	return []byte(sb.String())
}

// glyphComment annotates a glyph table row with the character it renders.
// The backslash must not appear literally: a trailing `\` would escape the
// newline and glue the next table row onto the comment.
func glyphComment(cp rune) string {
	if cp == '\\' {
		return " // <backslash>"
	}
	if cp >= 0x20 {
		return fmt.Sprintf(" // %c", cp)
	}
	return ""
}

// WriteHeader writes the C header to w.
func (a *FontAsset) WriteHeader(w io.Writer, name string) error {
	_, err := w.Write(a.EncodeHeader(name))
	return err
}
