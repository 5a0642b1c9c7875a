package epdfont

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	asset := buildTestAsset(t, Depth1BPP)
	header := string(asset.EncodeHeader("bookerly_regular"))

	assert.Contains(t, header, "#pragma once")
	assert.Contains(t, header, `#include "EpdFontData.h"`)
	assert.Contains(t, header, "static const uint8_t PROGMEM bookerly_regularBitmaps[15]")
	assert.Contains(t, header, "static const EpdGlyph PROGMEM bookerly_regularGlyphs[]")
	assert.Contains(t, header, "static const EpdUnicodeInterval PROGMEM bookerly_regularIntervals[]")
	assert.Contains(t, header, "static const EpdFontData bookerly_regular = {")
	assert.Contains(t, header, "name: bookerly_regular")
	assert.Contains(t, header, "mode: 1-bit")

	// interval rows carry first, last and the glyph array offset in hex
	assert.Contains(t, header, "{ 0x41, 0x43, 0x0 },")
	assert.Contains(t, header, "{ 0x78, 0x79, 0x3 },")

	// glyph rows are annotated with the character they render
	assert.Contains(t, header, "}, // A")
	assert.Contains(t, header, "}, // y")

	// the aggregate ends with the 2-bit flag
	assert.Contains(t, header, "    false,\n};")
}

func TestHeader2BitFlag(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	header := string(buildTestAsset(t, Depth2BPP).EncodeHeader("f"))
	assert.Contains(t, header, "mode: 2-bit")
	assert.Contains(t, header, "    true,\n};")
}

func TestHeaderDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	asset := buildTestAsset(t, Depth1BPP)
	assert.Equal(t, asset.EncodeHeader("n"), asset.EncodeHeader("n"))
}

func TestHeaderBackslashComment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	// a literal `\` at line end would escape the newline in C; the emitter
	// must spell it out instead
	b := NewAssetBuilder(Depth1BPP, FontMetrics{})
	b.SetIntervals([]CodePointInterval{{First: '\\', Last: '\\'}})
	b.AddGlyph('\\', 1, 1, 1, 0, 1, []byte{0x80})
	asset, err := b.Build()
	require.NoError(t, err)
	header := string(asset.EncodeHeader("f"))
	assert.Contains(t, header, "// <backslash>")
	for _, line := range strings.Split(header, "\n") {
		assert.False(t, strings.HasSuffix(line, "\\"), "line ends in a backslash: %q", line)
	}
}

func TestHeaderControlCharsUncommented(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	b := NewAssetBuilder(Depth1BPP, FontMetrics{})
	b.SetIntervals([]CodePointInterval{{First: 0x09, Last: 0x0A}})
	b.AddGlyph(0x09, 1, 1, 1, 0, 1, []byte{0x80})
	b.AddGlyph(0x0A, 1, 1, 1, 0, 1, []byte{0x80})
	asset, err := b.Build()
	require.NoError(t, err)
	header := string(asset.EncodeHeader("f"))
	assert.NotContains(t, header, "// \t", "control characters get no comment")
	assert.NotContains(t, header, "// \n")
}
