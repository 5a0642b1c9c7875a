package epdfont

import (
	"bytes"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestPackedSize1Bit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	// 9x8 = 72 pixels, one bit each: exactly 9 bytes, no per-row padding
	pix := make([]byte, 9*8)
	packed := EncodeGlyphBitmap(Depth1BPP, pix, 9, 8)
	assert.Len(t, packed, 9)
	assert.Equal(t, 9, PackedSize(Depth1BPP, 9, 8))
}

func TestPackedSize2Bit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	// 5x4 = 20 pixels, two bits each: 40 bits = 5 bytes
	pix := make([]byte, 5*4)
	packed := EncodeGlyphBitmap(Depth2BPP, pix, 5, 4)
	assert.Len(t, packed, 5)
	assert.Equal(t, 5, PackedSize(Depth2BPP, 5, 4))
}

func TestEncodeEmptyBitmap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	assert.Empty(t, EncodeGlyphBitmap(Depth1BPP, nil, 0, 12), "space glyphs have no bitmap")
	assert.Empty(t, EncodeGlyphBitmap(Depth2BPP, nil, 7, 0))
	assert.Equal(t, 0, PackedSize(Depth1BPP, 0, 12))
}

func TestOneBitThreshold(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	// One row of 8 pixels. After the 4bpp reduction a sample keeps its high
	// nibble, and ink requires a reduced value of at least 2 — so 0x1F (reduced
	// to 1) stays white while 0x20 (reduced to 2) is ink.
	pix := []byte{0x00, 0x0F, 0x1F, 0x20, 0x2F, 0x80, 0xF0, 0xFF}
	packed := EncodeGlyphBitmap(Depth1BPP, pix, 8, 1)
	assert.Equal(t, []byte{0b0001_1111}, packed)
}

func TestTwoBitQuantization(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	// reduced values 0,3 -> level 0; 4,7 -> 1; 8,11 -> 2; 12,15 -> 3
	pix := []byte{0x00, 0x3F, 0x40, 0x7F, 0x80, 0xBF, 0xC0, 0xFF}
	packed := EncodeGlyphBitmap(Depth2BPP, pix, 8, 1)
	assert.Equal(t, []byte{0b00_00_01_01, 0b10_10_11_11}, packed)
}

func TestEncodePadsFinalByte(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	// 3x1 black pixels at 1 bit: three set bits, shifted to the MSB end
	pix := []byte{0xFF, 0xFF, 0xFF}
	packed := EncodeGlyphBitmap(Depth1BPP, pix, 3, 1)
	assert.Equal(t, []byte{0b1110_0000}, packed)

	// 3x1 black pixels at 2 bit: three "11" pairs, MSB first
	packed = EncodeGlyphBitmap(Depth2BPP, pix, 3, 1)
	assert.Equal(t, []byte{0b11_11_11_00}, packed)
}

func TestEncodeRowsAreContinuous(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	// 3x3 checkerboard: rows must pack back to back into the bit stream,
	// 101 010 101 -> 1010 1010 1 -> 0xAA 0x80
	pix := []byte{
		0xFF, 0x00, 0xFF,
		0x00, 0xFF, 0x00,
		0xFF, 0x00, 0xFF,
	}
	packed := EncodeGlyphBitmap(Depth1BPP, pix, 3, 3)
	assert.Equal(t, []byte{0xAA, 0x80}, packed)
}

func TestDecodeInvertsEncode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	pix := []byte{
		0x00, 0x50, 0xA0, 0xF0, 0x10,
		0xF0, 0x00, 0xF0, 0x00, 0xF0,
		0x30, 0x70, 0xB0, 0xF0, 0x00,
	}
	for _, depth := range []BitDepth{Depth1BPP, Depth2BPP} {
		packed := EncodeGlyphBitmap(depth, pix, 5, 3)
		levels := DecodeGlyphBitmap(depth, packed, 5, 3)
		repacked := make([]byte, len(levels))
		for i, l := range levels {
			// scale quantized levels back to the top of their bucket
			if depth == Depth2BPP {
				repacked[i] = l * 0x50
			} else {
				repacked[i] = l * 0xF0
			}
		}
		again := EncodeGlyphBitmap(depth, repacked, 5, 3)
		if !bytes.Equal(packed, again) {
			t.Errorf("%s: re-encoding decoded levels changed the stream: %x vs %x", depth, packed, again)
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	pix := make([]byte, 11*13)
	for i := range pix {
		pix[i] = byte(i * 37)
	}
	a := EncodeGlyphBitmap(Depth2BPP, pix, 11, 13)
	b := EncodeGlyphBitmap(Depth2BPP, pix, 11, 13)
	assert.Equal(t, a, b)
	assert.Len(t, a, PackedSize(Depth2BPP, 11, 13))
}
