package epdfont

import (
	"encoding/binary"
	"io"
)

// Binary container format (".epdfont"), all integers little-endian:
//
//	Header (16 bytes):
//	  magic    uint32  0x46445045 ("EPDF")
//	  version  uint16  1
//	  flags    uint16  bit 0 = 2-bit mode
//	  reserved 8 bytes
//	Metrics (18 bytes):
//	  advanceY uint8, pad uint8, ascender int16, descender int16,
//	  intervalCount uint32, glyphCount uint32, bitmapSize uint32
//	Intervals (12 bytes each):
//	  first uint32, last uint32, glyphArrayOffset uint32
//	Glyphs (14 bytes each):
//	  width uint8, height uint8, advanceX uint8, pad uint8,
//	  left int16, top int16, dataLength uint16, dataOffset uint32
//	Bitmap blob: concatenated packed glyph bytes

const (
	// ContainerMagic is "EPDF" read as a little-endian uint32.
	ContainerMagic uint32 = 0x46445045

	// ContainerVersion is the only container version this package writes
	// and reads.
	ContainerVersion uint16 = 1

	flag2BitMode uint16 = 0x01

	containerHeaderSize   = 16
	containerMetricsSize  = 18
	containerIntervalSize = 12
	containerGlyphSize    = 14
)

// ContainerSize returns the total byte size of the serialized container.
func (a *FontAsset) ContainerSize() int {
	return containerHeaderSize + containerMetricsSize +
		len(a.Intervals)*containerIntervalSize +
		len(a.Glyphs)*containerGlyphSize +
		len(a.Bitmap)
}

// EncodeContainer serializes the asset into the binary container format.
// Output is fully determined by the asset: identical assets produce
// byte-identical containers.
func (a *FontAsset) EncodeContainer() []byte {
	buf := make([]byte, 0, a.ContainerSize())
	le := binary.LittleEndian

	// header
	buf = le.AppendUint32(buf, ContainerMagic)
	buf = le.AppendUint16(buf, ContainerVersion)
	var flags uint16
	if a.Depth == Depth2BPP {
		flags |= flag2BitMode
	}
	buf = le.AppendUint16(buf, flags)
	buf = append(buf, make([]byte, 8)...) // reserved

	// metrics
	buf = append(buf, uint8(a.Metrics.LineAdvanceY), 0)
	buf = le.AppendUint16(buf, uint16(int16(a.Metrics.Ascender)))
	buf = le.AppendUint16(buf, uint16(int16(a.Metrics.Descender)))
	buf = le.AppendUint32(buf, uint32(len(a.Intervals)))
	buf = le.AppendUint32(buf, uint32(len(a.Glyphs)))
	buf = le.AppendUint32(buf, uint32(len(a.Bitmap)))

	// interval table
	for i, iv := range a.Intervals {
		buf = le.AppendUint32(buf, uint32(iv.First))
		buf = le.AppendUint32(buf, uint32(iv.Last))
		buf = le.AppendUint32(buf, a.GlyphArrayOffset(i))
	}

	// glyph table
	for _, g := range a.Glyphs {
		buf = append(buf, g.Width, g.Height, g.AdvanceX, 0)
		buf = le.AppendUint16(buf, uint16(g.Left))
		buf = le.AppendUint16(buf, uint16(g.Top))
		buf = le.AppendUint16(buf, g.DataLength)
		buf = le.AppendUint32(buf, g.DataOffset)
	}

	buf = append(buf, a.Bitmap...)
	return buf
}

// WriteContainer writes the serialized container to w.
func (a *FontAsset) WriteContainer(w io.Writer) error {
	_, err := w.Write(a.EncodeContainer())
	return err
}
