package epdfont

// Packing of raw greyscale glyph bitmaps into 1-bit or 2-bit streams.
//
// Both depths go through the same intermediate 4-bit-per-pixel representation
// before quantizing. The intermediate step is not an implementation detail:
// discarding the low nibble of every sample defines the visual weight of the
// output, and the device-side renderer was tuned against exactly this
// reduction. Do not "improve" the rounding here.

// grey4Pitch is the row pitch of the intermediate 4bpp representation.
func grey4Pitch(width int) int {
	return width/2 + width%2
}

// reduceToGrey4 packs an 8-bit greyscale bitmap (row-major, pitch == width)
// into 4 bits per pixel, two pixels per byte with the left pixel in the low
// nibble. Each sample keeps only its high nibble.
func reduceToGrey4(pix []byte, width, height int) []byte {
	if width <= 0 || height <= 0 {
		return nil
	}
	grey4 := make([]byte, 0, grey4Pitch(width)*height)
	var b byte
	for i, v := range pix[:width*height] {
		x := i % width
		if x%2 == 0 {
			b = v >> 4
		} else {
			b |= v & 0xF0
			grey4 = append(grey4, b)
			b = 0
		}
		if x == width-1 && width%2 > 0 {
			grey4 = append(grey4, b)
			b = 0
		}
	}
	return grey4
}

// grey4At reads the reduced 4-bit value of pixel (x,y).
func grey4At(grey4 []byte, pitch, x, y int) byte {
	b := grey4[y*pitch+x/2]
	return (b >> ((x % 2) * 4)) & 0xF
}

// ink1Threshold is the 1-bit quantization policy: a pixel is ink when its
// reduced 4-bit value is at least 2 on the 0–15 scale. This matches the
// converter the device fonts were originally produced with; using a different
// threshold changes the visual weight of every glyph.
func ink1(v byte) bool {
	return v&0xE != 0
}

// quantize2 maps a reduced 4-bit value to one of four grey levels:
// 0–3 white, 4–7 light, 8–11 dark, 12–15 black.
func quantize2(v byte) byte {
	switch {
	case v >= 12:
		return 3
	case v >= 8:
		return 2
	case v >= 4:
		return 1
	}
	return 0
}

// EncodeGlyphBitmap packs a raw 8-bit greyscale bitmap (row-major, one byte
// per pixel, pitch == width) into the continuous bit stream of the given
// depth. Pixels are emitted row-major, most-significant bits first, without
// per-row padding. If the total pixel count does not fill the last byte, the
// partial accumulator is left-shifted so that its bits occupy the
// most-significant positions.
//
// The result holds exactly ceil(width*height*bpp/8) bytes. A zero-width or
// zero-height bitmap (a space, typically) yields an empty slice.
func EncodeGlyphBitmap(depth BitDepth, pix []byte, width, height int) []byte {
	if width <= 0 || height <= 0 {
		return nil
	}
	grey4 := reduceToGrey4(pix, width, height)
	pitch := grey4Pitch(width)
	pixels := width * height
	perByte := 8 / depth.BitsPerPixel()
	packed := make([]byte, 0, (pixels*depth.BitsPerPixel()+7)/8)

	var acc byte
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := grey4At(grey4, pitch, x, y)
			if depth == Depth2BPP {
				acc = acc<<2 | quantize2(v)
			} else {
				acc <<= 1
				if ink1(v) {
					acc |= 1
				}
			}
			if (y*width+x)%perByte == perByte-1 {
				packed = append(packed, acc)
				acc = 0
			}
		}
	}
	if rem := pixels % perByte; rem != 0 {
		acc <<= (perByte - rem) * depth.BitsPerPixel()
		packed = append(packed, acc)
	}
	return packed
}

// PackedSize returns the exact byte length EncodeGlyphBitmap produces for a
// bitmap of the given dimensions.
func PackedSize(depth BitDepth, width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	return (width*height*depth.BitsPerPixel() + 7) / 8
}

// DecodeGlyphBitmap is the inverse view of a packed stream: it expands the
// bit stream back into one quantized level per pixel (0..1 for 1-bit, 0..3
// for 2-bit), row-major. It is used by the asset inspector and by tests; the
// device renderer consumes the packed form directly.
func DecodeGlyphBitmap(depth BitDepth, packed []byte, width, height int) []byte {
	if width <= 0 || height <= 0 {
		return nil
	}
	bpp := depth.BitsPerPixel()
	perByte := 8 / bpp
	mask := byte(1<<bpp - 1)
	levels := make([]byte, width*height)
	for i := range levels {
		b := packed[i/perByte]
		shift := (perByte - 1 - i%perByte) * bpp
		levels[i] = (b >> shift) & mask
	}
	return levels
}
