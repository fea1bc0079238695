package hal

import "image/color"

// RGB565 packs an 8-bit-per-channel color into rrrrrggggggbbbbb.
func RGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// PutPixel565 stores c little-endian at buf[off:off+2]. Out-of-range
// offsets are ignored.
func PutPixel565(buf []byte, off int, c color.RGBA) {
	if off < 0 || off+1 >= len(buf) {
		return
	}
	p := RGB565(c.R, c.G, c.B)
	buf[off] = byte(p)
	buf[off+1] = byte(p >> 8)
}

// Pixel565 reads the little-endian pixel at buf[off:off+2] and widens it to
// opaque 8-bit channels.
func Pixel565(buf []byte, off int) color.RGBA {
	p := uint16(buf[off]) | uint16(buf[off+1])<<8
	return color.RGBA{
		R: uint8(uint32(p>>11&0x1F) * 255 / 31),
		G: uint8(uint32(p>>5&0x3F) * 255 / 63),
		B: uint8(uint32(p&0x1F) * 255 / 31),
		A: 0xFF,
	}
}
