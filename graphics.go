package chip8

const (
	GfxWidth  = 64
	GfxHeight = 32

	PixelOff uint32 = 0
	PixelOn  uint32 = 0xFFFFFFFF
)

// Framebuffer holds one 32-bit value per pixel, row by row. A pixel is
// either PixelOn or PixelOff so the buffer can be uploaded as is.
type Framebuffer [GfxWidth * GfxHeight]uint32

// Pixel reports whether the pixel at (x, y) is set. Coordinates outside the
// screen read as clear.
func (fb *Framebuffer) Pixel(x, y int) bool {
	return fb.Raw(x, y) != PixelOff
}

// Raw returns the stored value of the pixel at (x, y).
func (fb *Framebuffer) Raw(x, y int) uint32 {
	if x < 0 || x >= GfxWidth || y < 0 || y >= GfxHeight {
		return PixelOff
	}
	return fb[y*GfxWidth+x]
}

// Rows returns the framebuffer as a boolean grid indexed [y][x].
func (fb *Framebuffer) Rows() [GfxHeight][GfxWidth]bool {
	var rows [GfxHeight][GfxWidth]bool
	for y := 0; y < GfxHeight; y++ {
		for x := 0; x < GfxWidth; x++ {
			rows[y][x] = fb[y*GfxWidth+x] != PixelOff
		}
	}
	return rows
}

type Graphics struct {
	buffer Framebuffer
	dirty  bool
}

func (g *Graphics) isDirty() bool {
	return g.dirty
}

func (g *Graphics) setDirty(dirty bool) {
	g.dirty = dirty
}

func (g *Graphics) clear() {
	g.buffer = Framebuffer{}
	g.dirty = true
}

// draw XORs the sprite rows onto the screen with the top-left corner at
// (x mod 64, y mod 32). Pixels falling past the right or bottom edge are
// clipped. It reports whether any set pixel was cleared.
func (g *Graphics) draw(sprite []uint8, x, y uint8) bool {
	hit := false
	x0 := int(x) % GfxWidth
	y0 := int(y) % GfxHeight
	for r, row := range sprite {
		py := y0 + r
		if py >= GfxHeight {
			break
		}
		for bit := 0; bit < 8; bit++ {
			if row&(0x80>>bit) == 0 {
				continue
			}
			px := x0 + bit
			if px >= GfxWidth {
				break
			}
			p := &g.buffer[py*GfxWidth+px]
			if *p != PixelOff {
				hit = true
			}
			*p ^= PixelOn
		}
	}
	g.dirty = true
	return hit
}
