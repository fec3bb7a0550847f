package chip8

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
)

// render returns the set pixels as a grid of '#' and '.'.
func render(fb *Framebuffer, rows int) []string {
	out := make([]string, rows)
	for y := 0; y < rows; y++ {
		line := make([]byte, GfxWidth)
		for x := range line {
			line[x] = '.'
			if fb.Pixel(x, y) {
				line[x] = '#'
			}
		}
		out[y] = string(line)
	}
	return out
}

func TestDrawStartWraps(t *testing.T) {
	var g Graphics
	// (64+2, 32+1) starts at (2, 1).
	hit := g.draw([]uint8{0xC0}, GfxWidth+2, GfxHeight+1)
	assert.False(t, hit)
	assert.True(t, g.buffer.Pixel(2, 1))
	assert.True(t, g.buffer.Pixel(3, 1))
	assert.False(t, g.buffer.Pixel(4, 1))
}

func TestDrawClipsRightEdge(t *testing.T) {
	var g Graphics
	g.draw([]uint8{0xFF}, GfxWidth-3, 0)

	want := []string{
		strings.Repeat(".", GfxWidth-3) + "###",
		strings.Repeat(".", GfxWidth),
	}
	if diff := cmp.Diff(want, render(&g.buffer, 2)); diff != "" {
		t.Errorf("framebuffer (-want, +got)\n%s", diff)
	}
}

func TestDrawClipsBottomEdge(t *testing.T) {
	var g Graphics
	g.draw([]uint8{0x80, 0x80, 0x80, 0x80}, 0, GfxHeight-2)

	assert.True(t, g.buffer.Pixel(0, GfxHeight-2))
	assert.True(t, g.buffer.Pixel(0, GfxHeight-1))
	assert.False(t, g.buffer.Pixel(0, 0))
	assert.False(t, g.buffer.Pixel(0, 1))
}

func TestDrawCollision(t *testing.T) {
	var g Graphics
	assert.False(t, g.draw([]uint8{0xF0}, 0, 0))
	// overlapping only on pixels 2 and 3
	assert.True(t, g.draw([]uint8{0x3C}, 0, 0))

	want := []string{
		"##..##" + strings.Repeat(".", GfxWidth-6),
		strings.Repeat(".", GfxWidth),
	}
	if diff := cmp.Diff(want, render(&g.buffer, 2)); diff != "" {
		t.Errorf("framebuffer (-want, +got)\n%s", diff)
	}

	// setting clear pixels next to set ones is not a collision
	assert.False(t, g.draw([]uint8{0x30}, 0, 0))
}

func TestFramebufferAccessors(t *testing.T) {
	var fb Framebuffer
	fb[1*GfxWidth+5] = PixelOn

	assert.True(t, fb.Pixel(5, 1))
	assert.Equal(t, PixelOn, fb.Raw(5, 1))
	assert.Equal(t, PixelOff, fb.Raw(-1, 0))
	assert.False(t, fb.Pixel(GfxWidth, 0))
	assert.False(t, fb.Pixel(0, GfxHeight))

	rows := fb.Rows()
	assert.True(t, rows[1][5])
	assert.False(t, rows[5][1])
}

func TestFramebufferIsSnapshot(t *testing.T) {
	sys := New()
	fb := sys.Framebuffer()
	fb[0] = PixelOn
	current := sys.Framebuffer()
	assert.False(t, current.Pixel(0, 0))
}
