package main

import (
	"strings"
	"testing"

	"github.com/manurare/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestRenderText(t *testing.T) {
	// (0, 0), (1, 1) and the column (2, 0)-(2, 1)
	var fb chip8.Framebuffer
	fb[0] = chip8.PixelOn
	fb[chip8.GfxWidth+1] = chip8.PixelOn
	fb[2] = chip8.PixelOn
	fb[chip8.GfxWidth+2] = chip8.PixelOn

	lines := strings.Split(strings.TrimSuffix(renderText(&fb), "\n"), "\n")
	assert.Equal(t, chip8.GfxHeight/2+2, len(lines))
	assert.Equal(t, "+"+strings.Repeat("-", chip8.GfxWidth)+"+", lines[0])
	assert.Equal(t, "|▀▄█"+strings.Repeat(" ", chip8.GfxWidth-3)+"|", lines[1])
	assert.Equal(t, "|"+strings.Repeat(" ", chip8.GfxWidth)+"|", lines[2])
}
