package main

import (
	"strings"

	tm "github.com/buger/goterm"
	"github.com/manurare/chip8"
)

// Terminal draws the screen with half block characters, two CHIP-8 rows per
// text line.
type Terminal struct {
	sys   *chip8.System
	debug bool
}

func (term *Terminal) PollEvents(_ *chip8.System) bool {
	return false
}

func (term *Terminal) Render(fb *chip8.Framebuffer) error {
	tm.Clear()
	tm.MoveCursor(1, 1)
	tm.Print(renderText(fb))
	if term.debug {
		term.sys.Print(tm.Screen)
	}
	tm.Flush()
	return nil
}

func renderText(fb *chip8.Framebuffer) string {
	var sb strings.Builder
	border := "+" + strings.Repeat("-", chip8.GfxWidth) + "+\n"
	sb.WriteString(border)
	for y := 0; y < chip8.GfxHeight; y += 2 {
		sb.WriteByte('|')
		for x := 0; x < chip8.GfxWidth; x++ {
			top, bottom := fb.Pixel(x, y), fb.Pixel(x, y+1)
			switch {
			case top && bottom:
				sb.WriteString("█")
			case top:
				sb.WriteString("▀")
			case bottom:
				sb.WriteString("▄")
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}
