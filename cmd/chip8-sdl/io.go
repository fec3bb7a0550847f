package main

import (
	"github.com/manurare/chip8"
	"github.com/manurare/chip8/internal/keymap"
	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	screenColor = 0x1A237E
	spriteColor = 0x9FA8DA
)

// IO presents a machine in an SDL window surface.
type IO struct {
	window    *sdl.Window
	surface   *sdl.Surface
	pixelSize int32
}

// NewIO initialises SDL and opens the main window.
func NewIO(title string, scale int) (*IO, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, errors.Wrap(err, "initialising SDL")
	}

	io := &IO{pixelSize: int32(scale)}
	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		chip8.GfxWidth*io.pixelSize, chip8.GfxHeight*io.pixelSize, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, errors.Wrap(err, "creating window")
	}
	io.window = window

	io.surface, err = window.GetSurface()
	if err != nil {
		io.Destroy()
		return nil, errors.Wrap(err, "getting window surface")
	}
	if err := io.surface.FillRect(nil, screenColor); err != nil {
		io.Destroy()
		return nil, errors.Wrap(err, "clearing window surface")
	}
	return io, nil
}

// Destroy should be called before quitting the application
func (io *IO) Destroy() {
	io.window.Destroy()
	sdl.Quit()
}

// PollEvents drains the SDL event queue, forwarding mapped keys to sys.
func (io *IO) PollEvents(sys *chip8.System) bool {
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.KeyboardEvent:
			if t.Keysym.Sym == sdl.K_ESCAPE {
				quit = true
				continue
			}
			key, ok := keymap.Lookup(rune(t.Keysym.Sym))
			if !ok {
				continue
			}
			switch t.GetType() {
			case sdl.KEYDOWN:
				sys.SetKey(key, true)
			case sdl.KEYUP:
				sys.SetKey(key, false)
			}
		case *sdl.QuitEvent:
			quit = true
		}
	}
	return quit
}

// Render repaints the window surface from the framebuffer.
func (io *IO) Render(fb *chip8.Framebuffer) error {
	if err := io.surface.FillRect(nil, screenColor); err != nil {
		return err
	}
	for y := int32(0); y < chip8.GfxHeight; y++ {
		for x := int32(0); x < chip8.GfxWidth; x++ {
			if !fb.Pixel(int(x), int(y)) {
				continue
			}
			rect := &sdl.Rect{X: x * io.pixelSize, Y: y * io.pixelSize, W: io.pixelSize, H: io.pixelSize}
			if err := io.surface.FillRect(rect, spriteColor); err != nil {
				return err
			}
		}
	}
	return io.window.UpdateSurface()
}
