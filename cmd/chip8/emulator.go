package main

import (
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/manurare/chip8"
	"github.com/manurare/chip8/internal/keymap"
	"github.com/pkg/errors"
)

const (
	ScreenWidth  = chip8.GfxWidth
	ScreenHeight = chip8.GfxHeight
)

// Emulator presents a machine in an OpenGL window.
type Emulator struct {
	sys *chip8.System

	pixels  []byte
	window  *glfw.Window
	vao     uint32
	texture uint32
	program uint32
}

const vertexShader = `
#version 330

noperspective out vec2 TexCoord;

void main(void) {
    TexCoord.x = (gl_VertexID == 2)? 2.0: 0.0;
    TexCoord.y = (gl_VertexID == 1)? 2.0: 0.0;

	gl_Position = vec4(2.0 * TexCoord - 1.0, 0.0, 1.0);
}
`

const fragmentShader = `
#version 330

uniform sampler2D buffer;
noperspective in vec2 TexCoord;

out vec3 outColor;

void main(void) {
	outColor = texture(buffer, TexCoord).rgb;
}
`

// Initialize opens a window scaled by scale and prepares the texture the
// framebuffer is uploaded to.
func (emu *Emulator) Initialize(sys *chip8.System, scale int) error {
	emu.sys = sys

	if err := emu.openWindow(scale); err != nil {
		return err
	}
	if err := gl.Init(); err != nil {
		return errors.Wrap(err, "initializing OpenGL")
	}
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.Disable(gl.DEPTH_TEST)

	gl.GenVertexArrays(1, &emu.vao)
	gl.BindVertexArray(emu.vao)

	if err := emu.linkProgram(); err != nil {
		return err
	}
	gl.UseProgram(emu.program)
	emu.createTexture()
	return nil
}

func (emu *Emulator) openWindow(scale int) error {
	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "initializing glfw")
	}

	hints := map[glfw.Hint]int{
		glfw.Resizable:               glfw.False,
		glfw.ContextVersionMajor:     3,
		glfw.ContextVersionMinor:     3,
		glfw.OpenGLForwardCompatible: glfw.True,
		glfw.OpenGLProfile:           glfw.OpenGLCoreProfile,
	}
	for hint, value := range hints {
		glfw.WindowHint(hint, value)
	}

	window, err := glfw.CreateWindow(ScreenWidth*scale, ScreenHeight*scale, "CHIP-8", nil, nil)
	if err != nil {
		glfw.Terminate()
		return errors.Wrap(err, "creating window")
	}
	window.MakeContextCurrent()
	window.SetKeyCallback(emu.onKey)
	window.SetRefreshCallback(func(*glfw.Window) {
		emu.sys.SetDirty(true)
	})
	emu.window = window
	return nil
}

// createTexture allocates the RGB screen texture bound to texture unit 0.
func (emu *Emulator) createTexture() {
	emu.pixels = make([]byte, ScreenWidth*ScreenHeight*3)

	gl.GenTextures(1, &emu.texture)
	gl.BindTexture(gl.TEXTURE_2D, emu.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB, ScreenWidth, ScreenHeight, 0,
		gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(emu.pixels))

	for _, param := range [][2]uint32{
		{gl.TEXTURE_MAG_FILTER, gl.NEAREST},
		{gl.TEXTURE_MIN_FILTER, gl.NEAREST},
		{gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE},
		{gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE},
	} {
		gl.TexParameteri(gl.TEXTURE_2D, param[0], int32(param[1]))
	}

	gl.Uniform1i(gl.GetUniformLocation(emu.program, gl.Str("buffer\x00")), 0)
}

func (emu *Emulator) onKey(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape {
		w.SetShouldClose(true)
		return
	}
	c8Key, ok := keymap.Lookup(rune(key))
	if !ok {
		return
	}
	switch action {
	case glfw.Press:
		emu.sys.SetKey(c8Key, true)
	case glfw.Release:
		emu.sys.SetKey(c8Key, false)
	}
}

func (emu *Emulator) linkProgram() error {
	emu.program = gl.CreateProgram()

	vs, err := compileShader(vertexShader, gl.VERTEX_SHADER)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(vs)
	gl.AttachShader(emu.program, vs)
	defer gl.DetachShader(emu.program, vs)

	fs, err := compileShader(fragmentShader, gl.FRAGMENT_SHADER)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(fs)
	gl.AttachShader(emu.program, fs)
	defer gl.DetachShader(emu.program, fs)

	var status int32
	gl.LinkProgram(emu.program)
	gl.GetProgramiv(emu.program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		return errors.New("linking shader program")
	}
	return nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))
		gl.DeleteShader(shader)
		return 0, errors.Errorf("compiling shader: %s", strings.TrimRight(infoLog, "\x00"))
	}

	return shader, nil
}

// PollEvents processes window events; key presses reach the machine
// through the key callback.
func (emu *Emulator) PollEvents(_ *chip8.System) bool {
	glfw.PollEvents()
	return emu.window.ShouldClose()
}

// Render uploads the framebuffer as an RGB texture, flipped so row 0 is at
// the top, and draws it over the whole window.
func (emu *Emulator) Render(fb *chip8.Framebuffer) error {
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			offset := ((ScreenHeight-y-1)*ScreenWidth + x) * 3
			v := uint8(fb.Raw(x, y))
			emu.pixels[offset], emu.pixels[offset+1], emu.pixels[offset+2] = v, v, v
		}
	}

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, ScreenWidth, ScreenHeight,
		gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(emu.pixels))

	gl.BindVertexArray(emu.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	emu.window.SwapBuffers()
	return nil
}

// Terminate releases the GL objects and closes the window.
func (emu *Emulator) Terminate() {
	gl.DeleteVertexArrays(1, &emu.vao)
	gl.DeleteTextures(1, &emu.texture)
	gl.DeleteProgram(emu.program)
	glfw.Terminate()
}
