package main

import (
	"errors"

	gl "github.com/go-gl/gl/v3.1/gles2"
	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const floatSize = 4

// glDevice draws into the framebuffer of a GLFW window through GLES2.
type glDevice struct {
	window *glfw.Window
	lost   bool
}

// NewGLDevice expects the window's context to be current and gl.Init done.
func NewGLDevice(window *glfw.Window) *glDevice {
	return &glDevice{window: window}
}

// Lose marks the context unusable. Called when the window goes away.
// GLES2 has no context-loss notification, so this is the only way a
// glDevice becomes lost; a driver reset goes unnoticed.
func (d *glDevice) Lose() {
	if !d.lost {
		logger.Warn("graphics context lost")
	}
	d.lost = true
	d.window = nil
}

func (d *glDevice) Lost() bool {
	return d.lost || d.window == nil
}

func (d *glDevice) SurfaceSize() Size {
	if d.Lost() {
		return Size{}
	}
	width, height := d.window.GetFramebufferSize()
	return Size{X: width, Y: height}
}

func GetShaderInfoLog(shader uint32) string {
	var length int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &length)
	if length == 0 {
		return ""
	}
	log := make([]uint8, length)
	var logLen int32
	gl.GetShaderInfoLog(shader, length, &logLen, &log[0])
	return string(log[:logLen])
}

func GetProgramInfoLog(program uint32) string {
	var length int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &length)
	if length == 0 {
		return ""
	}
	log := make([]uint8, length)
	var logLen int32
	gl.GetProgramInfoLog(program, length, &logLen, &log[0])
	return string(log[:logLen])
}

func (d *glDevice) CompileShader(stage ShaderStage, source string) (uint32, error) {
	shaderType := uint32(gl.VERTEX_SHADER)
	if stage == FragmentStage {
		shaderType = gl.FRAGMENT_SHADER
	}
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, csources, nil)
	gl.CompileShader(shader)
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		log := GetShaderInfoLog(shader)
		gl.DeleteShader(shader)
		return 0, errors.New(log)
	}
	return shader, nil
}

func (d *glDevice) LinkProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := GetProgramInfoLog(program)
		gl.DeleteProgram(program)
		return 0, errors.New(log)
	}
	return program, nil
}

func (d *glDevice) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *glDevice) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *glDevice) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *glDevice) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *glDevice) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (d *glDevice) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (d *glDevice) Uniform4fv(location int32, v mgl.Vec4) {
	gl.Uniform4fv(location, 1, &v[0])
}

func (d *glDevice) UniformMatrix4fv(location int32, m mgl.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *glDevice) CreateBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (d *glDevice) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (d *glDevice) BufferData(buffer uint32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*floatSize, gl.Ptr(&data[0]), gl.DYNAMIC_DRAW)
}

func (d *glDevice) VertexAttribPointer(buffer uint32, location int32, size, stride, offset int) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	gl.EnableVertexAttribArray(uint32(location))
	gl.VertexAttribPointer(
		uint32(location), int32(size), gl.FLOAT, false,
		int32(stride*floatSize),
		gl.PtrOffset(offset*floatSize))
}

func (d *glDevice) DisableVertexAttrib(location int32) {
	gl.DisableVertexAttribArray(uint32(location))
}

func (d *glDevice) DrawArrays(first, count int) {
	gl.DrawArrays(gl.TRIANGLES, int32(first), int32(count))
}

func (d *glDevice) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// Clear also resets the per-frame blend and depth state.
func (d *glDevice) Clear(color mgl.Vec4, depth float32) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.ClearDepthf(depth)
	gl.Disable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}
