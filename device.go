package main

import (
	mgl "github.com/go-gl/mathgl/mgl32"
)

// Device is the graphics context a renderer draws through. A Device is
// bound to exactly one drawing surface and is not safe for concurrent use.
type Device interface {
	// CompileShader returns the driver's info log as the error text when
	// compilation fails.
	CompileShader(stage ShaderStage, source string) (uint32, error)
	LinkProgram(vertexShader, fragmentShader uint32) (uint32, error)
	DeleteShader(shader uint32)
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	UniformLocation(program uint32, name string) int32
	AttribLocation(program uint32, name string) int32
	Uniform1f(location int32, v float32)
	Uniform4fv(location int32, v mgl.Vec4)
	UniformMatrix4fv(location int32, m mgl.Mat4)

	CreateBuffer() uint32
	DeleteBuffer(buffer uint32)
	BufferData(buffer uint32, data []float32)
	// VertexAttribPointer binds buffer and enables the attribute at
	// location reading size floats every stride floats from offset.
	VertexAttribPointer(buffer uint32, location int32, size, stride, offset int)
	DisableVertexAttrib(location int32)
	// DrawArrays draws count vertices of the bound attributes as triangles.
	DrawArrays(first, count int)

	Viewport(x, y, width, height int)
	Clear(color mgl.Vec4, depth float32)
	SurfaceSize() Size
	Lost() bool
}
