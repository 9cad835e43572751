package main

import (
	"errors"
	"fmt"
	"strings"

	mgl "github.com/go-gl/mathgl/mgl32"
)

type fakeDraw struct {
	program uint32
	buffer  uint32
	count   int
}

type fakeUniform struct {
	program uint32
	name    string
}

// fakeDevice records what a renderer asks of the graphics device.
type fakeDevice struct {
	size Size
	lost bool
	// failCompile makes every shader whose source contains it fail.
	failCompile string
	failLink    bool

	nextID      uint32
	program     uint32
	attribBuf   uint32
	live        map[uint32]string
	attribs     map[uint32]uint32
	uniforms    map[int32]fakeUniform
	uniformSets map[int32]int
	uniformVals map[int32]any
	bufferData  map[uint32][]float32
	uploads     map[uint32]int
	viewports   []Size
	clears      int
	draws       []fakeDraw
	calls       []string
}

func newFakeDevice(width, height int) *fakeDevice {
	return &fakeDevice{
		size:        Size{X: width, Y: height},
		live:        map[uint32]string{},
		attribs:     map[uint32]uint32{},
		uniforms:    map[int32]fakeUniform{},
		uniformSets: map[int32]int{},
		uniformVals: map[int32]any{},
		bufferData:  map[uint32][]float32{},
		uploads:     map[uint32]int{},
	}
}

func (d *fakeDevice) id(kind string) uint32 {
	d.nextID++
	d.live[d.nextID] = kind
	return d.nextID
}

func (d *fakeDevice) record(format string, args ...any) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

func (d *fakeDevice) CompileShader(stage ShaderStage, source string) (uint32, error) {
	if d.failCompile != "" && strings.Contains(source, d.failCompile) {
		return 0, errors.New("0:1(1): error: syntax error")
	}
	return d.id("shader"), nil
}

func (d *fakeDevice) LinkProgram(vs, fs uint32) (uint32, error) {
	if d.failLink {
		return 0, errors.New("error: linking failed")
	}
	return d.id("program"), nil
}

func (d *fakeDevice) DeleteShader(shader uint32)   { delete(d.live, shader) }
func (d *fakeDevice) DeleteProgram(program uint32) { delete(d.live, program) }

func (d *fakeDevice) UseProgram(program uint32) {
	d.program = program
	d.record("use %d", program)
}

func (d *fakeDevice) UniformLocation(program uint32, name string) int32 {
	d.nextID++
	loc := int32(d.nextID)
	d.uniforms[loc] = fakeUniform{program: program, name: name}
	return loc
}

func (d *fakeDevice) AttribLocation(program uint32, name string) int32 {
	d.attribs[program]++
	return int32(d.attribs[program] - 1)
}

func (d *fakeDevice) setUniform(loc int32, v any) {
	u := d.uniforms[loc]
	d.uniformSets[loc]++
	d.uniformVals[loc] = v
	d.record("uniform %d %s", u.program, u.name)
}

func (d *fakeDevice) Uniform1f(loc int32, v float32)          { d.setUniform(loc, v) }
func (d *fakeDevice) Uniform4fv(loc int32, v mgl.Vec4)        { d.setUniform(loc, v) }
func (d *fakeDevice) UniformMatrix4fv(loc int32, m mgl.Mat4) { d.setUniform(loc, m) }

func (d *fakeDevice) CreateBuffer() uint32 {
	return d.id("buffer")
}

func (d *fakeDevice) DeleteBuffer(buffer uint32) {
	delete(d.live, buffer)
}

func (d *fakeDevice) BufferData(buffer uint32, data []float32) {
	d.bufferData[buffer] = append([]float32(nil), data...)
	d.uploads[buffer]++
	d.record("upload %d %d", buffer, len(data))
}

func (d *fakeDevice) VertexAttribPointer(buffer uint32, loc int32, size, stride, offset int) {
	d.attribBuf = buffer
	d.record("attrib %d %d %d %d %d", buffer, loc, size, stride, offset)
}

func (d *fakeDevice) DisableVertexAttrib(loc int32) {}

func (d *fakeDevice) DrawArrays(first, count int) {
	buffer := d.attribBuf
	d.draws = append(d.draws, fakeDraw{program: d.program, buffer: buffer, count: count})
	d.record("draw %d %d %d", d.program, buffer, count)
}

func (d *fakeDevice) Viewport(x, y, width, height int) {
	d.viewports = append(d.viewports, Size{X: width, Y: height})
}

func (d *fakeDevice) Clear(color mgl.Vec4, depth float32) {
	d.clears++
}

func (d *fakeDevice) SurfaceSize() Size {
	return d.size
}

func (d *fakeDevice) Lost() bool {
	return d.lost
}

func (d *fakeDevice) uniformUploads(program uint32, name string) int {
	for loc, u := range d.uniforms {
		if u.program == program && u.name == name {
			return d.uniformSets[loc]
		}
	}
	return 0
}

func (d *fakeDevice) uniformValue(program uint32, name string) any {
	for loc, u := range d.uniforms {
		if u.program == program && u.name == name {
			return d.uniformVals[loc]
		}
	}
	return nil
}

func (d *fakeDevice) drawOrder() []uint32 {
	var buffers []uint32
	for _, draw := range d.draws {
		buffers = append(buffers, draw.buffer)
	}
	return buffers
}

func (d *fakeDevice) drawsFor(buffer uint32) int {
	n := 0
	for _, draw := range d.draws {
		if draw.buffer == buffer {
			n++
		}
	}
	return n
}

func (d *fakeDevice) resetFrame() {
	d.draws = nil
	d.calls = nil
}

func fmtCall(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
