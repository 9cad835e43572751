package main

import (
	mgl "github.com/go-gl/mathgl/mgl32"
)

// Shader is what a scene node draws with. The factory that builds a
// Shader is its compile step.
type Shader interface {
	Draw(dev Device, buf VertexBuffer) error
	Release(dev Device)
}

type UniformValue interface {
	float32 | mgl.Vec4 | mgl.Mat4
}

type uniformSlot interface {
	uniformName() string
	isSet() bool
	upload(dev Device)
}

// Uniform is a dirty-tracked uniform slot owned by one Program.
type Uniform[T UniformValue] struct {
	Name     string
	location int32
	value    *RenderProperty[T]
	set      bool
}

func (u *Uniform[T]) Set(v T) {
	if !u.set {
		u.set = true
		u.value.Set(v)
		u.value.Invalidate()
		return
	}
	u.value.Set(v)
}

func (u *Uniform[T]) Get() T {
	return u.value.Get()
}

func (u *Uniform[T]) IsDirty() bool {
	return u.value.IsDirty()
}

func (u *Uniform[T]) uniformName() string {
	return u.Name
}

func (u *Uniform[T]) isSet() bool {
	return u.set
}

func (u *Uniform[T]) upload(dev Device) {
	v, dirty := u.value.Consume()
	if !dirty || u.location < 0 {
		return
	}
	switch v := any(v).(type) {
	case float32:
		dev.Uniform1f(u.location, v)
	case mgl.Vec4:
		dev.Uniform4fv(u.location, v)
	case mgl.Mat4:
		dev.UniformMatrix4fv(u.location, v)
	}
}

// Program is a linked vertex/fragment shader pair.
type Program struct {
	name           string
	program        uint32
	vertexShader   uint32
	fragmentShader uint32
	uniforms       []uniformSlot
	attribs        map[string]int32
	released       bool
}

// CompileProgram compiles and links both stages. Nothing stays allocated
// on the device when it fails.
func CompileProgram(dev Device, name, vertexSource, fragmentSource string) (*Program, error) {
	if err := checkDevice(dev, "compile "+name); err != nil {
		return nil, err
	}
	vs, err := dev.CompileShader(VertexStage, vertexSource)
	if err != nil {
		return nil, &CompileError{Program: name, Stage: VertexStage, Log: err.Error()}
	}
	fs, err := dev.CompileShader(FragmentStage, fragmentSource)
	if err != nil {
		dev.DeleteShader(vs)
		return nil, &CompileError{Program: name, Stage: FragmentStage, Log: err.Error()}
	}
	program, err := dev.LinkProgram(vs, fs)
	if err != nil {
		dev.DeleteShader(vs)
		dev.DeleteShader(fs)
		return nil, &CompileError{Program: name, Stage: LinkStage, Log: err.Error()}
	}
	logger.Debug("program linked", "program", name, "id", program)
	return &Program{
		name:           name,
		program:        program,
		vertexShader:   vs,
		fragmentShader: fs,
		attribs:        map[string]int32{},
	}, nil
}

// NewUniform registers a uniform that must be set before the first draw.
func NewUniform[T UniformValue](dev Device, p *Program, name string) *Uniform[T] {
	var zero T
	u := &Uniform[T]{
		Name:     name,
		location: dev.UniformLocation(p.program, name),
		value:    NewRenderProperty(zero),
	}
	p.uniforms = append(p.uniforms, u)
	return u
}

func (p *Program) attribLocation(dev Device, name string) int32 {
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	loc := dev.AttribLocation(p.program, name)
	p.attribs[name] = loc
	return loc
}

// Draw uploads the dirty uniforms, binds the buffer's layout and issues
// one draw call. An empty buffer draws nothing.
func (p *Program) Draw(dev Device, buf VertexBuffer) error {
	if p.released {
		return &DeviceUnavailableError{Op: "draw " + p.name}
	}
	if err := checkDevice(dev, "draw "+p.name); err != nil {
		return err
	}
	for _, u := range p.uniforms {
		if !u.isSet() {
			return &MissingUniformError{Program: p.name, Uniform: u.uniformName()}
		}
	}
	count := buf.VertexCount()
	if count == 0 {
		return nil
	}
	dev.UseProgram(p.program)
	for _, u := range p.uniforms {
		u.upload(dev)
	}
	layout := buf.Layout()
	stride := layout.Stride()
	var bound []int32
	offset := 0
	for _, a := range layout.Attribs {
		loc := p.attribLocation(dev, a.Name)
		if loc >= 0 {
			dev.VertexAttribPointer(buf.BufferID(), loc, a.Size, stride, offset)
			bound = append(bound, loc)
		}
		offset += a.Size
	}
	dev.DrawArrays(0, count)
	for _, loc := range bound {
		dev.DisableVertexAttrib(loc)
	}
	return nil
}

func (p *Program) Release(dev Device) {
	if p.released {
		return
	}
	p.released = true
	if dev == nil || dev.Lost() {
		return
	}
	dev.DeleteProgram(p.program)
	dev.DeleteShader(p.vertexShader)
	dev.DeleteShader(p.fragmentShader)
	logger.Debug("program released", "program", p.name)
}
