package main

import (
	mgl "github.com/go-gl/mathgl/mgl32"
)

const (
	solidVertexShader = `
    precision highp float;
    attribute vec2 a_position;
    uniform mat4 u_projection;
    void main(void) {
      gl_Position = u_projection * vec4(a_position, 0.0, 1.0);
    }`
	solidFragmentShader = `
    precision highp float;
    uniform vec4 u_color;
    void main(void) {
      gl_FragColor = u_color;
    }`

	rectVertexShader = `
    precision highp float;
    attribute vec2 a_position;
    attribute vec4 a_bounds;
    uniform mat4 u_projection;
    varying vec2 v_position;
    varying vec4 v_bounds;
    void main(void) {
      gl_Position = u_projection * vec4(a_position, 0.0, 1.0);
      v_position = a_position;
      v_bounds = a_bounds;
    }`
	rectFragmentShader = `
    precision highp float;
    uniform vec4 u_fillColor;
    uniform vec4 u_strokeColor;
    varying vec2 v_position;
    varying vec4 v_bounds;
    void main(void) {
      vec2 lo = v_position - v_bounds.xy;
      vec2 hi = v_bounds.xy + v_bounds.zw - v_position;
      if (min(min(lo.x, lo.y), min(hi.x, hi.y)) < 1.0) {
        gl_FragColor = u_strokeColor;
      } else {
        gl_FragColor = u_fillColor;
      }
    }`

	noteVertexShader = `
    precision highp float;
    attribute vec2 a_position;
    attribute vec4 a_bounds;
    attribute vec2 a_state;
    uniform mat4 u_projection;
    varying vec2 v_position;
    varying vec4 v_bounds;
    varying vec2 v_state;
    void main(void) {
      gl_Position = u_projection * vec4(a_position, 0.0, 1.0);
      v_position = a_position;
      v_bounds = a_bounds;
      v_state = a_state;
    }`
	// v_state.x is the velocity in 0..1, v_state.y the selection flag.
	noteFragmentShader = `
    precision highp float;
    uniform vec4 u_fillColor;
    uniform vec4 u_strokeColor;
    varying vec2 v_position;
    varying vec4 v_bounds;
    varying vec2 v_state;
    void main(void) {
      vec2 lo = v_position - v_bounds.xy;
      vec2 hi = v_bounds.xy + v_bounds.zw - v_position;
      if (min(min(lo.x, lo.y), min(hi.x, hi.y)) < 1.0) {
        gl_FragColor = u_strokeColor;
      } else {
        vec4 fill = mix(u_fillColor, u_strokeColor, v_state.y);
        gl_FragColor = vec4(fill.rgb, fill.a * v_state.x);
      }
    }`

	gridVertexShader = `
    precision highp float;
    attribute vec2 a_position;
    uniform mat4 u_projection;
    varying vec2 v_position;
    void main(void) {
      gl_Position = u_projection * vec4(a_position, 0.0, 1.0);
      v_position = a_position;
    }`
	gridFragmentShader = `
    precision highp float;
    uniform vec4 u_color;
    uniform float u_height;
    varying vec2 v_position;
    void main(void) {
      if (mod(v_position.y, u_height) < 1.0) {
        gl_FragColor = u_color;
      } else {
        discard;
      }
    }`

	beatVertexShader = `
    precision highp float;
    attribute vec2 a_position;
    attribute float a_bar;
    uniform mat4 u_projection;
    varying float v_bar;
    void main(void) {
      gl_Position = u_projection * vec4(a_position, 0.0, 1.0);
      v_bar = a_bar;
    }`
	beatFragmentShader = `
    precision highp float;
    uniform vec4 u_beatColor;
    uniform vec4 u_barColor;
    varying float v_bar;
    void main(void) {
      gl_FragColor = mix(u_beatColor, u_barColor, v_bar);
    }`
)

// SolidShader fills geometry with a single color.
type SolidShader struct {
	*Program
	Projection *Uniform[mgl.Mat4]
	Color      *Uniform[mgl.Vec4]
}

func NewSolidShader(dev Device) (*SolidShader, error) {
	p, err := CompileProgram(dev, "solid", solidVertexShader, solidFragmentShader)
	if err != nil {
		return nil, err
	}
	return &SolidShader{
		Program:    p,
		Projection: NewUniform[mgl.Mat4](dev, p, "u_projection"),
		Color:      NewUniform[mgl.Vec4](dev, p, "u_color"),
	}, nil
}

// RectangleShader draws rectangles with a one pixel stroke.
type RectangleShader struct {
	*Program
	Projection  *Uniform[mgl.Mat4]
	FillColor   *Uniform[mgl.Vec4]
	StrokeColor *Uniform[mgl.Vec4]
}

func NewRectangleShader(dev Device) (*RectangleShader, error) {
	p, err := CompileProgram(dev, "rectangle", rectVertexShader, rectFragmentShader)
	if err != nil {
		return nil, err
	}
	return &RectangleShader{
		Program:     p,
		Projection:  NewUniform[mgl.Mat4](dev, p, "u_projection"),
		FillColor:   NewUniform[mgl.Vec4](dev, p, "u_fillColor"),
		StrokeColor: NewUniform[mgl.Vec4](dev, p, "u_strokeColor"),
	}, nil
}

// NoteShader is a RectangleShader that also reads velocity and selection.
type NoteShader struct {
	*Program
	Projection  *Uniform[mgl.Mat4]
	FillColor   *Uniform[mgl.Vec4]
	StrokeColor *Uniform[mgl.Vec4]
}

func NewNoteShader(dev Device) (*NoteShader, error) {
	p, err := CompileProgram(dev, "note", noteVertexShader, noteFragmentShader)
	if err != nil {
		return nil, err
	}
	return &NoteShader{
		Program:     p,
		Projection:  NewUniform[mgl.Mat4](dev, p, "u_projection"),
		FillColor:   NewUniform[mgl.Vec4](dev, p, "u_fillColor"),
		StrokeColor: NewUniform[mgl.Vec4](dev, p, "u_strokeColor"),
	}, nil
}

// GridShader draws a horizontal line every Height pixels of its geometry.
type GridShader struct {
	*Program
	Projection *Uniform[mgl.Mat4]
	Color      *Uniform[mgl.Vec4]
	Height     *Uniform[float32]
}

func NewGridShader(dev Device) (*GridShader, error) {
	p, err := CompileProgram(dev, "grid", gridVertexShader, gridFragmentShader)
	if err != nil {
		return nil, err
	}
	return &GridShader{
		Program:    p,
		Projection: NewUniform[mgl.Mat4](dev, p, "u_projection"),
		Color:      NewUniform[mgl.Vec4](dev, p, "u_color"),
		Height:     NewUniform[float32](dev, p, "u_height"),
	}, nil
}

type BeatShader struct {
	*Program
	Projection *Uniform[mgl.Mat4]
	BeatColor  *Uniform[mgl.Vec4]
	BarColor   *Uniform[mgl.Vec4]
}

func NewBeatShader(dev Device) (*BeatShader, error) {
	p, err := CompileProgram(dev, "beat", beatVertexShader, beatFragmentShader)
	if err != nil {
		return nil, err
	}
	return &BeatShader{
		Program:    p,
		Projection: NewUniform[mgl.Mat4](dev, p, "u_projection"),
		BeatColor:  NewUniform[mgl.Vec4](dev, p, "u_beatColor"),
		BarColor:   NewUniform[mgl.Vec4](dev, p, "u_barColor"),
	}, nil
}
