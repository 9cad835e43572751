package main

import (
	mgl "github.com/go-gl/mathgl/mgl32"
)

const (
	projectionNear = 0
	projectionFar  = 100
)

func Identity() mgl.Mat4 {
	return mgl.Ident4()
}

func Translation(dx, dy float32) mgl.Mat4 {
	return mgl.Translate3D(dx, dy, 0)
}

// Multiply returns a*b: b is applied to a point first.
func Multiply(a, b mgl.Mat4) mgl.Mat4 {
	return a.Mul4(b)
}

func Ortho(left, right, bottom, top, near, far float32) mgl.Mat4 {
	return mgl.Ortho(left, right, bottom, top, near, far)
}

// Projection maps surface pixels (origin top-left, y down) to clip space.
func Projection(size Size) mgl.Mat4 {
	return Ortho(0, float32(size.X), float32(size.Y), 0, projectionNear, projectionFar)
}

func TransformPoint(m mgl.Mat4, x, y float32) mgl.Vec2 {
	v := m.Mul4x1(mgl.Vec4{x, y, 0, 1})
	return mgl.Vec2{v[0] / v[3], v[1] / v[3]}
}
