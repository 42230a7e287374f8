//go:build !tinygo && cgo

package glgl

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/shaderkit/gpudsl/dsl"
)

// WireUniformDriver assigns dsl.UniformDriver's function fields to real GL
// uniform-upload calls, keeping package dsl free of any OpenGL import
// (mirroring how the teacher keeps gl.* calls behind this package's own
// free functions rather than exposed on Program directly). kernel calls
// this once from its own init.
func WireUniformDriver() {
	dsl.UniformDriver.Uniform1i = func(program uint32, name string, v int32) {
		loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
		gl.Uniform1i(loc, v)
	}
	dsl.UniformDriver.Uniform1f = func(program uint32, name string, v float32) {
		loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
		gl.Uniform1f(loc, v)
	}
	dsl.UniformDriver.Uniform2f = func(program uint32, name string, x, y float32) {
		loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
		gl.Uniform2f(loc, x, y)
	}
	dsl.UniformDriver.Uniform3f = func(program uint32, name string, x, y, z float32) {
		loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
		gl.Uniform3f(loc, x, y, z)
	}
	dsl.UniformDriver.Uniform4f = func(program uint32, name string, x, y, z, w float32) {
		loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
		gl.Uniform4f(loc, x, y, z, w)
	}
}
