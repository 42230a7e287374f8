// Package kernel orchestrates a single kernel's lifecycle (spec.md §4.7):
// build-context construction, authoring-closure invocation, source
// assembly, lazy compile+link, resource rebinding and dispatch. It is the
// only package that imports driver/glgl directly on the authoring side —
// dsl and flow stay driver-agnostic and reach the GPU only through the
// dsl.UniformDriver seam wired up in init below.
package kernel

import "github.com/shaderkit/gpudsl/driver/glgl"

func init() {
	glgl.WireUniformDriver()
}
