//go:build tinygo || !cgo

package glgl

// WireUniformDriver is a no-op on builds without a real GL binding; any
// dsl.Uniform* upload attempted on such a build panics through the nil
// function fields, same as every other no-cgo driver call in this package.
func WireUniformDriver() {}
