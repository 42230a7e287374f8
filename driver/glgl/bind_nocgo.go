//go:build tinygo || !cgo

package glgl

func BindStorageBuffer(binding, handle uint32) {}

func BindImageUnit(unit, handle uint32, glslFormat string, readOnly, writeOnly bool) {}

func BindSamplerUnit(unit, handle uint32) {}
