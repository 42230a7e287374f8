//go:build tinygo || !cgo

package kernel

import (
	"errors"

	"github.com/shaderkit/gpudsl/dsl"
)

// FragmentKernel2D is a no-op placeholder on builds without cgo/OpenGL
// available.
type FragmentKernel2D struct{}

func NewFragmentKernel2D(name string, width, height int, opts []KernelOption, author func(uv dsl.Vec2)) *FragmentKernel2D {
	return &FragmentKernel2D{}
}

func (k *FragmentKernel2D) Source() string { return "" }

func (k *FragmentKernel2D) Dispatch(window *WindowAttachment) error {
	return errors.New("gpudsl: fragment kernel needs cgo")
}

func (k *FragmentKernel2D) Readback(dst []float32) error {
	return errors.New("gpudsl: fragment kernel needs cgo")
}

func (k *FragmentKernel2D) ReadbackAsync() *AsyncReadback {
	return newAsyncReadback(func() ([]byte, error) {
		return nil, errors.New("gpudsl: fragment kernel needs cgo")
	})
}
