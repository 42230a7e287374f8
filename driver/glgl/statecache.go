//go:build !tinygo && cgo

package glgl

import "sync"

// GLStateCache is a process-wide cache of the program, buffer bindings
// and image/sampler units currently bound, used to suppress redundant GL
// rebind calls across successive dispatches of the same or different
// kernels (spec.md §5's "small, process-wide GPU state cache" paragraph).
// It is safe for concurrent use, mirroring the rest of this package's
// free-function style rather than requiring callers to thread a cache
// value through every call site.
type GLStateCache struct {
	mu             sync.Mutex
	boundProgram   uint32
	boundBuffers   map[uint32]uint32 // binding -> handle
	boundImages    map[uint32]uint32 // unit -> handle
	boundSamplers  map[uint32]uint32 // unit -> handle
}

// NewGLStateCache returns an empty cache.
func NewGLStateCache() *GLStateCache {
	return &GLStateCache{
		boundBuffers:  make(map[uint32]uint32),
		boundImages:   make(map[uint32]uint32),
		boundSamplers: make(map[uint32]uint32),
	}
}

// BindProgram rebinds program.rid only if it differs from the last
// program this cache bound.
func (c *GLStateCache) BindProgram(p Program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.boundProgram == p.rid {
		return
	}
	p.Bind()
	c.boundProgram = p.rid
}

// BindStorageBuffer rebinds handle at binding only if it differs from
// what this cache last bound there.
func (c *GLStateCache) BindStorageBuffer(binding, handle uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.boundBuffers[binding] == handle {
		return
	}
	BindStorageBuffer(binding, handle)
	c.boundBuffers[binding] = handle
}

// BindImageUnit rebinds handle at unit only if it differs from what this
// cache last bound there.
func (c *GLStateCache) BindImageUnit(unit, handle uint32, glslFormat string, readOnly, writeOnly bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.boundImages[unit] == handle {
		return
	}
	BindImageUnit(unit, handle, glslFormat, readOnly, writeOnly)
	c.boundImages[unit] = handle
}

// BindSamplerUnit rebinds handle at unit only if it differs from what
// this cache last bound there.
func (c *GLStateCache) BindSamplerUnit(unit, handle uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.boundSamplers[unit] == handle {
		return
	}
	BindSamplerUnit(unit, handle)
	c.boundSamplers[unit] = handle
}

// Reset clears all cached bindings, forcing the next call of each Bind*
// method to issue its GL call regardless of the handle passed.
func (c *GLStateCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.boundProgram = 0
	c.boundBuffers = make(map[uint32]uint32)
	c.boundImages = make(map[uint32]uint32)
	c.boundSamplers = make(map[uint32]uint32)
}
