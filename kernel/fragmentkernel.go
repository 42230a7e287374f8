//go:build !tinygo && cgo

package kernel

import (
	"math"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/shaderkit/gpudsl/build"
	"github.com/shaderkit/gpudsl/driver/glgl"
	"github.com/shaderkit/gpudsl/dsl"
)

// FragmentKernel2D renders a full-screen fragment program over a
// width x height surface (spec.md §4.3's fragment entry variant), reading
// the rasterized output back to host memory by default or presenting it
// to an attached WindowAttachment when one is passed to Dispatch.
type FragmentKernel2D struct {
	name          string
	width, height int
	ctx           *kernelContext
	fragSource    string
	opts          kernelOptions

	compiled bool
	prog     glgl.Program
	fbo      glgl.Framebuffer
	fboTex   glgl.Texture
	vao      glgl.VertexArray
}

// NewFragmentKernel2D constructs a fragment kernel sized width x height,
// running author once to capture its body. author receives the
// normalized UV coordinate of the fragment being shaded.
func NewFragmentKernel2D(name string, width, height int, opts []KernelOption, author func(uv dsl.Vec2)) *FragmentKernel2D {
	ctx := newFragmentContext(width, height)
	build.Bind(ctx)
	author(fragmentUV())
	build.Unbind()
	return &FragmentKernel2D{
		name:       name,
		width:      width,
		height:     height,
		ctx:        ctx,
		fragSource: assembleFragmentSource(ctx),
		opts:       applyOptions(opts),
	}
}

// Source returns the kernel's assembled fragment-stage GLSL source. The
// vertex stage is the fixed full-screen-triangle source every
// FragmentKernel2D shares.
func (k *FragmentKernel2D) Source() string { return k.fragSource }

func (k *FragmentKernel2D) ensureCompiled() error {
	if k.compiled {
		return nil
	}
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:       fixedFragmentVertexSource,
		Fragment:     k.fragSource,
		CompileFlags: k.opts.flags,
	})
	if err != nil {
		return wrapProgramError(err, k.fragSource)
	}
	tex, err := glgl.NewTextureFromImage[float32](glgl.TextureImgConfig{
		Type:      glgl.TextureType(gl.TEXTURE_2D),
		Width:     k.width,
		Height:    k.height,
		Format:    gl.RGBA,
		Xtype:     gl.FLOAT,
		MagFilter: gl.NEAREST,
		MinFilter: gl.NEAREST,
		Wrap:      gl.CLAMP_TO_EDGE,
	}, nil)
	if err != nil {
		return err
	}
	fbo, err := glgl.NewFramebuffer(tex)
	if err != nil {
		return err
	}
	// The core profile rejects a draw call with no bound vertex array,
	// even though the full-screen triangle's vertex stage reads no
	// attributes — an empty VAO satisfies that requirement.
	k.vao = glgl.NewVAO()
	k.prog = prog
	k.fboTex = tex
	k.fbo = fbo
	k.compiled = true
	return nil
}

// Dispatch renders one frame. When window is non-nil the frame is drawn
// straight to the window's default framebuffer and presented; otherwise
// it renders headlessly into an internal texture readable with Readback.
func (k *FragmentKernel2D) Dispatch(window *WindowAttachment) error {
	return dispatchCompute(k.name, k.ctx, &k.opts, func() error {
		if err := k.ensureCompiled(); err != nil {
			return err
		}
		stateCache.BindProgram(k.prog)
		uploadUniforms(k.ctx, k.prog.ID())
		rebindResources(k.ctx)
		k.vao.Bind()
		if window != nil {
			k.fbo.Unbind()
			gl.Viewport(0, 0, int32(k.width), int32(k.height))
		} else {
			k.fbo.Bind(k.width, k.height)
		}
		glgl.DrawFullScreenTriangle()
		if window != nil {
			window.SwapBuffers()
		} else {
			k.fbo.Unbind()
		}
		return nil
	})
}

// Readback downloads the most recently rendered headless frame into dst,
// which must have room for width*height*4 float32 components (RGBA).
func (k *FragmentKernel2D) Readback(dst []float32) error {
	return glgl.GetImage(dst, k.fboTex, glgl.TextureImgConfig{
		Width:  k.width,
		Height: k.height,
		Format: gl.RGBA,
		Xtype:  gl.FLOAT,
	})
}

// ReadbackAsync starts a background download of the most recently
// rendered headless frame and returns a token to poll or wait on.
func (k *FragmentKernel2D) ReadbackAsync() *AsyncReadback {
	return newAsyncReadback(func() ([]byte, error) {
		dst := make([]float32, k.width*k.height*4)
		if err := k.Readback(dst); err != nil {
			return nil, err
		}
		out := make([]byte, len(dst)*4)
		for i, f := range dst {
			bits := math.Float32bits(f)
			out[i*4+0] = byte(bits)
			out[i*4+1] = byte(bits >> 8)
			out[i*4+2] = byte(bits >> 16)
			out[i*4+3] = byte(bits >> 24)
		}
		return out, nil
	})
}
