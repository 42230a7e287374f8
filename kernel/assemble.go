package kernel

import (
	"fmt"
	"strings"

	"github.com/shaderkit/gpudsl/build"
)

// fixedFragmentVertexSource is the fixed full-screen-triangle vertex stage
// every FragmentKernel2D links against unchanged (spec.md §4.3: "prepends
// a fixed vertex entry emitting a full-screen triangle"). It needs no
// authored statements, uniforms or bindings of its own.
const fixedFragmentVertexSource = "#version 460 core\n\n" +
	"out vec2 v_uv;\n\n" +
	"void main() {\n" +
	"    vec2 pos = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2);\n" +
	"    v_uv = pos * 0.5;\n" +
	"    gl_Position = vec4(pos * 2.0 - 1.0, 0.0, 1.0);\n" +
	"}\n\x00"

// assembleComputeSource renders ctx's registries and statement stream into
// a complete compute GLSL program, in the order spec.md §4.3 fixes:
// version directive, struct defs, uniforms, callable forward declarations,
// generated callable bodies, textures, buffers, then the entry function.
func assembleComputeSource(ctx *kernelContext) string {
	var sb strings.Builder
	writeCommonDecls(&sb, ctx)
	writeComputeEntry(&sb, ctx)
	sb.WriteByte(0)
	return sb.String()
}

// assembleFragmentSource renders the fragment stage: the same registry
// composition as the compute path, but the entry function receives the
// vertex stage's interpolated UV and writes one output color.
func assembleFragmentSource(ctx *kernelContext) string {
	var sb strings.Builder
	writeCommonDecls(&sb, ctx)
	writeFragmentEntry(&sb, ctx)
	sb.WriteByte(0)
	return sb.String()
}

func writeCommonDecls(sb *strings.Builder, ctx *kernelContext) {
	sb.WriteString("#version 460 core\n\n")

	for _, s := range ctx.Structs() {
		sb.WriteString(s)
		sb.WriteByte('\n')
	}

	for _, u := range ctx.UniformDecls() {
		fmt.Fprintf(sb, "uniform %s %s;\n", u.TypeName, u.ShaderName)
	}
	if len(ctx.UniformDecls()) > 0 {
		sb.WriteByte('\n')
	}

	for _, proto := range ctx.CallableDeclarations() {
		sb.WriteString(proto)
		sb.WriteString(";\n")
	}
	body := ctx.GenerateCallableBodies()
	if body != "" {
		sb.WriteByte('\n')
		sb.WriteString(body)
	}

	writeTextureDecls(sb, ctx)
	writeBufferDecls(sb, ctx)
}

func writeTextureDecls(sb *strings.Builder, ctx *kernelContext) {
	for _, t := range ctx.TextureDecls() {
		if t.IsSampler {
			fmt.Fprintf(sb, "layout(binding = %d) uniform sampler2D %s;\n", t.Binding, t.Name)
			continue
		}
		qualifier := ""
		switch {
		case t.ReadOnly:
			qualifier = "readonly "
		case t.WriteOnly:
			qualifier = "writeonly "
		}
		fmt.Fprintf(sb, "layout(binding = %d, %s) %suniform image2D %s;\n", t.Binding, t.PixelGLSL, qualifier, t.Name)
	}
}

func writeBufferDecls(sb *strings.Builder, ctx *kernelContext) {
	for _, b := range ctx.BufferDecls() {
		qualifier := ""
		switch b.Access {
		case build.AccessReadOnly:
			qualifier = "readonly "
		case build.AccessWriteOnly:
			qualifier = "writeonly "
		}
		fmt.Fprintf(sb, "layout(std430, binding = %d) %sbuffer Buf%d {\n    %s %s[];\n};\n",
			b.Binding, qualifier, b.Binding, b.TypeName, b.Name)
	}
}

func writeComputeEntry(sb *strings.Builder, ctx *kernelContext) {
	x, y, z := ctx.localX, ctx.localY, ctx.localZ
	if x == 0 {
		x = 1
	}
	if y == 0 {
		y = 1
	}
	if z == 0 {
		z = 1
	}
	fmt.Fprintf(sb, "layout(local_size_x = %d, local_size_y = %d, local_size_z = %d) in;\n\n", x, y, z)
	sb.WriteString("void main() {\n")
	for _, line := range ctx.Statements() {
		sb.WriteString("    " + line)
	}
	sb.WriteString("}\n")
}

func writeFragmentEntry(sb *strings.Builder, ctx *kernelContext) {
	sb.WriteString("in vec2 v_uv;\n")
	sb.WriteString("out vec4 gpudsl_fragColor;\n\n")
	sb.WriteString("void main() {\n")
	sb.WriteString("    vec2 uv = v_uv;\n")
	for _, line := range ctx.Statements() {
		sb.WriteString("    " + line)
	}
	sb.WriteString("}\n")
}
