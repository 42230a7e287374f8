package dsl

import (
	"encoding/binary"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/shaderkit/gpudsl/build"
	"github.com/shaderkit/gpudsl/math/ms3"
)

func bindFresh(t *testing.T) *build.MainContext {
	t.Helper()
	ctx := build.NewMainContext()
	build.Bind(ctx)
	t.Cleanup(build.Unbind)
	return ctx
}

func joinStatements(ctx *build.MainContext) string {
	return strings.Join(ctx.Statements(), "")
}

func TestVarDeclareLoadSet(t *testing.T) {
	ctx := bindFresh(t)

	v := NewVar[int32]()
	v.Set(Lit[int32](5))
	v.AddAssign(Lit[int32](1))

	out := joinStatements(ctx)
	if !strings.Contains(out, "int ") {
		t.Errorf("NewVar did not emit a declaration: %q", out)
	}
	if !strings.Contains(out, " = 5;") {
		t.Errorf("Set did not emit the expected assignment: %q", out)
	}
	if !strings.Contains(out, " += 1;") {
		t.Errorf("AddAssign did not emit a compound assignment: %q", out)
	}
}

func TestExprArithmeticAndComparison(t *testing.T) {
	bindFresh(t)
	a, b := Lit[int32](2), Lit[int32](3)
	if got := build.BuildNode(Add(a, b).Node()); got != "(2 + 3)" {
		t.Errorf("Add = %q, want (2 + 3)", got)
	}
	if got := build.BuildNode(Mod(a, b).Node()); got != "(2 % 3)" {
		t.Errorf("Mod = %q, want (2 %% 3)", got)
	}
	if got := build.BuildNode(Neg(a).Node()); got != "(-2)" {
		t.Errorf("Neg = %q, want (-2)", got)
	}
	if got := build.BuildNode(Eq(a, b).Node()); got != "(2 == 3)" {
		t.Errorf("Eq = %q, want (2 == 3)", got)
	}
	cond := And(Lit(true), Not(Lit(false)))
	if got := build.BuildNode(cond.Node()); got != "(true && (!false))" {
		t.Errorf("And/Not = %q, want (true && (!false))", got)
	}
}

func TestLitLiteralSpellings(t *testing.T) {
	bindFresh(t)
	cases := []struct {
		node string
		want string
	}{
		{build.BuildNode(Lit[int32](-7).Node()), "-7"},
		{build.BuildNode(Lit[float32](1.5).Node()), "1.5"},
		{build.BuildNode(Lit(true).Node()), "true"},
		{build.BuildNode(Lit(false).Node()), "false"},
	}
	for _, c := range cases {
		if c.node != c.want {
			t.Errorf("literal spelling = %q, want %q", c.node, c.want)
		}
	}
}

func TestArrayDeclareAndIndex(t *testing.T) {
	ctx := bindFresh(t)
	arr := NewArray[float32](4)
	if arr.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", arr.Len())
	}
	elem := arr.At(Lit[int32](2))
	elem.Set(Lit[float32](9))

	out := joinStatements(ctx)
	if !strings.Contains(out, "float ") || !strings.Contains(out, "[4]") {
		t.Errorf("NewArray did not emit the expected declaration: %q", out)
	}
	if !strings.Contains(out, "[2] = 9;") {
		t.Errorf("ArrayElem.Set did not emit the expected index assignment: %q", out)
	}
}

func TestBufferRefRegistersAndBinds(t *testing.T) {
	ctx := bindFresh(t)
	buf := RegisterBuffer[int32](build.AccessReadWrite)
	if len(ctx.BufferDecls()) != 1 {
		t.Fatalf("len(BufferDecls()) = %d, want 1", len(ctx.BufferDecls()))
	}
	if ctx.BufferDecls()[0].Access != build.AccessReadWrite {
		t.Errorf("BufferDecls()[0].Access = %v, want AccessReadWrite", ctx.BufferDecls()[0].Access)
	}
	buf.Bind(42)
	if got := ctx.RuntimeBuffers()[buf.Binding()]; got != 42 {
		t.Errorf("RuntimeBuffers()[binding] = %d, want 42", got)
	}

	elem := buf.At(Lit[int32](0))
	elem.Set(Lit[int32](1))
	if !strings.Contains(joinStatements(ctx), "[0] = 1;") {
		t.Errorf("BufferRef.At().Set did not emit the expected statement: %q", joinStatements(ctx))
	}
}

func TestVecBufferRefRoundTrip(t *testing.T) {
	ctx := bindFresh(t)
	buf := RegisterVecBuffer3(build.AccessWriteOnly)
	if len(ctx.BufferDecls()) != 1 || ctx.BufferDecls()[0].TypeName != "vec3" {
		t.Fatalf("RegisterVecBuffer3 did not register a vec3 buffer: %+v", ctx.BufferDecls())
	}
	elem := buf.At(Lit[int32](3))
	elem.Set(NewVec3(Lit[float32](1), Lit[float32](2), Lit[float32](3)))
	if !strings.Contains(joinStatements(ctx), "[3] = vec3(1, 2, 3);") {
		t.Errorf("VecElem3.Set did not emit the expected statement: %q", joinStatements(ctx))
	}
}

type testParticle struct {
	Pos  ms3.Vec
	Life float32
}

func TestStructRegisterAndFieldAccess(t *testing.T) {
	ctx := bindFresh(t)
	RegisterStruct[testParticle]("TestParticle",
		FieldDesc{HostField: "Pos", ShaderName: "pos", GLSLType: "vec3", Kind: FieldVec3},
		FieldDesc{HostField: "Life", ShaderName: "life", GLSLType: "float", Kind: FieldScalar},
	)
	sv := NewStructVar[testParticle]()
	if !ctx.HasStruct("TestParticle") {
		t.Fatal("NewStructVar did not register the struct declaration")
	}

	SetField(sv, "Life", Lit[float32](1))
	SubField(sv, "Life", Lit[float32](0.1))
	AddFieldVec(sv, "Pos", NewVec3(Lit[float32](0), Lit[float32](1), Lit[float32](0)))

	out := joinStatements(ctx)
	if !strings.Contains(out, ".life = 1;") {
		t.Errorf("SetField did not emit expected member store: %q", out)
	}
	if !strings.Contains(out, ".life -= 0.1;") {
		t.Errorf("SubField did not emit expected compound assign: %q", out)
	}
	if !strings.Contains(out, ".pos += vec3(0, 1, 0);") {
		t.Errorf("AddFieldVec did not emit expected compound assign: %q", out)
	}
}

func TestFieldPanicsOnKindMismatch(t *testing.T) {
	bindFresh(t)
	RegisterStruct[testParticle]("TestParticle2",
		FieldDesc{HostField: "Pos", ShaderName: "pos", GLSLType: "vec3", Kind: FieldVec3},
		FieldDesc{HostField: "Life", ShaderName: "life", GLSLType: "float", Kind: FieldScalar},
	)
	sv := NewStructVar[testParticle]()
	defer func() {
		if recover() == nil {
			t.Fatal("Field did not panic when accessing a vector field as a scalar")
		}
	}()
	Field[float32](sv, "Pos")
}

func TestSwizzleProducesMemberAccessAndValidatesArity(t *testing.T) {
	bindFresh(t)
	v := NewVec3(Lit[float32](1), Lit[float32](2), Lit[float32](3))
	xy := Swizzle[Vec2](v, "xy")
	if got := build.BuildNode(xy.Node()); got != "vec3(1, 2, 3).xy" {
		t.Errorf("Swizzle = %q, want vec3(1, 2, 3).xy", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("Swizzle did not panic on an arity mismatch")
		}
	}()
	Swizzle[Vec2](v, "xyz")
}

func TestVecComponentAccessors(t *testing.T) {
	bindFresh(t)
	v := NewVec4(Lit[float32](1), Lit[float32](2), Lit[float32](3), Lit[float32](4))
	if got := build.BuildNode(v.X().Node()); got != "vec4(1, 2, 3, 4).x" {
		t.Errorf("X() = %q", got)
	}
	if got := build.BuildNode(v.W().Node()); got != "vec4(1, 2, 3, 4).w" {
		t.Errorf("W() = %q", got)
	}
}

func TestUniformLoadRegistersOncePerLoad(t *testing.T) {
	ctx := bindFresh(t)
	var x float32 = 3.5
	u := NewUniform(&x)
	v1 := u.Load()
	v2 := u.Load()
	if v1.Name() == v2.Name() {
		t.Fatal("two Load calls on the same Uniform should register two distinct shader names")
	}
	if len(ctx.UniformDecls()) != 2 {
		t.Fatalf("len(UniformDecls()) = %d, want 2", len(ctx.UniformDecls()))
	}
}

// std430Particle is a particle-shaped struct: two vec3 fields followed by
// two scalars, chosen because a lone vec3 member's
// 16-byte std430 alignment is exactly the case where a struct's host and
// device byte layouts diverge.
type std430Particle struct {
	Pos  ms3.Vec
	Vel  ms3.Vec
	Life float32
	Type int32
}

func TestStd430LayoutAndPackUnpackRoundTrip(t *testing.T) {
	desc := RegisterStruct[std430Particle]("Std430Particle",
		FieldDesc{HostField: "Pos", ShaderName: "pos", GLSLType: "vec3", Kind: FieldVec3},
		FieldDesc{HostField: "Vel", ShaderName: "vel", GLSLType: "vec3", Kind: FieldVec3},
		FieldDesc{HostField: "Life", ShaderName: "life", GLSLType: "float", Kind: FieldScalar},
		FieldDesc{HostField: "Type", ShaderName: "ptype", GLSLType: "int", Kind: FieldScalar},
	)
	if desc.HostSize != 40 {
		t.Errorf("HostSize = %d, want 40 (ms3.Vec carries a trailing pad float)", desc.HostSize)
	}
	if desc.GPUSize != 48 {
		t.Fatalf("GPUSize = %d, want 48 (std430 rounds a struct's array stride to 16 bytes)", desc.GPUSize)
	}
	if !desc.NeedsStd430Conversion() {
		t.Error("NeedsStd430Conversion() = false, want true since host and device sizes differ")
	}

	host := []std430Particle{
		{Pos: ms3.Vec{X: 1, Y: 2, Z: 3}, Vel: ms3.Vec{X: 4, Y: 5, Z: 6}, Life: 0.5, Type: 7},
		{Pos: ms3.Vec{X: -1, Y: -2, Z: -3}, Vel: ms3.Vec{X: 0, Y: 0, Z: 0}, Life: 1, Type: 2},
	}
	packed := PackStd430(host)
	if len(packed) != 96 {
		t.Fatalf("len(PackStd430(host)) = %d, want 96", len(packed))
	}

	readF32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(packed[off : off+4]))
	}
	readI32 := func(off int) int32 {
		return int32(binary.LittleEndian.Uint32(packed[off : off+4]))
	}
	// element 0's fields sit at gpu offsets pos=0, vel=16, life=28, type=32.
	if got := readF32(0); got != 1 {
		t.Errorf("packed pos.x = %v, want 1", got)
	}
	if got := readF32(8); got != 3 {
		t.Errorf("packed pos.z = %v, want 3", got)
	}
	if got := readF32(16); got != 4 {
		t.Errorf("packed vel.x = %v, want 4", got)
	}
	if got := readF32(28); got != 0.5 {
		t.Errorf("packed life = %v, want 0.5", got)
	}
	if got := readI32(32); got != 7 {
		t.Errorf("packed type = %v, want 7", got)
	}
	// element 1 starts at byte 48, the struct's 48-byte std430 stride.
	if got := readF32(48); got != -1 {
		t.Errorf("packed[1].pos.x = %v, want -1", got)
	}

	out := make([]std430Particle, 2)
	UnpackStd430(packed, out)
	if out[0] != host[0] || out[1] != host[1] {
		t.Errorf("UnpackStd430(PackStd430(host)) round trip mismatch: got %+v, want %+v", out, host)
	}
}

type uniformTestStruct struct {
	Scale float32
	Wind  ms3.Vec
}

func TestStructUniformUploadsVectorFields(t *testing.T) {
	RegisterStruct[uniformTestStruct]("UniformTestStruct",
		FieldDesc{HostField: "Scale", ShaderName: "scale", GLSLType: "float", Kind: FieldScalar},
		FieldDesc{HostField: "Wind", ShaderName: "wind", GLSLType: "vec3", Kind: FieldVec3},
	)
	desc := structDescOf(reflect.TypeOf(uniformTestStruct{}))

	prevU1f, prevU3f := UniformDriver.Uniform1f, UniformDriver.Uniform3f
	t.Cleanup(func() {
		UniformDriver.Uniform1f, UniformDriver.Uniform3f = prevU1f, prevU3f
	})
	var gotScale float32
	var gotWind [3]float32
	UniformDriver.Uniform1f = func(program uint32, name string, v float32) {
		if name != "u.scale" {
			t.Errorf("Uniform1f name = %q, want u.scale", name)
		}
		gotScale = v
	}
	UniformDriver.Uniform3f = func(program uint32, name string, x, y, z float32) {
		if name != "u.wind" {
			t.Errorf("Uniform3f name = %q, want u.wind", name)
		}
		gotWind = [3]float32{x, y, z}
	}

	v := uniformTestStruct{Scale: 2, Wind: ms3.Vec{X: 1, Y: 0, Z: -1}}
	structUploader(desc, &v)(0, "u")

	if gotScale != 2 {
		t.Errorf("uploaded scale = %v, want 2", gotScale)
	}
	if gotWind != [3]float32{1, 0, -1} {
		t.Errorf("uploaded wind = %v, want [1 0 -1]", gotWind)
	}
}

func TestGLSLTypeSpellings(t *testing.T) {
	if GLSLType[int32]() != "int" {
		t.Errorf("GLSLType[int32]() = %q, want int", GLSLType[int32]())
	}
	if GLSLType[float32]() != "float" {
		t.Errorf("GLSLType[float32]() = %q, want float", GLSLType[float32]())
	}
	if GLSLType[bool]() != "bool" {
		t.Errorf("GLSLType[bool]() = %q, want bool", GLSLType[bool]())
	}
}
