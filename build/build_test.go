package build

import (
	"strings"
	"testing"

	"github.com/shaderkit/gpudsl/ir"
)

func TestMustCurrentPanicsWithNoBoundContext(t *testing.T) {
	Unbind()
	defer func() {
		if recover() == nil {
			t.Fatal("MustCurrent did not panic with no bound context")
		}
	}()
	MustCurrent()
}

func TestBindUnbindCurrent(t *testing.T) {
	ctx := NewMainContext()
	Bind(ctx)
	defer Unbind()
	if Current() != ctx {
		t.Fatalf("Current() = %v, want %v", Current(), ctx)
	}
	Unbind()
	if Current() != nil {
		t.Fatalf("Current() after Unbind = %v, want nil", Current())
	}
}

func TestBuildNodeLowersOperationsAndCalls(t *testing.T) {
	cases := []struct {
		name string
		node ir.Node
		want string
	}{
		{"load", &ir.Load{Name: "x"}, "x"},
		{"member", &ir.MemberAccess{Object: &ir.Load{Name: "p"}, Member: "pos"}, "p.pos"},
		{"index", &ir.ArrayAccess{Target: &ir.Load{Name: "a"}, Index: &ir.Load{Name: "i"}}, "a[i]"},
		{
			"add", &ir.Operation{Op: ir.OpAdd, Operands: []ir.Node{&ir.Load{Name: "a"}, &ir.Load{Name: "b"}}},
			"(a + b)",
		},
		{"neg", &ir.Operation{Op: ir.OpNeg, Operands: []ir.Node{&ir.Load{Name: "a"}}}, "(-a)"},
		{
			"intrinsic", &ir.IntrinsicCall{Name: "dot", Args: []ir.Node{&ir.Load{Name: "a"}, &ir.Load{Name: "b"}}},
			"dot(a, b)",
		},
		{"store", &ir.Store{Target: &ir.Load{Name: "x"}, Value: &ir.Load{Name: "y"}}, "x = y"},
		{
			"compound", &ir.CompoundAssign{Op: ir.OpAdd, LValue: &ir.Load{Name: "x"}, Value: &ir.Load{Name: "y"}},
			"x += y",
		},
		{"incdec", &ir.IncDec{Inc: true, Prefix: false, Target: &ir.Load{Name: "x"}}, "x++"},
		{"raw", &ir.Raw{Text: "// splice"}, "// splice"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := BuildNode(c.node); got != c.want {
				t.Errorf("BuildNode(%s) = %q, want %q", c.name, got, c.want)
			}
		})
	}
}

func TestBuildNodeIf(t *testing.T) {
	node := &ir.If{
		Cond: &ir.Load{Name: "c"},
		Body: []ir.Node{&ir.Store{Target: &ir.Load{Name: "x"}, Value: &ir.Load{Name: "1"}}},
		Else: []ir.Node{&ir.Store{Target: &ir.Load{Name: "x"}, Value: &ir.Load{Name: "2"}}},
	}
	got := BuildNode(node)
	if !strings.Contains(got, "if (c) {") || !strings.Contains(got, "x = 1;") || !strings.Contains(got, "} else {") || !strings.Contains(got, "x = 2;") {
		t.Errorf("BuildNode(if) = %q, missing expected fragments", got)
	}
}

func TestBuildPushesStatementWithTerminator(t *testing.T) {
	ctx := NewMainContext()
	Bind(ctx)
	defer Unbind()

	Build(&ir.Store{Target: &ir.Load{Name: "x"}, Value: &ir.Load{Name: "1"}}, true)
	stmts := ctx.Statements()
	if len(stmts) != 1 || stmts[0] != "x = 1;\n" {
		t.Fatalf("Statements() = %v, want [\"x = 1;\\n\"]", stmts)
	}

	// A non-statement build must not push anything.
	Build(&ir.Load{Name: "y"}, false)
	if len(ctx.Statements()) != 1 {
		t.Fatalf("non-statement Build pushed a statement: %v", ctx.Statements())
	}
}

func TestBuildOmitsTerminatorForBlockStatements(t *testing.T) {
	ctx := NewMainContext()
	Bind(ctx)
	defer Unbind()

	Build(&ir.While{Cond: &ir.Load{Name: "true"}, Body: nil}, true)
	stmts := ctx.Statements()
	if len(stmts) != 1 {
		t.Fatalf("len(Statements()) = %d, want 1", len(stmts))
	}
	if strings.HasSuffix(strings.TrimRight(stmts[0], "\n"), ";") {
		t.Errorf("a while-loop statement should not carry a trailing ';': %q", stmts[0])
	}
}

func TestMainContextFreshNamesAreUnique(t *testing.T) {
	ctx := NewMainContext()
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		name := ctx.FreshName()
		if seen[name] {
			t.Fatalf("FreshName produced a repeat: %q", name)
		}
		seen[name] = true
	}
}

func TestMainContextStructRegistrationIsIdempotent(t *testing.T) {
	ctx := NewMainContext()
	ctx.AddStruct("Particle", "struct Particle { vec3 pos; };\n")
	ctx.AddStruct("Particle", "struct Particle { vec3 pos; /* second registration */ };\n")
	if !ctx.HasStruct("Particle") {
		t.Fatal("HasStruct(\"Particle\") = false after AddStruct")
	}
	structs := ctx.Structs()
	if len(structs) != 1 {
		t.Fatalf("len(Structs()) = %d, want 1 (second AddStruct must be a no-op)", len(structs))
	}
	if !strings.Contains(structs[0], "vec3 pos") {
		t.Errorf("Structs()[0] = %q, missing the field it was registered with", structs[0])
	}
}

func TestMainContextBufferBindingsIncreaseMonotonically(t *testing.T) {
	ctx := NewMainContext()
	b0 := ctx.AllocateBufferBinding()
	b1 := ctx.AllocateBufferBinding()
	if b1 != b0+1 {
		t.Fatalf("AllocateBufferBinding sequence = %d, %d, want consecutive", b0, b1)
	}
	ctx.RegisterBuffer(BufferDecl{Binding: b0, TypeName: "int", Name: "in0", Access: AccessReadOnly})
	ctx.RegisterBuffer(BufferDecl{Binding: b1, TypeName: "int", Name: "out0", Access: AccessWriteOnly})
	if len(ctx.BufferDecls()) != 2 {
		t.Fatalf("len(BufferDecls()) = %d, want 2", len(ctx.BufferDecls()))
	}

	ctx.BindRuntimeBuffer(b1, 77)
	if got := ctx.RuntimeBuffers()[b1]; got != 77 {
		t.Errorf("RuntimeBuffers()[%d] = %d, want 77", b1, got)
	}
}

func TestMainContextUniformNamesAreDistinctAndOrdered(t *testing.T) {
	ctx := NewMainContext()
	var x, y float32 = 1, 2
	n0 := ctx.RegisterUniform("float", &x, nil)
	n1 := ctx.RegisterUniform("float", &y, nil)
	if n0 == n1 {
		t.Fatalf("RegisterUniform produced the same name twice: %q", n0)
	}
	decls := ctx.UniformDecls()
	if len(decls) != 2 || decls[0].ShaderName != n0 || decls[1].ShaderName != n1 {
		t.Fatalf("UniformDecls() = %+v, want names in registration order", decls)
	}
}

func TestMainContextCallableStateIsSharedPerIdentity(t *testing.T) {
	ctx := NewMainContext()
	key := "callable-a"
	st1 := ctx.CallableState(key)
	st1.Declared = true
	st2 := ctx.CallableState(key)
	if !st2.Declared {
		t.Fatal("CallableState returned a fresh state for an already-seen identity")
	}
	other := ctx.CallableState("callable-b")
	if other.Declared {
		t.Fatal("CallableState leaked state across distinct identities")
	}
}

func TestMainContextGenerateCallableBodiesRunsTransitiveGenerators(t *testing.T) {
	ctx := NewMainContext()
	var order []string
	ctx.AddCallableBodyGenerator(func() {
		order = append(order, "first")
		// Registering a second generator mid-run must still be picked up.
		ctx.AddCallableBodyGenerator(func() { order = append(order, "second") })
		ctx.AppendCallableBody("void first() {}\n")
	})
	out := ctx.GenerateCallableBodies()
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("generator run order = %v, want [first second]", order)
	}
	if !strings.Contains(out, "void first() {}") {
		t.Errorf("GenerateCallableBodies() = %q, missing the appended body", out)
	}
}

func TestMainContextCallableBodyStackNesting(t *testing.T) {
	ctx := NewMainContext()
	ctx.PushCallableBody()
	ctx.PushStatement("inner();\n")
	inner := ctx.PopCallableBody()
	if inner != "inner();\n" {
		t.Fatalf("PopCallableBody() = %q, want \"inner();\\n\"", inner)
	}
	// Once the callable body stack is empty again, PushStatement must fall
	// through to the main statement stream.
	ctx.PushStatement("outer();\n")
	if got := ctx.Statements(); len(got) != 1 || got[0] != "outer();\n" {
		t.Fatalf("Statements() = %v, want [\"outer();\\n\"]", got)
	}
}

func TestCollectContextDelegatesRegistrationToParent(t *testing.T) {
	parent := NewMainContext()
	collect := NewCollectContext()
	collect.SetParent(parent)

	name := collect.FreshName()
	if name == "" {
		t.Fatal("CollectContext.FreshName() returned empty with a parent set")
	}
	collect.AddStruct("S", "struct S {};\n")
	if !parent.HasStruct("S") {
		t.Fatal("CollectContext.AddStruct did not register on the parent")
	}

	binding := collect.AllocateBufferBinding()
	collect.RegisterBuffer(BufferDecl{Binding: binding, TypeName: "int", Name: "buf"})
	if len(parent.BufferDecls()) != 1 {
		t.Fatal("CollectContext.RegisterBuffer did not register on the parent")
	}

	collect.PushStatement("x = 1;\n")
	if len(parent.Statements()) != 0 {
		t.Fatal("CollectContext.PushStatement leaked into the parent's statement stream")
	}
	if got := collect.Collected(); len(got) != 1 || got[0] != "x = 1;\n" {
		t.Fatalf("Collected() = %v, want [\"x = 1;\\n\"]", got)
	}
}

func TestCollectContextWithNoParentIsInert(t *testing.T) {
	collect := NewCollectContext()
	if collect.FreshName() != "" {
		t.Error("FreshName() with no parent should return \"\"")
	}
	if collect.HasStruct("anything") {
		t.Error("HasStruct() with no parent should return false")
	}
	if collect.AllocateBufferBinding() != 0 {
		t.Error("AllocateBufferBinding() with no parent should return 0")
	}
	// Must not panic even though there is nothing to delegate to.
	collect.AddStruct("S", "struct S {};\n")
	collect.RegisterBuffer(BufferDecl{})
	collect.RegisterTexture(TextureDecl{})
	collect.BindRuntimeBuffer(0, 1)
	collect.BindRuntimeTexture(0, 1)
	collect.AddCallableDeclaration("void f()")
	collect.AddCallableBodyGenerator(func() {})
	collect.PushCallableBody()
	collect.AppendCallableBody("void f() {}\n")
}

func TestCaptureDivertsStatementsAndRestoresBinding(t *testing.T) {
	ctx := NewMainContext()
	Bind(ctx)
	defer Unbind()

	lines := Capture(func() {
		Build(&ir.Store{Target: &ir.Load{Name: "x"}, Value: &ir.Load{Name: "1"}}, true)
	})
	if len(lines) != 1 || lines[0] != "x = 1;\n" {
		t.Fatalf("Capture returned %v, want [\"x = 1;\\n\"]", lines)
	}
	if len(ctx.Statements()) != 0 {
		t.Fatalf("Capture leaked a statement into the parent context: %v", ctx.Statements())
	}
	if Current() != ctx {
		t.Fatal("Capture did not restore the previously bound context")
	}
}

func TestCaptureRestoresBindingOnPanic(t *testing.T) {
	ctx := NewMainContext()
	Bind(ctx)
	defer Unbind()

	func() {
		defer func() { recover() }()
		Capture(func() { panic("boom") })
	}()
	if Current() != ctx {
		t.Fatal("a panicking capture body left the wrong context bound")
	}
}

func TestCaptureRegistrationPromotesToParent(t *testing.T) {
	ctx := NewMainContext()
	Bind(ctx)
	defer Unbind()

	Capture(func() {
		inner := MustCurrent()
		inner.AddStruct("Nested", "struct Nested {};\n")
	})
	if !ctx.HasStruct("Nested") {
		t.Fatal("a struct registered inside Capture did not promote to the parent context")
	}
}
