package flow

import (
	"strings"
	"testing"

	"github.com/shaderkit/gpudsl/build"
	"github.com/shaderkit/gpudsl/dsl"
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

func TestIfEndWithNoElseEmitsOneStatement(t *testing.T) {
	ctx := bindFresh(t)
	var ran bool
	If(dsl.Lit(true), func() {
		ran = true
		v := dsl.NewVar[int32]()
		v.Set(dsl.Lit[int32](1))
	}).End()

	if !ran {
		t.Fatal("If body closure never ran")
	}
	stmts := ctx.Statements()
	if len(stmts) != 1 {
		t.Fatalf("len(Statements()) = %d, want 1", len(stmts))
	}
	if !strings.Contains(stmts[0], "if (true) {") {
		t.Errorf("Statements()[0] = %q, missing the if header", stmts[0])
	}
	if strings.Contains(stmts[0], "else") {
		t.Errorf("Statements()[0] = %q, should not contain an else branch", stmts[0])
	}
}

func TestIfElifElseChain(t *testing.T) {
	ctx := bindFresh(t)
	If(dsl.Lit(false), func() {
		flowBreakInsideIf()
	}).Elif(dsl.Lit(true), func() {
		Continue()
	}).Else(func() {
		Return()
	}).Elif(dsl.Lit(true), func() {}) // calling Elif post-emit must be a no-op

	out := joinStatements(ctx)
	if !strings.Contains(out, "if (false) {") {
		t.Errorf("missing if header: %q", out)
	}
	if !strings.Contains(out, "else if (true) {") {
		t.Errorf("missing elif header: %q", out)
	}
	if !strings.Contains(out, "continue;") {
		t.Errorf("missing continue in elif body: %q", out)
	}
	if !strings.Contains(out, "} else {") {
		t.Errorf("missing else header: %q", out)
	}
	if !strings.Contains(out, "return;") {
		t.Errorf("missing return in else body: %q", out)
	}
}

func flowBreakInsideIf() { Break() }

func TestForEmitsLoopHeaderAndExposesLoopVar(t *testing.T) {
	ctx := bindFresh(t)
	var seen string
	ForUpTo(dsl.Lit[int32](0), dsl.Lit[int32](10), func(i dsl.Expr[int32]) {
		seen = build.BuildNode(i.Node())
	})
	out := joinStatements(ctx)
	if !strings.Contains(out, "for (int ") {
		t.Errorf("ForUpTo did not emit a for-loop header: %q", out)
	}
	if seen == "" {
		t.Error("ForUpTo body did not receive a usable loop-variable expression")
	}
}

func TestWhileAndDoWhile(t *testing.T) {
	ctx := bindFresh(t)
	While(dsl.Lit(true), func() { Break() })
	DoWhile(func() { Continue() }, dsl.Lit(false))

	out := joinStatements(ctx)
	if !strings.Contains(out, "while (true) {") {
		t.Errorf("missing while header: %q", out)
	}
	if !strings.Contains(out, "do {") || !strings.Contains(out, "} while (false);") {
		t.Errorf("missing do-while structure: %q", out)
	}
}

func TestReturnValueEmitsExpression(t *testing.T) {
	ctx := bindFresh(t)
	ReturnValue(dsl.Lit[int32](42))
	out := joinStatements(ctx)
	if !strings.Contains(out, "return 42;") {
		t.Errorf("ReturnValue = %q, want to contain \"return 42;\"", out)
	}
}

func TestCallable1GeneratesBodyExactlyOnce(t *testing.T) {
	ctx := bindFresh(t)
	var callCount int
	double := NewCallable1(func(a dsl.Var[int32]) dsl.Expr[int32] {
		callCount++
		return dsl.Mul(a.Load(), dsl.Lit[int32](2))
	})

	r1 := double.Invoke(dsl.Lit[int32](1))
	r2 := double.Invoke(dsl.Lit[int32](2))
	if got1, got2 := build.BuildNode(r1.Node()), build.BuildNode(r2.Node()); got1 == got2 {
		t.Errorf("two Invoke calls with different args produced identical lowerings: %q", got1)
	}

	defs := ctx.GenerateCallableBodies()
	if callCount != 1 {
		t.Fatalf("callable body closure ran %d times, want 1", callCount)
	}
	if got := strings.Count(defs, "return"); got != 1 {
		t.Errorf("generated body contains %d return statements, want 1", got)
	}
	if len(ctx.CallableDeclarations()) != 1 {
		t.Fatalf("len(CallableDeclarations()) = %d, want 1", len(ctx.CallableDeclarations()))
	}
}

func TestCallable2InvokeEmitsTwoArgCall(t *testing.T) {
	bindFresh(t)
	add := NewCallable2(func(a, b dsl.Var[int32]) dsl.Expr[int32] {
		return dsl.Add(a.Load(), b.Load())
	})
	result := add.Invoke(dsl.Lit[int32](1), dsl.Lit[int32](2))
	got := build.BuildNode(result.Node())
	if !strings.HasPrefix(got, "fn") || !strings.Contains(got, "(1, 2)") {
		t.Errorf("Callable2.Invoke() lowering = %q, want fnN(1, 2)", got)
	}
}

func TestBreakContinueReturnStatements(t *testing.T) {
	ctx := bindFresh(t)
	Break()
	Continue()
	Return()
	stmts := ctx.Statements()
	want := []string{"break;\n", "continue;\n", "return;\n"}
	if len(stmts) != len(want) {
		t.Fatalf("len(Statements()) = %d, want %d", len(stmts), len(want))
	}
	for i, w := range want {
		if stmts[i] != w {
			t.Errorf("Statements()[%d] = %q, want %q", i, stmts[i], w)
		}
	}
}
