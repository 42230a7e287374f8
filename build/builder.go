package build

import (
	"fmt"
	"strings"

	"github.com/shaderkit/gpudsl/ir"
)

// Builder lowers ir.Node trees to GLSL text against whichever Context is
// currently bound. It is a process-wide singleton (grounded on the
// teacher's process-wide GL error/debug-output helpers being free
// functions rather than instance methods) whose bound Context is swapped
// by Bind/Unbind and by ScopedCapture. It is not reentrant across threads:
// exactly one host thread authors a kernel at a time.
type builder struct {
	ctx Context
}

var active = &builder{}

// Bind sets the active Context; subsequent emission routes there.
func Bind(ctx Context) { active.ctx = ctx }

// Unbind clears the active Context. Called when kernel construction
// completes.
func Unbind() { active.ctx = nil }

// Current returns the active Context, or nil if none is bound.
func Current() Context { return active.ctx }

// MustCurrent returns the active Context or panics — used by typed-value
// constructors that cannot proceed without one; an API called outside any
// kernel block is an authoring-misuse error raised immediately at that
// call (spec.md §7).
func MustCurrent() Context {
	if active.ctx == nil {
		panic("gpudsl: typed-value API called outside of a kernel authoring block")
	}
	return active.ctx
}

// Build lowers node; if isStatement, the lowered text (with a trailing
// statement terminator where the node kind needs one) is appended to the
// active context's stream. Expression nodes built as non-statements are
// lowered and discarded here — callers that need the string use BuildNode.
func Build(node ir.Node, isStatement bool) {
	ctx := MustCurrent()
	text := BuildNode(node)
	if !isStatement {
		return
	}
	if needsTerminator(node.Kind()) {
		text += ";"
	}
	ctx.PushStatement(text + "\n")
}

func needsTerminator(k ir.Kind) bool {
	switch k {
	case ir.KindIf, ir.KindWhile, ir.KindDoWhile, ir.KindFor, ir.KindRaw:
		return false
	default:
		return true
	}
}

// BuildNode returns the lowered GLSL text of node without emitting
// anything.
func BuildNode(node ir.Node) string {
	switch n := node.(type) {
	case *ir.LocalVar:
		return fmt.Sprintf("%s %s", n.Type, n.Name)
	case *ir.LocalArray:
		return fmt.Sprintf("%s %s[%d]", n.ElemType, n.Name, n.Length)
	case *ir.Load:
		return n.Name
	case *ir.Store:
		return fmt.Sprintf("%s = %s", BuildNode(n.Target), BuildNode(n.Value))
	case *ir.ArrayAccess:
		return fmt.Sprintf("%s[%s]", BuildNode(n.Target), BuildNode(n.Index))
	case *ir.MemberAccess:
		return fmt.Sprintf("%s.%s", BuildNode(n.Object), n.Member)
	case *ir.Operation:
		return buildOperation(n)
	case *ir.IntrinsicCall:
		return buildCall(n.Name, n.Args)
	case *ir.UserCall:
		return buildCall(n.Name, n.Args)
	case *ir.CompoundAssign:
		return fmt.Sprintf("%s %s= %s", BuildNode(n.LValue), n.Op.Symbol(), BuildNode(n.Value))
	case *ir.IncDec:
		return buildIncDec(n)
	case *ir.If:
		return buildIf(n)
	case *ir.While:
		return fmt.Sprintf("while (%s) {\n%s}\n", BuildNode(n.Cond), buildBody(n.Body))
	case *ir.DoWhile:
		return fmt.Sprintf("do {\n%s} while (%s);\n", buildBody(n.Body), BuildNode(n.Cond))
	case *ir.For:
		return buildFor(n)
	case *ir.Break:
		return "break"
	case *ir.Continue:
		return "continue"
	case *ir.Return:
		if n.Value == nil {
			return "return"
		}
		return fmt.Sprintf("return %s", BuildNode(n.Value))
	case *ir.Raw:
		return n.Text
	default:
		panic(fmt.Sprintf("gpudsl: unhandled ir node %T", node))
	}
}

func buildOperation(n *ir.Operation) string {
	if n.Op.IsUnary() {
		return fmt.Sprintf("(%s%s)", n.Op.Symbol(), BuildNode(n.Operands[0]))
	}
	return fmt.Sprintf("(%s %s %s)", BuildNode(n.Operands[0]), n.Op.Symbol(), BuildNode(n.Operands[1]))
}

func buildCall(name string, args []ir.Node) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = BuildNode(a)
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ", "))
}

func buildIncDec(n *ir.IncDec) string {
	op := "--"
	if n.Inc {
		op = "++"
	}
	if n.Prefix {
		return op + BuildNode(n.Target)
	}
	return BuildNode(n.Target) + op
}

func buildBody(body []ir.Node) string {
	var sb strings.Builder
	for _, stmt := range body {
		text := BuildNode(stmt)
		if needsTerminator(stmt.Kind()) {
			text += ";"
		}
		sb.WriteString("    " + text + "\n")
	}
	return sb.String()
}

func buildIf(n *ir.If) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "if (%s) {\n%s}", BuildNode(n.Cond), buildBody(n.Body))
	for _, elif := range n.Elifs {
		fmt.Fprintf(&sb, " else if (%s) {\n%s}", BuildNode(elif.Cond), buildBody(elif.Body))
	}
	if n.Else != nil {
		fmt.Fprintf(&sb, " else {\n%s}", buildBody(n.Else))
	}
	sb.WriteString("\n")
	return sb.String()
}

func buildFor(n *ir.For) string {
	return fmt.Sprintf("for (int %s = %s; %s < %s; %s += %s) {\n%s}\n",
		n.VarName, BuildNode(n.Start),
		n.VarName, BuildNode(n.End),
		n.VarName, BuildNode(n.Step),
		buildBody(n.Body))
}
