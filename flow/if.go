package flow

import (
	"github.com/shaderkit/gpudsl/build"
	"github.com/shaderkit/gpudsl/dsl"
	"github.com/shaderkit/gpudsl/ir"
)

// IfChain accumulates an if/elif.../else? statement as it is authored.
// Go has no destructors, so — unlike the chain this is grounded on —
// composition is not triggered by the chain value going out of scope.
// Instead the chain is emitted by whichever terminal call ends it: Else,
// or End if no else branch is needed. A chain that is built but never
// terminated with Else/End silently emits nothing; callers must always
// close one.
type IfChain struct {
	node    *ir.If
	emitted bool
}

// If opens a chain, capturing body as the `if` branch.
func If(cond dsl.Expr[bool], body func()) *IfChain {
	return &IfChain{node: &ir.If{Cond: cond.Node(), Body: captureBody(body)}}
}

// Elif appends an `else if` arm, capturing body as its branch.
func (c *IfChain) Elif(cond dsl.Expr[bool], body func()) *IfChain {
	c.node.Elifs = append(c.node.Elifs, ir.ElifBranch{Cond: cond.Node(), Body: captureBody(body)})
	return c
}

// Else closes the chain with a trailing `else` branch and emits the
// complete statement to the enclosing context. It returns the chain;
// arms added to it afterwards do not change the emitted statement.
func (c *IfChain) Else(body func()) *IfChain {
	c.node.Else = captureBody(body)
	c.emit()
	return c
}

// End closes the chain with no `else` branch and emits it.
func (c *IfChain) End() {
	c.emit()
}

func (c *IfChain) emit() {
	if c.emitted {
		return
	}
	c.emitted = true
	build.Build(c.node, true)
}
