// Package koopa lowers the sysyc AST to textual Koopa IR.
//
// Expressions are translated bottom-up into straight-line three-address
// code. Every non-elided operator defines one fresh temporary %N; the next
// free temporary id is passed into and returned from each recursive call,
// so sibling subtrees always receive disjoint id ranges.
package koopa

import (
	"fmt"
	"strconv"

	"github.com/raymyers/sysyc/pkg/ast"
)

// Result is the outcome of lowering one expression subtree.
type Result struct {
	Instrs string // instructions defining the subtree's temporaries, in order
	Value  string // decimal literal or %N holding the subtree's value
	Next   int32  // first temporary id not used by the subtree
}

// Lower translates e into Koopa instructions, numbering temporaries from start.
func Lower(e ast.Expr, start int32) Result {
	switch e := e.(type) {
	case ast.Number:
		return Result{Value: strconv.FormatInt(int64(e.Value), 10), Next: start}
	case ast.Unary:
		return lowerUnary(e, start)
	case ast.Binary:
		return lowerBinary(e, start)
	}
	panic(fmt.Sprintf("koopa: unknown expression %T", e))
}

func lowerUnary(e ast.Unary, start int32) Result {
	r := Lower(e.Operand, start)
	switch e.Op {
	case ast.OpPos:
		return r
	case ast.OpNeg:
		return emit(r.Instrs, r.Next, "sub", "0", r.Value)
	case ast.OpNot:
		return emit(r.Instrs, r.Next, "eq", r.Value, "0")
	}
	panic(fmt.Sprintf("koopa: unknown unary operator %d", int(e.Op)))
}

func lowerBinary(e ast.Binary, start int32) Result {
	l := Lower(e.Left, start)
	// The right operand continues numbering where the left one stopped.
	r := Lower(e.Right, l.Next)
	return emit(l.Instrs+r.Instrs, r.Next, BinaryMnemonic(e.Op), l.Value, r.Value)
}

// emit appends "%id = op lhs, rhs" to prefix and returns %id as the value.
func emit(prefix string, id int32, op, lhs, rhs string) Result {
	dest := Temp(id)
	return Result{
		Instrs: prefix + fmt.Sprintf("  %s = %s %s, %s\n", dest, op, lhs, rhs),
		Value:  dest,
		Next:   id + 1,
	}
}

// Temp returns the textual name of temporary id.
func Temp(id int32) string {
	return "%" + strconv.FormatInt(int64(id), 10)
}
