package koopa

import (
	"fmt"

	"github.com/raymyers/sysyc/pkg/ast"
)

// BinaryMnemonic returns the Koopa instruction name for a binary operator.
// Division and remainder are signed.
func BinaryMnemonic(op ast.BinaryOp) string {
	switch op {
	case ast.OpAdd:
		return "add"
	case ast.OpSub:
		return "sub"
	case ast.OpMul:
		return "mul"
	case ast.OpDiv:
		return "sdiv"
	case ast.OpMod:
		return "srem"
	}
	panic(fmt.Sprintf("koopa: unknown binary operator %d", int(op)))
}

// TypeMnemonic returns the Koopa type of a function return type
func TypeMnemonic(t ast.FuncType) string {
	switch t {
	case ast.FuncTypeInt:
		return "i32"
	}
	panic(fmt.Sprintf("koopa: unknown function type %d", int(t)))
}
