// Package ast provides AST printing functionality for debugging
package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer outputs the AST as an indented tree, one node per line
type Printer struct {
	w      io.Writer
	indent int
	err    error // first write error; later writes are skipped
}

// NewPrinter creates a new AST printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, indent: 0}
}

// PrintCompUnit prints a complete compilation unit and returns the first
// write error, if any
func (p *Printer) PrintCompUnit(cu *CompUnit) error {
	p.line("CompUnit")
	p.indent++
	p.printFuncDef(cu.FuncDef)
	p.indent--
	return p.err
}

// Err returns the first error encountered while writing
func (p *Printer) Err() error {
	return p.err
}

// PrintExpr prints a single expression subtree
func (p *Printer) PrintExpr(e Expr) {
	switch e := e.(type) {
	case Number:
		p.line("Number %d", e.Value)
	case Unary:
		p.line("Unary %s", e.Op)
		p.indent++
		p.PrintExpr(e.Operand)
		p.indent--
	case Binary:
		p.line("Binary %s", e.Op)
		p.indent++
		p.PrintExpr(e.Left)
		p.PrintExpr(e.Right)
		p.indent--
	default:
		p.line("<unknown expression %T>", e)
	}
}

func (p *Printer) printFuncDef(f FuncDef) {
	p.line("FuncDef %s: %s", f.Ident, f.FuncType)
	p.indent++
	p.line("Block")
	p.indent++
	p.line("Return")
	p.indent++
	p.PrintExpr(f.Block.Stmt.Ret)
	p.indent -= 3
}

func (p *Printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}
