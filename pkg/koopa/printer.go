package koopa

import (
	"io"

	"github.com/raymyers/sysyc/pkg/ast"
)

// Printer writes Koopa IR text to an underlying writer
type Printer struct {
	w io.Writer
}

// NewPrinter creates a new Koopa IR printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintCompUnit writes the IR for a complete compilation unit
func (p *Printer) PrintCompUnit(cu *ast.CompUnit) error {
	_, err := io.WriteString(p.w, FormatCompUnit(cu))
	return err
}
