package koopa

import (
	"fmt"

	"github.com/raymyers/sysyc/pkg/ast"
)

// EntryLabel names the single basic block of every function.
const EntryLabel = "%entry"

// FormatStmt renders a return statement. Temporary numbering restarts at 0
// for every function body.
func FormatStmt(s ast.Stmt) string {
	r := Lower(s.Ret, 0)
	return r.Instrs + "  ret " + r.Value + "\n"
}

// FormatBlock renders the entry block and its statement.
func FormatBlock(b ast.Block) string {
	return EntryLabel + ":\n" + FormatStmt(b.Stmt)
}

// FormatFuncDef renders a function definition.
func FormatFuncDef(f ast.FuncDef) string {
	return fmt.Sprintf("fun @%s(): %s {\n%s}\n", f.Ident, TypeMnemonic(f.FuncType), FormatBlock(f.Block))
}

// FormatCompUnit renders a whole compilation unit.
func FormatCompUnit(cu *ast.CompUnit) string {
	return FormatFuncDef(cu.FuncDef)
}
