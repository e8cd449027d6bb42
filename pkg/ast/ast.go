// Package ast defines the abstract syntax tree for the SysY subset accepted
// by sysyc: a single int function whose body returns one expression.
package ast

// Node is the base interface for all AST nodes
type Node interface {
	implAstNode()
}

// Expr is the interface for all expression nodes.
// The set of implementations is closed: Number, Unary and Binary.
type Expr interface {
	Node
	implAstExpr()
}

// FuncType is the return type of a function definition
type FuncType int

const (
	FuncTypeInt FuncType = iota
)

func (t FuncType) String() string {
	switch t {
	case FuncTypeInt:
		return "int"
	}
	return "?"
}

// UnaryOp represents unary operators
type UnaryOp int

const (
	OpPos UnaryOp = iota // +
	OpNeg                // -
	OpNot                // !
)

func (op UnaryOp) String() string {
	names := []string{"+", "-", "!"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// BinaryOp represents binary operators
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
)

func (op BinaryOp) String() string {
	names := []string{"+", "-", "*", "/", "%"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// Number represents an integer constant
type Number struct {
	Value int32
}

// Unary represents a unary expression
type Unary struct {
	Op      UnaryOp
	Operand Expr
}

// Binary represents a binary expression
type Binary struct {
	Left  Expr
	Op    BinaryOp
	Right Expr
}

// Stmt is a return statement, the only statement form.
type Stmt struct {
	Ret Expr
}

// Block holds the single statement of a function body
type Block struct {
	Stmt Stmt
}

// FuncDef represents a function definition
type FuncDef struct {
	FuncType FuncType
	Ident    string
	Block    Block
}

// CompUnit is the root of the tree and holds exactly one function
type CompUnit struct {
	FuncDef FuncDef
}

// Marker methods for interface implementation
func (Number) implAstNode() {}
func (Number) implAstExpr() {}

func (Unary) implAstNode() {}
func (Unary) implAstExpr() {}

func (Binary) implAstNode() {}
func (Binary) implAstExpr() {}

func (Stmt) implAstNode()     {}
func (Block) implAstNode()    {}
func (FuncDef) implAstNode()  {}
func (CompUnit) implAstNode() {}
