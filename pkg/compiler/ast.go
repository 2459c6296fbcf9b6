package compiler

import "fmt"

//  Expression nodes

// Expr is implemented by every node that produces a value. Evaluating an
// expression leaves its result in the implicit accumulator; this is a
// convention among the emission rules, not a runtime register.
type Expr interface {
	exprNode()
	String() string
}

// Number is a compile-time integer constant.
//
//	y = 5;
//	    ^  Number{Value: 5}
type Number struct {
	Value int
}

func (*Number) exprNode()        {}
func (n *Number) String() string { return fmt.Sprintf("%d", n.Value) }

// Variable is a read of a named variable.
//
//	if (x > 10)
//	    ^  Variable{Name: "x"}
type Variable struct {
	Name string
}

func (*Variable) exprNode()        {}
func (v *Variable) String() string { return v.Name }

// BinOp represents a binary operation: Left Op Right. The grammar only
// produces comparison operators here, but the emission rules also cover
// + - * /. A Right left nil by the parser (malformed operand) is caught
// by the semantic checker.
type BinOp struct {
	Left  Expr
	Op    string
	Right Expr
}

func (*BinOp) exprNode() {}
func (b *BinOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

//  Statement nodes

// Stmt is implemented by every node that does not produce a value.
type Stmt interface {
	stmtNode()
	String() string
}

// Assignment represents  Name = Value;
type Assignment struct {
	Name  string
	Value Expr
}

func (*Assignment) stmtNode() {}
func (a *Assignment) String() string {
	return fmt.Sprintf("Assignment(%s = %s)", a.Name, a.Value)
}

// IfStatement represents if (Condition) { Then } [else { Else }].
// Else is nil when the clause is absent; an empty "else {}" yields a
// non-nil empty slice. The condition is a BinOp by construction and the
// bodies hold only assignments, so the type system enforces what the
// grammar promises.
type IfStatement struct {
	Condition *BinOp
	Then      []*Assignment
	Else      []*Assignment
}

func (*IfStatement) stmtNode() {}
func (i *IfStatement) String() string {
	if i.Else != nil {
		return fmt.Sprintf("IfStatement(if %s then %d stmts else %d stmts)", i.Condition, len(i.Then), len(i.Else))
	}
	return fmt.Sprintf("IfStatement(if %s then %d stmts)", i.Condition, len(i.Then))
}

// UnsupportedNodeError reports a node variant that a tree walk has no rule
// for. The walks cover every variant above, so on parser-built trees this
// only fires for an operand the parser left unset.
type UnsupportedNodeError struct {
	Node string
}

func (e *UnsupportedNodeError) Error() string {
	return fmt.Sprintf("unsupported AST node %s", e.Node)
}

// nodeKind names a node variant for error reporting.
func nodeKind(v any) string {
	return fmt.Sprintf("%T", v)
}
