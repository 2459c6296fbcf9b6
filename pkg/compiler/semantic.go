package compiler

import "fmt"

// UndefinedVariableError reports a variable referenced before any
// assignment to it was processed.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("semantic error: variable %q is not defined", e.Name)
}

// Checker walks an AST in pre-order verifying definition-before-use and
// recording assigned variables into the symbol table. Both branches of a
// conditional mutate the same table: a variable assigned in either branch
// counts as defined afterwards regardless of which branch would execute.
type Checker struct {
	syms *SymbolTable
}

func newChecker(syms *SymbolTable) *Checker {
	return &Checker{syms: syms}
}

func (c *Checker) checkStmt(s Stmt) error {
	switch n := s.(type) {
	case *Assignment:
		// The value is checked before the name is defined, so a variable
		// only becomes visible after its own assignment completes.
		if err := c.checkExpr(n.Value); err != nil {
			return err
		}
		c.syms.Define(n.Name, TypeInt)
		return nil

	case *IfStatement:
		if n.Condition == nil {
			return &UnsupportedNodeError{Node: nodeKind(nil)}
		}
		if err := c.checkExpr(n.Condition); err != nil {
			return err
		}
		for _, stmt := range n.Then {
			if err := c.checkStmt(stmt); err != nil {
				return err
			}
		}
		for _, stmt := range n.Else {
			if err := c.checkStmt(stmt); err != nil {
				return err
			}
		}
		return nil

	default:
		return &UnsupportedNodeError{Node: nodeKind(s)}
	}
}

func (c *Checker) checkExpr(e Expr) error {
	if e == nil {
		return &UnsupportedNodeError{Node: nodeKind(e)}
	}

	switch n := e.(type) {
	case *Number:
		return nil

	case *Variable:
		if _, ok := c.syms.Lookup(n.Name); !ok {
			return &UndefinedVariableError{Name: n.Name}
		}
		return nil

	case *BinOp:
		if err := c.checkExpr(n.Left); err != nil {
			return err
		}
		return c.checkExpr(n.Right)

	default:
		return &UnsupportedNodeError{Node: nodeKind(e)}
	}
}

// Check validates root against syms, recording every assigned variable
// into the table as it goes. The table is mutated in place, including by
// assignments processed before a later failure; callers that must not
// observe partial updates pass a scratch table and merge on success.
func Check(root Stmt, syms *SymbolTable) error {
	return newChecker(syms).checkStmt(root)
}
