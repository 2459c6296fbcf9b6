package compiler

import "fmt"

// opcodes maps an operator lexeme to its instruction. All six comparison
// operators collapse to the single generic CMP: the emitted code does not
// say which comparison was requested. Downstream execution reads CMP as
// an equality test; a generator with CompareKinds set keeps the full
// relation instead.
var opcodes = map[string]string{
	"+": "ADD",
	"-": "SUB",
	"*": "MUL",
	"/": "DIV",

	"==": "CMP",
	"!=": "CMP",
	"<":  "CMP",
	">":  "CMP",
	"<=": "CMP",
	">=": "CMP",
}

// compareOpcodes is the CompareKinds mapping for comparison operators.
var compareOpcodes = map[string]string{
	"==": "CMP_EQ",
	"!=": "CMP_NE",
	"<":  "CMP_LT",
	">":  "CMP_GT",
	"<=": "CMP_LE",
	">=": "CMP_GE",
}

// CodeGen walks an AST and emits flat three-address code, one instruction
// per element. Results of expression evaluation live in an implicit
// accumulator. Temporary and label counters belong to the instance and
// are never reset, so independent generators never share numbering.
type CodeGen struct {
	instructions []string
	nextTemp     int
	labelCounts  map[string]int // per label family: else_label, end_label

	// CompareKinds emits a distinct opcode per comparison operator
	// (CMP_EQ, CMP_NE, CMP_LT, CMP_GT, CMP_LE, CMP_GE) instead of the
	// generic CMP. Instruction order, temporaries and labels are
	// unchanged.
	CompareKinds bool
}

func NewCodeGen() *CodeGen {
	return &CodeGen{
		labelCounts: make(map[string]int),
	}
}

func (cg *CodeGen) emit(format string, args ...any) {
	cg.instructions = append(cg.instructions, fmt.Sprintf(format, args...))
}

// newTemp allocates a fresh temporary name. Temporaries are never reused.
func (cg *CodeGen) newTemp() string {
	cg.nextTemp++
	return fmt.Sprintf("temp_%d", cg.nextTemp)
}

// newLabel allocates a fresh label in the given family. Each family
// counts independently, so the first conditional uses else_label_1 and
// end_label_1.
func (cg *CodeGen) newLabel(family string) string {
	cg.labelCounts[family]++
	return fmt.Sprintf("%s_%d", family, cg.labelCounts[family])
}

func (cg *CodeGen) opcodeFor(op string) string {
	if cg.CompareKinds {
		if oc, ok := compareOpcodes[op]; ok {
			return oc
		}
	}
	if oc, ok := opcodes[op]; ok {
		return oc
	}
	return "UNKNOWN_OP"
}

func (cg *CodeGen) genExpr(e Expr) error {
	if e == nil {
		return &UnsupportedNodeError{Node: nodeKind(e)}
	}

	switch n := e.(type) {
	case *Number:
		cg.emit("LOADI %d", n.Value)

	case *Variable:
		cg.emit("LOAD %s", n.Name)

	case *BinOp:
		// Left operand first, parked in a fresh temporary; then the
		// right operand into the accumulator; then the opcode against
		// the temporary. Executors therefore read a binary opcode as
		// "stored operand OP accumulator".
		if err := cg.genExpr(n.Left); err != nil {
			return err
		}
		temp := cg.newTemp()
		cg.emit("STORE %s", temp)
		if err := cg.genExpr(n.Right); err != nil {
			return err
		}
		cg.emit("%s %s", cg.opcodeFor(n.Op), temp)

	default:
		return &UnsupportedNodeError{Node: nodeKind(e)}
	}
	return nil
}

func (cg *CodeGen) genStmt(s Stmt) error {
	switch n := s.(type) {
	case *Assignment:
		if err := cg.genExpr(n.Value); err != nil {
			return err
		}
		cg.emit("STORE %s", n.Name)

	case *IfStatement:
		elseLabel := cg.newLabel("else_label")
		endLabel := cg.newLabel("end_label")

		if n.Condition == nil {
			return &UnsupportedNodeError{Node: nodeKind(nil)}
		}
		if err := cg.genExpr(n.Condition); err != nil {
			return err
		}
		cg.emit("JMP_FALSE %s", elseLabel)

		for _, stmt := range n.Then {
			if err := cg.genStmt(stmt); err != nil {
				return err
			}
		}
		cg.emit("JMP %s", endLabel)

		// The else label is emitted even without an else branch; it is
		// then a fallthrough-only target, but consumers may depend on
		// label numbering continuity.
		cg.emit("%s:", elseLabel)
		for _, stmt := range n.Else {
			if err := cg.genStmt(stmt); err != nil {
				return err
			}
		}
		cg.emit("%s:", endLabel)

	default:
		return &UnsupportedNodeError{Node: nodeKind(s)}
	}
	return nil
}

// Generate emits the instruction sequence for root. The generator is
// assumed to run after a successful semantic check; an unset operand or
// unknown node variant still returns an error rather than panicking.
func (cg *CodeGen) Generate(root Stmt) ([]string, error) {
	if err := cg.genStmt(root); err != nil {
		return nil, err
	}
	return cg.instructions, nil
}

// Generate emits code for root with a fresh generator in its default
// (generic CMP) mode.
func Generate(root Stmt) ([]string, error) {
	return NewCodeGen().Generate(root)
}
