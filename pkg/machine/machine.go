// Package machine executes parsed instruction programs against a named
// variable store. The accumulator holds the most recently loaded value;
// a binary opcode reads its named operand and combines it with the
// accumulator, so after the generator's "left into a temporary, right
// into the accumulator" sequence, ADD t computes left + right. CMP
// without a relation suffix tests equality; the CMP_xx forms apply
// their relation.
package machine

import (
	"fmt"
	"strconv"

	"ifcc/pkg/tac"
)

// maxSteps bounds a single Run. A program still going after this many
// instructions is assumed stuck in a jump loop.
const maxSteps = 10000

type Machine struct {
	Acc  int
	Flag bool
	Vars map[string]int
	PC   int

	prog *tac.Program
}

// New returns a machine ready to run prog. Seed Vars before calling Run
// to pre-define variables.
func New(prog *tac.Program) *Machine {
	return &Machine{
		Vars: make(map[string]int),
		prog: prog,
	}
}

// Done reports whether execution has moved past the last instruction. A
// jump to a trailing label parks PC exactly there.
func (m *Machine) Done() bool {
	return m.PC < 0 || m.PC >= len(m.prog.Instructions)
}

// Step executes the instruction at PC. Stepping a finished machine does
// nothing.
func (m *Machine) Step() error {
	if m.Done() {
		return nil
	}

	instr := m.prog.Instructions[m.PC]
	m.PC++

	switch instr.Op {
	case tac.LOADI:
		// The operand was validated as an integer by tac.Parse.
		n, _ := strconv.Atoi(instr.Operand)
		m.Acc = n

	case tac.LOAD:
		v, err := m.read(instr.Operand)
		if err != nil {
			return err
		}
		m.Acc = v

	case tac.STORE:
		m.Vars[instr.Operand] = m.Acc

	case tac.ADD, tac.SUB, tac.MUL, tac.DIV:
		v, err := m.read(instr.Operand)
		if err != nil {
			return err
		}
		switch instr.Op {
		case tac.ADD:
			m.Acc = v + m.Acc
		case tac.SUB:
			m.Acc = v - m.Acc
		case tac.MUL:
			m.Acc = v * m.Acc
		case tac.DIV:
			if m.Acc == 0 {
				return fmt.Errorf("division by zero at instruction %d", m.PC-1)
			}
			m.Acc = v / m.Acc
		}

	case tac.CMP, tac.CMPEQ, tac.CMPNE, tac.CMPLT, tac.CMPGT, tac.CMPLE, tac.CMPGE:
		v, err := m.read(instr.Operand)
		if err != nil {
			return err
		}
		switch instr.Op {
		case tac.CMP, tac.CMPEQ:
			m.Flag = v == m.Acc
		case tac.CMPNE:
			m.Flag = v != m.Acc
		case tac.CMPLT:
			m.Flag = v < m.Acc
		case tac.CMPGT:
			m.Flag = v > m.Acc
		case tac.CMPLE:
			m.Flag = v <= m.Acc
		case tac.CMPGE:
			m.Flag = v >= m.Acc
		}

	case tac.JMPFALSE:
		if !m.Flag {
			m.PC = m.prog.Labels[instr.Operand]
		}

	case tac.JMP:
		m.PC = m.prog.Labels[instr.Operand]

	default:
		return fmt.Errorf("unknown opcode %s at instruction %d", instr.Op, m.PC-1)
	}

	return nil
}

// Run steps until the program moves past its last instruction.
func (m *Machine) Run() error {
	for steps := 0; !m.Done(); steps++ {
		if steps >= maxSteps {
			return fmt.Errorf("program did not finish within %d steps", maxSteps)
		}
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) read(name string) (int, error) {
	v, ok := m.Vars[name]
	if !ok {
		return 0, fmt.Errorf("undefined variable '%s' at instruction %d", name, m.PC-1)
	}
	return v, nil
}
