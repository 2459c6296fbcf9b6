// Package tac parses and renders the flat three-address instruction text
// produced by the compiler. A program is one instruction per line, with
// label definition lines of the form "name:". Parsing resolves every label
// to the index of the instruction that follows it.
package tac

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Opcode is a textual instruction mnemonic.
type Opcode string

const (
	LOADI Opcode = "LOADI"
	LOAD  Opcode = "LOAD"
	STORE Opcode = "STORE"

	ADD Opcode = "ADD"
	SUB Opcode = "SUB"
	MUL Opcode = "MUL"
	DIV Opcode = "DIV"

	// CMP is the generic comparison; the CMPxx forms carry the relation.
	CMP   Opcode = "CMP"
	CMPEQ Opcode = "CMP_EQ"
	CMPNE Opcode = "CMP_NE"
	CMPLT Opcode = "CMP_LT"
	CMPGT Opcode = "CMP_GT"
	CMPLE Opcode = "CMP_LE"
	CMPGE Opcode = "CMP_GE"

	JMPFALSE Opcode = "JMP_FALSE"
	JMP      Opcode = "JMP"
)

// variableOps take a variable or temporary name as their operand.
var variableOps = map[Opcode]bool{
	LOAD:  true,
	STORE: true,
	ADD:   true,
	SUB:   true,
	MUL:   true,
	DIV:   true,
	CMP:   true,
	CMPEQ: true,
	CMPNE: true,
	CMPLT: true,
	CMPGT: true,
	CMPLE: true,
	CMPGE: true,
}

// labelOps take a label name as their operand.
var labelOps = map[Opcode]bool{
	JMP:      true,
	JMPFALSE: true,
}

// Instruction is a single executable line. Label definitions are not
// instructions; they live in Program.Labels.
type Instruction struct {
	Op      Opcode
	Operand string
}

// Program is a parsed instruction stream. Labels maps each label name to
// the index of the instruction it precedes; a label at the very end of
// the text maps to len(Instructions).
type Program struct {
	Instructions []Instruction
	Labels       map[string]int
}

type parsedLine struct {
	labels  []string
	op      string
	operand string
}

// Parse reads instruction text into a Program. Labels are resolved in a
// first pass so that forward jumps verify; the second pass checks each
// opcode, its operand form, and that every jump target is defined.
func Parse(text string) (*Program, error) {
	lines := strings.Split(text, "\n")

	labels, err := pass1(lines)
	if err != nil {
		return nil, err
	}

	instructions, err := pass2(lines, labels)
	if err != nil {
		return nil, err
	}

	return &Program{Instructions: instructions, Labels: labels}, nil
}

func pass1(lines []string) (map[string]int, error) {
	labels := make(map[string]int)
	index := 0

	for i, raw := range lines {
		lineNo := i + 1
		p, err := parseLine(raw, lineNo)
		if err != nil {
			return nil, err
		}

		for _, lbl := range p.labels {
			if _, exists := labels[lbl]; exists {
				return nil, fmt.Errorf("duplicate label '%s' on line %d", lbl, lineNo)
			}
			labels[lbl] = index
		}

		if p.op != "" {
			index++
		}
	}

	return labels, nil
}

func pass2(lines []string, labels map[string]int) ([]Instruction, error) {
	instructions := make([]Instruction, 0)

	for i, raw := range lines {
		lineNo := i + 1
		p, err := parseLine(raw, lineNo)
		if err != nil {
			return nil, err
		}
		if p.op == "" {
			continue
		}

		op := Opcode(p.op)
		switch {
		case op == LOADI:
			if p.operand == "" {
				return nil, fmt.Errorf("%s expects one operand on line %d", op, lineNo)
			}
			if _, err := strconv.Atoi(p.operand); err != nil {
				return nil, fmt.Errorf("invalid immediate '%s' on line %d", p.operand, lineNo)
			}

		case variableOps[op]:
			if p.operand == "" {
				return nil, fmt.Errorf("%s expects one operand on line %d", op, lineNo)
			}
			if !isIdentifier(p.operand) {
				return nil, fmt.Errorf("invalid variable '%s' on line %d", p.operand, lineNo)
			}

		case labelOps[op]:
			if p.operand == "" {
				return nil, fmt.Errorf("%s expects one operand on line %d", op, lineNo)
			}
			if _, ok := labels[p.operand]; !ok {
				return nil, fmt.Errorf("undefined label '%s' on line %d", p.operand, lineNo)
			}

		default:
			return nil, fmt.Errorf("unknown instruction on line %d: %s", lineNo, p.op)
		}

		instructions = append(instructions, Instruction{Op: op, Operand: p.operand})
	}

	return instructions, nil
}

func parseLine(raw string, lineNo int) (parsedLine, error) {
	var p parsedLine

	line := strings.TrimSpace(raw)
	if line == "" {
		return p, nil
	}

	for {
		colon := strings.IndexByte(line, ':')
		if colon <= 0 {
			break
		}

		beforeColon := strings.TrimSpace(line[:colon])
		if strings.ContainsAny(beforeColon, " \t") {
			break
		}
		if !isIdentifier(beforeColon) {
			return p, fmt.Errorf("invalid label '%s' on line %d", beforeColon, lineNo)
		}

		p.labels = append(p.labels, beforeColon)
		line = strings.TrimSpace(line[colon+1:])
		if line == "" {
			return p, nil
		}
	}

	fields := strings.Fields(line)
	p.op = strings.ToUpper(fields[0])
	switch len(fields) {
	case 1:
	case 2:
		p.operand = fields[1]
	default:
		return p, fmt.Errorf("too many operands on line %d", lineNo)
	}

	return p, nil
}

// Format renders a program back to canonical text. Labels sharing an
// index appear in sorted order before the instruction at that index.
func Format(p *Program) string {
	labelsAt := make(map[int][]string)
	for name, idx := range p.Labels {
		labelsAt[idx] = append(labelsAt[idx], name)
	}
	for _, names := range labelsAt {
		sort.Strings(names)
	}

	var sb strings.Builder
	for i, instr := range p.Instructions {
		for _, name := range labelsAt[i] {
			sb.WriteString(name)
			sb.WriteString(":\n")
		}
		fmt.Fprintf(&sb, "%s %s\n", instr.Op, instr.Operand)
	}
	for _, name := range labelsAt[len(p.Instructions)] {
		sb.WriteString(name)
		sb.WriteString(":\n")
	}
	return sb.String()
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}

	return true
}
