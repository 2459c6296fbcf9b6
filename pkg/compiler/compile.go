package compiler

// Result holds the output of a successful compilation: the generated
// instruction lines in order, and the symbol table state after the run
// (the seed mapping plus every variable the program assigned).
type Result struct {
	Instructions []string
	Symbols      map[string]string
}

// Compile runs the four stages in order: lex, parse, semantic check,
// code generation. The first failing stage aborts the run; no partial
// instruction output is ever returned. initialSymbols seeds the symbol
// table and may be nil; the caller's map is never mutated.
func Compile(src string, initialSymbols map[string]string) (*Result, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}

	ast, err := Parse(tokens)
	if err != nil {
		return nil, err
	}

	syms := NewSymbolTable()
	syms.Merge(initialSymbols)
	if err := Check(ast, syms); err != nil {
		return nil, err
	}

	instructions, err := Generate(ast)
	if err != nil {
		return nil, err
	}

	return &Result{Instructions: instructions, Symbols: syms.Snapshot()}, nil
}
