package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"ifcc/pkg/compiler"
	"ifcc/pkg/machine"
	"ifcc/pkg/tac"
)

func main() {
	inPath := flag.String("in", "", "input source file path")
	outPath := flag.String("out", "", "output instruction file path (default: input with .tac extension, or stdout for inline source)")
	runProgram := flag.Bool("run", false, "execute the generated instructions and print the final variable state (generic CMP compares for equality; use -cmp-kinds for true relations)")
	cmpKinds := flag.Bool("cmp-kinds", false, "emit comparison-kind opcodes (CMP_EQ..CMP_GE) instead of generic CMP")
	defs := flag.String("defs", "", "comma-separated variables to pre-define, each \"name\" or \"name=value\"")
	flag.Parse()

	inline := strings.Join(flag.Args(), " ")
	if *inPath != "" && inline != "" {
		fmt.Fprintln(os.Stderr, "use either -in or inline source, not both")
		os.Exit(2)
	}
	if *inPath == "" && inline == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: provide -in <file> or inline source after the flags")
		flag.Usage()
		os.Exit(2)
	}

	source := inline
	if *inPath != "" {
		data, err := os.ReadFile(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read input file %q: %v\n", *inPath, err)
			os.Exit(1)
		}
		source = string(data)
	}

	symbols, values, err := parseDefs(*defs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	instructions, err := compileSource(source, symbols, *cmpKinds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compilation failed: %v\n", err)
		os.Exit(1)
	}
	text := strings.Join(instructions, "\n") + "\n"

	output := *outPath
	if output == "" && *inPath != "" {
		output = defaultOutputPath(*inPath)
	}
	if output != "" {
		if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write output file %q: %v\n", output, err)
			os.Exit(1)
		}
		fmt.Printf("compiled %d instructions -> %s\n", len(instructions), output)
	} else {
		fmt.Print(text)
	}

	if !*runProgram {
		return
	}

	prog, err := tac.Parse(text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "instruction text rejected: %v\n", err)
		os.Exit(1)
	}
	m := machine.New(prog)
	for name, v := range values {
		m.Vars[name] = v
	}
	if err := m.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "run failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("run complete: %s\n", finalState(m))
}

// compileSource runs the four stages, seeding the symbol table with the
// pre-defined names.
func compileSource(source string, seeds map[string]string, compareKinds bool) ([]string, error) {
	tokens, err := compiler.Lex(source)
	if err != nil {
		return nil, err
	}
	ast, err := compiler.Parse(tokens)
	if err != nil {
		return nil, err
	}
	syms := compiler.NewSymbolTable()
	syms.Merge(seeds)
	if err := compiler.Check(ast, syms); err != nil {
		return nil, err
	}
	cg := compiler.NewCodeGen()
	cg.CompareKinds = compareKinds
	return cg.Generate(ast)
}

// parseDefs reads -defs entries of the form "name" or "name=value".
// Names seed the symbol table; values seed the machine when -run is
// given, defaulting to 0.
func parseDefs(spec string) (map[string]string, map[string]int, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil, nil
	}

	symbols := make(map[string]string)
	values := make(map[string]int)
	for _, field := range strings.Split(spec, ",") {
		entry := strings.TrimSpace(field)
		if entry == "" {
			continue
		}
		name := entry
		value := 0
		if eq := strings.IndexByte(entry, '='); eq >= 0 {
			name = strings.TrimSpace(entry[:eq])
			v, err := strconv.Atoi(strings.TrimSpace(entry[eq+1:]))
			if err != nil {
				return nil, nil, fmt.Errorf("invalid definition %q", entry)
			}
			value = v
		}
		if name == "" {
			return nil, nil, fmt.Errorf("invalid definition %q", entry)
		}
		symbols[name] = compiler.TypeInt
		values[name] = value
	}
	return symbols, values, nil
}

func defaultOutputPath(inPath string) string {
	ext := filepath.Ext(inPath)
	if ext == "" {
		return inPath + ".tac"
	}
	return strings.TrimSuffix(inPath, ext) + ".tac"
}

func finalState(m *machine.Machine) string {
	names := make([]string, 0, len(m.Vars))
	for name := range m.Vars {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%d", name, m.Vars[name]))
	}
	if len(parts) == 0 {
		return "(no variables)"
	}
	return strings.Join(parts, " ")
}
