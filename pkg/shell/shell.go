// Package shell implements the interactive compiler console: a menu
// loop over the four pipeline stages with a session symbol table,
// sample programs, and persistent compilation history. All compilation
// logic lives in pkg/compiler; the shell narrates it.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	humanize "github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"ifcc/pkg/compiler"
)

const banner = `
     _  __
    (_)/ _| ___  ___
    | | |_ / __|/ __|
    | |  _| (__| (__
    |_|_|  \___|\___|
`

const menu = `
    Select an option:
    1. Compile Code
    2. Compile Code (Multiline)
    3. Load Sample Code
    4. View Symbol Table
    5. View Compilation History
    6. Define Variables
    7. Help & Language Reference
    8. Exit
`

const helpText = `
LANGUAGE REFERENCE:

Keywords:
- if
- else

Operators:
- Comparison: ==, !=, <, >, <=, >=
- Assignment: =

Syntax:
- Statements end with a semicolon (;)
- Blocks are enclosed in curly braces ({ })

Example:
if (x > 10) {
    y = 5;
    z = y;
} else {
    y = 0;
    z = 3;
}
`

type Shell struct {
	syms  *compiler.SymbolTable
	store Store
	ln    *liner.State
	out   io.Writer
}

// New builds a shell session. The history store lives at historyPath;
// if it cannot be opened the session keeps history in memory instead.
func New(historyPath string) *Shell {
	store, err := OpenStore(historyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "history store unavailable (%v); keeping history in memory\n", err)
		store = NewMemoryStore()
	}

	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)

	return &Shell{
		syms:  compiler.NewSymbolTable(),
		store: store,
		ln:    ln,
		out:   os.Stdout,
	}
}

// Close restores the terminal and releases the history store. Safe to
// call from an exit hook.
func (s *Shell) Close() {
	if s.ln != nil {
		s.ln.Close()
	}
	if s.store != nil {
		s.store.Close()
	}
}

// Run drives the menu loop until the user exits.
func (s *Shell) Run() error {
	for {
		s.clearScreen()
		s.printBanner()
		fmt.Fprintln(s.out, menu)

		fmt.Fprintln(s.out)
		choice, err := s.ln.Prompt("Select an option (1-8): ")
		if errors.Is(err, io.EOF) {
			s.goodbye()
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			if code, ok := s.readCode(false); ok {
				s.remember(code)
				s.Compile(code)
			}
			s.pressEnter()
		case "2":
			if code, ok := s.readCode(true); ok {
				s.remember(code)
				s.Compile(code)
			}
			s.pressEnter()
		case "3":
			if code, ok := s.pickSample(); ok {
				s.Compile(code)
			}
			s.pressEnter()
		case "4":
			s.viewSymbols()
			s.pressEnter()
		case "5":
			s.viewHistory()
			s.pressEnter()
		case "6":
			s.defineVariables()
			s.pressEnter()
		case "7":
			fmt.Fprint(s.out, helpText)
			s.pressEnter()
		case "8":
			s.goodbye()
			return nil
		default:
			fmt.Fprintln(s.out, "\n✗ Invalid option! Please select 1-8.")
			s.pressEnter()
		}
	}
}

// Compile runs the four stages over code, narrating each phase, and
// records the attempt in the history store. The session symbol table
// picks up new definitions only when the whole run succeeds.
func (s *Shell) Compile(code string) bool {
	if strings.TrimSpace(code) == "" {
		fmt.Fprintln(s.out, "\n✗ Error: No code provided!")
		return false
	}

	s.section("COMPILATION PROCESS")

	fail := func(err error) bool {
		s.separator()
		fmt.Fprintln(s.out, "✗✗✗ COMPILATION FAILED! ✗✗✗")
		s.separator()
		fmt.Fprintf(s.out, "\nError: %v\n", err)
		s.record(newEntry(StatusFailed, code, 0, err.Error()))
		return false
	}

	fmt.Fprintln(s.out, "\n[PHASE 1: LEXICAL ANALYSIS]")
	s.rule()
	tokens, err := compiler.Lex(code)
	if err != nil {
		return fail(err)
	}
	for _, tok := range tokens[:len(tokens)-1] {
		fmt.Fprintf(s.out, "  %s\n", tok)
	}
	fmt.Fprintf(s.out, "✓ Total tokens generated: %d\n", len(tokens)-1)

	fmt.Fprintln(s.out, "\n[PHASE 2: SYNTAX ANALYSIS]")
	s.rule()
	ast, err := compiler.Parse(tokens)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintf(s.out, "✓ AST Root Node: %s\n", astKind(ast))
	fmt.Fprintln(s.out, "✓ Parsing completed successfully!")

	fmt.Fprintln(s.out, "\n[PHASE 3: SEMANTIC ANALYSIS]")
	s.rule()
	scratch := compiler.NewSymbolTable()
	scratch.Merge(s.syms.Snapshot())
	fmt.Fprintf(s.out, "Pre-defined variables: %s\n", nameList(s.syms.Names()))
	if err := compiler.Check(ast, scratch); err != nil {
		return fail(err)
	}
	s.syms.Merge(scratch.Snapshot())
	fmt.Fprintf(s.out, "✓ Symbol table updated: %s\n", nameList(s.syms.Names()))
	fmt.Fprintln(s.out, "✓ Semantic analysis completed!")

	fmt.Fprintln(s.out, "\n[PHASE 4: CODE GENERATION]")
	s.rule()
	instructions, err := compiler.Generate(ast)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintln(s.out, "✓ Generated Three-Address Code:")
	s.rule()
	for i, instruction := range instructions {
		fmt.Fprintf(s.out, "%3d│ %s\n", i+1, instruction)
	}

	s.separator()
	fmt.Fprintln(s.out, "✓✓✓ COMPILATION SUCCESSFUL! ✓✓✓")
	s.separator()

	s.record(newEntry(StatusSuccess, code, len(instructions), ""))
	return true
}

func (s *Shell) viewSymbols() {
	s.section("SYMBOL TABLE")

	if s.syms.Len() == 0 {
		fmt.Fprintln(s.out, "\n  No variables defined yet.")
		return
	}
	fmt.Fprintln(s.out, "\n  Variable         Type")
	fmt.Fprintln(s.out, "  "+strings.Repeat("-", 30))
	fmt.Fprint(s.out, s.syms)
}

func (s *Shell) viewHistory() {
	s.section("COMPILATION HISTORY")

	entries, err := s.store.List()
	if err != nil {
		fmt.Fprintf(s.out, "\n  History unavailable: %v\n", err)
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "\n  No compilation history yet.")
		return
	}

	for i, e := range entries {
		fmt.Fprintf(s.out, "\n  [%d] Status: %s (%s)\n", i+1, e.Status, humanize.Time(e.Time))
		fmt.Fprintf(s.out, "      Code Preview: %s\n", preview(e.Code))
		switch e.Status {
		case StatusSuccess:
			fmt.Fprintf(s.out, "      Instructions: %d lines\n", e.Instructions)
		case StatusFailed:
			fmt.Fprintf(s.out, "      Error: %s\n", e.Error)
		}
	}
}

func (s *Shell) defineVariables() {
	s.section("DEFINE VARIABLES")

	if s.syms.Len() == 0 {
		fmt.Fprintln(s.out, "\nCurrent symbol table: Empty")
	} else {
		fmt.Fprintf(s.out, "\nCurrent symbol table: %s\n", nameList(s.syms.Names()))
	}
	fmt.Fprintln(s.out, "\nEnter variable names (comma-separated) or 'clear' to reset:")
	fmt.Fprintln(s.out, "Example: x, y, z")
	fmt.Fprintln(s.out)

	input, err := s.ln.Prompt("> ")
	if err != nil {
		return
	}
	input = strings.TrimSpace(input)

	switch {
	case strings.EqualFold(input, "clear"):
		s.syms = compiler.NewSymbolTable()
		fmt.Fprintln(s.out, "\n✓ Symbol table cleared!")
	case input != "":
		for _, name := range parseVariableNames(input) {
			s.syms.Define(name, compiler.TypeInt)
		}
		fmt.Fprintf(s.out, "\n✓ Variables defined: %s\n", nameList(s.syms.Names()))
	}
}

func (s *Shell) pickSample() (string, bool) {
	fmt.Fprintln(s.out, "\n┌───────────────────────────────────────────────────────────────┐")
	fmt.Fprintln(s.out, "│                      SAMPLE PROGRAMS                          │")
	fmt.Fprintln(s.out, "├───────────────────────────────────────────────────────────────┤")
	for i, sample := range Samples {
		fmt.Fprintf(s.out, "│  %d. %-58s│\n", i+1, sample.Title)
	}
	fmt.Fprintln(s.out, "└───────────────────────────────────────────────────────────────┘")
	fmt.Fprintln(s.out)

	choice, err := s.ln.Prompt(fmt.Sprintf("Select sample (1-%d) or 'b' to go back: ", len(Samples)))
	if err != nil {
		return "", false
	}
	choice = strings.TrimSpace(choice)
	if strings.EqualFold(choice, "b") {
		return "", false
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(Samples) {
		return "", false
	}
	code := Samples[idx-1].Code

	fmt.Fprintln(s.out, "\nSample code loaded:")
	s.rule()
	fmt.Fprint(s.out, code)
	s.rule()
	fmt.Fprintln(s.out)

	confirm, err := s.ln.Prompt("Compile this code? (y/n): ")
	if err != nil || !strings.EqualFold(strings.TrimSpace(confirm), "y") {
		return "", false
	}
	return code, true
}

// remember adds code to the line editor's in-session history, flattened
// to one line.
func (s *Shell) remember(code string) {
	if strings.TrimSpace(code) == "" {
		return
	}
	s.ln.AppendHistory(strings.Join(strings.Fields(code), " "))
}

func (s *Shell) record(e Entry) {
	if err := s.store.Record(e); err != nil {
		fmt.Fprintf(s.out, "(history not recorded: %v)\n", err)
	}
}

func (s *Shell) pressEnter() {
	fmt.Fprintln(s.out)
	_, _ = s.ln.Prompt("Press Enter to continue...")
}

func (s *Shell) printBanner() {
	fmt.Fprintln(s.out, banner)
	fmt.Fprintln(s.out, "  if/else conditional compiler")
	s.separator()
}

func (s *Shell) goodbye() {
	s.clearScreen()
	fmt.Fprintln(s.out, "\n"+strings.Repeat("=", 63))
	fmt.Fprintln(s.out, "  Thank you for using the if/else compiler!")
	fmt.Fprintln(s.out, "  Goodbye!")
	fmt.Fprintln(s.out, strings.Repeat("=", 63)+"\n")
}

func (s *Shell) section(title string) {
	fmt.Fprintln(s.out, "\n"+strings.Repeat("=", 63))
	fmt.Fprintln(s.out, title)
	fmt.Fprintln(s.out, strings.Repeat("=", 63))
}

func (s *Shell) separator() {
	fmt.Fprintln(s.out, strings.Repeat("=", 63))
}

func (s *Shell) rule() {
	fmt.Fprintln(s.out, strings.Repeat("-", 63))
}

// clearScreen clears the terminal between menu rounds; redirected
// output is left alone.
func (s *Shell) clearScreen() {
	if f, ok := s.out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		fmt.Fprint(s.out, "\033[2J\033[H")
	}
}

// nameList renders symbol names for display, "None" when there are none.
func nameList(names []string) string {
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, ", ")
}

// preview flattens code to one line and clips it for the history view.
func preview(code string) string {
	flat := strings.Join(strings.Fields(code), " ")
	runes := []rune(flat)
	if len(runes) > 50 {
		runes = runes[:50]
	}
	return string(runes) + "..."
}

// astKind names a node type without its package path.
func astKind(v any) string {
	name := fmt.Sprintf("%T", v)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// parseVariableNames splits comma-separated input, dropping anything
// that is not a valid identifier.
func parseVariableNames(input string) []string {
	var names []string
	for _, field := range strings.Split(input, ",") {
		name := strings.TrimSpace(field)
		if name != "" && isIdentifier(name) {
			names = append(names, name)
		}
	}
	return names
}

// isIdentifier mirrors what the lexer will accept as an ID.
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
