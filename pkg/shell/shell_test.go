package shell

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"ifcc/pkg/compiler"
)

// testShell builds a shell with buffered output and in-memory history;
// prompting is never exercised here.
func testShell() (*Shell, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Shell{
		syms:  compiler.NewSymbolTable(),
		store: NewMemoryStore(),
		out:   &buf,
	}, &buf
}

func TestCompileSuccess(t *testing.T) {
	s, buf := testShell()
	s.syms.Define("x", compiler.TypeInt)

	ok := s.Compile("if (x > 10) { y = 5; } else { y = 0; }")
	if !ok {
		t.Fatalf("Compile() = false, output:\n%s", buf.String())
	}

	out := buf.String()
	for _, want := range []string{
		"[PHASE 1: LEXICAL ANALYSIS]",
		"[PHASE 2: SYNTAX ANALYSIS]",
		"[PHASE 3: SEMANTIC ANALYSIS]",
		"[PHASE 4: CODE GENERATION]",
		"✓ Total tokens generated: 19",
		"✓ AST Root Node: IfStatement",
		"Pre-defined variables: x",
		"✓ Symbol table updated: x, y",
		"  1│ LOAD x",
		" 12│ end_label_1:",
		"✓✓✓ COMPILATION SUCCESSFUL! ✓✓✓",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if typ, ok := s.syms.Lookup("y"); !ok || typ != compiler.TypeInt {
		t.Errorf("session table missing y after success")
	}

	entries, err := s.store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("history has %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Status != StatusSuccess || e.Instructions != 12 || e.ID == "" {
		t.Errorf("history entry = %+v", e)
	}
}

func TestCompileFailure(t *testing.T) {
	s, buf := testShell()
	s.syms.Define("x", compiler.TypeInt)

	if s.Compile("if (x > 10) { y = z; }") {
		t.Fatal("Compile() = true for an undefined variable")
	}

	out := buf.String()
	if !strings.Contains(out, "✗✗✗ COMPILATION FAILED! ✗✗✗") {
		t.Errorf("output missing failure marker:\n%s", out)
	}
	if !strings.Contains(out, `variable "z" is not defined`) {
		t.Errorf("output missing error text:\n%s", out)
	}

	// The scratch table is discarded on failure.
	if s.syms.Len() != 1 {
		t.Errorf("session table = %v after failed run", s.syms.Names())
	}

	entries, _ := s.store.List()
	if len(entries) != 1 || entries[0].Status != StatusFailed || entries[0].Error == "" {
		t.Errorf("history entries = %+v", entries)
	}
}

func TestCompileEmptyInput(t *testing.T) {
	s, buf := testShell()

	if s.Compile("   \n  ") {
		t.Fatal("Compile() = true for blank input")
	}
	if !strings.Contains(buf.String(), "✗ Error: No code provided!") {
		t.Errorf("output = %q", buf.String())
	}
	if entries, _ := s.store.List(); len(entries) != 0 {
		t.Errorf("blank input was recorded: %+v", entries)
	}
}

func TestSamplesCompile(t *testing.T) {
	// Variables each sample's condition reads; the rest are defined by
	// the sample's own assignments.
	seeds := [][]string{
		{"x"},
		{"a", "b"},
		{"temperature"},
		{"count", "limit"},
	}

	for i, sample := range Samples {
		t.Run(sample.Title, func(t *testing.T) {
			s, buf := testShell()
			for _, name := range seeds[i] {
				s.syms.Define(name, compiler.TypeInt)
			}
			if !s.Compile(sample.Code) {
				t.Errorf("sample did not compile:\n%s", buf.String())
			}
		})
	}
}

func TestPreview(t *testing.T) {
	if got := preview("if (x > 10) {\n    y = 5;\n}"); got != "if (x > 10) { y = 5; }..." {
		t.Errorf("preview() = %q", got)
	}

	long := strings.Repeat("a = 1; ", 20)
	got := preview(long)
	if len([]rune(got)) != 53 {
		t.Errorf("long preview length = %d, want 53", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("long preview = %q", got)
	}
}

func TestParseVariableNames(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"x, y, z", []string{"x", "y", "z"}},
		{"  count ,limit ", []string{"count", "limit"}},
		{"1bad, ok_name, if-else", []string{"ok_name"}},
		{",,,", nil},
		{"", nil},
	}

	for _, tt := range tests {
		if got := parseVariableNames(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseVariableNames(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
