package main

import (
	"strings"
	"testing"

	"ifcc/pkg/machine"
	"ifcc/pkg/tac"
)

func TestCompileAndRun(t *testing.T) {
	tests := []struct {
		name   string
		source string
		defs   string
		want   map[string]int
		absent []string
	}{
		{
			name:   "Then Branch",
			source: "if (x > 10) { y = 5; } else { y = 0; }",
			defs:   "x=15",
			want:   map[string]int{"x": 15, "y": 5},
		},
		{
			name:   "Else Branch",
			source: "if (x > 10) { y = 5; } else { y = 0; }",
			defs:   "x=3",
			want:   map[string]int{"x": 3, "y": 0},
		},
		{
			name:   "No Else Skips Assignment",
			source: "if (x > 10) { y = 5; }",
			defs:   "x=3",
			want:   map[string]int{"x": 3},
			absent: []string{"y"},
		},
		{
			name:   "Equality Holds",
			source: "if (a == b) { result = 1; } else { result = 0; }",
			defs:   "a=4,b=4",
			want:   map[string]int{"result": 1},
		},
		{
			name:   "Equality Fails",
			source: "if (a == b) { result = 1; } else { result = 0; }",
			defs:   "a=4,b=5",
			want:   map[string]int{"result": 0},
		},
		{
			name: "Multiple Assignments",
			source: `if (x > 10) {
    y = 5;
    z = y;
} else {
    y = 0;
    z = 3;
}`,
			defs: "x=11",
			want: map[string]int{"y": 5, "z": 5},
		},
		{
			name:   "Inclusive Boundary",
			source: "if (t <= 30) { ok = 1; } else { ok = 0; }",
			defs:   "t=30",
			want:   map[string]int{"ok": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			symbols, values, err := parseDefs(tt.defs)
			if err != nil {
				t.Fatalf("parseDefs failed: %v", err)
			}

			// Comparison-kind mode, so the branch follows the real
			// relation.
			instructions, err := compileSource(tt.source, symbols, true)
			if err != nil {
				t.Fatalf("compile failed: %v", err)
			}
			text := strings.Join(instructions, "\n")

			prog, err := tac.Parse(text)
			if err != nil {
				t.Fatalf("instruction text rejected: %v\nInstructions:\n%s", err, text)
			}

			m := machine.New(prog)
			for name, v := range values {
				m.Vars[name] = v
			}
			if err := m.Run(); err != nil {
				t.Fatalf("run failed: %v", err)
			}

			for name, v := range tt.want {
				if got, ok := m.Vars[name]; !ok || got != v {
					t.Errorf("%s = %d (defined=%t), want %d", name, got, ok, v)
				}
			}
			for _, name := range tt.absent {
				if v, ok := m.Vars[name]; ok {
					t.Errorf("%s = %d, want undefined", name, v)
				}
			}
		})
	}
}

func TestDefaultModeCollapsesComparisons(t *testing.T) {
	// Without -cmp-kinds every comparison compiles to generic CMP,
	// which the machine reads as an equality test. x > 10 with x = 10
	// therefore takes the then branch. The comparison-kind mode exists
	// for exactly this gap.
	symbols, values, err := parseDefs("x=10")
	if err != nil {
		t.Fatalf("parseDefs failed: %v", err)
	}

	instructions, err := compileSource("if (x > 10) { y = 5; } else { y = 0; }", symbols, false)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	prog, err := tac.Parse(strings.Join(instructions, "\n"))
	if err != nil {
		t.Fatalf("instruction text rejected: %v", err)
	}

	m := machine.New(prog)
	for name, v := range values {
		m.Vars[name] = v
	}
	if err := m.Run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if m.Vars["y"] != 5 {
		t.Errorf("y = %d, want 5 under the equality reading", m.Vars["y"])
	}
}
