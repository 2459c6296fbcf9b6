package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// TypeInt is the single value type the language knows about.
const TypeInt = "int"

// SymbolTable maps variable names to their declared type. It is populated
// by the semantic checker as assignments are encountered and may be seeded
// before a run. Its lifetime spans a session, not a single compilation.
type SymbolTable struct {
	vars map[string]string
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{vars: make(map[string]string)}
}

// Define records name with the given type, overwriting any previous entry.
func (s *SymbolTable) Define(name, typ string) {
	s.vars[name] = typ
}

// Lookup returns the type of name and whether it is defined.
func (s *SymbolTable) Lookup(name string) (string, bool) {
	typ, ok := s.vars[name]
	return typ, ok
}

// Merge bulk-defines every entry of m.
func (s *SymbolTable) Merge(m map[string]string) {
	for name, typ := range m {
		s.vars[name] = typ
	}
}

// Snapshot returns a copy of the table contents.
func (s *SymbolTable) Snapshot() map[string]string {
	out := make(map[string]string, len(s.vars))
	for name, typ := range s.vars {
		out[name] = typ
	}
	return out
}

// Names returns the defined variable names in sorted order.
func (s *SymbolTable) Names() []string {
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *SymbolTable) Len() int {
	return len(s.vars)
}

// String returns a deterministically ordered dump of the table.
func (s *SymbolTable) String() string {
	if len(s.vars) == 0 {
		return "(empty)\n"
	}
	var sb strings.Builder
	for _, name := range s.Names() {
		fmt.Fprintf(&sb, "  %-15s  %s\n", name, s.vars[name])
	}
	return sb.String()
}
