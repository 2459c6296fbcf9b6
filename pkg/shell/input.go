package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// readCode collects source text from the user. Single-line mode stops
// at the first empty line; multiline mode numbers each line and stops
// at END, or aborts on CANCEL. Ctrl-C aborts either mode.
func (s *Shell) readCode(multiline bool) (string, bool) {
	if multiline {
		return s.readMultiline()
	}
	return s.readSingle()
}

func (s *Shell) readSingle() (string, bool) {
	fmt.Fprintln(s.out, "\nEnter code (single line or paste multiple lines, then press Enter twice):")
	fmt.Fprintln(s.out, strings.Repeat("─", 63))

	var lines []string
	for {
		line, err := s.ln.Prompt("")
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			return "", false
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n"), true
}

func (s *Shell) readMultiline() (string, bool) {
	fmt.Fprintln(s.out, "\n┌───────────────────────────────────────────────────────────────┐")
	fmt.Fprintln(s.out, "│            MULTILINE MODE - Enter your code                   │")
	fmt.Fprintln(s.out, "│  Type 'END' on a new line when finished                       │")
	fmt.Fprintln(s.out, "│  Type 'CANCEL' to abort                                       │")
	fmt.Fprintln(s.out, "└───────────────────────────────────────────────────────────────┘")
	fmt.Fprintln(s.out)

	var lines []string
	for lineNum := 1; ; lineNum++ {
		line, err := s.ln.Prompt(fmt.Sprintf("%3d│ ", lineNum))
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			return "", false
		}

		switch strings.ToUpper(strings.TrimSpace(line)) {
		case "END":
			return strings.Join(lines, "\n"), true
		case "CANCEL":
			return "", false
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n"), true
}
