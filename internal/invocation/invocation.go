package invocation

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Invocation is one external-process call: an executable plus its positional
// arguments in the order the executable expects them.
type Invocation struct {
	Operation  Operation
	Executable string
	Args       []string
}

// Argv returns a copy of the full argument vector, executable first.
func (i Invocation) Argv() []string {
	argv := make([]string, 0, len(i.Args)+1)
	argv = append(argv, i.Executable)
	return append(argv, i.Args...)
}

// String renders the invocation as a shell-quoted command line. It is meant
// for display only; execution never goes through a shell.
func (i Invocation) String() string {
	parts := make([]string, 0, len(i.Args)+1)
	for _, word := range i.Argv() {
		parts = append(parts, quoteWord(word))
	}
	return strings.Join(parts, " ")
}

func quoteWord(word string) string {
	quoted, err := syntax.Quote(word, syntax.LangPOSIX)
	if err != nil {
		// Words holding bytes a POSIX shell cannot express still need a
		// readable rendering.
		return "'" + strings.ReplaceAll(word, "'", `'\''`) + "'"
	}
	return quoted
}
