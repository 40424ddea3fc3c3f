// Package command models a finalized tool invocation: a program path plus a
// literal argument vector, with the declared input and output files. The
// toolchain core only assembles Commands; running them is the executor's job,
// so tests can capture invocations without spawning processes.
package command

import "strings"

// Command is one fully formed tool invocation. Args never includes the
// program itself and is passed to the OS as a literal vector; no shell
// interpretation happens anywhere.
type Command struct {
	Path   string
	Args   []string
	Inputs []string
	Output string
}

// New returns a Command for the given program with no arguments yet.
func New(path string) Command {
	return Command{Path: path}
}

// String renders the invocation for echoing to a terminal. The result is for
// humans; it is not meant to be fed back to a shell.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Path
	}
	return c.Path + " " + strings.Join(c.Args, " ")
}

// HasArg reports whether the exact argument appears in the vector.
func (c Command) HasArg(arg string) bool {
	for _, a := range c.Args {
		if a == arg {
			return true
		}
	}
	return false
}
