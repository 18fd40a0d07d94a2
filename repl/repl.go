/*
File    : gomixvm/repl/repl.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package repl implements the interactive Read-Eval-Print Loop for gomixvm:
// one line of input is lexed, parsed, compiled into its own chunk, and run
// against a VM that persists across lines, so globals declared on one line
// are visible on the next. Adapted from the teacher's own repl/repl.go
// (readline + fatih/color banner/prompt plumbing) onto the new
// lexer/parser/compiler/vm pipeline in place of the teacher's tree-walking
// eval.Evaluator.
package repl

import (
	"io"
	"strings"

	"github.com/akashmaji946/gomixvm/compiler"
	"github.com/akashmaji946/gomixvm/lexer"
	"github.com/akashmaji946/gomixvm/parser"
	"github.com/akashmaji946/gomixvm/vm"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is an interactive session over a single persistent vm.VM. NewVM
// builds that VM once at Start time, already wired with every domain-stack
// native the caller wants available (see main.go's newConfiguredVM) — the
// REPL package itself never imports domain/*, keeping the same layering
// spec.md's native-function registry calls for.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
	NewVM   func() *vm.VM
}

// New returns a Repl ready to Start. newVM is called lazily, once per call
// to Start.
func New(banner, version, author, line, license, prompt string, newVM func() *vm.VM) *Repl {
	return &Repl{
		Banner:  banner,
		Version: version,
		Author:  author,
		Line:    line,
		License: license,
		Prompt:  prompt,
		NewVM:   newVM,
	}
}

// PrintBannerInfo displays the welcome banner and usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to gomixvm!")
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start begins the REPL main loop: print the banner, then read lines one at
// a time until '.exit', EOF (Ctrl+D), or a readline error, compiling and
// running each line's worth of source against the same long-lived VM so
// `let`-bound globals and natives persist across the session.
func (r *Repl) Start(writer io.Writer) error {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	machine := r.NewVM()
	machine.Stdout = writer

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			return nil
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			return nil
		}

		rl.SaveHistory(line)
		r.evalLine(writer, machine, line)
	}
}

// evalLine lexes, parses, and compiles one line of input into its own
// chunk, then runs it against the session's persistent VM. Parse and
// compile errors are printed and the REPL continues; a runtime error is
// reported the same way instead of aborting the session.
func (r *Repl) evalLine(writer io.Writer, machine *vm.VM, line string) {
	lex := lexer.NewLexer(line)
	p := parser.New(&lex, "<repl>")
	program, parseErr := p.Parse()
	if parseErr != nil {
		redColor.Fprintf(writer, "%v\n", parseErr)
		return
	}

	comp := compiler.New()
	chunk, compileErr := comp.Compile(program)
	if compileErr != nil {
		redColor.Fprintf(writer, "%v\n", compileErr)
		return
	}

	if runErr := machine.Run(chunk); runErr != nil {
		redColor.Fprintf(writer, "%v\n", runErr)
	}
}
