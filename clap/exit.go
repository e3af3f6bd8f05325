package clap

import (
	"errors"
	"fmt"
	"iter"
	"os"

	clapio "github.com/dzonerzy/go-clap/io"
)

// exitFunc terminates the process; replaced in tests.
var exitFunc = os.Exit

// ExitError requests a specific exit code, e.g. from a sink or validator.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit"
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCodeDefaults holds the codes used when no mapping matches.
type ExitCodeDefaults struct {
	Success      int // default: 0
	GeneralError int // default: 1
}

// ExitCodeManager maps parse errors to process exit codes.
type ExitCodeManager struct {
	codesByKind map[ErrorKind]int
	defaults    ExitCodeDefaults
}

func newExitCodeManager() *ExitCodeManager {
	return &ExitCodeManager{
		codesByKind: make(map[ErrorKind]int),
		defaults:    ExitCodeDefaults{Success: 0, GeneralError: 1},
	}
}

// DefineKind overrides the exit code for one error kind.
func (e *ExitCodeManager) DefineKind(kind ErrorKind, code int) *ExitCodeManager {
	e.codesByKind[kind] = code
	return e
}

// Default replaces the fallback codes.
func (e *ExitCodeManager) Default(d ExitCodeDefaults) *ExitCodeManager {
	e.defaults = d
	return e
}

// Resolve converts an error to an exit code.
// Precedence:
//  1. ExitError (requested code)
//  2. error kind mapping (DefineKind)
//  3. GeneralError
func (e *ExitCodeManager) Resolve(err error) int {
	if err == nil {
		return e.defaults.Success
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if code, ok := e.codesByKind[KindOf(err)]; ok {
		return code
	}
	return e.defaults.GeneralError
}

// TryParse parses args, program name first, and returns the first error.
func (s *Schema) TryParse(args []string) error {
	return NewParser(s).Parse(FromSlice(args))
}

// TryParseSeq parses tokens drawn from seq.
func (s *Schema) TryParseSeq(seq iter.Seq[string]) error {
	tokens, stop := FromSeq(seq)
	defer stop()
	return NewParser(s).Parse(tokens)
}

// TryParseLine parses a shell-quoted command line such as
// `prog --name "two words"`.
func (s *Schema) TryParseLine(line string) error {
	args, err := SplitLine(line)
	if err != nil {
		return &Error{Kind: KindOther, Message: fmt.Sprintf("Cannot split command line: %v", err), Cause: err}
	}
	return s.TryParse(args)
}

// TryParseOS parses the process arguments.
func (s *Schema) TryParseOS() error {
	return s.TryParse(os.Args)
}

// ParseOrExit parses args; on error it prints "error: <message>" to stderr
// and exits with the code mapped by the schema's ExitCodeManager.
func (s *Schema) ParseOrExit(args []string) {
	s.exitOn(s.TryParse(args))
}

// ParseOrExitOS is ParseOrExit over the process arguments.
func (s *Schema) ParseOrExitOS() {
	s.ParseOrExit(os.Args)
}

// ExitCode returns the exit code ParseOrExit would use for err.
func (s *Schema) ExitCode(err error) int {
	return s.exitCodes().Resolve(err)
}

func (s *Schema) exitOn(err error) {
	if err == nil {
		return
	}
	m := s.settings.io
	if m == nil {
		m = clapio.New()
	}
	fmt.Fprintf(m.Err(), "%s %v\n", m.PaintErr("error:", clapio.DefaultTheme().Error), err)
	exitFunc(s.ExitCode(err))
}

func (s *Schema) exitCodes() *ExitCodeManager {
	if s.settings.exitCodes == nil {
		return newExitCodeManager()
	}
	return s.settings.exitCodes
}
