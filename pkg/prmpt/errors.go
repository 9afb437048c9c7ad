package prmpt

import (
	"errors"
	"fmt"
)

// ToolName prefixes every diagnostic produced by a failed render.
const ToolName = "Prmpt"

// UnknownFunctionError is returned when an invocation names a function that
// is not in the registry.
type UnknownFunctionError struct {
	Name string
}

func (e *UnknownFunctionError) Error() string {
	return "No such function " + e.Name
}

// ArgumentError is returned by functions that were given bad input: an
// unrecognised colour, a non-numeric operand, the wrong number of arguments.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string {
	return e.Msg
}

// Invalidf builds an ArgumentError with a formatted message.
func Invalidf(format string, a ...any) error {
	return &ArgumentError{Msg: fmt.Sprintf(format, a...)}
}

// ScriptError ties a function failure to the line of the invocation that
// caused it.
type ScriptError struct {
	Line int
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s error on line %d: %s", ToolName, e.Line, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// Diagnostic is the text shown in place of the prompt. It ends in a bare
// "$ " so the user still gets a usable command line.
func (e *ScriptError) Diagnostic() string {
	return e.Error() + "\n$ "
}

// IsUnknownFunction reports whether err was caused by a missing function.
func IsUnknownFunction(err error) bool {
	var target *UnknownFunctionError
	return errors.As(err, &target)
}

// IsInvalidArgument reports whether err was caused by bad function input.
func IsInvalidArgument(err error) bool {
	var target *ArgumentError
	return errors.As(err, &target)
}
