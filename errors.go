package tinyq

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// Kind classifies the errors raised by the query and template engines.
type Kind uint8

// Error kinds. They follow the classic browser taxonomy, as callers of the engines
// tend to think in these terms.
const (
	NoKind Kind = iota
	TypeErrorKind
	SyntaxErrorKind
	ReferenceErrorKind
)

func (k Kind) String() string {
	switch k {
	case TypeErrorKind:
		return "TypeError"
	case SyntaxErrorKind:
		return "SyntaxError"
	case ReferenceErrorKind:
		return "ReferenceError"
	}
	return "Error"
}

// Sentinels for use with errors.Is:
//
//     if errors.Is(err, tinyq.ErrSyntax) { … }
//
var (
	ErrType      = errors.New("type error")
	ErrSyntax    = errors.New("syntax error")
	ErrReference = errors.New("reference error")
)

func (k Kind) sentinel() error {
	switch k {
	case TypeErrorKind:
		return ErrType
	case SyntaxErrorKind:
		return ErrSyntax
	case ReferenceErrorKind:
		return ErrReference
	}
	return nil
}

// Error is the error type returned by public operations of tinyq packages.
// Op names the operation which detected the problem, Pos is a character position
// for syntax errors (-1 if not applicable).
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Pos  int
}

func (e *Error) Error() string {
	var s string
	if e.Op != "" {
		s = e.Kind.String() + " in " + e.Op + ": " + e.Msg
	} else {
		s = e.Kind.String() + ": " + e.Msg
	}
	if e.Pos >= 0 {
		s += fmt.Sprintf(" (at position %d)", e.Pos)
	}
	return s
}

// Is makes an *Error match its kind's sentinel.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// TypeError creates an error for an argument of unexpected type.
func TypeError(op string, format string, args ...interface{}) error {
	return withStack(&Error{Kind: TypeErrorKind, Op: op, Msg: fmt.Sprintf(format, args...), Pos: -1})
}

// SyntaxError creates an error for malformed input text. pos is the offending
// position within the input, or -1.
func SyntaxError(op string, pos int, format string, args ...interface{}) error {
	return withStack(&Error{Kind: SyntaxErrorKind, Op: op, Msg: fmt.Sprintf(format, args...), Pos: pos})
}

// ReferenceError creates an error for a reference to something which does not exist
// or must not be referenced.
func ReferenceError(op string, format string, args ...interface{}) error {
	return withStack(&Error{Kind: ReferenceErrorKind, Op: op, Msg: fmt.Sprintf(format, args...), Pos: -1})
}

func withStack(e *Error) error {
	tracer().Debugf("%s", e.Error())
	return goerrors.Wrap(e, 2)
}

// KindOf returns the kind of a tinyq error, or NoKind for foreign errors and nil.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return NoKind
}

// ErrorStack returns the error message together with the stack trace recorded
// when the error was created, if available.
func ErrorStack(err error) string {
	if err == nil {
		return ""
	}
	var g *goerrors.Error
	if errors.As(err, &g) {
		return g.ErrorStack()
	}
	return err.Error()
}
