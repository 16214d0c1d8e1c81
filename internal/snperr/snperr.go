// Package snperr defines the error taxonomy shared by the model builder, the
// program loader, and the CLI front end.
//
// Every error constructed here carries a Kind and the Component that raised
// it, so the CLI boundary can format it as a single line,
// "ErrorType (Component): message", without needing to know anything about
// where in the pipeline the error came from.
package snperr

import "fmt"

// Kind identifies which branch of the error taxonomy an error belongs to.
type Kind string

const (
	// SyntaxError is raised by the lexer/parser collaborator. This package
	// does not itself construct SyntaxErrors (the lexer/parser lives
	// outside the core) but defines the Kind so a hosting front end can
	// report one using the same taxonomy.
	SyntaxError Kind = "SyntaxError"

	// TypeError is raised when a rule or channel argument has the wrong
	// value kind, e.g. a non-multiset value where a multiset was expected.
	TypeError Kind = "TypeError"

	// NameError is raised on reference to an unbound variable or undefined
	// identifier.
	NameError Kind = "NameError"

	// CircularSinapsisError is raised at build time when a channel is
	// declared from a neuron back to itself.
	CircularSinapsisError Kind = "CircularSinapsisError"

	// EnvValueError is raised at build time when a channel's source neuron
	// is the output sentinel, which may never emit.
	EnvValueError Kind = "EnvValueError"

	// UnexpectedError indicates an internal invariant was broken.
	UnexpectedError Kind = "UnexpectedError"
)

// Error is a taxonomy-tagged, component-scoped error. Its Error() method
// produces exactly the single-line format the CLI surface requires:
// "Kind (Component): message".
type Error struct {
	Kind      Kind
	Component string
	Message   string
	Wrapped   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Component, e.Message)
}

// Unwrap gives the error that e wraps, if it wraps one.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// New builds an Error of the given kind, attributed to component, with the
// given message.
func New(kind Kind, component, message string) error {
	return &Error{Kind: kind, Component: component, Message: message}
}

// Newf is like New but formats message from a format string and arguments.
func Newf(kind Kind, component, format string, a ...interface{}) error {
	return New(kind, component, fmt.Sprintf(format, a...))
}

// Wrap builds an Error of the given kind that wraps an existing error.
func Wrap(kind Kind, component string, wrapped error, message string) error {
	return &Error{Kind: kind, Component: component, Message: message, Wrapped: wrapped}
}

// TypeErrorf builds a TypeError attributed to component.
func TypeErrorf(component, format string, a ...interface{}) error {
	return Newf(TypeError, component, format, a...)
}

// NameErrorf builds a NameError attributed to component.
func NameErrorf(component, format string, a ...interface{}) error {
	return Newf(NameError, component, format, a...)
}

// CircularSinapsisErrorf builds a CircularSinapsisError attributed to
// component.
func CircularSinapsisErrorf(component, format string, a ...interface{}) error {
	return Newf(CircularSinapsisError, component, format, a...)
}

// EnvValueErrorf builds an EnvValueError attributed to component.
func EnvValueErrorf(component, format string, a ...interface{}) error {
	return Newf(EnvValueError, component, format, a...)
}

// UnexpectedErrorf builds an UnexpectedError attributed to component.
func UnexpectedErrorf(component, format string, a ...interface{}) error {
	return Newf(UnexpectedError, component, format, a...)
}
