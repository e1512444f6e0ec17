package container

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidConstructor is returned when a value handed to the Registry
	// cannot serve as a constructor.
	ErrInvalidConstructor = errors.New("container: invalid constructor")

	// ErrDuplicate is returned when a symbolic name is registered twice.
	ErrDuplicate = errors.New("container: duplicate registration")

	// ErrSelfAlias is returned when an alias would point back at itself.
	ErrSelfAlias = errors.New("container: alias points to itself")
)

// ResolutionKind classifies a ResolutionError.
type ResolutionKind string

const (
	// UnknownSymbolicName: the name parses but nothing is registered under it.
	UnknownSymbolicName ResolutionKind = "unknown symbolic name"

	// InvalidSymbolicName: the name is not dot notation at all. This is what a
	// primitive or unnamed constructor parameter turns into when nothing
	// overrides it.
	InvalidSymbolicName ResolutionKind = "invalid symbolic name"
)

// ResolutionError means a symbolic name could not be mapped to a type.
type ResolutionError struct {
	// Name is the symbolic name as requested.
	Name string
	// Param is the constructor parameter that asked for Name; empty for the
	// top-level Make call.
	Param string
	// Path is the chain of types under construction when the failure happened.
	Path []string
	Kind ResolutionKind
	Err  error
}

func (e ResolutionError) Error() string {
	var b strings.Builder
	b.WriteString("container: cannot resolve " + strconv.Quote(e.Name) + " (" + string(e.Kind) + ")")
	if e.Param != "" {
		b.WriteString(" for parameter " + strconv.Quote(e.Param))
	}
	if len(e.Path) > 0 {
		b.WriteString(" of " + strings.Join(e.Path, " -> "))
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e ResolutionError) Unwrap() error { return e.Err }

// ConstructionError means a type was resolved but could not be instantiated
// with the assembled arguments.
type ConstructionError struct {
	Name string
	Path []string
	Err  error
}

func (e ConstructionError) Error() string {
	msg := "container: cannot construct " + strconv.Quote(e.Name)
	if len(e.Path) > 1 {
		msg += " (" + strings.Join(e.Path, " -> ") + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e ConstructionError) Unwrap() error { return e.Err }

// CyclicDependencyError means a type reappeared in its own ancestor chain.
// Path starts and ends with the repeated type.
type CyclicDependencyError struct {
	Path []string
}

func (e CyclicDependencyError) Error() string {
	return "container: dependency cycle: " + strings.Join(e.Path, " -> ")
}

// TypeMismatchError means Resolve[T] got an instance that is not a T.
type TypeMismatchError struct {
	Name     string
	Expected string
	Actual   string
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("container: %q resolved to %s, expected %s", e.Name, e.Actual, e.Expected)
}
