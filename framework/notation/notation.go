// Package notation implements the dot notation used to name injectable
// types: "app.service", "zap.Logger", "mail.smtpTransport".
//
// A symbolic name has at least two dot-separated segments. Each segment
// starts with a letter or underscore and continues with letters, digits,
// underscores or dashes. Names are case-insensitive; Canonical returns the
// lower-cased form used as a lookup key.
package notation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// ErrInvalidName is returned by Parse for strings that are not symbolic names.
var ErrInvalidName = errors.New("notation: invalid symbolic name")

// Parse validates name and returns its canonical form.
//
//	notation.Parse("App.FileLogger") // "app.filelogger", nil
//	notation.Parse("string")         // "", ErrInvalidName
func Parse(name string) (string, error) {
	name = strings.TrimSpace(name)
	segments := strings.Split(name, ".")
	if len(segments) < 2 {
		return "", fmt.Errorf("%w: %q needs at least two segments", ErrInvalidName, name)
	}
	for _, seg := range segments {
		if !validSegment(seg) {
			return "", fmt.Errorf("%w: %q has bad segment %q", ErrInvalidName, name, seg)
		}
	}
	return Canonical(name), nil
}

// Valid reports whether name parses.
func Valid(name string) bool {
	_, err := Parse(name)
	return err == nil
}

// Canonical lower-cases name without validating it.
func Canonical(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FromType returns the symbolic name of a Go type: one level of pointer is
// removed and the type is named "<package>.<Type>", using the last element
// of its import path as the package.
//
//	FromType(reflect.TypeOf(&app.FileLogger{})) // "app.FileLogger"
//
// Predeclared and unnamed types keep their Go spelling ("string", "[]int"),
// which never parses as a symbolic name.
func FromType(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	pkg := t.PkgPath()
	if i := strings.LastIndex(pkg, "/"); i >= 0 {
		pkg = pkg[i+1:]
	}
	// Generic instantiations carry their type arguments in Name().
	if strings.ContainsRune(t.Name(), '[') {
		return t.String()
	}
	return pkg + "." + t.Name()
}

func validSegment(seg string) bool {
	if seg == "" {
		return false
	}
	for i, r := range seg {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '-'):
		default:
			return false
		}
	}
	return true
}
