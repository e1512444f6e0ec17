package container

import (
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"

	"github.com/km-arc/go-artax/framework/notation"
)

// In marks a parameter object. A constructor whose only parameter is a
// struct embedding In has one injected parameter per exported field:
//
//	type ServiceParams struct {
//	    container.In
//
//	    Logger Logger               // parameter "logger"
//	    Mailer *Mailer `name:"mail"` // parameter "mail"
//	}
//
//	func NewService(p ServiceParams) *Service
type In struct{}

var (
	inType    = reflect.TypeOf(In{})
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// Type is the concrete, instantiable thing a symbolic name resolves to.
type Type struct {
	name string

	// ctor is invalid for types registered without a constructor; those are
	// built with reflect.New(elem).
	ctor  reflect.Value
	elem  reflect.Type
	out   reflect.Type
	fails bool // ctor returns (T, error)

	// params names positional constructor parameters.
	params []string
	// object is the parameter-object struct when ctor takes one.
	object reflect.Type
}

// Name returns the canonical symbolic name the type was registered under.
func (t *Type) Name() string { return t.name }

// Out returns the Go type the constructor produces.
func (t *Type) Out() reflect.Type { return t.out }

// ParameterSpec describes one constructor parameter.
type ParameterSpec struct {
	Name string
	// DeclaredType is the symbolic name of the parameter's Go type, used when
	// neither an override nor a configured mapping applies.
	DeclaredType string
	Type         reflect.Type

	field []int // index into the parameter object, if any
}

// newType validates ctor and wraps it.
func newType(name string, ctor any, params []string) (*Type, error) {
	v := reflect.ValueOf(ctor)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("%w: %T is not a function", ErrInvalidConstructor, ctor)
	}
	ft := v.Type()
	if ft.IsVariadic() {
		return nil, fmt.Errorf("%w: %s is variadic", ErrInvalidConstructor, ft)
	}
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		return nil, fmt.Errorf("%w: %s must return T or (T, error)", ErrInvalidConstructor, ft)
	}

	t := &Type{name: name, ctor: v, out: ft.Out(0), fails: ft.NumOut() == 2}
	if ft.NumIn() == 1 && isParamObject(ft.In(0)) {
		if len(params) > 0 {
			return nil, fmt.Errorf("%w: %s takes a parameter object, names come from its fields", ErrInvalidConstructor, ft)
		}
		t.object = ft.In(0)
	} else {
		if len(params) != ft.NumIn() {
			return nil, fmt.Errorf("%w: %s needs %d parameter names, got %d", ErrInvalidConstructor, ft, ft.NumIn(), len(params))
		}
		t.params = append([]string(nil), params...)
	}

	seen := make(map[string]bool)
	for _, p := range parseConstructorArgs(t) {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: %s has an empty parameter name", ErrInvalidConstructor, ft)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: %s repeats parameter name %q", ErrInvalidConstructor, ft, p.Name)
		}
		seen[p.Name] = true
	}
	return t, nil
}

// newBareType wraps a type that has no constructor.
func newBareType(name string, sample any) (*Type, error) {
	rt := reflect.TypeOf(sample)
	if rt == nil {
		return nil, fmt.Errorf("%w: nil sample", ErrInvalidConstructor)
	}
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() == reflect.Interface || rt.Kind() == reflect.Func {
		return nil, fmt.Errorf("%w: %s cannot be instantiated without a constructor", ErrInvalidConstructor, rt)
	}
	return &Type{name: name, elem: rt, out: reflect.PointerTo(rt)}, nil
}

func isParamObject(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type == inType {
			return true
		}
	}
	return false
}

// parseConstructorArgs lists t's constructor parameters in declaration order.
// A type without a constructor, or with a zero-argument one, has none.
func parseConstructorArgs(t *Type) []ParameterSpec {
	if !t.ctor.IsValid() {
		return nil
	}
	if t.object != nil {
		var specs []ParameterSpec
		for i := 0; i < t.object.NumField(); i++ {
			f := t.object.Field(i)
			if (f.Anonymous && f.Type == inType) || !f.IsExported() {
				continue
			}
			name := f.Tag.Get("name")
			if name == "" {
				name = lowerFirst(f.Name)
			}
			specs = append(specs, ParameterSpec{
				Name:         name,
				DeclaredType: notation.FromType(f.Type),
				Type:         f.Type,
				field:        f.Index,
			})
		}
		return specs
	}

	ft := t.ctor.Type()
	specs := make([]ParameterSpec, ft.NumIn())
	for i := range specs {
		specs[i] = ParameterSpec{
			Name:         t.params[i],
			DeclaredType: notation.FromType(ft.In(i)),
			Type:         ft.In(i),
		}
	}
	return specs
}

// construct invokes the constructor. args line up with specs.
func (t *Type) construct(specs []ParameterSpec, args []reflect.Value) (instance any, err error) {
	if !t.ctor.IsValid() {
		return reflect.New(t.elem).Interface(), nil
	}

	in := args
	if t.object != nil {
		obj := reflect.New(t.object).Elem()
		for i, spec := range specs {
			obj.FieldByIndex(spec.field).Set(args[i])
		}
		in = []reflect.Value{obj}
	}
	if len(in) != t.ctor.Type().NumIn() {
		return nil, fmt.Errorf("constructor takes %d arguments, got %d", t.ctor.Type().NumIn(), len(in))
	}

	defer func() {
		if r := recover(); r != nil {
			instance, err = nil, fmt.Errorf("constructor panicked: %v", r)
		}
	}()
	out := t.ctor.Call(in)
	if t.fails && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

// argValue converts a resolved value into an argument for spec.
func argValue(spec ParameterSpec, v any) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(spec.Type), nil
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(spec.Type) {
		return reflect.Value{}, fmt.Errorf("parameter %q: %s is not assignable to %s", spec.Name, rv.Type(), spec.Type)
	}
	return rv, nil
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}
