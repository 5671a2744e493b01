// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package facet

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/kr/pretty"
)

// A Producer computes a value for a clause. A producer raises when it returns
// a non-nil error or panics.
type Producer func() (any, error)

// Val returns a Producer of v.
func Val(v any) Producer {
	return func() (any, error) { return v, nil }
}

// Fn returns a Producer calling f.
func Fn[T any](f func() T) Producer {
	return func() (any, error) { return f(), nil }
}

// FnErr returns a Producer calling f. A non-nil error raises.
func FnErr[T any](f func() (T, error)) Producer {
	return func() (any, error) {
		v, err := f()
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

// A Projector derives a new subject from the current one.
type Projector func(subject any) (any, error)

// Proj returns a Projector calling f on the subject. A subject that is not a
// T raises.
func Proj[T, U any](f func(T) U) Projector {
	return ProjErr(func(v T) (U, error) { return f(v), nil })
}

// ProjErr is like Proj for a function that can fail.
func ProjErr[T, U any](f func(T) (U, error)) Projector {
	return func(subject any) (any, error) {
		var v T
		if subject != nil || !nilable(reflect.TypeFor[T]()) {
			var ok bool
			if v, ok = subject.(T); !ok {
				return nil, errors.Newf("pick: subject of type %T is not a %s", subject, reflect.TypeFor[T]())
			}
		}
		u, err := f(v)
		if err != nil {
			return nil, err
		}
		return u, nil
	}
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

// TypeDescriptor is the type argument of IsType.
type TypeDescriptor interface {
	// Matches returns true if v is an instance of the described type.
	Matches(v any) bool
	String() string
}

// A TypeSource produces the TypeDescriptor for IsType.
type TypeSource func() (TypeDescriptor, error)

type typeDescriptor struct {
	name    string
	matches func(any) bool
}

func (d typeDescriptor) Matches(v any) bool { return d.matches(v) }
func (d typeDescriptor) String() string     { return d.name }

func staticType(d TypeDescriptor) TypeSource {
	return func() (TypeDescriptor, error) { return d, nil }
}

// TypeOf describes T. For an interface T, any value implementing T matches.
func TypeOf[T any]() TypeSource {
	return staticType(typeDescriptor{
		name: reflect.TypeFor[T]().String(),
		matches: func(v any) bool {
			_, ok := v.(T)
			return ok
		},
	})
}

// ErrorType describes errors that have a T in their chain.
func ErrorType[T error]() TypeSource {
	return staticType(typeDescriptor{
		name: reflect.TypeFor[T]().String(),
		matches: func(v any) bool {
			err, ok := v.(error)
			if !ok {
				return false
			}
			var target T
			return errors.As(err, &target)
		},
	})
}

// ErrorIs describes errors that have target in their chain.
func ErrorIs(target error) TypeSource {
	return staticType(typeDescriptor{
		name: "errors.Is(" + target.Error() + ")",
		matches: func(v any) bool {
			err, ok := v.(error)
			return ok && errors.Is(err, target)
		},
	})
}

// TypeFor describes t. For an interface type, any value implementing it
// matches.
func TypeFor(t reflect.Type) TypeSource {
	return staticType(typeDescriptor{
		name: t.String(),
		matches: func(v any) bool {
			if v == nil {
				return false
			}
			vt := reflect.TypeOf(v)
			if t.Kind() == reflect.Interface {
				return vt.Implements(t)
			}
			return vt == t
		},
	})
}

// call invokes f, converting a panic into an error.
func call[T any](f func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	return f()
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return errors.Wrap(err, "panic")
	}
	return errors.Newf("panic: %s", pretty.Sprint(r))
}
