// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package introspect classifies arbitrary Go values for structural
// comparison.
//
// Every value falls in one of four classes: a leaf value, a sequence (slices
// and arrays), a mapping (maps) or a structured object exposing named fields.
// Interfaces are unwrapped and pointers are followed; the outermost reference
// becomes the value's Identity, which the recursive walkers in this package
// and in package snapshot use as a cycle guard.
//
// Structured objects enumerate their fields through the Describer contract.
// Structs that do not implement Describer are enumerated reflectively in
// declaration order.
package introspect

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"unsafe"

	"github.com/cockroachdb/redact"
)

// Class is the structural class of a value.
type Class uint8

const (
	// Leaf values have no members: booleans, numbers, strings, patterns, nil
	// and opaque references such as funcs and channels.
	Leaf Class = iota
	// Sequence values are slices and arrays.
	Sequence
	// Mapping values are maps.
	Mapping
	// Structured values expose named fields.
	Structured
	// Entry is never produced by Resolve. Snapshots use it for the synthetic
	// node that pairs a mapping key with its value.
	Entry
)

var classNames = [...]string{
	Leaf:       "leaf",
	Sequence:   "sequence",
	Mapping:    "mapping",
	Structured: "structured",
	Entry:      "entry",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("class(%d)", c)
}

// SafeFormat implements redact.SafeFormatter.
func (c Class) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(redact.SafeString(c.String()))
}

// Pattern is the normalized leaf form of a *regexp.Regexp. Patterns compare
// by their source text.
type Pattern string

func (p Pattern) String() string {
	return "/" + string(p) + "/"
}

var (
	describerType = reflect.TypeFor[Describer]()
	regexpType    = reflect.TypeFor[*regexp.Regexp]()
)

// Value is a reflected value resolved for comparison.
type Value struct {
	// rv is the resolved value: interfaces unwrapped and pointers followed,
	// except for describers and regexps which keep their reference.
	rv reflect.Value
	// typ is the dynamic type before pointer indirection. It is nil for an
	// absent value.
	typ       reflect.Type
	class     Class
	id        Identity
	describer Describer
}

// Resolve resolves v for comparison. A nil interface resolves to the absent
// value, which is a Leaf with a nil type.
func Resolve(v any) Value {
	return resolve(reflect.ValueOf(v))
}

func resolve(rv reflect.Value) Value {
	for rv.IsValid() && rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Value{}
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return Value{}
	}
	v := Value{rv: rv, typ: rv.Type()}
	if d, ok := asDescriber(rv); ok {
		v.describer = d
		v.class = Structured
		v.id = identityOf(rv)
		return v
	}
	if rv.Type() == regexpType {
		return v
	}
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			v.rv = rv
			return v
		}
		if v.id.IsZero() {
			v.id = identityOf(rv)
		}
		rv = rv.Elem()
	}
	v.rv = rv
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		v.class = Sequence
	case reflect.Map:
		v.class = Mapping
	case reflect.Struct:
		v.class = Structured
	case reflect.Interface:
		inner := resolve(rv)
		inner.typ = v.typ
		if !v.id.IsZero() {
			inner.id = v.id
		}
		return inner
	default:
		return v
	}
	if v.id.IsZero() {
		v.id = identityOf(rv)
	}
	return v
}

func asDescriber(rv reflect.Value) (Describer, bool) {
	if !rv.CanInterface() {
		return nil, false
	}
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false
	}
	if rv.Type().Implements(describerType) {
		return rv.Interface().(Describer), true
	}
	if rv.CanAddr() && reflect.PointerTo(rv.Type()).Implements(describerType) {
		return rv.Addr().Interface().(Describer), true
	}
	return nil, false
}

// IsAbsent returns true if the value is a nil interface.
func (v Value) IsAbsent() bool { return !v.rv.IsValid() }

// Class returns the structural class of the value.
func (v Value) Class() Class { return v.class }

// Type returns the dynamic type of the value, before pointer indirection.
func (v Value) Type() reflect.Type { return v.typ }

// TypeName returns the printable name of the value's type; "nil" for an
// absent value.
func (v Value) TypeName() string {
	if v.typ == nil {
		return "nil"
	}
	return v.typ.String()
}

// Kind returns the kind of the resolved value.
func (v Value) Kind() reflect.Kind { return v.rv.Kind() }

// Identity returns the identity of the value. Leaf values and composite
// values that are not reachable through a reference have a zero identity.
func (v Value) Identity() Identity { return v.id }

// Len returns the number of elements of a sequence or mapping.
func (v Value) Len() int {
	switch v.class {
	case Sequence, Mapping:
		return v.rv.Len()
	}
	return 0
}

// Index returns the i-th element of a sequence.
func (v Value) Index(i int) Value {
	return resolve(v.rv.Index(i))
}

// MapEntry is one key/value pair of a mapping.
type MapEntry struct {
	Key   Value
	Value Value
	raw   reflect.Value
}

// Entries returns the entries of a mapping ordered by the printable text of
// their keys, so that snapshots of equal maps line up.
func (v Value) Entries() []MapEntry {
	if v.class != Mapping {
		return nil
	}
	entries := make([]MapEntry, 0, v.rv.Len())
	iter := v.rv.MapRange()
	for iter.Next() {
		entries = append(entries, MapEntry{
			Key:   resolve(iter.Key()),
			Value: resolve(iter.Value()),
			raw:   iter.Key(),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Key.sortText() < entries[j].Key.sortText()
	})
	return entries
}

// Lookup returns the value stored in the mapping v under the key of e, which
// must come from a mapping of the same type.
func (v Value) Lookup(e MapEntry) (Value, bool) {
	if v.class != Mapping || !e.raw.IsValid() {
		return Value{}, false
	}
	got := v.rv.MapIndex(e.raw)
	if !got.IsValid() {
		return Value{}, false
	}
	return resolve(got), true
}

func (v Value) sortText() string {
	if v.class == Leaf {
		return v.TypeName() + " " + v.Text()
	}
	if v.rv.CanInterface() {
		return v.TypeName() + " " + fmt.Sprint(v.rv.Interface())
	}
	return v.TypeName()
}

// FieldValue is a resolved field of a structured value.
type FieldValue struct {
	Name   string
	Value  Value
	Shared bool
}

// Fields enumerates the fields of a structured value, through its Describer
// when it implements one.
func (v Value) Fields() []FieldValue {
	if v.class != Structured {
		return nil
	}
	if v.describer != nil {
		fields := v.describer.DescribeFields()
		out := make([]FieldValue, len(fields))
		for i, f := range fields {
			out[i] = FieldValue{Name: f.Name, Value: Resolve(f.Value), Shared: f.Shared}
		}
		return out
	}
	return reflectFields(v.rv)
}

// Leaf returns the normalized form of a leaf value. Normalized values are
// always comparable with ==: integers become int64, unsigned integers uint64,
// floats float64, regexps Pattern, and opaque references their address.
func (v Value) Leaf() any {
	rv := v.rv
	if !rv.IsValid() {
		return nil
	}
	if rv.Type() == regexpType {
		if rv.IsNil() {
			return nil
		}
		return Pattern(regexpOf(rv).String())
	}
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Complex64, reflect.Complex128:
		return rv.Complex()
	case reflect.String:
		return rv.String()
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Pointer, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		return rv.Pointer()
	}
	return nil
}

// Text returns the printable text of a leaf value. Strings are returned
// unquoted.
func (v Value) Text() string {
	leaf := v.Leaf()
	switch l := leaf.(type) {
	case nil:
		return "nil"
	case Pattern:
		return l.String()
	case string:
		return l
	case uintptr:
		return fmt.Sprintf("%#x", l)
	}
	if v.rv.CanInterface() {
		if s, ok := v.rv.Interface().(fmt.Stringer); ok {
			return s.String()
		}
	}
	return fmt.Sprint(leaf)
}

// Interface returns the underlying value when it may be used without
// violating visibility rules.
func (v Value) Interface() (any, bool) {
	if !v.rv.IsValid() {
		return nil, true
	}
	if !v.rv.CanInterface() {
		return nil, false
	}
	return v.rv.Interface(), true
}

func regexpOf(rv reflect.Value) *regexp.Regexp {
	if rv.CanInterface() {
		return rv.Interface().(*regexp.Regexp)
	}
	// Unexported fields cannot be converted through Interface.
	return (*regexp.Regexp)(unsafe.Pointer(rv.Pointer()))
}
