// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package introspect

import (
	"fmt"
	"reflect"

	"github.com/cockroachdb/swiss"
)

// Identity is an opaque token distinguishing composite instances. Two values
// have the same identity iff they are the same reference of the same type.
// The zero Identity belongs to values that are not reachable through a
// reference; such values cannot take part in a cycle.
type Identity struct {
	typ reflect.Type
	ptr uintptr
	// n disambiguates slices sharing a backing array.
	n int
}

func identityOf(rv reflect.Value) Identity {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		if rv.IsNil() {
			return Identity{}
		}
		return Identity{typ: rv.Type(), ptr: rv.Pointer()}
	case reflect.Slice:
		if rv.IsNil() {
			return Identity{}
		}
		return Identity{typ: rv.Type(), ptr: rv.Pointer(), n: rv.Len()}
	}
	if rv.CanAddr() {
		return Identity{typ: rv.Type(), ptr: rv.UnsafeAddr()}
	}
	return Identity{}
}

// IsZero returns true for the identity of unreferenced values.
func (id Identity) IsZero() bool { return id.ptr == 0 }

// String implements fmt.Stringer.
func (id Identity) String() string {
	if id.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%#x", id.ptr)
}

// IdentitySet is the visited set threaded through one recursive walk. The
// zero identity is never a member.
type IdentitySet struct {
	m swiss.Map[Identity, struct{}]
}

// Init initializes an empty set.
func (s *IdentitySet) Init() {
	s.m.Init(16)
}

// Contains returns true if id was added to the set.
func (s *IdentitySet) Contains(id Identity) bool {
	if id.IsZero() {
		return false
	}
	_, ok := s.m.Get(id)
	return ok
}

// Add adds id to the set.
func (s *IdentitySet) Add(id Identity) {
	if id.IsZero() {
		return
	}
	s.m.Put(id, struct{}{})
}

// Len returns the number of identities in the set.
func (s *IdentitySet) Len() int {
	return s.m.Len()
}
