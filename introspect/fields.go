// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package introspect

import "reflect"

// Field is a named member of a structured value.
type Field struct {
	Name  string
	Value any
	// Shared marks fields whose value belongs to the type rather than to the
	// instance. Snapshots list shared fields first.
	Shared bool
}

// Describer is implemented by types that enumerate their own fields for
// comparison and snapshots. The returned order is the display order; field
// names must be unique.
//
// Types that do not implement Describer but are structs are described by
// their exported and unexported fields in declaration order.
type Describer interface {
	DescribeFields() []Field
}

func reflectFields(rv reflect.Value) []FieldValue {
	if rv.Kind() != reflect.Struct {
		return nil
	}
	t := rv.Type()
	out := make([]FieldValue, 0, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Name == "_" {
			continue
		}
		out = append(out, FieldValue{Name: sf.Name, Value: resolve(rv.Field(i))})
	}
	return out
}
