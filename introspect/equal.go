// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package introspect

// Equal reports whether lhs and rhs are structurally equal: same types, and
// recursively equal elements, entries or fields. Object identity is ignored,
// so two distinct instances with equal fields are equal.
//
// Equal terminates on cyclic values. Once either side's identity is
// revisited, the comparison at that position falls back to identity
// equality, so two structurally different cyclic graphs may compare equal
// past that point.
//
// Mappings are equal when they have the same number of entries and every key
// of lhs maps to an equal value in rhs. A key missing from rhs compares
// against the absent value; the key sets are not compared independently.
func Equal(lhs, rhs any) bool {
	var visited IdentitySet
	visited.Init()
	return equal(Resolve(lhs), Resolve(rhs), &visited)
}

func equal(l, r Value, visited *IdentitySet) bool {
	if l.typ != r.typ || l.class != r.class {
		return false
	}
	if visited.Contains(l.id) || visited.Contains(r.id) {
		return sameReference(l, r)
	}
	if l.class != Leaf {
		visited.Add(l.id)
		visited.Add(r.id)
	}

	switch l.class {
	case Sequence:
		if l.Len() != r.Len() {
			return false
		}
		for i := range l.Len() {
			if !equal(l.Index(i), r.Index(i), visited) {
				return false
			}
		}
	case Mapping:
		if l.Len() != r.Len() {
			return false
		}
		for _, e := range l.Entries() {
			rv, _ := r.Lookup(e)
			if !equal(e.Value, rv, visited) {
				return false
			}
		}
	case Structured:
		return equalFields(l, r, visited)
	default:
		return LeafEqual(l, r)
	}
	return true
}

// equalFields compares two structured values. The shape of both values is
// checked before recursing into any composite field.
func equalFields(l, r Value, visited *IdentitySet) bool {
	lf, rf := l.Fields(), r.Fields()
	if len(lf) != len(rf) {
		return false
	}
	byName := make(map[string]Value, len(rf))
	for _, f := range rf {
		byName[f.Name] = f.Value
	}
	if len(byName) != len(lf) {
		return false
	}
	var pending [][2]Value
	for _, f := range lf {
		rv, ok := byName[f.Name]
		if !ok {
			return false
		}
		if f.Value.typ != rv.typ || f.Value.class != rv.class {
			return false
		}
		if f.Value.class == Leaf {
			if !LeafEqual(f.Value, rv) {
				return false
			}
			continue
		}
		pending = append(pending, [2]Value{f.Value, rv})
	}
	for _, p := range pending {
		if !equal(p[0], p[1], visited) {
			return false
		}
	}
	return true
}

func sameReference(l, r Value) bool {
	if !l.id.IsZero() || !r.id.IsZero() {
		return l.id == r.id
	}
	return l.class == Leaf && LeafEqual(l, r)
}

// LeafEqual compares two leaf values by their normalized form. The values'
// types are not compared.
func LeafEqual(l, r Value) bool {
	return l.Leaf() == r.Leaf()
}
