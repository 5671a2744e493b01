// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package treeprinter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTreePrinter(t *testing.T) {
	tp := New()
	root := tp.Child("root")
	a := root.Child("a")
	a.Childf("a%d", 1)
	a.Child("a2\nsecond line")
	root.Child("b").Child("b1")
	tp.Child("other")

	expected := `root
├── a
│   ├── a1
│   └── a2
│       second line
└── b
    └── b1
other
`
	require.Equal(t, expected, tp.String())
	require.Equal(t, expected, a.String())
}
