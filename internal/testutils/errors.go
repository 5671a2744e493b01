// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package testutils

// CheckErr returns v, panicking if err is set. It shortens tests of calls
// that are not expected to fail:
//
//	r := testutils.CheckErr(facet.Register("a"))
func CheckErr[V any](v V, err error) V {
	if err != nil {
		panic(err)
	}
	return v
}
