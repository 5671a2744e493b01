// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package testutils

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

// Logger is a facet.Logger that writes to a testing.TB.
type Logger struct {
	T testing.TB
}

func (l Logger) Infof(format string, args ...interface{}) {
	l.T.Logf(format, args...)
}

func (l Logger) Fatalf(format string, args ...interface{}) {
	l.T.Helper()
	l.T.Fatalf(format, args...)
}

// Recorder is a facet.Logger that keeps what it is given, one message per
// line. Fatalf panics with the message. It is safe for concurrent use.
type Recorder struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (r *Recorder) Infof(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(&r.buf, format, args...)
	r.buf.WriteByte('\n')
}

func (r *Recorder) Fatalf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}

// String returns the recorded messages.
func (r *Recorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.String()
}
