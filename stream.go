// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package facet

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"
)

// Streamer receives banners, facet results and summaries as they are
// produced. When brk is true a break follows the rendered data.
type Streamer interface {
	Stream(data any, brk bool)
	Break()
}

// minLineLength bounds the wrap width once the indentation is subtracted.
const minLineLength = 20

// ConsoleStream renders through a PlaintextFilter and writes indented,
// wrapped lines to an io.Writer. It is safe for concurrent use.
type ConsoleStream struct {
	mu     sync.Mutex
	w      io.Writer
	opts   *Options
	filter *PlaintextFilter
}

var _ Streamer = (*ConsoleStream)(nil)

// NewConsoleStream returns a stream writing to w with the indentation, line
// length and show conditions of opts.
func NewConsoleStream(w io.Writer, opts *Options) *ConsoleStream {
	return &ConsoleStream{w: w, opts: opts, filter: NewPlaintextFilter(opts)}
}

// Stream implements Streamer.
func (s *ConsoleStream) Stream(data any, brk bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	emitted := false
	err := s.filter.Transform(data, func(l Line) {
		emitted = true
		prefix := strings.Repeat(s.opts.IndentString, l.Indent)
		for _, text := range strings.Split(l.Text, "\n") {
			for _, chunk := range wrap(text, s.width(prefix)) {
				fmt.Fprintf(s.w, "%s%s\n", prefix, chunk)
			}
		}
	})
	if err != nil && s.opts.Logger != nil {
		s.opts.Logger.Infof("facet: %v", err)
	}
	if brk && emitted {
		fmt.Fprintln(s.w)
	}
}

// Break implements Streamer.
func (s *ConsoleStream) Break() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w)
}

func (s *ConsoleStream) width(prefix string) int {
	if s.opts.LineCharLength <= 0 {
		return 0
	}
	return max(s.opts.LineCharLength-utf8.RuneCountInString(prefix), minLineLength)
}

// wrap splits text into chunks of at most width runes. A width of zero
// disables wrapping.
func wrap(text string, width int) []string {
	if width <= 0 || utf8.RuneCountInString(text) <= width {
		return []string{text}
	}
	var out []string
	runes := []rune(text)
	for len(runes) > width {
		out = append(out, string(runes[:width]))
		runes = runes[width:]
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}

// NilStream discards everything.
type NilStream struct{}

var _ Streamer = NilStream{}

// Stream implements Streamer.
func (NilStream) Stream(any, bool) {}

// Break implements Streamer.
func (NilStream) Break() {}
