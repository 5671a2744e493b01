// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package treeprinter renders hierarchies as indented text trees:
//
//	root
//	├── a
//	│   └── a1
//	└── b
package treeprinter

import (
	"fmt"
	"strings"
)

type node struct {
	text     string
	children []int
}

type tree struct {
	nodes []node
}

// Node is a handle to a node of a tree under construction. The Node returned
// by New is an invisible root; its children are printed without connectors.
type Node struct {
	t   *tree
	idx int
}

// New creates a new tree and returns its invisible root.
func New() Node {
	t := &tree{nodes: []node{{}}}
	return Node{t: t, idx: 0}
}

// Child adds a child node with the given text. Multi-line text is printed
// with the continuation lines aligned under the first.
func (n Node) Child(text string) Node {
	idx := len(n.t.nodes)
	n.t.nodes = append(n.t.nodes, node{text: text})
	n.t.nodes[n.idx].children = append(n.t.nodes[n.idx].children, idx)
	return Node{t: n.t, idx: idx}
}

// Childf adds a child node with formatted text.
func (n Node) Childf(format string, args ...interface{}) Node {
	return n.Child(fmt.Sprintf(format, args...))
}

// String renders the whole tree, regardless of which node it is called on.
func (n Node) String() string {
	var sb strings.Builder
	for _, c := range n.t.nodes[0].children {
		n.t.format(&sb, c, "", "")
	}
	return sb.String()
}

func (t *tree) format(sb *strings.Builder, idx int, first, rest string) {
	lines := strings.Split(t.nodes[idx].text, "\n")
	for i, l := range lines {
		if i == 0 {
			sb.WriteString(first)
		} else {
			sb.WriteString(rest)
		}
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	children := t.nodes[idx].children
	for i, c := range children {
		if i == len(children)-1 {
			t.format(sb, c, rest+"└── ", rest+"    ")
		} else {
			t.format(sb, c, rest+"├── ", rest+"│   ")
		}
	}
}
