/*
Package tree implements a general purpose tree of nodes carrying a payload.

Status

Work in progress.

Overview

The tree is used for structures derived from a DOM: the styled tree and the
tree of layout boxes. Trees are built once and then walked, either top-down
(pre-order, parents before children) or bottom-up (post-order, children before
parents, as needed to compute heights from content).

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tinyq.tree'.
func tracer() tracing.Trace {
	return tracing.Select("tinyq.tree")
}

// Predicate is a function type to match against nodes of a tree.
type Predicate[T comparable] func(node *Node[T]) bool

// Action is a function type to operate on tree nodes.
// An action may return ErrSkipChildren during a top-down walk.
type Action[T comparable] func(node *Node[T]) error

// ErrSkipChildren signals a top-down walk not to descend into the children of
// the current node.
var ErrSkipChildren = errors.New("skip children")

// Whatever is a predicate to match anything (see type Predicate).
func Whatever[T comparable]() Predicate[T] {
	return func(*Node[T]) bool {
		return true
	}
}

// NodeIsLeaf is a predicate to match leafs of a tree.
func NodeIsLeaf[T comparable]() Predicate[T] {
	return func(n *Node[T]) bool {
		return n.ChildCount() == 0
	}
}

// TopDown calls action for node and all of its descendants, parents first.
// The walk stops at the first error, which is returned.
func (node *Node[T]) TopDown(action Action[T]) error {
	if err := action(node); err != nil {
		if errors.Is(err, ErrSkipChildren) {
			return nil
		}
		tracer().Debugf("top-down walk stopped: %v", err)
		return err
	}
	for _, ch := range node.Children() {
		if err := ch.TopDown(action); err != nil {
			return err
		}
	}
	return nil
}

// BottomUp calls action for all descendants of node and then for node itself,
// children first. The walk stops at the first error, which is returned.
func (node *Node[T]) BottomUp(action Action[T]) error {
	for _, ch := range node.Children() {
		if err := ch.BottomUp(action); err != nil {
			return err
		}
	}
	return action(node)
}

// AncestorWith returns the nearest ancestor of node matching predicate, or nil.
// node itself is not considered.
func (node *Node[T]) AncestorWith(predicate Predicate[T]) *Node[T] {
	for a := node.Parent(); a != nil; a = a.Parent() {
		if predicate(a) {
			return a
		}
	}
	return nil
}

// DescendentsWith returns all descendants of node matching predicate, in
// pre-order. node itself is not considered.
func (node *Node[T]) DescendentsWith(predicate Predicate[T]) []*Node[T] {
	var r []*Node[T]
	for _, ch := range node.Children() {
		_ = ch.TopDown(func(n *Node[T]) error {
			if predicate(n) {
				r = append(r, n)
			}
			return nil
		})
	}
	return r
}
