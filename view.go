// Copyright (c) 2025 ime-tools
// SPDX-License-Identifier: MIT

package darts

import (
	"iter"

	"github.com/ime-tools/darts/internal/arena"
	"github.com/ime-tools/darts/internal/codemap"
)

// view is the shared traversal state behind both Trie (owned) and
// BorrowedTrie (zero-copy): a double-array node slice, its parallel
// sibling slice, and the code mapper. Every exported search method on
// Trie/BorrowedTrie is a thin, label-typed wrapper around a function
// here that works purely in terms of raw codes and node indices.
type view struct {
	nodes    []arena.Node
	siblings []uint32
	mapper   *codemap.Mapper
}

// traverse is the one shared transition of the trie's DFA: from state,
// follow code to base(state)⊕code, gated by the check predicate from
// spec §4.5 -- the destination must be in bounds, must record state as
// its parent, and must be a leaf if and only if code is the terminal
// symbol.
func (v *view) traverse(state, code uint32) (uint32, bool) {
	next := v.nodes[state].BaseRaw() ^ code
	if int(next) >= len(v.nodes) {
		return 0, false
	}
	n := v.nodes[next]
	if n.Parent() != state {
		return 0, false
	}
	if n.IsLeaf() != (code == 0) {
		return 0, false
	}
	return next, true
}

// exactMatch walks codes from the root and, on full consumption, takes
// one more terminal-symbol step to reach the value-carrying leaf.
func (v *view) exactMatch(codes []uint32) (uint32, bool) {
	state := uint32(0)
	for _, c := range codes {
		if c == 0 {
			return 0, false
		}
		next, ok := v.traverse(state, c)
		if !ok {
			return 0, false
		}
		state = next
	}
	leaf, ok := v.traverse(state, 0)
	if !ok {
		return 0, false
	}
	return v.nodes[leaf].ValueID(), true
}

// commonPrefixMatches yields (prefix length in codes, value id) for every
// prefix of codes that is itself a stored key, in ascending length order.
func (v *view) commonPrefixMatches(codes []uint32) iter.Seq2[int, uint32] {
	return func(yield func(int, uint32) bool) {
		state := uint32(0)
		for i, c := range codes {
			if v.nodes[state].HasLeaf() {
				leaf, ok := v.traverse(state, 0)
				if ok {
					if !yield(i, v.nodes[leaf].ValueID()) {
						return
					}
				}
			}
			if c == 0 {
				return
			}
			next, ok := v.traverse(state, c)
			if !ok {
				return
			}
			state = next
		}
		if v.nodes[state].HasLeaf() {
			if leaf, ok := v.traverse(state, 0); ok {
				yield(len(codes), v.nodes[leaf].ValueID())
			}
		}
	}
}

// firstChild finds the head of node p's non-terminal sibling chain by
// probing codes in ascending order: the chain is built (see linkSiblings)
// in the same ascending-code order, so the minimum-code child this scan
// finds is always the chain's actual head. Frequency-ordered codes mean
// real children cluster at small offsets from base(p), so this scan is
// usually short despite being bounded by the full alphabet in the worst
// case. The terminal (code 0) child, if any, is never returned here: it
// is handled separately via HasLeaf, since it carries no sub-trie of its
// own.
func (v *view) firstChild(p uint32) (uint32, bool) {
	for c := uint32(1); c < v.mapper.AlphabetSize(); c++ {
		if next, ok := v.traverse(p, c); ok {
			return next, true
		}
	}
	return 0, false
}

// nextSibling returns the next non-terminal child of a chain, starting
// at node, the entry a caller read from siblings[child]: node itself if
// it is not a leaf, else the first non-leaf entry after it; it reports
// false at the end of the chain (0). Since linkSiblings installs in ascending-code
// order and the terminal symbol is code 0, the one terminal-symbol leaf
// a chain may carry is always its head rather than somewhere in the
// middle -- but the skip below is kept regardless, since it is a cheap,
// always-correct guard rather than a claim about where in the chain a
// leaf can land.
func (v *view) nextSibling(node uint32) (uint32, bool) {
	for node != 0 && v.nodes[node].IsLeaf() {
		node = v.siblings[node]
	}
	return node, node != 0
}

// predictiveMatches yields (full code sequence, value id) for every
// stored key reachable from anchor, in sibling-chain DFS order: a node's
// own terminal leaf first, then its first child, then that child's
// siblings in chain order, recursively.
func (v *view) predictiveMatches(anchor uint32, prefix []uint32) iter.Seq2[[]uint32, uint32] {
	return func(yield func([]uint32, uint32) bool) {
		stack := append([]uint32(nil), prefix...)
		var walk func(node uint32) bool
		walk = func(node uint32) bool {
			if v.nodes[node].HasLeaf() {
				leaf, ok := v.traverse(node, 0)
				if ok && !yield(append([]uint32(nil), stack...), v.nodes[leaf].ValueID()) {
					return false
				}
			}

			child, ok := v.firstChild(node)
			for ok {
				stack = append(stack, v.childCode(node, child))
				if !walk(child) {
					return false
				}
				stack = stack[:len(stack)-1]

				child, ok = v.nextSibling(v.siblings[child])
			}
			return true
		}
		walk(anchor)
	}
}

// childCode recovers the internal code that leads from parent to child,
// since the sibling chain stores node indices, not codes: child ==
// base(parent)⊕code, so code == base(parent)⊕child.
func (v *view) childCode(parent, child uint32) uint32 {
	return v.nodes[parent].BaseRaw() ^ child
}

// probe reports the value carried at the end of codes (if any) and
// whether that node has at least one non-terminal child.
func (v *view) probe(codes []uint32) (value uint32, hasValue, hasChildren bool) {
	state := uint32(0)
	for _, c := range codes {
		if c == 0 {
			return 0, false, false
		}
		next, ok := v.traverse(state, c)
		if !ok {
			return 0, false, false
		}
		state = next
	}

	n := v.nodes[state]
	if n.HasLeaf() {
		leaf, ok := v.traverse(state, 0)
		if ok {
			value, hasValue = v.nodes[leaf].ValueID(), true
			_, hasChildren = v.firstChild(state)
		}
		return value, hasValue, hasChildren
	}

	// No terminal child: state itself is a leaf (no children at all) or
	// an interior node, which the builder never creates without at
	// least one non-terminal child.
	return 0, false, !n.IsLeaf()
}

// count walks the sibling chains from the root counting nodes whose
// HasLeaf bit is set; each has exactly one terminal-symbol leaf, so this
// is the number of keys the trie was built from.
func (v *view) count() uint32 {
	var n uint32
	var walk func(node uint32)
	walk = func(node uint32) {
		if v.nodes[node].HasLeaf() {
			n++
		}
		child, ok := v.firstChild(node)
		for ok {
			walk(child)
			child, ok = v.nextSibling(v.siblings[child])
		}
	}
	walk(0)
	return n
}
