// Copyright (c) 2025 ime-tools
// SPDX-License-Identifier: MIT

package darts

import (
	"fmt"
	"sort"

	"github.com/ime-tools/darts/internal/arena"
	"github.com/ime-tools/darts/internal/codemap"
)

// maxValueID is the largest value identifier the 31-bit leaf payload can
// carry; Build rejects input sets larger than this.
const maxValueID = 1<<31 - 1

// encodedKey is one input key translated to internal codes, with a
// terminal code 0 appended, plus the value identifier implicitly
// assigned by its position in the sorted input.
type encodedKey struct {
	codes   []uint32
	valueID uint32
}

// Build packs sortedKeys into a new, immutable Trie. sortedKeys must be
// strictly ascending under label-tuple order with no duplicates; key i
// is implicitly assigned value identifier i. Violating either contract,
// or supplying more than 2^31-1 keys, is a programmer error and panics
// rather than returning an error, matching the rest of the package's
// stance on unrecoverable build-time contract violations.
func Build[L Label](alphabet Alphabet[L], sortedKeys [][]L) *Trie[L] {
	if len(sortedKeys) > maxValueID {
		panic(fmt.Sprintf("darts: %d keys exceeds the 31-bit value id limit", len(sortedKeys)))
	}
	validateSorted(sortedKeys)

	mapper := trainMapper(alphabet, sortedKeys)
	encoded := make([]encodedKey, len(sortedKeys))
	for i, key := range sortedKeys {
		codes := make([]uint32, len(key)+1)
		for j, l := range key {
			codes[j] = mapper.Encode(toUint32(l))
		}
		encoded[i] = encodedKey{codes: codes, valueID: uint32(i)}
	}

	alloc := arena.New()
	if len(encoded) > 0 {
		(&builder{alloc: alloc}).place(0, encoded, 0)
	}
	nodes, siblings := alloc.Finish()

	v := view{nodes: nodes, siblings: siblings, mapper: mapper}
	return &Trie[L]{v: v, alphabet: alphabet, keyCount: v.count()}
}

// validateSorted panics if keys is not strictly ascending under
// label-tuple order, or contains a duplicate or empty key.
func validateSorted[L Label](keys [][]L) {
	for i, k := range keys {
		if len(k) == 0 {
			panic("darts: empty keys are not supported")
		}
		if i == 0 {
			continue
		}
		if compareKeys(keys[i-1], k) >= 0 {
			panic(fmt.Sprintf("darts: input keys must be strictly ascending and duplicate-free (violated at index %d)", i))
		}
	}
}

func compareKeys[L Label](a, b []L) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		av, bv := toUint32(a[i]), toUint32(b[i])
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	}
	return len(a) - len(b)
}

// trainMapper runs the frequency pass (spec §4.4 step 1) over every
// label in every key.
func trainMapper[L Label](alphabet Alphabet[L], keys [][]L) *codemap.Mapper {
	tally := codemap.NewTally(alphabet.Bound)
	for _, key := range keys {
		for _, l := range key {
			tally.Observe(toUint32(l))
		}
	}
	return codemap.Build(tally)
}

// builder drives the recursive trie-construction pass (spec §4.4 steps
// 3-5) over one allocator.
type builder struct {
	alloc *arena.Allocator
}

// place installs the children of parent at depth, given the contiguous
// slice of encoded keys sharing parent's prefix, then recurses into each
// non-terminal child.
func (b *builder) place(parent uint32, keys []encodedKey, depth int) {
	runs := splitRuns(keys, depth)

	codes := make([]uint32, len(runs))
	for i, r := range runs {
		codes[i] = r.code
	}

	base := b.alloc.FindBase(codes)
	b.alloc.SetNode(parent, b.alloc.Node(parent).WithBase(base))

	installed := make([]uint32, len(runs))
	for i, r := range runs {
		child := base ^ r.code
		b.alloc.Allocate(child)
		installed[i] = child

		if r.code == 0 {
			if len(r.keys) != 1 {
				panic("darts: duplicate key detected during build")
			}
			b.alloc.SetNode(child, arena.Leaf(r.keys[0].valueID, parent))
			b.alloc.SetNode(parent, b.alloc.Node(parent).WithHasLeaf())
			continue
		}

		b.alloc.SetNode(child, arena.Interior(parent))
		b.place(child, r.keys, depth+1)
	}

	linkSiblings(b.alloc, installed)
}

// run groups every encoded key sharing the same code at a given depth.
// codes at a fixed depth are a deterministic function of the label at
// that position, and the input is sorted by label-tuple order, so keys
// sharing a code at depth are always contiguous -- no hashing needed to
// find them.
type run struct {
	code uint32
	keys []encodedKey
}

func splitRuns(keys []encodedKey, depth int) []run {
	var runs []run
	for i := 0; i < len(keys); {
		code := keys[i].codes[depth]
		j := i + 1
		for j < len(keys) && keys[j].codes[depth] == code {
			j++
		}
		runs = append(runs, run{code: code, keys: keys[i:j]})
		i = j
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].code < runs[j].code })
	return runs
}

// linkSiblings chains installed node indices in ascending internal-code
// order -- the order `installed` already carries, since splitRuns sorts
// runs by code and the loop in place appends children in that same
// order. This is not cosmetic: firstChild discovers a node's first child
// by scanning codes from 1 upward, so it always lands on the minimum-
// code child; the chain head must therefore be that same child, or the
// DFS in predictiveMatches/count/stats starts mid-chain and misses every
// sibling installed before it (child node index is base⊕code, which is
// not monotonic in code, so sorting installed by index instead would
// pick an arbitrary, usually wrong, head). Terminal code 0 sorts before
// every real code, so the one terminal-symbol leaf a chain may carry is
// always its head. Terminates the chain with 0.
func linkSiblings(alloc *arena.Allocator, installed []uint32) {
	for i, idx := range installed {
		if i == len(installed)-1 {
			alloc.SetSibling(idx, 0)
		} else {
			alloc.SetSibling(idx, installed[i+1])
		}
	}
}
