// Copyright (c) 2025 ime-tools
// SPDX-License-Identifier: MIT

package arena

import "github.com/bits-and-blooms/bitset"

const rootIndex = 0

// Allocator packs double-array nodes into a growable arena using a
// doubly-linked circular free list over the slots not yet claimed by a
// node. Index 0 is the root and is never free. Every slot starts out
// seeded with Free() (see grow), so a lookup that strays into a
// never-allocated slot reads a Check carrying the noParent sentinel
// rather than 0, which would otherwise be indistinguishable from a real
// child of the root.
//
// The free list itself (freeNext/freePrev/freeCount/freeHead) is
// transient construction state; only Node and the sibling slice survive
// Finish.
type Allocator struct {
	nodes    []Node
	siblings []uint32

	used *bitset.BitSet

	freeNext  []uint32
	freePrev  []uint32
	freeCount int
	freeHead  uint32
}

// New returns an allocator seeded with the root node at index 0.
func New() *Allocator {
	a := &Allocator{
		nodes:    make([]Node, 1),
		siblings: make([]uint32, 1),
		used:     bitset.New(1),
		freeNext: make([]uint32, 1),
		freePrev: make([]uint32, 1),
	}
	a.used.Set(rootIndex)
	return a
}

// grow extends the arena by n slots and links every new slot into the
// free ring.
func (a *Allocator) grow(n int) {
	old := uint32(len(a.nodes))
	a.nodes = append(a.nodes, make([]Node, n)...)
	a.siblings = append(a.siblings, make([]uint32, n)...)
	a.freeNext = append(a.freeNext, make([]uint32, n)...)
	a.freePrev = append(a.freePrev, make([]uint32, n)...)

	for i := old; i < uint32(len(a.nodes)); i++ {
		a.nodes[i] = Free()
		a.linkFree(i)
	}
}

// linkFree inserts slot i into the free ring, right before the current head.
func (a *Allocator) linkFree(i uint32) {
	if a.freeCount == 0 {
		a.freeNext[i], a.freePrev[i] = i, i
		a.freeHead = i
	} else {
		tail := a.freePrev[a.freeHead]
		a.freeNext[tail] = i
		a.freePrev[i] = tail
		a.freeNext[i] = a.freeHead
		a.freePrev[a.freeHead] = i
	}
	a.freeCount++
}

// unlinkFree removes slot i from the free ring. i must currently be free.
func (a *Allocator) unlinkFree(i uint32) {
	next, prev := a.freeNext[i], a.freePrev[i]
	if a.freeCount == 1 {
		a.freeHead = rootIndex
	} else {
		a.freeNext[prev] = next
		a.freePrev[next] = prev
		if a.freeHead == i {
			a.freeHead = next
		}
	}
	a.freeCount--
}

// fits reports whether base⊕c is free and in bounds for every code c,
// and never collides with the root/sentinel slot 0.
func (a *Allocator) fits(base uint32, codes []uint32) bool {
	for _, c := range codes {
		slot := base ^ c
		if slot == rootIndex {
			return false
		}
		if int(slot) >= len(a.nodes) {
			return false
		}
		if a.used.Test(uint(slot)) {
			return false
		}
	}
	return true
}

// FindBase returns a base such that base⊕c is free for every c in codes.
// codes must be non-empty. Trial bases are drawn from the free list, as
// idx⊕codes[0] for each free idx, which places the first child exactly on
// a slot already known to be free; the arena grows and retries if none of
// the current free slots work.
func (a *Allocator) FindBase(codes []uint32) uint32 {
	for {
		if a.freeCount > 0 {
			first := codes[0]
			start := a.freeHead
			for idx := start; ; {
				base := idx ^ first
				if a.fits(base, codes) {
					return base
				}
				idx = a.freeNext[idx]
				if idx == start {
					break
				}
			}
		}

		grow := len(a.nodes)
		if maxCode := codes[len(codes)-1]; int(maxCode)+1 > grow {
			grow = int(maxCode) + 1
		}
		a.grow(grow)
	}
}

// Allocate marks slot i as used, removing it from the free ring.
func (a *Allocator) Allocate(i uint32) {
	a.unlinkFree(i)
	a.used.Set(uint(i))
}

// Len returns the current (pre-Finish) arena size.
func (a *Allocator) Len() int { return len(a.nodes) }

// Node returns the record currently stored at i.
func (a *Allocator) Node(i uint32) Node { return a.nodes[i] }

// SetNode overwrites the record stored at i.
func (a *Allocator) SetNode(i uint32, n Node) { a.nodes[i] = n }

// SetSibling sets i's next-sibling pointer.
func (a *Allocator) SetSibling(i, sibling uint32) { a.siblings[i] = sibling }

// Finish truncates trailing unused slots and returns the frozen node and
// sibling arrays. The allocator must not be used afterwards.
func (a *Allocator) Finish() ([]Node, []uint32) {
	n := len(a.nodes)
	for n > 1 && !a.used.Test(uint(n-1)) {
		n--
	}
	return a.nodes[:n], a.siblings[:n]
}
