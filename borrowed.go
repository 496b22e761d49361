// Copyright (c) 2025 ime-tools
// SPDX-License-Identifier: MIT

package darts

import (
	"iter"

	"github.com/ime-tools/darts/internal/arena"
	"github.com/ime-tools/darts/internal/codemap"
	"github.com/ime-tools/darts/internal/wire"
)

// BorrowedTrie is the zero-copy counterpart to Trie: its node and
// sibling sections are typed views directly over a caller-supplied byte
// buffer (see FromBytesRef), not independently allocated. The buffer
// must outlive every BorrowedTrie built from it and must not be
// mutated while any BorrowedTrie referencing it is in use.
type BorrowedTrie[L Label] struct {
	v        view
	alphabet Alphabet[L]
	keyCount uint32
}

// FromBytesRef parses an LXTR v2 blob without copying the node or
// sibling sections: it returns slices aliasing data's backing array.
// data must be 8-byte aligned and the host must be little-endian;
// either violation is reported as wire.ErrMisalignedData rather than
// silently falling back to a copy.
func FromBytesRef[L Label](alphabet Alphabet[L], data []byte) (*BorrowedTrie[L], error) {
	nodes, siblings, codeMapBytes, err := wire.DecodeRef(data)
	if err != nil {
		return nil, err
	}
	mapper, err := codemap.UnmarshalBinary(codeMapBytes)
	if err != nil {
		return nil, err
	}
	v := view{nodes: nodes, siblings: siblings, mapper: mapper}
	return &BorrowedTrie[L]{v: v, alphabet: alphabet, keyCount: v.count()}, nil
}

// ExactMatch returns the value identifier stored for key, if key was
// one of the keys the trie was built from.
func (t *BorrowedTrie[L]) ExactMatch(key []L) (uint32, bool) {
	return t.v.exactMatch(encodeQuery(t.alphabet, t.v.mapper, key))
}

// CommonPrefixSearch yields (prefix length in labels, value id) for
// every prefix of query that is itself a stored key, shortest first.
func (t *BorrowedTrie[L]) CommonPrefixSearch(query []L) iter.Seq2[int, uint32] {
	return t.v.commonPrefixMatches(encodeQuery(t.alphabet, t.v.mapper, query))
}

// PredictiveSearch yields (full key, value id) for every stored key
// that has prefix as a label-tuple prefix.
func (t *BorrowedTrie[L]) PredictiveSearch(prefix []L) iter.Seq2[[]L, uint32] {
	owned := &Trie[L]{v: t.v, alphabet: t.alphabet, keyCount: t.keyCount}
	return owned.PredictiveSearch(prefix)
}

// Probe reports the value stored at key, if any, and whether key has at
// least one longer stored key as a label-tuple extension.
func (t *BorrowedTrie[L]) Probe(key []L) (value uint32, hasValue, hasChildren bool) {
	return t.v.probe(encodeQuery(t.alphabet, t.v.mapper, key))
}

// Len returns the number of keys the trie was built from.
func (t *BorrowedTrie[L]) Len() uint32 {
	return t.keyCount
}

// ToOwned copies t's aliased node and sibling sections into fresh,
// independently-owned storage, detaching the result from the buffer
// FromBytesRef was called on.
func (t *BorrowedTrie[L]) ToOwned() *Trie[L] {
	nodes := append([]arena.Node(nil), t.v.nodes...)
	siblings := append([]uint32(nil), t.v.siblings...)
	v := view{nodes: nodes, siblings: siblings, mapper: t.v.mapper}
	return &Trie[L]{v: v, alphabet: t.alphabet, keyCount: t.keyCount}
}
