// Copyright (c) 2025 ime-tools
// SPDX-License-Identifier: MIT

package darts

import (
	"iter"

	"github.com/ime-tools/darts/internal/codemap"
	"github.com/ime-tools/darts/internal/wire"
)

// Trie is an immutable, owned double-array trie over label sequences of
// type L, mapping each stored key to a 31-bit value identifier. Every
// read-only search method is safe for concurrent use by multiple
// goroutines, since nothing in Trie is ever mutated after Build or
// FromBytes returns.
type Trie[L Label] struct {
	v        view
	alphabet Alphabet[L]
	keyCount uint32
}

// encodeQuery translates a caller-supplied key into internal codes.
// Mapper.Encode returns 0 for a label the trie's mapper never assigned a
// code. No real label is ever assigned code 0, and every search rejects
// a 0 code inside a query before calling traverse, so an unmapped label
// yields "no match" rather than being read as the terminal symbol.
func encodeQuery[L Label](alphabet Alphabet[L], mapper *codemap.Mapper, key []L) []uint32 {
	codes := make([]uint32, len(key))
	for i, l := range key {
		codes[i] = mapper.Encode(toUint32(l))
	}
	return codes
}

// ExactMatch returns the value identifier stored for key, if key was
// one of the keys the trie was built from.
func (t *Trie[L]) ExactMatch(key []L) (uint32, bool) {
	return t.v.exactMatch(encodeQuery(t.alphabet, t.v.mapper, key))
}

// CommonPrefixSearch yields (prefix length in labels, value id) for
// every prefix of query that is itself a stored key, shortest first.
func (t *Trie[L]) CommonPrefixSearch(query []L) iter.Seq2[int, uint32] {
	return t.v.commonPrefixMatches(encodeQuery(t.alphabet, t.v.mapper, query))
}

// PredictiveSearch yields (full key, value id) for every stored key
// that has prefix as a label-tuple prefix, including prefix itself if
// it is a stored key. It is a lazy, unbounded sequence: stop early by
// ceasing to range over it, exactly like the trie's own construction
// never blocks.
func (t *Trie[L]) PredictiveSearch(prefix []L) iter.Seq2[[]L, uint32] {
	codes := encodeQuery(t.alphabet, t.v.mapper, prefix)
	return func(yield func([]L, uint32) bool) {
		state := uint32(0)
		for _, c := range codes {
			if c == 0 {
				return
			}
			next, ok := t.v.traverse(state, c)
			if !ok {
				return
			}
			state = next
		}

		for codesOut, value := range t.v.predictiveMatches(state, nil) {
			key := make([]L, len(prefix)+len(codesOut))
			copy(key, prefix)
			for i, c := range codesOut {
				raw, ok := t.v.mapper.Decode(c)
				if !ok {
					return
				}
				l, ok := t.alphabet.FromUint32(raw)
				if !ok {
					return
				}
				key[len(prefix)+i] = l
			}
			if !yield(key, value) {
				return
			}
		}
	}
}

// Probe reports the value stored at key, if any, and whether key has at
// least one longer stored key as a label-tuple extension.
func (t *Trie[L]) Probe(key []L) (value uint32, hasValue, hasChildren bool) {
	return t.v.probe(encodeQuery(t.alphabet, t.v.mapper, key))
}

// Len returns the number of keys the trie was built from.
func (t *Trie[L]) Len() uint32 {
	return t.keyCount
}

// ToBytes serializes t into an owned LXTR v2 byte slice.
func (t *Trie[L]) ToBytes() []byte {
	return wire.Encode(t.v.nodes, t.v.siblings, t.v.mapper.MarshalBinary())
}

// FromBytes parses an LXTR v2 blob produced by ToBytes, copying its
// sections into fresh, independently-owned storage. alphabet must match
// the one the trie was built with; this is not itself encoded on the
// wire and is the caller's responsibility, exactly as spec.md leaves it.
func FromBytes[L Label](alphabet Alphabet[L], data []byte) (*Trie[L], error) {
	nodes, siblings, codeMapBytes, err := wire.Decode(data)
	if err != nil {
		return nil, err
	}
	mapper, err := codemap.UnmarshalBinary(codeMapBytes)
	if err != nil {
		return nil, err
	}
	v := view{nodes: nodes, siblings: siblings, mapper: mapper}
	return &Trie[L]{v: v, alphabet: alphabet, keyCount: v.count()}, nil
}
