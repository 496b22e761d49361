// Copyright (c) 2025 ime-tools
// SPDX-License-Identifier: MIT

// Package codemap implements the frequency-ordered mapping from raw
// 32-bit label values to dense internal codes used by a darts trie. Code
// 0 is reserved for the terminal symbol; it is never assigned to a real
// label.
package codemap

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// Mapper holds the forward (label -> code) and reverse (code -> label)
// tables built from one frequency pass over a key set.
type Mapper struct {
	forward []uint32 // sized to one past the maximum label observed
	reverse []uint32 // index 0 unused; alphabetSize == len(reverse)
}

// Tally counts label occurrences during the frequency pass. Labels are
// tracked with a bitset alongside the dense count slice so that Build can
// walk only the labels actually seen instead of scanning the whole count
// range, which matters once rawLabel can be as large as a Unicode scalar
// value.
type Tally struct {
	counts []uint64
	seen   *bitset.BitSet
	max    uint32
	any    bool
}

// NewTally returns a Tally ready to record labels in [0, bound).
func NewTally(bound uint32) *Tally {
	return &Tally{
		counts: make([]uint64, bound),
		seen:   bitset.New(uint(bound)),
	}
}

// Observe records one occurrence of rawLabel.
func (t *Tally) Observe(rawLabel uint32) {
	t.counts[rawLabel]++
	t.seen.Set(uint(rawLabel))
	if !t.any || rawLabel > t.max {
		t.max = rawLabel
	}
	t.any = true
}

// Build assigns code 1 to the most frequent observed label, code 2 to the
// next, and so on; ties are broken by ascending label value for
// determinism. An empty tally produces a Mapper with no assignable codes
// (alphabet size 1, the reserved terminal code only).
func Build(t *Tally) *Mapper {
	type entry struct {
		label uint32
		count uint64
	}

	var entries []entry
	if t.any {
		for i, ok := t.seen.NextSet(0); ok; i, ok = t.seen.NextSet(i + 1) {
			entries = append(entries, entry{label: uint32(i), count: t.counts[i]})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].label < entries[j].label
	})

	m := &Mapper{reverse: make([]uint32, len(entries)+1)}
	if t.any {
		m.forward = make([]uint32, t.max+1)
	}
	for code, e := range entries {
		c := uint32(code + 1)
		m.reverse[c] = e.label
		m.forward[e.label] = c
	}
	return m
}

// Encode returns the internal code for rawLabel, or 0 if rawLabel was
// never observed while building this Mapper.
func (m *Mapper) Encode(rawLabel uint32) uint32 {
	if int(rawLabel) >= len(m.forward) {
		return 0
	}
	return m.forward[rawLabel]
}

// Decode returns the raw label for code, or (0, false) for the reserved
// terminal code or any code outside the alphabet.
func (m *Mapper) Decode(code uint32) (uint32, bool) {
	if code == 0 || int(code) >= len(m.reverse) {
		return 0, false
	}
	return m.reverse[code], true
}

// AlphabetSize returns the number of codes in [0, AlphabetSize), including
// the reserved terminal code 0.
func (m *Mapper) AlphabetSize() uint32 {
	return uint32(len(m.reverse))
}

// MarshalBinary serializes the mapper as: u32 alphabet_size, u32
// forward_len, forward_len x u32, u32 reverse_len, reverse_len x u32, all
// little-endian.
func (m *Mapper) MarshalBinary() []byte {
	buf := make([]byte, 4+4+4*len(m.forward)+4+4*len(m.reverse))
	off := 0
	binary.LittleEndian.PutUint32(buf[off:], m.AlphabetSize())
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], uint32(len(m.forward)))
	off += 4
	for _, v := range m.forward {
		binary.LittleEndian.PutUint32(buf[off:], v)
		off += 4
	}
	binary.LittleEndian.PutUint32(buf[off:], uint32(len(m.reverse)))
	off += 4
	for _, v := range m.reverse {
		binary.LittleEndian.PutUint32(buf[off:], v)
		off += 4
	}
	return buf
}

// UnmarshalBinary parses the payload produced by MarshalBinary.
func UnmarshalBinary(data []byte) (*Mapper, error) {
	read := func(b []byte) (uint32, []byte, error) {
		if len(b) < 4 {
			return 0, nil, fmt.Errorf("codemap: truncated payload")
		}
		return binary.LittleEndian.Uint32(b), b[4:], nil
	}

	alphabetSize, data, err := read(data)
	if err != nil {
		return nil, err
	}

	forwardLen, data, err := read(data)
	if err != nil {
		return nil, err
	}
	if uint64(forwardLen)*4 > uint64(len(data)) {
		return nil, fmt.Errorf("codemap: truncated forward table")
	}
	forward := make([]uint32, forwardLen)
	for i := range forward {
		forward[i], data, _ = read(data)
	}

	reverseLen, data, err := read(data)
	if err != nil {
		return nil, err
	}
	if uint64(reverseLen)*4 > uint64(len(data)) {
		return nil, fmt.Errorf("codemap: truncated reverse table")
	}
	reverse := make([]uint32, reverseLen)
	for i := range reverse {
		reverse[i], data, _ = read(data)
	}

	if reverseLen != alphabetSize {
		return nil, fmt.Errorf("codemap: alphabet size %d does not match reverse table length %d", alphabetSize, reverseLen)
	}

	return &Mapper{forward: forward, reverse: reverse}, nil
}
