// Copyright (c) 2025 ime-tools
// SPDX-License-Identifier: MIT

package darts

// Label is the caller-visible alphabet element type: either an unsigned
// byte (for romaji/ASCII keys) or a Unicode scalar value (for dictionary
// keys). Both convert injectively to a uint32 and are ordered by that
// value; Build and Trie are generic over which one a trie indexes.
type Label interface {
	~uint8 | ~int32
}

// ByteLabel is the romaji/byte alphabet, bounded by 256.
type ByteLabel = uint8

// RuneLabel is the Unicode scalar value alphabet, bounded by 0x110000.
type RuneLabel = rune

// toUint32 is the injective conversion shared by every Label
// instantiation; it is valid for both type-set members because both
// convert losslessly into the wider uint32.
func toUint32[L Label](l L) uint32 {
	return uint32(l)
}

// Alphabet bridges a concrete Label type to its bound and its
// try-from-uint32 reconstruction. It is supplied explicitly by the
// caller rather than inferred, so a third label alphabet slots in
// without any change to Build, Trie or BorrowedTrie: define the
// Alphabet value for it and pass it in.
type Alphabet[L Label] struct {
	// Bound is the upper bound on to_u32(label)+1 for this alphabet.
	// Build uses it to size its transient label-frequency tally; the code
	// tables a trie keeps are sized to the labels actually observed.
	Bound uint32

	// FromUint32 reconstructs a label from its uint32 form, rejecting
	// values outside the alphabet (e.g. UTF-16 surrogate halves for
	// RuneLabel).
	FromUint32 func(uint32) (L, bool)
}

// Bytes is the Alphabet for ByteLabel keys.
var Bytes = Alphabet[ByteLabel]{
	Bound: 1 << 8,
	FromUint32: func(v uint32) (ByteLabel, bool) {
		if v > 0xFF {
			return 0, false
		}
		return ByteLabel(v), true
	},
}

// Runes is the Alphabet for RuneLabel keys.
var Runes = Alphabet[RuneLabel]{
	Bound: 0x110000,
	FromUint32: func(v uint32) (RuneLabel, bool) {
		if v > 0x10FFFF || (v >= 0xD800 && v <= 0xDFFF) {
			return 0, false
		}
		return RuneLabel(v), true
	},
}
