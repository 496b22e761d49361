// Copyright (c) 2025 ime-tools
// SPDX-License-Identifier: MIT

// Package darts implements an immutable double-array trie over label
// sequences, mapping each stored key to a 31-bit value identifier.
//
// A Trie is built once from a sorted, duplicate-free key slice via
// Build, and never mutated afterwards; every search method is safe for
// concurrent use by multiple goroutines once Build returns.
//
// Four search operations share one traversal primitive: ExactMatch
// tests full-key membership, CommonPrefixSearch enumerates every
// stored prefix of a query shortest-first, PredictiveSearch enumerates
// every stored key extending a given prefix, and Probe reports both a
// node's value (if any) and whether it has further children, without
// walking the sub-trie.
//
// A Trie serializes to a versioned little-endian binary format (LXTR
// v2, see ToBytes) that round-trips through FromBytes (always copying)
// or FromBytesRef (zero-copy, aliasing the caller's buffer as
// BorrowedTrie) on a little-endian host.
//
// Keys are sequences of either raw bytes (ByteLabel) or Unicode scalar
// values (RuneLabel); callers needing a third label alphabet can define
// their own Alphabet value without any change to Build, Trie or
// BorrowedTrie.
package darts
