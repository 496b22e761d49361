// Copyright (c) 2025 ime-tools
// SPDX-License-Identifier: MIT

// Package wire implements the LXTR v2 on-disk framing for a darts trie:
// the 24-byte header, section cutting, and both the always-copy and
// zero-copy reconstruction paths.
package wire

import (
	"encoding/binary"
	"errors"
	"unsafe"

	"github.com/ime-tools/darts/internal/arena"
)

const (
	headerLen = 24
	magic     = "LXTR"
	version   = 0x02
)

// Error values returned by Decode/DecodeRef. Deserialization never
// panics; every malformed input is reported through one of these.
var (
	ErrInvalidMagic   = errors.New("wire: invalid magic")
	ErrInvalidVersion = errors.New("wire: invalid version")
	ErrTruncatedData  = errors.New("wire: truncated data")
	ErrMisalignedData = errors.New("wire: misaligned data")
)

// Encode frames nodes, siblings and the already-serialized code mapper
// payload into one owned LXTR v2 byte slice.
func Encode(nodes []arena.Node, siblings []uint32, codeMap []byte) []byte {
	nodesLen := len(nodes) * 8
	siblingsLen := len(siblings) * 4
	buf := make([]byte, headerLen+nodesLen+siblingsLen+len(codeMap))

	copy(buf[0:4], magic)
	buf[4] = version
	binary.LittleEndian.PutUint32(buf[8:], uint32(nodesLen))
	binary.LittleEndian.PutUint32(buf[12:], uint32(siblingsLen))
	binary.LittleEndian.PutUint32(buf[16:], uint32(len(codeMap)))

	off := headerLen
	for _, n := range nodes {
		binary.LittleEndian.PutUint32(buf[off:], n.Base)
		binary.LittleEndian.PutUint32(buf[off+4:], n.Check)
		off += 8
	}
	for _, s := range siblings {
		binary.LittleEndian.PutUint32(buf[off:], s)
		off += 4
	}
	copy(buf[off:], codeMap)

	return buf
}

// parseHeader validates the 24-byte header and returns the three
// section lengths, or an error from the spec.md §7 taxonomy.
func parseHeader(data []byte) (nodesLen, siblingsLen, codeMapLen uint32, err error) {
	if len(data) < headerLen {
		return 0, 0, 0, ErrTruncatedData
	}
	if string(data[0:4]) != magic {
		return 0, 0, 0, ErrInvalidMagic
	}
	if data[4] != version {
		return 0, 0, 0, ErrInvalidVersion
	}

	nodesLen = binary.LittleEndian.Uint32(data[8:])
	siblingsLen = binary.LittleEndian.Uint32(data[12:])
	codeMapLen = binary.LittleEndian.Uint32(data[16:])

	if nodesLen%8 != 0 || siblingsLen%4 != 0 {
		return 0, 0, 0, ErrTruncatedData
	}
	total := uint64(headerLen) + uint64(nodesLen) + uint64(siblingsLen) + uint64(codeMapLen)
	if total > uint64(len(data)) {
		return 0, 0, 0, ErrTruncatedData
	}
	return nodesLen, siblingsLen, codeMapLen, nil
}

// Decode parses data and copies the node, sibling and code-map sections
// into fresh, independently-owned slices. data need not be aligned.
func Decode(data []byte) (nodes []arena.Node, siblings []uint32, codeMap []byte, err error) {
	nodesLen, siblingsLen, codeMapLen, err := parseHeader(data)
	if err != nil {
		return nil, nil, nil, err
	}

	off := headerLen
	nodes = make([]arena.Node, nodesLen/8)
	for i := range nodes {
		nodes[i] = arena.Node{
			Base:  binary.LittleEndian.Uint32(data[off:]),
			Check: binary.LittleEndian.Uint32(data[off+4:]),
		}
		off += 8
	}

	siblings = make([]uint32, siblingsLen/4)
	for i := range siblings {
		siblings[i] = binary.LittleEndian.Uint32(data[off:])
		off += 4
	}

	codeMap = append([]byte(nil), data[off:off+int(codeMapLen)]...)
	return nodes, siblings, codeMap, nil
}

// hostIsLittleEndian reports whether this process's native byte order
// matches the LXTR wire order, checked once at call time rather than
// assumed from GOARCH so cross-compilation mistakes surface as a
// MisalignedData error instead of silent corruption.
func hostIsLittleEndian() bool {
	var x uint16 = 1
	return *(*byte)(unsafe.Pointer(&x)) == 1
}

// DecodeRef parses data and returns typed slice views directly over
// data's backing array for the node and sibling sections (the code
// mapper payload is still copied onto the heap, per spec.md §4.6). data
// must be 8-byte aligned; the host must be little-endian. Both are
// contract requirements of the zero-copy path and are reported as
// MisalignedData, never silently relaxed.
func DecodeRef(data []byte) (nodes []arena.Node, siblings []uint32, codeMap []byte, err error) {
	if !hostIsLittleEndian() {
		return nil, nil, nil, ErrMisalignedData
	}

	nodesLen, siblingsLen, codeMapLen, err := parseHeader(data)
	if err != nil {
		return nil, nil, nil, err
	}

	base := uintptr(unsafe.Pointer(unsafe.SliceData(data)))
	if base%8 != 0 {
		return nil, nil, nil, ErrMisalignedData
	}
	// headerLen (24) is a multiple of 8, so the node section inherits
	// the buffer's 8-byte alignment; the sibling section only needs
	// 4-byte alignment and nodesLen is always a multiple of 8.

	nodeSection := data[headerLen : headerLen+int(nodesLen)]
	nodes = unsafe.Slice((*arena.Node)(unsafe.Pointer(unsafe.SliceData(nodeSection))), nodesLen/8)

	sibOff := headerLen + int(nodesLen)
	sibSection := data[sibOff : sibOff+int(siblingsLen)]
	siblings = unsafe.Slice((*uint32)(unsafe.Pointer(unsafe.SliceData(sibSection))), siblingsLen/4)

	cmOff := sibOff + int(siblingsLen)
	codeMap = append([]byte(nil), data[cmOff:cmOff+int(codeMapLen)]...)

	return nodes, siblings, codeMap, nil
}
