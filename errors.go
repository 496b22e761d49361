// Copyright (c) 2025 ime-tools
// SPDX-License-Identifier: MIT

package darts

import "github.com/ime-tools/darts/internal/wire"

// Deserialization errors, returned by FromBytes and FromBytesRef.
// Search methods never return an error: an absent key is reported
// through their (value, ok) or (..., hasValue, ...) results instead.
var (
	// ErrInvalidMagic is returned when the leading four bytes of a
	// blob are not the ASCII magic "LXTR".
	ErrInvalidMagic = wire.ErrInvalidMagic

	// ErrInvalidVersion is returned when the header's version byte is
	// not the one this package reads (0x02).
	ErrInvalidVersion = wire.ErrInvalidVersion

	// ErrTruncatedData is returned when the header's declared section
	// lengths exceed the supplied buffer, or the buffer is too short
	// to hold a header at all.
	ErrTruncatedData = wire.ErrTruncatedData

	// ErrMisalignedData is returned by FromBytesRef when the buffer's
	// base address is not 8-byte aligned, or the host's native byte
	// order is not little-endian.
	ErrMisalignedData = wire.ErrMisalignedData
)
