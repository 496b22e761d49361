package wire

import (
	"bytes"
	"testing"
	"unsafe"

	"github.com/ime-tools/darts/internal/arena"
)

func uintptrOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

func sampleBlob() (nodes []arena.Node, siblings []uint32, codeMap []byte, blob []byte) {
	nodes = []arena.Node{
		{Base: 1, Check: 0},
		{Base: 0, Check: 1},
	}
	siblings = []uint32{0, 0}
	codeMap = []byte{1, 2, 3, 4, 5}
	blob = Encode(nodes, siblings, codeMap)
	return
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	wantNodes, wantSiblings, wantCodeMap, blob := sampleBlob()

	gotNodes, gotSiblings, gotCodeMap, err := Decode(blob)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !equalNodes(gotNodes, wantNodes) {
		t.Errorf("Decode nodes = %v, want %v", gotNodes, wantNodes)
	}
	if !equalU32(gotSiblings, wantSiblings) {
		t.Errorf("Decode siblings = %v, want %v", gotSiblings, wantSiblings)
	}
	if !bytes.Equal(gotCodeMap, wantCodeMap) {
		t.Errorf("Decode codeMap = %v, want %v", gotCodeMap, wantCodeMap)
	}
}

func TestEncodeHeaderLayout(t *testing.T) {
	_, _, _, blob := sampleBlob()

	if string(blob[0:4]) != magic {
		t.Errorf("magic = %q, want %q", blob[0:4], magic)
	}
	if blob[4] != version {
		t.Errorf("version byte = %#x, want %#x", blob[4], version)
	}
	for _, b := range blob[5:8] {
		if b != 0 {
			t.Errorf("reserved header byte = %#x, want 0", b)
		}
	}
	for _, b := range blob[20:24] {
		if b != 0 {
			t.Errorf("reserved trailer word byte = %#x, want 0", b)
		}
	}
}

func TestDecodeRejectsInvalidMagic(t *testing.T) {
	_, _, _, blob := sampleBlob()
	blob[0] = 'X'
	if _, _, _, err := Decode(blob); err != ErrInvalidMagic {
		t.Errorf("Decode with corrupted magic: err = %v, want ErrInvalidMagic", err)
	}
}

func TestDecodeRejectsInvalidVersion(t *testing.T) {
	_, _, _, blob := sampleBlob()
	blob[4] = 0xFF
	if _, _, _, err := Decode(blob); err != ErrInvalidVersion {
		t.Errorf("Decode with corrupted version: err = %v, want ErrInvalidVersion", err)
	}
}

func TestDecodeRejectsTruncatedData(t *testing.T) {
	_, _, _, blob := sampleBlob()
	if _, _, _, err := Decode(blob[:headerLen-1]); err != ErrTruncatedData {
		t.Errorf("Decode of a too-short header: err = %v, want ErrTruncatedData", err)
	}
	if _, _, _, err := Decode(blob[:len(blob)-1]); err != ErrTruncatedData {
		t.Errorf("Decode of a body truncated by one byte: err = %v, want ErrTruncatedData", err)
	}
}

func TestDecodeRefRoundTrip(t *testing.T) {
	wantNodes, wantSiblings, wantCodeMap, blob := sampleBlob()

	aligned := make([]byte, len(blob)+8)
	for uintptrOf(aligned)%8 != 0 {
		aligned = aligned[1:]
	}
	copy(aligned, blob)
	aligned = aligned[:len(blob)]

	gotNodes, gotSiblings, gotCodeMap, err := DecodeRef(aligned)
	if err != nil {
		t.Fatalf("DecodeRef: %v", err)
	}
	if !equalNodes(gotNodes, wantNodes) {
		t.Errorf("DecodeRef nodes = %v, want %v", gotNodes, wantNodes)
	}
	if !equalU32(gotSiblings, wantSiblings) {
		t.Errorf("DecodeRef siblings = %v, want %v", gotSiblings, wantSiblings)
	}
	if !bytes.Equal(gotCodeMap, wantCodeMap) {
		t.Errorf("DecodeRef codeMap = %v, want %v", gotCodeMap, wantCodeMap)
	}
}

func TestDecodeRefRejectsMisalignedBuffer(t *testing.T) {
	_, _, _, blob := sampleBlob()

	aligned := make([]byte, len(blob)+8)
	for uintptrOf(aligned)%8 != 0 {
		aligned = aligned[1:]
	}
	copy(aligned, blob)
	misaligned := aligned[1 : 1+len(blob)]

	if _, _, _, err := DecodeRef(misaligned); err != ErrMisalignedData {
		t.Errorf("DecodeRef on a misaligned buffer: err = %v, want ErrMisalignedData", err)
	}
}

func equalNodes(a, b []arena.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalU32(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
