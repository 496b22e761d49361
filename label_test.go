package darts

import "testing"

func TestBytesAlphabetFromUint32(t *testing.T) {
	if l, ok := Bytes.FromUint32(0x41); !ok || l != 'A' {
		t.Errorf("Bytes.FromUint32(0x41) = (%v, %v), want ('A', true)", l, ok)
	}
	if _, ok := Bytes.FromUint32(0x100); ok {
		t.Errorf("Bytes.FromUint32(0x100) reported ok, want false (out of byte range)")
	}
}

func TestRunesAlphabetFromUint32(t *testing.T) {
	if l, ok := Runes.FromUint32(0x3042); !ok || l != 'あ' {
		t.Errorf("Runes.FromUint32(0x3042) = (%q, %v), want ('あ', true)", l, ok)
	}
	if _, ok := Runes.FromUint32(0x110000); ok {
		t.Errorf("Runes.FromUint32(0x110000) reported ok, want false (out of scalar-value range)")
	}
}

func TestToUint32Injective(t *testing.T) {
	if toUint32[ByteLabel](0xFF) != 0xFF {
		t.Errorf("toUint32 of a ByteLabel did not preserve its value")
	}
	if toUint32[RuneLabel]('漢') != uint32('漢') {
		t.Errorf("toUint32 of a RuneLabel did not preserve its value")
	}
}
