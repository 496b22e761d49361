package darts

import (
	"sort"
	"testing"
)

// FuzzBuildRoundTrip checks that every key Build was given can be
// recovered by ExactMatch with its expected value identifier, across
// randomly generated byte-key sets.
func FuzzBuildRoundTrip(f *testing.F) {
	f.Add("a\nab\nabc\n")
	f.Add("cat\ncar\ncart\ndog\n")
	f.Add("")
	f.Add("\x00\x01\n\xff\n")

	f.Fuzz(func(t *testing.T, blob string) {
		seen := map[string]bool{}
		var keys [][]byte
		for _, part := range splitLines(blob) {
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			keys = append(keys, []byte(part))
		}
		if len(keys) == 0 {
			t.Skip("no usable keys in this input")
		}
		sort.Slice(keys, func(i, j int) bool { return string(keys[i]) < string(keys[j]) })

		trie := Build(Bytes, keys)
		if trie.Len() != uint32(len(keys)) {
			t.Fatalf("Len() = %d, want %d", trie.Len(), len(keys))
		}
		for i, k := range keys {
			got, ok := trie.ExactMatch(k)
			if !ok {
				t.Fatalf("ExactMatch(%q) missing a key the trie was built from", k)
			}
			if got != uint32(i) {
				t.Fatalf("ExactMatch(%q) = %d, want %d", k, got, i)
			}
		}
	})
}

// FuzzFromBytes checks that FromBytes never panics on arbitrary input
// and, whenever it does succeed, round-trips a subsequent ToBytes back
// to an equivalent blob.
func FuzzFromBytes(f *testing.F) {
	f.Add([]byte("LXTR\x02\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"))
	f.Add([]byte("XXXX"))
	f.Add([]byte{})

	trie := Build(Bytes, byteKeys("cat", "car", "cart"))
	f.Add(trie.ToBytes())

	f.Fuzz(func(t *testing.T, data []byte) {
		got, err := FromBytes(Bytes, data)
		if err != nil {
			return
		}
		again := got.ToBytes()
		reparsed, err := FromBytes(Bytes, again)
		if err != nil {
			t.Fatalf("re-parsing a trie's own ToBytes() output failed: %v", err)
		}
		if reparsed.Len() != got.Len() {
			t.Fatalf("Len() changed across a ToBytes/FromBytes round trip: %d vs %d", reparsed.Len(), got.Len())
		}
	})
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
