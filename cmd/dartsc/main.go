// Copyright (c) 2025 ime-tools
// SPDX-License-Identifier: MIT

// Command dartsc compiles a sorted, newline-delimited key file into an
// LXTR v2 blob, or dumps structural stats about an existing one. It
// contributes no trie semantics of its own; it is a thin wrapper over
// package darts.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/ime-tools/darts"
)

func main() {
	log.SetFlags(log.Lmicroseconds)

	var (
		inPath  = flag.String("in", "", "input key file, one key per line (required unless -dump)")
		outPath = flag.String("out", "", "output LXTR blob path (required unless -dump)")
		dump    = flag.String("dump", "", "path to an existing LXTR blob to report stats on, instead of building")
		byteKey = flag.Bool("bytes", false, "treat each input line as a raw byte key instead of decoding it as runes")
	)
	flag.Parse()

	if *dump != "" {
		runDump(*dump, *byteKey)
		return
	}

	if *inPath == "" || *outPath == "" {
		log.Fatalf("dartsc: -in and -out are required (or use -dump)")
	}
	runBuild(*inPath, *outPath, *byteKey)
}

func runBuild(inPath, outPath string, byteKey bool) {
	lines, err := readLines(inPath)
	if err != nil {
		log.Fatalf("dartsc: reading %s: %v", inPath, err)
	}

	var blob []byte
	if byteKey {
		keys := make([][]byte, len(lines))
		for i, l := range lines {
			keys[i] = []byte(l)
		}
		sort.Slice(keys, func(i, j int) bool { return string(keys[i]) < string(keys[j]) })
		trie := darts.Build(darts.Bytes, keys)
		log.Printf("dartsc: built %d keys, %s", trie.Len(), statsLine(trie.Stats()))
		blob = trie.ToBytes()
	} else {
		keys := make([][]rune, len(lines))
		for i, l := range lines {
			keys[i] = []rune(l)
		}
		sort.Slice(keys, func(i, j int) bool { return string(keys[i]) < string(keys[j]) })
		trie := darts.Build(darts.Runes, keys)
		log.Printf("dartsc: built %d keys, %s", trie.Len(), statsLine(trie.Stats()))
		blob = trie.ToBytes()
	}

	if err := os.WriteFile(outPath, blob, 0o644); err != nil {
		log.Fatalf("dartsc: writing %s: %v", outPath, err)
	}
	log.Printf("dartsc: wrote %d bytes to %s", len(blob), outPath)
}

func runDump(path string, byteKey bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("dartsc: reading %s: %v", path, err)
	}

	if byteKey {
		trie, err := darts.FromBytes(darts.Bytes, data)
		if err != nil {
			log.Fatalf("dartsc: parsing %s: %v", path, err)
		}
		log.Printf("dartsc: %s", statsLine(trie.Stats()))
		return
	}

	trie, err := darts.FromBytes(darts.Runes, data)
	if err != nil {
		log.Fatalf("dartsc: parsing %s: %v", path, err)
	}
	log.Printf("dartsc: %s", statsLine(trie.Stats()))
}

func statsLine(s darts.Stats) string {
	return fmt.Sprintf("keys=%d nodes=%d alphabet=%d max_depth=%d", s.Keys, s.Nodes, s.AlphabetSize, s.MaxDepth)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}
