// Command locate builds an FM-index over a text file (or a literal
// string) and reports every occurrence of a pattern. Demonstrates the
// end-to-end pipeline: alphabet encoding -> suffix array -> FM-index ->
// backward search. Mirrors the teacher's small flag-driven cmd/
// binaries (mmph/paramselect/cmd/psig_study).
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"succinct/alphabet"
	"succinct/fmindex"
	"succinct/suffixarray"
)

func main() {
	var (
		text    = flag.String("text", "", "text to index (a unique, minimal sentinel byte is appended automatically)")
		file    = flag.String("file", "", "path to a text file to index, instead of -text")
		pattern = flag.String("pattern", "", "pattern to locate")
		naive   = flag.Bool("naive", false, "use the O(n^2 log n) suffix array fallback instead of DC3")
	)
	flag.Parse()

	if *pattern == "" {
		fmt.Fprintln(os.Stderr, "locate: -pattern is required")
		os.Exit(2)
	}

	raw, err := loadText(*text, *file)
	if err != nil {
		fmt.Fprintln(os.Stderr, "locate:", err)
		os.Exit(1)
	}

	sentinel, err := smallestUnusedByte(raw)
	if err != nil {
		fmt.Fprintln(os.Stderr, "locate:", err)
		os.Exit(1)
	}
	raw = append(raw, sentinel)

	m, wv, err := alphabet.Encode(raw)
	if err != nil {
		fmt.Fprintln(os.Stderr, "locate: encoding text:", err)
		os.Exit(1)
	}

	var sa *suffixarray.SuffixArray
	if *naive {
		sa, err = suffixarray.NaiveBuild(wv)
	} else {
		sa, err = suffixarray.Build(wv)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "locate: building suffix array:", err)
		os.Exit(1)
	}

	ix, err := fmindex.Build(wv, sa)
	if err != nil {
		fmt.Fprintln(os.Stderr, "locate: building FM-index:", err)
		os.Exit(1)
	}

	patternVec, err := alphabet.EncodePattern(m, []byte(*pattern))
	if err != nil {
		fmt.Fprintln(os.Stderr, "locate: encoding pattern:", err)
		os.Exit(1)
	}

	positions, err := ix.LocateWithSA(patternVec, sa)
	if err != nil {
		fmt.Fprintln(os.Stderr, "locate:", err)
		os.Exit(1)
	}

	sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })
	for _, p := range positions {
		fmt.Println(p)
	}
	fmt.Fprintf(os.Stderr, "%d occurrence(s), index %s\n", len(positions), ix.HumanSize())
}

func loadText(text, file string) ([]byte, error) {
	if file != "" {
		return os.ReadFile(file)
	}
	return []byte(text), nil
}

// smallestUnusedByte returns a byte value strictly smaller than every
// byte in s, for use as the FM-index's required sentinel. It always
// proposes byte 0: when s does not contain 0, 0 is smaller than every
// byte of s; when s does contain 0, no byte is strictly smaller than
// 0, so it fails.
func smallestUnusedByte(s []byte) (byte, error) {
	for _, b := range s {
		if b == 0 {
			return 0, fmt.Errorf("input already contains byte 0, no strictly-smaller sentinel exists")
		}
	}
	return 0, nil
}
