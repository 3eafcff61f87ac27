package internal

import (
	"iter"
	"maps"
	"slices"
)

// Defines concatenates several define sequences. When a name appears more
// than once, every occurrence is yielded; the consumer decides which wins.
func Defines(seqs ...iter.Seq2[string, string]) iter.Seq2[string, string] {
	return func(yield func(name, value string) bool) {
		for _, seq := range seqs {
			for name, value := range seq {
				if !yield(name, value) {
					return
				}
			}
		}
	}
}

// SortedDefines yields a define map ordered by name, so listings and
// predefines are reproducible.
func SortedDefines(defs map[string]string) iter.Seq2[string, string] {
	return func(yield func(name, value string) bool) {
		for _, name := range slices.Sorted(maps.Keys(defs)) {
			if !yield(name, defs[name]) {
				return
			}
		}
	}
}
