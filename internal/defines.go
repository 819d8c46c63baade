package internal

import (
	"iter"
	"maps"
	"slices"
)

// MergeDefines merges multiple define sequences into a single sequence, in
// name order. Later sequences override earlier ones.
func MergeDefines(seqs ...iter.Seq2[string, string]) iter.Seq2[string, string] {
	merged := map[string]string{}
	for _, seq := range seqs {
		maps.Insert(merged, seq)
	}

	return func(yield func(name, value string) bool) {
		for _, name := range slices.Sorted(maps.Keys(merged)) {
			if !yield(name, merged[name]) {
				return // Stop if the consumer stops
			}
		}
	}
}
