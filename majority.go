package sapling

import (
	"github.com/emirpasic/gods/sets/linkedhashset"
)

/*
Majority takes a slice of labels and returns the most frequent one. When
several labels are equally frequent, the one that appears first in the slice
is returned.
It returns ErrEmptyInput if no labels are given.
*/
func Majority(labels []int) (int, error) {
	if len(labels) == 0 {
		return 0, ErrEmptyInput
	}
	seen := linkedhashset.New()
	counts := make(map[int]int)
	for _, l := range labels {
		seen.Add(l)
		counts[l]++
	}
	var best, bestCount int
	for _, v := range seen.Values() {
		l := v.(int)
		if counts[l] > bestCount {
			best, bestCount = l, counts[l]
		}
	}
	return best, nil
}

/*
classIndexes takes a slice of labels and returns, for every label, the index
of its class in order of first appearance, and the number of classes.
*/
func classIndexes(labels []int) ([]int, int) {
	seen := linkedhashset.New()
	for _, l := range labels {
		seen.Add(l)
	}
	index := make(map[int]int, seen.Size())
	for i, v := range seen.Values() {
		index[v.(int)] = i
	}
	result := make([]int, len(labels))
	for i, l := range labels {
		result[i] = index[l]
	}
	return result, seen.Size()
}
