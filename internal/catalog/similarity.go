package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

const (
	jaccardWeight = 0.6
	editWeight    = 0.4
)

// Similarity scores two normalized token strings in [0,1]:
// 0.6 × Jaccard of the token sets + 0.4 × (1 − normalized edit distance).
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	j := jaccard(strings.Fields(a), strings.Fields(b))

	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	dist := 0.0
	if longest > 0 {
		dist = float64(levenshtein.ComputeDistance(a, b)) / float64(longest)
	}
	return jaccardWeight*j + editWeight*(1-dist)
}

func jaccard(a, b []string) float64 {
	set := make(map[string]uint8, len(a)+len(b))
	for _, t := range a {
		set[t] |= 1
	}
	for _, t := range b {
		set[t] |= 2
	}
	if len(set) == 0 {
		return 0
	}
	shared := 0
	for _, v := range set {
		if v == 3 {
			shared++
		}
	}
	return float64(shared) / float64(len(set))
}
