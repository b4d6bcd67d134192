package analyzer

import (
	"github.com/rivo/uniseg"
)

// Segment splits text into extended grapheme clusters. Joining the result
// reproduces text exactly; an empty string yields an empty slice.
func Segment(text string) []string {
	if text == "" {
		return []string{}
	}

	clusters := make([]string, 0, len(text))
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	return clusters
}
