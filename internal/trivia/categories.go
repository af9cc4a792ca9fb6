package trivia

import (
	"slices"
	"strings"
)

// categories maps topic names to Open Trivia DB category ids. Keys are
// lowercase.
var categories = map[string]int{
	"wellness":    17,
	"tech trends": 18,

	"general knowledge": 9,
	"books":             10,
	"film":              11,
	"music":             12,
	"television":        14,
	"video games":       15,
	"science & nature":  17,
	"computers":         18,
	"mathematics":       19,
	"mythology":         20,
	"sports":            21,
	"geography":         22,
	"history":           23,
	"politics":          24,
	"art":               25,
	"animals":           27,
	"vehicles":          28,
}

// featured are the topics offered on the topic screen, in display order.
var featured = []string{
	"Wellness",
	"Tech Trends",
	"General Knowledge",
	"Science & Nature",
	"History",
	"Geography",
	"Film",
	"Music",
	"Sports",
	"Mathematics",
}

// CategoryFor returns the category id for topic. Matching ignores case and
// surrounding space.
func CategoryFor(topic string) (int, bool) {
	id, ok := categories[strings.ToLower(strings.TrimSpace(topic))]
	return id, ok
}

// Topics returns the featured topic names.
func Topics() []string {
	return slices.Clone(featured)
}
