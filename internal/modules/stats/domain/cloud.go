package domain

import (
	"hash/fnv"
	"sort"
)

type TagCount struct {
	Tag   string
	Count int
}

// CloudWord is a tag sized for display. Weight runs from 1 (least used) to 5.
type CloudWord struct {
	Tag    string
	Count  int
	Weight int
}

const MaxWeight = 5

// TagCloud scales counts linearly between the least and most used tags and
// orders words by a hash of the tag so the layout is stable between renders.
func TagCloud(tags []TagCount) []CloudWord {
	if len(tags) == 0 {
		return nil
	}
	lo, hi := tags[0].Count, tags[0].Count
	for _, t := range tags[1:] {
		lo = min(lo, t.Count)
		hi = max(hi, t.Count)
	}
	spread := hi - lo
	if spread == 0 {
		spread = 1
	}

	words := make([]CloudWord, 0, len(tags))
	for _, t := range tags {
		scaled := float64(t.Count-lo) / float64(spread) * float64(MaxWeight-1)
		words = append(words, CloudWord{Tag: t.Tag, Count: t.Count, Weight: 1 + int(scaled+0.5)})
	}
	sort.SliceStable(words, func(i, j int) bool {
		a, b := tagHash(words[i].Tag), tagHash(words[j].Tag)
		if a != b {
			return a < b
		}
		return words[i].Tag < words[j].Tag
	})
	return words
}

func tagHash(tag string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(tag))
	return h.Sum32()
}
