package model

import "sort"

// Dedup collapses maps sharing a MapKey, retaining one representative
// per key. Input order determines which representative survives (the
// first occurrence); callers that aggregate per-worker results from a
// parallel scan should expect the retained representative to be
// otherwise unobservable, since equal inputs at a given key always
// produce field-equal candidates.
func Dedup(maps []DetectedMap) []DetectedMap {
	seen := make(map[MapKey]struct{}, len(maps))
	out := make([]DetectedMap, 0, len(maps))
	for _, m := range maps {
		k := m.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, m)
	}
	return out
}

// SortByScore orders maps by descending Score in place. This is the
// consumer-facing ordering contract; the scanner itself makes no
// ordering guarantee.
func SortByScore(maps []DetectedMap) {
	sort.SliceStable(maps, func(i, j int) bool {
		return maps[i].Score > maps[j].Score
	})
}
