package main

import (
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

const (
	// defaultFuzzyThreshold is the minimum score a group must reach to be
	// returned. Callers may adjust it within [minFuzzyThreshold, 100].
	defaultFuzzyThreshold = 70
	minFuzzyThreshold     = 50

	// defaultCandidateCap bounds how many groups are considered per query,
	// keeping search near-linear in the number of distinct keys.
	defaultCandidateCap = 100

	// maxQueryLen caps the query length (in runes) to bound scoring cost.
	maxQueryLen = 200
)

// scoreKey rates a normalized query against a normalized group key.
// A key containing the query verbatim is a perfect hit. Otherwise the
// token sort ratio is taken against the whole key and against each
// "artist - title" segment separately, so a typo'd title ("pocker face")
// still scores high even though the artist tokens dilute the full-key
// comparison.
func scoreKey(qn, key string) int {
	if strings.Contains(key, qn) {
		return 100
	}
	score := fuzzy.TokenSortRatio(qn, key)
	if artist, title, ok := strings.Cut(key, songShapeSeparator); ok {
		if s := fuzzy.TokenSortRatio(qn, artist); s > score {
			score = s
		}
		if s := fuzzy.TokenSortRatio(qn, title); s > score {
			score = s
		}
	}
	return score
}

// clampThreshold forces a caller-supplied threshold into the supported
// range. Out-of-range values are a defined condition, not an error.
func clampThreshold(threshold int) int {
	if threshold < minFuzzyThreshold {
		return minFuzzyThreshold
	}
	if threshold > 100 {
		return 100
	}
	return threshold
}

// searchIndex ranks the index against a free-text query.
//
// The query and every group key compare via an order-insensitive token
// similarity (token sort ratio): two strings with the same word multiset
// score 100 regardless of word order. Groups whose key contains the
// normalized query as a substring are promoted to 100. Candidates are
// capped at candidateCap by score before the threshold filter, then every
// occurrence of each surviving group becomes one ScoredMatch, because a
// song's cluster context matters to the caller.
//
// Result order is fully deterministic: score descending, then normalized
// key ascending, then (sheet, week) ascending, then row ascending.
func searchIndex(query string, idx *SongIndex, threshold, candidateCap int) []ScoredMatch {
	if idx == nil {
		return nil
	}
	if candidateCap <= 0 {
		candidateCap = defaultCandidateCap
	}
	threshold = clampThreshold(threshold)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	if runes := []rune(query); len(runes) > maxQueryLen {
		query = string(runes[:maxQueryLen])
	}
	qn := normalizeSongName(query)
	if qn == "" {
		return nil
	}

	type candidate struct {
		key   string
		score int
	}
	candidates := make([]candidate, 0, len(idx.Keys()))
	for _, key := range idx.Keys() {
		score := scoreKey(qn, key)
		if score > 0 {
			candidates = append(candidates, candidate{key: key, score: score})
		}
	}

	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].score != candidates[b].score {
			return candidates[a].score > candidates[b].score
		}
		return candidates[a].key < candidates[b].key
	})
	if len(candidates) > candidateCap {
		candidates = candidates[:candidateCap]
	}

	var matches []ScoredMatch
	for _, cand := range candidates {
		if cand.score < threshold {
			break // sorted by score, nothing below can pass
		}
		g := idx.Group(cand.key)
		for _, e := range g.Occurrences {
			matches = append(matches, ScoredMatch{Entry: e, Score: cand.score, Group: g})
		}
	}

	sort.Slice(matches, func(a, b int) bool {
		ma, mb := matches[a], matches[b]
		if ma.Score != mb.Score {
			return ma.Score > mb.Score
		}
		if ma.Group.Key != mb.Group.Key {
			return ma.Group.Key < mb.Group.Key
		}
		ca, cb := ma.Entry.Cluster, mb.Entry.Cluster
		if ca.SheetName != cb.SheetName {
			return ca.SheetName < cb.SheetName
		}
		if ca.WeekNumber != cb.WeekNumber {
			return ca.WeekNumber < cb.WeekNumber
		}
		return ma.Entry.Row < mb.Entry.Row
	})
	return matches
}
