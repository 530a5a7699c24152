package main

import (
	"sort"
	"strings"
)

const defaultTopSongsLimit = 50

// songShapeSeparator is what distinguishes a real "artist - title" entry
// from stray metadata text that round-tripped into the sheets.
const songShapeSeparator = " - "

// hasSongShape reports whether a display name looks like "artist - title":
// a separator with non-empty text on both sides.
func hasSongShape(name string) bool {
	left, right, ok := strings.Cut(name, songShapeSeparator)
	if !ok {
		return false
	}
	return strings.TrimSpace(left) != "" && strings.TrimSpace(right) != ""
}

// topSongs ranks groups by total occurrence count, descending, ties broken
// by normalized key ascending. A group's display name is its first-seen
// variant; groups without the artist-title shape are filtered out. The
// result is truncated to limit; limit <= 0 yields an empty slice.
func topSongs(idx *SongIndex, limit int) []TopSong {
	if idx == nil || limit <= 0 {
		return nil
	}
	songs := make([]TopSong, 0, len(idx.Keys()))
	for _, key := range idx.Keys() {
		g := idx.Group(key)
		display := g.Variants[0]
		if !hasSongShape(display) {
			continue
		}
		songs = append(songs, TopSong{
			DisplayName: display,
			Normalized:  key,
			Count:       g.Count(),
			Variants:    g.Variants,
		})
	}
	sort.SliceStable(songs, func(a, b int) bool {
		if songs[a].Count != songs[b].Count {
			return songs[a].Count > songs[b].Count
		}
		return songs[a].Normalized < songs[b].Normalized
	})
	if len(songs) > limit {
		songs = songs[:limit]
	}
	return songs
}

// VariantCount is one spelling of a duplicated song with its occurrence
// count.
type VariantCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DuplicateGroup is a normalized key that collects more than one distinct
// spelling.
type DuplicateGroup struct {
	Key      string         `json:"key"`
	Total    int            `json:"total"`
	Variants []VariantCount `json:"variants"`
}

// duplicateReport lists every group with more than one spelling variant,
// with per-variant occurrence counts, key ascending. Useful for cleaning
// the source sheets.
func duplicateReport(idx *SongIndex) []DuplicateGroup {
	if idx == nil {
		return nil
	}
	var out []DuplicateGroup
	for _, key := range idx.Keys() {
		g := idx.Group(key)
		if len(g.Variants) < 2 {
			continue
		}
		counts := make(map[string]int)
		for _, e := range g.Occurrences {
			counts[e.DisplayName]++
		}
		dup := DuplicateGroup{Key: key, Total: g.Count()}
		for _, v := range g.Variants {
			dup.Variants = append(dup.Variants, VariantCount{Name: v, Count: counts[v]})
		}
		out = append(out, dup)
	}
	return out
}
