package main

import (
	"sort"
	"strings"
)

// songConnections returns every cluster containing the given song, looked up
// by normalized name against the prebuilt index. An unknown song yields an
// empty result, not an error. Each cluster carries its full entry list in
// row order, seed first. A song appearing twice in one cluster still yields
// that cluster once, in first-occurrence order.
func songConnections(songName string, idx *SongIndex) []*Cluster {
	if idx == nil {
		return nil
	}
	g := idx.Group(normalizeSongName(songName))
	if g == nil {
		return nil
	}
	seen := make(map[ClusterKey]bool)
	var out []*Cluster
	for _, e := range g.Occurrences {
		key := e.Cluster.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e.Cluster)
	}
	return out
}

// allSongs returns every distinct display spelling in the index, sorted
// ascending. The frontends use it for autocomplete.
func allSongs(idx *SongIndex) []string {
	if idx == nil {
		return nil
	}
	var out []string
	for _, key := range idx.Keys() {
		out = append(out, idx.Group(key).Variants...)
	}
	sort.Strings(out)
	return out
}

// allContributors returns every distinct contributor name, sorted ascending.
// Seed contributors and column-0 contributors both count.
func allContributors(idx *SongIndex) []string {
	if idx == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, cl := range idx.Clusters() {
		for _, e := range cl.Entries {
			name := strings.TrimSpace(e.Contributor)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// contributorSongs returns every entry credited to the given person, with
// cluster context, ordered by sheet, week, then row.
func contributorSongs(name string, idx *SongIndex) []*SongEntry {
	if idx == nil {
		return nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	var out []*SongEntry
	for _, cl := range idx.Clusters() {
		for _, e := range cl.Entries {
			if strings.TrimSpace(e.Contributor) == name {
				out = append(out, e)
			}
		}
	}
	// Clusters() is already (sheet, week)-sorted and entries are row-sorted,
	// so out is in the documented order.
	return out
}

// corpusStats summarizes an index for the stats endpoint.
func corpusStats(idx *SongIndex) CorpusStats {
	if idx == nil {
		return CorpusStats{}
	}
	entries := 0
	for _, cl := range idx.Clusters() {
		entries += len(cl.Entries)
	}
	return CorpusStats{
		Sheets:       len(idx.Sheets()),
		Clusters:     len(idx.Clusters()),
		Entries:      entries,
		Groups:       len(idx.Keys()),
		Contributors: len(allContributors(idx)),
	}
}
