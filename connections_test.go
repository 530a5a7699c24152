package main

import (
	"reflect"
	"sort"
	"testing"
)

func TestSongConnectionsLookupByAnySpelling(t *testing.T) {
	idx, _ := buildIndex(partyMixCells())

	// Lookup works with any spelling that normalizes to the same key.
	for _, spelling := range []string{
		"Peter Schilling - Major Tom",
		"peter schilling - major tom",
		"  PETER   SCHILLING – MAJOR TOM ",
	} {
		clusters := songConnections(spelling, idx)
		if len(clusters) != 2 {
			t.Fatalf("connections(%q): expected 2 clusters, got %d", spelling, len(clusters))
		}
	}
}

func TestSongConnectionsUnknownSongYieldsEmpty(t *testing.T) {
	idx, _ := buildIndex(partyMixCells())
	if got := songConnections("No Such Band - No Such Song", idx); len(got) != 0 {
		t.Fatalf("expected empty result for unknown song, got %d clusters", len(got))
	}
}

func TestSongConnectionsEntriesOrderedSeedFirst(t *testing.T) {
	idx, _ := buildIndex(partyMixCells())

	for _, cl := range songConnections("Live is Life - Opus", idx) {
		if len(cl.Entries) == 0 || !cl.Entries[0].IsSeed {
			t.Fatalf("cluster %s: expected seed entry first", cl.RoundDisplay())
		}
		for i := 1; i < len(cl.Entries); i++ {
			if cl.Entries[i].Row <= cl.Entries[i-1].Row {
				t.Fatalf("cluster %s: entries not in row order", cl.RoundDisplay())
			}
		}
	}
}

func TestAllSongsSortedAndDistinct(t *testing.T) {
	idx, _ := buildIndex(partyMixCells())

	songs := allSongs(idx)
	if !sort.StringsAreSorted(songs) {
		t.Fatalf("allSongs not sorted")
	}
	seen := make(map[string]bool)
	for _, s := range songs {
		if seen[s] {
			t.Fatalf("duplicate spelling %q in allSongs", s)
		}
		seen[s] = true
	}
	if !seen["Lady Gaga - Poker Face"] {
		t.Fatalf("expected poker face in song list")
	}
}

func TestAllContributorsIncludesSeedAndColumnNames(t *testing.T) {
	idx, _ := buildIndex(partyMixCells())

	got := allContributors(idx)
	want := []string{"Alex R.", "Anusch M.", "Max"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("allContributors = %v, want %v", got, want)
	}
}

func TestContributorSongsListsAllCredits(t *testing.T) {
	idx, _ := buildIndex(partyMixCells())

	// Anusch M. contributed row-3 songs in both weeks and is the week-2
	// seed contributor.
	entries := contributorSongs("Anusch M.", idx)
	if len(entries) != 3 {
		t.Fatalf("expected 3 credited entries, got %d", len(entries))
	}
	seeds := 0
	for _, e := range entries {
		if e.IsSeed {
			seeds++
		}
	}
	if seeds != 1 {
		t.Fatalf("expected exactly 1 seed credit, got %d", seeds)
	}

	if got := contributorSongs("Nobody", idx); len(got) != 0 {
		t.Fatalf("unknown contributor should yield no entries")
	}
}

func TestCorpusStatsCounts(t *testing.T) {
	idx, _ := buildIndex(partyMixCells())

	stats := corpusStats(idx)
	if stats.Sheets != 1 || stats.Clusters != 2 {
		t.Fatalf("unexpected sheet/cluster counts: %+v", stats)
	}
	// 2 seeds + 6 matches.
	if stats.Entries != 8 {
		t.Fatalf("expected 8 entries, got %d", stats.Entries)
	}
	// Major Tom appears twice under one key.
	if stats.Groups != 7 {
		t.Fatalf("expected 7 groups, got %d", stats.Groups)
	}
	if stats.Contributors != 3 {
		t.Fatalf("expected 3 contributors, got %d", stats.Contributors)
	}
}
