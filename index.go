package main

import (
	"log"
	"sort"
	"strconv"
	"strings"
)

func fmtRoundDisplay(sheet string, week int) string {
	return sheet + ", Woche " + strconv.Itoa(week)
}

// buildIndex turns a corpus snapshot of raw cells into an immutable
// SongIndex. It is deterministic for a given cell sequence and runs in one
// linear pass over the cells (plus sorts over the far smaller key and
// cluster sets); no per-lookup rescanning happens afterwards.
//
// Malformed input never fails the build: skipped cells, unresolvable
// contributor slots and duplicate cluster keys are reported in the returned
// diagnostics.
func buildIndex(cells []RawCell) (*SongIndex, IndexDiagnostics) {
	var diag IndexDiagnostics

	// Metadata lookups: seed attribution per column (row 1) and contributor
	// names per row (column 0).
	attribution := make(map[ClusterKey]CellValue)
	contributorCol := make(map[string]map[int]CellValue)
	for _, c := range cells {
		if c.Row == 1 && c.Column >= 1 {
			attribution[ClusterKey{c.SheetName, c.Column}] = c.Value
		}
		if c.Column == 0 && c.Row >= 2 {
			byRow := contributorCol[c.SheetName]
			if byRow == nil {
				byRow = make(map[int]CellValue)
				contributorCol[c.SheetName] = byRow
			}
			byRow[c.Row] = c.Value
		}
	}

	// Materialize clusters from the seed row. On a duplicate (sheet, week)
	// key the last cell in the sequence wins, deterministically.
	clusters := make(map[ClusterKey]*Cluster)
	seedCellIdx := make(map[ClusterKey]int) // index of the winning seed cell
	for i, c := range cells {
		if c.Row != 0 || c.Column < 1 {
			continue
		}
		key := ClusterKey{c.SheetName, c.Column}
		switch c.Value.Kind {
		case CellEmpty:
			continue // column without a seed; its cells are orphans
		case CellOther:
			diag.SkippedCells++
			continue
		}
		seed := strings.TrimSpace(c.Value.Text)
		if seed == "" {
			continue
		}
		if _, dup := clusters[key]; dup {
			diag.DuplicateClusters = append(diag.DuplicateClusters, fmtRoundDisplay(key.SheetName, key.WeekNumber))
			log.Printf("[INDEX] duplicate cluster key %s, Woche %d: keeping last seed %q", key.SheetName, key.WeekNumber, seed)
		}
		contributor, ok := resolveSeedContributor(attribution[key])
		if !ok {
			diag.MissingContributors++
		}
		clusters[key] = &Cluster{
			SheetName:       key.SheetName,
			WeekNumber:      key.WeekNumber,
			SeedTrack:       seed,
			SeedContributor: contributor,
		}
		seedCellIdx[key] = i
	}

	// Materialize song entries in cell-sequence order so group occurrence
	// order is reproducible from the same snapshot.
	groups := make(map[string]*NormalizedGroup)
	addOccurrence := func(e *SongEntry) {
		key := normalizeSongName(e.DisplayName)
		g := groups[key]
		if g == nil {
			g = &NormalizedGroup{Key: key}
			groups[key] = g
		}
		if !containsString(g.Variants, e.DisplayName) {
			g.Variants = append(g.Variants, e.DisplayName)
		}
		g.Occurrences = append(g.Occurrences, e)
		e.Cluster.Entries = append(e.Cluster.Entries, e)
	}

	for i, c := range cells {
		if c.Column < 1 {
			continue
		}
		key := ClusterKey{c.SheetName, c.Column}
		switch c.Row {
		case 0:
			// Emit the seed entry at the position of the winning seed cell.
			if cl := clusters[key]; cl != nil && seedCellIdx[key] == i {
				addOccurrence(&SongEntry{
					DisplayName: cl.SeedTrack,
					Contributor: cl.SeedContributor,
					IsSeed:      true,
					Row:         0,
					Cluster:     cl,
				})
			}
		case 1:
			// Attribution metadata, never a playable song.
		default:
			cl := clusters[key]
			if cl == nil {
				if c.Value.Kind != CellEmpty {
					diag.OrphanCells++
				}
				continue
			}
			switch c.Value.Kind {
			case CellEmpty:
				continue
			case CellOther:
				diag.SkippedCells++
				continue
			}
			name := strings.TrimSpace(c.Value.Text)
			if name == "" {
				continue
			}
			contributor, ok := resolveMatchContributor(contributorCol[c.SheetName][c.Row])
			if !ok {
				diag.MissingContributors++
			}
			addOccurrence(&SongEntry{
				DisplayName: name,
				Contributor: contributor,
				IsSeed:      false,
				Row:         c.Row,
				Cluster:     cl,
			})
		}
	}

	idx := &SongIndex{groups: groups}

	idx.keys = make([]string, 0, len(groups))
	for k := range groups {
		idx.keys = append(idx.keys, k)
	}
	sort.Strings(idx.keys)

	idx.clusters = make([]*Cluster, 0, len(clusters))
	sheetSet := make(map[string]bool)
	for _, cl := range clusters {
		sort.Slice(cl.Entries, func(a, b int) bool { return cl.Entries[a].Row < cl.Entries[b].Row })
		idx.clusters = append(idx.clusters, cl)
		sheetSet[cl.SheetName] = true
	}
	sort.Slice(idx.clusters, func(a, b int) bool {
		if idx.clusters[a].SheetName != idx.clusters[b].SheetName {
			return idx.clusters[a].SheetName < idx.clusters[b].SheetName
		}
		return idx.clusters[a].WeekNumber < idx.clusters[b].WeekNumber
	})

	for s := range sheetSet {
		idx.sheets = append(idx.sheets, s)
	}
	sort.Strings(idx.sheets)

	sort.Strings(diag.DuplicateClusters)
	return idx, diag
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
