package main

import (
	"fmt"
	"sort"
	"strings"
)

// SheetIssue is one structural problem found in a sheet column.
type SheetIssue struct {
	Sheet   string `json:"sheet"`
	Week    int    `json:"week,omitempty"`
	Problem string `json:"problem"`
}

// ValidationReport summarizes how well a raw cell snapshot matches the
// expected sheet layout (row 0 seeds, row 1 attribution, column 0
// contributors, rows >= 2 songs).
type ValidationReport struct {
	Sheets       int          `json:"sheets"`
	Columns      int          `json:"columns"`
	SongCells    int          `json:"song_cells"`
	Issues       []SheetIssue `json:"issues"`
	IssueColumns int          `json:"issue_columns"`
}

// validateCells checks the corpus layout column by column and reports every
// deviation that would degrade the index: columns with songs but no seed,
// seeds without a usable attribution row, song rows without a contributor
// name in column 0, and non-text cells.
func validateCells(cells []RawCell) ValidationReport {
	type colState struct {
		seed        CellValue
		attribution CellValue
		songRows    []int
		nonText     int
	}
	columns := make(map[ClusterKey]*colState)
	contributorRows := make(map[string]map[int]bool)
	sheets := make(map[string]bool)

	for _, c := range cells {
		sheets[c.SheetName] = true
		if c.Column == 0 {
			if c.Row >= 2 && c.Value.Kind == CellText && strings.TrimSpace(c.Value.Text) != "" {
				byRow := contributorRows[c.SheetName]
				if byRow == nil {
					byRow = make(map[int]bool)
					contributorRows[c.SheetName] = byRow
				}
				byRow[c.Row] = true
			}
			continue
		}
		key := ClusterKey{c.SheetName, c.Column}
		st := columns[key]
		if st == nil {
			st = &colState{}
			columns[key] = st
		}
		switch c.Row {
		case 0:
			st.seed = c.Value
		case 1:
			st.attribution = c.Value
		default:
			if c.Value.Kind == CellOther {
				st.nonText++
			} else if c.Value.Kind == CellText && strings.TrimSpace(c.Value.Text) != "" {
				st.songRows = append(st.songRows, c.Row)
			}
		}
	}

	report := ValidationReport{Sheets: len(sheets), Columns: len(columns)}
	issueCols := make(map[ClusterKey]bool)
	addIssue := func(key ClusterKey, problem string) {
		report.Issues = append(report.Issues, SheetIssue{Sheet: key.SheetName, Week: key.WeekNumber, Problem: problem})
		issueCols[key] = true
	}

	keys := make([]ClusterKey, 0, len(columns))
	for key := range columns {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].SheetName != keys[b].SheetName {
			return keys[a].SheetName < keys[b].SheetName
		}
		return keys[a].WeekNumber < keys[b].WeekNumber
	})

	for _, key := range keys {
		st := columns[key]
		report.SongCells += len(st.songRows)

		hasSeed := st.seed.Kind == CellText && strings.TrimSpace(st.seed.Text) != ""
		if !hasSeed && len(st.songRows) > 0 {
			addIssue(key, fmt.Sprintf("column has %d songs but no seed track in row 1", len(st.songRows)))
		}
		if hasSeed {
			if _, ok := resolveSeedContributor(st.attribution); !ok {
				addIssue(key, "seed track has no usable attribution in row 2")
			}
		}
		if st.nonText > 0 {
			addIssue(key, fmt.Sprintf("%d non-text cells in song rows", st.nonText))
		}
		for _, row := range st.songRows {
			if !contributorRows[key.SheetName][row] {
				addIssue(key, fmt.Sprintf("song in row %d has no contributor name in column A", row+1))
			}
		}
	}

	report.IssueColumns = len(issueCols)
	return report
}
