package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

const mockWorkbookName = "song_matcher_mock.xlsx"

// loadWorkbookCells reads every populated cell of every sheet in the
// workbook into the engine's zero-based RawCell form, in deterministic
// sheet/row/column order. Error-valued cells are emitted as CellOther so
// the index builder can count them as skipped instead of indexing junk.
func loadWorkbookCells(path string) ([]RawCell, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	var cells []RawCell
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		for r, row := range rows {
			for c, value := range row {
				if strings.TrimSpace(value) == "" {
					continue
				}
				cell := RawCell{SheetName: sheet, Column: c, Row: r, Value: TextCell(value)}
				if name, err := excelize.CoordinatesToCellName(c+1, r+1); err == nil {
					if ct, err := f.GetCellType(sheet, name); err == nil && ct == excelize.CellTypeError {
						cell.Value = OtherCell()
					}
				}
				cells = append(cells, cell)
			}
		}
	}
	return cells, nil
}

// findCorpusFile resolves the workbook to load. dataPath may point directly
// at a file or at a directory holding .xlsx files; in a directory the first
// file in name order wins. When nothing exists yet, the mock workbook is
// written so a fresh checkout starts with a searchable corpus.
func findCorpusFile(dataPath string) (string, error) {
	info, err := os.Stat(dataPath)
	if err == nil && !info.IsDir() {
		return dataPath, nil
	}
	if err != nil {
		if mkErr := os.MkdirAll(dataPath, 0o755); mkErr != nil {
			return "", fmt.Errorf("create data dir %s: %w", dataPath, mkErr)
		}
	}

	entries, err := os.ReadDir(dataPath)
	if err != nil {
		return "", fmt.Errorf("read data dir %s: %w", dataPath, err)
	}
	var candidates []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".xlsx") {
			candidates = append(candidates, e.Name())
		}
	}
	if len(candidates) > 0 {
		sort.Strings(candidates)
		return filepath.Join(dataPath, candidates[0]), nil
	}

	mockPath := filepath.Join(dataPath, mockWorkbookName)
	if err := writeMockWorkbook(mockPath); err != nil {
		return "", err
	}
	log.Printf("[CORPUS] no workbook found in %s, wrote mock corpus %s", dataPath, mockWorkbookName)
	return mockPath, nil
}

// mockSheet describes one sheet of the bootstrap corpus. Each week column
// is [seed, attribution, songs...]; contributors align with the song rows.
type mockSheet struct {
	name         string
	contributors []string
	weeks        [][]string
}

var mockSheets = []mockSheet{
	{
		name:         "Party Mix",
		contributors: []string{"Alex Awesome (Alexander Bauer)", "Alex R.", "Anusch M."},
		weeks: [][]string{
			{
				"Peter Schilling - Major Tom",
				"Ausgangssong von: Max",
				"Pointer Sisters - I'm so excited",
				"Live is Life - Opus",
				"Falco - Rock Me Amadeus",
			},
			{
				"Ski Aggu - Party Sahne",
				"Ausgangssong von: Anusch M.",
				"Miksu - Nachts Wach",
				"Only 4 Life - Remix Rubi, Farbe Brown",
				"Sido - Medizin (Sonic Empire Remix)",
			},
			{
				"The way I are - Timbaland ft Keri Hilson",
				"Ausgangssong von: Alex R.",
				"Pink & Redman - Get The Party Started",
				"Sugababes - Push The Button",
				"Lady Gaga - Poker Face",
			},
		},
	},
	{
		name:         "Rock Classics",
		contributors: []string{"John D.", "Sarah M.", "Mike K."},
		weeks: [][]string{
			{
				"AC/DC - Highway to Hell",
				"Ausgangssong von: John D.",
				"Led Zeppelin - Whole Lotta Love",
				"Deep Purple - Smoke on the Water",
				"Black Sabbath - Paranoid",
			},
			{
				"Queen - We Will Rock You",
				"Ausgangssong von: Sarah M.",
				"Queen - Another One Bites the Dust",
				"The Rolling Stones - Start Me Up",
				"Joan Jett - I Love Rock N Roll",
			},
			{
				"Guns N' Roses - Sweet Child O' Mine",
				"Ausgangssong von: Mike K.",
				"Bon Jovi - Livin' on a Prayer",
				"Journey - Don't Stop Believin'",
				"Def Leppard - Pour Some Sugar on Me",
			},
		},
	},
	{
		name:         "Electronic Vibes",
		contributors: []string{"Emma L.", "David R.", "Lisa K."},
		weeks: [][]string{
			{
				"Daft Punk - One More Time",
				"Ausgangssong von: Emma L.",
				"Modjo - Lady (Hear Me Tonight)",
				"Stardust - Music Sounds Better With You",
				"Cassius - Feeling for You",
			},
			{
				"The Prodigy - Firestarter",
				"Ausgangssong von: David R.",
				"Chemical Brothers - Block Rockin' Beats",
				"Fatboy Slim - Right Here Right Now",
				"Basement Jaxx - Where's Your Head At",
			},
			{
				"Calvin Harris - Summer",
				"Ausgangssong von: Lisa K.",
				"David Guetta - Titanium ft Sia",
				"Avicii - Wake Me Up",
				"Martin Garrix - Animals",
			},
		},
	},
}

// writeMockWorkbook writes the bootstrap corpus: per sheet, column A holds
// contributor names from row 3 down, and each week column holds seed,
// attribution, then songs.
func writeMockWorkbook(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	for _, ms := range mockSheets {
		if _, err := f.NewSheet(ms.name); err != nil {
			return fmt.Errorf("create sheet %s: %w", ms.name, err)
		}
		for i, contributor := range ms.contributors {
			cell, err := excelize.CoordinatesToCellName(1, i+3)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(ms.name, cell, contributor); err != nil {
				return err
			}
		}
		for w, week := range ms.weeks {
			for r, value := range week {
				cell, err := excelize.CoordinatesToCellName(w+2, r+1)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(ms.name, cell, value); err != nil {
					return err
				}
			}
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}
