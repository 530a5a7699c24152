package main

import "strings"

// seedAttributionPrefix is the literal label used in row 1 of each column
// in the legacy sheets ("Ausgangssong von: <name>"). Some sheets carry the
// bare name instead; both forms are accepted.
const seedAttributionPrefix = "Ausgangssong von"

// Attribution is the parsed form of a seed attribution cell. The two legacy
// formats stay explicit so a third one is a new case, not another substring
// branch.
type Attribution struct {
	Prefixed bool
	Name     string
}

// parseAttribution classifies raw attribution text as prefixed or bare and
// extracts the trimmed name.
func parseAttribution(raw string) Attribution {
	trimmed := strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(trimmed, seedAttributionPrefix); ok {
		rest = strings.TrimPrefix(rest, ":")
		return Attribution{Prefixed: true, Name: strings.TrimSpace(rest)}
	}
	return Attribution{Prefixed: false, Name: trimmed}
}

// resolveSeedContributor resolves the contributor of a seed track (row 0)
// from the attribution cell directly beneath it (row 1, same column).
//
// Seed rows are NOT attributed via column 0 of their own row. Applying the
// column-0 rule uniformly to seeds was a real bug in earlier versions of
// the sheets tooling; the rules differ on purpose.
func resolveSeedContributor(row1 CellValue) (string, bool) {
	if row1.Kind != CellText {
		return "", false
	}
	attr := parseAttribution(row1.Text)
	if attr.Name == "" {
		return "", false
	}
	return attr.Name, true
}

// resolveMatchContributor resolves the contributor of a matching-song row
// (row >= 2) from column 0 of the same row.
func resolveMatchContributor(colA CellValue) (string, bool) {
	if colA.Kind != CellText {
		return "", false
	}
	name := strings.TrimSpace(colA.Text)
	return name, name != ""
}
