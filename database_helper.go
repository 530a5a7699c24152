package main

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ============================================================================
// LIKES
// ============================================================================

// GetLikes returns the full song -> like count map.
func GetLikes(db *sql.DB) (map[string]int, error) {
	rows, err := db.Query("SELECT song_name, count FROM likes")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := make(map[string]int)
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			continue
		}
		likes[name] = count
	}
	return likes, rows.Err()
}

// AddLike increments the counter for a song and returns the new count.
func AddLike(db *sql.DB, songName string) (int, error) {
	_, err := db.Exec(`INSERT INTO likes (song_name, count) VALUES (?, 1)
		ON CONFLICT(song_name) DO UPDATE SET count = count + 1`, songName)
	if err != nil {
		return 0, err
	}
	var count int
	if err := db.QueryRow("SELECT count FROM likes WHERE song_name = ?", songName).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// LikesCSV renders the likes map as CSV, most-liked first, name ascending on
// ties, with quotes escaped for safe spreadsheet import.
func LikesCSV(likes map[string]int) string {
	type row struct {
		name  string
		count int
	}
	rows := make([]row, 0, len(likes))
	for name, count := range likes {
		rows = append(rows, row{name, count})
	}
	sort.Slice(rows, func(a, b int) bool {
		if rows[a].count != rows[b].count {
			return rows[a].count > rows[b].count
		}
		return rows[a].name < rows[b].name
	})

	var sb strings.Builder
	sb.WriteString("Song,Likes\n")
	for _, r := range rows {
		escaped := strings.ReplaceAll(r.name, `"`, `""`)
		fmt.Fprintf(&sb, "\"%s\",%d\n", escaped, r.count)
	}
	return sb.String()
}

// ============================================================================
// FEEDBACK
// ============================================================================

// InsertFeedback stores one feedback record, filling in ID and timestamp.
func InsertFeedback(db *sql.DB, fb *Feedback) error {
	fb.ID = GenerateFeedbackID()
	fb.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	_, err := db.Exec("INSERT INTO feedback (id, type, description, contact, created_at) VALUES (?, ?, ?, ?, ?)",
		fb.ID, fb.Type, fb.Description, fb.Contact, fb.CreatedAt)
	return err
}

// ListFeedback returns all feedback records, newest first.
func ListFeedback(db *sql.DB) ([]Feedback, error) {
	rows, err := db.Query("SELECT id, type, description, COALESCE(contact, ''), created_at FROM feedback ORDER BY created_at DESC, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Feedback
	for rows.Next() {
		var fb Feedback
		if err := rows.Scan(&fb.ID, &fb.Type, &fb.Description, &fb.Contact, &fb.CreatedAt); err != nil {
			continue
		}
		out = append(out, fb)
	}
	return out, rows.Err()
}
