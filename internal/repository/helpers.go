package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// maxInArgs keeps IN (...) lists well under SQLite's bound-parameter limit.
const maxInArgs = 500

// formatTime stores timestamps as RFC3339 UTC so text comparison orders them.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

// nullableIntToValue converts a *int to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the int value.
func nullableIntToValue(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullIntToPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

// chunkIDs splits ids into batches and returns a "?, ?, ..." placeholder
// list with the matching args for each batch.
func chunkIDs(ids []string) (placeholders []string, args [][]any) {
	for start := 0; start < len(ids); start += maxInArgs {
		end := min(start+maxInArgs, len(ids))
		batch := make([]any, 0, end-start)
		for _, id := range ids[start:end] {
			batch = append(batch, id)
		}
		placeholders = append(placeholders, strings.TrimSuffix(strings.Repeat("?, ", len(batch)), ", "))
		args = append(args, batch)
	}
	return placeholders, args
}
