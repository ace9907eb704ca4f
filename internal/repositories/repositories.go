package repositories

import (
	"database/sql"
	"fmt"
)

// sequenceTables lists the tables that carry a <table>_sequence counter.
var sequenceTables = map[string]bool{
	"cache_entries": true,
}

// NextSequence increments the counter for table and returns the new value. Sequences give cache
// entries a short, human-readable ordering next to their uuid.
func NextSequence(db *sql.DB, table string) (int, error) {
	if !sequenceTables[table] {
		return 0, fmt.Errorf("no sequence for table %q", table)
	}

	var next int
	query := fmt.Sprintf("UPDATE %s_sequence SET value = value + 1 WHERE id = 1 RETURNING value", table)
	if err := db.QueryRow(query).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to advance %s sequence: %w", table, err)
	}
	return next, nil
}
