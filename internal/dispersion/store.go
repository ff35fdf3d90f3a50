package dispersion

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// The pair-indexed dispersion table is persisted as a single SQLite table.
// Arrays are JSON-encoded in text columns; the table is small (one row per
// measured pair) and read once at startup.
const pairSchema = `
CREATE TABLE IF NOT EXISTS pairs (
	pair       TEXT PRIMARY KEY,
	periods    TEXT NOT NULL,
	velocities TEXT NOT NULL
);
`

// LoadPairTable reads every pair curve from the SQLite file at path.
func LoadPairTable(path string) (PairTable, error) {
	// Opening a missing path would create an empty database; surface the
	// missing file instead.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("pair table: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open pair table: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT pair, periods, velocities FROM pairs`)
	if err != nil {
		return nil, fmt.Errorf("query pair table %s: %w", path, err)
	}
	defer rows.Close()

	table := make(PairTable)
	for rows.Next() {
		var pair string
		var periods, velocities []byte
		if err := rows.Scan(&pair, &periods, &velocities); err != nil {
			return nil, fmt.Errorf("scan pair table: %w", err)
		}

		var c Curve
		if err := json.Unmarshal(periods, &c.Periods); err != nil {
			return nil, fmt.Errorf("pair %s: decode periods: %w", pair, err)
		}
		if err := json.Unmarshal(velocities, &c.Velocities); err != nil {
			return nil, fmt.Errorf("pair %s: decode velocities: %w", pair, err)
		}
		if len(c.Periods) != len(c.Velocities) {
			return nil, fmt.Errorf("pair %s: %d periods but %d velocities", pair, len(c.Periods), len(c.Velocities))
		}
		table[pair] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read pair table %s: %w", path, err)
	}

	return table, nil
}

// SavePairTable writes a pair table to a SQLite file, replacing any existing
// rows for the same keys. Used by fixture generation and upstream tooling.
func SavePairTable(path string, table PairTable) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open pair table: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(pairSchema); err != nil {
		return fmt.Errorf("create pair table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin pair table write: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO pairs (pair, periods, velocities) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare pair insert: %w", err)
	}
	defer stmt.Close()

	for pair, c := range table {
		periods, err := json.Marshal(c.Periods)
		if err != nil {
			return fmt.Errorf("pair %s: encode periods: %w", pair, err)
		}
		velocities, err := json.Marshal(c.Velocities)
		if err != nil {
			return fmt.Errorf("pair %s: encode velocities: %w", pair, err)
		}
		if _, err := stmt.Exec(pair, periods, velocities); err != nil {
			return fmt.Errorf("write pair %s: %w", pair, err)
		}
	}

	return tx.Commit()
}
