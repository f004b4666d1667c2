package catalog

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// loadSQLite reads canonical entity names from an entities(name) table,
// preserving insertion order.
func loadSQLite(path string) ([]string, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open catalog db %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT name FROM entities ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query entities from %s: %w", path, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read entities from %s: %w", path, err)
	}
	return cleanNames(names), nil
}

// WriteSQLite creates (or replaces) the entities table at path and inserts
// the given names in order. Used by the import subcommand to seed a
// catalog database from another source.
func WriteSQLite(path string, names []string) error {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("open catalog db %s: %w", path, err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DROP TABLE IF EXISTS entities`); err != nil {
		return fmt.Errorf("drop entities: %w", err)
	}
	if _, err := tx.Exec(`CREATE TABLE entities (name TEXT NOT NULL)`); err != nil {
		return fmt.Errorf("create entities: %w", err)
	}
	for _, name := range names {
		if _, err := tx.Exec(`INSERT INTO entities (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("insert %q: %w", name, err)
		}
	}
	return tx.Commit()
}
