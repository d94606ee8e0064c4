package store

import "database/sql"

// schema contains the SQL statements to set up the database. These run on
// startup to ensure tables exist. Money columns store decimal strings to
// avoid float drift.
const schema = `
CREATE TABLE IF NOT EXISTS products (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    price TEXT NOT NULL,
    unit TEXT NOT NULL,
    keywords TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS sales (
    id TEXT PRIMARY KEY,
    date TEXT NOT NULL,
    timestamp INTEGER NOT NULL,
    total TEXT NOT NULL,
    note TEXT NOT NULL DEFAULT '',
    items TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_sales_timestamp ON sales(timestamp);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
