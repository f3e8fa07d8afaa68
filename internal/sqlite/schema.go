package sqlite

// Schema DDL. Statements are idempotent so an existing database is reused.
const (
	createTallies = `CREATE TABLE IF NOT EXISTS tallies (
    tally_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createTallyCounts = `CREATE TABLE IF NOT EXISTS tally_counts (
    tally_id TEXT NOT NULL,
    key TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    count INTEGER NOT NULL CHECK (count > 0),
    PRIMARY KEY (tally_id, key),
    FOREIGN KEY (tally_id) REFERENCES tallies(tally_id) ON DELETE CASCADE
);`
)

// Index DDL.
const (
	idxTalliesName        = `CREATE INDEX IF NOT EXISTS idx_tallies_name ON tallies(name);`
	idxTallyCountsOrdinal = `CREATE INDEX IF NOT EXISTS idx_tally_counts_ordinal ON tally_counts(tally_id, ordinal);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createTallies,
	createTallyCounts,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxTalliesName,
	idxTallyCountsOrdinal,
}

// upsertCount inserts a key with the next ordinal of its tally, or adds to
// the existing count. One statement, so the look-up-or-insert is atomic.
const upsertCount = `INSERT INTO tally_counts (tally_id, key, ordinal, count)
VALUES (?, ?, (SELECT COALESCE(MAX(ordinal), -1) + 1 FROM tally_counts WHERE tally_id = ?), ?)
ON CONFLICT (tally_id, key) DO UPDATE SET count = count + excluded.count;`
