package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Imports: one row per ingested batch of report files, deduplicated by the
-- content hash of the batch.
CREATE TABLE IF NOT EXISTS imports (
    import_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    content_hash TEXT NOT NULL UNIQUE,
    file_count INTEGER DEFAULT 0,
    failed_count INTEGER DEFAULT 0,
    row_count INTEGER DEFAULT 0
);

-- Per-file outcome within an import. A failed file never aborts the batch;
-- its error is recorded here.
CREATE TABLE IF NOT EXISTS import_files (
    file_id INTEGER PRIMARY KEY AUTOINCREMENT,
    import_id INTEGER NOT NULL,
    file TEXT NOT NULL,
    status TEXT NOT NULL,        -- parsed, failed
    error TEXT,
    FOREIGN KEY (import_id) REFERENCES imports(import_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_import_files_import ON import_files(import_id);

-- Normalized report rows. row_id preserves insertion order: file order,
-- then original row order within each file.
CREATE TABLE IF NOT EXISTS report_rows (
    row_id INTEGER PRIMARY KEY AUTOINCREMENT,
    import_id INTEGER NOT NULL,
    search_term TEXT NOT NULL,
    keyword TEXT,
    campaign TEXT,
    ad_group TEXT,
    match_type TEXT,
    impressions REAL DEFAULT 0,
    clicks REAL DEFAULT 0,
    cost REAL DEFAULT 0,
    account TEXT NOT NULL,
    FOREIGN KEY (import_id) REFERENCES imports(import_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_rows_import ON report_rows(import_id);
CREATE INDEX IF NOT EXISTS idx_rows_keyword ON report_rows(keyword);
CREATE INDEX IF NOT EXISTS idx_rows_account ON report_rows(account);
CREATE INDEX IF NOT EXISTS idx_rows_campaign ON report_rows(campaign);
`
