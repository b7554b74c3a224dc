package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"searchgap/models"
)

// ErrNoImports is returned when a command asks for the latest import but
// nothing has been ingested yet.
var ErrNoImports = errors.New("no imports stored; run 'searchgap import' first")

// Import describes one stored batch of report files.
type Import struct {
	ImportID    int64
	CreatedAt   time.Time
	ContentHash string
	FileCount   int
	FailedCount int
	RowCount    int
}

// FindOrCreateImport returns the import whose batch content hash matches,
// creating it when absent. The second result reports a cache hit: the same
// files were already ingested and their rows can be reused as-is.
func (db *DB) FindOrCreateImport(contentHash string) (int64, bool, error) {
	var id int64
	err := db.QueryRow(
		"SELECT import_id FROM imports WHERE content_hash = ?", contentHash,
	).Scan(&id)
	if err == nil {
		return id, true, nil
	}
	if err != sql.ErrNoRows {
		return 0, false, fmt.Errorf("failed to look up import: %w", err)
	}

	res, err := db.Exec(
		"INSERT INTO imports (content_hash) VALUES (?)", contentHash,
	)
	if err != nil {
		return 0, false, fmt.Errorf("failed to create import: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read import id: %w", err)
	}
	return id, false, nil
}

// DeleteImport removes an import and, via cascade, its files and rows.
func (db *DB) DeleteImport(importID int64) error {
	if _, err := db.Exec("DELETE FROM imports WHERE import_id = ?", importID); err != nil {
		return fmt.Errorf("failed to delete import: %w", err)
	}
	return nil
}

// RecordImportFile stores the per-file outcome for an import.
func (db *DB) RecordImportFile(importID int64, file, status, errMsg string) error {
	_, err := db.Exec(
		"INSERT INTO import_files (import_id, file, status, error) VALUES (?, ?, ?, ?)",
		importID, file, status, errMsg,
	)
	if err != nil {
		return fmt.Errorf("failed to record import file: %w", err)
	}
	return nil
}

// UpdateImportStats finalizes the batch counters after ingestion.
func (db *DB) UpdateImportStats(importID int64, fileCount, failedCount, rowCount int) error {
	_, err := db.Exec(
		"UPDATE imports SET file_count = ?, failed_count = ?, row_count = ? WHERE import_id = ?",
		fileCount, failedCount, rowCount, importID,
	)
	if err != nil {
		return fmt.Errorf("failed to update import stats: %w", err)
	}
	return nil
}

// InsertRows stores normalized rows for an import in one transaction,
// preserving slice order.
func (db *DB) InsertRows(importID int64, rows []models.Row) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO report_rows
			(import_id, search_term, keyword, campaign, ad_group, match_type, impressions, clicks, cost, account)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(
			importID, r.SearchTerm, r.Keyword, r.Campaign, r.AdGroup,
			r.MatchType, r.Impressions, r.Clicks, r.Cost, r.Account,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rows: %w", err)
	}
	return nil
}

// GetRows returns an import's rows in insertion order.
func (db *DB) GetRows(importID int64) ([]models.Row, error) {
	rows, err := db.Query(`
		SELECT search_term, keyword, campaign, ad_group, match_type, impressions, clicks, cost, account
		FROM report_rows
		WHERE import_id = ?
		ORDER BY row_id
	`, importID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	var out []models.Row
	for rows.Next() {
		var r models.Row
		if err := rows.Scan(
			&r.SearchTerm, &r.Keyword, &r.Campaign, &r.AdGroup,
			&r.MatchType, &r.Impressions, &r.Clicks, &r.Cost, &r.Account,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LatestImportID returns the most recent import, or ErrNoImports.
func (db *DB) LatestImportID() (int64, error) {
	var id int64
	err := db.QueryRow("SELECT import_id FROM imports ORDER BY import_id DESC LIMIT 1").Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrNoImports
	}
	if err != nil {
		return 0, fmt.Errorf("failed to find latest import: %w", err)
	}
	return id, nil
}

// ListImports returns stored imports, newest first.
func (db *DB) ListImports(limit int) ([]Import, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT import_id, created_at, content_hash, file_count, failed_count, row_count
		FROM imports
		ORDER BY import_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}
	defer rows.Close()

	var out []Import
	for rows.Next() {
		var imp Import
		if err := rows.Scan(
			&imp.ImportID, &imp.CreatedAt, &imp.ContentHash,
			&imp.FileCount, &imp.FailedCount, &imp.RowCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan import: %w", err)
		}
		out = append(out, imp)
	}
	return out, rows.Err()
}

// ImportFileOutcome is one file's stored ingestion result.
type ImportFileOutcome struct {
	File   string
	Status string
	Error  string
}

// GetImportFiles returns per-file outcomes for an import.
func (db *DB) GetImportFiles(importID int64) ([]ImportFileOutcome, error) {
	rows, err := db.Query(
		"SELECT file, status, error FROM import_files WHERE import_id = ? ORDER BY file_id",
		importID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query import files: %w", err)
	}
	defer rows.Close()

	var out []ImportFileOutcome
	for rows.Next() {
		var f ImportFileOutcome
		if err := rows.Scan(&f.File, &f.Status, &f.Error); err != nil {
			return nil, fmt.Errorf("failed to scan import file: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
