package db

import (
	"errors"
	"testing"

	"searchgap/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func testRows() []models.Row {
	return []models.Row{
		{SearchTerm: "roof repair near me", Keyword: "roof repair", Campaign: "Roofing", AdGroup: "Repairs", MatchType: "Broad", Impressions: 100, Clicks: 10, Cost: 25.5, Account: "a.csv"},
		{SearchTerm: "free quote", Keyword: "", Campaign: "Roofing", AdGroup: "Quotes", MatchType: "", Impressions: 50, Clicks: 5, Cost: 12, Account: "b.csv"},
	}
}

func TestFindOrCreateImport(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	id1, hit1, err := db.FindOrCreateImport("hash-a")
	if err != nil {
		t.Fatalf("FindOrCreateImport() error = %v", err)
	}
	if hit1 {
		t.Error("first call cacheHit = true, want false")
	}
	if id1 == 0 {
		t.Error("first call returned 0 import ID")
	}

	id2, hit2, err := db.FindOrCreateImport("hash-a")
	if err != nil {
		t.Fatalf("FindOrCreateImport() second call error = %v", err)
	}
	if !hit2 {
		t.Error("second call cacheHit = false, want true")
	}
	if id1 != id2 {
		t.Errorf("import IDs differ: %d vs %d", id1, id2)
	}

	id3, hit3, err := db.FindOrCreateImport("hash-b")
	if err != nil {
		t.Fatalf("FindOrCreateImport() third call error = %v", err)
	}
	if hit3 {
		t.Error("different hash should not hit cache")
	}
	if id3 == id1 {
		t.Error("different hash returned same import ID")
	}
}

func TestInsertAndGetRowsPreservesOrder(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	id, _, err := db.FindOrCreateImport("hash-a")
	if err != nil {
		t.Fatalf("FindOrCreateImport() error = %v", err)
	}

	want := testRows()
	if err := db.InsertRows(id, want); err != nil {
		t.Fatalf("InsertRows() error = %v", err)
	}

	got, err := db.GetRows(id)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("row count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestGetRowsScopedToImport(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	idA, _, _ := db.FindOrCreateImport("hash-a")
	idB, _, _ := db.FindOrCreateImport("hash-b")

	if err := db.InsertRows(idA, testRows()); err != nil {
		t.Fatalf("InsertRows(A) error = %v", err)
	}
	if err := db.InsertRows(idB, testRows()[:1]); err != nil {
		t.Fatalf("InsertRows(B) error = %v", err)
	}

	rowsB, err := db.GetRows(idB)
	if err != nil {
		t.Fatalf("GetRows(B) error = %v", err)
	}
	if len(rowsB) != 1 {
		t.Errorf("import B row count = %d, want 1", len(rowsB))
	}
}

func TestLatestImportID(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.LatestImportID(); !errors.Is(err, ErrNoImports) {
		t.Fatalf("LatestImportID() on empty db error = %v, want ErrNoImports", err)
	}

	db.FindOrCreateImport("hash-a")
	idB, _, _ := db.FindOrCreateImport("hash-b")

	latest, err := db.LatestImportID()
	if err != nil {
		t.Fatalf("LatestImportID() error = %v", err)
	}
	if latest != idB {
		t.Errorf("latest import = %d, want %d", latest, idB)
	}
}

func TestImportFilesAndStats(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	id, _, _ := db.FindOrCreateImport("hash-a")

	if err := db.RecordImportFile(id, "a.csv", "parsed", ""); err != nil {
		t.Fatalf("RecordImportFile() error = %v", err)
	}
	if err := db.RecordImportFile(id, "broken.csv", "failed", "csv decode failed"); err != nil {
		t.Fatalf("RecordImportFile() error = %v", err)
	}
	if err := db.UpdateImportStats(id, 2, 1, 5); err != nil {
		t.Fatalf("UpdateImportStats() error = %v", err)
	}

	files, err := db.GetImportFiles(id)
	if err != nil {
		t.Fatalf("GetImportFiles() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("file count = %d, want 2", len(files))
	}
	if files[1].Status != "failed" || files[1].Error == "" {
		t.Errorf("failed file outcome = %+v, want failed status with error", files[1])
	}

	imports, err := db.ListImports(10)
	if err != nil {
		t.Fatalf("ListImports() error = %v", err)
	}
	if len(imports) != 1 {
		t.Fatalf("import count = %d, want 1", len(imports))
	}
	imp := imports[0]
	if imp.FileCount != 2 || imp.FailedCount != 1 || imp.RowCount != 5 {
		t.Errorf("import stats = %+v, want 2 files, 1 failed, 5 rows", imp)
	}
}
