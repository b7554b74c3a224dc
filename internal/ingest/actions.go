// Package ingest implements the import command: decode report exports,
// normalize them, and store the rows for the report commands.
package ingest

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"searchgap/internal/common"
	"searchgap/pkg/loader"
	"searchgap/pkg/normalizer"
)

func ImportAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	paths := c.Args().Slice()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no report files given")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  searchgap import report-a.csv report-b.csv")
		fmt.Fprintln(os.Stderr, "  searchgap import export.html")
		os.Exit(1)
	}

	cfg, err := common.LoadSettings(c.String("config"))
	if err != nil {
		return err
	}

	database, err := common.OpenDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	// Identical file sets land on the stored import instead of re-parsing.
	batchHash := common.BatchHash(paths)
	importID, cacheHit, err := database.FindOrCreateImport(batchHash)
	if err != nil {
		return err
	}
	if cacheHit {
		logger.Info("import cache hit", "import_id", importID)
		fmt.Printf("Import %d already stored for these files (nothing re-parsed)\n", importID)
		return nil
	}
	// The import row exists now; if the whole batch fails below it is
	// removed again so a retry with fixed files does not cache-hit a
	// failed import.

	tbl, fileErrs, err := loader.LoadFiles(paths)
	for _, fe := range fileErrs {
		logger.Error("failed to read report file", "file", fe.File, "error", fe.Err)
		if recErr := database.RecordImportFile(importID, fe.File, "failed", fe.Err.Error()); recErr != nil {
			logger.Warn("failed to record file outcome", "file", fe.File, "error", recErr)
		}
	}
	if err != nil {
		if delErr := database.DeleteImport(importID); delErr != nil {
			logger.Warn("failed to discard empty import", "import_id", importID, "error", delErr)
		}
		if errors.Is(err, loader.ErrEmptyInput) {
			return fmt.Errorf("every input file failed to parse: %w", err)
		}
		return err
	}

	failed := make(map[string]bool, len(fileErrs))
	for _, fe := range fileErrs {
		failed[fe.File] = true
	}
	for _, path := range paths {
		if failed[path] {
			continue
		}
		if recErr := database.RecordImportFile(importID, path, "parsed", ""); recErr != nil {
			logger.Warn("failed to record file outcome", "file", path, "error", recErr)
		}
	}

	rows := normalizer.Normalize(tbl, cfg.ColumnMapping)
	logger.Info("normalized report rows",
		"raw_rows", len(tbl.Rows),
		"kept_rows", len(rows),
		"dropped_without_search_term", len(tbl.Rows)-len(rows))

	if err := database.InsertRows(importID, rows); err != nil {
		return err
	}
	if err := database.UpdateImportStats(importID, len(paths), len(fileErrs), len(rows)); err != nil {
		return err
	}

	fmt.Printf("Import %d stored: %d file(s), %d failed, %d rows\n",
		importID, len(paths), len(fileErrs), len(rows))
	if len(fileErrs) > 0 {
		fmt.Printf("Skipped files:\n")
		for _, fe := range fileErrs {
			fmt.Printf("  - %s: %v\n", fe.File, fe.Err)
		}
	}
	return nil
}

// ImportsAction lists stored imports.
func ImportsAction(c *cli.Context) error {
	database, err := common.OpenDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	imports, err := database.ListImports(c.Int("limit"))
	if err != nil {
		return err
	}

	if len(imports) == 0 {
		fmt.Println("No imports found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-8s %-8s %-8s\n", "ID", "Created", "Files", "Failed", "Rows")
	for _, imp := range imports {
		fmt.Printf("%-6d %-20s %-8d %-8d %-8d\n",
			imp.ImportID,
			imp.CreatedAt.Format("2006-01-02 15:04:05"),
			imp.FileCount,
			imp.FailedCount,
			imp.RowCount,
		)
	}
	fmt.Printf("\nTotal: %d imports\n", len(imports))
	return nil
}
