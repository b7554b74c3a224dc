package common

import (
	"fmt"

	"searchgap/models"
	"searchgap/pkg/report"
)

// ScopedRows loads one import's rows restricted to the account/campaign
// scope. importID 0 selects the latest import; the resolved id is returned
// for display. An empty result is valid and returned as an empty slice.
func ScopedRows(dbPath string, importID int64, scope models.Scope) ([]models.Row, int64, error) {
	database, err := OpenDatabase(dbPath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if importID == 0 {
		importID, err = database.LatestImportID()
		if err != nil {
			return nil, 0, err
		}
	}

	rows, err := database.GetRows(importID)
	if err != nil {
		return nil, 0, err
	}

	return report.FilterScope(rows, scope), importID, nil
}
