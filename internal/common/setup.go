package common

import (
	"searchgap/models"
	"searchgap/pkg/db"
)

// OpenDatabase opens the store at the given path, or the default location
// next to the binary when path is empty.
func OpenDatabase(path string) (*db.DB, error) {
	if path != "" {
		return db.OpenPath(path)
	}
	return db.Open()
}

// LoadSettings reads the config file when one is given, otherwise the
// built-in defaults.
func LoadSettings(path string) (*models.Config, error) {
	if path != "" {
		return models.LoadConfig(path)
	}
	return models.DefaultConfig(), nil
}
