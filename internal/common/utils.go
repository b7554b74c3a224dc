package common

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// ContentHash computes SHA256 hash of content and returns hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// BatchHash hashes the contents of a set of files in order. Two imports of
// byte-identical files produce the same hash, which is what dedupes repeat
// imports. Unreadable files contribute their path instead of content so a
// batch with a broken file still hashes deterministically.
func BatchHash(paths []string) string {
	h := sha256.New()
	for _, path := range paths {
		io.WriteString(h, path)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		h.Write(data)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// NewLogger builds the standard JSON logger on stderr. quiet raises the
// level so only errors surface.
func NewLogger(quiet bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if quiet {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// RenderStructured writes v as json or yaml. Callers handle the table
// format themselves; this covers the machine-readable formats.
func RenderStructured(w io.Writer, v interface{}, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		fmt.Fprint(w, string(data))
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	return nil
}

// IsStructured reports whether the format flag selects a machine-readable
// rendering instead of the default table.
func IsStructured(format string) bool {
	return format == "json" || format == "yaml"
}
