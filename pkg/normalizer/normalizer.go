// Package normalizer turns a raw merged table into canonical rows: headers
// renamed to canonical field names, metric cells coerced to numbers, rows
// without a search term dropped.
package normalizer

import (
	"strconv"
	"strings"

	"searchgap/models"
	"searchgap/pkg/loader"
)

// Normalize applies the header mapping and returns canonical rows in the
// table's original order. Headers absent from the mapping pass through
// unchanged (and are simply not projected into the Row fields). Rows whose
// search_term is empty after mapping are excluded; they cannot be
// attributed to any analysis.
func Normalize(tbl *loader.Table, mapping map[string]string) []models.Row {
	if tbl == nil {
		return nil
	}

	rows := make([]models.Row, 0, len(tbl.Rows))
	for _, raw := range tbl.Rows {
		canon := make(map[string]string, len(raw))
		for header, cell := range raw {
			if name, ok := mapping[header]; ok {
				canon[name] = cell
			} else {
				canon[header] = cell
			}
		}

		term := strings.TrimSpace(canon["search_term"])
		if term == "" {
			continue
		}

		rows = append(rows, models.Row{
			SearchTerm:  term,
			Keyword:     canon["keyword"],
			Campaign:    canon["campaign"],
			AdGroup:     canon["ad_group"],
			MatchType:   canon["match_type"],
			Impressions: coerceNumber(canon["impressions"]),
			Clicks:      coerceNumber(canon["clicks"]),
			Cost:        coerceNumber(canon["cost"]),
			Account:     canon[loader.AccountColumn],
		})
	}

	return rows
}

// coerceNumber parses a metric cell leniently. Exports routinely contain
// thousands separators, currency symbols, and percent signs; anything still
// unparseable becomes 0 rather than an error.
func coerceNumber(cell string) float64 {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0
	}
	s = strings.NewReplacer(",", "", "$", "", "%", "", " ", "").Replace(s)
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}
