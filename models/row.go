// Package models defines the shared data structures for report rows,
// summaries, and configuration.
package models

// Row is one observed search-term record from a report export.
// Account is the identifier of the file the row came from. Keyword may be
// empty, meaning the export recorded no matching keyword for the term.
type Row struct {
	SearchTerm  string  `json:"search_term" yaml:"search_term"`
	Keyword     string  `json:"keyword" yaml:"keyword"`
	Campaign    string  `json:"campaign" yaml:"campaign"`
	AdGroup     string  `json:"ad_group" yaml:"ad_group"`
	MatchType   string  `json:"match_type" yaml:"match_type"`
	Impressions float64 `json:"impressions" yaml:"impressions"`
	Clicks      float64 `json:"clicks" yaml:"clicks"`
	Cost        float64 `json:"cost" yaml:"cost"`
	Account     string  `json:"account" yaml:"account"`
}
