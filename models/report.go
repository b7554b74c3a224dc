package models

// KeywordSummary is one row of the keyword performance table. An empty
// Keyword groups all rows the export left unattributed.
type KeywordSummary struct {
	Keyword          string  `json:"keyword" yaml:"keyword"`
	TotalSearchTerms int     `json:"total_search_terms" yaml:"total_search_terms"`
	TotalImpressions float64 `json:"total_impressions" yaml:"total_impressions"`
	TotalClicks      float64 `json:"total_clicks" yaml:"total_clicks"`
	TotalCost        float64 `json:"total_cost" yaml:"total_cost"`
	CTR              float64 `json:"ctr" yaml:"ctr"`
	CPC              float64 `json:"cpc" yaml:"cpc"`
}

// TermSummary is one row of a by-search-term aggregation.
type TermSummary struct {
	SearchTerm  string  `json:"search_term" yaml:"search_term"`
	Impressions float64 `json:"impressions" yaml:"impressions"`
	Clicks      float64 `json:"clicks" yaml:"clicks"`
	Cost        float64 `json:"cost" yaml:"cost"`
	CTR         float64 `json:"ctr" yaml:"ctr"`
	CPC         float64 `json:"cpc" yaml:"cpc"`
}

// MappingEntry is one row of the search term -> keyword mapping view:
// what the customer typed vs which keyword triggered the ad.
type MappingEntry struct {
	SearchTerm  string  `json:"search_term" yaml:"search_term"`
	Keyword     string  `json:"keyword" yaml:"keyword"`
	Impressions float64 `json:"impressions" yaml:"impressions"`
	Clicks      float64 `json:"clicks" yaml:"clicks"`
	Cost        float64 `json:"cost" yaml:"cost"`
}

// Scope is the account/campaign filter selection. The zero value (or the
// literal "All") means unfiltered on that dimension.
type Scope struct {
	Account  string `json:"account,omitempty" yaml:"account,omitempty"`
	Campaign string `json:"campaign,omitempty" yaml:"campaign,omitempty"`
}

// ScopeAll is the selector value meaning "no filter on this dimension".
const ScopeAll = "All"

// filters reports whether the selector value narrows the scope.
func filters(sel string) bool {
	return sel != "" && sel != ScopeAll
}

// Match reports whether a row falls inside the scope.
func (s Scope) Match(r Row) bool {
	if filters(s.Account) && r.Account != s.Account {
		return false
	}
	if filters(s.Campaign) && r.Campaign != s.Campaign {
		return false
	}
	return true
}
