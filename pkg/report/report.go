// Package report computes the keyword and search-term aggregations shown
// in the performance tables.
package report

import (
	"sort"

	"searchgap/models"
)

// FilterScope selects the rows matching the account/campaign scope.
// "All" (or empty) on either dimension means no filter. An empty result is
// a valid state, not an error.
func FilterScope(rows []models.Row, scope models.Scope) []models.Row {
	out := make([]models.Row, 0, len(rows))
	for _, r := range rows {
		if scope.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Accounts returns the distinct account identifiers in first-seen order.
func Accounts(rows []models.Row) []string {
	return distinct(rows, func(r models.Row) string { return r.Account })
}

// Campaigns returns the distinct campaign names in first-seen order.
func Campaigns(rows []models.Row) []string {
	return distinct(rows, func(r models.Row) string { return r.Campaign })
}

func distinct(rows []models.Row, key func(models.Row) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range rows {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// SummarizeKeywords groups rows by keyword and aggregates metrics per
// group. The empty keyword is its own group (rows the export left
// unattributed), never silently dropped. Result is sorted by distinct
// search-term count descending; ties keep first-seen group order.
func SummarizeKeywords(rows []models.Row) []models.KeywordSummary {
	type acc struct {
		terms       map[string]struct{}
		impressions float64
		clicks      float64
		cost        float64
	}

	groups := make(map[string]*acc)
	var order []string
	for _, r := range rows {
		g, ok := groups[r.Keyword]
		if !ok {
			g = &acc{terms: make(map[string]struct{})}
			groups[r.Keyword] = g
			order = append(order, r.Keyword)
		}
		g.terms[r.SearchTerm] = struct{}{}
		g.impressions += r.Impressions
		g.clicks += r.Clicks
		g.cost += r.Cost
	}

	summaries := make([]models.KeywordSummary, 0, len(order))
	for _, kw := range order {
		g := groups[kw]
		summaries = append(summaries, models.KeywordSummary{
			Keyword:          kw,
			TotalSearchTerms: len(g.terms),
			TotalImpressions: g.impressions,
			TotalClicks:      g.clicks,
			TotalCost:        g.cost,
			CTR:              ratio(g.clicks, g.impressions),
			CPC:              ratio(g.cost, g.clicks),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalSearchTerms > summaries[j].TotalSearchTerms
	})
	return summaries
}

// SummarizeTerms groups rows by search term and aggregates metrics per
// group. Result is sorted by clicks descending, ties broken by impressions
// descending, remaining ties keep first-seen order.
func SummarizeTerms(rows []models.Row) []models.TermSummary {
	type acc struct {
		impressions float64
		clicks      float64
		cost        float64
	}

	groups := make(map[string]*acc)
	var order []string
	for _, r := range rows {
		g, ok := groups[r.SearchTerm]
		if !ok {
			g = &acc{}
			groups[r.SearchTerm] = g
			order = append(order, r.SearchTerm)
		}
		g.impressions += r.Impressions
		g.clicks += r.Clicks
		g.cost += r.Cost
	}

	summaries := make([]models.TermSummary, 0, len(order))
	for _, term := range order {
		g := groups[term]
		summaries = append(summaries, models.TermSummary{
			SearchTerm:  term,
			Impressions: g.impressions,
			Clicks:      g.clicks,
			Cost:        g.cost,
			CTR:         ratio(g.clicks, g.impressions),
			CPC:         ratio(g.cost, g.clicks),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Clicks != summaries[j].Clicks {
			return summaries[i].Clicks > summaries[j].Clicks
		}
		return summaries[i].Impressions > summaries[j].Impressions
	})
	return summaries
}

// TermsForKeyword is the keyword-detail view: the by-term aggregation of
// the rows that one keyword matched.
func TermsForKeyword(rows []models.Row, keyword string) []models.TermSummary {
	var sub []models.Row
	for _, r := range rows {
		if r.Keyword == keyword {
			sub = append(sub, r)
		}
	}
	return SummarizeTerms(sub)
}

// Mapping is the search term -> keyword view, one entry per row, sorted by
// clicks descending (stable).
func Mapping(rows []models.Row) []models.MappingEntry {
	entries := make([]models.MappingEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, models.MappingEntry{
			SearchTerm:  r.SearchTerm,
			Keyword:     r.Keyword,
			Impressions: r.Impressions,
			Clicks:      r.Clicks,
			Cost:        r.Cost,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Clicks > entries[j].Clicks
	})
	return entries
}

// TopTermsByClicks returns the top n term summaries by clicks, the context
// handed to the suggestion service.
func TopTermsByClicks(rows []models.Row, n int) []models.TermSummary {
	summaries := SummarizeTerms(rows)
	if len(summaries) > n {
		summaries = summaries[:n]
	}
	return summaries
}

// ratio divides num by den with a 0 result for a 0 denominator. CTR and
// CPC are display-facing and must never be non-finite.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
