package report

import (
	"math"
	"testing"

	"searchgap/models"
)

func sampleRows() []models.Row {
	return []models.Row{
		{SearchTerm: "roof repair near me", Keyword: "roof repair", Campaign: "Roofing", Account: "a.csv", Impressions: 100, Clicks: 10, Cost: 25},
		{SearchTerm: "roof repair cost", Keyword: "roof repair", Campaign: "Roofing", Account: "a.csv", Impressions: 80, Clicks: 8, Cost: 16},
		{SearchTerm: "free quote", Keyword: "roofing quote", Campaign: "Roofing", Account: "a.csv", Impressions: 50, Clicks: 12, Cost: 30},
		{SearchTerm: "new roof", Keyword: "", Campaign: "Roofing", Account: "b.csv", Impressions: 40, Clicks: 2, Cost: 3},
		{SearchTerm: "roof repair near me", Keyword: "roof repair", Campaign: "Roofing", Account: "b.csv", Impressions: 60, Clicks: 6, Cost: 12},
	}
}

func TestSummarizeKeywordsGroupingAndOrder(t *testing.T) {
	summaries := SummarizeKeywords(sampleRows())
	if len(summaries) != 3 {
		t.Fatalf("group count = %d, want 3 (empty keyword is its own group)", len(summaries))
	}

	// "roof repair" has 2 distinct terms across 3 rows; others have 1.
	if summaries[0].Keyword != "roof repair" {
		t.Errorf("top keyword = %q, want %q", summaries[0].Keyword, "roof repair")
	}
	if summaries[0].TotalSearchTerms != 2 {
		t.Errorf("distinct terms = %d, want 2", summaries[0].TotalSearchTerms)
	}
	if summaries[0].TotalImpressions != 240 || summaries[0].TotalClicks != 24 || summaries[0].TotalCost != 53 {
		t.Errorf("sums = (%v, %v, %v), want (240, 24, 53)",
			summaries[0].TotalImpressions, summaries[0].TotalClicks, summaries[0].TotalCost)
	}

	// Ties on distinct-term count keep first-seen group order.
	if summaries[1].Keyword != "roofing quote" || summaries[2].Keyword != "" {
		t.Errorf("tie order = [%q, %q], want [roofing quote, <empty>]",
			summaries[1].Keyword, summaries[2].Keyword)
	}
}

func TestSummarizeKeywordsTotalsInvariant(t *testing.T) {
	rows := sampleRows()
	summaries := SummarizeKeywords(rows)

	var perKeyword, perRow float64
	for _, s := range summaries {
		perKeyword += s.TotalClicks
	}
	for _, r := range rows {
		perRow += r.Clicks
	}
	if perKeyword != perRow {
		t.Errorf("sum of keyword clicks = %v, want row total %v", perKeyword, perRow)
	}
}

func TestRatiosAlwaysFinite(t *testing.T) {
	rows := []models.Row{
		{SearchTerm: "no traffic", Keyword: "kw", Impressions: 0, Clicks: 0, Cost: 0},
		{SearchTerm: "impressions only", Keyword: "kw2", Impressions: 10, Clicks: 0, Cost: 5},
	}

	for _, s := range SummarizeKeywords(rows) {
		if math.IsInf(s.CTR, 0) || math.IsNaN(s.CTR) || s.CTR < 0 {
			t.Errorf("keyword %q CTR = %v, want finite >= 0", s.Keyword, s.CTR)
		}
		if math.IsInf(s.CPC, 0) || math.IsNaN(s.CPC) || s.CPC < 0 {
			t.Errorf("keyword %q CPC = %v, want finite >= 0", s.Keyword, s.CPC)
		}
	}
	for _, s := range SummarizeTerms(rows) {
		if math.IsInf(s.CTR, 0) || math.IsNaN(s.CTR) {
			t.Errorf("term %q CTR = %v, want finite", s.SearchTerm, s.CTR)
		}
		if math.IsInf(s.CPC, 0) || math.IsNaN(s.CPC) {
			t.Errorf("term %q CPC = %v, want finite", s.SearchTerm, s.CPC)
		}
	}
}

func TestSummarizeTermsSortOrder(t *testing.T) {
	rows := []models.Row{
		{SearchTerm: "low clicks", Impressions: 500, Clicks: 1},
		{SearchTerm: "high clicks", Impressions: 10, Clicks: 9},
		{SearchTerm: "tie low impr", Impressions: 20, Clicks: 5},
		{SearchTerm: "tie high impr", Impressions: 90, Clicks: 5},
	}

	got := SummarizeTerms(rows)
	wantOrder := []string{"high clicks", "tie high impr", "tie low impr", "low clicks"}
	for i, want := range wantOrder {
		if got[i].SearchTerm != want {
			t.Errorf("position %d = %q, want %q", i, got[i].SearchTerm, want)
		}
	}
}

func TestFilterScope(t *testing.T) {
	rows := sampleRows()

	all := FilterScope(rows, models.Scope{Account: models.ScopeAll, Campaign: models.ScopeAll})
	if len(all) != len(rows) {
		t.Errorf("All scope kept %d rows, want %d", len(all), len(rows))
	}

	onlyA := FilterScope(rows, models.Scope{Account: "a.csv"})
	if len(onlyA) != 3 {
		t.Errorf("account scope kept %d rows, want 3", len(onlyA))
	}

	none := FilterScope(rows, models.Scope{Account: "a.csv", Campaign: "Gutters"})
	if len(none) != 0 {
		t.Errorf("empty scope kept %d rows, want 0 (empty result is valid)", len(none))
	}
}

func TestTermsForKeyword(t *testing.T) {
	details := TermsForKeyword(sampleRows(), "roof repair")
	if len(details) != 2 {
		t.Fatalf("detail rows = %d, want 2", len(details))
	}
	// "roof repair near me" has 16 clicks summed across accounts.
	if details[0].SearchTerm != "roof repair near me" || details[0].Clicks != 16 {
		t.Errorf("top detail = %q/%v, want roof repair near me/16",
			details[0].SearchTerm, details[0].Clicks)
	}
}

func TestTopTermsByClicks(t *testing.T) {
	top := TopTermsByClicks(sampleRows(), 2)
	if len(top) != 2 {
		t.Fatalf("top count = %d, want 2", len(top))
	}
	if top[0].SearchTerm != "roof repair near me" {
		t.Errorf("top term = %q, want roof repair near me", top[0].SearchTerm)
	}

	// n larger than the distinct term count returns everything.
	if got := TopTermsByClicks(sampleRows(), 30); len(got) != 4 {
		t.Errorf("top 30 of 4 terms = %d entries, want 4", len(got))
	}
}

func TestMappingSortedByClicks(t *testing.T) {
	entries := Mapping(sampleRows())
	if len(entries) != 5 {
		t.Fatalf("mapping entries = %d, want 5", len(entries))
	}
	if entries[0].SearchTerm != "free quote" {
		t.Errorf("top mapping = %q, want free quote (12 clicks)", entries[0].SearchTerm)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Clicks > entries[i-1].Clicks {
			t.Errorf("mapping not sorted by clicks at %d: %v after %v",
				i, entries[i].Clicks, entries[i-1].Clicks)
		}
	}
}
