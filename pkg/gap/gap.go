// Package gap finds search terms that no paid keyword covers: the set
// difference between cleaned search terms and cleaned keywords.
package gap

import (
	"sort"

	"searchgap/models"
	"searchgap/pkg/report"
	"searchgap/pkg/textclean"
)

// Report is the outcome of gap detection over one filter scope.
// FullyCovered distinguishes "every term is covered" from "no data"; the
// two must render differently.
type Report struct {
	FullyCovered bool `json:"fully_covered" yaml:"fully_covered"`

	// UncoveredTerms are the cleaned term values with no matching cleaned
	// keyword, sorted for stable output.
	UncoveredTerms []string `json:"uncovered_terms,omitempty" yaml:"uncovered_terms,omitempty"`

	// Rows is the full detailed list: every original row whose cleaned
	// search term is uncovered, sorted by clicks descending.
	Rows []models.Row `json:"rows,omitempty" yaml:"rows,omitempty"`

	// Summary aggregates the uncovered rows by raw search term.
	Summary []models.TermSummary `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Detect computes the uncovered-term report for the given rows. Keywords
// that clean to the empty string contribute nothing to the keyword set.
func Detect(rows []models.Row) *Report {
	keywords := make(map[string]struct{})
	terms := make(map[string]struct{})
	for _, r := range rows {
		if kw := textclean.Clean(r.Keyword); kw != "" {
			keywords[kw] = struct{}{}
		}
		terms[textclean.Clean(r.SearchTerm)] = struct{}{}
	}

	uncovered := make(map[string]struct{})
	for term := range terms {
		if _, ok := keywords[term]; !ok {
			uncovered[term] = struct{}{}
		}
	}

	if len(uncovered) == 0 {
		return &Report{FullyCovered: true}
	}

	rep := &Report{UncoveredTerms: make([]string, 0, len(uncovered))}
	for term := range uncovered {
		rep.UncoveredTerms = append(rep.UncoveredTerms, term)
	}
	sort.Strings(rep.UncoveredTerms)

	for _, r := range rows {
		if _, ok := uncovered[textclean.Clean(r.SearchTerm)]; ok {
			rep.Rows = append(rep.Rows, r)
		}
	}
	rep.Summary = report.SummarizeTerms(rep.Rows)

	sort.SliceStable(rep.Rows, func(i, j int) bool {
		return rep.Rows[i].Clicks > rep.Rows[j].Clicks
	})

	return rep
}
