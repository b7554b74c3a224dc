// Package report implements the table-producing commands: keyword summary,
// keyword detail, search gaps, term-to-keyword mapping, and term analytics.
package report

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"searchgap/internal/common"
	"searchgap/models"
	"searchgap/pkg/analytics"
	"searchgap/pkg/gap"
	"searchgap/pkg/report"
)

// noKeywordLabel renders the empty-keyword group, rows the export left
// unattributed. The group is real data and must never disappear.
const noKeywordLabel = "(none)"

func KeywordsAction(c *cli.Context) error {
	rows, empty, err := scopedRows(c)
	if err != nil || empty {
		return err
	}

	summaries := report.SummarizeKeywords(rows)
	if common.IsStructured(c.String("format")) {
		return common.RenderStructured(os.Stdout, summaries, c.String("format"))
	}

	fmt.Printf("%-40s %-8s %-12s %-8s %-10s %-8s %-8s\n",
		"Keyword", "Terms", "Impressions", "Clicks", "Cost", "CTR", "CPC")
	for _, s := range summaries {
		fmt.Printf("%-40s %-8d %-12.0f %-8.0f %-10.2f %-8.4f %-8.2f\n",
			keywordLabel(s.Keyword), s.TotalSearchTerms, s.TotalImpressions,
			s.TotalClicks, s.TotalCost, s.CTR, s.CPC)
	}
	fmt.Printf("\nTotal: %d keywords\n", len(summaries))
	return nil
}

func TermsAction(c *cli.Context) error {
	if !c.IsSet("keyword") {
		return fmt.Errorf("--keyword is required (use --keyword \"\" for the unattributed group)")
	}
	keyword := c.String("keyword")

	rows, empty, err := scopedRows(c)
	if err != nil || empty {
		return err
	}

	details := report.TermsForKeyword(rows, keyword)
	if common.IsStructured(c.String("format")) {
		return common.RenderStructured(os.Stdout, details, c.String("format"))
	}

	if len(details) == 0 {
		fmt.Printf("No search terms recorded for keyword %s in this scope\n", keywordLabel(keyword))
		return nil
	}

	fmt.Printf("Keyword: %s — %d unique search terms\n\n", keywordLabel(keyword), len(details))
	printTermTable(details)
	return nil
}

func GapsAction(c *cli.Context) error {
	rows, empty, err := scopedRows(c)
	if err != nil || empty {
		return err
	}

	rep := gap.Detect(rows)
	if common.IsStructured(c.String("format")) {
		return common.RenderStructured(os.Stdout, rep, c.String("format"))
	}

	if rep.FullyCovered {
		fmt.Println("All search terms are already covered by paid keywords.")
		return nil
	}

	fmt.Printf("%d search terms drive traffic but are not mapped to any keyword\n\n",
		len(rep.UncoveredTerms))
	fmt.Println("Aggregated by search term:")
	printTermTable(rep.Summary)

	if c.Bool("full") {
		fmt.Println("\nFull detailed list:")
		fmt.Printf("%-35s %-12s %-20s %-20s %-12s %-8s %-10s %-25s\n",
			"Search term", "Match type", "Campaign", "Ad group",
			"Impressions", "Clicks", "Cost", "Keyword")
		for _, r := range rep.Rows {
			fmt.Printf("%-35s %-12s %-20s %-20s %-12.0f %-8.0f %-10.2f %-25s\n",
				r.SearchTerm, r.MatchType, r.Campaign, r.AdGroup,
				r.Impressions, r.Clicks, r.Cost, keywordLabel(r.Keyword))
		}
	}
	return nil
}

func MappingAction(c *cli.Context) error {
	rows, empty, err := scopedRows(c)
	if err != nil || empty {
		return err
	}

	entries := report.Mapping(rows)
	if common.IsStructured(c.String("format")) {
		return common.RenderStructured(os.Stdout, entries, c.String("format"))
	}

	fmt.Printf("%-35s %-25s %-12s %-8s %-10s\n",
		"Search term", "Keyword", "Impressions", "Clicks", "Cost")
	for _, e := range entries {
		fmt.Printf("%-35s %-25s %-12.0f %-8.0f %-10.2f\n",
			e.SearchTerm, keywordLabel(e.Keyword), e.Impressions, e.Clicks, e.Cost)
	}
	return nil
}

func AnalyzeAction(c *cli.Context) error {
	rows, empty, err := scopedRows(c)
	if err != nil || empty {
		return err
	}

	terms := make([]string, len(rows))
	for i, r := range rows {
		terms[i] = r.SearchTerm
	}

	a := analytics.New()
	type output struct {
		TopWords  []analytics.WordCount `json:"top_words" yaml:"top_words"`
		Languages map[string]int        `json:"languages" yaml:"languages"`
	}
	out := output{
		TopWords:  a.TopWords(terms, c.Int("top")),
		Languages: a.LanguageDistribution(terms),
	}

	if common.IsStructured(c.String("format")) {
		return common.RenderStructured(os.Stdout, out, c.String("format"))
	}

	fmt.Println("Top words in search terms:")
	for i, wc := range out.TopWords {
		fmt.Printf("%d. %s: %d\n", i+1, wc.Word, wc.Count)
	}
	fmt.Println("\nLanguage distribution:")
	for lang, n := range out.Languages {
		fmt.Printf("  %s: %d\n", lang, n)
	}
	return nil
}

// scopedRows loads the selected import's rows restricted to the
// account/campaign scope. The bool result reports the "nothing in scope"
// state, which is a valid empty result and already explained to the user.
func scopedRows(c *cli.Context) ([]models.Row, bool, error) {
	scope := models.Scope{
		Account:  c.String("account"),
		Campaign: c.String("campaign"),
	}
	scoped, importID, err := common.ScopedRows(c.String("db"), c.Int64("import"), scope)
	if err != nil {
		return nil, false, err
	}
	if len(scoped) == 0 {
		fmt.Printf("No rows in scope (import %d, account %q, campaign %q)\n",
			importID, orAll(scope.Account), orAll(scope.Campaign))
		return nil, true, nil
	}
	return scoped, false, nil
}

func keywordLabel(kw string) string {
	if kw == "" {
		return noKeywordLabel
	}
	return kw
}

func orAll(sel string) string {
	if sel == "" {
		return models.ScopeAll
	}
	return sel
}

func printTermTable(details []models.TermSummary) {
	fmt.Printf("%-35s %-12s %-8s %-10s %-8s %-8s\n",
		"Search term", "Impressions", "Clicks", "Cost", "CTR", "CPC")
	for _, d := range details {
		fmt.Printf("%-35s %-12.0f %-8.0f %-10.2f %-8.4f %-8.2f\n",
			d.SearchTerm, d.Impressions, d.Clicks, d.Cost, d.CTR, d.CPC)
	}
}
