package loader

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var spaceRuns = regexp.MustCompile(`\s+`)

// ParseHTML decodes an HTML table export. The largest <table> in the
// document is taken as the report; its rows follow the same convention as
// the CSV form (two preamble rows, header, data).
func ParseHTML(r io.Reader, account string) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("html decode failed: %w", err)
	}

	var best *goquery.Selection
	bestRows := 0
	doc.Find("table").Each(func(i int, s *goquery.Selection) {
		n := s.Find("tr").Length()
		if n > bestRows {
			best = s
			bestRows = n
		}
	})
	if best == nil {
		return nil, fmt.Errorf("no table found in html export")
	}

	var records [][]string
	best.Find("tr").Each(func(i int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th,td").Each(func(j int, cell *goquery.Selection) {
			cells = append(cells, collapseText(cell.Text()))
		})
		records = append(records, cells)
	})

	return tableFromRecords(records, account)
}

func collapseText(s string) string {
	return strings.TrimSpace(spaceRuns.ReplaceAllString(s, " "))
}
