package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"searchgap/internal/ingest"
	"searchgap/internal/report"
	"searchgap/internal/suggest"
)

func main() {
	app := &cli.App{
		Name:  "searchgap",
		Usage: "search-term report intelligence: keyword performance, term mapping, and coverage gaps",
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Parse report exports (csv or html) and store their rows",
				ArgsUsage: "FILE [FILE...]",
				Flags: append(storeFlags(),
					&cli.StringFlag{Name: "config", Usage: "yaml config file (column mapping, suggest settings)"},
				),
				Action: ingest.ImportAction,
			},
			{
				Name:  "imports",
				Usage: "List stored imports",
				Flags: append(storeFlags(),
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "max imports to list"},
				),
				Action: ingest.ImportsAction,
			},
			{
				Name:   "keywords",
				Usage:  "Keyword performance summary (distinct terms, sums, CTR, CPC)",
				Flags:  reportFlags(),
				Action: report.KeywordsAction,
			},
			{
				Name:  "terms",
				Usage: "Search terms recorded under one keyword",
				Flags: append(reportFlags(),
					&cli.StringFlag{Name: "keyword", Usage: "keyword to expand (empty string for the unattributed group)"},
				),
				Action: report.TermsAction,
			},
			{
				Name:  "gaps",
				Usage: "Search terms not covered by any paid keyword",
				Flags: append(reportFlags(),
					&cli.BoolFlag{Name: "full", Usage: "also print the full detailed row list"},
				),
				Action: report.GapsAction,
			},
			{
				Name:   "mapping",
				Usage:  "Search term to keyword mapping: what people typed vs what triggered the ad",
				Flags:  reportFlags(),
				Action: report.MappingAction,
			},
			{
				Name:  "analyze",
				Usage: "Word frequency and language distribution of search terms",
				Flags: append(reportFlags(),
					&cli.IntFlag{Name: "top", Value: 25, Usage: "how many top words to show"},
				),
				Action: report.AnalyzeAction,
			},
			{
				Name:  "suggest",
				Usage: "Ask the configured model for campaign insights from the top search terms",
				Flags: append(scopeFlags(),
					&cli.StringFlag{Name: "config", Usage: "yaml config file (column mapping, suggest settings)"},
					&cli.StringFlag{Name: "api-key", Usage: "suggestion service API key (overrides OPENROUTER_API_KEY and config)"},
				),
				Action: suggest.SuggestAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// storeFlags are shared by every command that touches the database.
func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "db", Usage: "database path (default: next to the binary)"},
		&cli.BoolFlag{Name: "quiet", Usage: "only log errors"},
	}
}

// scopeFlags select which stored rows a command operates on.
func scopeFlags() []cli.Flag {
	return append(storeFlags(),
		&cli.Int64Flag{Name: "import", Usage: "import id (default: latest)"},
		&cli.StringFlag{Name: "account", Value: "All", Usage: "account filter (exact file name, or All)"},
		&cli.StringFlag{Name: "campaign", Value: "All", Usage: "campaign filter (exact name, or All)"},
	)
}

// reportFlags extend scope selection with the output format choice.
func reportFlags() []cli.Flag {
	return append(scopeFlags(),
		&cli.StringFlag{Name: "format", Value: "table", Usage: "output format: table, json, yaml"},
	)
}
