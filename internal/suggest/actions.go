// Package suggest implements the insights command: send the top search
// terms to the configured suggestion service and print its advice.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"searchgap/internal/common"
	"searchgap/models"
	"searchgap/pkg/report"
	"searchgap/pkg/suggest"
)

// topTermCount is how many terms (by clicks) form the prompt context.
const topTermCount = 30

func SuggestAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	cfg, err := common.LoadSettings(c.String("config"))
	if err != nil {
		return err
	}
	cfg.Suggest.APIKey = resolveAPIKey(c, cfg)
	if cfg.Suggest.APIKey == "" {
		return fmt.Errorf("no API key: set --api-key, OPENROUTER_API_KEY, or suggest.api_key in the config file")
	}

	scope := models.Scope{
		Account:  c.String("account"),
		Campaign: c.String("campaign"),
	}
	rows, importID, err := common.ScopedRows(c.String("db"), c.Int64("import"), scope)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Printf("No rows in scope for import %d; nothing to analyze\n", importID)
		return nil
	}

	topTerms := report.TopTermsByClicks(rows, topTermCount)
	logger.Info("requesting campaign insights",
		"import_id", importID,
		"terms", len(topTerms),
		"model", cfg.Suggest.Model)

	client := suggest.NewClient(cfg.Suggest)
	insights, err := client.CampaignInsights(context.Background(), topTerms)
	if err != nil {
		// The tables the user already has are unaffected; report the
		// failure with its cause distinguishable and exit nonzero.
		var transport *suggest.TransportError
		var service *suggest.ServiceError
		var malformed *suggest.MalformedResponseError
		switch {
		case errors.As(err, &transport):
			logger.Error("suggestion service unreachable", "error", transport.Err)
		case errors.As(err, &service):
			logger.Error("suggestion service rejected the request",
				"status", service.StatusCode, "type", service.Type, "message", service.Message)
		case errors.As(err, &malformed):
			logger.Error("suggestion service returned an unusable response", "reason", malformed.Reason)
		}
		return err
	}

	fmt.Println(insights)
	return nil
}

// resolveAPIKey picks the credential from flag, then environment, then
// config file. It is never embedded in the binary.
func resolveAPIKey(c *cli.Context, cfg *models.Config) string {
	if key := c.String("api-key"); key != "" {
		return key
	}
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		return key
	}
	return cfg.Suggest.APIKey
}
