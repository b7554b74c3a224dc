package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the file-level settings: the header vocabulary of the report
// export and the suggestion service endpoint. The column mapping is a
// configuration point so reports from a different locale only need a
// different config file, not a code change.
type Config struct {
	// ColumnMapping maps export header names to canonical field names
	// (search_term, keyword, campaign, ad_group, impressions, clicks,
	// cost, match_type). Headers absent from the map pass through as-is.
	ColumnMapping map[string]string `yaml:"column_mapping"`

	Suggest SuggestConfig `yaml:"suggest"`
}

// SuggestConfig configures the remote suggestion service call.
// APIKey may be empty here; the CLI also resolves it from the
// OPENROUTER_API_KEY environment variable or the --api-key flag.
type SuggestConfig struct {
	BaseURL   string   `yaml:"base_url"`
	Model     string   `yaml:"model"`
	APIKey    string   `yaml:"api_key"`
	MaxTokens int      `yaml:"max_tokens"`
	Timeout   Duration `yaml:"timeout"`
}

// Duration parses yaml values like "60s" or "2m" via time.ParseDuration.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// DefaultConfig returns the built-in settings: the Google Ads English
// search-term report vocabulary and the OpenRouter endpoint.
func DefaultConfig() *Config {
	return &Config{
		ColumnMapping: map[string]string{
			"Search term":  "search_term",
			"Keyword":      "keyword",
			"Campaign":     "campaign",
			"Ad group":     "ad_group",
			"Impr.":        "impressions",
			"Interactions": "clicks",
			"Cost":         "cost",
			"Match type":   "match_type",
		},
		Suggest: SuggestConfig{
			BaseURL:   "https://openrouter.ai/api/v1",
			Model:     "meta-llama/llama-3.3-70b-instruct:free",
			MaxTokens: 500,
			Timeout:   Duration(60 * time.Second),
		},
	}
}

// LoadConfig reads a yaml config file and overlays it on the defaults.
// Unset fields keep their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(overlay.ColumnMapping) > 0 {
		cfg.ColumnMapping = overlay.ColumnMapping
	}
	if overlay.Suggest.BaseURL != "" {
		cfg.Suggest.BaseURL = overlay.Suggest.BaseURL
	}
	if overlay.Suggest.Model != "" {
		cfg.Suggest.Model = overlay.Suggest.Model
	}
	if overlay.Suggest.APIKey != "" {
		cfg.Suggest.APIKey = overlay.Suggest.APIKey
	}
	if overlay.Suggest.MaxTokens > 0 {
		cfg.Suggest.MaxTokens = overlay.Suggest.MaxTokens
	}
	if overlay.Suggest.Timeout > 0 {
		cfg.Suggest.Timeout = overlay.Suggest.Timeout
	}

	return cfg, nil
}
