// Package suggest calls an OpenAI-compatible chat-completions service for
// qualitative campaign advice. The call is blocking with a fixed timeout;
// every failure is reported to the caller with its cause distinguishable
// (transport, service-reported error, malformed response) and never takes
// down already-computed report output.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"searchgap/models"
)

const systemPrompt = "You are a PPC strategist analyzing advertising search term report data."

// TransportError wraps a network-level failure, including timeout expiry.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("suggestion service unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError is an error the service itself reported, either as a non-200
// status or as an explicit error payload in the response body.
type ServiceError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("suggestion service error (status %d, type %q): %s",
		e.StatusCode, e.Type, e.Message)
}

// MalformedResponseError means the service answered but the expected
// content field was missing or undecodable.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed suggestion response: %s", e.Reason)
}

// Client talks to one chat-completions endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
}

// NewClient builds a client from the suggest configuration. The API key
// must already be resolved (flag, environment, or config file); it is never
// baked into the binary.
func NewClient(cfg models.SuggestConfig) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		httpClient: &http.Client{Timeout: time.Duration(cfg.Timeout)},
	}
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// CampaignInsights sends the top search terms to the service and returns
// its free-text advice.
func (c *Client) CampaignInsights(ctx context.Context, terms []models.TermSummary) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("no API key configured for suggestion service")
	}
	if len(terms) == 0 {
		return "", fmt.Errorf("no search terms to analyze")
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(terms)},
		},
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &MalformedResponseError{Reason: fmt.Sprintf("undecodable body: %v", err)}
	}

	if parsed.Error != nil {
		return "", &ServiceError{
			StatusCode: resp.StatusCode,
			Type:       parsed.Error.Type,
			Message:    parsed.Error.Message,
		}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ServiceError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(raw)),
		}
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", &MalformedResponseError{Reason: "response has no choices content"}
	}

	return parsed.Choices[0].Message.Content, nil
}

// buildPrompt assembles the term context: one bullet per term with its
// clicks and impressions, highest clicks first (callers pass the top-N
// aggregation).
func buildPrompt(terms []models.TermSummary) string {
	var sb strings.Builder
	sb.WriteString("Analyze the following search terms from an advertising campaign:\n\n")
	for _, t := range terms {
		fmt.Fprintf(&sb, "- %s (Clicks: %.0f, Impr: %.0f)\n", t.SearchTerm, t.Clicks, t.Impressions)
	}
	sb.WriteString("\nProvide a structured answer with:\n")
	sb.WriteString("1. Key customer needs shown by the search terms\n")
	sb.WriteString("2. Recommended optimizations (keywords to add, negatives to exclude, ad copy ideas)\n")
	sb.WriteString("3. Growth opportunities visible from the data\n")
	sb.WriteString("\nKeep it short, specific, and actionable for the advertiser.\n")
	return sb.String()
}
