package suggest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"searchgap/models"
)

func testTerms() []models.TermSummary {
	return []models.TermSummary{
		{SearchTerm: "roof repair near me", Clicks: 42, Impressions: 500},
		{SearchTerm: "free quote", Clicks: 12, Impressions: 90},
	}
}

func testClient(url string) *Client {
	return NewClient(models.SuggestConfig{
		BaseURL:   url,
		Model:     "test-model",
		APIKey:    "test-key",
		MaxTokens: 100,
		Timeout:   models.Duration(2 * time.Second),
	})
}

func TestCampaignInsightsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want Bearer test-key", got)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Add negatives for free quote."}}]}`))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).CampaignInsights(context.Background(), testTerms())
	if err != nil {
		t.Fatalf("CampaignInsights() error = %v", err)
	}
	if got != "Add negatives for free quote." {
		t.Errorf("content = %q", got)
	}
}

func TestCampaignInsightsServiceErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"type":"rate_limit","message":"slow down"}}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CampaignInsights(context.Background(), testTerms())
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("error = %v (%T), want *ServiceError", err, err)
	}
	if svcErr.Type != "rate_limit" || svcErr.Message != "slow down" {
		t.Errorf("ServiceError = %+v, want rate_limit/slow down", svcErr)
	}
}

func TestCampaignInsightsMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing choices", body: `{"id":"x"}`},
		{name: "empty content", body: `{"choices":[{"message":{"role":"assistant","content":""}}]}`},
		{name: "not json", body: `<html>gateway error</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := testClient(srv.URL).CampaignInsights(context.Background(), testTerms())
			var malformed *MalformedResponseError
			if !errors.As(err, &malformed) {
				t.Fatalf("error = %v (%T), want *MalformedResponseError", err, err)
			}
		})
	}
}

func TestCampaignInsightsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(models.SuggestConfig{
		BaseURL: srv.URL,
		Model:   "test-model",
		APIKey:  "test-key",
		Timeout: models.Duration(20 * time.Millisecond),
	})

	_, err := client.CampaignInsights(context.Background(), testTerms())
	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("error = %v (%T), want *TransportError on timeout", err, err)
	}
}

func TestCampaignInsightsRequiresKeyAndTerms(t *testing.T) {
	noKey := NewClient(models.SuggestConfig{BaseURL: "http://localhost:1", Timeout: models.Duration(time.Second)})
	if _, err := noKey.CampaignInsights(context.Background(), testTerms()); err == nil {
		t.Error("missing API key should fail before any network call")
	}

	if _, err := testClient("http://localhost:1").CampaignInsights(context.Background(), nil); err == nil {
		t.Error("empty term context should fail before any network call")
	}
}
