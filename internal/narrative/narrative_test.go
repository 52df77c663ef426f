package narrative

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gensight/gensight/internal/contract"
	"github.com/gensight/gensight/schema"
)

var testLog = zerolog.Nop()

func sampleSummary() *schema.MonthlySummary {
	return &schema.MonthlySummary{
		Month:      schema.MonthKey{Year: 2026, Month: time.January},
		Total:      5,
		Status:     schema.StatusBreakdown{Open: 2, Closed: 3},
		Categories: map[string]int{"Citrix": 3, "MFA": 2},
		Workload: map[string]schema.EngineerLoad{
			"Sam":  {Count: 3},
			"Alex": {Count: 2},
		},
	}
}

func generatorFor(endpoint, key string) *Generator {
	cfg := &contract.Config{
		AIEndpoint: endpoint,
		AIKey:      key,
		AIModel:    "gpt-4o-mini",
		AITimeout:  5 * time.Second,
	}
	return New(cfg, testLog)
}

func completionResponse(text string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": text}},
		},
	}
}

func TestSummarizeSuccess(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		require.NoError(t, json.NewEncoder(w).Encode(completionResponse("  A calm month overall.  ")))
	}))
	defer srv.Close()

	g := generatorFor(srv.URL, "sk-test")
	text, err := g.Summarize(context.Background(), sampleSummary(), nil)
	require.NoError(t, err)
	assert.Equal(t, "A calm month overall.", text)

	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotBody["model"])
	messages := gotBody["messages"].([]any)
	require.Len(t, messages, 2)
	userMsg := messages[1].(map[string]any)
	assert.Contains(t, userMsg["content"], "JAN2026")
	assert.Contains(t, userMsg["content"], "Total issues recorded: 5")
}

func TestSummarizeMissingKey(t *testing.T) {
	g := generatorFor("http://unused.invalid", "   ")
	_, err := g.Summarize(context.Background(), sampleSummary(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing API key")
}

func TestSummarizeProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := generatorFor(srv.URL, "sk-test")
	_, err := g.Summarize(context.Background(), sampleSummary(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=429")
}

func TestSummarizeEmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(completionResponse("   ")))
	}))
	defer srv.Close()

	g := generatorFor(srv.URL, "sk-test")
	_, err := g.Summarize(context.Background(), sampleSummary(), nil)
	require.Error(t, err)
}

func TestSummarizeContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body first; the request context is only cancelled
		// once the server has consumed the request and notices the
		// client going away.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	g := generatorFor(srv.URL, "sk-test")
	_, err := g.Summarize(ctx, sampleSummary(), nil)
	require.Error(t, err)
}

func TestFallbackCarriesPlaceholderAndStats(t *testing.T) {
	text := Fallback(sampleSummary())
	assert.Contains(t, text, Placeholder)
	assert.Contains(t, text, "JAN2026")
	assert.Contains(t, text, "Total issues recorded: 5")
	assert.Contains(t, text, "Closed 3, Open 2")
}

func TestStatsPayloadComparison(t *testing.T) {
	s := sampleSummary()
	s.Comparison = &schema.Comparison{
		PrevMonth:  schema.MonthKey{Year: 2025, Month: time.December},
		PrevTotal:  8,
		TotalDelta: -3,
	}
	text := statsPayload(s, nil)
	assert.Contains(t, text, "Versus DEC2025: total -3 (previous total 8)")
}

func TestFormatCountsOrdering(t *testing.T) {
	// Descending count, ties broken alphabetically.
	got := formatCounts(map[string]int{"MFA": 2, "Citrix": 2, "Other": 5})
	assert.Equal(t, "Other: 5, Citrix: 2, MFA: 2", got)
}
