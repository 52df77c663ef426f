// Package narrative turns monthly summary statistics into prose via an
// OpenAI-compatible chat-completions endpoint. The call is an
// enhancement, not a required deliverable: any failure falls back to
// deterministic text and the run continues.
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gensight/gensight/internal/contract"
	"github.com/gensight/gensight/schema"
)

// Placeholder opens the narrative section whenever generated text is
// unavailable. Report assembly always proceeds with it.
const Placeholder = "AI summary unavailable for this month."

const systemPrompt = "You are an IT support operations analyst. " +
	"Given monthly ticket statistics, write a concise narrative summary " +
	"(4-6 sentences) covering total volume, open/closed split, dominant " +
	"issue categories, engineer workload distribution, and the " +
	"month-over-month trend when prior data is given. Plain prose, no lists."

// Generator calls the configured provider. Configuration is passed in
// explicitly and scoped to one run; there is no package-level state.
type Generator struct {
	endpoint string
	key      string
	model    string
	http     *http.Client
	log      zerolog.Logger
}

// New builds a Generator from the run configuration.
func New(cfg *contract.Config, log zerolog.Logger) *Generator {
	return &Generator{
		endpoint: cfg.AIEndpoint,
		key:      cfg.AIKey,
		model:    cfg.AIModel,
		http:     &http.Client{Timeout: cfg.AITimeout},
		log:      log,
	}
}

// Summarize returns narrative text for one month. prev may be nil for
// the first month in a batch.
func (g *Generator) Summarize(ctx context.Context, summary *schema.MonthlySummary, prev *schema.MonthlySummary) (string, error) {
	if strings.TrimSpace(g.key) == "" {
		return "", errors.New("narrative: missing API key")
	}

	body := map[string]any{
		"model": g.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": statsPayload(summary, prev)},
		},
		"temperature": 0.2,
		"max_tokens":  contract.MaxNarrativeTokens,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("narrative: provider status=%d", resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.New("narrative: no choices in response")
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("narrative: empty completion")
	}
	g.log.Debug().Str("month", summary.Month.Label()).Int("chars", len(text)).Msg("narrative generated")
	return text, nil
}

// statsPayload serializes the month's numbers for the prompt. The same
// text doubles as the deterministic fallback body.
func statsPayload(summary *schema.MonthlySummary, prev *schema.MonthlySummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Monthly summary for %s:\n", summary.Month.Label())
	fmt.Fprintf(&sb, "- Total issues recorded: %d\n", summary.Total)
	fmt.Fprintf(&sb, "- Status: Closed %d, Open %d, Unknown %d\n",
		summary.Status.Closed, summary.Status.Open, summary.Status.Unknown)

	if name, count := summary.TopCategory(); name != "" {
		fmt.Fprintf(&sb, "- Most frequent issue type: %s (%d)\n", name, count)
	}
	if name, count := summary.TopEngineer(); name != "" {
		fmt.Fprintf(&sb, "- Top engineer by volume: %s (%d issues)\n", name, count)
	}

	fmt.Fprintf(&sb, "- Issue mix: %s\n", formatCounts(summary.Categories))

	if summary.Comparison != nil {
		c := summary.Comparison
		fmt.Fprintf(&sb, "- Versus %s: total %+d (previous total %d)\n",
			c.PrevMonth.Label(), c.TotalDelta, c.PrevTotal)
	} else if prev != nil {
		fmt.Fprintf(&sb, "- Previous month %s had %d issues\n", prev.Month.Label(), prev.Total)
	}
	return sb.String()
}

// Fallback builds the deterministic rule-based summary used when the
// provider call fails, times out, or is skipped.
func Fallback(summary *schema.MonthlySummary) string {
	return Placeholder + "\n\n" + statsPayload(summary, nil)
}

// formatCounts renders a count map as "A: 3, B: 1" ordered by
// descending count for stable prompts.
func formatCounts(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %d", name, counts[name]))
	}
	return strings.Join(parts, ", ")
}
