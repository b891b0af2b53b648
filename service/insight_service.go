package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"loan-engine/domain"
)

const (
	DefaultOpenAIURL   = "https://api.openai.com/v1/chat/completions"
	DefaultOpenAIModel = "gpt-4o-mini"

	systemPrompt = "You are a lending advisor. Explain loan calculations in plain language, " +
		"quote the figures you are given exactly and never invent new numbers."
)

type InsightConfig struct {
	APIKey  string
	URL     string
	Model   string
	Timeout time.Duration
}

// InsightService writes short explanations with an OpenAI chat model. Without
// an API key, or when the call fails, it falls back to a fixed template built
// from the same figures.
type InsightService struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
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
}

// TenureInsight is the payload for TopicTenureRecommendation.
type TenureInsight struct {
	Input        domain.TenureRecommendationInput `json:"input"`
	Top          domain.TenureRecommendation      `json:"recommended"`
	Alternatives []domain.TenureRecommendation    `json:"alternatives"`
}

func NewInsightService(cfg InsightConfig) *InsightService {
	if cfg.URL == "" {
		cfg.URL = DefaultOpenAIURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &InsightService{
		apiKey:     cfg.APIKey,
		apiURL:     cfg.URL,
		model:      cfg.Model,
		enabled:    cfg.APIKey != "",
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (s *InsightService) Enabled() bool {
	return s.enabled
}

func (s *InsightService) Generate(ctx context.Context, topic domain.InsightTopic, data any) (string, error) {
	fallback, err := fallbackInsight(topic, data)
	if err != nil {
		return "", err
	}
	if !s.enabled {
		return fallback, nil
	}

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode insight data: %w", err)
	}
	prompt := fmt.Sprintf("%s\n\nDATA:\n%s\n\nAnswer in 3-4 sentences.", topicInstructions(topic), payload)

	text, err := s.callLLM(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Str("topic", string(topic)).Msg("insight model call failed, using fallback")
		return fallback, nil
	}
	return text, nil
}

func topicInstructions(topic domain.InsightTopic) string {
	switch topic {
	case domain.TopicComparison:
		return "Explain why the recommended loan offer is the cheapest overall, " +
			"and how its EMI and charges compare with the other offers."
	default:
		return "Explain why the recommended tenure suits the borrower's preference, " +
			"and the trade-off between the EMI and the total interest."
	}
}

func (s *InsightService) callLLM(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: 300,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, msg)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no response from model")
	}
	return out.Choices[0].Message.Content, nil
}

func fallbackInsight(topic domain.InsightTopic, data any) (string, error) {
	switch v := data.(type) {
	case domain.ComparisonResult:
		return comparisonFallback(v), nil
	case TenureInsight:
		return tenureFallback(v), nil
	}
	return "", fmt.Errorf("%w: unsupported insight data %T for topic %q", domain.ErrInvalidInput, data, topic)
}

func comparisonFallback(r domain.ComparisonResult) string {
	if len(r.Rows) == 0 {
		return ""
	}
	best := r.Rows[r.BestIndex]
	if len(r.Rows) == 1 {
		return fmt.Sprintf("%s costs %.2f in total with an EMI of %.2f.", best.Name, best.TotalCost, best.Summary.Emi)
	}
	return fmt.Sprintf("%s has the lowest total cost of %.2f (EMI %.2f, effective rate %.2f%%) "+
		"and saves %.2f compared with the most expensive of the %d offers.",
		best.Name, best.TotalCost, best.Summary.Emi, best.EffectiveRate, r.SavingsVsHighest, len(r.Rows))
}

func tenureFallback(t TenureInsight) string {
	top := t.Top
	switch t.Input.Preference {
	case domain.MinimizeInterest:
		return fmt.Sprintf("A tenure of %.2f years keeps the total interest down to %.2f, at an EMI of %.2f.",
			top.TenureYears, top.TotalInterest, top.Emi)
	case domain.MinimizePayment:
		return fmt.Sprintf("A tenure of %.2f years lowers the EMI to %.2f, for a total interest of %.2f.",
			top.TenureYears, top.Emi, top.TotalInterest)
	default:
		return fmt.Sprintf("A tenure of %.2f years balances an EMI of %.2f against a total interest of %.2f.",
			top.TenureYears, top.Emi, top.TotalInterest)
	}
}
