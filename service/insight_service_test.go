package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-engine/domain"
)

func comparisonSample() domain.ComparisonResult {
	return domain.ComparisonResult{
		Rows: []domain.ComparisonRow{
			{Name: "Bank A", TotalCost: 649817.01, Summary: domain.PaymentSummary{Emi: 10746.95}},
			{Name: "Bank B", TotalCost: 647055.84, Summary: domain.PaymentSummary{Emi: 10500.93}, EffectiveRate: 10.54},
		},
		BestIndex:        1,
		BestName:         "Bank B",
		SavingsVsHighest: 2761.17,
	}
}

func TestInsightService_FallbackWithoutKey(t *testing.T) {
	svc := NewInsightService(InsightConfig{})
	assert.False(t, svc.Enabled())

	text, err := svc.Generate(context.Background(), domain.TopicComparison, comparisonSample())
	require.NoError(t, err)
	assert.Contains(t, text, "Bank B has the lowest total cost of 647055.84")
	assert.Contains(t, text, "saves 2761.17")
}

func TestInsightService_TenureFallback(t *testing.T) {
	svc := NewInsightService(InsightConfig{})
	data := TenureInsight{
		Input: domain.TenureRecommendationInput{Preference: domain.MinimizePayment},
		Top:   domain.TenureRecommendation{TenureYears: 3, Emi: 3321.43, TotalInterest: 19571.52},
	}

	text, err := svc.Generate(context.Background(), domain.TopicTenureRecommendation, data)
	require.NoError(t, err)
	assert.Equal(t, "A tenure of 3.00 years lowers the EMI to 3321.43, for a total interest of 19571.52.", text)
}

func TestInsightService_UnsupportedData(t *testing.T) {
	_, err := NewInsightService(InsightConfig{}).Generate(context.Background(), domain.TopicComparison, 42)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInsightService_CallsModel(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Go with Bank B."}}]}`))
	}))
	defer srv.Close()

	svc := NewInsightService(InsightConfig{APIKey: "test-key", URL: srv.URL, Model: "test-model"})
	text, err := svc.Generate(context.Background(), domain.TopicComparison, comparisonSample())
	require.NoError(t, err)

	assert.Equal(t, "Go with Bank B.", text)
	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Contains(t, got.Messages[1].Content, `"best_loan_name": "Bank B"`)
}

func TestInsightService_ModelErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := NewInsightService(InsightConfig{APIKey: "k", URL: srv.URL})
	text, err := svc.Generate(context.Background(), domain.TopicComparison, comparisonSample())
	require.NoError(t, err)
	assert.Contains(t, text, "Bank B has the lowest total cost")
}
