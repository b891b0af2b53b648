package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-engine/domain"
)

func recommendationInput(pref domain.Preference) domain.TenureRecommendationInput {
	return domain.TenureRecommendationInput{
		Principal:      100000,
		AnnualRate:     12,
		Frequency:      domain.Monthly,
		Method:         domain.Reducing,
		MinTenureYears: 1,
		MaxTenureYears: 3,
		MaxEmi:         5000,
		Preference:     pref,
	}
}

func TestRecommendTenure_MinimizeInterest(t *testing.T) {
	svc := NewTenureRecommendationService(nil)

	got, err := svc.RecommendTenure(context.Background(), recommendationInput(domain.MinimizeInterest))
	require.NoError(t, err)

	// 22 payments or fewer push the EMI over 5000.
	require.Len(t, got.Recommendations, 14)
	top := got.Recommendations[0]
	assert.Equal(t, 23, top.NumberOfPayments)
	assert.Equal(t, 1.92, got.RecommendedTenureYears)
	assert.Equal(t, 4888.58, top.Emi)
	assert.Equal(t, 7.08, top.Score)
	assert.Equal(t, "Tenure chosen to minimize the total interest paid", top.Reason)

	for i := 1; i < len(got.Recommendations); i++ {
		assert.GreaterOrEqual(t, got.Recommendations[i-1].Score, got.Recommendations[i].Score)
	}
	for _, r := range got.Recommendations {
		assert.LessOrEqual(t, r.Emi, 5000.0)
	}
}

func TestRecommendTenure_MinimizePayment(t *testing.T) {
	svc := NewTenureRecommendationService(nil)

	got, err := svc.RecommendTenure(context.Background(), recommendationInput(domain.MinimizePayment))
	require.NoError(t, err)

	assert.Equal(t, 36, got.Recommendations[0].NumberOfPayments)
	assert.Equal(t, 3.0, got.RecommendedTenureYears)
	assert.Equal(t, 6.0, got.Recommendations[0].Score)
}

func TestRecommendTenure_InsightReplacesTopReason(t *testing.T) {
	insights := &stubInsights{text: "Take 25 months."}
	svc := NewTenureRecommendationService(insights)

	got, err := svc.RecommendTenure(context.Background(), recommendationInput(domain.Balanced))
	require.NoError(t, err)

	assert.Equal(t, "Take 25 months.", got.Recommendations[0].Reason)
	assert.Equal(t, "Tenure balancing the EMI against the total interest", got.Recommendations[1].Reason)
	assert.Equal(t, domain.TopicTenureRecommendation, insights.topic)
}

func TestRecommendTenure_InsightFailureKeepsReason(t *testing.T) {
	svc := NewTenureRecommendationService(&stubInsights{err: errors.New("timeout")})

	got, err := svc.RecommendTenure(context.Background(), recommendationInput(domain.Balanced))
	require.NoError(t, err)
	assert.Equal(t, "Tenure balancing the EMI against the total interest", got.Recommendations[0].Reason)
}

func TestRecommendTenure_NothingAffordable(t *testing.T) {
	in := recommendationInput(domain.Balanced)
	in.MaxEmi = 1000

	_, err := NewTenureRecommendationService(nil).RecommendTenure(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInsufficientPayment)
}

func TestRecommendTenure_InvalidInput(t *testing.T) {
	cases := map[string]func(*domain.TenureRecommendationInput){
		"min above max":      func(in *domain.TenureRecommendationInput) { in.MinTenureYears = 5 },
		"zero max emi":       func(in *domain.TenureRecommendationInput) { in.MaxEmi = 0 },
		"unknown preference": func(in *domain.TenureRecommendationInput) { in.Preference = "fastest" },
		"negative rate":      func(in *domain.TenureRecommendationInput) { in.AnnualRate = -2 },
		"no whole payment":   func(in *domain.TenureRecommendationInput) { in.Frequency, in.MinTenureYears, in.MaxTenureYears = domain.Annually, 1.2, 1.5 },
	}
	svc := NewTenureRecommendationService(nil)
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := recommendationInput(domain.Balanced)
			mutate(&in)
			_, err := svc.RecommendTenure(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
