package calculator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-engine/calculator"
	"loan-engine/domain"
)

func borrower() domain.EligibilityInput {
	return domain.EligibilityInput{
		MonthlyIncome: 100000,
		AnnualRate:    10,
		TenureYears:   20,
		Frequency:     domain.Monthly,
		Method:        domain.Reducing,
		ExistingEmis:  10000,
	}
}

func TestEligibility(t *testing.T) {
	got, err := calculator.Eligibility(borrower())
	require.NoError(t, err)

	assert.True(t, got.Eligible)
	assert.Empty(t, got.Message)
	assert.Equal(t, 40000.0, got.MaximumEmi)
	assert.Equal(t, 30000.0, got.AvailableEmi)
	assert.InDelta(t, 3108738.56, got.MaximumLoanAmount, 0.011)
	assert.InDelta(t, 2486990.85, got.RecommendedLoanAmount, 0.011)
	assert.Equal(t, 0.4, got.EmiToIncomeRatio)
	assert.Equal(t, 0.4, got.DebtToIncomeRatio)
	assert.Equal(t, 20.0, got.TenureYears)
}

func TestEligibility_Flat(t *testing.T) {
	in := borrower()
	in.Method = domain.Flat

	got, err := calculator.Eligibility(in)
	require.NoError(t, err)
	assert.InDelta(t, 2400000, got.MaximumLoanAmount, 0.011)
	assert.InDelta(t, 1920000, got.RecommendedLoanAmount, 0.011)
}

func TestEligibility_RetirementCapsTenure(t *testing.T) {
	in := borrower()
	in.Age = 50

	got, err := calculator.Eligibility(in)
	require.NoError(t, err)
	assert.Equal(t, 15.0, got.TenureYears)
	assert.InDelta(t, 2791723.16, got.MaximumLoanAmount, 0.011)
	assert.InDelta(t, 2233378.53, got.RecommendedLoanAmount, 0.011)

	in.Age = 66
	_, err = calculator.Eligibility(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in.RetirementAge = 70
	got, err = calculator.Eligibility(in)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got.TenureYears)
}

func TestEligibility_MaxEmiOverride(t *testing.T) {
	in := borrower()
	in.MaxEmi = 40000

	got, err := calculator.Eligibility(in)
	require.NoError(t, err)
	assert.InDelta(t, 3108738.56, got.MaximumLoanAmount, 0.011)

	in.EmiToIncomeRatio = 0.5
	_, err = calculator.Eligibility(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEligibility_NoCapacity(t *testing.T) {
	in := borrower()
	in.ExistingEmis = 45000

	got, err := calculator.Eligibility(in)
	require.NoError(t, err)

	assert.False(t, got.Eligible)
	assert.NotEmpty(t, got.Message)
	assert.Zero(t, got.AvailableEmi)
	assert.Zero(t, got.MaximumLoanAmount)
	assert.Zero(t, got.RecommendedLoanAmount)
}

func TestEligibility_InvalidInput(t *testing.T) {
	cases := map[string]func(*domain.EligibilityInput){
		"zero income":       func(in *domain.EligibilityInput) { in.MonthlyIncome = 0 },
		"negative existing": func(in *domain.EligibilityInput) { in.ExistingEmis = -1 },
		"ratio above one":   func(in *domain.EligibilityInput) { in.EmiToIncomeRatio = 1.5 },
		"negative age":      func(in *domain.EligibilityInput) { in.Age = -30 },
		"bad frequency":     func(in *domain.EligibilityInput) { in.Frequency = "daily" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := borrower()
			mutate(&in)
			_, err := calculator.Eligibility(in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAffordability(t *testing.T) {
	got, err := calculator.Affordability(domain.AffordabilityInput{DesiredPrincipal: 2000000, EligibilityInput: borrower()})
	require.NoError(t, err)

	assert.True(t, got.Affordable)
	assert.InDelta(t, 19300.43, got.RequiredEmi, 0.011)
	assert.InDelta(t, 29300.43, got.TotalEmi, 0.011)
	assert.Equal(t, 40000.0, got.MaximumEmi)
	assert.Zero(t, got.Shortfall)
	assert.Equal(t, 0.29, got.EmiToIncomeRatio)
}

func TestAffordability_Shortfall(t *testing.T) {
	got, err := calculator.Affordability(domain.AffordabilityInput{DesiredPrincipal: 4000000, EligibilityInput: borrower()})
	require.NoError(t, err)

	assert.False(t, got.Affordable)
	assert.InDelta(t, 38600.87, got.RequiredEmi, 0.011)
	assert.InDelta(t, 48600.87, got.TotalEmi, 0.011)
	assert.InDelta(t, 3108738.56, got.AffordableLoanAmount, 0.011)
	assert.InDelta(t, 891261.44, got.Shortfall, 0.011)
	assert.Equal(t, 0.49, got.EmiToIncomeRatio)
}

func TestAffordability_InvalidPrincipal(t *testing.T) {
	_, err := calculator.Affordability(domain.AffordabilityInput{EligibilityInput: borrower()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
