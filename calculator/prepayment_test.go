package calculator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-engine/calculator"
	"loan-engine/domain"
)

func homeLoan() domain.LoanTerms {
	return terms(500000, 9, 10, domain.Monthly, domain.Reducing)
}

func TestPrepaymentImpact_ReduceEmi(t *testing.T) {
	got, err := calculator.PrepaymentImpact(homeLoan(), 24, 100000, domain.ReduceEmi)
	require.NoError(t, err)

	assert.False(t, got.FullyClosed)
	assert.Equal(t, 6333.79, got.OriginalEmi)
	assert.Equal(t, 432334.53, got.OutstandingPrincipal)
	assert.Equal(t, 332334.53, got.NewPrincipal)
	assert.InDelta(t, 4868.77, got.NewEmi, 0.011)
	assert.Equal(t, 96, got.NewPaymentCount)
	assert.Equal(t, 8.0, got.NewTenureYears)
	assert.InDelta(t, 467401.76, got.NewTotalPayment, 0.011)
	assert.InDelta(t, 40641.95, got.InterestSaved, 0.011)
	assert.InDelta(t, 1465.02, got.EmiReduction, 0.011)
	assert.Zero(t, got.TenureReductionYears)
}

func TestPrepaymentImpact_ReduceTenure(t *testing.T) {
	got, err := calculator.PrepaymentImpact(homeLoan(), 24, 100000, domain.ReduceTenure)
	require.NoError(t, err)

	assert.Equal(t, 6333.79, got.NewEmi)
	assert.Equal(t, 67, got.NewPaymentCount)
	assert.Equal(t, 5.58, got.NewTenureYears)
	assert.InDelta(t, 424363.84, got.NewTotalPayment, 0.011)
	assert.InDelta(t, 83679.87, got.InterestSaved, 0.011)
	assert.Equal(t, 2.42, got.TenureReductionYears)
	assert.Zero(t, got.EmiReduction)
}

func TestPrepaymentImpact_ReduceTenureSavesMore(t *testing.T) {
	emi, err := calculator.PrepaymentImpact(homeLoan(), 24, 100000, domain.ReduceEmi)
	require.NoError(t, err)
	tenure, err := calculator.PrepaymentImpact(homeLoan(), 24, 100000, domain.ReduceTenure)
	require.NoError(t, err)

	assert.Greater(t, tenure.InterestSaved, emi.InterestSaved)
}

func TestPrepaymentImpact_FullyClosed(t *testing.T) {
	got, err := calculator.PrepaymentImpact(homeLoan(), 24, 500000, domain.ReduceTenure)
	require.NoError(t, err)

	assert.True(t, got.FullyClosed)
	assert.NotEmpty(t, got.Message)
	assert.Equal(t, 432334.53, got.OutstandingPrincipal)
	assert.Zero(t, got.NewEmi)
	assert.Zero(t, got.NewPaymentCount)
}

func TestPrepaymentImpact_FlatReduceTenure(t *testing.T) {
	got, err := calculator.PrepaymentImpact(terms(120000, 10, 2, domain.Monthly, domain.Flat), 6, 30000, domain.ReduceTenure)
	require.NoError(t, err)

	assert.Equal(t, 13, got.NewPaymentCount)
	assert.Equal(t, 0.42, got.TenureReductionYears)
	assert.Equal(t, 6000.0, got.NewEmi)
	assert.Zero(t, got.InterestSaved)
}

func TestPrepaymentImpact_FlatLongTenure(t *testing.T) {
	loan := terms(100000, 12, 20, domain.Monthly, domain.Flat)

	got, err := calculator.PrepaymentImpact(loan, 12, 1000, domain.ReduceTenure)
	require.NoError(t, err)
	assert.Equal(t, 1416.67, got.NewEmi)
	assert.Equal(t, 228, got.NewPaymentCount)
	assert.Zero(t, got.TenureReductionYears)

	got, err = calculator.PrepaymentImpact(loan, 12, 10000, domain.ReduceTenure)
	require.NoError(t, err)
	assert.Equal(t, 221, got.NewPaymentCount)
	assert.Equal(t, 0.58, got.TenureReductionYears)
}

func TestPrepaymentImpact_InvalidInput(t *testing.T) {
	cases := map[string]struct {
		made     int
		amount   float64
		strategy domain.PrepaymentStrategy
	}{
		"negative payments made": {-1, 1000, domain.ReduceEmi},
		"too many payments made": {121, 1000, domain.ReduceEmi},
		"negative amount":        {12, -1, domain.ReduceEmi},
		"unknown strategy":       {12, 1000, "skip_payments"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := calculator.PrepaymentImpact(homeLoan(), tc.made, tc.amount, tc.strategy)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestEarlySettlement(t *testing.T) {
	got, err := calculator.EarlySettlement(homeLoan(), 24, 5000)
	require.NoError(t, err)

	assert.Equal(t, 432334.53, got.OutstandingPrincipal)
	assert.InDelta(t, 152010.93, got.AmountPaid, 0.011)
	assert.Equal(t, 437334.53, got.SettlementAmount)
	assert.Equal(t, 5000.0, got.PrepaymentCharges)
	assert.InDelta(t, 175709.19, got.InterestSaved, 0.011)
	assert.InDelta(t, 170709.19, got.TotalSavings, 0.011)
	assert.Equal(t, 96, got.RemainingPayments)
}

func TestEarlySettlement_AtEnd(t *testing.T) {
	got, err := calculator.EarlySettlement(homeLoan(), 120, 0)
	require.NoError(t, err)

	assert.Zero(t, got.OutstandingPrincipal)
	assert.Zero(t, got.RemainingPayments)
	assert.Zero(t, got.TotalSavings)
}

func TestEarlySettlement_InvalidInput(t *testing.T) {
	_, err := calculator.EarlySettlement(homeLoan(), 200, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = calculator.EarlySettlement(homeLoan(), 12, -10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
