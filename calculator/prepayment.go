package calculator

import (
	"math"

	"loan-engine/domain"
)

const fullyClosedMessage = "prepayment covers the outstanding principal, the loan can be fully closed"

// PrepaymentImpact applies a lump-sum prepayment after paymentsMade payments.
// With ReduceEmi the remaining payment count is kept and the EMI recomputed;
// with ReduceTenure the EMI is kept and the payment count re-solved.
func PrepaymentImpact(t domain.LoanTerms, paymentsMade int, amount float64, strategy domain.PrepaymentStrategy) (domain.PrepaymentOutcome, error) {
	b, err := newBasis(t)
	if err != nil {
		return domain.PrepaymentOutcome{}, err
	}
	if err := ValidatePaymentsMade(paymentsMade, b.n); err != nil {
		return domain.PrepaymentOutcome{}, err
	}
	if err := ValidateNonNegative("prepayment amount", amount); err != nil {
		return domain.PrepaymentOutcome{}, err
	}
	if err := ValidateStrategy(strategy); err != nil {
		return domain.PrepaymentOutcome{}, err
	}

	outstanding := b.outstanding(paymentsMade)
	out := domain.PrepaymentOutcome{
		Strategy:             strategy,
		OriginalEmi:          Round2(b.emi),
		OutstandingPrincipal: Round2(outstanding),
	}

	newPrincipal := outstanding - amount
	if newPrincipal <= 0 {
		out.FullyClosed = true
		out.Message = fullyClosedMessage
		return out, nil
	}

	ppy := float64(b.periodsPerYear)
	remaining := b.n - paymentsMade
	remainingTenure := float64(remaining) / ppy
	originalRemaining := b.emi * float64(remaining)
	out.NewPrincipal = Round2(newPrincipal)

	if strategy == domain.ReduceEmi {
		nb := basisFor(newPrincipal, b.annualRate, remainingTenure, b.periodsPerYear, remaining, b.method)
		out.NewEmi = Round2(nb.emi)
		out.NewTenureYears = Round2(remainingTenure)
		out.NewPaymentCount = remaining
		out.NewTotalPayment = Round2(nb.totalPayment)
		out.InterestSaved = Round2(math.Max(0, originalRemaining-nb.totalPayment-amount))
		out.EmiReduction = Round2(b.emi - nb.emi)
		return out, nil
	}

	n, err := b.remainingCount(newPrincipal)
	if err != nil {
		return domain.PrepaymentOutcome{}, err
	}
	newTenure := float64(n) / ppy
	newTotal := b.emi * float64(n)

	out.NewEmi = Round2(b.emi)
	out.NewTenureYears = Round2(newTenure)
	out.NewPaymentCount = n
	out.NewTotalPayment = Round2(newTotal)
	out.InterestSaved = Round2(math.Max(0, originalRemaining-newTotal-amount))
	out.TenureReductionYears = Round2(remainingTenure - newTenure)
	return out, nil
}

// remainingCount is how many payments of the original EMI clear what is left
// after a prepayment. A flat loan's outstanding amount already carries its
// interest, so it is simply divided by the EMI.
func (b basis) remainingCount(left float64) (int, error) {
	if b.method == domain.Flat {
		return max(int(math.Ceil(left/b.emi-paymentCountSlack)), 1), nil
	}
	return solvePaymentCount(left, b.annualRate, b.periodsPerYear, b.method, b.emi)
}

// EarlySettlement prices closing the loan after paymentsMade payments.
func EarlySettlement(t domain.LoanTerms, paymentsMade int, charges float64) (domain.SettlementOutcome, error) {
	b, err := newBasis(t)
	if err != nil {
		return domain.SettlementOutcome{}, err
	}
	if err := ValidatePaymentsMade(paymentsMade, b.n); err != nil {
		return domain.SettlementOutcome{}, err
	}
	if err := ValidateNonNegative("prepayment charges", charges); err != nil {
		return domain.SettlementOutcome{}, err
	}

	outstanding := b.outstanding(paymentsMade)
	amountPaid := b.emi * float64(paymentsMade)
	remainingInterest := b.totalPayment - amountPaid - outstanding
	interestSaved := math.Max(0, remainingInterest)

	return domain.SettlementOutcome{
		OutstandingPrincipal: Round2(outstanding),
		AmountPaid:           Round2(amountPaid),
		SettlementAmount:     Round2(outstanding + charges),
		PrepaymentCharges:    Round2(charges),
		InterestSaved:        Round2(interestSaved),
		TotalSavings:         Round2(math.Max(0, interestSaved-charges)),
		RemainingPayments:    b.n - paymentsMade,
	}, nil
}
