package calculator

import (
	"fmt"
	"math"

	"loan-engine/domain"
)

// solvePaymentCount finds the fewest payments whose EMI, rounded to the cent,
// does not exceed emi. emi is itself taken at the cent, so it stands for any
// exact EMI in [emi-0.005, emi+0.005) and the inverse is solved at the upper
// end of that interval. For reducing balance:
//
//	n = ln(E / (E - P*r)) / ln(1+r)
//
// For flat loans the total interest is re-derived from the new count, so
// n = P / (E - P*rate/100/ppy). Both forms share the per-period interest P*r,
// which the payment must exceed. Counts beyond MaxTenureYears are rejected.
func solvePaymentCount(principal, annualRate float64, ppy int, method domain.InterestMethod, emi float64) (int, error) {
	target := Round2(emi)
	if !(target > 0) {
		return 0, invalid("EMI must be greater than 0")
	}

	r := annualRate / 100 / float64(ppy)
	perPeriodInterest := principal * r
	upper := target + halfCent
	if upper <= perPeriodInterest {
		return 0, fmt.Errorf("%w: EMI %.2f does not exceed the per-period interest %.2f, the loan would never amortize",
			domain.ErrInsufficientPayment, target, perPeriodInterest)
	}

	x := principal / (upper - perPeriodInterest)
	if method != domain.Flat && r > 0 {
		x = math.Log(upper/(upper-perPeriodInterest)) / math.Log1p(r)
	}
	limit := int(MaxTenureYears) * ppy
	tooLong := fmt.Errorf("%w: EMI %.2f needs more than %g years to repay the loan",
		domain.ErrInsufficientPayment, target, MaxTenureYears)
	if x > float64(limit+1) {
		return 0, tooLong
	}

	emiAt := func(n int) float64 {
		return Round2(basisFor(principal, annualRate, float64(n)/float64(ppy), ppy, n, method).emi)
	}
	n := min(max(int(math.Ceil(x)), 1), limit)
	for n > 1 && emiAt(n-1) <= target {
		n--
	}
	for emiAt(n) > target {
		if n == limit {
			return 0, tooLong
		}
		n++
	}
	return n, nil
}

// ModifyEmi keeps principal, rate and frequency and solves for the tenure at
// which newEmi repays the loan.
func ModifyEmi(t domain.LoanTerms, newEmi float64) (domain.EmiModification, error) {
	b, err := newBasis(t)
	if err != nil {
		return domain.EmiModification{}, err
	}
	n, err := solvePaymentCount(b.principal, b.annualRate, b.periodsPerYear, b.method, newEmi)
	if err != nil {
		return domain.EmiModification{}, err
	}
	newTenure := float64(n) / float64(b.periodsPerYear)

	return domain.EmiModification{
		OriginalEmi:         Round2(b.emi),
		NewEmi:              Round2(newEmi),
		OriginalTenureYears: t.TenureYears,
		NewTenureYears:      Round2(newTenure),
		TenureChangeYears:   Round2(newTenure - t.TenureYears),
		NewPaymentCount:     n,
	}, nil
}

// ModifyTenure re-evaluates the EMI with the tenure replaced.
func ModifyTenure(t domain.LoanTerms, newTenureYears float64) (domain.TenureModification, error) {
	orig, err := newBasis(t)
	if err != nil {
		return domain.TenureModification{}, err
	}
	modified, err := newBasis(t.WithTenure(newTenureYears))
	if err != nil {
		return domain.TenureModification{}, err
	}

	return domain.TenureModification{
		OriginalEmi:         Round2(orig.emi),
		NewEmi:              Round2(modified.emi),
		OriginalTenureYears: t.TenureYears,
		NewTenureYears:      newTenureYears,
		EmiChange:           Round2(modified.emi - orig.emi),
	}, nil
}
