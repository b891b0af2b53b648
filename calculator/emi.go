package calculator

import (
	"math"

	"loan-engine/domain"
)

// basis holds the unrounded closed-form values of a loan. Every operation
// derives from a basis and rounds only what it returns.
type basis struct {
	principal      float64
	annualRate     float64
	tenureYears    float64
	periodsPerYear int
	periodicRate   float64
	n              int
	method         domain.InterestMethod

	emi           float64
	totalInterest float64
	totalPayment  float64
}

func newBasis(t domain.LoanTerms) (basis, error) {
	if err := ValidateTerms(t); err != nil {
		return basis{}, err
	}
	ppy, _ := PeriodsPerYear(t.Frequency)
	n, err := PaymentCount(t.TenureYears, t.Frequency)
	if err != nil {
		return basis{}, err
	}
	return basisFor(t.Principal, t.AnnualRate, t.TenureYears, ppy, n, t.Method), nil
}

// basisFor evaluates the EMI formulas for an explicit payment count. Inputs
// are assumed valid.
func basisFor(principal, annualRate, tenureYears float64, ppy, n int, method domain.InterestMethod) basis {
	b := basis{
		principal:      principal,
		annualRate:     annualRate,
		tenureYears:    tenureYears,
		periodsPerYear: ppy,
		periodicRate:   annualRate / 100 / float64(ppy),
		n:              n,
		method:         method,
	}
	count := float64(n)

	if method == domain.Flat {
		b.totalInterest = principal * annualRate * tenureYears / 100
		b.totalPayment = principal + b.totalInterest
		b.emi = b.totalPayment / count
		return b
	}

	if b.periodicRate == 0 {
		b.emi = principal / count
	} else {
		factor := math.Pow(1+b.periodicRate, count)
		b.emi = principal * b.periodicRate * factor / (factor - 1)
	}
	b.totalPayment = b.emi * count
	b.totalInterest = b.totalPayment - principal
	return b
}

func (b basis) summary() domain.PaymentSummary {
	return domain.PaymentSummary{
		Emi:              Round2(b.emi),
		TotalInterest:    Round2(b.totalInterest),
		TotalPayment:     Round2(b.totalPayment),
		NumberOfPayments: b.n,
	}
}

// Calculate returns the payment summary for the terms' interest method.
func Calculate(t domain.LoanTerms) (domain.PaymentSummary, error) {
	b, err := newBasis(t)
	if err != nil {
		return domain.PaymentSummary{}, err
	}
	return b.summary(), nil
}

// FlatRate charges interest on the full principal for the whole tenure, so
// the interest part of every payment is the same.
func FlatRate(t domain.LoanTerms) (domain.PaymentSummary, error) {
	t.Method = domain.Flat
	return Calculate(t)
}

// ReducingBalance charges interest on the outstanding principal only:
//
//	emi = P * r * (1+r)^n / ((1+r)^n - 1)
//
// with emi = P/n when r is zero.
func ReducingBalance(t domain.LoanTerms) (domain.PaymentSummary, error) {
	t.Method = domain.Reducing
	return Calculate(t)
}
