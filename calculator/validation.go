package calculator

import (
	"fmt"
	"math"
	"slices"

	"loan-engine/domain"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

// ValidatePrincipal checks the loan amount is positive and below the sanity
// ceiling.
func ValidatePrincipal(principal float64) error {
	if !(principal > 0) {
		return invalid("principal must be greater than 0")
	}
	if principal > MaxPrincipal {
		return invalid("principal exceeds the maximum of %.2f", MaxPrincipal)
	}
	return nil
}

// ValidateRate checks an annual percentage rate.
func ValidateRate(annualRate float64) error {
	if math.IsNaN(annualRate) || annualRate < 0 {
		return invalid("interest rate cannot be negative")
	}
	if annualRate > MaxAnnualRate {
		return invalid("interest rate exceeds the maximum of %.2f%%", MaxAnnualRate)
	}
	return nil
}

// ValidateTenure checks a tenure expressed in years.
func ValidateTenure(tenureYears float64) error {
	if !(tenureYears > 0) {
		return invalid("loan tenure must be greater than 0")
	}
	if tenureYears > MaxTenureYears {
		return invalid("loan tenure cannot exceed %.0f years", MaxTenureYears)
	}
	return nil
}

func ValidateFrequency(f domain.Frequency) error {
	_, err := PeriodsPerYear(f)
	return err
}

func ValidateMethod(m domain.InterestMethod) error {
	switch m {
	case domain.Flat, domain.Reducing:
		return nil
	}
	return invalid("unknown interest method %q, use flat or reducing", m)
}

// ValidateTerms runs every rule that applies to a LoanTerms bundle.
func ValidateTerms(t domain.LoanTerms) error {
	if err := ValidatePrincipal(t.Principal); err != nil {
		return err
	}
	if err := ValidateRate(t.AnnualRate); err != nil {
		return err
	}
	if err := ValidateTenure(t.TenureYears); err != nil {
		return err
	}
	if err := ValidateFrequency(t.Frequency); err != nil {
		return err
	}
	return ValidateMethod(t.Method)
}

func ValidatePaymentsMade(paymentsMade, totalPayments int) error {
	if paymentsMade < 0 {
		return invalid("payments made cannot be negative")
	}
	if paymentsMade > totalPayments {
		return invalid("payments made (%d) cannot exceed total payments (%d)", paymentsMade, totalPayments)
	}
	return nil
}

// ValidateNonNegative checks fees, charges and other amounts that may be zero.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || v < 0 {
		return invalid("%s cannot be negative", name)
	}
	if math.IsInf(v, 1) {
		return invalid("%s must be finite", name)
	}
	return nil
}

func ValidateIncome(income float64) error {
	if !(income > 0) || math.IsInf(income, 1) {
		return invalid("income must be greater than 0")
	}
	return nil
}

// ValidateRatio checks a fraction in (0, 1].
func ValidateRatio(name string, v float64) error {
	if !(v > 0) || v > 1 {
		return invalid("%s must be in (0, 1]", name)
	}
	return nil
}

func ValidateTaxSlab(slab float64, allowed []float64) error {
	if !slices.Contains(allowed, slab) {
		return invalid("tax slab %.2f%% is not one of %v", slab, allowed)
	}
	return nil
}

func ValidateLoanType(t domain.LoanType) error {
	switch t {
	case domain.HomeLoan, domain.VehicleLoan, domain.PersonalLoan, domain.EducationLoan:
		return nil
	}
	return invalid("unknown loan type %q", t)
}

func ValidateStrategy(s domain.PrepaymentStrategy) error {
	switch s {
	case domain.ReduceEmi, domain.ReduceTenure:
		return nil
	}
	return invalid("unknown prepayment strategy %q, use reduce_emi or reduce_tenure", s)
}

// ValidateExclusive fails when two mutually exclusive options are both set.
func ValidateExclusive(nameA string, setA bool, nameB string, setB bool) error {
	if setA && setB {
		return invalid("%s and %s cannot both be supplied", nameA, nameB)
	}
	return nil
}
