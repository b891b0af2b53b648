package calculator

import "loan-engine/domain"

// effectiveRate folds one-time charges into the nominal rate. It is an
// approximation, not an internal-rate-of-return solve: the nominal rate is
// scaled by principal over the amount actually received, and the charges are
// spread evenly over the tenure. When the charges swallow the whole principal
// the nominal rate is returned unchanged.
func effectiveRate(principal, annualRate, tenureYears, charges float64) float64 {
	received := principal - charges
	if received <= 0 {
		return annualRate
	}
	base := annualRate * (principal / received)
	chargesComponent := (charges / received) / tenureYears * 100
	return base + chargesComponent
}

func validateFees(processingFee, otherCharges float64) error {
	if err := ValidateNonNegative("processing fee", processingFee); err != nil {
		return err
	}
	return ValidateNonNegative("other charges", otherCharges)
}

// EffectiveRate returns the approximate annual rate including fees, in percent.
func EffectiveRate(t domain.LoanTerms, processingFee, otherCharges float64) (float64, error) {
	if err := ValidateTerms(t); err != nil {
		return 0, err
	}
	if err := validateFees(processingFee, otherCharges); err != nil {
		return 0, err
	}
	return Round2(effectiveRate(t.Principal, t.AnnualRate, t.TenureYears, processingFee+otherCharges)), nil
}

// APR assembles the effective rate with the total cost of the loan.
func APR(t domain.LoanTerms, processingFee, otherCharges float64) (domain.APRReport, error) {
	b, err := newBasis(t)
	if err != nil {
		return domain.APRReport{}, err
	}
	if err := validateFees(processingFee, otherCharges); err != nil {
		return domain.APRReport{}, err
	}

	charges := processingFee + otherCharges
	eff := effectiveRate(b.principal, b.annualRate, b.tenureYears, charges)

	return domain.APRReport{
		NominalRate:       Round2(b.annualRate),
		EffectiveRate:     Round2(eff),
		APR:               Round2(eff),
		TotalCharges:      Round2(charges),
		TotalCost:         Round2(b.totalPayment + charges),
		ChargesPercentage: Round2(charges / b.principal * 100),
		RateDifference:    Round2(eff - b.annualRate),
	}, nil
}
