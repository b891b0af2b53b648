package calculator

import (
	"math"

	"loan-engine/domain"
)

const noCapacityMessage = "existing EMIs use up the EMI capacity, no new loan can be taken"

type capacity struct {
	income       float64
	tenureYears  float64
	ppy          int
	maximumEmi   float64
	existing     float64
	availableEmi float64
	maxLoan      float64
}

func validateEligibility(in domain.EligibilityInput) error {
	checks := []error{
		ValidateIncome(in.MonthlyIncome),
		ValidateRate(in.AnnualRate),
		ValidateTenure(in.TenureYears),
		ValidateFrequency(in.Frequency),
		ValidateMethod(in.Method),
		ValidateNonNegative("existing EMIs", in.ExistingEmis),
		ValidateExclusive("emi_to_income_ratio", in.EmiToIncomeRatio != 0, "max_emi", in.MaxEmi != 0),
		ValidateNonNegative("max EMI", in.MaxEmi),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if in.EmiToIncomeRatio != 0 {
		if err := ValidateRatio("EMI to income ratio", in.EmiToIncomeRatio); err != nil {
			return err
		}
	}
	if in.Age < 0 || in.RetirementAge < 0 {
		return invalid("age cannot be negative")
	}
	return nil
}

// computeCapacity works in monthly amounts; the available monthly EMI is
// converted to the repayment period before the EMI formula is inverted.
func computeCapacity(in domain.EligibilityInput) (capacity, bool, error) {
	if err := validateEligibility(in); err != nil {
		return capacity{}, false, err
	}

	tenure := in.TenureYears
	if in.Age > 0 {
		retirement := in.RetirementAge
		if retirement == 0 {
			retirement = DefaultRetirementAge
		}
		tenure = math.Min(tenure, float64(retirement-in.Age))
		if tenure <= 0 {
			return capacity{}, false, invalid("loan tenure cannot extend past the retirement age of %d", retirement)
		}
	}

	c := capacity{income: in.MonthlyIncome, tenureYears: tenure, existing: in.ExistingEmis}
	switch {
	case in.MaxEmi > 0:
		c.maximumEmi = in.MaxEmi
	case in.EmiToIncomeRatio > 0:
		c.maximumEmi = in.MonthlyIncome * in.EmiToIncomeRatio
	default:
		c.maximumEmi = in.MonthlyIncome * DefaultEmiToIncomeRatio
	}
	c.availableEmi = c.maximumEmi - c.existing
	if c.availableEmi <= 0 {
		c.availableEmi = 0
		return c, false, nil
	}

	ppy, _ := PeriodsPerYear(in.Frequency)
	n, err := PaymentCount(tenure, in.Frequency)
	if err != nil {
		return capacity{}, false, err
	}
	c.ppy = ppy
	periodEmi := c.availableEmi * 12 / float64(ppy)
	c.maxLoan = maxPrincipal(periodEmi, in.AnnualRate, tenure, ppy, n, in.Method)
	return c, true, nil
}

// maxPrincipal inverts the EMI formulas for the principal:
//
//	reducing: P = emi * ((1+r)^n - 1) / (r * (1+r)^n)
//	flat:     P = emi * n / (1 + rate*tenure/100)
func maxPrincipal(emi, annualRate, tenureYears float64, ppy, n int, method domain.InterestMethod) float64 {
	count := float64(n)
	if method == domain.Flat {
		return emi * count / (1 + annualRate*tenureYears/100)
	}
	r := annualRate / 100 / float64(ppy)
	if r == 0 {
		return emi * count
	}
	factor := math.Pow(1+r, count)
	return emi * (factor - 1) / (r * factor)
}

// Eligibility estimates the largest loan the income supports. A borrower whose
// existing EMIs already use up the capacity gets a report with Eligible=false
// rather than an error.
func Eligibility(in domain.EligibilityInput) (domain.EligibilityReport, error) {
	c, ok, err := computeCapacity(in)
	if err != nil {
		return domain.EligibilityReport{}, err
	}

	report := domain.EligibilityReport{
		MonthlyIncome:     Round2(c.income),
		MaximumEmi:        Round2(c.maximumEmi),
		ExistingEmis:      Round2(c.existing),
		AvailableEmi:      Round2(c.availableEmi),
		EmiToIncomeRatio:  Round2(c.maximumEmi / c.income),
		DebtToIncomeRatio: Round2((c.existing + c.availableEmi) / c.income),
		TenureYears:       c.tenureYears,
	}
	if !ok {
		report.Message = noCapacityMessage
		return report, nil
	}

	report.Eligible = true
	report.MaximumLoanAmount = Round2(c.maxLoan)
	report.RecommendedLoanAmount = Round2(c.maxLoan * RecommendedLoanFraction)
	return report, nil
}

// Affordability checks whether the EMI of the desired loan, on top of the
// existing EMIs, fits under the EMI ceiling. RequiredEmi is per repayment
// period; TotalEmi and MaximumEmi are monthly.
func Affordability(in domain.AffordabilityInput) (domain.AffordabilityReport, error) {
	if err := ValidatePrincipal(in.DesiredPrincipal); err != nil {
		return domain.AffordabilityReport{}, err
	}
	c, _, err := computeCapacity(in.EligibilityInput)
	if err != nil {
		return domain.AffordabilityReport{}, err
	}

	b, err := newBasis(domain.LoanTerms{
		Principal:   in.DesiredPrincipal,
		AnnualRate:  in.AnnualRate,
		TenureYears: c.tenureYears,
		Frequency:   in.Frequency,
		Method:      in.Method,
	})
	if err != nil {
		return domain.AffordabilityReport{}, err
	}

	monthlyEmi := b.emi * float64(b.periodsPerYear) / 12
	total := monthlyEmi + c.existing
	affordable := total <= c.maximumEmi

	var shortfall float64
	if !affordable {
		shortfall = math.Max(0, in.DesiredPrincipal-c.maxLoan)
	}

	return domain.AffordabilityReport{
		DesiredPrincipal:     Round2(in.DesiredPrincipal),
		RequiredEmi:          Round2(b.emi),
		TotalEmi:             Round2(total),
		MaximumEmi:           Round2(c.maximumEmi),
		Affordable:           affordable,
		AffordableLoanAmount: Round2(c.maxLoan),
		Shortfall:            Round2(shortfall),
		EmiToIncomeRatio:     Round2(total / c.income),
	}, nil
}
