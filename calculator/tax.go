package calculator

import (
	"math"

	"loan-engine/domain"
)

// TaxRules holds the deduction ceilings of the jurisdiction. Each deduction is
// capped on its own before the deductions are summed.
type TaxRules struct {
	SelfOccupiedInterestCap    float64   `yaml:"self_occupied_interest_cap"`
	PrincipalCap               float64   `yaml:"principal_cap"`
	FirstTimeBuyerInterestCap  float64   `yaml:"first_time_buyer_interest_cap"`
	FirstTimeBuyerLoanLimit    float64   `yaml:"first_time_buyer_loan_limit"`
	ElectricVehicleInterestCap float64   `yaml:"electric_vehicle_interest_cap"`
	Slabs                      []float64 `yaml:"slabs"`
}

// DefaultTaxRules are the Indian income-tax home and EV loan rules
// (sections 24(b), 80C, 80EEA and 80EEB).
func DefaultTaxRules() TaxRules {
	return TaxRules{
		SelfOccupiedInterestCap:    200_000,
		PrincipalCap:               150_000,
		FirstTimeBuyerInterestCap:  150_000,
		FirstTimeBuyerLoanLimit:    3_500_000,
		ElectricVehicleInterestCap: 150_000,
		Slabs:                      []float64{5, 10, 20, 30},
	}
}

type deductions struct {
	annualInterest  float64
	annualPrincipal float64
	interest        float64
	principal       float64
	firstTimeBuyer  float64
	vehicle         float64
	total           float64
	savings         float64
}

func computeDeductions(b basis, in domain.TaxBenefitInput, rules TaxRules) deductions {
	var d deductions
	d.annualInterest = b.totalInterest / b.tenureYears
	d.annualPrincipal = b.emi*float64(b.periodsPerYear) - d.annualInterest

	switch in.LoanType {
	case domain.HomeLoan:
		d.interest = d.annualInterest
		if in.SelfOccupied {
			d.interest = math.Min(d.annualInterest, rules.SelfOccupiedInterestCap)
		}
		d.principal = math.Min(math.Max(0, d.annualPrincipal), rules.PrincipalCap)
		if in.FirstTimeBuyer && b.principal <= rules.FirstTimeBuyerLoanLimit {
			unclaimed := math.Max(0, d.annualInterest-d.interest)
			d.firstTimeBuyer = math.Min(unclaimed, rules.FirstTimeBuyerInterestCap)
		}
	case domain.VehicleLoan:
		if in.ElectricVehicle {
			d.vehicle = math.Min(d.annualInterest, rules.ElectricVehicleInterestCap)
		}
	}

	d.total = d.interest + d.principal + d.firstTimeBuyer + d.vehicle
	d.savings = d.total * in.TaxSlab / 100
	return d
}

func taxBasis(in domain.TaxBenefitInput, rules TaxRules) (basis, error) {
	b, err := newBasis(in.Terms)
	if err != nil {
		return basis{}, err
	}
	if err := ValidateLoanType(in.LoanType); err != nil {
		return basis{}, err
	}
	if err := ValidateTaxSlab(in.TaxSlab, rules.Slabs); err != nil {
		return basis{}, err
	}
	return b, nil
}

// TaxBenefits estimates one year's deductions from the average annual split
// of the payments into interest and principal.
func TaxBenefits(in domain.TaxBenefitInput, rules TaxRules) (domain.TaxBenefitReport, error) {
	b, err := taxBasis(in, rules)
	if err != nil {
		return domain.TaxBenefitReport{}, err
	}
	d := computeDeductions(b, in, rules)

	return domain.TaxBenefitReport{
		AnnualInterest:          Round2(d.annualInterest),
		AnnualPrincipal:         Round2(d.annualPrincipal),
		InterestDeduction:       Round2(d.interest),
		PrincipalDeduction:      Round2(d.principal),
		FirstTimeBuyerDeduction: Round2(d.firstTimeBuyer),
		VehicleDeduction:        Round2(d.vehicle),
		TotalDeduction:          Round2(d.total),
		TaxSavings:              Round2(d.savings),
		NetInterestCost:         Round2(math.Max(0, d.annualInterest-d.savings)),
		TaxSlab:                 in.TaxSlab,
	}, nil
}

// LifetimeTaxBenefits scales the annual estimate over the whole tenure.
func LifetimeTaxBenefits(in domain.TaxBenefitInput, rules TaxRules) (domain.LifetimeTaxReport, error) {
	b, err := taxBasis(in, rules)
	if err != nil {
		return domain.LifetimeTaxReport{}, err
	}
	d := computeDeductions(b, in, rules)

	savings := d.savings * b.tenureYears
	var pct float64
	if b.totalInterest > 0 {
		pct = savings / b.totalInterest * 100
	}

	return domain.LifetimeTaxReport{
		TotalInterest:        Round2(b.totalInterest),
		LifetimeTaxSavings:   Round2(savings),
		LifetimeDeduction:    Round2(d.total * b.tenureYears),
		NetInterestAfterTax:  Round2(math.Max(0, b.totalInterest-savings)),
		TaxBenefitPercentage: Round2(pct),
	}, nil
}
