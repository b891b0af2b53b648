package domain

type LoanType string

const (
	HomeLoan      LoanType = "home"
	VehicleLoan   LoanType = "vehicle"
	PersonalLoan  LoanType = "personal"
	EducationLoan LoanType = "education"
)

type TaxBenefitInput struct {
	Terms           LoanTerms `json:"terms"`
	LoanType        LoanType  `json:"loan_type"`
	TaxSlab         float64   `json:"tax_slab"`
	FirstTimeBuyer  bool      `json:"is_first_time_buyer"`
	SelfOccupied    bool      `json:"is_self_occupied"`
	ElectricVehicle bool      `json:"is_electric_vehicle"`
}

// TaxBenefitReport is the per-year deduction estimate. Each deduction is
// capped independently before being summed.
type TaxBenefitReport struct {
	AnnualInterest          float64 `json:"annual_interest"`
	AnnualPrincipal         float64 `json:"annual_principal"`
	InterestDeduction       float64 `json:"interest_deduction"`
	PrincipalDeduction      float64 `json:"principal_deduction"`
	FirstTimeBuyerDeduction float64 `json:"first_time_buyer_deduction"`
	VehicleDeduction        float64 `json:"vehicle_deduction"`
	TotalDeduction          float64 `json:"total_deduction"`
	TaxSavings              float64 `json:"tax_savings"`
	NetInterestCost         float64 `json:"net_interest_cost"`
	TaxSlab                 float64 `json:"tax_slab"`
}

type LifetimeTaxReport struct {
	TotalInterest        float64 `json:"total_interest"`
	LifetimeTaxSavings   float64 `json:"lifetime_tax_savings"`
	LifetimeDeduction    float64 `json:"lifetime_deduction"`
	NetInterestAfterTax  float64 `json:"net_interest_after_tax"`
	TaxBenefitPercentage float64 `json:"tax_benefit_percentage"`
}
