package domain

// EligibilityInput describes the borrower. EmiToIncomeRatio and MaxEmi are
// alternative ways of setting the EMI ceiling and cannot both be set; when
// neither is set the default ratio applies. Age and RetirementAge are optional
// (zero means unset).
type EligibilityInput struct {
	MonthlyIncome    float64        `json:"monthly_income"`
	AnnualRate       float64        `json:"annual_rate"`
	TenureYears      float64        `json:"tenure_years"`
	Frequency        Frequency      `json:"repayment_frequency"`
	Method           InterestMethod `json:"interest_method"`
	ExistingEmis     float64        `json:"existing_emis"`
	EmiToIncomeRatio float64        `json:"emi_to_income_ratio,omitempty"`
	MaxEmi           float64        `json:"max_emi,omitempty"`
	Age              int            `json:"age,omitempty"`
	RetirementAge    int            `json:"max_tenure_by_age,omitempty"`
}

type EligibilityReport struct {
	MonthlyIncome         float64 `json:"monthly_income"`
	MaximumEmi            float64 `json:"maximum_emi"`
	ExistingEmis          float64 `json:"existing_emis"`
	AvailableEmi          float64 `json:"available_emi"`
	MaximumLoanAmount     float64 `json:"maximum_loan_amount"`
	RecommendedLoanAmount float64 `json:"recommended_loan_amount"`
	EmiToIncomeRatio      float64 `json:"emi_to_income_ratio_used"`
	DebtToIncomeRatio     float64 `json:"debt_to_income_ratio"`
	TenureYears           float64 `json:"tenure_years"`
	Eligible              bool    `json:"eligible"`
	Message               string  `json:"message,omitempty"`
}

type AffordabilityInput struct {
	DesiredPrincipal float64 `json:"desired_loan_amount"`
	EligibilityInput
}

type AffordabilityReport struct {
	DesiredPrincipal     float64 `json:"desired_loan_amount"`
	RequiredEmi          float64 `json:"required_emi"`
	TotalEmi             float64 `json:"total_emi_with_existing"`
	MaximumEmi           float64 `json:"maximum_emi_capacity"`
	Affordable           bool    `json:"is_affordable"`
	AffordableLoanAmount float64 `json:"affordable_loan_amount"`
	Shortfall            float64 `json:"shortfall"`
	EmiToIncomeRatio     float64 `json:"emi_to_income_ratio_actual"`
}
