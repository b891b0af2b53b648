package domain

type Preference string

const (
	MinimizeInterest Preference = "minimize_interest"
	MinimizePayment  Preference = "minimize_payment"
	Balanced         Preference = "balanced"
)

type TenureRecommendationInput struct {
	Principal      float64        `json:"principal"`
	AnnualRate     float64        `json:"annual_rate"`
	Frequency      Frequency      `json:"repayment_frequency"`
	Method         InterestMethod `json:"interest_method"`
	MinTenureYears float64        `json:"min_tenure_years"`
	MaxTenureYears float64        `json:"max_tenure_years"`
	MaxEmi         float64        `json:"max_emi"`
	Preference     Preference     `json:"preference"`
}

type TenureRecommendation struct {
	NumberOfPayments int     `json:"number_of_payments"`
	TenureYears      float64 `json:"tenure_years"`
	Emi              float64 `json:"emi"`
	TotalInterest    float64 `json:"total_interest"`
	Score            float64 `json:"score"`
	Reason           string  `json:"reason"`
}

type TenureRecommendationResult struct {
	RecommendedTenureYears float64                `json:"recommended_tenure_years"`
	Recommendations        []TenureRecommendation `json:"recommendations"`
}
