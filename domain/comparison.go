package domain

// LoanOption is one offer submitted for comparison.
type LoanOption struct {
	Name          string    `json:"loan_name,omitempty"`
	Terms         LoanTerms `json:"terms"`
	ProcessingFee float64   `json:"processing_fee"`
	OtherCharges  float64   `json:"other_charges"`
}

// Charges is the sum of the one-time fees of the offer.
func (o LoanOption) Charges() float64 {
	return o.ProcessingFee + o.OtherCharges
}

type ComparisonRow struct {
	Name          string         `json:"loan_name"`
	Terms         LoanTerms      `json:"terms"`
	Summary       PaymentSummary `json:"summary"`
	ProcessingFee float64        `json:"processing_fee"`
	OtherCharges  float64        `json:"other_charges"`
	TotalCost     float64        `json:"total_cost"`
	EffectiveCost float64        `json:"effective_cost"`
	EffectiveRate float64        `json:"effective_rate"`
}

type ComparisonStats struct {
	NumberOfOptions  int     `json:"number_of_options"`
	LowestTotalCost  float64 `json:"lowest_total_cost"`
	HighestTotalCost float64 `json:"highest_total_cost"`
	AverageTotalCost float64 `json:"average_total_cost"`
	LowestEmi        float64 `json:"lowest_emi"`
	HighestEmi       float64 `json:"highest_emi"`
	AverageEmi       float64 `json:"average_emi"`
	LowestInterest   float64 `json:"lowest_interest"`
	HighestInterest  float64 `json:"highest_interest"`
	AverageInterest  float64 `json:"average_interest"`
}

// ComparisonResult owns its rows; BestIndex points into Rows.
type ComparisonResult struct {
	Rows             []ComparisonRow `json:"comparisons"`
	BestIndex        int             `json:"best_index"`
	BestName         string          `json:"best_loan_name"`
	SavingsVsHighest float64         `json:"savings_vs_highest"`
	Stats            ComparisonStats `json:"summary"`
	Explanation      string          `json:"explanation,omitempty"`
}

type BreakEvenSide struct {
	Name      string  `json:"loan_name"`
	Emi       float64 `json:"emi"`
	TotalCost float64 `json:"total_cost"`
}

// BreakEvenResult compares two offers. BreakEvenMonths is nil when both EMIs
// are equal and no break-even point exists.
type BreakEvenResult struct {
	LoanA               BreakEvenSide `json:"loan_a"`
	LoanB               BreakEvenSide `json:"loan_b"`
	EmiDifference       float64       `json:"emi_difference"`
	TotalCostDifference float64       `json:"total_cost_difference"`
	BetterOption        string        `json:"better_option"`
	Savings             float64       `json:"savings"`
	BreakEvenMonths     *float64      `json:"break_even_months"`
}

type APRReport struct {
	NominalRate       float64 `json:"nominal_rate"`
	EffectiveRate     float64 `json:"effective_rate"`
	APR               float64 `json:"apr"`
	TotalCharges      float64 `json:"total_charges"`
	TotalCost         float64 `json:"total_cost"`
	ChargesPercentage float64 `json:"charges_percentage"`
	RateDifference    float64 `json:"rate_difference"`
}
