package calculator

const (
	MaxPrincipal   = 100_000_000_000.0
	MaxAnnualRate  = 100.0 // percent
	MaxTenureYears = 50.0

	// BalanceEpsilon is the largest residual balance treated as fully repaid.
	BalanceEpsilon = 0.01

	DefaultEmiToIncomeRatio = 0.4
	DefaultRetirementAge    = 65
	RecommendedLoanFraction = 0.8

	// paymentCountSlack absorbs float error in tenureYears*periodsPerYear,
	// e.g. (7/12)*12.
	paymentCountSlack = 1e-9

	// halfCent is the width of either side of a 2dp rounding interval.
	halfCent = 0.005
)
