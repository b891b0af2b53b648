package calculator

import (
	"math"

	"loan-engine/domain"
)

// PeriodsPerYear maps a repayment frequency to the number of payments in a year.
func PeriodsPerYear(f domain.Frequency) (int, error) {
	switch f {
	case domain.Monthly:
		return 12, nil
	case domain.Quarterly:
		return 4, nil
	case domain.Annually:
		return 1, nil
	}
	return 0, invalid("unknown repayment frequency %q, use monthly, quarterly or annually", f)
}

// PaymentCount is floor(tenureYears * periodsPerYear); it must be positive.
func PaymentCount(tenureYears float64, f domain.Frequency) (int, error) {
	ppy, err := PeriodsPerYear(f)
	if err != nil {
		return 0, err
	}
	n := int(math.Floor(tenureYears*float64(ppy) + paymentCountSlack))
	if n <= 0 {
		return 0, invalid("a tenure of %g years yields no %s payments", tenureYears, f)
	}
	return n, nil
}

// PeriodDays approximates the length of one repayment period in days.
func PeriodDays(f domain.Frequency) int {
	switch f {
	case domain.Quarterly:
		return 90
	case domain.Annually:
		return 365
	default:
		return 30
	}
}
