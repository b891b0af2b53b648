package calculator

import (
	"fmt"
	"math"

	"loan-engine/domain"
)

type optionCost struct {
	basis     basis
	charges   float64
	totalCost float64
}

func costOf(o domain.LoanOption) (optionCost, error) {
	b, err := newBasis(o.Terms)
	if err != nil {
		return optionCost{}, err
	}
	if err := validateFees(o.ProcessingFee, o.OtherCharges); err != nil {
		return optionCost{}, err
	}
	charges := o.Charges()
	return optionCost{basis: b, charges: charges, totalCost: b.totalPayment + charges}, nil
}

func optionName(o domain.LoanOption, i int) string {
	if o.Name != "" {
		return o.Name
	}
	return fmt.Sprintf("Loan %d", i+1)
}

// CompareLoans evaluates every offer and picks the one with the lowest total
// cost. Ties go to the earliest offer.
func CompareLoans(options []domain.LoanOption) (domain.ComparisonResult, error) {
	if len(options) == 0 {
		return domain.ComparisonResult{}, fmt.Errorf("%w: no loan options to compare", domain.ErrEmptyInput)
	}

	rows := make([]domain.ComparisonRow, 0, len(options))
	costs := make([]float64, 0, len(options))
	emis := make([]float64, 0, len(options))
	interests := make([]float64, 0, len(options))
	best := 0

	for i, o := range options {
		c, err := costOf(o)
		if err != nil {
			return domain.ComparisonResult{}, fmt.Errorf("loan option %d: %w", i+1, err)
		}
		b := c.basis

		rows = append(rows, domain.ComparisonRow{
			Name:          optionName(o, i),
			Terms:         o.Terms,
			Summary:       b.summary(),
			ProcessingFee: Round2(o.ProcessingFee),
			OtherCharges:  Round2(o.OtherCharges),
			TotalCost:     Round2(c.totalCost),
			EffectiveCost: Round2(c.totalCost - b.principal),
			EffectiveRate: Round2(effectiveRate(b.principal, b.annualRate, b.tenureYears, c.charges)),
		})
		costs = append(costs, c.totalCost)
		emis = append(emis, b.emi)
		interests = append(interests, b.totalInterest)

		if c.totalCost < costs[best] {
			best = i
		}
	}

	lowCost, highCost, avgCost := stats(costs)
	lowEmi, highEmi, avgEmi := stats(emis)
	lowInt, highInt, avgInt := stats(interests)

	return domain.ComparisonResult{
		Rows:             rows,
		BestIndex:        best,
		BestName:         rows[best].Name,
		SavingsVsHighest: Round2(highCost - costs[best]),
		Stats: domain.ComparisonStats{
			NumberOfOptions:  len(rows),
			LowestTotalCost:  Round2(lowCost),
			HighestTotalCost: Round2(highCost),
			AverageTotalCost: Round2(avgCost),
			LowestEmi:        Round2(lowEmi),
			HighestEmi:       Round2(highEmi),
			AverageEmi:       Round2(avgEmi),
			LowestInterest:   Round2(lowInt),
			HighestInterest:  Round2(highInt),
			AverageInterest:  Round2(avgInt),
		},
	}, nil
}

func stats(values []float64) (low, high, avg float64) {
	low, high = math.Inf(1), math.Inf(-1)
	var sum float64
	for _, v := range values {
		low = math.Min(low, v)
		high = math.Max(high, v)
		sum += v
	}
	return low, high, sum / float64(len(values))
}

// BreakEven compares two offers. The one with the lower total cost (payments
// plus charges) is better; loan A wins a tie. The break-even point is the
// total cost difference divided by the EMI difference and is undefined when
// the EMIs are equal.
func BreakEven(a, b domain.LoanOption) (domain.BreakEvenResult, error) {
	ca, err := costOf(a)
	if err != nil {
		return domain.BreakEvenResult{}, fmt.Errorf("loan A: %w", err)
	}
	cb, err := costOf(b)
	if err != nil {
		return domain.BreakEvenResult{}, fmt.Errorf("loan B: %w", err)
	}

	sideA := domain.BreakEvenSide{Name: optionName(a, 0), Emi: Round2(ca.basis.emi), TotalCost: Round2(ca.totalCost)}
	sideB := domain.BreakEvenSide{Name: optionName(b, 1), Emi: Round2(cb.basis.emi), TotalCost: Round2(cb.totalCost)}

	emiDiff := math.Abs(sideA.Emi - sideB.Emi)
	costDiff := math.Abs(ca.totalCost - cb.totalCost)

	res := domain.BreakEvenResult{
		LoanA:               sideA,
		LoanB:               sideB,
		EmiDifference:       Round2(emiDiff),
		TotalCostDifference: Round2(costDiff),
		BetterOption:        sideA.Name,
		Savings:             Round2(costDiff),
	}
	if cb.totalCost < ca.totalCost {
		res.BetterOption = sideB.Name
	}
	if emiDiff > 0 {
		months := Round2(costDiff / emiDiff)
		res.BreakEvenMonths = &months
	}
	return res, nil
}
