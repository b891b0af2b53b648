package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"loan-engine/calculator"
	"loan-engine/domain"
)

type TenureRecommendationService struct {
	insights domain.InsightGenerator
}

func NewTenureRecommendationService(insights domain.InsightGenerator) *TenureRecommendationService {
	return &TenureRecommendationService{insights: insights}
}

func validateRecommendation(in domain.TenureRecommendationInput) error {
	checks := []error{
		calculator.ValidatePrincipal(in.Principal),
		calculator.ValidateRate(in.AnnualRate),
		calculator.ValidateFrequency(in.Frequency),
		calculator.ValidateMethod(in.Method),
		calculator.ValidateTenure(in.MinTenureYears),
		calculator.ValidateTenure(in.MaxTenureYears),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if in.MinTenureYears > in.MaxTenureYears {
		return fmt.Errorf("%w: minimum tenure exceeds maximum tenure", domain.ErrInvalidInput)
	}
	if !(in.MaxEmi > 0) {
		return fmt.Errorf("%w: max EMI must be greater than 0", domain.ErrInvalidInput)
	}
	switch in.Preference {
	case domain.MinimizeInterest, domain.MinimizePayment, domain.Balanced:
		return nil
	}
	return fmt.Errorf("%w: unknown preference %q", domain.ErrInvalidInput, in.Preference)
}

// RecommendTenure evaluates every whole payment count between the minimum and
// maximum tenure, drops those whose EMI exceeds MaxEmi and ranks the rest by
// the borrower's preference.
func (s *TenureRecommendationService) RecommendTenure(
	ctx context.Context,
	in domain.TenureRecommendationInput,
) (domain.TenureRecommendationResult, error) {
	if err := validateRecommendation(in); err != nil {
		return domain.TenureRecommendationResult{}, err
	}

	ppy, _ := calculator.PeriodsPerYear(in.Frequency)
	minN := max(int(math.Ceil(in.MinTenureYears*float64(ppy)-1e-9)), 1)
	maxN := int(math.Floor(in.MaxTenureYears*float64(ppy) + 1e-9))
	if maxN < minN {
		return domain.TenureRecommendationResult{}, fmt.Errorf("%w: tenure range holds no whole %s payment", domain.ErrInvalidInput, in.Frequency)
	}
	if maxN-minN+1 > MaxTenureCandidates {
		return domain.TenureRecommendationResult{}, fmt.Errorf("%w: tenure range exceeds %d payments", domain.ErrInvalidInput, MaxTenureCandidates)
	}

	terms := domain.LoanTerms{
		Principal:  in.Principal,
		AnnualRate: in.AnnualRate,
		Frequency:  in.Frequency,
		Method:     in.Method,
	}

	var candidates []domain.TenureRecommendation
	for n := minN; n <= maxN; n++ {
		tenure := float64(n) / float64(ppy)
		summary, err := calculator.Calculate(terms.WithTenure(tenure))
		if err != nil {
			log.Warn().Err(err).Int("payments", n).Msg("skipping tenure")
			continue
		}
		if summary.Emi > in.MaxEmi {
			continue
		}
		candidates = append(candidates, domain.TenureRecommendation{
			NumberOfPayments: n,
			TenureYears:      calculator.Round2(tenure),
			Emi:              summary.Emi,
			TotalInterest:    summary.TotalInterest,
		})
	}

	if len(candidates) == 0 {
		return domain.TenureRecommendationResult{}, fmt.Errorf(
			"%w: no tenure between %g and %g years keeps the EMI under %.2f",
			domain.ErrInsufficientPayment, in.MinTenureYears, in.MaxTenureYears, in.MaxEmi)
	}

	scoreCandidates(candidates, in.Preference, minN, maxN)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	top := candidates[0]
	alternatives := candidates[1:min(len(candidates), maxAlternatives+1)]
	if s.insights != nil {
		insight := TenureInsight{Input: in, Top: top, Alternatives: alternatives}
		text, err := s.insights.Generate(ctx, domain.TopicTenureRecommendation, insight)
		if err != nil {
			log.Warn().Err(err).Msg("tenure insight failed")
		} else if text != "" {
			candidates[0].Reason = text
		}
	}

	return domain.TenureRecommendationResult{
		RecommendedTenureYears: top.TenureYears,
		Recommendations:        candidates,
	}, nil
}

// scoreCandidates rates each candidate 0-10 on interest, EMI and tenure,
// normalized over the surviving candidates, and weights the three by
// preference.
func scoreCandidates(cs []domain.TenureRecommendation, pref domain.Preference, minN, maxN int) {
	minInt, maxInt := math.Inf(1), math.Inf(-1)
	minEmi, maxEmi := math.Inf(1), math.Inf(-1)
	for _, c := range cs {
		minInt, maxInt = math.Min(minInt, c.TotalInterest), math.Max(maxInt, c.TotalInterest)
		minEmi, maxEmi = math.Min(minEmi, c.Emi), math.Max(maxEmi, c.Emi)
	}

	for i := range cs {
		c := &cs[i]
		interestScore, paymentScore, termScore := 10.0, 10.0, 10.0
		if maxInt > minInt {
			interestScore = 10 * (1 - (c.TotalInterest-minInt)/(maxInt-minInt))
		}
		if maxEmi > minEmi {
			paymentScore = 10 * (1 - (c.Emi-minEmi)/(maxEmi-minEmi))
		}
		if maxN > minN {
			termScore = 10 * (1 - float64(c.NumberOfPayments-minN)/float64(maxN-minN))
		}

		var score float64
		switch pref {
		case domain.MinimizeInterest:
			score = 0.6*interestScore + 0.2*paymentScore + 0.2*termScore
		case domain.MinimizePayment:
			score = 0.2*interestScore + 0.6*paymentScore + 0.2*termScore
		default:
			score = 0.4*interestScore + 0.4*paymentScore + 0.2*termScore
		}
		c.Score = calculator.Round2(score)
		c.Reason = generateReason(pref)
	}
}

func generateReason(pref domain.Preference) string {
	switch pref {
	case domain.MinimizeInterest:
		return "Tenure chosen to minimize the total interest paid"
	case domain.MinimizePayment:
		return "Tenure chosen to minimize the EMI"
	default:
		return "Tenure balancing the EMI against the total interest"
	}
}
