package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"loan-engine/calculator"
	"loan-engine/domain"
	"loan-engine/repository"
)

type LoanService struct {
	cache    repository.CacheRepository
	insights domain.InsightGenerator
	taxRules calculator.TaxRules
	cacheTTL time.Duration
}

// NewLoanService creates a LoanService. cache and insights may be nil.
func NewLoanService(
	cache repository.CacheRepository,
	insights domain.InsightGenerator,
	taxRules calculator.TaxRules,
	cacheTTL time.Duration,
) *LoanService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &LoanService{cache: cache, insights: insights, taxRules: taxRules, cacheTTL: cacheTTL}
}

func termsKey(prefix string, t domain.LoanTerms) string {
	return fmt.Sprintf("%s:%g:%g:%g:%s:%s", prefix, t.Principal, t.AnnualRate, t.TenureYears, t.Frequency, t.Method)
}

// cached returns the value stored under key or computes and stores it. Cache
// failures are logged and never fail the calculation.
func cached[T any](ctx context.Context, s *LoanService, key string, compute func() (T, error)) (T, error) {
	if s.cache != nil {
		raw, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		case ok:
			var v T
			if err := json.Unmarshal([]byte(raw), &v); err == nil {
				return v, nil
			}
			log.Warn().Str("key", key).Msg("discarding undecodable cache entry")
		}
	}

	v, err := compute()
	if err != nil || s.cache == nil {
		return v, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache encode failed")
		return v, nil
	}
	if err := s.cache.Set(ctx, key, string(data), s.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return v, nil
}

func (s *LoanService) CalculateEmi(ctx context.Context, t domain.LoanTerms) (domain.PaymentSummary, error) {
	return cached(ctx, s, termsKey(emiKeyPrefix, t), func() (domain.PaymentSummary, error) {
		return calculator.Calculate(t)
	})
}

// Schedule builds the amortization schedule. A zero start date means today.
func (s *LoanService) Schedule(ctx context.Context, t domain.LoanTerms, start time.Time) (domain.ScheduleReport, error) {
	if start.IsZero() {
		start = time.Now().UTC().Truncate(24 * time.Hour)
	}
	key := termsKey(scheduleKeyPrefix, t) + ":" + start.Format(time.DateOnly)

	return cached(ctx, s, key, func() (domain.ScheduleReport, error) {
		summary, err := calculator.Calculate(t)
		if err != nil {
			return domain.ScheduleReport{}, err
		}
		entries, years, err := calculator.ScheduleWithSummary(t, start)
		if err != nil {
			return domain.ScheduleReport{}, err
		}
		return domain.ScheduleReport{
			Terms:   t,
			Start:   start,
			Summary: summary,
			Entries: entries,
			Years:   years,
		}, nil
	})
}

func (s *LoanService) OutstandingPrincipal(t domain.LoanTerms, paymentsMade int) (float64, error) {
	return calculator.OutstandingPrincipal(t, paymentsMade)
}

func (s *LoanService) Prepayment(t domain.LoanTerms, paymentsMade int, amount float64, strategy domain.PrepaymentStrategy) (domain.PrepaymentOutcome, error) {
	return calculator.PrepaymentImpact(t, paymentsMade, amount, strategy)
}

func (s *LoanService) EarlySettlement(t domain.LoanTerms, paymentsMade int, charges float64) (domain.SettlementOutcome, error) {
	return calculator.EarlySettlement(t, paymentsMade, charges)
}

func (s *LoanService) ModifyEmi(t domain.LoanTerms, newEmi float64) (domain.EmiModification, error) {
	return calculator.ModifyEmi(t, newEmi)
}

func (s *LoanService) ModifyTenure(t domain.LoanTerms, newTenureYears float64) (domain.TenureModification, error) {
	return calculator.ModifyTenure(t, newTenureYears)
}

// Compare ranks the offers and attaches a narrative from the insight
// generator when one is configured.
func (s *LoanService) Compare(ctx context.Context, options []domain.LoanOption) (domain.ComparisonResult, error) {
	result, err := calculator.CompareLoans(options)
	if err != nil {
		return domain.ComparisonResult{}, err
	}
	result.Explanation = s.explain(ctx, domain.TopicComparison, result)
	return result, nil
}

func (s *LoanService) BreakEven(a, b domain.LoanOption) (domain.BreakEvenResult, error) {
	return calculator.BreakEven(a, b)
}

func (s *LoanService) EffectiveRate(t domain.LoanTerms, processingFee, otherCharges float64) (domain.APRReport, error) {
	return calculator.APR(t, processingFee, otherCharges)
}

func (s *LoanService) TaxBenefits(in domain.TaxBenefitInput) (domain.TaxBenefitReport, error) {
	return calculator.TaxBenefits(in, s.taxRules)
}

func (s *LoanService) LifetimeTaxBenefits(in domain.TaxBenefitInput) (domain.LifetimeTaxReport, error) {
	return calculator.LifetimeTaxBenefits(in, s.taxRules)
}

func (s *LoanService) Eligibility(in domain.EligibilityInput) (domain.EligibilityReport, error) {
	return calculator.Eligibility(in)
}

func (s *LoanService) Affordability(in domain.AffordabilityInput) (domain.AffordabilityReport, error) {
	return calculator.Affordability(in)
}

func (s *LoanService) explain(ctx context.Context, topic domain.InsightTopic, data any) string {
	if s.insights == nil {
		return ""
	}
	text, err := s.insights.Generate(ctx, topic, data)
	if err != nil {
		log.Warn().Err(err).Str("topic", string(topic)).Msg("insight generation failed")
		return ""
	}
	return text
}
