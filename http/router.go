package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

type RouterConfig struct {
	Loans        *LoanHandler
	Tenures      *TenureRecommendationHandler
	Limiter      *RateLimiter
	Metrics      *Metrics
	AllowOrigins []string
}

// NewRouter wires the loan endpoints. Health and metrics are not rate limited.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log.Logger))
	r.Use(middleware.Recoverer)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	r.Route("/loan", func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(func(next http.Handler) http.Handler {
				return RateLimitMiddleware(cfg.Limiter, next)
			})
		}

		r.Post("/emi", cfg.Loans.CalculateEmi)
		r.Post("/schedule", cfg.Loans.Schedule)
		r.Post("/outstanding", cfg.Loans.Outstanding)
		r.Post("/prepayment", cfg.Loans.Prepayment)
		r.Post("/early-settlement", cfg.Loans.EarlySettlement)
		r.Post("/modify/emi", cfg.Loans.ModifyEmi)
		r.Post("/modify/tenure", cfg.Loans.ModifyTenure)
		r.Post("/compare", cfg.Loans.Compare)
		r.Post("/break-even", cfg.Loans.BreakEven)
		r.Post("/effective-rate", cfg.Loans.EffectiveRate)
		r.Post("/tax-benefits", cfg.Loans.TaxBenefits)
		r.Post("/tax-benefits/lifetime", cfg.Loans.LifetimeTaxBenefits)
		r.Post("/eligibility", cfg.Loans.Eligibility)
		r.Post("/affordability", cfg.Loans.Affordability)
		if cfg.Tenures != nil {
			r.Post("/recommend-tenure", cfg.Tenures.RecommendTenure)
		}
	})

	return r
}
