package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"loan-engine/calculator"
	"loan-engine/config"
	"loan-engine/domain"
	httpLayer "loan-engine/http"
	"loan-engine/repository"
	"loan-engine/service"
)

var configPath string

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	root := &cobra.Command{
		Use:           "loan-engine",
		Short:         "Loan calculation engine: EMIs, schedules, prepayments, comparisons and eligibility",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "loan-engine.yaml", "path to the YAML config file")
	root.AddCommand(serveCmd(), emiCmd(), scheduleCmd())

	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("loan-engine failed")
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return config.Config{}, fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}
	zerolog.SetGlobalLevel(level)
	return cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func newCache(ctx context.Context, cfg config.Config) repository.CacheRepository {
	if cfg.RedisAddr == "" {
		log.Info().Msg("no redis address configured, using in-memory cache")
		return repository.NewMemoryCache()
	}
	redisCache := repository.NewRedisCache(cfg.RedisAddr, cfg.CachePrefix)
	if err := redisCache.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, using in-memory cache")
		_ = redisCache.Close()
		return repository.NewMemoryCache()
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("using redis cache")
	return redisCache
}

func serve(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cache := newCache(ctx, cfg)
	if c, ok := cache.(io.Closer); ok {
		defer c.Close()
	}

	insights := service.NewInsightService(service.InsightConfig{
		APIKey:  cfg.OpenAI.APIKey,
		URL:     cfg.OpenAI.URL,
		Model:   cfg.OpenAI.Model,
		Timeout: cfg.OpenAI.Timeout,
	})
	if !insights.Enabled() {
		log.Info().Msg("OPENAI_API_KEY not set, insights use the built-in templates")
	}

	loanService := service.NewLoanService(cache, insights, cfg.Tax, cfg.CacheTTL)
	tenureService := service.NewTenureRecommendationService(insights)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	defer rateLimiter.Stop()
	for route, lim := range cfg.RateLimit.Routes {
		rateLimiter.SetRouteLimit(route, lim.Requests, lim.Window)
	}

	router := httpLayer.NewRouter(httpLayer.RouterConfig{
		Loans:        httpLayer.NewLoanHandler(loanService),
		Tenures:      httpLayer.NewTenureRecommendationHandler(tenureService),
		Limiter:      rateLimiter,
		Metrics:      httpLayer.NewMetrics(),
		AllowOrigins: cfg.AllowOrigins,
	})

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("loan engine API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("starting server: %w", err)
	case <-quit:
		log.Info().Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("server exited")
	return nil
}

func addTermsFlags(cmd *cobra.Command, t *domain.LoanTerms) {
	f := cmd.Flags()
	f.Float64Var(&t.Principal, "principal", 0, "loan amount")
	f.Float64Var(&t.AnnualRate, "rate", 0, "annual interest rate in percent")
	f.Float64Var(&t.TenureYears, "tenure", 0, "tenure in years")
	f.StringVar((*string)(&t.Frequency), "frequency", string(domain.Monthly), "monthly, quarterly or annually")
	f.StringVar((*string)(&t.Method), "method", string(domain.Reducing), "reducing or flat")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("tenure")
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func emiCmd() *cobra.Command {
	var terms domain.LoanTerms
	cmd := &cobra.Command{
		Use:   "emi",
		Short: "Print the EMI, total interest and total payment of a loan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, err := calculator.Calculate(terms)
			if err != nil {
				return err
			}
			return printJSON(cmd, summary)
		},
	}
	addTermsFlags(cmd, &terms)
	return cmd
}

func scheduleCmd() *cobra.Command {
	var (
		terms     domain.LoanTerms
		startDate string
		yearly    bool
	)
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the amortization schedule of a loan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var start time.Time
			if startDate != "" {
				parsed, err := time.Parse(time.DateOnly, startDate)
				if err != nil {
					return fmt.Errorf("start date: %w", err)
				}
				start = parsed
			}
			entries, years, err := calculator.ScheduleWithSummary(terms, start)
			if err != nil {
				return err
			}
			if yearly {
				return printJSON(cmd, years)
			}
			return printJSON(cmd, entries)
		},
	}
	addTermsFlags(cmd, &terms)
	cmd.Flags().StringVar(&startDate, "start", "", "first payment date, YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&yearly, "yearly", false, "print the year-wise summary instead")
	return cmd
}
