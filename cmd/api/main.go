package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/vellum-supply/storefront/internal/account"
	"github.com/vellum-supply/storefront/internal/cart"
	"github.com/vellum-supply/storefront/internal/catalog"
	"github.com/vellum-supply/storefront/internal/common"
	"github.com/vellum-supply/storefront/internal/config"
	"github.com/vellum-supply/storefront/internal/events"
	"github.com/vellum-supply/storefront/internal/fixtures"
	"github.com/vellum-supply/storefront/internal/health"
	"github.com/vellum-supply/storefront/internal/nav"
	"github.com/vellum-supply/storefront/internal/notify"
	"github.com/vellum-supply/storefront/internal/obs"
	"github.com/vellum-supply/storefront/internal/order"
	"github.com/vellum-supply/storefront/internal/pricing"
	"github.com/vellum-supply/storefront/internal/quote"
	"github.com/vellum-supply/storefront/internal/ratelimit"
	"github.com/vellum-supply/storefront/internal/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	obs.MustRegisterDomainMetrics(cfg.MetricsNamespace, nil)

	tracingEnabled := cfg.TracingEnabled
	if tracingEnabled {
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "vellum-storefront",
			Endpoint:      cfg.TracingEndpoint,
			Exporter:      "otlp",
			SamplingRatio: cfg.TracingSamplingRatio,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	collections := fixtures.MustLoad()
	catalogService, err := catalog.NewService(collections)
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise catalog service")
	}
	catalogHandler := catalog.NewHandler(catalogService)

	center := notify.NewCenter(cfg.NotificationTTL)
	bus := &events.Bus{
		Notifiers: []events.Notifier{
			notify.Bridge{Center: center},
			metricsNotifier(),
			eventLogNotifier(logger),
		},
	}

	rates := pricing.Rates{
		DiscountRate:          cfg.ContractorDiscountRate,
		TaxRate:               cfg.TaxRate,
		DeliveryFee:           cfg.DeliveryFee,
		FreeDeliveryThreshold: cfg.FreeDeliveryThreshold,
	}
	cartService := cart.NewService(cart.NewStore(cfg.CartTTL), catalogService, rates, bus)
	cartHandler := &cart.Handler{Svc: cartService}

	navController := nav.NewController()
	navHandler := nav.NewHandler(navController, catalogService)

	quoteService := quote.NewService(cartService, bus)
	quoteHandler := &quote.Handler{Svc: quoteService}

	orderHandler := &order.Handler{Svc: order.NewService()}
	accountHandler := &account.Handler{Svc: account.NewService(bus)}
	notifyHandler := &notify.Handler{Center: center}

	var httpMetrics *obs.HTTPMetrics
	if cfg.MetricsEnabled {
		httpMetrics = obs.NewHTTPMetrics(cfg.MetricsNamespace, nil, nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(security.Headers{Enable: cfg.SecurityHeadersEnabled}.Middleware)
	r.Use(security.BodyLimit{Max: cfg.MaxBodyBytes}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "X-Total-Count"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if cfg.RateLimitMax > 0 {
		limiter := ratelimit.Handler{
			Limiter: ratelimit.NewMemoryLimiter(),
			Config: ratelimit.Config{
				Key:    common.ClientIP,
				Window: cfg.RateLimitWindow,
				Max:    cfg.RateLimitMax,
			},
			OnError: func(err error) {
				logger.Error().Err(err).Msg("rate limit check")
			},
		}
		r.Use(limiter.Middleware)
	}

	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	if cfg.IsDevelopment() {
		r.Mount("/debug/pprof", newPprofMux())
	}

	healthHandler := health.Handler{
		Checker: health.CheckerFunc(func(context.Context, time.Duration) error {
			if catalogService.ProductCount() == 0 {
				return errors.New("catalog has no products")
			}
			return nil
		}),
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		catalogHandler.Routes(v)
		navHandler.Routes(v)
		notifyHandler.Routes(v)
		cartHandler.Routes(v)
		quoteHandler.Routes(v)
		orderHandler.Routes(v)
		accountHandler.Routes(v)
	})

	// Expired notifications are lazily dropped on read; the sweep keeps the
	// map from accumulating entries for abandoned sessions.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				center.Sweep()
			}
		}
	}()

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
		health.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
	}
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

func metricsNotifier() events.NotifierFunc {
	return func(_ context.Context, ev events.Event) error {
		switch ev.Topic {
		case events.TopicCartItemAdded:
			obs.CartOpsTotal.WithLabelValues("add").Inc()
		case events.TopicCartItemRemoved:
			obs.CartOpsTotal.WithLabelValues("remove").Inc()
		case events.TopicCartUpdated:
			obs.CartOpsTotal.WithLabelValues("update").Inc()
		case events.TopicQuoteSubmitted:
			obs.QuoteSubmissionsTotal.Inc()
		case events.TopicApplicationReceived:
			obs.ApplicationsTotal.Inc()
		}
		return nil
	}
}

func eventLogNotifier(logger zerolog.Logger) events.NotifierFunc {
	eventLog := obs.EventLogger{Logger: logger}
	return func(_ context.Context, ev events.Event) error {
		eventLog.Log(ev.Topic, ev.SessionID)
		return nil
	}
}

func newPprofMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/cmdline", pprof.Cmdline)
	mux.HandleFunc("/profile", pprof.Profile)
	mux.HandleFunc("/symbol", pprof.Symbol)
	mux.HandleFunc("/trace", pprof.Trace)
	mux.Handle("/allocs", pprof.Handler("allocs"))
	mux.Handle("/goroutine", pprof.Handler("goroutine"))
	mux.Handle("/heap", pprof.Handler("heap"))
	return mux
}
