package main

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	validator "github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"

	"github.com/naeemhossain01/flexfume-backend/internal/auth"
	"github.com/naeemhossain01/flexfume-backend/internal/cart"
	"github.com/naeemhossain01/flexfume-backend/internal/catalog"
	"github.com/naeemhossain01/flexfume-backend/internal/checkout"
	"github.com/naeemhossain01/flexfume-backend/internal/common"
	"github.com/naeemhossain01/flexfume-backend/internal/config"
	"github.com/naeemhossain01/flexfume-backend/internal/coupon"
	dbgen "github.com/naeemhossain01/flexfume-backend/internal/db/gen"
	"github.com/naeemhossain01/flexfume-backend/internal/delivery"
	"github.com/naeemhossain01/flexfume-backend/internal/health"
	"github.com/naeemhossain01/flexfume-backend/internal/obs"
	"github.com/naeemhossain01/flexfume-backend/internal/order"
	"github.com/naeemhossain01/flexfume-backend/internal/otp"
	"github.com/naeemhossain01/flexfume-backend/internal/ratelimit"
	"github.com/naeemhossain01/flexfume-backend/internal/security"
	"github.com/naeemhossain01/flexfume-backend/internal/user"
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
			ServiceName:   "flexfume-api",
			Endpoint:      cfg.TracingEndpoint,
			SamplingRatio: cfg.TracingSampling,
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse database config")
	}
	poolConfig.ConnConfig.Tracer = obs.PGXTracer{}
	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "flexfume-api"
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}

	queries := dbgen.New(pool)

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis metrics")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("ping redis")
	}

	taskOpts, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url for task queue")
	}
	taskClient := asynq.NewClient(taskOpts)
	defer func() {
		if err := taskClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close task client")
		}
	}()

	validate := validator.New(validator.WithRequiredStructEnabled())

	otpSvc := &otp.Service{Redis: redisClient, Tasks: taskClient}
	otpHandler := &otp.Handler{Svc: otpSvc, Validate: validate}

	authSvc, err := auth.NewService(queries, otpSvc, auth.Config{
		Secret:    []byte(cfg.JWTSecret),
		AccessTTL: cfg.AccessTokenTTL,
		Issuer:    cfg.JWTIssuer,
		Audience:  cfg.JWTAudience,
		ClockSkew: cfg.JWTClockSkew,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise auth service")
	}
	authHandler := &auth.Handler{Svc: authSvc, Validate: validate}
	authMiddleware := auth.Middleware{Service: authSvc}

	userSvc := &user.Service{Q: queries, Verifier: otpSvc}
	userHandler := &user.Handler{Svc: userSvc, Validate: validate}

	checkoutSvc := &checkout.Service{Q: queries, Pool: pool, OTP: otpSvc, Auth: authSvc}
	checkoutHandler := &checkout.Handler{Svc: checkoutSvc, Validate: validate}

	catalogSvc := &catalog.Service{Q: queries, Cache: catalog.NewCache(redisClient, cfg.CatalogCacheTTL)}
	catalogHandler := &catalog.Handler{Q: queries, Svc: catalogSvc, Validate: validate}

	cartSvc := &cart.Service{Q: queries}
	cartHandler := &cart.Handler{Svc: cartSvc, Validate: validate}

	couponSvc := &coupon.Service{Q: queries, Pool: pool}
	couponHandler := &coupon.Handler{Q: queries, Svc: couponSvc, Validate: validate}

	deliverySvc := &delivery.Service{Q: queries}
	deliveryHandler := &delivery.Handler{Q: queries, Svc: deliverySvc, Validate: validate}

	orderSvc := &order.Service{Q: queries, Pool: pool}
	orderHandler := &order.Handler{Svc: orderSvc, Validate: validate}
	orderAdmin := &order.AdminHandler{Svc: orderSvc}

	idem := common.Idem{R: redisClient, TTL: cfg.IdempotencyTTL}
	otpLimit := ratelimit.Handler{
		Limiter: ratelimit.Limiter{Client: redisClient, Prefix: "rl:otp"},
		Config: ratelimit.Config{
			Key:    common.ClientIP,
			Window: cfg.OTPSendWindow,
			Max:    cfg.OTPSendMax,
		},
	}

	httpMetrics := obs.NewHTTPMetrics(cfg.MetricsNamespace, nil, nil)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(security.Headers{Enable: true}.Middleware)
	r.Use(security.BodyLimit{Max: cfg.BodyLimitBytes}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())
	if pprofUser := strings.TrimSpace(os.Getenv("PPROF_BASIC_AUTH_USER")); pprofUser != "" {
		r.Mount("/debug/pprof", protectPprof(newPprofMux(), pprofUser, os.Getenv("PPROF_BASIC_AUTH_PASS")))
	}

	healthHandler := health.Handler{
		Checker:      readinessChecker{db: pool, redis: redisClient},
		DBTimeout:    500 * time.Millisecond,
		RedisTimeout: 300 * time.Millisecond,
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Get("/products", catalogHandler.ListProducts)
		v.Get("/products/search", catalogHandler.SearchProducts)
		v.Get("/products/{id}", catalogHandler.GetProduct)
		v.Get("/categories", catalogHandler.ListCategories)
		v.Get("/categories/{id}", catalogHandler.GetCategory)
		v.Get("/categories/{id}/products", catalogHandler.ListProductsByCategory)

		v.Group(func(admin chi.Router) {
			admin.Use(authMiddleware.RequireAuth)
			admin.Use(authMiddleware.RequireAdmin)
			admin.Post("/products", catalogHandler.CreateProduct)
			admin.Put("/products/{id}", catalogHandler.UpdateProduct)
			admin.Delete("/products/{id}", catalogHandler.DeleteProduct)
			admin.Post("/categories", catalogHandler.CreateCategory)
			admin.Put("/categories/{id}", catalogHandler.UpdateCategory)
			admin.Delete("/categories/{id}", catalogHandler.DeleteCategory)
			admin.Post("/discounts", catalogHandler.UpsertDiscount)
			admin.Put("/discounts", catalogHandler.UpsertDiscount)
			admin.Delete("/discounts/{id}", catalogHandler.DeleteDiscount)
		})

		v.Route("/auth", func(a chi.Router) {
			a.With(otpLimit.Middleware).Post("/otp/send", otpHandler.Send)
			a.Post("/otp/verify", otpHandler.Verify)
			a.Post("/register", userHandler.Register)
			a.Post("/login", authHandler.Login)
			a.Post("/password/reset", authHandler.ResetPassword)

			a.Group(func(protected chi.Router) {
				protected.Use(authMiddleware.RequireAuth)
				protected.Post("/password/change", authHandler.ChangePassword)
			})
		})

		v.Route("/checkout", func(c chi.Router) {
			c.With(otpLimit.Middleware).Post("/otp/send", checkoutHandler.SendOTP)
			c.Post("/otp/verify", checkoutHandler.Verify)
		})

		v.Route("/users", func(u chi.Router) {
			u.Use(authMiddleware.RequireAuth)
			u.Get("/me", userHandler.Me)
			u.Put("/me", userHandler.UpdateMe)
			u.Put("/me/address", userHandler.SaveAddress)
			u.With(authMiddleware.RequireAdmin).Get("/", userHandler.ListAll)
		})

		v.Route("/cart", func(c chi.Router) {
			c.Use(authMiddleware.RequireAuth)
			c.Get("/", cartHandler.List)
			c.Post("/", cartHandler.Add)
			c.Put("/{id}", cartHandler.Update)
			c.Delete("/{id}", cartHandler.Remove)
		})

		v.Route("/coupon", func(c chi.Router) {
			c.Use(authMiddleware.RequireAuth)
			c.Use(authMiddleware.RequireAdmin)
			c.Post("/", couponHandler.Create)
			c.Get("/", couponHandler.List)
			c.Get("/{id}", couponHandler.Get)
			c.Put("/{id}", couponHandler.Update)
			c.Delete("/{id}", couponHandler.Delete)
			c.Get("/{id}/stats", couponHandler.Stats)
		})

		v.Route("/coupon-usage", func(c chi.Router) {
			c.Use(authMiddleware.RequireAuth)
			c.Post("/", couponHandler.Apply)
			c.With(authMiddleware.RequireAdmin).Delete("/", couponHandler.DeleteUsage)
		})

		v.Route("/delivery-cost", func(d chi.Router) {
			d.Get("/location", deliveryHandler.Lookup)
			d.Get("/", deliveryHandler.List)
			d.Get("/{id}", deliveryHandler.Get)

			d.Group(func(admin chi.Router) {
				admin.Use(authMiddleware.RequireAuth)
				admin.Use(authMiddleware.RequireAdmin)
				admin.Post("/", deliveryHandler.Create)
				admin.Put("/{id}", deliveryHandler.Update)
				admin.Delete("/{id}", deliveryHandler.Delete)
			})
		})

		v.Route("/order", func(o chi.Router) {
			o.Use(authMiddleware.RequireAuth)
			o.With(idem.Middleware).Post("/", orderHandler.Place)
			o.Get("/history", orderHandler.History)
			o.Get("/{id}", orderHandler.Get)

			o.Group(func(admin chi.Router) {
				admin.Use(authMiddleware.RequireAdmin)
				admin.Put("/{id}", orderAdmin.PatchStatus)
				admin.Get("/filter", orderAdmin.Filter)
				admin.Get("/history/{userId}", orderAdmin.UserHistory)
			})
		})
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-stopCtx.Done():
		logger.Info().Msg("shutdown signal received")
		health.SetReady(false)
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown server")
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

type readinessChecker struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func (c readinessChecker) PingDB(ctx context.Context, timeout time.Duration) error {
	if c.db == nil {
		return errors.New("db not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.db.Ping(ctx)
}

func (c readinessChecker) PingRedis(ctx context.Context, timeout time.Duration) error {
	if c.redis == nil {
		return errors.New("redis not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.redis.Ping(ctx).Err()
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
	mux.Handle("/mutex", pprof.Handler("mutex"))
	return mux
}

func protectPprof(handler http.Handler, user, pass string) http.Handler {
	pass = strings.TrimSpace(pass)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 || subtle.ConstantTimeCompare([]byte(p), []byte(pass)) != 1 {
			w.Header().Set("WWW-Authenticate", "Basic realm=restricted")
			http.Error(w, "unauthorised", http.StatusUnauthorized)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
