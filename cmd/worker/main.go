package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/naeemhossain01/flexfume-backend/internal/config"
	"github.com/naeemhossain01/flexfume-backend/internal/obs"
	"github.com/naeemhossain01/flexfume-backend/internal/otp"
	"github.com/naeemhossain01/flexfume-backend/internal/resilience"
	"github.com/naeemhossain01/flexfume-backend/internal/sms"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("component", "worker").Logger()

	obs.MustRegisterDomainMetrics(cfg.MetricsNamespace, nil)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisOpts, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}

	srv := asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: cfg.WorkerConcurrency,
		Logger:      asynqLogger{logger},
	})

	mux := asynq.NewServeMux()
	mux.Handle(otp.TaskTypeSendSMS, &otp.TaskHandler{
		Sender: newSender(cfg, logger),
		Logger: &logger,
	})

	go func() {
		<-ctx.Done()
		logger.Info().Msg("shutdown signal received")
		srv.Shutdown()
	}()

	logger.Info().Int("concurrency", cfg.WorkerConcurrency).Msg("worker starting")
	if err := srv.Run(mux); err != nil {
		logger.Fatal().Err(err).Msg("worker exited unexpectedly")
	}
}

// newSender picks the SMS gateway when one is configured and falls back
// to a log-only sender for local development.
func newSender(cfg *config.Config, logger zerolog.Logger) sms.Sender {
	if cfg.SMSGatewayURL == "" {
		return sms.Noop{Logger: &logger}
	}
	return &sms.Provider{
		URL:      cfg.SMSGatewayURL,
		APIKey:   cfg.SMSAPIKey,
		SenderID: cfg.SMSSenderID,
		HTTP: &resilience.HTTPClient{
			Client: &http.Client{
				Timeout:   10 * time.Second,
				Transport: otelhttp.NewTransport(http.DefaultTransport),
			},
			Breaker:     resilience.NewBreaker(5, 0.5, 30*time.Second).WithTarget("sms-gateway").WithLogger(logger),
			BaseBackoff: 200 * time.Millisecond,
			MaxAttempts: 3,
			Jitter:      0.2,
		},
	}
}

// asynqLogger adapts zerolog to the asynq logging interface.
type asynqLogger struct {
	log zerolog.Logger
}

func (l asynqLogger) Debug(args ...interface{}) { l.log.Debug().Msg(fmtArgs(args)) }
func (l asynqLogger) Info(args ...interface{})  { l.log.Info().Msg(fmtArgs(args)) }
func (l asynqLogger) Warn(args ...interface{})  { l.log.Warn().Msg(fmtArgs(args)) }
func (l asynqLogger) Error(args ...interface{}) { l.log.Error().Msg(fmtArgs(args)) }
func (l asynqLogger) Fatal(args ...interface{}) { l.log.Fatal().Msg(fmtArgs(args)) }

func fmtArgs(args []interface{}) string {
	return fmt.Sprint(args...)
}
