package main

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/kiryshahaha/MAX/libs/config"
	"github.com/kiryshahaha/MAX/libs/db"
	"github.com/kiryshahaha/MAX/libs/httpx"
	"github.com/kiryshahaha/MAX/libs/kafkax"
	otelx "github.com/kiryshahaha/MAX/libs/otel"
	"github.com/kiryshahaha/MAX/libs/runtime"
	"github.com/kiryshahaha/MAX/services/psychologist-service/internal/availability"
	"github.com/kiryshahaha/MAX/services/psychologist-service/internal/booking"
	"github.com/kiryshahaha/MAX/services/psychologist-service/internal/handlers"
	"github.com/kiryshahaha/MAX/services/psychologist-service/internal/outbox"
	"github.com/kiryshahaha/MAX/services/psychologist-service/internal/storage"
)

func main() {
	service := config.String("SERVICE_NAME", "psychologist-service")
	port, err := config.Port("PORT", "8091")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}
	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	cal := availability.Default()
	if path := config.String("CALENDAR_PATH", ""); path != "" {
		cal, err = availability.Load(path)
		if err != nil {
			logger.Error("calendar load failed", "err", err, "path", path)
			panic(err)
		}
		logger.Info("calendar loaded", "path", path)
	}

	outboxRepo := outbox.NewRepository(pool)
	repo := storage.NewAppointmentRepository(pool, outboxRepo)
	svc := booking.NewService(cal, repo, logger)
	handler := handlers.NewAppointmentsHandler(svc, logger)

	brokers := config.String("KAFKA_BROKERS", "")
	publisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   brokers,
		PollEvery: time.Duration(config.Int("OUTBOX_POLL_SECONDS", 2)) * time.Second,
		BatchSize: config.Int("OUTBOX_BATCH_SIZE", 50),
	})
	go publisher.Run(ctx)

	checks := []runtime.ReadyCheck{{Name: "db", Check: db.ReadyCheck(pool)}}
	if brokers != "" {
		checks = append(checks, runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(brokers)})
	}
	mux := runtime.NewBaseMux(checks...)
	mux.HandleFunc("/appointments", handler.Create)
	mux.HandleFunc("/appointments/", handler.ListByUser)
	mux.HandleFunc("/available_slots", handler.AvailableSlots)
	mux.HandleFunc("/schedule/", handler.Schedule)

	httpHandler := httpx.Chain(mux,
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins: config.List("CORS_ALLOWED_ORIGINS", ""),
			AllowedMethods: config.List("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS"),
			AllowedHeaders: config.List("CORS_ALLOWED_HEADERS", "Content-Type,X-Request-Id"),
			MaxAge:         time.Duration(config.Int("CORS_MAX_AGE_SECONDS", 600)) * time.Second,
		}),
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithBodyLimit(int64(config.Int("REQUEST_BODY_LIMIT_BYTES", 1<<20))),
		httpx.WithTimeout(time.Duration(config.Int("REQUEST_TIMEOUT_SECONDS", 10))*time.Second),
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "psychologist")

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}
