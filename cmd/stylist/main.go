package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/outfitly/stylist/internal/config"
	logpkg "github.com/outfitly/stylist/internal/logger"
	"github.com/outfitly/stylist/internal/metrics"
	"github.com/outfitly/stylist/internal/repository/catalog"
	"github.com/outfitly/stylist/internal/repository/history"
	chiTransport "github.com/outfitly/stylist/internal/transport/chi"
	chatuc "github.com/outfitly/stylist/internal/usecase/chat"
	filteruc "github.com/outfitly/stylist/internal/usecase/filter"
	healthuc "github.com/outfitly/stylist/internal/usecase/health"
	pairinguc "github.com/outfitly/stylist/internal/usecase/pairing"
	"github.com/outfitly/stylist/internal/version"
)

func main() {
	// Pick up a local .env before reading ENV-driven config.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting stylist API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_path", cfg.Catalog.Path),
	)

	// The catalog loads once at startup; a missing or broken file yields an
	// empty store and structured failures downstream, never a crash.
	store := catalog.Load(cfg.Catalog.Path, logger)
	logger.Info("Catalog loaded", zap.Int("products", store.Len()))

	// Register engine metrics explicitly (no init())
	metrics.RegisterEngineMetrics()

	// Session store: Redis when configured, in-process memory otherwise.
	var histStore chatuc.HistoryStore
	var histPinger healthuc.HistoryPinger
	if len(cfg.Redis.Addrs) > 0 {
		redisStore, err := history.NewRedisStore(history.RedisConfig{
			Addrs:       cfg.Redis.Addrs,
			Username:    cfg.Redis.Username,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			TTL:         time.Duration(cfg.Redis.SessionTTLSec) * time.Second,
			MaxMessages: cfg.Redis.MaxMessages,
		})
		if err != nil {
			logger.Fatal("Failed to create session store", zap.Error(err))
		}
		defer redisStore.Close()
		histStore = redisStore
		histPinger = redisStore
		logger.Info("Using Redis session store", zap.Strings("addrs", cfg.Redis.Addrs))
	} else {
		mem := history.NewMemoryStore(cfg.Redis.MaxMessages)
		histStore = mem
		histPinger = nil
		logger.Info("Using in-memory session store")
	}

	// Use case services — composition root
	filterSvc := filteruc.New(store)
	pairingSvc := pairinguc.New(store, filterSvc, cfg.Catalog.Brand)
	healthSvc := healthuc.New(store, histPinger)

	var chatSvc chiTransport.Chatter
	if cfg.OpenAI.APIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.OpenAI.APIKey)
		if cfg.OpenAI.BaseURL != "" {
			clientCfg.BaseURL = cfg.OpenAI.BaseURL
		}
		client := openai.NewClientWithConfig(clientCfg)
		chatSvc = chatuc.New(client, histStore, filterSvc, pairingSvc, cfg.OpenAI.Model)
		logger.Info("Chat enabled", zap.String("model", cfg.OpenAI.Model))
	} else {
		logger.Warn("No OpenAI API key configured, chat endpoint disabled")
	}

	server := chiTransport.NewServer(chatSvc, filterSvc, pairingSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(requestLogMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogMiddleware emits a canonical log line per request and propagates X-Request-ID.
func requestLogMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
