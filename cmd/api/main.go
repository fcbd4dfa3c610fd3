// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vibe-trading/waitlist-platform/internal/config"
	"github.com/vibe-trading/waitlist-platform/internal/entitlement"
	"github.com/vibe-trading/waitlist-platform/internal/events"
	"github.com/vibe-trading/waitlist-platform/internal/handler"
	"github.com/vibe-trading/waitlist-platform/internal/llm"
	"github.com/vibe-trading/waitlist-platform/internal/middleware"
	"github.com/vibe-trading/waitlist-platform/internal/notify"
	"github.com/vibe-trading/waitlist-platform/internal/payment"
	"github.com/vibe-trading/waitlist-platform/internal/service"
	"github.com/vibe-trading/waitlist-platform/internal/store"
	"github.com/vibe-trading/waitlist-platform/pkg/logger"
	"github.com/vibe-trading/waitlist-platform/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting API server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "waitlist-platform", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Open subscriber store
	st, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database", zap.Error(err))
		os.Exit(1)
	}
	defer st.Close()

	// Connect to NATS (optional; nil publisher is a no-op)
	publisher, err := events.Connect(ctx, cfg.NATSURL, cfg.NATSToken, log)
	if err != nil {
		log.Error("failed to connect to NATS", zap.Error(err))
		os.Exit(1)
	}
	defer publisher.Close()

	// Telegram notifications
	notifier := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID, log)

	// Initialize LLM client
	var llmClient llm.Client
	switch {
	case cfg.DefaultLLM == "openai" && cfg.OpenAIAPIKey != "":
		llmClient, err = llm.NewOpenAIClient(cfg.OpenAIAPIKey)
	case cfg.AnthropicAPIKey != "":
		llmClient, err = llm.NewAnthropicClient(cfg.AnthropicAPIKey)
	case cfg.OpenAIAPIKey != "":
		llmClient, err = llm.NewOpenAIClient(cfg.OpenAIAPIKey)
	}
	if err != nil {
		log.Warn("failed to create LLM client, template replies only", zap.Error(err))
		llmClient = nil
	}

	// Initialize services
	subscriptionSvc := service.NewSubscriptionService(st, notifier, publisher, log)
	chatSvc := service.NewChatService(subscriptionSvc, entitlement.NewState(), llmClient, log)

	// Invoice builder
	invoices := payment.NewBuilder(cfg.SolanaRecipient, cfg.EarlyBirdAmount, cfg.InvoiceLabel)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(st, publisher)
	subscribeHandler := handler.NewSubscribeHandler(subscriptionSvc, log)
	chatHandler := handler.NewChatHandler(chatSvc, log)
	paymentHandler := handler.NewPaymentHandler(subscriptionSvc, invoices, cfg.DebugPayment, log)
	adminHandler := handler.NewAdminHandler(subscriptionSvc, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Link", "X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// Public API
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Post("/subscribe", subscribeHandler.Subscribe)
		r.Post("/chat", chatHandler.Chat)
		r.Post("/invoice/{userId}", paymentHandler.CreateInvoice)
		r.Get("/status/{userId}", paymentHandler.Status)
		r.Post("/debug/pay/{userId}", paymentHandler.ConfirmPayment)

		// Conversations
		r.Route("/conversations", func(r chi.Router) {
			r.Post("/", chatHandler.CreateConversation)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", chatHandler.GetConversation)
				r.Delete("/", chatHandler.DeleteConversation)

				r.Get("/messages", chatHandler.ListMessages)
				r.Post("/messages", chatHandler.SendMessage)
			})
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))
			r.Use(middleware.RequireScope(middleware.ScopeAdmin))

			r.Get("/subscribers", adminHandler.ListSubscribers)
			r.Get("/subscribers.txt", adminHandler.ListSubscribersPlain)
		})
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
