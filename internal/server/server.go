package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"account-ledger/internal/config"
	"account-ledger/internal/handler"
	"account-ledger/internal/middleware"
	"account-ledger/internal/notification"
	"account-ledger/internal/repository"
	"account-ledger/internal/service"
	"account-ledger/internal/telemetry"
)

// Server represents the HTTP server
type Server struct {
	router   *mux.Router
	server   *http.Server
	notifier notification.Notifier
	logger   *slog.Logger
	port     string
}

// NewServer wires the account store, notifier, services and handlers.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	notifier, err := notification.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	accountRepo := repository.NewAccountRepository(logger)

	transferService := service.NewTransferService(accountRepo, notifier, cfg.NotifyTimeout, logger)
	ledgerService := service.NewLedgerService(accountRepo, transferService, logger)

	accountHandler := handler.NewAccountHandler(ledgerService)
	transferHandler := handler.NewTransferHandler(ledgerService)

	router := mux.NewRouter()

	router.Use(otelmux.Middleware(cfg.ServiceName))
	router.Use(middleware.Logging(logger))
	router.Use(middleware.Metrics)

	// Account routes
	router.HandleFunc("/v1/accounts", accountHandler.CreateAccount).Methods("POST")
	router.HandleFunc("/v1/accounts/transfer", transferHandler.Transfer).Methods("POST")
	router.HandleFunc("/v1/accounts/{account_id}", accountHandler.GetAccount).Methods("GET")

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods("GET")

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return &Server{
		router:   router,
		notifier: notifier,
		logger:   logger,
	}, nil
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port string) (string, error) {
	// Create listener first to get actual port
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return "", err
	}

	addr := listener.Addr().(*net.TCPAddr)
	s.port = strconv.Itoa(addr.Port)

	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server", "port", s.port)

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Server failed to start", "error", err)
		}
	}()

	return s.port, nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server")

	var shutdownErr error
	if s.server != nil {
		shutdownErr = s.server.Shutdown(ctx)
	}

	// In-flight transfers may still notify until Shutdown returns.
	if s.notifier != nil {
		if err := s.notifier.Close(); err != nil {
			s.logger.Warn("Failed to close notifier", "error", err)
		}
	}

	return shutdownErr
}

// GetPort returns the port the server is listening on
func (s *Server) GetPort() string {
	return s.port
}

// GetBaseURL returns the base URL for the server
func (s *Server) GetBaseURL() string {
	return "http://localhost:" + s.port
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *mux.Router {
	return s.router
}

// StartServer starts the server with the given configuration
func StartServer(cfg *config.Config) (*Server, string, error) {
	var logger *slog.Logger
	if cfg.ServerPort == "0" {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	} else {
		logger = telemetry.NewLogger(os.Stdout, cfg.ServiceName, cfg.LogLevel)
	}

	server, err := NewServer(cfg, logger)
	if err != nil {
		return nil, "", err
	}

	port, err := server.Start(cfg.ServerPort)
	if err != nil {
		server.notifier.Close()
		return nil, "", err
	}

	return server, port, nil
}
