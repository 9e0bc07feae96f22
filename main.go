package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"deskwork-invoice/internal/audit"
	"deskwork-invoice/internal/auth"
	"deskwork-invoice/internal/observability/metrics"
	statementapp "deskwork-invoice/internal/statement/application"
	statementinterfaces "deskwork-invoice/internal/statement/interfaces"
)

const (
	serviceName    = "deskwork-invoice"
	serviceVersion = "1.1.0"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := statementapp.LoadConfig()
	if err != nil {
		logger.Fatalf("config error: %v", err)
	}
	if cfg.JWTSecret == "" {
		logger.Fatal("AUTH_JWT_SECRET is required")
	}

	metrics.Init()

	service, err := statementapp.NewStatementService(systemClock{}, logger)
	if err != nil {
		logger.Fatalf("statement service error: %v", err)
	}
	statementHandler, err := statementinterfaces.NewStatementHandler(service, cfg.DefaultTemplate, cfg.MaxBodyBytes, audit.NewTrail(logger))
	if err != nil {
		logger.Fatalf("statement handler error: %v", err)
	}

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	healthBody := fmt.Sprintf(`{"status":"healthy","service":%q,"version":%q}`, serviceName, serviceVersion)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/statements/generate", statementHandler)
	mux.Handle("/api/v1/statements/preview", statementHandler)
	mux.Handle("/api/v1/statements/export.xlsx", statementHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(healthBody))
	})

	handler := loggingMiddleware(corsMiddleware(authMiddleware.Wrap(mux)), logger)
	server := &http.Server{Addr: cfg.HTTPAddr, Handler: handler}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

// corsMiddleware answers preflight requests before auth runs; browser
// clients send OPTIONS without an Authorization header.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }
