// Package api mojilens REST API
//
// @title           mojilens REST API
// @version         1.0.0
// @description     Character encoding analysis: per-character UTF-8 and Shift_JIS bytes, round-trip validity and mojibake simulation.
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            X-API-Key
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
)

const shutdownTimeout = 5 * time.Second

const swaggerUI = `<!DOCTYPE html>
<html>
<head>
	 <title>mojilens API Documentation</title>
	 <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui.css" />
</head>
<body>
	 <div id="swagger-ui"></div>
	 <script src="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui-bundle.js"></script>
	 <script>
	   window.onload = function() {
	     SwaggerUIBundle({
	       url: '/swagger/swagger.json',
	       dom_id: '#swagger-ui',
	       presets: [
	         SwaggerUIBundle.presets.apis,
	         SwaggerUIBundle.presets.standalone
	       ]
	     });
	   };
	 </script>
</body>
</html>`

// NewRouter builds the HTTP handler with all routes configured
func NewRouter(server *Server) http.Handler {
	metrics := server.metrics

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		// Analysis is read-only and open so the UI can call it on every keystroke
		r.Post("/analyze", metrics.InstrumentHandler("POST", "/api/v1/analyze", server.handleAnalyze))
		r.Post("/mojibake", metrics.InstrumentHandler("POST", "/api/v1/mojibake", server.handleMojibake))
		r.Post("/decode", metrics.InstrumentHandler("POST", "/api/v1/decode", server.handleDecode))

		r.Get("/snippets", metrics.InstrumentHandler("GET", "/api/v1/snippets", server.requireSnippets(server.handleListSnippets)))
		r.Get("/snippets/{id}", metrics.InstrumentHandler("GET", "/api/v1/snippets/{id}", server.requireSnippets(server.handleGetSnippet)))

		// Write routes
		r.Group(func(r chi.Router) {
			r.Use(apiKeyMiddleware(server.config.APIKey, metrics))

			r.Post("/ask", metrics.InstrumentHandler("POST", "/api/v1/ask", server.handleAsk))
			r.Post("/snippets", metrics.InstrumentHandler("POST", "/api/v1/snippets", server.requireSnippets(server.handleCreateSnippet)))
			r.Delete("/snippets/{id}", metrics.InstrumentHandler("DELETE", "/api/v1/snippets/{id}", server.requireSnippets(server.handleDeleteSnippet)))
		})
	})

	// Swagger documentation (unprotected)
	r.Get("/swagger/*", server.handleSwagger)

	return r
}

func (s *Server) handleSwagger(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/swagger/", "/swagger/index.html":
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerUI))
	case "/swagger/swagger.json":
		doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
		if err != nil {
			s.logger.Error("failed to generate swagger doc", "error", err)
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	default:
		http.NotFound(w, r)
	}
}

// StartServer serves the API until ctx is cancelled, then shuts down gracefully
func StartServer(ctx context.Context, deps Dependencies, config ServerConfig) error {
	if deps.Engine == nil {
		return errors.New("api: an analysis engine is required")
	}

	addr := net.JoinHostPort(config.Bind, strconv.Itoa(config.Port))
	SwaggerInfo.Host = fmt.Sprintf("localhost:%d", config.Port)

	metrics := NewMetrics(nil)
	server := NewServer(deps, config, metrics)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		server.logger.Info("starting mojilens REST API server",
			"addr", addr,
			"legacy_available", deps.Engine.LegacyAvailable(),
			"write_auth", config.APIKey != "")
		server.logger.Info("metrics available", "url", fmt.Sprintf("http://localhost:%d/metrics", config.Port))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	server.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
