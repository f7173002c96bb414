// Package ridelogfilter exposes the ride-log filtering pipeline over HTTP:
// spreadsheet upload in, filtered and optionally geo-enriched spreadsheet out.
package ridelogfilter

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theoremus-urban-solutions/ridelog-filter/auth"
	"github.com/theoremus-urban-solutions/ridelog-filter/config"
)

// Server owns the HTTP surface. All request state is scoped to one request;
// the server itself only holds configuration and the auth service.
type Server struct {
	cfg  config.AppConfig
	auth *auth.Service
	srv  *http.Server
}

// NewServer builds the server from configuration.
func NewServer(cfg config.AppConfig) *Server {
	s := &Server{cfg: cfg, auth: auth.NewService(cfg.Auth)}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/auth/token", s.handleToken)
	mux.HandleFunc("/api/filter-driver", s.handleFilterDriver)
	mux.HandleFunc("/api/filter-driver/batch", s.handleFilterDriverBatch)

	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		// No write timeout: enrichment waits at least a second per marked
		// row, so response latency grows with the upload.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the route table, for tests.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// Start begins serving in the background.
func (s *Server) Start() {
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", s.srv.Addr)
}

// HandleGracefulShutdown blocks until SIGINT/SIGTERM, then drains the server.
func (s *Server) HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	} else {
		log.Printf("server shut down successfully")
	}
}
