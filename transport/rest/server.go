package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type statsProvider interface {
	Stats() (rooms, clients int)
}

type presenceRepo interface {
	CountOnline(ctx context.Context) (int64, error)
}

type matchRepo interface {
	TotalMatches(ctx context.Context) (int64, error)
}

type Server struct {
	logger *slog.Logger

	stats        statsProvider
	presenceRepo presenceRepo
	matchRepo    matchRepo
}

func New(logger *slog.Logger, stats statsProvider, presenceRepo presenceRepo, matchRepo matchRepo) *Server {
	return &Server{
		logger:       logger.With("component", "rest"),
		stats:        stats,
		presenceRepo: presenceRepo,
		matchRepo:    matchRepo,
	}
}

func (that *Server) Start(port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", that.pingHandler)
	mux.HandleFunc("/healthz", that.healthHandler)
	mux.HandleFunc("/stats", that.statsHandler)

	return mux
}

func (that *Server) pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

type statsResponse struct {
	Rooms   int   `json:"rooms"`
	Clients int   `json:"clients"`
	Online  int64 `json:"online"`
	Matches int64 `json:"matches"`
}

func (that *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "statsHandler")
	ctx := r.Context()

	rooms, clients := that.stats.Stats()

	online, err := that.presenceRepo.CountOnline(ctx)
	if err != nil {
		log.Error("failed to count online participants", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	matches, err := that.matchRepo.TotalMatches(ctx)
	if err != nil {
		log.Error("failed to count matches", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(statsResponse{
		Rooms:   rooms,
		Clients: clients,
		Online:  online,
		Matches: matches,
	}); err != nil {
		log.Error("failed to encode stats response", "error", err)
	}
}
