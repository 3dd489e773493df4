package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"convite/internal/auth"
	"convite/internal/config"
	"convite/internal/handler"
	"convite/internal/middleware"
	"convite/internal/rsvp"
	"convite/internal/store"
	ws "convite/internal/websocket"
)

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	eventH      *handler.EventHandler
	confirmH    *handler.ConfirmationHandler
	masterH     *handler.MasterAdminHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, cfg *config.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	loc := cfg.Location()

	eventStore := store.NewEventStore(db)
	confirmationStore := store.NewConfirmationStore(db)
	rsvpSvc := rsvp.NewService(eventStore, confirmationStore)
	master := auth.NewMaster(cfg.MasterPassword)

	return &Server{
		db:          db,
		hub:         hub,
		eventH:      handler.NewEventHandler(eventStore, confirmationStore, hub, loc, logger.With("component", "event")),
		confirmH:    handler.NewConfirmationHandler(rsvpSvc, hub, logger.With("component", "confirm")),
		masterH:     handler.NewMasterAdminHandler(master, eventStore, hub, loc, logger.With("component", "master_admin")),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Public event surface
	mux.HandleFunc("POST /api/events", s.eventH.Create)
	mux.HandleFunc("GET /api/events/{code}", s.eventH.GetByCode)
	mux.HandleFunc("POST /api/events/{code}/confirm", s.rateLimited(s.confirmH.ConfirmGuest, 30))
	mux.HandleFunc("POST /api/events/{code}/confirm-family", s.rateLimited(s.confirmH.ConfirmFamily, 30))

	// Organizer surface (link-code capability)
	mux.HandleFunc("GET /api/admin/{code}", s.eventH.AdminView)
	mux.HandleFunc("DELETE /api/admin/{eventId}/confirmations", s.eventH.ClearConfirmations)

	// Master admin surface
	mux.HandleFunc("POST /api/master-admin/login", s.rateLimited(s.masterH.Login, 10))
	mux.HandleFunc("GET /api/master-admin/events", s.masterH.ListEvents)
	mux.HandleFunc("PUT /api/master-admin/events/{id}", s.masterH.UpdateEvent)
	mux.HandleFunc("DELETE /api/master-admin/events/{id}", s.masterH.DeleteEvent)

	// Live confirmation feed
	mux.HandleFunc("GET /ws", ws.Handle(s.hub, s.logger.With("component", "websocket")))

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /api/ping", s.pingHandler)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := s.db.PingContext(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy"})
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "pong"})
}

func (s *Server) rateLimited(h http.HandlerFunc, perMinute int) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, perMinute, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
