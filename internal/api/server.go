package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"boxingsim/internal/events"
)

// Server combines the HTTP router with the WebSocket hub for the live
// event feed.
type Server struct {
	service     *UniverseService
	router      *chi.Mux
	wsHub       *WebSocketHub
	rateLimiter *IPRateLimiter
}

// NewServer creates an API server with default production configuration.
//
// Background workers do NOT start until Start() is called: the server can
// be constructed in tests without goroutines or network listeners. For
// testing HTTP endpoints alone, use NewRouter directly.
func NewServer(service *UniverseService, sessions *SessionManager) *Server {
	s := &Server{
		service: service,
		wsHub:   NewWebSocketHub(),
	}

	s.rateLimiter = NewIPRateLimiter(DefaultRateLimitConfig)

	s.router = NewRouter(RouterConfig{
		Service:        service,
		RateLimiter:    s.rateLimiter,
		SessionManager: sessions,
	})

	// The WebSocket routes need the hub instance, so they are attached
	// here rather than in the pure NewRouter factory.
	s.router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		s.wsHub.HandleWebSocket(w, r)
	})
	s.router.Post("/api/fighters/{id}/replay/{bout}/broadcast", s.handleReplayBroadcast)

	return s
}

// handleReplayBroadcast reruns a historical bout and relays its event
// stream to every connected WebSocket client.
func (s *Server) handleReplayBroadcast(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	bout, err := strconv.Atoi(chi.URLParam(r, "bout"))
	if err != nil {
		writeError(w, "invalid bout index", http.StatusBadRequest)
		return
	}

	history, err := s.service.ReplayBout(id, bout)
	if err != nil {
		writeError(w, err.Error(), http.StatusNotFound)
		return
	}

	ch := make(chan events.Event, len(history))
	for _, e := range history {
		ch <- e
	}
	close(ch)
	go s.wsHub.StreamBout(ch)

	writeJSON(w, map[string]interface{}{"events": len(history), "clients": s.wsHub.ClientCount()})
}

// Hub returns the WebSocket hub, for wiring a live bout's event feed.
func (s *Server) Hub() *WebSocketHub { return s.wsHub }

// Start begins the HTTP server and starts background workers. This is the
// only method that starts goroutines or opens network listeners.
func (s *Server) Start(addr string) error {
	go s.wsHub.Run()
	log.Printf("api server starting on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Router returns the HTTP handler for use with httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Stop shuts down background workers.
func (s *Server) Stop() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}
