package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// routerHandlers holds the handler functions for the router.
type routerHandlers struct {
	service  *UniverseService
	sessions *SessionManager
}

func (h *routerHandlers) handleGetUniverse(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.Summary())
}

func (h *routerHandlers) handleGetDivisions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.Summary().Divisions)
}

func (h *routerHandlers) handleGetRankings(w http.ResponseWriter, r *http.Request) {
	division := chi.URLParam(r, "division")
	rankings, ok := h.service.DivisionRankings(division)
	if !ok {
		writeError(w, "unknown division", http.StatusNotFound)
		return
	}
	writeJSON(w, rankings)
}

func (h *routerHandlers) handleGetFighter(w http.ResponseWriter, r *http.Request) {
	view, ok := h.service.Fighter(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, "fighter not found", http.StatusNotFound)
		return
	}
	writeJSON(w, view)
}

func (h *routerHandlers) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	hist, ok := h.service.FighterHistory(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, "fighter not found", http.StatusNotFound)
		return
	}
	writeJSON(w, hist)
}

func (h *routerHandlers) handleGetReplay(w http.ResponseWriter, r *http.Request) {
	bout, err := strconv.Atoi(chi.URLParam(r, "bout"))
	if err != nil {
		writeError(w, "invalid bout index", http.StatusBadRequest)
		return
	}
	log, err := h.service.ReplayBout(chi.URLParam(r, "id"), bout)
	if err != nil {
		writeError(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, log)
}

func (h *routerHandlers) handleGetRecent(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		if v, err := strconv.Atoi(q); err == nil && v > 0 {
			limit = v
		}
	}
	writeJSON(w, h.service.RecentResults(limit))
}

func (h *routerHandlers) handleGetHOF(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.HallOfFame())
}

func (h *routerHandlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	id, ok := h.sessions.Login(req.Token)
	if !ok {
		writeError(w, "invalid token", http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]string{"session": id})
}

func (h *routerHandlers) handleAdvance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Weeks int `json:"weeks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Weeks <= 0 {
		req.Weeks = 1
	}
	if req.Weeks > 52 {
		req.Weeks = 52 // bound a single request to one simulated year
	}

	fights, err := h.service.AdvanceWeeks(req.Weeks)
	if err != nil {
		writeError(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, map[string]interface{}{
		"weeksAdvanced": req.Weeks,
		"fightsRun":     fights,
		"universe":      h.service.Summary(),
	})
}

func (h *routerHandlers) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Save(); err != nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
