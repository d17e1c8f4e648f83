package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"diraBack/internal/services"
)

type StatsHandler struct {
	ApartmentService *services.ApartmentService
	Stats            *services.StatsService
}

// GetSummary returns total/active/closed counts and the per-city breakdown
// for the requested status partition ("all" by default).
func (h *StatsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && status != "all" && status != "active" && status != "closed" {
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}

	apartments, err := h.ApartmentService.GetFeedByStatus(r.Context(), status)
	if err != nil {
		log.Printf("GetSummary error: %v", err)
		http.Error(w, "Failed to fetch apartments", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(h.Stats.Summarize(apartments))
}
