package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"diraBack/internal/models"
	"diraBack/internal/services"
)

type LikeHandler struct {
	Service *services.LikeService
	Events  func(models.FeedEvent)
}

// ToggleLike flips the current user's like for the apartment and returns the
// updated listing. A toggle that is already in flight for this pair answers
// 409 and the client retries.
func (h *LikeHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	apartmentID := r.URL.Query().Get(":id")
	if apartmentID == "" {
		http.Error(w, "Missing apartment ID", http.StatusBadRequest)
		return
	}

	apartment, err := h.Service.ToggleLike(r.Context(), apartmentID, userIDFromContext(r))
	switch {
	case errors.Is(err, models.ErrNoUser):
		http.Error(w, "Missing user", http.StatusUnauthorized)
		return
	case errors.Is(err, models.ErrLikeInFlight):
		http.Error(w, "Toggle already in progress", http.StatusConflict)
		return
	case errors.Is(err, models.ErrApartmentNotFound):
		http.Error(w, "Apartment not found", http.StatusNotFound)
		return
	case err != nil:
		log.Printf("ToggleLike error: %v", err)
		http.Error(w, "Failed to toggle like", http.StatusInternalServerError)
		return
	}

	if h.Events != nil {
		h.Events(models.FeedEvent{Type: "like_toggled", ApartmentID: apartment.ID, LikeCount: len(apartment.Likes)})
	}
	json.NewEncoder(w).Encode(apartment)
}
