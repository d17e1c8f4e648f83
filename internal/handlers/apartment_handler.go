package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"diraBack/internal/models"
	"diraBack/internal/services"
)

type ApartmentHandler struct {
	Service *services.ApartmentService
	Events  func(models.FeedEvent)
}

func userIDFromContext(r *http.Request) string {
	if id, ok := r.Context().Value("user_id").(string); ok {
		return id
	}
	return ""
}

func (h *ApartmentHandler) notify(event models.FeedEvent) {
	if h.Events != nil {
		h.Events(event)
	}
}

// GetFeed applies the posted filter to the listing collection. An empty body
// or empty filter matches everything.
func (h *ApartmentHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	var filter models.ApartmentFilter
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
			http.Error(w, "Invalid filter", http.StatusBadRequest)
			return
		}
	}

	apartments, err := h.Service.GetFeed(r.Context(), filter)
	if err != nil {
		log.Printf("GetFeed error: %v", err)
		http.Error(w, "Failed to fetch apartments", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(apartments)
}

func (h *ApartmentHandler) GetApartmentByID(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing apartment ID", http.StatusBadRequest)
		return
	}

	apartment, err := h.Service.GetApartmentByID(r.Context(), id)
	if errors.Is(err, models.ErrApartmentNotFound) {
		http.Error(w, "Apartment not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("GetApartmentByID error: %v", err)
		http.Error(w, "Failed to fetch apartment", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(apartment)
}

func (h *ApartmentHandler) GetMyApartments(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	if userID == "" {
		http.Error(w, "Missing user", http.StatusUnauthorized)
		return
	}

	apartments, err := h.Service.GetApartmentsByUser(r.Context(), userID)
	if err != nil {
		log.Printf("GetMyApartments error: %v", err)
		http.Error(w, "Failed to fetch apartments", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(apartments)
}

func (h *ApartmentHandler) GetLikedApartments(w http.ResponseWriter, r *http.Request) {
	apartments, err := h.Service.GetLikedByUser(r.Context(), userIDFromContext(r))
	if errors.Is(err, models.ErrNoUser) {
		http.Error(w, "Missing user", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Printf("GetLikedApartments error: %v", err)
		http.Error(w, "Failed to fetch apartments", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(apartments)
}

func (h *ApartmentHandler) CreateApartment(w http.ResponseWriter, r *http.Request) {
	var apartment models.Apartment
	if err := json.NewDecoder(r.Body).Decode(&apartment); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	apartment.UserID = userIDFromContext(r)

	created, err := h.Service.CreateApartment(r.Context(), apartment)
	if errors.Is(err, models.ErrNoUser) {
		http.Error(w, "Missing user", http.StatusUnauthorized)
		return
	}
	if errors.Is(err, models.ErrNoImages) {
		http.Error(w, "At least one image is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Printf("CreateApartment error: %v", err)
		http.Error(w, "Failed to create apartment", http.StatusInternalServerError)
		return
	}

	h.notify(models.FeedEvent{Type: "created", ApartmentID: created.ID})
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *ApartmentHandler) UpdateApartment(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing apartment ID", http.StatusBadRequest)
		return
	}

	var apartment models.Apartment
	if err := json.NewDecoder(r.Body).Decode(&apartment); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	apartment.ID = id

	updated, err := h.Service.UpdateApartment(r.Context(), apartment, userIDFromContext(r))
	switch {
	case errors.Is(err, models.ErrApartmentNotFound):
		http.Error(w, "Apartment not found", http.StatusNotFound)
		return
	case errors.Is(err, models.ErrNotOwner):
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	case errors.Is(err, models.ErrNoImages):
		http.Error(w, "At least one image is required", http.StatusBadRequest)
		return
	case err != nil:
		log.Printf("UpdateApartment error: %v", err)
		http.Error(w, "Failed to update apartment", http.StatusInternalServerError)
		return
	}

	h.notify(models.FeedEvent{Type: "updated", ApartmentID: updated.ID})
	json.NewEncoder(w).Encode(updated)
}

type closeApartmentRequest struct {
	Reason string `json:"reason"`
}

func (h *ApartmentHandler) CloseApartment(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing apartment ID", http.StatusBadRequest)
		return
	}

	var req closeApartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	err := h.Service.CloseApartment(r.Context(), id, userIDFromContext(r), req.Reason)
	switch {
	case errors.Is(err, models.ErrUnknownReason):
		http.Error(w, "Unknown close reason", http.StatusBadRequest)
		return
	case errors.Is(err, models.ErrApartmentNotFound):
		http.Error(w, "Apartment not found", http.StatusNotFound)
		return
	case errors.Is(err, models.ErrNotOwner):
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	case errors.Is(err, models.ErrAlreadyClosed):
		http.Error(w, "Apartment already closed", http.StatusConflict)
		return
	case err != nil:
		log.Printf("CloseApartment error: %v", err)
		http.Error(w, "Failed to close apartment", http.StatusInternalServerError)
		return
	}

	h.notify(models.FeedEvent{Type: "closed", ApartmentID: id})
	w.WriteHeader(http.StatusOK)
}

type deleteApartmentRequest struct {
	Reason string `json:"reason"`
}

func (h *ApartmentHandler) DeleteApartment(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing apartment ID", http.StatusBadRequest)
		return
	}

	var req deleteApartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	err := h.Service.DeleteApartment(r.Context(), id, userIDFromContext(r), req.Reason)
	switch {
	case errors.Is(err, models.ErrMissingReason):
		http.Error(w, "A deletion reason is required", http.StatusBadRequest)
		return
	case errors.Is(err, models.ErrApartmentNotFound):
		http.Error(w, "Apartment not found", http.StatusNotFound)
		return
	case errors.Is(err, models.ErrNotOwner):
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	case err != nil:
		log.Printf("DeleteApartment error: %v", err)
		http.Error(w, "Failed to delete apartment", http.StatusInternalServerError)
		return
	}

	h.notify(models.FeedEvent{Type: "deleted", ApartmentID: id})
	w.WriteHeader(http.StatusOK)
}
