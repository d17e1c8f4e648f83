package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"diraBack/internal/models"
	"diraBack/internal/services"
)

type OpenHouseHandler struct {
	Service *services.OpenHouseService
}

func (h *OpenHouseHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, true)
}

func (h *OpenHouseHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, false)
}

func (h *OpenHouseHandler) toggle(w http.ResponseWriter, r *http.Request, register bool) {
	apartmentID := r.URL.Query().Get(":id")
	if apartmentID == "" {
		http.Error(w, "Missing apartment ID", http.StatusBadRequest)
		return
	}

	var (
		apartment models.Apartment
		err       error
	)
	if register {
		apartment, err = h.Service.Register(r.Context(), apartmentID, userIDFromContext(r))
	} else {
		apartment, err = h.Service.Unregister(r.Context(), apartmentID, userIDFromContext(r))
	}
	switch {
	case errors.Is(err, models.ErrNoUser):
		http.Error(w, "Missing user", http.StatusUnauthorized)
		return
	case errors.Is(err, models.ErrApartmentNotFound):
		http.Error(w, "Apartment not found", http.StatusNotFound)
		return
	case errors.Is(err, models.ErrAlreadyRegistered):
		http.Error(w, "Already registered", http.StatusConflict)
		return
	case errors.Is(err, models.ErrNoRecord):
		http.Error(w, "No open house for apartment", http.StatusNotFound)
		return
	case err != nil:
		log.Printf("OpenHouse toggle error: %v", err)
		http.Error(w, "Failed to update registration", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(apartment)
}
