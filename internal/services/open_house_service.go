package services

import (
	"context"

	"diraBack/internal/models"
)

// OpenHouseStore persists open-house attendance. Registration mirrors the
// like set mechanics: one row per (apartment, user).
type OpenHouseStore interface {
	InsertRegistration(ctx context.Context, apartmentID, userID string) error
	DeleteRegistration(ctx context.Context, apartmentID, userID string) error
}

type OpenHouseService struct {
	OpenHouseRepo OpenHouseStore
	ApartmentRepo ApartmentGetter
	Cache         FeedInvalidator
}

// Register adds the user to the listing's open-house attendance set.
func (s *OpenHouseService) Register(ctx context.Context, apartmentID, userID string) (models.Apartment, error) {
	return s.toggle(ctx, apartmentID, userID, true)
}

// Unregister removes the user from the attendance set.
func (s *OpenHouseService) Unregister(ctx context.Context, apartmentID, userID string) (models.Apartment, error) {
	return s.toggle(ctx, apartmentID, userID, false)
}

func (s *OpenHouseService) toggle(ctx context.Context, apartmentID, userID string, register bool) (models.Apartment, error) {
	if userID == "" {
		return models.Apartment{}, models.ErrNoUser
	}
	apartment, err := s.ApartmentRepo.GetApartmentByID(ctx, apartmentID)
	if err != nil {
		return models.Apartment{}, err
	}
	if apartment.OpenHouse == nil {
		return models.Apartment{}, models.ErrNoRecord
	}

	registered := false
	for _, id := range apartment.OpenHouse.Registrants {
		if id == userID {
			registered = true
			break
		}
	}

	if register {
		if registered {
			return apartment, models.ErrAlreadyRegistered
		}
		if err := s.OpenHouseRepo.InsertRegistration(ctx, apartmentID, userID); err != nil {
			return apartment, err
		}
		apartment.OpenHouse.Registrants = append(apartment.OpenHouse.Registrants, userID)
	} else {
		if !registered {
			return apartment, models.ErrNoRecord
		}
		if err := s.OpenHouseRepo.DeleteRegistration(ctx, apartmentID, userID); err != nil {
			return apartment, err
		}
		kept := make([]string, 0, len(apartment.OpenHouse.Registrants))
		for _, id := range apartment.OpenHouse.Registrants {
			if id != userID {
				kept = append(kept, id)
			}
		}
		apartment.OpenHouse.Registrants = kept
	}

	if s.Cache != nil {
		_ = s.Cache.Invalidate(ctx)
	}
	return apartment, nil
}
