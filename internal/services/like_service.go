package services

import (
	"context"
	"sync"

	"diraBack/internal/models"
)

// ApartmentLikeStore is the persistence collaborator for the like set. Both
// calls are all-or-nothing: on error the caller must leave local state
// untouched.
type ApartmentLikeStore interface {
	InsertLike(ctx context.Context, apartmentID, userID string) error
	DeleteLike(ctx context.Context, apartmentID, userID string) error
}

// ApartmentGetter supplies the current listing, likes included.
type ApartmentGetter interface {
	GetApartmentByID(ctx context.Context, id string) (models.Apartment, error)
}

// FeedInvalidator drops any cached listing collection after a successful
// mutation.
type FeedInvalidator interface {
	Invalidate(ctx context.Context) error
}

type LikeService struct {
	LikeRepo      ApartmentLikeStore
	ApartmentRepo ApartmentGetter
	Cache         FeedInvalidator

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// ToggleLike flips the like set membership for (apartmentID, userID) and
// returns the updated apartment. The current state is read from the store
// each time rather than from a cached boolean, so the decision cannot drift
// if the set was mutated elsewhere. Local state is only updated after the
// store call succeeds; on failure the apartment is returned as it was.
//
// Rapid re-invocation for the same pair while a toggle is unresolved would
// race an insert against a delete, so a second call gets ErrLikeInFlight
// until the first completes.
func (s *LikeService) ToggleLike(ctx context.Context, apartmentID, userID string) (models.Apartment, error) {
	if userID == "" {
		return models.Apartment{}, models.ErrNoUser
	}

	key := apartmentID + "|" + userID
	s.mu.Lock()
	if s.inFlight == nil {
		s.inFlight = make(map[string]struct{})
	}
	if _, busy := s.inFlight[key]; busy {
		s.mu.Unlock()
		return models.Apartment{}, models.ErrLikeInFlight
	}
	s.inFlight[key] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, key)
		s.mu.Unlock()
	}()

	apartment, err := s.ApartmentRepo.GetApartmentByID(ctx, apartmentID)
	if err != nil {
		return models.Apartment{}, err
	}

	if apartment.LikedBy(userID) {
		if err := s.LikeRepo.DeleteLike(ctx, apartmentID, userID); err != nil {
			return apartment, err
		}
		kept := make([]string, 0, len(apartment.Likes))
		for _, id := range apartment.Likes {
			if id != userID {
				kept = append(kept, id)
			}
		}
		apartment.Likes = kept
	} else {
		if err := s.LikeRepo.InsertLike(ctx, apartmentID, userID); err != nil {
			return apartment, err
		}
		apartment.Likes = append(apartment.Likes, userID)
	}

	if s.Cache != nil {
		_ = s.Cache.Invalidate(ctx)
	}
	return apartment, nil
}
