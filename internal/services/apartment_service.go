package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"diraBack/internal/models"
)

// ApartmentStore is the persistence collaborator for listings. The service
// never touches the database directly; it is handed data and a small set of
// mutation calls.
type ApartmentStore interface {
	GetAllApartments(ctx context.Context) ([]models.Apartment, error)
	GetApartmentByID(ctx context.Context, id string) (models.Apartment, error)
	CreateApartment(ctx context.Context, a models.Apartment) (models.Apartment, error)
	UpdateApartment(ctx context.Context, a models.Apartment) (models.Apartment, error)
	CloseApartment(ctx context.Context, id, reason string) error
	DeleteApartment(ctx context.Context, id, reason string) error
}

// FeedCache is a read-through cache for the whole listing collection.
type FeedCache interface {
	Get(ctx context.Context) ([]models.Apartment, bool)
	Set(ctx context.Context, apartments []models.Apartment)
	Invalidate(ctx context.Context) error
}

type ApartmentService struct {
	ApartmentRepo ApartmentStore
	Cache         FeedCache
}

// getAll reads the collection through the cache. A cache miss falls back to
// the store and repopulates.
func (s *ApartmentService) getAll(ctx context.Context) ([]models.Apartment, error) {
	if s.Cache != nil {
		if apartments, ok := s.Cache.Get(ctx); ok {
			return apartments, nil
		}
	}
	apartments, err := s.ApartmentRepo.GetAllApartments(ctx)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.Cache.Set(ctx, apartments)
	}
	return apartments, nil
}

// GetFeed returns the listings matching the filter, newest first as stored.
func (s *ApartmentService) GetFeed(ctx context.Context, filter models.ApartmentFilter) ([]models.Apartment, error) {
	apartments, err := s.getAll(ctx)
	if err != nil {
		return nil, err
	}
	return ApplyFilter(apartments, filter.Normalize()), nil
}

// GetFeedByStatus returns the status partition used by the data screen.
func (s *ApartmentService) GetFeedByStatus(ctx context.Context, status string) ([]models.Apartment, error) {
	apartments, err := s.getAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByStatus(apartments, status), nil
}

func (s *ApartmentService) GetApartmentByID(ctx context.Context, id string) (models.Apartment, error) {
	return s.ApartmentRepo.GetApartmentByID(ctx, id)
}

// GetApartmentsByUser returns the listings a user owns, any status.
func (s *ApartmentService) GetApartmentsByUser(ctx context.Context, userID string) ([]models.Apartment, error) {
	apartments, err := s.getAll(ctx)
	if err != nil {
		return nil, err
	}
	owned := make([]models.Apartment, 0)
	for _, a := range apartments {
		if a.UserID == userID {
			owned = append(owned, a)
		}
	}
	return owned, nil
}

// GetLikedByUser returns the listings whose like set contains the user.
func (s *ApartmentService) GetLikedByUser(ctx context.Context, userID string) ([]models.Apartment, error) {
	if userID == "" {
		return nil, models.ErrNoUser
	}
	apartments, err := s.getAll(ctx)
	if err != nil {
		return nil, err
	}
	liked := make([]models.Apartment, 0)
	for _, a := range apartments {
		if a.LikedBy(userID) {
			liked = append(liked, a)
		}
	}
	return liked, nil
}

// CreateApartment validates and persists a new listing. A listing with no
// images is never created; enums and furniture rows are normalized here, at
// the ingestion boundary, so downstream code sees defaulted records only.
func (s *ApartmentService) CreateApartment(ctx context.Context, a models.Apartment) (models.Apartment, error) {
	if a.UserID == "" {
		return models.Apartment{}, models.ErrNoUser
	}
	if len(a.Images) == 0 {
		return models.Apartment{}, models.ErrNoImages
	}
	a = a.Normalize()
	a.ID = uuid.New().String()
	a.Status = models.StatusActive
	a.CloseReason = ""
	a.Likes = nil
	a.CreatedAt = time.Now()
	a.UpdatedAt = nil

	created, err := s.ApartmentRepo.CreateApartment(ctx, a)
	if err != nil {
		return models.Apartment{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

// UpdateApartment applies owner-only edits. Status transitions do not go
// through here; closing has its own operation with a reason.
func (s *ApartmentService) UpdateApartment(ctx context.Context, a models.Apartment, userID string) (models.Apartment, error) {
	current, err := s.ApartmentRepo.GetApartmentByID(ctx, a.ID)
	if err != nil {
		return models.Apartment{}, err
	}
	if current.UserID != userID {
		return models.Apartment{}, models.ErrNotOwner
	}
	if len(a.Images) == 0 {
		return models.Apartment{}, models.ErrNoImages
	}
	a = a.Normalize()
	a.UserID = current.UserID
	a.Status = current.Status
	a.CloseReason = current.CloseReason
	a.Likes = current.Likes
	a.CreatedAt = current.CreatedAt
	now := time.Now()
	a.UpdatedAt = &now

	updated, err := s.ApartmentRepo.UpdateApartment(ctx, a)
	if err != nil {
		return models.Apartment{}, err
	}
	s.invalidate(ctx)
	return updated, nil
}

// CloseApartment marks a listing closed with one of the fixed reasons. The
// listing stays in the collection; closed is terminal for feed visibility
// but not a delete.
func (s *ApartmentService) CloseApartment(ctx context.Context, id, userID, reason string) error {
	if _, ok := models.CloseReasons[reason]; !ok {
		return models.ErrUnknownReason
	}
	current, err := s.ApartmentRepo.GetApartmentByID(ctx, id)
	if err != nil {
		return err
	}
	if current.UserID != userID {
		return models.ErrNotOwner
	}
	if !current.IsActive() {
		return models.ErrAlreadyClosed
	}
	if err := s.ApartmentRepo.CloseApartment(ctx, id, reason); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// DeleteApartment removes a listing permanently. The free-text reason is
// mandatory and recorded by the store.
func (s *ApartmentService) DeleteApartment(ctx context.Context, id, userID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return models.ErrMissingReason
	}
	current, err := s.ApartmentRepo.GetApartmentByID(ctx, id)
	if err != nil {
		return err
	}
	if current.UserID != userID {
		return models.ErrNotOwner
	}
	if err := s.ApartmentRepo.DeleteApartment(ctx, id, reason); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ApartmentService) invalidate(ctx context.Context) {
	if s.Cache != nil {
		_ = s.Cache.Invalidate(ctx)
	}
}
