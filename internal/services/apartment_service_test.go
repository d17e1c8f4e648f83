package services

import (
	"context"
	"errors"
	"testing"

	"diraBack/internal/models"
)

type fakeApartmentStore struct {
	apartments map[string]models.Apartment
	listCalls  int
	closed     map[string]string
	deleted    map[string]string
}

func newFakeApartmentStore(apartments ...models.Apartment) *fakeApartmentStore {
	f := &fakeApartmentStore{
		apartments: map[string]models.Apartment{},
		closed:     map[string]string{},
		deleted:    map[string]string{},
	}
	for _, a := range apartments {
		f.apartments[a.ID] = a
	}
	return f
}

func (f *fakeApartmentStore) GetAllApartments(ctx context.Context) ([]models.Apartment, error) {
	f.listCalls++
	out := make([]models.Apartment, 0, len(f.apartments))
	for _, a := range f.apartments {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeApartmentStore) GetApartmentByID(ctx context.Context, id string) (models.Apartment, error) {
	a, ok := f.apartments[id]
	if !ok {
		return models.Apartment{}, models.ErrApartmentNotFound
	}
	return a, nil
}

func (f *fakeApartmentStore) CreateApartment(ctx context.Context, a models.Apartment) (models.Apartment, error) {
	f.apartments[a.ID] = a
	return a, nil
}

func (f *fakeApartmentStore) UpdateApartment(ctx context.Context, a models.Apartment) (models.Apartment, error) {
	if _, ok := f.apartments[a.ID]; !ok {
		return models.Apartment{}, models.ErrApartmentNotFound
	}
	f.apartments[a.ID] = a
	return a, nil
}

func (f *fakeApartmentStore) CloseApartment(ctx context.Context, id, reason string) error {
	a := f.apartments[id]
	a.Status = models.StatusClosed
	a.CloseReason = reason
	f.apartments[id] = a
	f.closed[id] = reason
	return nil
}

func (f *fakeApartmentStore) DeleteApartment(ctx context.Context, id, reason string) error {
	delete(f.apartments, id)
	f.deleted[id] = reason
	return nil
}

type fakeFeedCache struct {
	apartments  []models.Apartment
	populated   bool
	invalidated int
}

func (f *fakeFeedCache) Get(ctx context.Context) ([]models.Apartment, bool) {
	return f.apartments, f.populated
}

func (f *fakeFeedCache) Set(ctx context.Context, apartments []models.Apartment) {
	f.apartments = apartments
	f.populated = true
}

func (f *fakeFeedCache) Invalidate(ctx context.Context) error {
	f.apartments = nil
	f.populated = false
	f.invalidated++
	return nil
}

func validApartment(id, userID string) models.Apartment {
	return models.Apartment{
		ID:     id,
		UserID: userID,
		Images: []string{"https://img.example/1.jpg"},
	}
}

func TestCreateApartment_RequiresImages(t *testing.T) {
	svc := &ApartmentService{ApartmentRepo: newFakeApartmentStore()}

	a := validApartment("", "u1")
	a.Images = nil
	_, err := svc.CreateApartment(context.Background(), a)
	if !errors.Is(err, models.ErrNoImages) {
		t.Fatalf("expected ErrNoImages, got %v", err)
	}
}

func TestCreateApartment_RequiresUser(t *testing.T) {
	svc := &ApartmentService{ApartmentRepo: newFakeApartmentStore()}

	_, err := svc.CreateApartment(context.Background(), validApartment("", ""))
	if !errors.Is(err, models.ErrNoUser) {
		t.Fatalf("expected ErrNoUser, got %v", err)
	}
}

func TestCreateApartment_AssignsIDAndDefaults(t *testing.T) {
	store := newFakeApartmentStore()
	svc := &ApartmentService{ApartmentRepo: store}

	a := validApartment("", "u1")
	a.Likes = []string{"stale"}
	a.Status = "bogus"
	a.BombShelter = "whatever"

	created, err := svc.CreateApartment(context.Background(), a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Errorf("created listing must get an id")
	}
	if created.Status != models.StatusActive {
		t.Errorf("new listing must start active, got %q", created.Status)
	}
	if len(created.Likes) != 0 {
		t.Errorf("client-supplied likes must be dropped")
	}
	if created.BombShelter != models.BombShelterNone {
		t.Errorf("unknown bomb shelter must default to none, got %q", created.BombShelter)
	}
}

func TestUpdateApartment_OwnerOnly(t *testing.T) {
	store := newFakeApartmentStore(validApartment("a1", "owner"))
	svc := &ApartmentService{ApartmentRepo: store}

	_, err := svc.UpdateApartment(context.Background(), validApartment("a1", "owner"), "someone-else")
	if !errors.Is(err, models.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestUpdateApartment_PreservesStatusAndLikes(t *testing.T) {
	existing := validApartment("a1", "owner")
	existing.Likes = []string{"u1", "u2"}
	existing.Status = models.StatusClosed
	existing.CloseReason = "app"
	store := newFakeApartmentStore(existing)
	svc := &ApartmentService{ApartmentRepo: store}

	edit := validApartment("a1", "owner")
	edit.Cost = 4200
	edit.Status = models.StatusActive
	edit.Likes = nil

	updated, err := svc.UpdateApartment(context.Background(), edit, "owner")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Cost != 4200 {
		t.Errorf("edit must apply, got cost %v", updated.Cost)
	}
	if updated.Status != models.StatusClosed || updated.CloseReason != "app" {
		t.Errorf("status must not change through an edit")
	}
	if len(updated.Likes) != 2 {
		t.Errorf("likes must be preserved, got %v", updated.Likes)
	}
}

func TestCloseApartment_UnknownReasonRejected(t *testing.T) {
	store := newFakeApartmentStore(validApartment("a1", "owner"))
	svc := &ApartmentService{ApartmentRepo: store}

	err := svc.CloseApartment(context.Background(), "a1", "owner", "because")
	if !errors.Is(err, models.ErrUnknownReason) {
		t.Fatalf("expected ErrUnknownReason, got %v", err)
	}
}

func TestCloseApartment_FixedReasonAccepted(t *testing.T) {
	store := newFakeApartmentStore(validApartment("a1", "owner"))
	svc := &ApartmentService{ApartmentRepo: store}

	if err := svc.CloseApartment(context.Background(), "a1", "owner", "outside"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.closed["a1"] != "outside" {
		t.Errorf("close reason must reach the store, got %q", store.closed["a1"])
	}
}

func TestCloseApartment_AlreadyClosed(t *testing.T) {
	a := validApartment("a1", "owner")
	a.Status = models.StatusClosed
	svc := &ApartmentService{ApartmentRepo: newFakeApartmentStore(a)}

	err := svc.CloseApartment(context.Background(), "a1", "owner", "app")
	if !errors.Is(err, models.ErrAlreadyClosed) {
		t.Fatalf("expected ErrAlreadyClosed, got %v", err)
	}
}

func TestDeleteApartment_RequiresReason(t *testing.T) {
	store := newFakeApartmentStore(validApartment("a1", "owner"))
	svc := &ApartmentService{ApartmentRepo: store}

	err := svc.DeleteApartment(context.Background(), "a1", "owner", "   ")
	if !errors.Is(err, models.ErrMissingReason) {
		t.Fatalf("expected ErrMissingReason, got %v", err)
	}

	if err := svc.DeleteApartment(context.Background(), "a1", "owner", "moved abroad"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.deleted["a1"] != "moved abroad" {
		t.Errorf("delete reason must reach the store")
	}
}

func TestGetLikedByUser_EmptyUserRejected(t *testing.T) {
	svc := &ApartmentService{ApartmentRepo: newFakeApartmentStore()}

	_, err := svc.GetLikedByUser(context.Background(), "")
	if !errors.Is(err, models.ErrNoUser) {
		t.Fatalf("expected ErrNoUser, got %v", err)
	}
}

func TestGetFeed_ReadsThroughCache(t *testing.T) {
	store := newFakeApartmentStore(validApartment("a1", "u1"))
	cache := &fakeFeedCache{}
	svc := &ApartmentService{ApartmentRepo: store, Cache: cache}

	if _, err := svc.GetFeed(context.Background(), models.ApartmentFilter{}); err != nil {
		t.Fatalf("first read: %v", err)
	}
	if _, err := svc.GetFeed(context.Background(), models.ApartmentFilter{}); err != nil {
		t.Fatalf("second read: %v", err)
	}
	if store.listCalls != 1 {
		t.Errorf("second read must be served from cache, store hit %d times", store.listCalls)
	}
}

func TestCreateApartment_InvalidatesCache(t *testing.T) {
	store := newFakeApartmentStore()
	cache := &fakeFeedCache{populated: true}
	svc := &ApartmentService{ApartmentRepo: store, Cache: cache}

	if _, err := svc.CreateApartment(context.Background(), validApartment("", "u1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.invalidated != 1 {
		t.Errorf("mutation must drop the cached feed")
	}
}
