package services

import (
	"context"
	"errors"
	"testing"

	"diraBack/internal/models"
)

type fakeLikeStore struct {
	likes     map[string]map[string]bool
	insertErr error
	deleteErr error
	entered   chan struct{}
	block     chan struct{}
}

func newFakeLikeStore() *fakeLikeStore {
	return &fakeLikeStore{likes: map[string]map[string]bool{}}
}

func (f *fakeLikeStore) InsertLike(ctx context.Context, apartmentID, userID string) error {
	if f.block != nil {
		f.entered <- struct{}{}
		<-f.block
	}
	if f.insertErr != nil {
		return f.insertErr
	}
	if f.likes[apartmentID] == nil {
		f.likes[apartmentID] = map[string]bool{}
	}
	f.likes[apartmentID][userID] = true
	return nil
}

func (f *fakeLikeStore) DeleteLike(ctx context.Context, apartmentID, userID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.likes[apartmentID], userID)
	return nil
}

type fakeApartmentGetter struct {
	apartments map[string]models.Apartment
}

func (f *fakeApartmentGetter) GetApartmentByID(ctx context.Context, id string) (models.Apartment, error) {
	a, ok := f.apartments[id]
	if !ok {
		return models.Apartment{}, models.ErrApartmentNotFound
	}
	return a, nil
}

func newLikeService(store *fakeLikeStore, apartments ...models.Apartment) *LikeService {
	getter := &fakeApartmentGetter{apartments: map[string]models.Apartment{}}
	for _, a := range apartments {
		getter.apartments[a.ID] = a
	}
	return &LikeService{LikeRepo: store, ApartmentRepo: getter}
}

func TestToggleLike_AddsWhenNotMember(t *testing.T) {
	store := newFakeLikeStore()
	svc := newLikeService(store, models.Apartment{ID: "a1"})

	got, err := svc.ToggleLike(context.Background(), "a1", "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.LikedBy("u1") {
		t.Errorf("returned apartment must contain the new like")
	}
	if !store.likes["a1"]["u1"] {
		t.Errorf("like must be persisted")
	}
}

func TestToggleLike_RemovesWhenMember(t *testing.T) {
	store := newFakeLikeStore()
	store.likes["a1"] = map[string]bool{"u1": true}
	svc := newLikeService(store, models.Apartment{ID: "a1", Likes: []string{"u1", "u2"}})

	got, err := svc.ToggleLike(context.Background(), "a1", "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.LikedBy("u1") {
		t.Errorf("u1 must be removed from the like set")
	}
	if !got.LikedBy("u2") {
		t.Errorf("other members must be untouched")
	}
	if store.likes["a1"]["u1"] {
		t.Errorf("like row must be deleted")
	}
}

func TestToggleLike_DoubleToggleRestoresOriginalState(t *testing.T) {
	store := newFakeLikeStore()
	svc := newLikeService(store, models.Apartment{ID: "a1"})
	getter := svc.ApartmentRepo.(*fakeApartmentGetter)

	first, err := svc.ToggleLike(context.Background(), "a1", "u1")
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	getter.apartments["a1"] = first

	second, err := svc.ToggleLike(context.Background(), "a1", "u1")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if second.LikedBy("u1") {
		t.Errorf("two toggles must cancel out")
	}
	if len(store.likes["a1"]) != 0 {
		t.Errorf("store must hold no likes after a round trip")
	}
}

func TestToggleLike_EmptyUserRejected(t *testing.T) {
	svc := newLikeService(newFakeLikeStore(), models.Apartment{ID: "a1"})

	_, err := svc.ToggleLike(context.Background(), "a1", "")
	if !errors.Is(err, models.ErrNoUser) {
		t.Fatalf("expected ErrNoUser, got %v", err)
	}
}

func TestToggleLike_StoreFailureLeavesLikesUnchanged(t *testing.T) {
	store := newFakeLikeStore()
	store.insertErr = errors.New("network down")
	svc := newLikeService(store, models.Apartment{ID: "a1", Likes: []string{"u2"}})

	got, err := svc.ToggleLike(context.Background(), "a1", "u1")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if got.LikedBy("u1") {
		t.Errorf("failed insert must not mutate the like set")
	}
	if !got.LikedBy("u2") {
		t.Errorf("existing likes must survive a failed toggle")
	}
}

func TestToggleLike_UnknownApartment(t *testing.T) {
	svc := newLikeService(newFakeLikeStore())

	_, err := svc.ToggleLike(context.Background(), "missing", "u1")
	if !errors.Is(err, models.ErrApartmentNotFound) {
		t.Fatalf("expected ErrApartmentNotFound, got %v", err)
	}
}

func TestToggleLike_SamePairInFlightRejected(t *testing.T) {
	store := newFakeLikeStore()
	store.entered = make(chan struct{})
	store.block = make(chan struct{})
	svc := newLikeService(store, models.Apartment{ID: "a1"})

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.ToggleLike(context.Background(), "a1", "u1")
		firstDone <- err
	}()
	// wait until the first call is parked inside the store
	<-store.entered

	if _, err := svc.ToggleLike(context.Background(), "a1", "u1"); !errors.Is(err, models.ErrLikeInFlight) {
		t.Fatalf("expected ErrLikeInFlight, got %v", err)
	}

	close(store.block)
	if err := <-firstDone; err != nil {
		t.Fatalf("first toggle must still complete: %v", err)
	}
}

func TestToggleLike_DifferentPairsNotSerialized(t *testing.T) {
	store := newFakeLikeStore()
	svc := newLikeService(store,
		models.Apartment{ID: "a1"},
		models.Apartment{ID: "a2"},
	)

	if _, err := svc.ToggleLike(context.Background(), "a1", "u1"); err != nil {
		t.Fatalf("a1/u1: %v", err)
	}
	if _, err := svc.ToggleLike(context.Background(), "a2", "u1"); err != nil {
		t.Fatalf("a2/u1: %v", err)
	}
	if _, err := svc.ToggleLike(context.Background(), "a1", "u2"); err != nil {
		t.Fatalf("a1/u2: %v", err)
	}
}
