package services

import (
	"context"
	"errors"
	"testing"

	"diraBack/internal/models"
)

type fakeOpenHouseStore struct {
	inserted map[string]bool
	removed  map[string]bool
}

func newFakeOpenHouseStore() *fakeOpenHouseStore {
	return &fakeOpenHouseStore{inserted: map[string]bool{}, removed: map[string]bool{}}
}

func (f *fakeOpenHouseStore) InsertRegistration(ctx context.Context, apartmentID, userID string) error {
	f.inserted[apartmentID+"|"+userID] = true
	return nil
}

func (f *fakeOpenHouseStore) DeleteRegistration(ctx context.Context, apartmentID, userID string) error {
	f.removed[apartmentID+"|"+userID] = true
	return nil
}

func newOpenHouseService(store *fakeOpenHouseStore, a models.Apartment) *OpenHouseService {
	return &OpenHouseService{
		OpenHouseRepo: store,
		ApartmentRepo: &fakeApartmentGetter{apartments: map[string]models.Apartment{a.ID: a}},
	}
}

func TestOpenHouseRegister(t *testing.T) {
	store := newFakeOpenHouseStore()
	svc := newOpenHouseService(store, models.Apartment{
		ID:        "a1",
		OpenHouse: &models.OpenHouse{Date: "2026-09-01", Time: "18:00"},
	})

	got, err := svc.Register(context.Background(), "a1", "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.OpenHouse.Registrants) != 1 || got.OpenHouse.Registrants[0] != "u1" {
		t.Errorf("u1 must appear in registrants, got %v", got.OpenHouse.Registrants)
	}
	if !store.inserted["a1|u1"] {
		t.Errorf("registration must be persisted")
	}
}

func TestOpenHouseRegister_Twice(t *testing.T) {
	store := newFakeOpenHouseStore()
	svc := newOpenHouseService(store, models.Apartment{
		ID:        "a1",
		OpenHouse: &models.OpenHouse{Date: "2026-09-01", Time: "18:00", Registrants: []string{"u1"}},
	})

	_, err := svc.Register(context.Background(), "a1", "u1")
	if !errors.Is(err, models.ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestOpenHouseRegister_NoOpenHouse(t *testing.T) {
	svc := newOpenHouseService(newFakeOpenHouseStore(), models.Apartment{ID: "a1"})

	_, err := svc.Register(context.Background(), "a1", "u1")
	if !errors.Is(err, models.ErrNoRecord) {
		t.Fatalf("expected ErrNoRecord, got %v", err)
	}
}

func TestOpenHouseUnregister(t *testing.T) {
	store := newFakeOpenHouseStore()
	svc := newOpenHouseService(store, models.Apartment{
		ID:        "a1",
		OpenHouse: &models.OpenHouse{Date: "2026-09-01", Time: "18:00", Registrants: []string{"u1", "u2"}},
	})

	got, err := svc.Unregister(context.Background(), "a1", "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.OpenHouse.Registrants) != 1 || got.OpenHouse.Registrants[0] != "u2" {
		t.Errorf("only u2 must remain, got %v", got.OpenHouse.Registrants)
	}
	if !store.removed["a1|u1"] {
		t.Errorf("removal must be persisted")
	}
}

func TestOpenHouseUnregister_NotRegistered(t *testing.T) {
	svc := newOpenHouseService(newFakeOpenHouseStore(), models.Apartment{
		ID:        "a1",
		OpenHouse: &models.OpenHouse{Date: "2026-09-01", Time: "18:00"},
	})

	_, err := svc.Unregister(context.Background(), "a1", "u1")
	if !errors.Is(err, models.ErrNoRecord) {
		t.Fatalf("expected ErrNoRecord, got %v", err)
	}
}
